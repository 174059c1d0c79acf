package services

import (
	"time"

	"tourmate/internal/audit"
	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
	"tourmate/internal/utils"
)

// SalesService exposes the settlement ledger. Records are normally written
// by trip completion; the direct mutations here exist for administrative
// corrections and are gated accordingly.
type SalesService struct {
	Store     *repositories.Store
	Audit     audit.Sink
	RequestID string
	Now       func() time.Time
}

// SalesInput is a manually entered settlement record.
type SalesInput struct {
	VehicleID     string  `json:"vehicleId"`
	CustomerID    string  `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	TotalAmount   float64 `json:"totalAmount"`
	SaleDate      string  `json:"saleDate"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Add records a correction entry on the ledger.
func (s SalesService) Add(actor domain.Actor, in SalesInput) (models.SalesRecord, error) {
	if err := requireDelete(actor); err != nil {
		return models.SalesRecord{}, err
	}
	if utils.TrimOrEmpty(in.VehicleID) == "" {
		return models.SalesRecord{}, domain.E(domain.KindInvalidData, "vehicleId is required")
	}
	if in.TotalAmount == 0 {
		return models.SalesRecord{}, domain.E(domain.KindInvalidData, "totalAmount is required")
	}
	soldAt := clock(s.Now)
	if in.SaleDate != "" {
		parsed, err := utils.ParseDateTime(in.SaleDate)
		if err != nil {
			return models.SalesRecord{}, domain.Wrap(domain.KindInvalidData, "saleDate", err)
		}
		soldAt = parsed
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	name := utils.TrimOrEmpty(in.CustomerName)
	if name == "" {
		if c, ok := s.Store.Customers.Get(in.CustomerID); ok {
			name = c.Name
		} else {
			name = "Unknown"
		}
	}

	rec := models.SalesRecord{
		ID:            s.Store.Sales.NextID(),
		VehicleID:     utils.TrimOrEmpty(in.VehicleID),
		CustomerID:    utils.TrimOrEmpty(in.CustomerID),
		CustomerName:  name,
		TotalAmount:   in.TotalAmount,
		SoldAt:        soldAt,
		PaymentMethod: models.ParsePaymentMethod(in.PaymentMethod),
	}

	if err := s.Store.Apply(repositories.Staged{Sales: s.Store.Sales.StageAppend(rec)}); err != nil {
		return models.SalesRecord{}, domain.Wrap(domain.KindFileError, "save sales", err)
	}

	s.Audit.Append(actor.Username, "ADD_SALE", rec.ID, utils.FormatMoney(rec.TotalAmount))
	utils.LogEvent(s.RequestID, "SALES", "add", "created "+rec.ID)
	return rec, nil
}

// SalesPatch updates a subset of a ledger entry. Nil means leave as is.
type SalesPatch struct {
	CustomerName  *string  `json:"customerName"`
	TotalAmount   *float64 `json:"totalAmount"`
	SaleDate      *string  `json:"saleDate"`
	PaymentMethod *string  `json:"paymentMethod"`
}

// Update corrects a ledger entry in place. Administrative correction only.
func (s SalesService) Update(actor domain.Actor, id string, patch SalesPatch) (models.SalesRecord, error) {
	if err := requireDelete(actor); err != nil {
		return models.SalesRecord{}, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	rec, ok := s.Store.Sales.Get(id)
	if !ok {
		return models.SalesRecord{}, domain.Ef(domain.KindNotFound, "sales record %s not found", id)
	}

	if patch.CustomerName != nil {
		name := utils.TrimOrEmpty(*patch.CustomerName)
		if name == "" {
			return models.SalesRecord{}, domain.E(domain.KindInvalidData, "customerName is required")
		}
		rec.CustomerName = name
	}
	if patch.TotalAmount != nil {
		if *patch.TotalAmount == 0 {
			return models.SalesRecord{}, domain.E(domain.KindInvalidData, "totalAmount is required")
		}
		rec.TotalAmount = *patch.TotalAmount
	}
	if patch.SaleDate != nil {
		parsed, err := utils.ParseDateTime(*patch.SaleDate)
		if err != nil {
			return models.SalesRecord{}, domain.Wrap(domain.KindInvalidData, "saleDate", err)
		}
		rec.SoldAt = parsed
	}
	if patch.PaymentMethod != nil {
		rec.PaymentMethod = models.ParsePaymentMethod(*patch.PaymentMethod)
	}

	if err := s.Store.Apply(repositories.Staged{Sales: s.Store.Sales.StageReplace(rec)}); err != nil {
		return models.SalesRecord{}, domain.Wrap(domain.KindFileError, "save sales", err)
	}

	s.Audit.Append(actor.Username, "UPDATE_SALE", rec.ID, utils.FormatMoney(rec.TotalAmount))
	utils.LogEvent(s.RequestID, "SALES", "update", "updated "+rec.ID)
	return rec, nil
}

// Get returns one sales record by id.
func (s SalesService) Get(actor domain.Actor, id string) (models.SalesRecord, error) {
	if err := requireView(actor); err != nil {
		return models.SalesRecord{}, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()

	rec, ok := s.Store.Sales.Get(id)
	if !ok {
		return models.SalesRecord{}, domain.Ef(domain.KindNotFound, "sales record %s not found", id)
	}
	return rec, nil
}

// All lists the ledger in settlement order.
func (s SalesService) All(actor domain.Actor) ([]models.SalesRecord, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()
	return s.Store.Sales.All(), nil
}

// Delete removes a ledger entry. Administrative correction only.
func (s SalesService) Delete(actor domain.Actor, id string) error {
	if err := requireDelete(actor); err != nil {
		return err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	rec, ok := s.Store.Sales.Get(id)
	if !ok {
		return domain.Ef(domain.KindNotFound, "sales record %s not found", id)
	}

	if err := s.Store.Apply(repositories.Staged{Sales: s.Store.Sales.StageRemove(id)}); err != nil {
		return domain.Wrap(domain.KindFileError, "save sales", err)
	}

	s.Audit.Append(actor.Username, "DELETE_SALE", id, utils.FormatMoney(rec.TotalAmount))
	utils.LogEvent(s.RequestID, "SALES", "delete", "deleted "+id)
	return nil
}

// Search matches the query case-insensitively against id, vehicle, customer
// id, and customer name.
func (s SalesService) Search(actor domain.Actor, query string) ([]models.SalesRecord, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	q := utils.TrimOrEmpty(query)
	if q == "" {
		return s.Store.Sales.All(), nil
	}

	out := []models.SalesRecord{}
	for _, rec := range s.Store.Sales.All() {
		if utils.ContainsFold(rec.ID, q) ||
			utils.ContainsFold(rec.VehicleID, q) ||
			utils.ContainsFold(rec.CustomerID, q) ||
			utils.ContainsFold(rec.CustomerName, q) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ByVehicle lists the vehicle's settlements in ledger order.
func (s SalesService) ByVehicle(actor domain.Actor, vehicleID string) ([]models.SalesRecord, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()

	out := []models.SalesRecord{}
	for _, rec := range s.Store.Sales.All() {
		if rec.VehicleID == vehicleID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ByCustomer lists the customer's settlements in ledger order.
func (s SalesService) ByCustomer(actor domain.Actor, customerID string) ([]models.SalesRecord, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()

	out := []models.SalesRecord{}
	for _, rec := range s.Store.Sales.All() {
		if rec.CustomerID == customerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ByDateRange lists settlements inside the half-open window [start, end).
func (s SalesService) ByDateRange(actor domain.Actor, start, end time.Time) ([]models.SalesRecord, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, domain.E(domain.KindInvalidData, "window end must be after start")
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	out := []models.SalesRecord{}
	for _, rec := range s.Store.Sales.All() {
		if !rec.SoldAt.Before(start) && rec.SoldAt.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}
