package models

import (
	"fmt"
	"time"

	"tourmate/internal/utils"
)

// SalesRecord is the settlement artifact created exactly once when a trip
// completes. CustomerName is a denormalized snapshot so the record survives
// customer deletion.
type SalesRecord struct {
	ID            string        `json:"salesId"`
	VehicleID     string        `json:"vehicleId"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	TotalAmount   float64       `json:"totalAmount"`
	SoldAt        time.Time     `json:"saleDate"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Row serializes the record in persisted column order.
func (s SalesRecord) Row() []string {
	return []string{
		s.ID,
		s.VehicleID,
		s.CustomerID,
		s.CustomerName,
		utils.FormatMoney(s.TotalAmount),
		utils.FormatDateTime(s.SoldAt),
		string(s.PaymentMethod),
	}
}

// SalesRecordFromRow decodes a persisted row.
func SalesRecordFromRow(row []string) (SalesRecord, error) {
	if len(row) < 7 {
		return SalesRecord{}, fmt.Errorf("sales row has %d fields, want 7", len(row))
	}
	amount, err := utils.ParseMoney(row[4])
	if err != nil {
		return SalesRecord{}, fmt.Errorf("totalAmount: %w", err)
	}
	soldAt, err := utils.ParseDateTime(row[5])
	if err != nil {
		return SalesRecord{}, fmt.Errorf("saleDate: %w", err)
	}
	return SalesRecord{
		ID:            row[0],
		VehicleID:     row[1],
		CustomerID:    row[2],
		CustomerName:  row[3],
		TotalAmount:   amount,
		SoldAt:        soldAt,
		PaymentMethod: ParsePaymentMethod(row[6]),
	}, nil
}
