package services

import (
	"time"

	"tourmate/internal/audit"
	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
	"tourmate/internal/utils"
)

// CustomerService owns customer registration, lookup, and mutation.
type CustomerService struct {
	Store     *repositories.Store
	Audit     audit.Sink
	RequestID string
	Now       func() time.Time
}

// CustomerInput is the caller-supplied portion of a customer record.
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerPatch updates a subset of customer fields. Nil means leave as is.
type CustomerPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// Register creates a customer with a fresh id and zeroed spending stats.
func (s CustomerService) Register(actor domain.Actor, in CustomerInput) (models.Customer, error) {
	if err := requireManage(actor); err != nil {
		return models.Customer{}, err
	}

	name := utils.NormalizeSpace(in.Name)
	email := utils.TrimOrEmpty(in.Email)
	phone := utils.TrimOrEmpty(in.Phone)
	if name == "" {
		return models.Customer{}, domain.E(domain.KindInvalidData, "customer name is required")
	}
	if email == "" {
		return models.Customer{}, domain.E(domain.KindInvalidData, "customer email is required")
	}
	if phone == "" {
		return models.Customer{}, domain.E(domain.KindInvalidData, "customer phone is required")
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	if _, taken := s.Store.Customers.FindByEmail(email); taken {
		return models.Customer{}, domain.Ef(domain.KindDuplicateID, "email %s already registered", email)
	}
	if _, taken := s.Store.Customers.FindByPhone(phone); taken {
		return models.Customer{}, domain.Ef(domain.KindDuplicateID, "phone %s already registered", phone)
	}

	c := models.Customer{
		ID:           s.Store.Customers.NextID(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		Address:      utils.TrimOrEmpty(in.Address),
		RegisteredAt: clock(s.Now),
	}

	if err := s.Store.Apply(repositories.Staged{Customers: s.Store.Customers.StageAppend(c)}); err != nil {
		return models.Customer{}, domain.Wrap(domain.KindFileError, "save customers", err)
	}

	s.Audit.Append(actor.Username, "ADD_CUSTOMER", c.ID, c.Name)
	utils.LogEvent(s.RequestID, "CUSTOMER", "register", "created "+c.ID)
	return c, nil
}

// Get returns one customer by id.
func (s CustomerService) Get(actor domain.Actor, id string) (models.Customer, error) {
	if err := requireView(actor); err != nil {
		return models.Customer{}, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()

	c, ok := s.Store.Customers.Get(id)
	if !ok {
		return models.Customer{}, domain.Ef(domain.KindNotFound, "customer %s not found", id)
	}
	return c, nil
}

// All lists customers in registration order.
func (s CustomerService) All(actor domain.Actor) ([]models.Customer, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}
	s.Store.Lock()
	defer s.Store.Unlock()
	return s.Store.Customers.All(), nil
}

// Update applies a partial edit. Spending stats and VIP flag are system
// managed and not editable here.
func (s CustomerService) Update(actor domain.Actor, id string, patch CustomerPatch) (models.Customer, error) {
	if err := requireManage(actor); err != nil {
		return models.Customer{}, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	c, ok := s.Store.Customers.Get(id)
	if !ok {
		return models.Customer{}, domain.Ef(domain.KindNotFound, "customer %s not found", id)
	}

	if patch.Name != nil {
		name := utils.NormalizeSpace(*patch.Name)
		if name == "" {
			return models.Customer{}, domain.E(domain.KindInvalidData, "customer name is required")
		}
		c.Name = name
	}
	if patch.Email != nil {
		email := utils.TrimOrEmpty(*patch.Email)
		if email == "" {
			return models.Customer{}, domain.E(domain.KindInvalidData, "customer email is required")
		}
		if other, taken := s.Store.Customers.FindByEmail(email); taken && other.ID != id {
			return models.Customer{}, domain.Ef(domain.KindDuplicateID, "email %s already registered", email)
		}
		c.Email = email
	}
	if patch.Phone != nil {
		phone := utils.TrimOrEmpty(*patch.Phone)
		if phone == "" {
			return models.Customer{}, domain.E(domain.KindInvalidData, "customer phone is required")
		}
		if other, taken := s.Store.Customers.FindByPhone(phone); taken && other.ID != id {
			return models.Customer{}, domain.Ef(domain.KindDuplicateID, "phone %s already registered", phone)
		}
		c.Phone = phone
	}
	if patch.Address != nil {
		c.Address = utils.TrimOrEmpty(*patch.Address)
	}

	if err := s.Store.Apply(repositories.Staged{Customers: s.Store.Customers.StageReplace(c)}); err != nil {
		return models.Customer{}, domain.Wrap(domain.KindFileError, "save customers", err)
	}

	s.Audit.Append(actor.Username, "UPDATE_CUSTOMER", c.ID, c.Name)
	utils.LogEvent(s.RequestID, "CUSTOMER", "update", "updated "+c.ID)
	return c, nil
}

// Delete removes the customer record. Bookings and sales that reference the
// id are kept; history reads resolve the missing name as "Unknown".
func (s CustomerService) Delete(actor domain.Actor, id string) error {
	if err := requireDelete(actor); err != nil {
		return err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	c, ok := s.Store.Customers.Get(id)
	if !ok {
		return domain.Ef(domain.KindNotFound, "customer %s not found", id)
	}

	if err := s.Store.Apply(repositories.Staged{Customers: s.Store.Customers.StageRemove(id)}); err != nil {
		return domain.Wrap(domain.KindFileError, "save customers", err)
	}

	s.Audit.Append(actor.Username, "DELETE_CUSTOMER", id, c.Name)
	utils.LogEvent(s.RequestID, "CUSTOMER", "delete", "deleted "+id)
	return nil
}

// Search matches the query case-insensitively against id, name, email,
// phone, and address, returning hits in registration order.
func (s CustomerService) Search(actor domain.Actor, query string) ([]models.Customer, error) {
	if err := requireView(actor); err != nil {
		return nil, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	q := utils.TrimOrEmpty(query)
	if q == "" {
		return s.Store.Customers.All(), nil
	}

	out := []models.Customer{}
	for _, c := range s.Store.Customers.All() {
		if utils.ContainsFold(c.ID, q) ||
			utils.ContainsFold(c.Name, q) ||
			utils.ContainsFold(c.Email, q) ||
			utils.ContainsFold(c.Phone, q) ||
			utils.ContainsFold(c.Address, q) {
			out = append(out, c)
		}
	}
	return out, nil
}
