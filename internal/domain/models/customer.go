package models

import (
	"fmt"
	"strconv"
	"time"

	"tourmate/internal/utils"
)

// Customer is a registered rider. TotalBookings/TotalSpent accrue at booking
// confirmation; IsVip is derived from them and recomputed on confirm.
type Customer struct {
	ID            string    `json:"customerId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	RegisteredAt  time.Time `json:"registrationDate"`
	TotalBookings int       `json:"totalBookings"`
	TotalSpent    float64   `json:"totalSpent"`
	IsVip         bool      `json:"isVip"`
}

// Profile extracts the fields the fare calculator cares about.
func (c Customer) Profile() utils.CustomerProfile {
	return utils.CustomerProfile{
		IsVip:         c.IsVip,
		TotalBookings: c.TotalBookings,
		TotalSpent:    c.TotalSpent,
	}
}

// Row serializes the customer in persisted column order.
func (c Customer) Row() []string {
	return []string{
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		utils.FormatDateTime(c.RegisteredAt),
		strconv.Itoa(c.TotalBookings),
		utils.FormatMoney(c.TotalSpent),
		strconv.FormatBool(c.IsVip),
	}
}

// CustomerFromRow decodes a persisted row.
func CustomerFromRow(row []string) (Customer, error) {
	if len(row) < 9 {
		return Customer{}, fmt.Errorf("customer row has %d fields, want 9", len(row))
	}
	registered, err := utils.ParseDateTime(row[5])
	if err != nil {
		return Customer{}, fmt.Errorf("registrationDate: %w", err)
	}
	totalBookings, err := strconv.Atoi(row[6])
	if err != nil {
		return Customer{}, fmt.Errorf("totalBookings: %w", err)
	}
	totalSpent, err := utils.ParseMoney(row[7])
	if err != nil {
		return Customer{}, fmt.Errorf("totalSpent: %w", err)
	}
	return Customer{
		ID:            row[0],
		Name:          row[1],
		Email:         row[2],
		Phone:         row[3],
		Address:       row[4],
		RegisteredAt:  registered,
		TotalBookings: totalBookings,
		TotalSpent:    totalSpent,
		IsVip:         row[8] == "true" || row[8] == "1",
	}, nil
}
