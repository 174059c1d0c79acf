package models

import (
	"fmt"
	"time"

	"tourmate/internal/utils"
)

// User is an operator account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Row serializes the user in persisted column order.
func (u User) Row() []string {
	return []string{
		u.Username,
		u.PasswordHash,
		u.Role,
		utils.FormatDateTime(u.CreatedAt),
	}
}

// UserFromRow decodes a persisted row.
func UserFromRow(row []string) (User, error) {
	if len(row) < 4 {
		return User{}, fmt.Errorf("user row has %d fields, want 4", len(row))
	}
	created, err := utils.ParseDateTime(row[3])
	if err != nil {
		return User{}, fmt.Errorf("createdAt: %w", err)
	}
	return User{
		Username:     row[0],
		PasswordHash: row[1],
		Role:         row[2],
		CreatedAt:    created,
	}, nil
}
