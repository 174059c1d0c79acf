package models

import (
	"fmt"

	"tourmate/internal/utils"
)

// Vehicle is the slice of the fleet catalog the booking core consumes:
// a per-distance rate and an availability status.
type Vehicle struct {
	ID        string        `json:"vehicleId"`
	Model     string        `json:"model"`
	FarePerKm float64       `json:"farePerKm"`
	Status    VehicleStatus `json:"status"`
}

// Row serializes the vehicle in persisted column order.
func (v Vehicle) Row() []string {
	return []string{
		v.ID,
		v.Model,
		utils.FormatMoney(v.FarePerKm),
		string(v.Status),
	}
}

// VehicleFromRow decodes a persisted row.
func VehicleFromRow(row []string) (Vehicle, error) {
	if len(row) < 4 {
		return Vehicle{}, fmt.Errorf("vehicle row has %d fields, want 4", len(row))
	}
	rate, err := utils.ParseMoney(row[2])
	if err != nil {
		return Vehicle{}, fmt.Errorf("farePerKm: %w", err)
	}
	return Vehicle{
		ID:        row[0],
		Model:     row[1],
		FarePerKm: rate,
		Status:    ParseVehicleStatus(row[3]),
	}, nil
}
