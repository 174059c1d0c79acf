package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
)

func TestAvailabilityRespectsVehicleStatus(t *testing.T) {
	store := newTestStore(t)
	seed(t, store, nil, []models.Vehicle{
		{ID: "V1", Model: "Hiace", FarePerKm: 2, Status: models.VehicleAvailable},
		{ID: "V2", Model: "Sprinter", FarePerKm: 3, Status: models.VehicleMaintenance},
	})

	oracle := AvailabilityService{Store: store}
	start := fixedClock("2024-03-02 08:00:00")()
	end := fixedClock("2024-03-02 09:00:00")()

	ok, err := oracle.Check(staffActor, "V1", start, end)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = oracle.Check(staffActor, "V2", start, end)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = oracle.Check(staffActor, "V9", start, end)
	require.True(t, domain.IsNotFound(err))

	_, err = oracle.Check(staffActor, "V1", end, start)
	require.True(t, domain.IsInvalidData(err))
}

func TestAvailabilityIgnoresFinishedBookings(t *testing.T) {
	store := newTestStore(t)
	created := fixedClock("2024-03-01 10:00:00")()
	dep := fixedClock("2024-03-02 08:00:00")()
	arr := fixedClock("2024-03-02 09:00:00")()

	booking := func(id string, status models.BookingStatus) models.Booking {
		return models.Booking{
			ID: id, CustomerID: "CU1", VehicleID: "V1",
			FromLocation: "A", ToLocation: "B",
			DepartureAt: dep, ArrivalAt: arr,
			TripType: models.TripOneWay, Passengers: 1,
			PaymentMethod: models.PaymentCash, Status: status,
			CreatedAt: created, CreatedBy: "staff",
		}
	}

	store.Lock()
	err := store.Apply(repositories.Staged{
		Vehicles: []models.Vehicle{{ID: "V1", Model: "Hiace", FarePerKm: 2, Status: models.VehicleAvailable}},
		Bookings: []models.Booking{
			booking("BK1", models.StatusCancelled),
			booking("BK2", models.StatusCompleted),
			booking("BK3", models.StatusPending),
		},
	})
	store.Unlock()
	require.NoError(t, err)

	oracle := AvailabilityService{Store: store}
	ok, err := oracle.Check(staffActor, "V1", dep, arr)
	require.NoError(t, err)
	require.True(t, ok, "cancelled, completed, and pending bookings must not block")

	store.Lock()
	err = store.Apply(repositories.Staged{Bookings: store.Bookings.StageReplace(booking("BK3", models.StatusConfirmed))})
	store.Unlock()
	require.NoError(t, err)

	ok, err = oracle.Check(staffActor, "V1", dep, arr)
	require.NoError(t, err)
	require.False(t, ok, "confirmed overlap must block")
}
