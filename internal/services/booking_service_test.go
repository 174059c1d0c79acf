package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tourmate/internal/audit"
	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
	"tourmate/internal/storage/csvstore"
)

var (
	staffActor  = domain.Actor{Username: "staff", Role: "staff"}
	adminActor  = domain.Actor{Username: "admin", Role: "admin"}
	viewerActor = domain.Actor{Username: "viewer", Role: "viewer"}
)

func fixedClock(value string) func() time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts.UTC() }
}

func newTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	gw, err := csvstore.New(t.TempDir())
	require.NoError(t, err)
	store := repositories.NewStore(gw)
	require.NoError(t, store.Load())
	return store
}

func seed(t *testing.T, store *repositories.Store, customers []models.Customer, vehicles []models.Vehicle) {
	t.Helper()
	store.Lock()
	defer store.Unlock()
	require.NoError(t, store.Apply(repositories.Staged{Customers: customers, Vehicles: vehicles}))
}

func newBookingService(store *repositories.Store) BookingService {
	return BookingService{
		Store: store,
		Audit: audit.NopSink{},
		Now:   fixedClock("2024-03-01 10:00:00"),
	}
}

func defaultFixture(t *testing.T) (*repositories.Store, BookingService) {
	store := newTestStore(t)
	seed(t, store,
		[]models.Customer{{
			ID: "CU1", Name: "Ana Cruz", Email: "ana@example.com", Phone: "0812",
			RegisteredAt: fixedClock("2024-01-01 00:00:00")(),
		}},
		[]models.Vehicle{{ID: "V1", Model: "Hiace", FarePerKm: 2.0, Status: models.VehicleAvailable}},
	)
	return store, newBookingService(store)
}

func TestFullLifecycleCreatesSale(t *testing.T) {
	store, svc := defaultFixture(t)

	b, err := svc.Create(staffActor, BookingInput{
		CustomerID:    "CU1",
		VehicleID:     "V1",
		FromLocation:  "Leeds",
		ToLocation:    "York",
		DepartureTime: "2024-03-02 08:00:00",
		TripType:      "One Way",
		Passengers:    2,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, b.Status)
	require.Equal(t, models.PaymentUnknown, b.PaymentMethod)
	// Default distance 50 at rate 2.0, no discounts: 100 + 8 tax.
	require.InDelta(t, 108.0, b.TotalFare, 1e-9)
	require.Equal(t, b.DepartureAt.Add(time.Hour), b.ArrivalAt)

	b, err = svc.Confirm(staffActor, b.ID, "Credit Card")
	require.NoError(t, err)
	require.Equal(t, models.StatusConfirmed, b.Status)
	require.Equal(t, models.PaymentCreditCard, b.PaymentMethod)

	b, err = svc.StartTrip(staffActor, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, b.Status)

	store.Lock()
	v, _ := store.Vehicles.Get("V1")
	store.Unlock()
	require.Equal(t, models.VehicleInService, v.Status)

	b, err = svc.CompleteTrip(staffActor, b.ID, 0)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, b.Status)

	store.Lock()
	sales := store.Sales.All()
	v, _ = store.Vehicles.Get("V1")
	store.Unlock()

	require.Len(t, sales, 1)
	require.Equal(t, "SAL1", sales[0].ID)
	require.Equal(t, "Ana Cruz", sales[0].CustomerName)
	require.InDelta(t, b.TotalFare, sales[0].TotalAmount, 1e-9)
	require.Equal(t, models.VehicleAvailable, v.Status)
}

func TestIllegalTransitionsLeaveStateUnchanged(t *testing.T) {
	_, svc := defaultFixture(t)

	b, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)

	// Pending cannot start or complete.
	_, err = svc.StartTrip(staffActor, b.ID)
	require.True(t, domain.IsInvalidData(err))
	_, err = svc.CompleteTrip(staffActor, b.ID, 0)
	require.True(t, domain.IsInvalidData(err))

	got, err := svc.Get(staffActor, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status)

	// Cancelled is terminal.
	_, err = svc.Cancel(staffActor, b.ID, "changed plans")
	require.NoError(t, err)
	_, err = svc.Confirm(staffActor, b.ID, "Cash")
	require.True(t, domain.IsInvalidData(err))
}

func TestCancelIsRejectedWhenTerminal(t *testing.T) {
	_, svc := defaultFixture(t)

	b, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)

	_, err = svc.Cancel(staffActor, b.ID, "")
	require.NoError(t, err)

	// Second cancel is an error, never a second side effect.
	_, err = svc.Cancel(staffActor, b.ID, "")
	require.True(t, domain.IsInvalidData(err))

	got, err := svc.Get(staffActor, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, got.Status)
}

func TestCreateRejectsOverlappingWindow(t *testing.T) {
	_, svc := defaultFixture(t)

	first, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)
	_, err = svc.Confirm(staffActor, first.ID, "Cash")
	require.NoError(t, err)

	// Overlaps the confirmed 08:00-09:00 hold.
	_, err = svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:30:00", TripType: "One Way", Passengers: 1,
	})
	require.True(t, domain.IsVehicleUnavailable(err))

	// Back-to-back is fine: the window is half-open.
	_, err = svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 09:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)
}

func TestPendingBookingsDoNotBlock(t *testing.T) {
	_, svc := defaultFixture(t)

	_, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)

	// Same window while the first is still pending.
	second, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)

	// First confirm wins the window.
	_, err = svc.Confirm(staffActor, second.ID, "Cash")
	require.NoError(t, err)

	first, err := svc.All(staffActor)
	require.NoError(t, err)
	_, err = svc.Confirm(staffActor, first[0].ID, "Cash")
	require.Equal(t, domain.KindBookingConflict, domain.KindOf(err))
}

func TestConfirmAccruesStatsAndVip(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		[]models.Customer{{
			ID: "CU1", Name: "Ben Ward", Email: "ben@example.com", Phone: "0813",
			RegisteredAt: fixedClock("2024-01-01 00:00:00")(),
			TotalBookings: 5, TotalSpent: 450,
		}},
		[]models.Vehicle{{ID: "V1", Model: "Hiace", FarePerKm: 2.0, Status: models.VehicleAvailable}},
	)
	svc := newBookingService(store)

	b, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)

	_, err = svc.Confirm(staffActor, b.ID, "Cash")
	require.NoError(t, err)

	store.Lock()
	c, _ := store.Customers.Get("CU1")
	store.Unlock()

	// 6th booking and 450+108 = 558 spent crosses both thresholds at once.
	require.Equal(t, 6, c.TotalBookings)
	require.InDelta(t, 558.0, c.TotalSpent, 1e-9)
	require.True(t, c.IsVip)
}

func TestRefundRequiresElevatedRole(t *testing.T) {
	_, svc := defaultFixture(t)

	b, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)
	_, err = svc.Confirm(staffActor, b.ID, "Cash")
	require.NoError(t, err)
	_, err = svc.StartTrip(staffActor, b.ID)
	require.NoError(t, err)
	_, err = svc.CompleteTrip(staffActor, b.ID, 0)
	require.NoError(t, err)

	_, err = svc.Refund(staffActor, b.ID, "complaint")
	require.True(t, domain.IsPermissionDenied(err))

	refunded, err := svc.Refund(adminActor, b.ID, "complaint")
	require.NoError(t, err)
	require.Equal(t, models.StatusRefunded, refunded.Status)
}

func TestCompleteTripRecomputesFareFromActualDistance(t *testing.T) {
	_, svc := defaultFixture(t)

	b, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)
	_, err = svc.Confirm(staffActor, b.ID, "Cash")
	require.NoError(t, err)
	_, err = svc.StartTrip(staffActor, b.ID)
	require.NoError(t, err)

	done, err := svc.CompleteTrip(staffActor, b.ID, 80)
	require.NoError(t, err)

	// 80km at 2.0/km, no discounts: 160 + 12.80 tax.
	require.InDelta(t, 160.0, done.BaseFare, 1e-9)
	require.InDelta(t, 172.8, done.TotalFare, 1e-9)
}

func TestPermissionGates(t *testing.T) {
	_, svc := defaultFixture(t)

	_, err := svc.Create(domain.Actor{}, BookingInput{})
	require.True(t, domain.IsAuthenticationRequired(err))

	_, err = svc.Create(viewerActor, BookingInput{})
	require.True(t, domain.IsPermissionDenied(err))

	_, err = svc.All(viewerActor)
	require.NoError(t, err)
}

func TestCreateValidatesReferences(t *testing.T) {
	_, svc := defaultFixture(t)

	_, err := svc.Create(staffActor, BookingInput{
		CustomerID: "CU99", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.True(t, domain.IsNotFound(err))

	_, err = svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V99", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.True(t, domain.IsNotFound(err))

	_, err = svc.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.True(t, domain.IsInvalidData(err))
}
