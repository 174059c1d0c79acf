package repositories

import (
	"errors"
	"testing"
	"time"

	"tourmate/internal/domain/models"
	"tourmate/internal/storage"
	"tourmate/internal/storage/csvstore"
)

func newCSVStore(t *testing.T) *Store {
	t.Helper()
	gw, err := csvstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("csv store: %v", err)
	}
	s := NewStore(gw)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func at(value string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return ts.UTC()
}

func TestEntitiesSurviveReload(t *testing.T) {
	gw, err := csvstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("csv store: %v", err)
	}
	s := NewStore(gw)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	customer := models.Customer{
		ID: "CU1", Name: "Ana Cruz", Email: "ana@example.com", Phone: "0812",
		Address: "12 Hill Rd, Leeds", RegisteredAt: at("2024-03-01 09:00:00"),
		TotalBookings: 7, TotalSpent: 640.50, IsVip: true,
	}
	booking := models.Booking{
		ID: "BK1", CustomerID: "CU1", VehicleID: "V1",
		FromLocation: "Leeds", ToLocation: "York",
		DepartureAt: at("2024-03-02 08:00:00"), ArrivalAt: at("2024-03-02 09:00:00"),
		TripType: models.TripOneWay, Passengers: 2,
		BaseFare: 100, TotalFare: 90, Discount: 18,
		PaymentMethod: models.PaymentCreditCard, Status: models.StatusConfirmed,
		SpecialRequests: "child seat", CreatedAt: at("2024-03-01 10:00:00"), CreatedBy: "admin",
	}
	sale := models.SalesRecord{
		ID: "SAL1", VehicleID: "V1", CustomerID: "CU1", CustomerName: "Ana Cruz",
		TotalAmount: 90, SoldAt: at("2024-03-02 09:05:00"), PaymentMethod: models.PaymentCreditCard,
	}

	s.Lock()
	err = s.Apply(Staged{
		Customers: s.Customers.StageAppend(customer),
		Bookings:  s.Bookings.StageAppend(booking),
		Sales:     s.Sales.StageAppend(sale),
	})
	s.Unlock()
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	reloaded := NewStore(gw)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	gotCustomer, ok := reloaded.Customers.Get("CU1")
	if !ok || gotCustomer != customer {
		t.Fatalf("customer round trip:\n got %+v\nwant %+v", gotCustomer, customer)
	}
	gotBooking, ok := reloaded.Bookings.Get("BK1")
	if !ok || gotBooking != booking {
		t.Fatalf("booking round trip:\n got %+v\nwant %+v", gotBooking, booking)
	}
	gotSale, ok := reloaded.Sales.Get("SAL1")
	if !ok || gotSale != sale {
		t.Fatalf("sale round trip:\n got %+v\nwant %+v", gotSale, sale)
	}
}

func TestNextSequentialID(t *testing.T) {
	cases := []struct {
		prefix string
		ids    []string
		want   string
	}{
		{"CU", nil, "CU1"},
		{"CU", []string{"CU1", "CU2"}, "CU3"},
		{"BK", []string{"BK9", "BK12", "BK3"}, "BK13"},
		{"SAL", []string{"SAL2", "garbage", "CU5"}, "SAL3"},
	}
	for _, tc := range cases {
		if got := nextSequentialID(tc.prefix, tc.ids); got != tc.want {
			t.Errorf("nextSequentialID(%q, %v) = %q, want %q", tc.prefix, tc.ids, got, tc.want)
		}
	}
}

// failingGateway fails every save for one kind.
type failingGateway struct {
	inner    storage.Gateway
	failKind storage.EntityKind
}

func (g failingGateway) LoadAll(kind storage.EntityKind) ([][]string, error) {
	return g.inner.LoadAll(kind)
}

func (g failingGateway) SaveAll(kind storage.EntityKind, rows [][]string) error {
	if kind == g.failKind {
		return errors.New("disk full")
	}
	return g.inner.SaveAll(kind, rows)
}

func TestApplyKeepsMemoryOnFailedWrite(t *testing.T) {
	inner, err := csvstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("csv store: %v", err)
	}
	s := NewStore(failingGateway{inner: inner, failKind: storage.KindCustomers})
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	s.Lock()
	err = s.Apply(Staged{
		Customers: s.Customers.StageAppend(models.Customer{ID: "CU1", Name: "Ana", RegisteredAt: at("2024-03-01 09:00:00")}),
	})
	installed := s.Customers.Exists("CU1")
	s.Unlock()

	if err == nil {
		t.Fatal("apply should surface the write failure")
	}
	if installed {
		t.Fatal("failed write must not leave the record in memory")
	}
}

func TestStageRemoveLeavesOthers(t *testing.T) {
	s := newCSVStore(t)

	s.Lock()
	defer s.Unlock()

	staged := s.Customers.StageAppend(models.Customer{ID: "CU1", Name: "A", RegisteredAt: at("2024-01-01 00:00:00")})
	staged = append(staged, models.Customer{ID: "CU2", Name: "B", RegisteredAt: at("2024-01-02 00:00:00")})
	if err := s.Apply(Staged{Customers: staged}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if err := s.Apply(Staged{Customers: s.Customers.StageRemove("CU1")}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Customers.Exists("CU1") {
		t.Fatal("CU1 should be gone")
	}
	if !s.Customers.Exists("CU2") {
		t.Fatal("CU2 should remain")
	}
}
