// Package repositories keeps every entity collection in memory as an
// insertion-ordered slice plus an id index, loaded from and persisted
// through a storage.Gateway.
//
// Mutations are staged: callers build the updated slice with the Stage*
// helpers, then commit through Store.Apply, which persists every touched
// collection before installing any of them in memory. A failed write
// therefore never leaves memory ahead of what Apply installed.
package repositories

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"tourmate/internal/domain/models"
	"tourmate/internal/storage"
)

// Store groups the collections behind one mutex. A lifecycle transition
// touches several collections at once (booking + customer, or booking +
// vehicle + sales), so services hold the lock for the whole operation.
type Store struct {
	mu sync.Mutex

	Customers *CustomerRepository
	Bookings  *BookingRepository
	Sales     *SalesRepository
	Vehicles  *VehicleRepository
	Users     *UserRepository
}

// NewStore wires every repository to the gateway.
func NewStore(gw storage.Gateway) *Store {
	return &Store{
		Customers: &CustomerRepository{gw: gw},
		Bookings:  &BookingRepository{gw: gw},
		Sales:     &SalesRepository{gw: gw},
		Vehicles:  &VehicleRepository{gw: gw},
		Users:     &UserRepository{gw: gw},
	}
}

// Load populates every collection from the gateway. Rows that fail to decode
// are skipped and logged rather than aborting the whole load.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Customers.load(); err != nil {
		return err
	}
	if err := s.Bookings.load(); err != nil {
		return err
	}
	if err := s.Sales.load(); err != nil {
		return err
	}
	if err := s.Vehicles.load(); err != nil {
		return err
	}
	return s.Users.load()
}

// Lock acquires the store-wide writer lock.
func (s *Store) Lock() { s.mu.Lock() }

// Unlock releases the store-wide writer lock.
func (s *Store) Unlock() { s.mu.Unlock() }

// Staged carries the updated collections of one logical transaction.
// A nil slice means the collection is untouched.
type Staged struct {
	Customers []models.Customer
	Bookings  []models.Booking
	Sales     []models.SalesRecord
	Vehicles  []models.Vehicle
	Users     []models.User
}

// Apply persists every staged collection and installs them in memory only
// after all writes succeeded. Callers must hold the store lock.
func (s *Store) Apply(st Staged) error {
	if st.Customers != nil {
		if err := s.Customers.persist(st.Customers); err != nil {
			return fmt.Errorf("persist customers: %w", err)
		}
	}
	if st.Bookings != nil {
		if err := s.Bookings.persist(st.Bookings); err != nil {
			return fmt.Errorf("persist bookings: %w", err)
		}
	}
	if st.Sales != nil {
		if err := s.Sales.persist(st.Sales); err != nil {
			return fmt.Errorf("persist sales: %w", err)
		}
	}
	if st.Vehicles != nil {
		if err := s.Vehicles.persist(st.Vehicles); err != nil {
			return fmt.Errorf("persist vehicles: %w", err)
		}
	}
	if st.Users != nil {
		if err := s.Users.persist(st.Users); err != nil {
			return fmt.Errorf("persist users: %w", err)
		}
	}

	if st.Customers != nil {
		s.Customers.install(st.Customers)
	}
	if st.Bookings != nil {
		s.Bookings.install(st.Bookings)
	}
	if st.Sales != nil {
		s.Sales.install(st.Sales)
	}
	if st.Vehicles != nil {
		s.Vehicles.install(st.Vehicles)
	}
	if st.Users != nil {
		s.Users.install(st.Users)
	}
	return nil
}

// nextSequentialID allocates the next "<prefix><n>" id by scanning existing
// ids for the largest numeric suffix, mirroring the historical id scheme
// (CU1, BK12, SAL3, ...).
func nextSequentialID(prefix string, ids []string) string {
	maxNum := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if n > maxNum {
			maxNum = n
		}
	}
	return prefix + strconv.Itoa(maxNum+1)
}
