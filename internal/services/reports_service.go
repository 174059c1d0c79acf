package services

import (
	"sort"
	"strings"
	"time"

	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
)

// ReportsService aggregates revenue and customer analytics over time
// windows. All windows are half-open [start, end).
type ReportsService struct {
	Store     *repositories.Store
	RequestID string
	Now       func() time.Time
}

// RevenueReport is the financial summary of one window.
type RevenueReport struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`

	TotalRevenue            float64 `json:"totalRevenue"`
	TotalRefunds            float64 `json:"totalRefunds"`
	NetRevenue              float64 `json:"netRevenue"`
	TotalTransactions       int     `json:"totalTransactions"`
	TotalBookings           int     `json:"totalBookings"`
	CompletedTrips          int     `json:"completedTrips"`
	CancelledBookings       int     `json:"cancelledBookings"`
	AverageTransactionValue float64 `json:"averageTransactionValue"`

	RevenueByVehicle       map[string]float64 `json:"revenueByVehicle"`
	RevenueByPaymentMethod map[string]float64 `json:"revenueByPaymentMethod"`
	BookingsByRoute        map[string]int     `json:"bookingsByRoute"`

	TopVehicle string `json:"topVehicle"`
	TopRoute   string `json:"topRoute"`
}

// CustomerReport summarizes the customer base.
type CustomerReport struct {
	TotalCustomers       int               `json:"totalCustomers"`
	ActiveCustomers      int               `json:"activeCustomers"`
	VipCustomers         int               `json:"vipCustomers"`
	AverageCustomerValue float64           `json:"averageCustomerValue"`
	RetentionRate        float64           `json:"retentionRate"`
	CustomersByLocation  map[string]int    `json:"customersByLocation"`
	TopCustomers         []models.Customer `json:"topCustomers"`
}

// Report builds the revenue summary for [start, end).
func (s ReportsService) Report(actor domain.Actor, start, end time.Time) (RevenueReport, error) {
	if err := requireReports(actor); err != nil {
		return RevenueReport{}, err
	}
	if !end.After(start) {
		return RevenueReport{}, domain.E(domain.KindInvalidData, "window end must be after start")
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	rep := RevenueReport{
		StartAt:                start,
		EndAt:                  end,
		RevenueByVehicle:       map[string]float64{},
		RevenueByPaymentMethod: map[string]float64{},
		BookingsByRoute:        map[string]int{},
	}

	for _, sale := range s.Store.Sales.All() {
		if sale.SoldAt.Before(start) || !sale.SoldAt.Before(end) {
			continue
		}
		rep.TotalRevenue += sale.TotalAmount
		rep.TotalTransactions++
	}

	// Maps lose insertion order, so remember the first-seen order of keys
	// for deterministic top-key selection.
	var vehicleOrder, routeOrder []string

	for _, b := range s.Store.Bookings.All() {
		if b.CreatedAt.Before(start) || !b.CreatedAt.Before(end) {
			continue
		}
		rep.TotalBookings++
		switch b.Status {
		case models.StatusCompleted:
			rep.CompletedTrips++
			if _, seen := rep.RevenueByVehicle[b.VehicleID]; !seen {
				vehicleOrder = append(vehicleOrder, b.VehicleID)
			}
			rep.RevenueByVehicle[b.VehicleID] += b.TotalFare
			rep.RevenueByPaymentMethod[string(b.PaymentMethod)] += b.TotalFare
			route := b.Route()
			if _, seen := rep.BookingsByRoute[route]; !seen {
				routeOrder = append(routeOrder, route)
			}
			rep.BookingsByRoute[route]++
		case models.StatusCancelled:
			rep.CancelledBookings++
		case models.StatusRefunded:
			rep.TotalRefunds += b.TotalFare
		}
	}

	rep.NetRevenue = rep.TotalRevenue - rep.TotalRefunds
	if rep.TotalTransactions > 0 {
		rep.AverageTransactionValue = rep.TotalRevenue / float64(rep.TotalTransactions)
	}

	best := 0.0
	for _, id := range vehicleOrder {
		if v := rep.RevenueByVehicle[id]; v > best {
			best = v
			rep.TopVehicle = id
		}
	}
	bestCount := 0
	for _, route := range routeOrder {
		if n := rep.BookingsByRoute[route]; n > bestCount {
			bestCount = n
			rep.TopRoute = route
		}
	}

	return rep, nil
}

// Daily reports over the last 24 hours.
func (s ReportsService) Daily(actor domain.Actor) (RevenueReport, error) {
	now := clock(s.Now)
	return s.Report(actor, now.Add(-24*time.Hour), now)
}

// Weekly reports over the last 7 days.
func (s ReportsService) Weekly(actor domain.Actor) (RevenueReport, error) {
	now := clock(s.Now)
	return s.Report(actor, now.AddDate(0, 0, -7), now)
}

// Monthly reports over the last month.
func (s ReportsService) Monthly(actor domain.Actor) (RevenueReport, error) {
	now := clock(s.Now)
	return s.Report(actor, now.AddDate(0, -1, 0), now)
}

// Yearly reports over the last year.
func (s ReportsService) Yearly(actor domain.Actor) (RevenueReport, error) {
	now := clock(s.Now)
	return s.Report(actor, now.AddDate(-1, 0, 0), now)
}

// CustomerAnalytics summarizes the customer base. Active means at least one
// confirmed booking on record (totalBookings > 0); retention is the active
// share as a percentage.
func (s ReportsService) CustomerAnalytics(actor domain.Actor) (CustomerReport, error) {
	if err := requireReports(actor); err != nil {
		return CustomerReport{}, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	rep := CustomerReport{CustomersByLocation: map[string]int{}}

	totalSpent := 0.0
	for _, c := range s.Store.Customers.All() {
		rep.TotalCustomers++
		if c.TotalBookings > 0 {
			rep.ActiveCustomers++
		}
		if c.IsVip {
			rep.VipCustomers++
		}
		totalSpent += c.TotalSpent
		rep.CustomersByLocation[locationOf(c.Address)]++
	}

	if rep.TotalCustomers > 0 {
		rep.AverageCustomerValue = totalSpent / float64(rep.TotalCustomers)
		rep.RetentionRate = float64(rep.ActiveCustomers) / float64(rep.TotalCustomers) * 100
	}
	rep.TopCustomers = s.topCustomers(5)

	return rep, nil
}

// TopCustomers returns the n highest spenders, ties broken by registration
// order.
func (s ReportsService) TopCustomers(actor domain.Actor, n int) ([]models.Customer, error) {
	if err := requireReports(actor); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, domain.E(domain.KindInvalidData, "n must be positive")
	}

	s.Store.Lock()
	defer s.Store.Unlock()
	return s.topCustomers(n), nil
}

func (s ReportsService) topCustomers(n int) []models.Customer {
	customers := s.Store.Customers.All()
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].TotalSpent > customers[j].TotalSpent
	})
	if n < len(customers) {
		customers = customers[:n]
	}
	return customers
}

// CustomerLifetimeValue returns the customer's accrued spend.
func (s ReportsService) CustomerLifetimeValue(actor domain.Actor, customerID string) (float64, error) {
	if err := requireReports(actor); err != nil {
		return 0, err
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	c, ok := s.Store.Customers.Get(customerID)
	if !ok {
		return 0, domain.Ef(domain.KindNotFound, "customer %s not found", customerID)
	}
	return c.TotalSpent, nil
}

// locationOf derives a coarse location from the address: the substring after
// the last comma, or "unknown" when there is no comma.
func locationOf(address string) string {
	i := strings.LastIndex(address, ",")
	if i < 0 {
		return "unknown"
	}
	loc := strings.TrimSpace(address[i+1:])
	if loc == "" {
		return "unknown"
	}
	return loc
}
