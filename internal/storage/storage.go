// Package storage defines the tabular persistence boundary. Implementations
// read and write whole collections at a time; callers own decoding rows into
// entities. Writes are full rewrites, not appends, so write cost is O(total
// rows) per mutation. Fine at single-fleet scale.
package storage

// EntityKind names a persisted collection.
type EntityKind string

const (
	KindCustomers EntityKind = "customers"
	KindBookings  EntityKind = "bookings"
	KindSales     EntityKind = "sales"
	KindVehicles  EntityKind = "vehicles"
	KindUsers     EntityKind = "users"
)

// Schemas holds the order-significant column names of every collection.
var Schemas = map[EntityKind][]string{
	KindCustomers: {"customerId", "name", "email", "phone", "address", "registrationDate", "totalBookings", "totalSpent", "isVip"},
	KindBookings:  {"bookingId", "customerId", "vehicleId", "fromLocation", "toLocation", "departureTime", "arrivalTime", "tripType", "passengers", "baseFare", "totalFare", "discount", "paymentMethod", "status", "specialRequests", "bookingDate", "bookedBy"},
	KindSales:     {"salesId", "vehicleId", "customerId", "customerName", "totalAmount", "saleDate", "paymentMethod"},
	KindVehicles:  {"vehicleId", "model", "farePerKm", "status"},
	KindUsers:     {"username", "passwordHash", "role", "createdAt"},
}

// Gateway is the generic read-all/write-all persistence service.
type Gateway interface {
	// LoadAll returns every data row of the collection, header excluded.
	// A missing backing file/table is an empty collection, not an error.
	LoadAll(kind EntityKind) ([][]string, error)
	// SaveAll replaces the whole collection.
	SaveAll(kind EntityKind, rows [][]string) error
}
