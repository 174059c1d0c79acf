package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"tourmate/internal/domain"
)

func TestTripReceiptProducesPDF(t *testing.T) {
	store, bookings := defaultFixture(t)

	b, err := bookings.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "Leeds", ToLocation: "York",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 2,
	})
	require.NoError(t, err)
	_, err = bookings.Confirm(staffActor, b.ID, "Credit Card")
	require.NoError(t, err)
	_, err = bookings.StartTrip(staffActor, b.ID)
	require.NoError(t, err)
	_, err = bookings.CompleteTrip(staffActor, b.ID, 0)
	require.NoError(t, err)

	docs := DocsService{Store: store, Now: fixedClock("2024-03-02 10:00:00")}
	data, filename, err := docs.TripReceipt(staffActor, b.ID)
	require.NoError(t, err)
	require.Equal(t, "RECEIPT_BK1.pdf", filename)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "not a PDF payload")
}

func TestTripReceiptRejectsUnsettledBooking(t *testing.T) {
	store, bookings := defaultFixture(t)

	b, err := bookings.Create(staffActor, BookingInput{
		CustomerID: "CU1", VehicleID: "V1", FromLocation: "A", ToLocation: "B",
		DepartureTime: "2024-03-02 08:00:00", TripType: "One Way", Passengers: 1,
	})
	require.NoError(t, err)

	docs := DocsService{Store: store}
	_, _, err = docs.TripReceipt(staffActor, b.ID)
	require.True(t, domain.IsInvalidData(err))

	_, _, err = docs.TripReceipt(staffActor, "BK99")
	require.True(t, domain.IsNotFound(err))
}

func TestRevenueReportPDF(t *testing.T) {
	store := newTestStore(t)
	seedReportData(t, store)

	docs := DocsService{Store: store}
	data, filename, err := docs.RevenueReportPDF(adminActor,
		fixedClock("2024-03-01 00:00:00")(),
		fixedClock("2024-03-02 00:00:00")())
	require.NoError(t, err)
	require.Equal(t, "REVENUE_2024-03-01_2024-03-02.pdf", filename)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "not a PDF payload")

	_, _, err = docs.RevenueReportPDF(staffActor,
		fixedClock("2024-03-01 00:00:00")(),
		fixedClock("2024-03-02 00:00:00")())
	require.True(t, domain.IsPermissionDenied(err))
}
