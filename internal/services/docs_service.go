package services

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"

	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
	"tourmate/internal/utils"
)

// DocsService renders trip receipts and revenue reports as PDFs.
type DocsService struct {
	Store     *repositories.Store
	RequestID string
	Now       func() time.Time
}

// TripReceipt renders the receipt for a completed or refunded booking.
func (s DocsService) TripReceipt(actor domain.Actor, bookingID string) ([]byte, string, error) {
	if err := requireView(actor); err != nil {
		return nil, "", err
	}

	s.Store.Lock()
	b, ok := s.Store.Bookings.Get(bookingID)
	customerName := "Unknown"
	if ok {
		if c, found := s.Store.Customers.Get(b.CustomerID); found {
			customerName = c.Name
		}
	}
	s.Store.Unlock()

	if !ok {
		return nil, "", domain.Ef(domain.KindNotFound, "booking %s not found", bookingID)
	}
	if b.Status != models.StatusCompleted && b.Status != models.StatusRefunded {
		return nil, "", domain.Ef(domain.KindInvalidData, "booking %s has no settled trip to receipt", bookingID)
	}

	utils.LogEvent(s.RequestID, "DOCS", "trip_receipt", "booking "+bookingID)
	return buildReceiptPDF(b, customerName)
}

// RevenueReportPDF renders the revenue report for [start, end).
func (s DocsService) RevenueReportPDF(actor domain.Actor, start, end time.Time) ([]byte, string, error) {
	rep, err := ReportsService{Store: s.Store, RequestID: s.RequestID, Now: s.Now}.Report(actor, start, end)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "DOCS", "revenue_report_pdf",
		utils.FormatDate(start)+" to "+utils.FormatDate(end))
	return buildRevenueReportPDF(rep)
}

func buildReceiptPDF(b models.Booking, customerName string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking      : %s", b.ID),
		fmt.Sprintf("Customer     : %s (%s)", customerName, b.CustomerID),
		fmt.Sprintf("Vehicle      : %s", b.VehicleID),
		fmt.Sprintf("Route        : %s", b.Route()),
		fmt.Sprintf("Departure    : %s", utils.FormatDateTime(b.DepartureAt)),
		fmt.Sprintf("Trip type    : %s", b.TripType),
		fmt.Sprintf("Passengers   : %d", b.Passengers),
		fmt.Sprintf("Payment      : %s", b.PaymentMethod),
		fmt.Sprintf("Status       : %s", b.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Fare")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Base fare    : $"+utils.FormatMoney(b.BaseFare))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Discount     : -$"+utils.FormatMoney(b.Discount))
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total        : $"+utils.FormatMoney(b.TotalFare))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for travelling with us.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("RECEIPT_%s.pdf", b.ID), nil
}

func buildRevenueReportPDF(rep RevenueReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Revenue Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "REVENUE REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Window            : %s to %s", utils.FormatDate(rep.StartAt), utils.FormatDate(rep.EndAt)),
		fmt.Sprintf("Total revenue     : $%s", utils.FormatMoney(rep.TotalRevenue)),
		fmt.Sprintf("Total refunds     : $%s", utils.FormatMoney(rep.TotalRefunds)),
		fmt.Sprintf("Net revenue       : $%s", utils.FormatMoney(rep.NetRevenue)),
		fmt.Sprintf("Transactions      : %d", rep.TotalTransactions),
		fmt.Sprintf("Bookings          : %d", rep.TotalBookings),
		fmt.Sprintf("Completed trips   : %d", rep.CompletedTrips),
		fmt.Sprintf("Cancelled         : %d", rep.CancelledBookings),
		fmt.Sprintf("Avg transaction   : $%s", utils.FormatMoney(rep.AverageTransactionValue)),
		fmt.Sprintf("Top vehicle       : %s", orDash(rep.TopVehicle)),
		fmt.Sprintf("Top route         : %s", orDash(rep.TopRoute)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if len(rep.RevenueByVehicle) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Revenue by vehicle")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, id := range sortedKeys(rep.RevenueByVehicle) {
			pdf.Cell(0, 6, fmt.Sprintf("%s: $%s", id, utils.FormatMoney(rep.RevenueByVehicle[id])))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("REVENUE_%s_%s.pdf", utils.FormatDate(rep.StartAt), utils.FormatDate(rep.EndAt))
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
