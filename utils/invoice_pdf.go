package utils

import (
	"bytes"
	"fmt"
	"time"

	"cleaning-crm/models"

	"github.com/jung-kurt/gofpdf"
)

// BuildInvoicePDF renders the booking invoice attached to confirmation
// emails. The booking must carry its Customer and ServiceItems.
func BuildInvoicePDF(booking models.Booking, companyName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, companyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, "Cleaning Service Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice date: %s", time.Now().Format("2 January 2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Booking reference: %s", booking.ReferenceCode))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Customer")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, booking.Customer.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, booking.Customer.Email)
	pdf.Ln(6)
	pdf.Cell(0, 6, booking.Customer.Phone)
	pdf.Ln(6)
	pdf.Cell(0, 6, booking.Customer.Address)
	pdf.Ln(6)
	customerType := "Private"
	if booking.IsBusinessCustomer {
		customerType = "Business"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Customer type: %s", customerType))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Service details")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	rows := [][2]string{
		{"Cleaning type", booking.CleaningType},
		{"Area", fmt.Sprintf("%.0f sq meters", booking.Area)},
		{"Date", booking.DateTime.Format("2 January 2006, 15:04")},
		{"Duration", fmt.Sprintf("%d hours", booking.Duration)},
		{"Price", fmt.Sprintf("EUR %.2f", booking.Price)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}

	if len(booking.ServiceItems) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Additional services")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		for i, item := range booking.ServiceItems {
			line := fmt.Sprintf("%d. %s", i+1, item.Name)
			if item.Frequency != "" {
				line += fmt.Sprintf(" (%s)", item.Frequency)
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
			if item.Description != "" {
				pdf.Cell(0, 6, "    "+item.Description)
				pdf.Ln(6)
			}
		}
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Bank: %s  IBAN: %s",
		EnvOrDefault("BANK_NAME", "RECT Bank AB"),
		EnvOrDefault("BANK_IBAN", "SE12 3456 7890 1234")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
