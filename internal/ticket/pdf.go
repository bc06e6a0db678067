// Package ticket renders a booking record as a downloadable PDF ticket.
package ticket

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/wookrail/trainbooking/internal/domain"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the ticket PDF for a booking.
func (r *Renderer) Render(booking *domain.Booking) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pdf.SetTextColor(242, 107, 33)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(50, 60, "WOOK Train Ticket")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(50, 100, "Booking Details:")

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR Number: %s", booking.PNR),
		fmt.Sprintf("Passenger Name: %s", booking.Passenger),
		fmt.Sprintf("Age: %d", booking.Age),
		fmt.Sprintf("Train Number: %s", booking.TrainNo),
		fmt.Sprintf("Berth Type: %s", booking.BerthClass),
		fmt.Sprintf("Date of Travel: %s", booking.TravelDate),
		fmt.Sprintf("Booking Status: %s", booking.Status),
	}
	y := 130.0
	for _, line := range lines {
		pdf.Text(70, y, line)
		y += 20
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.Text(50, 740, "Thank you for booking with WOOK!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the suggested download name for a ticket.
func Filename(pnr string) string {
	return fmt.Sprintf("WOOK_Ticket_%s.pdf", pnr)
}
