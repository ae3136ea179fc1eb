package services

import (
	"bytes"
	"fmt"
	"strings"

	"raildesk/internal/domain/models"
	"raildesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable PDFs for issued tickets.
type DocsService struct {
	SessionID string
}

// GenerateETicket renders one issued ticket. The snapshot already carries
// everything the printout needs; nothing is reloaded or repriced.
func (s DocsService) GenerateETicket(t models.IssuedTicket, index int) ([]byte, string, error) {
	utils.LogEvent(s.SessionID, "docs", "generate_eticket", fmt.Sprintf("issued_index=%d", index))
	return buildETicketPDF(t, index)
}

func buildETicketPDF(t models.IssuedTicket, index int) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INTERNATIONAL E-TICKET")
	pdf.Ln(12)

	from, to, via, depDate, depTime := "-", "-", "", "-", ""
	if t.Route != nil {
		from = safe(t.Route.FromStation, "-")
		to = safe(t.Route.ToStation, "-")
		via = strings.TrimSpace(t.Route.ViaStation)
		depDate = safe(t.Route.DepartureDate, "-")
		depTime = strings.TrimSpace(t.Route.DepartureTime)
	}

	route := fmt.Sprintf("%s -> %s", from, to)
	if via != "" {
		route = fmt.Sprintf("%s -> %s (via %s)", from, to, via)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket no    : TKT-%s-%04d", t.IssuedAt.Format("20060102"), index+1),
		fmt.Sprintf("Route        : %s", route),
		fmt.Sprintf("Departure    : %s %s", depDate, depTime),
		fmt.Sprintf("Trip         : %s", string(t.ReturnType)),
	}
	if t.ReturnDate != "" {
		lines = append(lines, fmt.Sprintf("Return date  : %s", t.ReturnDate))
	}
	lines = append(lines,
		fmt.Sprintf("Passengers   : %d", t.PassengerCount),
		fmt.Sprintf("Issued at    : %s (UTC)", utils.FormatDateTime(t.IssuedAt)),
	)
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for i, p := range t.Passengers {
		seat := ""
		if p.SeatNumber != "" || p.CarNumber != "" {
			seat = fmt.Sprintf(", car %s seat %s", safe(p.CarNumber, "-"), safe(p.SeatNumber, "-"))
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("%d) %s, %s%s", i+1, p.Category, safe(p.Discount, models.NoDiscount), seat), "", "", false)
	}

	if len(t.AdditionalServices) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Additional services:")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, svc := range t.AdditionalServices {
			pdf.MultiCell(0, 6, fmt.Sprintf("- %s x%d: %s", safe(svc.Name, string(svc.Category)), svc.Quantity, utils.FormatMoney(svc.TotalPrice)), "", "", false)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(t.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: present this ticket together with a valid travel document at boarding. Document-backed discounts require the named document.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%04d_%s.pdf", index+1, safeFilenamePart(from+"_"+to))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
