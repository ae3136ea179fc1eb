package services

import (
	"strings"
	"testing"
	"time"

	"raildesk/internal/domain/models"
)

func TestDocsServiceGenerate(t *testing.T) {
	bp := 30.0
	ticket := models.IssuedTicket{
		DraftTicket: models.DraftTicket{
			Route: &models.RouteSelection{
				FromStation:   "Kyiv",
				ToStation:     "Warsaw",
				DepartureDate: "2026-09-01",
				DepartureTime: "2026-09-01T06:45",
				BasePrice:     &bp,
			},
			PassengerCount:      2,
			PassengerCategories: models.PassengerCategories{Adults: 1, Children: 1},
			ReturnType:          models.ReturnRoundTripFixed,
			ReturnDate:          "2026-09-10",
			Passengers: []models.Passenger{
				{Category: models.CategoryAdult, Discount: models.NoDiscount, SeatNumber: "12A", CarNumber: "4"},
				{Category: models.CategoryChild, Discount: "Family Card"},
			},
			AdditionalServices: []models.AdditionalService{
				{ID: "meal-1", Name: "Hot meal", Category: models.ServiceFood, Quantity: 2, TotalPrice: 18},
			},
			BasePrice:  30,
			TotalPrice: 108,
		},
		IssuedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
	}

	svc := DocsService{SessionID: "test-desk"}

	pdf, filename, err := svc.GenerateETicket(ticket, 0)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("GenerateETicket returned empty data")
	}
	if !strings.HasPrefix(filename, "ETICKET_0001_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceHandlesSparseTicket(t *testing.T) {
	ticket := models.IssuedTicket{
		DraftTicket: models.DraftTicket{
			PassengerCount: 1,
			ReturnType:     models.ReturnOneWay,
			Passengers:     []models.Passenger{{Category: models.CategoryAdult, Discount: models.NoDiscount}},
		},
		IssuedAt: time.Now().UTC(),
	}

	svc := DocsService{SessionID: "test-desk"}
	pdf, _, err := svc.GenerateETicket(ticket, 3)
	if err != nil {
		t.Fatalf("sparse ticket should still render: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("sparse ticket rendered empty PDF")
	}
}
