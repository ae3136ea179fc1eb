package pricing

import (
	"testing"

	"raildesk/internal/domain/models"
)

func TestOneAdultOneWay(t *testing.T) {
	passengers := []models.Passenger{{Category: models.CategoryAdult, Discount: models.NoDiscount}}

	b := Compute(30, passengers, models.ReturnOneWay, nil)
	if b.Total != 30 {
		t.Fatalf("one adult one-way: got %v want 30", b.Total)
	}
}

func TestRoundTripDoubles(t *testing.T) {
	passengers := []models.Passenger{{Category: models.CategoryAdult, Discount: models.NoDiscount}}

	open := Compute(30, passengers, models.ReturnRoundTripOpen, nil)
	if open.Total != 60 {
		t.Fatalf("round-trip-open: got %v want 60", open.Total)
	}

	// fixed return date is informational only, same multiplier
	fixed := Compute(30, passengers, models.ReturnRoundTripFixed, nil)
	if fixed.Total != 60 {
		t.Fatalf("round-trip-fixed: got %v want 60", fixed.Total)
	}
}

func TestCategoryAndDiscountCompose(t *testing.T) {
	passengers := []models.Passenger{{Category: models.CategorySenior, Discount: "Family Card"}}

	b := Compute(100, passengers, models.ReturnOneWay, nil)
	if b.Total != 35 {
		t.Fatalf("senior 0.7 x card 0.5 on 100: got %v want 35", b.Total)
	}
	if len(b.PassengerFares) != 1 || b.PassengerFares[0] != 35 {
		t.Fatalf("per-passenger fare wrong: %v", b.PassengerFares)
	}
}

func TestServicesAdditivity(t *testing.T) {
	passengers := []models.Passenger{{Category: models.CategorySenior, Discount: "Family Card"}}
	services := []models.AdditionalService{
		{ID: "meal-1", Name: "Hot meal", Category: models.ServiceFood, Quantity: 1, TotalPrice: 10},
		{ID: "bag-1", Name: "Extra luggage", Category: models.ServiceLuggage, Quantity: 1, TotalPrice: 5},
	}

	b := Compute(100, passengers, models.ReturnOneWay, services)
	if b.ServicesSubtotal != 15 {
		t.Fatalf("services subtotal: got %v want 15", b.ServicesSubtotal)
	}
	if b.Total != 50 {
		t.Fatalf("fare 35 + services 15: got %v want 50", b.Total)
	}
}

func TestUnknownDiscountFallback(t *testing.T) {
	info := LookupDiscount("Nonexistent Card")
	if info.Class != DiscountUnknown {
		t.Fatalf("unknown label should resolve as DiscountUnknown, got %d", info.Class)
	}
	if info.Factor != UnknownDiscountFactor {
		t.Fatalf("unknown label factor: got %v want %v", info.Factor, UnknownDiscountFactor)
	}

	passengers := []models.Passenger{{Category: models.CategoryAdult, Discount: "Nonexistent Card"}}
	b := Compute(100, passengers, models.ReturnOneWay, nil)
	if b.Total != 70 {
		t.Fatalf("unknown discount must price at 0.7, got %v", b.Total)
	}
}

func TestNoDiscountVariants(t *testing.T) {
	for _, label := range []string{"", "no discount", "No Discount", "  no discount  "} {
		info := LookupDiscount(label)
		if info.Class != DiscountNone || info.Factor != 1.0 {
			t.Fatalf("label %q should be DiscountNone factor 1.0, got %+v", label, info)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	bp := 75.0
	draft := &models.DraftTicket{
		Route:      &models.RouteSelection{FromStation: "Kyiv", ToStation: "Warsaw", DepartureDate: "2026-09-01", BasePrice: &bp},
		BasePrice:  75,
		ReturnType: models.ReturnRoundTripOpen,
		Passengers: []models.Passenger{
			{Category: models.CategoryAdult, Discount: models.NoDiscount},
			{Category: models.CategoryChild, Discount: "Family Card"},
		},
		AdditionalServices: []models.AdditionalService{
			{ID: "ins-1", Category: models.ServiceInsurance, Quantity: 1, TotalPrice: 12.5},
		},
	}

	first := ComputeTicket(draft)
	second := ComputeTicket(draft)
	if first.Total != second.Total {
		t.Fatalf("recompute not idempotent: %v then %v", first.Total, second.Total)
	}
	// adult 75 + child 75*0.5*0.5 = 93.75, doubled = 187.5, + 12.5
	if first.Total != 200 {
		t.Fatalf("breakdown total: got %v want 200", first.Total)
	}
}

func TestCategoryFactors(t *testing.T) {
	cases := map[models.PassengerCategory]float64{
		models.CategoryAdult:   1.0,
		models.CategoryChild:   0.5,
		models.CategorySenior:  0.7,
		models.CategoryStudent: 0.8,
	}
	for cat, want := range cases {
		if got := CategoryFactor(cat); got != want {
			t.Fatalf("factor for %s: got %v want %v", cat, got, want)
		}
	}
}
