package pricing

import "raildesk/internal/domain/models"

// Breakdown mirrors what the desk UI renders under the running total.
type Breakdown struct {
	PassengerFares    []float64 `json:"passengerFares"`
	PassengerSubtotal float64   `json:"passengerSubtotal"`
	ReturnMultiplier  float64   `json:"returnMultiplier"`
	ServicesSubtotal  float64   `json:"servicesSubtotal"`
	Total             float64   `json:"total"`
}

// Compute prices a draft from its inputs. Pure: no rounding, no state.
// Service totals come pre-priced from the selection step and are summed
// as given.
func Compute(
	basePrice float64,
	passengers []models.Passenger,
	returnType models.ReturnType,
	services []models.AdditionalService,
) Breakdown {
	fares := make([]float64, len(passengers))
	var subtotal float64
	for i, p := range passengers {
		fare := basePrice * CategoryFactor(p.Category) * LookupDiscount(p.Discount).Factor
		fares[i] = fare
		subtotal += fare
	}

	multiplier := 1.0
	if returnType.RoundTrip() {
		multiplier = 2.0
	}
	subtotal *= multiplier

	var servicesTotal float64
	for _, svc := range services {
		servicesTotal += svc.TotalPrice
	}

	return Breakdown{
		PassengerFares:    fares,
		PassengerSubtotal: subtotal,
		ReturnMultiplier:  multiplier,
		ServicesSubtotal:  servicesTotal,
		Total:             subtotal + servicesTotal,
	}
}

// ComputeTicket recomputes the derived total for a draft.
func ComputeTicket(t *models.DraftTicket) Breakdown {
	return Compute(t.BasePrice, t.Passengers, t.ReturnType, t.AdditionalServices)
}
