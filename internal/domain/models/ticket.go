package models

import "time"

// ReturnType decides whether the passenger-fare subtotal is doubled.
type ReturnType string

const (
	ReturnOneWay         ReturnType = "one-way"
	ReturnRoundTripOpen  ReturnType = "round-trip-open"
	ReturnRoundTripFixed ReturnType = "round-trip-fixed"
)

func (rt ReturnType) Valid() bool {
	switch rt {
	case ReturnOneWay, ReturnRoundTripOpen, ReturnRoundTripFixed:
		return true
	}
	return false
}

// RoundTrip reports whether the fare doubles. The fixed return date is
// informational only; open and fixed round trips price the same.
func (rt ReturnType) RoundTrip() bool {
	return rt == ReturnRoundTripOpen || rt == ReturnRoundTripFixed
}

type PassengerCategory string

const (
	CategoryAdult   PassengerCategory = "adult"
	CategoryChild   PassengerCategory = "child"
	CategorySenior  PassengerCategory = "senior"
	CategoryStudent PassengerCategory = "student"
)

// MaxPerCategory caps each counter the wizard exposes.
const MaxPerCategory = 9

// NoDiscount is the default discount label on a fresh passenger.
const NoDiscount = "no discount"

type PassengerCategories struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Seniors  int `json:"seniors"`
	Students int `json:"students"`
}

func (p PassengerCategories) Sum() int {
	return p.Adults + p.Children + p.Seniors + p.Students
}

func (p PassengerCategories) Valid() bool {
	for _, n := range []int{p.Adults, p.Children, p.Seniors, p.Students} {
		if n < 0 || n > MaxPerCategory {
			return false
		}
	}
	return true
}

// Units expands the counters into one category tag per passenger slot,
// adults first. Passenger lists are regenerated in this order.
func (p PassengerCategories) Units() []PassengerCategory {
	out := make([]PassengerCategory, 0, p.Sum())
	for i := 0; i < p.Adults; i++ {
		out = append(out, CategoryAdult)
	}
	for i := 0; i < p.Children; i++ {
		out = append(out, CategoryChild)
	}
	for i := 0; i < p.Seniors; i++ {
		out = append(out, CategorySenior)
	}
	for i := 0; i < p.Students; i++ {
		out = append(out, CategoryStudent)
	}
	return out
}

// RouteSelection mirrors what the connection search supplies to the wizard.
type RouteSelection struct {
	FromStation   string   `json:"fromStation"`
	ToStation     string   `json:"toStation"`
	ViaStation    string   `json:"viaStation,omitempty"`
	DepartureDate string   `json:"departureDate"`
	DepartureTime string   `json:"departureTime,omitempty"`
	BasePrice     *float64 `json:"basePrice,omitempty"`
}

type Passenger struct {
	Category       PassengerCategory `json:"category"`
	Discount       string            `json:"discount"`
	DocumentNumber string            `json:"documentNumber,omitempty"`
	SeatNumber     string            `json:"seatNumber,omitempty"`
	CarNumber      string            `json:"carNumber,omitempty"`
}

type ServiceCategory string

const (
	ServiceAccommodation ServiceCategory = "accommodation"
	ServiceFood          ServiceCategory = "food"
	ServiceLuggage       ServiceCategory = "luggage"
	ServiceInsurance     ServiceCategory = "insurance"
	ServiceAssistance    ServiceCategory = "assistance"
)

// AdditionalService totals are computed by the selection step and summed
// as given; the pricing engine never reprices a service.
type AdditionalService struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        ServiceCategory `json:"category"`
	Quantity        int             `json:"quantity"`
	SelectedOptions []string        `json:"selectedOptions,omitempty"`
	TotalPrice      float64         `json:"totalPrice"`
}

// DraftTicket is the single in-progress ticket a desk session composes.
// TotalPrice is always derived; only the store writes it.
type DraftTicket struct {
	Route               *RouteSelection     `json:"route"`
	PassengerCount      int                 `json:"passengerCount"`
	PassengerCategories PassengerCategories `json:"passengerCategories"`
	ReturnType          ReturnType          `json:"returnType"`
	ReturnDate          string              `json:"returnDate,omitempty"`
	Passengers          []Passenger         `json:"passengers"`
	AdditionalServices  []AdditionalService `json:"additionalServices"`
	BasePrice           float64             `json:"basePrice"`
	TotalPrice          float64             `json:"totalPrice"`
}

// Clone deep-copies the draft so selectors and issued snapshots never alias
// the live aggregate.
func (t *DraftTicket) Clone() *DraftTicket {
	if t == nil {
		return nil
	}
	out := *t
	if t.Route != nil {
		route := *t.Route
		if t.Route.BasePrice != nil {
			bp := *t.Route.BasePrice
			route.BasePrice = &bp
		}
		out.Route = &route
	}
	out.Passengers = append([]Passenger(nil), t.Passengers...)
	out.AdditionalServices = make([]AdditionalService, len(t.AdditionalServices))
	for i, svc := range t.AdditionalServices {
		out.AdditionalServices[i] = svc
		out.AdditionalServices[i].SelectedOptions = append([]string(nil), svc.SelectedOptions...)
	}
	return &out
}

// IssuedTicket is an immutable snapshot of a finalized draft.
type IssuedTicket struct {
	DraftTicket
	IssuedAt time.Time `json:"issuedAt"`
}
