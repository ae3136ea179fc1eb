package services

import (
	"fmt"
	"strings"
	"sync"

	"raildesk/internal/domain/models"
	"raildesk/internal/pricing"
	"raildesk/internal/utils"
)

// RouteSelectionPayload mirrors what a connection-search result supplies.
type RouteSelectionPayload struct {
	FromStation   string                      `json:"fromStation"`
	ToStation     string                      `json:"toStation"`
	ViaStation    string                      `json:"viaStation"`
	DepartureDate string                      `json:"departureDate"`
	DepartureTime string                      `json:"departureTime"`
	BasePrice     *float64                    `json:"basePrice"`
	Passengers    *models.PassengerCategories `json:"passengers"`
}

// PassengerUpdate merges its non-nil fields into one passenger.
type PassengerUpdate struct {
	Discount       *string `json:"discount"`
	DocumentNumber *string `json:"documentNumber"`
	SeatNumber     *string `json:"seatNumber"`
	CarNumber      *string `json:"carNumber"`
}

// TicketStore owns the one live draft and the issued-ticket history of a
// desk session. All ticket state flows through its mutation methods; each
// mutation recomputes the derived total before returning. A mutation that
// needs a draft and finds none is a logged no-op, never a panic.
type TicketStore struct {
	mu        sync.Mutex
	sessionID string
	current   *models.DraftTicket
	issued    []models.IssuedTicket
}

func NewTicketStore(sessionID string) *TicketStore {
	return &TicketStore{sessionID: sessionID}
}

// StartNewTicket replaces any unfinished draft with a fresh one and clears
// the issued history. Abandon-and-restart semantics: the previous draft is
// deliberately lost, not merged.
func (s *TicketStore) StartNewTicket() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &models.DraftTicket{
		PassengerCount:      1,
		PassengerCategories: models.PassengerCategories{Adults: 1},
		ReturnType:          models.ReturnOneWay,
		Passengers: []models.Passenger{
			{Category: models.CategoryAdult, Discount: models.NoDiscount},
		},
		AdditionalServices: []models.AdditionalService{},
	}
	s.issued = nil
	s.recompute()
	utils.LogEvent(s.sessionID, "ticket", "start", "new draft started, history cleared")
}

// SetRouteSelection overwrites the route; re-selecting before issue is
// allowed. An embedded base price overwrites the draft's price inputs and
// an embedded category map regenerates the passenger list.
func (s *TicketStore) SetRouteSelection(p RouteSelectionPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("set_route") {
		return
	}

	// Detach the price from the caller's payload so later mutations of it
	// cannot reach into the draft.
	var basePrice *float64
	if p.BasePrice != nil {
		v := *p.BasePrice
		basePrice = &v
	}

	s.current.Route = &models.RouteSelection{
		FromStation:   utils.NormalizeSpace(p.FromStation),
		ToStation:     utils.NormalizeSpace(p.ToStation),
		ViaStation:    utils.NormalizeSpace(p.ViaStation),
		DepartureDate: utils.TrimOrEmpty(p.DepartureDate),
		DepartureTime: utils.TrimOrEmpty(p.DepartureTime),
		BasePrice:     basePrice,
	}

	if p.BasePrice != nil {
		s.current.BasePrice = *p.BasePrice
		s.current.TotalPrice = *p.BasePrice // stale until recompute below
	}

	if p.Passengers != nil {
		if p.Passengers.Valid() && p.Passengers.Sum() >= 1 {
			s.regeneratePassengers(*p.Passengers)
		} else {
			utils.LogEvent(s.sessionID, "ticket", "set_route",
				fmt.Sprintf("ignoring invalid passenger map (sum=%d)", p.Passengers.Sum()))
		}
	}

	s.recompute()
}

// SetPassengerCategories replaces the category counters and regenerates the
// passenger list, one default passenger per unit. Regeneration is
// destructive: prior per-passenger discounts and seats are discarded.
// A map that would drive the total to zero (or breach the per-category
// cap) is rejected as a logged no-op.
func (s *TicketStore) SetPassengerCategories(c models.PassengerCategories) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("set_categories") {
		return
	}
	if !c.Valid() {
		utils.LogEvent(s.sessionID, "ticket", "set_categories", "counter out of range, ignored")
		return
	}
	if c.Sum() < 1 {
		utils.LogEvent(s.sessionID, "ticket", "set_categories", "at least one passenger required, ignored")
		return
	}

	s.regeneratePassengers(c)
	s.recompute()
}

// SetPassengerCount adjusts the total passenger count as a convenience over
// the category map: growth appends default adults, shrinkage truncates from
// the end and decrements the matching counters. Count therefore never
// drifts from the sum of the categories.
func (s *TicketStore) SetPassengerCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("set_count") {
		return
	}
	if n < 1 {
		n = 1
	}

	for s.current.PassengerCategories.Sum() < n {
		if s.current.PassengerCategories.Adults >= models.MaxPerCategory {
			utils.LogEvent(s.sessionID, "ticket", "set_count", "adult counter at cap, growth stopped")
			break
		}
		s.current.PassengerCategories.Adults++
		s.current.Passengers = append(s.current.Passengers, models.Passenger{
			Category: models.CategoryAdult,
			Discount: models.NoDiscount,
		})
	}

	for s.current.PassengerCategories.Sum() > n {
		last := len(s.current.Passengers) - 1
		removed := s.current.Passengers[last]
		s.current.Passengers = s.current.Passengers[:last]
		switch removed.Category {
		case models.CategoryChild:
			s.current.PassengerCategories.Children--
		case models.CategorySenior:
			s.current.PassengerCategories.Seniors--
		case models.CategoryStudent:
			s.current.PassengerCategories.Students--
		default:
			s.current.PassengerCategories.Adults--
		}
	}

	s.current.PassengerCount = s.current.PassengerCategories.Sum()
	s.recompute()
}

// SetReturnType switches the trip mode. Leaving round-trip-fixed clears the
// return date.
func (s *TicketStore) SetReturnType(rt models.ReturnType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("set_return_type") {
		return
	}
	if !rt.Valid() {
		utils.LogEvent(s.sessionID, "ticket", "set_return_type", "unknown return type "+string(rt)+", ignored")
		return
	}

	s.current.ReturnType = rt
	if rt != models.ReturnRoundTripFixed {
		s.current.ReturnDate = ""
	}
	s.recompute()
}

// SetReturnDate is a no-op unless the draft is in round-trip-fixed mode.
func (s *TicketStore) SetReturnDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("set_return_date") {
		return
	}
	if s.current.ReturnType != models.ReturnRoundTripFixed {
		utils.LogEvent(s.sessionID, "ticket", "set_return_date", "return type is not round-trip-fixed, ignored")
		return
	}

	s.current.ReturnDate = utils.TrimOrEmpty(date)
	s.recompute()
}

// UpdatePassenger merges partial data into the passenger at index. An
// out-of-range index does nothing.
func (s *TicketStore) UpdatePassenger(index int, upd PassengerUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("update_passenger") {
		return
	}
	if index < 0 || index >= len(s.current.Passengers) {
		utils.LogEvent(s.sessionID, "ticket", "update_passenger",
			fmt.Sprintf("index %d out of range, ignored", index))
		return
	}

	p := &s.current.Passengers[index]
	if upd.Discount != nil {
		label := utils.TrimOrEmpty(*upd.Discount)
		if pricing.LookupDiscount(label).Class == pricing.DiscountUnknown {
			// legacy behavior prices unknown labels at the fallback factor;
			// log so a typo is at least visible in the desk logs
			utils.LogEvent(s.sessionID, "ticket", "update_passenger",
				fmt.Sprintf("unknown discount label %q, fallback factor applies", label))
		}
		p.Discount = label
	}
	if upd.DocumentNumber != nil {
		p.DocumentNumber = utils.TrimOrEmpty(*upd.DocumentNumber)
	}
	if upd.SeatNumber != nil {
		p.SeatNumber = utils.NormalizeSeat(*upd.SeatNumber)
	}
	if upd.CarNumber != nil {
		p.CarNumber = utils.NormalizeSeat(*upd.CarNumber)
	}
	s.recompute()
}

// SetAdditionalServices replaces the services list wholesale; the caller
// sends the full desired list, not a delta.
func (s *TicketStore) SetAdditionalServices(list []models.AdditionalService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("set_services") {
		return
	}

	s.current.AdditionalServices = make([]models.AdditionalService, len(list))
	for i, svc := range list {
		s.current.AdditionalServices[i] = svc
		s.current.AdditionalServices[i].SelectedOptions = append([]string(nil), svc.SelectedOptions...)
	}
	s.recompute()
}

// IssueTicket snapshots the draft into the append-only history and clears
// the live slot. Returns the snapshot, or ok=false when no draft exists.
func (s *TicketStore) IssueTicket() (models.IssuedTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireDraft("issue") {
		return models.IssuedTicket{}, false
	}

	snap := models.IssuedTicket{
		DraftTicket: *s.current.Clone(),
		IssuedAt:    utils.NowUTC(),
	}
	s.issued = append(s.issued, snap)
	s.current = nil
	utils.LogEvent(s.sessionID, "ticket", "issue",
		fmt.Sprintf("ticket issued, total=%s, history=%d", utils.FormatMoney(snap.TotalPrice), len(s.issued)))
	return snap, true
}

// CancelTicketProcess discards the live draft without recording history.
// Idempotent: cancelling with no draft is fine.
func (s *TicketStore) CancelTicketProcess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	utils.LogEvent(s.sessionID, "ticket", "cancel", "draft discarded")
}

// CurrentTicket returns a copy of the live draft, or nil when none exists.
func (s *TicketStore) CurrentTicket() *models.DraftTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// IssuedTickets returns a copy of the issued history, oldest first.
func (s *TicketStore) IssuedTickets() []models.IssuedTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.IssuedTicket, len(s.issued))
	for i, t := range s.issued {
		out[i] = models.IssuedTicket{DraftTicket: *t.DraftTicket.Clone(), IssuedAt: t.IssuedAt}
	}
	return out
}

// IssuedTicketAt returns one history entry by position.
func (s *TicketStore) IssuedTicketAt(index int) (models.IssuedTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.issued) {
		return models.IssuedTicket{}, false
	}
	t := s.issued[index]
	return models.IssuedTicket{DraftTicket: *t.DraftTicket.Clone(), IssuedAt: t.IssuedAt}, true
}

// PriceBreakdown recomputes the engine breakdown for display. ok=false when
// there is no live draft.
func (s *TicketStore) PriceBreakdown() (pricing.Breakdown, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return pricing.Breakdown{}, false
	}
	return pricing.ComputeTicket(s.current), true
}

// DiscountsStepComplete is the read-only eligibility check the wizard
// consults before leaving the discounts step: every passenger holding a
// document-backed card must carry a document number.
func (s *TicketStore) DiscountsStepComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	for _, p := range s.current.Passengers {
		info := pricing.LookupDiscount(p.Discount)
		if info.RequiresDocument && strings.TrimSpace(p.DocumentNumber) == "" {
			return false
		}
	}
	return true
}

// regeneratePassengers rebuilds the passenger list from the counters, one
// default passenger per unit. Callers hold the lock.
func (s *TicketStore) regeneratePassengers(c models.PassengerCategories) {
	s.current.PassengerCategories = c
	s.current.PassengerCount = c.Sum()
	units := c.Units()
	passengers := make([]models.Passenger, len(units))
	for i, cat := range units {
		passengers[i] = models.Passenger{Category: cat, Discount: models.NoDiscount}
	}
	s.current.Passengers = passengers
}

// recompute refreshes the derived total. Callers hold the lock.
func (s *TicketStore) recompute() {
	if s.current == nil {
		return
	}
	s.current.TotalPrice = pricing.ComputeTicket(s.current).Total
}

func (s *TicketStore) requireDraft(action string) bool {
	if s.current == nil {
		utils.LogEvent(s.sessionID, "ticket", action, "no active draft, ignored")
		return false
	}
	return true
}
