package pricing

import (
	"strings"

	"raildesk/internal/domain/models"
)

// CategoryFactor returns the fare multiplier for a passenger category.
// Adults (and anything unrecognized) ride full fare.
func CategoryFactor(c models.PassengerCategory) float64 {
	switch c {
	case models.CategoryChild:
		return 0.5
	case models.CategorySenior:
		return 0.7
	case models.CategoryStudent:
		return 0.8
	default:
		return 1.0
	}
}

// DiscountClass tags how a discount label resolved, so the legacy
// unknown-label fallback is visible to callers instead of implicit.
type DiscountClass int

const (
	DiscountNone DiscountClass = iota
	DiscountKnown
	DiscountUnknown
)

// UnknownDiscountFactor keeps compatibility with the desk's historical
// behavior: an unrecognized card label still prices as "some discount"
// rather than erroring or charging full fare.
const UnknownDiscountFactor = 0.7

type DiscountInfo struct {
	Class            DiscountClass
	Factor           float64
	RequiresDocument bool
}

type DiscountCard struct {
	Label            string  `json:"label"`
	Factor           float64 `json:"factor"`
	RequiresDocument bool    `json:"requiresDocument"`
}

// DiscountCards is the card catalog the wizard renders and the engine
// prices with. Cards with RequiresDocument need a document number before
// the discounts step is complete.
var DiscountCards = []DiscountCard{
	{Label: "Family Card", Factor: 0.5},
	{Label: "Disability Card", Factor: 0.5, RequiresDocument: true},
	{Label: "ISIC Student Card", Factor: 0.7, RequiresDocument: true},
	{Label: "Senior Rail Card", Factor: 0.7, RequiresDocument: true},
	{Label: "RailPlus Card", Factor: 0.8},
	{Label: "Youth Card", Factor: 0.8},
}

// LookupDiscount resolves a discount label case-insensitively. An empty
// label counts as "no discount" (the zero value of a fresh passenger).
func LookupDiscount(label string) DiscountInfo {
	label = strings.TrimSpace(label)
	if label == "" || strings.EqualFold(label, models.NoDiscount) {
		return DiscountInfo{Class: DiscountNone, Factor: 1.0}
	}
	for _, card := range DiscountCards {
		if strings.EqualFold(card.Label, label) {
			return DiscountInfo{
				Class:            DiscountKnown,
				Factor:           card.Factor,
				RequiresDocument: card.RequiresDocument,
			}
		}
	}
	return DiscountInfo{Class: DiscountUnknown, Factor: UnknownDiscountFactor}
}
