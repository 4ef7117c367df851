package domain

import "github.com/shopspring/decimal"

// Tier is the statutory income-eligibility band.
type Tier string

const (
	TierA    Tier = "A"
	TierB    Tier = "B"
	TierNone Tier = "ineligible"
)

// ReasonCode identifies why a household landed in its tier.
type ReasonCode string

const (
	ReasonWithinTierA   ReasonCode = "within_tier_a"
	ReasonWithinTierB   ReasonCode = "within_tier_b"
	ReasonGrossExceeded ReasonCode = "gross_exceeded"
	ReasonNetExceeded   ReasonCode = "net_exceeded"
	ReasonBothExceeded  ReasonCode = "both_exceeded"
)

// AppliedLimits are the four threshold values actually applied after the
// child and marriage bonuses.
type AppliedLimits struct {
	GrossTierA decimal.Decimal `json:"gross_tier_a"`
	NetTierA   decimal.Decimal `json:"net_tier_a"`
	GrossTierB decimal.Decimal `json:"gross_tier_b"`
	NetTierB   decimal.Decimal `json:"net_tier_b"`
}

// EligibilityResult is the outcome of the income classification. It is
// passed by value into the dependent steps; later steps never recompute it.
type EligibilityResult struct {
	Tier     Tier          `json:"tier"`
	Eligible bool          `json:"eligible"`
	Reason   ReasonCode    `json:"reason"`
	Limits   AppliedLimits `json:"limits"`

	Composition HouseholdComposition `json:"composition"`
	Notes       []Note               `json:"notes,omitempty"`
}

// HouseholdIncomeAggregate carries the household totals threaded from the
// income aggregation into classification and reporting.
type HouseholdIncomeAggregate struct {
	Gross         decimal.Decimal `json:"gross"`
	Adjusted      decimal.Decimal `json:"adjusted"`
	Allowances    decimal.Decimal `json:"allowances"`     // disability/care cascade total
	MarriageBonus decimal.Decimal `json:"marriage_bonus"` // zero unless size==2 and married
	FinalAdjusted decimal.Decimal `json:"final_adjusted"`
}
