package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/regulatory"
)

// Classify maps the household totals and composition to an income tier
// against the statutory threshold tables.
func Classify(agg domain.HouseholdIncomeAggregate, comp domain.HouseholdComposition, reg *regulatory.Config) domain.EligibilityResult {
	res := domain.EligibilityResult{Composition: comp}

	row := reg.ThresholdRow(comp.AdultCount, comp.HasChildren(), comp.Retired)
	limits := domain.AppliedLimits{
		GrossTierA: row.GrossTierA,
		NetTierA:   row.NetTierA,
		GrossTierB: row.GrossTierB,
		NetTierB:   row.NetTierB,
	}

	// Per-child bonus for every child beyond the first.
	if extra := comp.ChildCount - 1; extra > 0 {
		bonus := reg.ChildBonusFor(comp.AdultCount)
		n := decimal.NewFromInt(int64(extra))
		limits.GrossTierA = limits.GrossTierA.Add(bonus.Gross.Mul(n))
		limits.GrossTierB = limits.GrossTierB.Add(bonus.Gross.Mul(n))
		limits.NetTierA = limits.NetTierA.Add(bonus.Net.Mul(n))
		limits.NetTierB = limits.NetTierB.Add(bonus.Net.Mul(n))
	}

	// Marriage bonus raises the gross limits only, never the net limits.
	if comp.Married && comp.Size() == 2 {
		limits.GrossTierA = limits.GrossTierA.Add(reg.MarriageBonus)
		limits.GrossTierB = limits.GrossTierB.Add(reg.MarriageBonus)
	}
	res.Limits = limits

	if comp.Retired && comp.HasChildren() {
		// The retired table ignores children; preserved, reported only.
		res.Notes = append(res.Notes, domain.WarningNote(domain.CodeEligibilityRetiredWithChildren))
	}

	gross := agg.Gross
	net := agg.FinalAdjusted

	// The decision order is a tie-break-sensitive business rule.
	switch {
	case !gross.GreaterThan(limits.GrossTierA) && !net.GreaterThan(limits.NetTierA):
		res.Tier = domain.TierA
		res.Eligible = true
		res.Reason = domain.ReasonWithinTierA
	case gross.GreaterThan(limits.GrossTierB) || net.GreaterThan(limits.NetTierB):
		res.Tier = domain.TierNone
		res.Eligible = false
		grossOver := gross.GreaterThan(limits.GrossTierB)
		netOver := net.GreaterThan(limits.NetTierB)
		switch {
		case grossOver && netOver:
			res.Reason = domain.ReasonBothExceeded
		case grossOver:
			res.Reason = domain.ReasonGrossExceeded
		default:
			res.Reason = domain.ReasonNetExceeded
		}
	default:
		res.Tier = domain.TierB
		res.Eligible = true
		res.Reason = domain.ReasonWithinTierB
	}

	return res
}

// DeriveRetired decides whether the household counts as retired: every
// income-earning member either declares retirement explicitly or draws
// pension income and nothing else. A single non-retired earner
// disqualifies the household; so does having no earners at all.
func DeriveRetired(members []domain.HouseholdMember) bool {
	earners := 0
	for _, m := range members {
		if !m.HasIncome {
			continue
		}
		earners++
		if m.Finances.EmploymentStatus == domain.EmploymentStatusRetired {
			continue
		}
		pension := m.Finances.Source(domain.IncomePension)
		if pension.Declared && !pension.Amount.IsZero() && drawsOnlyPension(m.Finances) {
			continue
		}
		return false
	}
	return earners > 0
}

// drawsOnlyPension reports whether pension is the member's sole income:
// no regular employment and no other declared nonzero source.
func drawsOnlyPension(r domain.FinancialRecord) bool {
	if r.HasRegularEmployment() {
		return false
	}
	for t, src := range r.Sources {
		if t == domain.IncomePension {
			continue
		}
		if src.Declared && !src.Amount.IsZero() {
			return false
		}
	}
	return true
}

// DeriveComposition builds the composition the classification runs
// against: declared counts and marriage from the main application, the
// retired flag derived from the member records.
func DeriveComposition(main *domain.MainApplicationForm, members []domain.HouseholdMember) domain.HouseholdComposition {
	comp := domain.HouseholdComposition{}
	if main != nil {
		comp.AdultCount = main.AdultCount
		comp.ChildCount = main.ChildCount
		comp.Married = main.Married
	}
	comp.Retired = DeriveRetired(members)
	return comp
}
