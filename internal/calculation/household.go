package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/regulatory"
)

// MemberIncome couples a member's income figures with the household-level
// allowance applied for them.
type MemberIncome struct {
	Member   domain.HouseholdMember
	Gross    PersonGross
	Adjusted PersonAdjusted

	CareAllowance decimal.Decimal
	CareRule      int // position in the precedence cascade, 0 when none
}

// HouseholdIncome is the household aggregate with the per-member
// breakdown used by the report narrative.
type HouseholdIncome struct {
	Aggregate domain.HouseholdIncomeAggregate
	Members   []MemberIncome
}

// Notes flattens every member's findings.
func (h HouseholdIncome) Notes() []domain.Note {
	var notes []domain.Note
	for _, m := range h.Members {
		notes = append(notes, m.Gross.Notes()...)
		notes = append(notes, m.Adjusted.Notes()...)
	}
	return notes
}

// AggregateHousehold sums gross and adjusted income over the members who
// declare income, applies the disability/care allowance for every member,
// and the marriage bonus for married two-person households.
func AggregateHousehold(members []domain.HouseholdMember, comp domain.HouseholdComposition, reg *regulatory.Config, today time.Time) HouseholdIncome {
	var out HouseholdIncome

	for _, m := range members {
		mi := MemberIncome{Member: m}

		if m.HasIncome {
			mi.Gross = AggregateSources(m, today)
			mi.Adjusted = AdjustIncome(m, mi.Gross, reg, today)
			out.Aggregate.Gross = out.Aggregate.Gross.Add(mi.Gross.GrossAnnual)
			out.Aggregate.Adjusted = out.Aggregate.Adjusted.Add(mi.Adjusted.Adjusted)
		} else {
			mi.Gross = PersonGross{MemberID: m.ID, Name: m.DisplayName()}
			mi.Adjusted = PersonAdjusted{MemberID: m.ID, Name: m.DisplayName()}
		}

		// Unborn members contribute no allowance.
		if !m.Unborn(today) {
			mi.CareAllowance, mi.CareRule = CareAllowance(m.CareLevel, m.DisabilityGrade, reg.CareAllowances)
			out.Aggregate.Allowances = out.Aggregate.Allowances.Add(mi.CareAllowance)
		}

		out.Members = append(out.Members, mi)
	}

	if comp.Married && comp.Size() == 2 {
		out.Aggregate.MarriageBonus = reg.MarriageBonus
	}

	deducted := out.Aggregate.Allowances.Add(out.Aggregate.MarriageBonus)
	out.Aggregate.FinalAdjusted = decimal.Max(decimal.Zero, out.Aggregate.Adjusted.Sub(deducted))

	return out
}

// CareAllowance resolves the household-level allowance for a member's care
// level (Pflegegrad) and disability grade (GdB). The cascade is evaluated
// top to bottom, first match wins; the rule order is statutory and some
// later rules are shadowed by earlier ones.
func CareAllowance(careLevel, gdb int, ca regulatory.CareAllowances) (decimal.Decimal, int) {
	switch {
	case careLevel == 5:
		return ca.Severe, 1
	case careLevel == 4 && gdb >= 80:
		return ca.Severe, 2
	case careLevel == 4:
		return ca.High, 3
	case gdb == 100:
		return ca.High, 4
	case (careLevel == 2 || careLevel == 3) && gdb >= 80:
		return ca.High, 5
	case (careLevel == 2 || careLevel == 3) && gdb < 80:
		return ca.Elevated, 6
	case careLevel == 1 && gdb >= 80:
		return ca.Elevated, 7
	case careLevel == 3:
		return ca.Medium, 8
	case gdb >= 80 && gdb <= 99:
		return ca.Medium, 9
	case careLevel == 1 && gdb > 0 && gdb < 80:
		return ca.Medium, 10
	case careLevel == 2:
		return ca.Low, 11
	case gdb >= 50 && gdb <= 79:
		return ca.Low, 12
	case careLevel == 1:
		return ca.Minimal, 13
	default:
		return decimal.Zero, 0
	}
}
