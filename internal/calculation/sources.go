package calculation

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/pkg/dateutil"
)

// maxMonthlyAgeMonths is the freshness window for the employment monthly
// breakdown.
const maxMonthlyAgeMonths = 3

// SourceContribution is the annual contribution of one income source.
// RawAnnual is always populated; Annual counts toward the gross total only
// when Counted is true.
type SourceContribution struct {
	Type      domain.IncomeType
	Annual    decimal.Decimal
	RawAnnual decimal.Decimal
	Counted   bool

	Projection ProjectionResult
	Notes      []domain.Note
}

// PersonGross is the projected gross annual income of one household
// member with its per-source breakdown.
type PersonGross struct {
	MemberID string
	Name     string

	GrossAnnual   decimal.Decimal
	Contributions []SourceContribution
}

// Notes flattens the per-source findings.
func (p PersonGross) Notes() []domain.Note {
	var notes []domain.Note
	for _, c := range p.Contributions {
		notes = append(notes, c.Notes...)
	}
	return notes
}

// AggregateSources decides the annual contribution of every income source
// of one person and sums the counted contributions into the gross annual
// income.
func AggregateSources(m domain.HouseholdMember, today time.Time) PersonGross {
	out := PersonGross{MemberID: m.ID, Name: m.DisplayName()}

	if c, ok := employmentContribution(m.Finances, today); ok {
		out.Contributions = append(out.Contributions, c)
	}
	for _, t := range domain.NonEmploymentTypes {
		if c, ok := sourceContribution(m.Finances, t, today); ok {
			out.Contributions = append(out.Contributions, c)
		}
	}

	gross := decimal.Zero
	for _, c := range out.Contributions {
		if c.Counted {
			gross = gross.Add(c.Annual)
		}
	}
	out.GrossAnnual = gross
	return out
}

// employmentContribution applies the employment-specific rules: prefer the
// adjacent prior-year total, otherwise the fresh 12-month breakdown, with
// declared changes projected on the monthly-sum baseline and forward
// bonuses counted on the new side only.
func employmentContribution(rec domain.FinancialRecord, today time.Time) (SourceContribution, bool) {
	emp := rec.Employment
	change := rec.Change(domain.ChangeEmployment)
	if !emp.Declared && change == nil {
		return SourceContribution{}, false
	}

	c := SourceContribution{Type: domain.IncomeEmployment}

	if emp.PriorYearTotal != nil && emp.PriorYear != nil && *emp.PriorYear == today.Year()-1 && change == nil {
		c.Annual = *emp.PriorYearTotal
		c.RawAnnual = *emp.PriorYearTotal
		c.Counted = true
		c.Projection = ProjectionResult{Projected: c.Annual, OldAnnual: c.Annual, DaysOld: dateutil.DaysInProjectionYear}
		return c, true
	}

	if len(emp.MonthlyFigures) == 0 {
		return SourceContribution{}, false
	}

	monthlySum := emp.MonthlySum()
	c.RawAnnual = monthlySum.Add(emp.PastBonuses())

	if emp.MonthlyAsOf.IsZero() || dateutil.MonthsBetween(emp.MonthlyAsOf, today) > maxMonthlyAgeMonths {
		asOf := ""
		if !emp.MonthlyAsOf.IsZero() {
			asOf = emp.MonthlyAsOf.Format("2006-01-02")
		}
		c.Notes = append(c.Notes, domain.WarningNote(domain.CodeSourceStaleMonthly,
			"type", string(domain.IncomeEmployment), "as_of", asOf))
		return c, true
	}

	if change != nil {
		c.Projection = projectAnnual(monthlySum, change, domain.TurnusMonthly, today, emp.NextBonuses())
		c.Notes = append(c.Notes, c.Projection.Notes...)
		c.Annual = c.Projection.Projected
		c.Counted = true
		return c, true
	}

	c.Annual = monthlySum.Add(emp.PastBonuses())
	c.Counted = true
	c.Projection = ProjectionResult{Projected: c.Annual, OldAnnual: c.Annual, DaysOld: dateutil.DaysInProjectionYear}
	return c, true
}

// sourceContribution applies the generic per-source rules: default turnus,
// year adjacency for annually-reported sources, and declared-change
// projection.
func sourceContribution(rec domain.FinancialRecord, t domain.IncomeType, today time.Time) (SourceContribution, bool) {
	src := rec.Source(t)
	change := rec.Change(domain.ChangeKey(t))

	// Zero value and no declared change contributes nothing and stays out
	// of the narrative.
	if (!src.Declared || src.Amount.IsZero()) && change == nil {
		return SourceContribution{}, false
	}

	c := SourceContribution{Type: t}

	turnus, hasDefault := t.DefaultTurnus()
	if src.Turnus != nil && t != domain.IncomeMiniJob {
		// Flat-taxed mini-job income is never monthly-eligible.
		turnus = *src.Turnus
	} else if t == domain.IncomeForeign {
		// Foreign income must be flagged monthly or yearly explicitly.
		c.Notes = append(c.Notes, domain.WarningNote(domain.CodeSourceMissingTurnus,
			"type", string(t)))
		c.RawAnnual = src.Amount
		return c, true
	} else if !hasDefault {
		turnus = domain.TurnusYearly
	}

	rawAnnual := src.Amount.Mul(turnus.AnnualFactor())
	c.RawAnnual = rawAnnual

	if t.AnnuallyReported() && src.Year != nil && *src.Year != today.Year()-1 && change == nil {
		// Non-adjacent reporting year: shown for transparency only.
		c.Notes = append(c.Notes, domain.WarningNote(domain.CodeSourceStaleYear,
			"type", string(t),
			"year", itoa(*src.Year),
			"expected", itoa(today.Year()-1)))
		return c, true
	}

	c.Projection = ProjectAnnual(rawAnnual, change, turnus, today)
	c.Notes = append(c.Notes, c.Projection.Notes...)
	c.Annual = c.Projection.Projected
	c.Counted = true
	return c, true
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
