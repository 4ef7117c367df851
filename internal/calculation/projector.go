package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/pkg/dateutil"
)

// ProjectionResult is the day-weighted annual projection of a single
// income or expense figure under an optional declared change.
type ProjectionResult struct {
	Projected decimal.Decimal
	OldAnnual decimal.Decimal
	NewAnnual decimal.Decimal
	DaysOld   int
	DaysNew   int

	ChangeApplied bool
	Notes         []domain.Note
}

// ProjectAnnual projects an already-annualized figure over the 12-month
// window starting today. Without a declared change the figure passes
// through unmodified. With one, the window is partitioned day-exact around
// the change date; daysOld+daysNew always equals 365.
func ProjectAnnual(oldAnnual decimal.Decimal, change *domain.DeclaredChange, defaultTurnus domain.Turnus, today time.Time) ProjectionResult {
	return projectAnnual(oldAnnual, change, defaultTurnus, today, decimal.Zero)
}

// projectAnnual additionally folds extraNew into the new-side annual value;
// employment projection adds forward-looking bonus fields this way.
func projectAnnual(oldAnnual decimal.Decimal, change *domain.DeclaredChange, defaultTurnus domain.Turnus, today time.Time, extraNew decimal.Decimal) ProjectionResult {
	if change == nil {
		return ProjectionResult{
			Projected: oldAnnual,
			OldAnnual: oldAnnual,
			DaysOld:   dateutil.DaysInProjectionYear,
		}
	}

	turnus := change.NewTurnus
	if turnus == "" {
		turnus = defaultTurnus
	}
	newAnnual := change.NewAmount.Mul(turnus.AnnualFactor()).Add(extraNew)

	res := ProjectionResult{OldAnnual: oldAnnual, NewAnnual: newAnnual}

	// The direction flag must agree with the declared amounts. Violations
	// are reported, never silently corrected.
	if change.Increases && !newAnnual.GreaterThan(oldAnnual) {
		res.Notes = append(res.Notes, domain.ErrorNote(domain.CodeChangeDirectionMismatch,
			"direction", "increase",
			"old", oldAnnual.StringFixed(2),
			"new", newAnnual.StringFixed(2)))
	} else if !change.Increases && !newAnnual.LessThan(oldAnnual) {
		res.Notes = append(res.Notes, domain.ErrorNote(domain.CodeChangeDirectionMismatch,
			"direction", "decrease",
			"old", oldAnnual.StringFixed(2),
			"new", newAnnual.StringFixed(2)))
	}

	delta := dateutil.DaysBetween(today, change.EffectiveDate)
	inWindow := dateutil.WithinMonths(change.EffectiveDate, today, 12)

	switch {
	case delta > 0 && !inWindow:
		// Too far ahead to project; keep the pre-change value.
		res.Notes = append(res.Notes, domain.WarningNote(domain.CodeChangeFarFuture,
			"date", change.EffectiveDate.Format("2006-01-02")))
		res.Projected = oldAnnual
		res.DaysOld = dateutil.DaysInProjectionYear
		return res
	case delta <= 0 && !inWindow:
		// Long past: the new value has fully taken effect.
		res.Notes = append(res.Notes, domain.WarningNote(domain.CodeChangeLongPast,
			"date", change.EffectiveDate.Format("2006-01-02")))
		res.Projected = newAnnual
		res.DaysNew = dateutil.DaysInProjectionYear
		res.ChangeApplied = true
		return res
	}

	daysOld := delta
	if daysOld < 0 {
		daysOld = -daysOld
	}
	if daysOld > dateutil.DaysInProjectionYear {
		daysOld = dateutil.DaysInProjectionYear
	}
	daysNew := dateutil.DaysInProjectionYear - daysOld

	year := decimal.NewFromInt(dateutil.DaysInProjectionYear)
	projected := oldAnnual.Div(year).Mul(decimal.NewFromInt(int64(daysOld))).
		Add(newAnnual.Div(year).Mul(decimal.NewFromInt(int64(daysNew))))

	res.Projected = projected
	res.DaysOld = daysOld
	res.DaysNew = daysNew
	res.ChangeApplied = true
	return res
}
