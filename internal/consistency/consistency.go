// Package consistency cross-checks numeric and logical agreement between
// the independently filled forms. Checks are independent; none blocks the
// others.
package consistency

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/pkg/dateutil"
)

// amountTolerance is the cent tolerance for cross-form amount comparisons.
var amountTolerance = decimal.NewFromFloat(0.01)

// areaTolerance is the square-meter tolerance for the floor-area check.
var areaTolerance = decimal.NewFromFloat(0.5)

// maintenanceShortfall is the allowed relative shortfall of the aggregated
// maintenance total against the itemized sum.
var maintenanceShortfall = decimal.NewFromFloat(0.30)

// Input bundles the form snapshots a check battery runs over. Nil forms
// make the affected checks skip silently; missing-form reporting happens
// at the section boundary.
type Input struct {
	Today time.Time

	Main           *domain.MainApplicationForm
	IncomeDecl     *domain.IncomeDeclarationForm
	SelfDisclosure *domain.SelfDisclosureForm
	SelfHelp       *domain.SelfHelpForm
	FloorArea      *domain.FloorAreaForm

	// Members is the normalized household including excluded members.
	Members []domain.HouseholdMember
}

// RunChecks executes the whole battery and returns the accumulated
// findings.
func RunChecks(in Input) []domain.Note {
	var notes []domain.Note
	notes = append(notes, CheckHouseholdSize(in)...)
	notes = append(notes, CheckAgeComposition(in)...)
	notes = append(notes, CheckDisabilityCounts(in)...)
	notes = append(notes, CheckSelfHelpTotals(in)...)
	notes = append(notes, CheckNetVsGross(in)...)
	notes = append(notes, CheckSalaryConsistency(in)...)
	notes = append(notes, CheckMaintenanceTotals(in)...)
	notes = append(notes, CheckFloorArea(in)...)
	return notes
}

// CheckHouseholdSize compares the declared adult+child count with the
// actual non-excluded member count. Off by one warns, more errors.
func CheckHouseholdSize(in Input) []domain.Note {
	if in.Main == nil || in.IncomeDecl == nil {
		return nil
	}

	declared := in.Main.AdultCount + in.Main.ChildCount
	actual := len(domain.ActiveMembers(in.Members))

	diff := declared - actual
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return nil
	case diff == 1:
		return []domain.Note{domain.WarningNote(domain.CodeHouseholdCountOffByOne,
			"declared", strconv.Itoa(declared), "actual", strconv.Itoa(actual))}
	default:
		return []domain.Note{domain.ErrorNote(domain.CodeHouseholdCountMismatch,
			"declared", strconv.Itoa(declared), "actual", strconv.Itoa(actual))}
	}
}

// CheckAgeComposition derives adult/child counts from birth dates and
// compares them with the declared composition. Unborn members are
// reported but tallied neither as adult nor as child; missing birth dates
// only warn.
func CheckAgeComposition(in Input) []domain.Note {
	if in.Main == nil || in.IncomeDecl == nil {
		return nil
	}

	var notes []domain.Note
	adults, children := 0, 0
	missing := 0
	var details []string

	for _, m := range domain.ActiveMembers(in.Members) {
		switch {
		case m.BirthDate == nil:
			missing++
		case m.Unborn(in.Today):
			notes = append(notes, domain.InfoNote(domain.CodeHouseholdUnbornMember,
				"name", m.DisplayName(),
				"birth_date", m.BirthDate.Format("2006-01-02")))
		case dateutil.IsAdultAt(*m.BirthDate, in.Today):
			adults++
			details = append(details, m.DisplayName()+" ("+strconv.Itoa(dateutil.AgeAt(*m.BirthDate, in.Today))+")")
		default:
			children++
			details = append(details, m.DisplayName()+" ("+strconv.Itoa(dateutil.AgeAt(*m.BirthDate, in.Today))+")")
		}
	}

	if missing > 0 {
		notes = append(notes, domain.WarningNote(domain.CodeHouseholdBirthDateMissing,
			"count", strconv.Itoa(missing)))
		return notes
	}

	if adults != in.Main.AdultCount || children != in.Main.ChildCount {
		notes = append(notes, domain.ErrorNote(domain.CodeHouseholdAgeMismatch,
			"declared_adults", strconv.Itoa(in.Main.AdultCount),
			"derived_adults", strconv.Itoa(adults),
			"declared_children", strconv.Itoa(in.Main.ChildCount),
			"derived_children", strconv.Itoa(children),
			"details", strings.Join(details, ", ")))
	}
	return notes
}

// CheckDisabilityCounts verifies the declared disabled-adult and
// disabled-child counts against the members with a disability grade of 50
// or more, and the yes/no flag against the count.
func CheckDisabilityCounts(in Input) []domain.Note {
	if in.Main == nil || in.IncomeDecl == nil {
		return nil
	}

	var notes []domain.Note
	disAdults, disChildren := 0, 0
	for _, m := range domain.ActiveMembers(in.Members) {
		if m.DisabilityGrade < 50 {
			continue
		}
		// Members without a birth date count as adults.
		if m.BirthDate != nil && !m.Unborn(in.Today) && !dateutil.IsAdultAt(*m.BirthDate, in.Today) {
			disChildren++
		} else {
			disAdults++
		}
	}

	if disAdults != in.Main.DisabledAdultCount || disChildren != in.Main.DisabledChildCount {
		notes = append(notes, domain.ErrorNote(domain.CodeDisabilityCountMismatch,
			"declared_adults", strconv.Itoa(in.Main.DisabledAdultCount),
			"derived_adults", strconv.Itoa(disAdults),
			"declared_children", strconv.Itoa(in.Main.DisabledChildCount),
			"derived_children", strconv.Itoa(disChildren)))
	}

	anyDisabled := disAdults+disChildren > 0
	if in.Main.HasDisabledMembers != anyDisabled {
		notes = append(notes, domain.ErrorNote(domain.CodeDisabilityFlagMismatch,
			"flag", strconv.FormatBool(in.Main.HasDisabledMembers),
			"count", strconv.Itoa(disAdults+disChildren)))
	}
	return notes
}

// CheckSelfHelpTotals compares the self-help total on the dedicated form
// with the single figure on the main application, and each itemized entry
// with its hours times rate.
func CheckSelfHelpTotals(in Input) []domain.Note {
	if in.Main == nil || in.SelfHelp == nil {
		return nil
	}

	var notes []domain.Note
	diff := in.SelfHelp.Total.Sub(in.Main.SelfHelpTotal).Abs()
	if diff.GreaterThan(amountTolerance) {
		notes = append(notes, domain.ErrorNote(domain.CodeSelfHelpTotalMismatch,
			"form_total", in.SelfHelp.Total.StringFixed(2),
			"application_total", in.Main.SelfHelpTotal.StringFixed(2)))
	}

	for _, e := range in.SelfHelp.Entries {
		if e.Hours.IsZero() && e.HourlyRate.IsZero() {
			continue
		}
		expected := e.Hours.Mul(e.HourlyRate)
		if e.Amount.Sub(expected).Abs().GreaterThan(amountTolerance) {
			notes = append(notes, domain.WarningNote(domain.CodeSelfHelpEntryImplausible,
				"entry", e.Description,
				"amount", e.Amount.StringFixed(2),
				"expected", expected.StringFixed(2)))
		}
	}
	return notes
}

// netGrossTypes is the fixed set of income types reported gross on the
// income declaration and net on the self-disclosure.
var netGrossTypes = []domain.IncomeType{
	domain.IncomeBusiness,
	domain.IncomeAgriculture,
	domain.IncomeRent,
	domain.IncomePension,
	domain.IncomeOther,
}

// CheckNetVsGross verifies that no net figure exceeds its gross
// counterpart.
func CheckNetVsGross(in Input) []domain.Note {
	if in.IncomeDecl == nil || in.SelfDisclosure == nil {
		return nil
	}

	var notes []domain.Note
	for _, t := range netGrossTypes {
		net, ok := in.SelfDisclosure.NetByType[t]
		if !ok {
			continue
		}
		gross := grossAnnualByType(in.Members, t)
		if net.GreaterThan(gross) {
			notes = append(notes, domain.ErrorNote(domain.CodeNetExceedsGross,
				"type", string(t),
				"net", net.StringFixed(2),
				"gross", gross.StringFixed(2)))
		}
	}
	return notes
}

// CheckSalaryConsistency cross-checks the salary flags and, when both are
// set, the plausibility of the net monthly salary against the average
// monthly gross.
func CheckSalaryConsistency(in Input) []domain.Note {
	if in.IncomeDecl == nil || in.SelfDisclosure == nil {
		return nil
	}

	var notes []domain.Note
	for _, p := range in.SelfDisclosure.Persons {
		m, ok := findMember(in.Members, p.Name)
		if !ok {
			continue
		}

		if p.HasSalaryIncome && !m.Finances.HasRegularEmployment() {
			notes = append(notes, domain.ErrorNote(domain.CodeSalaryFlagConflict,
				"name", p.Name))
			continue
		}
		if !p.HasSalaryIncome || !m.Finances.HasRegularEmployment() {
			continue
		}
		if len(m.Finances.Employment.MonthlyFigures) == 0 {
			continue
		}

		avgGross := m.Finances.Employment.MonthlySum().Div(twelve)
		if avgGross.IsZero() {
			continue
		}
		if p.NetSalaryMonthly.GreaterThan(avgGross) {
			notes = append(notes, domain.WarningNote(domain.CodeSalaryNetAboveGross,
				"name", p.Name,
				"net", p.NetSalaryMonthly.StringFixed(2),
				"gross", avgGross.StringFixed(2)))
		}
		if p.NetSalaryMonthly.LessThan(avgGross.Mul(half)) {
			notes = append(notes, domain.WarningNote(domain.CodeSalaryNetBelowHalfGross,
				"name", p.Name,
				"net", p.NetSalaryMonthly.StringFixed(2),
				"gross", avgGross.StringFixed(2)))
		}
	}
	return notes
}

// CheckMaintenanceTotals compares the aggregated maintenance-paid total
// with the itemized list: it should neither exceed the itemized sum nor
// fall more than 30% below it.
func CheckMaintenanceTotals(in Input) []domain.Note {
	if in.IncomeDecl == nil || in.SelfDisclosure == nil {
		return nil
	}

	itemized := decimal.Zero
	for _, m := range in.Members {
		itemized = itemized.Add(m.Finances.MaintenancePaidAnnual())
	}
	itemizedMonthly := itemized.Div(twelve)
	total := in.SelfDisclosure.MaintenancePaidTotal

	if itemizedMonthly.IsZero() && total.IsZero() {
		return nil
	}

	var notes []domain.Note
	if total.GreaterThan(itemizedMonthly.Add(amountTolerance)) {
		notes = append(notes, domain.WarningNote(domain.CodeMaintenanceNetAboveItemized,
			"total", total.StringFixed(2),
			"itemized", itemizedMonthly.StringFixed(2)))
	}
	lowerBound := itemizedMonthly.Mul(decimal.NewFromInt(1).Sub(maintenanceShortfall))
	if total.LessThan(lowerBound) {
		notes = append(notes, domain.WarningNote(domain.CodeMaintenanceFarBelowItemized,
			"total", total.StringFixed(2),
			"itemized", itemizedMonthly.StringFixed(2)))
	}
	return notes
}

// CheckFloorArea compares the itemized room areas with the declared total
// living area.
func CheckFloorArea(in Input) []domain.Note {
	if in.FloorArea == nil || len(in.FloorArea.Rooms) == 0 {
		return nil
	}

	computed := in.FloorArea.ComputedArea()
	if computed.Sub(in.FloorArea.TotalLivingArea).Abs().GreaterThan(areaTolerance) {
		return []domain.Note{domain.ErrorNote(domain.CodeFloorAreaTotalMismatch,
			"computed", computed.StringFixed(2),
			"declared", in.FloorArea.TotalLivingArea.StringFixed(2))}
	}
	return nil
}

var (
	twelve = decimal.NewFromInt(12)
	half   = decimal.NewFromFloat(0.5)
)

func grossAnnualByType(members []domain.HouseholdMember, t domain.IncomeType) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range members {
		src := m.Finances.Source(t)
		if !src.Declared {
			continue
		}
		turnus, ok := t.DefaultTurnus()
		if src.Turnus != nil {
			turnus = *src.Turnus
		} else if !ok {
			turnus = domain.TurnusYearly
		}
		sum = sum.Add(src.Amount.Mul(turnus.AnnualFactor()))
	}
	return sum
}

func findMember(members []domain.HouseholdMember, name string) (domain.HouseholdMember, bool) {
	for _, m := range members {
		if strings.EqualFold(m.DisplayName(), name) {
			return m, true
		}
	}
	return domain.HouseholdMember{}, false
}
