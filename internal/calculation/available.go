package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/regulatory"
)

// PersonAvailable is one person's net disposable monthly income.
type PersonAvailable struct {
	Name           string
	IncomeMonthly  decimal.Decimal
	ExpenseMonthly decimal.Decimal
	NetMonthly     decimal.Decimal
}

// AvailableIncome is the household's disposable monthly income compared
// against the size-based subsistence floor.
type AvailableIncome struct {
	Persons       []PersonAvailable
	TotalMonthly  decimal.Decimal
	Floor         decimal.Decimal
	HouseholdSize int
	Notes         []domain.Note
}

var twelve = decimal.NewFromInt(12)

// ComputeAvailableIncome sums the fixed net monthly income and expense
// lines of the self-disclosure form and compares the household total to
// the subsistence floor.
func ComputeAvailableIncome(sd *domain.SelfDisclosureForm, comp domain.HouseholdComposition, reg *regulatory.Config) AvailableIncome {
	out := AvailableIncome{
		HouseholdSize: comp.Size(),
		Floor:         reg.SubsistenceFloor(comp.Size()),
	}
	if sd == nil {
		return out
	}

	for _, p := range sd.Persons {
		pa := PersonAvailable{Name: p.Name}

		income := decimal.Zero
		// Salary-derived lines count only with the salary flag set.
		if p.HasSalaryIncome {
			income = income.Add(p.NetSalaryMonthly)
			income = income.Add(p.ChristmasBonusAnnual.Div(twelve))
			income = income.Add(p.VacationBonusAnnual.Div(twelve))
			income = income.Add(p.OtherBonusAnnual.Div(twelve))
		}
		income = income.Add(p.BusinessAnnual.Div(twelve))
		income = income.Add(p.AgricultureAnnual.Div(twelve))
		income = income.Add(p.RentAnnual.Div(twelve))
		income = income.Add(p.CapitalAnnual.Div(twelve))
		for _, pension := range p.Pensions {
			income = income.Add(pension)
		}
		for _, other := range p.OtherIncome {
			income = income.Add(other)
		}
		pa.IncomeMonthly = income

		expenses := decimal.Zero
		for _, ti := range p.TaxesInsurance {
			expenses = expenses.Add(ti)
		}
		expenses = expenses.Add(p.LoanPayments)
		expenses = expenses.Add(p.BridgeLoanPayments)
		expenses = expenses.Add(p.MaintenancePaidMonthly)
		expenses = expenses.Add(p.OtherObligations)
		expenses = expenses.Add(p.BuildingSavingsRate)
		expenses = expenses.Add(p.CapitalPensionPremium)
		pa.ExpenseMonthly = expenses

		pa.NetMonthly = income.Sub(expenses)
		out.TotalMonthly = out.TotalMonthly.Add(pa.NetMonthly)
		out.Persons = append(out.Persons, pa)
	}

	total := out.TotalMonthly
	if total.LessThan(out.Floor) {
		out.Notes = append(out.Notes, domain.ErrorNote(domain.CodeAvailableBelowFloor,
			"total", total.StringFixed(2),
			"floor", out.Floor.StringFixed(2),
			"size", itoa(out.HouseholdSize)))
	}
	if total.IsNegative() {
		out.Notes = append(out.Notes, domain.ErrorNote(domain.CodeAvailableNegative,
			"total", total.StringFixed(2)))
	}
	if !total.IsNegative() && total.LessThan(reg.SubsistenceSingle) {
		out.Notes = append(out.Notes, domain.WarningNote(domain.CodeAvailableBelowSingleFloor,
			"total", total.StringFixed(2),
			"floor", reg.SubsistenceSingle.StringFixed(2)))
	}

	return out
}
