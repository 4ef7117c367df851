package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/regulatory"
)

// AllowanceItem is one fixed per-source allowance applied to a person.
type AllowanceItem struct {
	Source domain.IncomeType
	Amount decimal.Decimal
}

// ExpenseProjection is one deductible expense after declared-change
// projection.
type ExpenseProjection struct {
	Key        domain.ChangeKey
	Annual     decimal.Decimal
	Projection ProjectionResult
	Notes      []domain.Note
}

// PersonAdjusted is the fully adjusted annual income of one person.
type PersonAdjusted struct {
	MemberID string
	Name     string

	Gross              decimal.Decimal
	DeductionRate      decimal.Decimal
	MandatoryDeduction decimal.Decimal
	AfterDeductions    decimal.Decimal

	Allowances      []AllowanceItem
	AllowanceTotal  decimal.Decimal
	AfterAllowances decimal.Decimal

	Expenses     []ExpenseProjection
	ExpenseTotal decimal.Decimal

	Adjusted decimal.Decimal
}

// Notes flattens the expense-projection findings.
func (p PersonAdjusted) Notes() []domain.Note {
	var notes []domain.Note
	for _, e := range p.Expenses {
		notes = append(notes, e.Notes...)
	}
	return notes
}

// AdjustIncome applies the mandatory percentage deductions, the fixed
// per-source allowances and the projected deductible expenses to a
// person's gross projected income.
func AdjustIncome(m domain.HouseholdMember, gross PersonGross, reg *regulatory.Config, today time.Time) PersonAdjusted {
	out := PersonAdjusted{
		MemberID: m.ID,
		Name:     m.DisplayName(),
		Gross:    gross.GrossAnnual,
	}
	rec := m.Finances

	flags := 0
	if rec.PaysIncomeTax {
		flags++
	}
	if rec.PaysHealthInsurance {
		flags++
	}
	if rec.PaysPensionInsurance {
		flags++
	}
	out.DeductionRate = reg.DeductionStep.Mul(decimal.NewFromInt(int64(flags)))
	out.MandatoryDeduction = gross.GrossAnnual.Mul(out.DeductionRate)
	out.AfterDeductions = gross.GrossAnnual.Sub(out.MandatoryDeduction)

	out.Allowances = sourceAllowances(gross.Contributions, reg)
	for _, a := range out.Allowances {
		out.AllowanceTotal = out.AllowanceTotal.Add(a.Amount)
	}
	out.AfterAllowances = decimal.Max(decimal.Zero, out.AfterDeductions.Sub(out.AllowanceTotal))

	out.Expenses = deductibleExpenses(rec, today)
	for _, e := range out.Expenses {
		out.ExpenseTotal = out.ExpenseTotal.Add(e.Annual)
	}
	out.Adjusted = decimal.Max(decimal.Zero, out.AfterAllowances.Sub(out.ExpenseTotal))

	return out
}

// sourceAllowances grants each fixed allowance once per qualifying income
// source present, never once per person.
func sourceAllowances(contributions []SourceContribution, reg *regulatory.Config) []AllowanceItem {
	present := make(map[domain.IncomeType]bool, len(contributions))
	for _, c := range contributions {
		if c.Counted && c.Annual.GreaterThan(decimal.Zero) {
			present[c.Type] = true
		}
	}

	var items []AllowanceItem
	for _, t := range []domain.IncomeType{
		domain.IncomePension,
		domain.IncomeUnemployment,
		domain.IncomeMaintenanceTaxFree,
		domain.IncomeMaintenanceTaxable,
	} {
		if present[t] {
			items = append(items, AllowanceItem{Source: t, Amount: reg.SourceAllowanceSmall})
		}
	}
	for _, t := range []domain.IncomeType{domain.IncomeForeign, domain.IncomeMiniJob} {
		if present[t] {
			items = append(items, AllowanceItem{Source: t, Amount: reg.SourceAllowanceLarge})
		}
	}
	return items
}

// deductibleExpenses projects each deductible expense under its own
// declared change. Work expenses only apply alongside regular employment
// income.
func deductibleExpenses(rec domain.FinancialRecord, today time.Time) []ExpenseProjection {
	var expenses []ExpenseProjection

	add := func(key domain.ChangeKey, annual decimal.Decimal) {
		change := rec.Change(key)
		if annual.IsZero() && change == nil {
			return
		}
		proj := ProjectAnnual(annual, change, domain.TurnusYearly, today)
		expenses = append(expenses, ExpenseProjection{
			Key:        key,
			Annual:     proj.Projected,
			Projection: proj,
			Notes:      proj.Notes,
		})
	}

	if rec.HasRegularEmployment() {
		add(domain.ChangeWorkExpenses, rec.WorkExpensesAnnual)
	}
	add(domain.ChangeChildcareCost, rec.ChildcareCostAnnual)
	add(domain.ChangeMaintenancePaid, rec.MaintenancePaidAnnual())

	return expenses
}
