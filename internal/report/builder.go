// Package report renders the engine's structured findings into the ordered
// German-language validation report.
package report

import (
	"fmt"
	"strings"

	"github.com/mkellner/wohnval/internal/calculation"
	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/pkg/currency"
)

// sectionOrder fixes the report layout by originating form.
var sectionOrder = []domain.FormID{
	domain.FormMainApplication,
	domain.FormIncomeDeclaration,
	domain.FormSelfDisclosure,
	domain.FormSelfHelp,
	domain.FormFloorArea,
}

// Build assembles the ordered validation report from one run's results.
// Every finding lands in the section of the form it originates from.
func Build(res *calculation.RunResults) domain.Report {
	b := &builder{sections: make(map[domain.FormID]*domain.Section)}
	for _, id := range sectionOrder {
		b.sections[id] = &domain.Section{ID: string(id), Title: formTitle(id)}
	}

	for id, note := range res.FormErrors {
		b.add(id, note)
	}

	// Income pipeline findings and calculations.
	for _, note := range res.Income.Notes() {
		b.add(domain.FormIncomeDeclaration, note)
	}
	b.incomeCalculations(res)

	for _, note := range res.Eligibility.Notes {
		b.add(domain.FormIncomeDeclaration, note)
	}
	b.eligibilityCalculations(res)

	for _, note := range res.Loan.Notes {
		b.add(domain.FormMainApplication, note)
	}

	for _, note := range res.Available.Notes {
		b.add(domain.FormSelfDisclosure, note)
	}
	b.availableCalculations(res)

	for _, note := range res.ConsistencyNotes {
		b.add(consistencySection(note), note)
	}

	report := domain.Report{
		RunID:     res.RunID,
		SubjectID: res.SubjectID,
		CreatedAt: res.Today,
		Sections:  make([]domain.Section, 0, len(sectionOrder)),
	}
	for _, id := range sectionOrder {
		s := b.sections[id]
		if s.OK() {
			s.Successes = append(s.Successes, "Alle Prüfungen bestanden.")
		} else {
			s.Actions = append(s.Actions, domain.Action{
				Label: "Zum Formular " + formTitle(id),
				Route: "/forms/" + string(id),
			})
		}
		report.Sections = append(report.Sections, *s)
	}
	return report
}

type builder struct {
	sections map[domain.FormID]*domain.Section
}

func (b *builder) add(id domain.FormID, note domain.Note) {
	s, ok := b.sections[id]
	if !ok {
		s = b.sections[domain.FormMainApplication]
	}
	line := RenderNote(note)
	switch note.Severity {
	case domain.SeverityError:
		s.Errors = append(s.Errors, line)
	case domain.SeverityWarning:
		s.Warnings = append(s.Warnings, line)
	default:
		s.Calculations = append(s.Calculations, line)
	}
}

func (b *builder) calc(id domain.FormID, line string) {
	s := b.sections[id]
	s.Calculations = append(s.Calculations, line)
}

func (b *builder) incomeCalculations(res *calculation.RunResults) {
	if res.IncomeDecl == nil {
		return
	}
	agg := res.Income.Aggregate
	for _, m := range res.Income.Members {
		if !m.Member.HasIncome {
			continue
		}
		b.calc(domain.FormIncomeDeclaration, fmt.Sprintf(
			"%s: Jahresbrutto %s, bereinigt %s.",
			m.Member.DisplayName(),
			currency.Format(m.Gross.GrossAnnual),
			currency.Format(m.Adjusted.Adjusted)))
	}
	for _, m := range res.Income.Members {
		if m.CareAllowance.IsZero() {
			continue
		}
		b.calc(domain.FormIncomeDeclaration, fmt.Sprintf(
			"Freibetrag für %s wegen Pflege/Behinderung: %s.",
			m.Member.DisplayName(), currency.Format(m.CareAllowance)))
	}
	if !agg.MarriageBonus.IsZero() {
		b.calc(domain.FormIncomeDeclaration, fmt.Sprintf(
			"Ehegattenfreibetrag: %s.", currency.Format(agg.MarriageBonus)))
	}
	b.calc(domain.FormIncomeDeclaration, fmt.Sprintf(
		"Haushaltseinkommen: brutto %s, bereinigt %s.",
		currency.Format(agg.Gross), currency.Format(agg.FinalAdjusted)))
}

func (b *builder) eligibilityCalculations(res *calculation.RunResults) {
	if res.IncomeDecl == nil {
		return
	}
	elig := res.Eligibility
	limits := elig.Limits
	b.calc(domain.FormIncomeDeclaration, fmt.Sprintf(
		"Angewandte Einkommensgrenzen: Stufe A bis %s brutto / %s bereinigt, Stufe B bis %s brutto / %s bereinigt.",
		currency.Format(limits.GrossTierA), currency.Format(limits.NetTierA),
		currency.Format(limits.GrossTierB), currency.Format(limits.NetTierB)))

	switch elig.Tier {
	case domain.TierA:
		b.calc(domain.FormIncomeDeclaration, "Der Haushalt fällt in Einkommensstufe A.")
	case domain.TierB:
		b.calc(domain.FormIncomeDeclaration, "Der Haushalt fällt in Einkommensstufe B.")
	default:
		s := b.sections[domain.FormIncomeDeclaration]
		s.Errors = append(s.Errors, ineligibleLine(elig.Reason))
	}
}

func ineligibleLine(reason domain.ReasonCode) string {
	switch reason {
	case domain.ReasonGrossExceeded:
		return "Der Haushalt überschreitet die Bruttoeinkommensgrenze der Stufe B und ist nicht förderfähig."
	case domain.ReasonNetExceeded:
		return "Der Haushalt überschreitet die Grenze des bereinigten Einkommens der Stufe B und ist nicht förderfähig."
	case domain.ReasonBothExceeded:
		return "Der Haushalt überschreitet sowohl die Brutto- als auch die bereinigte Einkommensgrenze der Stufe B und ist nicht förderfähig."
	default:
		return "Der Haushalt überschreitet die Einkommensgrenzen und ist nicht förderfähig."
	}
}

func (b *builder) availableCalculations(res *calculation.RunResults) {
	if res.SelfDisclosure == nil {
		return
	}
	av := res.Available
	b.calc(domain.FormSelfDisclosure, fmt.Sprintf(
		"Verfügbares Monatseinkommen: %s bei einem Mindestbedarf von %s (%d Personen).",
		currency.Format(av.TotalMonthly), currency.Format(av.Floor), av.HouseholdSize))
}

// consistencySection maps a cross-form finding to the section of the form
// a caseworker would correct first.
func consistencySection(note domain.Note) domain.FormID {
	switch {
	case strings.HasPrefix(note.Code, "household.") || strings.HasPrefix(note.Code, "disability."):
		return domain.FormMainApplication
	case strings.HasPrefix(note.Code, "selfhelp."):
		return domain.FormSelfHelp
	case strings.HasPrefix(note.Code, "floorarea."):
		return domain.FormFloorArea
	case strings.HasPrefix(note.Code, "netgross.") ||
		strings.HasPrefix(note.Code, "salary.") ||
		strings.HasPrefix(note.Code, "maintenance."):
		return domain.FormSelfDisclosure
	default:
		return domain.FormMainApplication
	}
}
