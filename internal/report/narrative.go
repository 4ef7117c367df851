package report

import (
	"fmt"

	"github.com/mkellner/wohnval/internal/domain"
)

// RenderNote turns a structured finding into its German narrative line.
// Unknown codes fall back to the raw code so nothing silently disappears.
func RenderNote(n domain.Note) string {
	p := func(key string) string { return n.Params[key] }

	switch n.Code {
	case domain.CodeChangeFarFuture:
		return fmt.Sprintf("Die angegebene Änderung zum %s liegt mehr als 12 Monate in der Zukunft und wurde nicht berücksichtigt.", p("date"))
	case domain.CodeChangeLongPast:
		return fmt.Sprintf("Die angegebene Änderung zum %s liegt mehr als 12 Monate zurück; es wurde durchgehend der neue Betrag angesetzt.", p("date"))
	case domain.CodeChangeDirectionMismatch:
		return fmt.Sprintf("Die Änderungsangabe widerspricht sich: als %s deklariert, aber alter Jahresbetrag %s € und neuer Jahresbetrag %s €.",
			directionLabel(p("direction")), p("old"), p("new"))

	case domain.CodeSourceStaleYear:
		return fmt.Sprintf("Die Einkünfte aus %s beziehen sich auf das Jahr %s statt %s und wurden nur nachrichtlich ausgewiesen.",
			incomeTypeLabel(p("type")), p("year"), p("expected"))
	case domain.CodeSourceStaleMonthly:
		return fmt.Sprintf("Die monatliche Gehaltsaufstellung (Stand %s) ist älter als drei Monate und wurde nicht angerechnet.", p("as_of"))
	case domain.CodeSourceMissingTurnus:
		return fmt.Sprintf("Für die Einkünfte aus %s fehlt die Angabe, ob der Betrag monatlich oder jährlich anfällt; die Quelle wurde nicht angerechnet.",
			incomeTypeLabel(p("type")))

	case domain.CodeEligibilityRetiredWithChildren:
		return "Für Rentnerhaushalte sieht die Einkommenstabelle keine Kinderspalte vor; die angegebenen Kinder wurden bei der Tabellenauswahl nicht berücksichtigt."

	case domain.CodeLoanSupplementarySkip:
		return "Es wurde ausschließlich ein Zusatzdarlehen beantragt; die Prüfung der Grunddarlehensgrenze entfällt."
	case domain.CodeLoanRegionUnsupported:
		return fmt.Sprintf("Die Postleitzahl %s liegt außerhalb des Fördergebiets; die Darlehensgrenze konnte nicht geprüft werden.", p("postcode"))
	case domain.CodeLoanWithinCeiling:
		return fmt.Sprintf("Das beantragte Grunddarlehen von %s € liegt innerhalb der Grenze von %s € (Kostenkategorie %s, Stufe %s).",
			p("requested"), p("ceiling"), p("category"), p("tier"))
	case domain.CodeLoanCeilingExceeded:
		return fmt.Sprintf("Das beantragte Grunddarlehen von %s € übersteigt die Grenze von %s € (Kostenkategorie %s, Stufe %s).",
			p("requested"), p("ceiling"), p("category"), p("tier"))
	case domain.CodeLoanIneligibleNonzero:
		return fmt.Sprintf("Der Haushalt überschreitet die Einkommensgrenzen; das beantragte Grunddarlehen von %s € kann nicht gewährt werden.", p("requested"))

	case domain.CodeAvailableBelowFloor:
		return fmt.Sprintf("Das verfügbare Monatseinkommen von %s € unterschreitet den Mindestbedarf von %s € für einen Haushalt mit %s Personen.",
			p("total"), p("floor"), p("size"))
	case domain.CodeAvailableNegative:
		return fmt.Sprintf("Die monatlichen Belastungen übersteigen die Einnahmen; das verfügbare Einkommen ist negativ (%s €).", p("total"))
	case domain.CodeAvailableBelowSingleFloor:
		return fmt.Sprintf("Das verfügbare Monatseinkommen von %s € liegt unter dem Einpersonen-Mindestbedarf von %s €.", p("total"), p("floor"))

	case domain.CodeHouseholdCountOffByOne:
		return fmt.Sprintf("Im Hauptantrag sind %s Haushaltsmitglieder angegeben, in der Einkommenserklärung %s. Bitte prüfen Sie die Angaben.",
			p("declared"), p("actual"))
	case domain.CodeHouseholdCountMismatch:
		return fmt.Sprintf("Die Anzahl der Haushaltsmitglieder stimmt nicht überein: %s im Hauptantrag, %s in der Einkommenserklärung.",
			p("declared"), p("actual"))
	case domain.CodeHouseholdAgeMismatch:
		return fmt.Sprintf("Die aus den Geburtsdaten abgeleitete Zusammensetzung (%s Erwachsene, %s Kinder: %s) weicht von den Angaben im Hauptantrag ab (%s Erwachsene, %s Kinder).",
			p("derived_adults"), p("derived_children"), p("details"), p("declared_adults"), p("declared_children"))
	case domain.CodeHouseholdBirthDateMissing:
		return fmt.Sprintf("Für %s Haushaltsmitglieder fehlt das Geburtsdatum; die Altersprüfung konnte nicht durchgeführt werden.", p("count"))
	case domain.CodeHouseholdUnbornMember:
		return fmt.Sprintf("%s (geb. %s) ist zum Stichtag noch nicht geboren und wurde weder als Erwachsener noch als Kind gezählt.",
			p("name"), p("birth_date"))

	case domain.CodeDisabilityCountMismatch:
		return fmt.Sprintf("Die Anzahl schwerbehinderter Haushaltsmitglieder weicht ab: angegeben %s Erwachsene und %s Kinder, ermittelt %s Erwachsene und %s Kinder.",
			p("declared_adults"), p("declared_children"), p("derived_adults"), p("derived_children"))
	case domain.CodeDisabilityFlagMismatch:
		return fmt.Sprintf("Die Ja/Nein-Angabe zu schwerbehinderten Haushaltsmitgliedern (%s) passt nicht zur ermittelten Anzahl (%s).",
			boolLabel(p("flag")), p("count"))

	case domain.CodeSelfHelpTotalMismatch:
		return fmt.Sprintf("Die Selbsthilfesumme im Formular (%s €) stimmt nicht mit der Angabe im Hauptantrag (%s €) überein.",
			p("form_total"), p("application_total"))
	case domain.CodeSelfHelpEntryImplausible:
		return fmt.Sprintf("Die Selbsthilfeposition \"%s\" weist %s € aus, aus Stunden und Stundensatz ergeben sich jedoch %s €.",
			p("entry"), p("amount"), p("expected"))

	case domain.CodeNetExceedsGross:
		return fmt.Sprintf("Das in der Selbstauskunft angegebene Nettoeinkommen aus %s (%s €) übersteigt das erklärte Bruttoeinkommen (%s €).",
			incomeTypeLabel(p("type")), p("net"), p("gross"))

	case domain.CodeSalaryFlagConflict:
		return fmt.Sprintf("%s gibt in der Selbstauskunft Gehaltseinkünfte an, in der Einkommenserklärung jedoch keine nichtselbständige Tätigkeit.", p("name"))
	case domain.CodeSalaryNetAboveGross:
		return fmt.Sprintf("Das Nettogehalt von %s (%s €/Monat) übersteigt das durchschnittliche Bruttogehalt (%s €/Monat).",
			p("name"), p("net"), p("gross"))
	case domain.CodeSalaryNetBelowHalfGross:
		return fmt.Sprintf("Das Nettogehalt von %s (%s €/Monat) liegt unter der Hälfte des durchschnittlichen Bruttogehalts (%s €/Monat). Bitte prüfen Sie die Angaben.",
			p("name"), p("net"), p("gross"))

	case domain.CodeMaintenanceNetAboveItemized:
		return fmt.Sprintf("Die Unterhaltssumme in der Selbstauskunft (%s €/Monat) übersteigt die Summe der Einzelangaben (%s €/Monat).",
			p("total"), p("itemized"))
	case domain.CodeMaintenanceFarBelowItemized:
		return fmt.Sprintf("Die Unterhaltssumme in der Selbstauskunft (%s €/Monat) liegt deutlich unter der Summe der Einzelangaben (%s €/Monat).",
			p("total"), p("itemized"))

	case domain.CodeFloorAreaTotalMismatch:
		return fmt.Sprintf("Die Summe der Raumflächen (%s m²) weicht von der angegebenen Wohnfläche (%s m²) ab.",
			p("computed"), p("declared"))

	case domain.CodeFormUnavailable:
		return fmt.Sprintf("Das Formular \"%s\" konnte nicht geladen werden. Die zugehörigen Prüfungen wurden übersprungen.", formTitle(domain.FormID(p("form"))))
	case domain.CodeFormMalformed:
		return fmt.Sprintf("Das Formular \"%s\" ist fehlerhaft gespeichert und konnte nicht gelesen werden.", formTitle(domain.FormID(p("form"))))
	case domain.CodeInternalError:
		return "Bei der Prüfung ist ein interner Fehler aufgetreten. Die übrigen Abschnitte sind davon nicht betroffen."

	default:
		return n.Code
	}
}

func directionLabel(dir string) string {
	switch dir {
	case "increase":
		return "Erhöhung"
	case "decrease":
		return "Verringerung"
	default:
		return dir
	}
}

func boolLabel(b string) string {
	switch b {
	case "true":
		return "Ja"
	case "false":
		return "Nein"
	default:
		return b
	}
}

// incomeTypeLabel maps the source-type identifiers to their German labels.
func incomeTypeLabel(t string) string {
	switch domain.IncomeType(t) {
	case domain.IncomeEmployment:
		return "nichtselbständiger Arbeit"
	case domain.IncomeBusiness:
		return "Gewerbebetrieb"
	case domain.IncomeAgriculture:
		return "Land- und Forstwirtschaft"
	case domain.IncomeRent:
		return "Vermietung und Verpachtung"
	case domain.IncomePension:
		return "Renten"
	case domain.IncomeUnemployment:
		return "Arbeitslosengeld"
	case domain.IncomeForeign:
		return "ausländischen Einkünften"
	case domain.IncomeMaintenanceTaxFree:
		return "steuerfreien Unterhaltsleistungen"
	case domain.IncomeMaintenanceTaxable:
		return "steuerpflichtigen Unterhaltsleistungen"
	case domain.IncomeOther:
		return "sonstigen Einkünften"
	case domain.IncomeMiniJob:
		return "pauschal versteuerter Beschäftigung"
	default:
		return t
	}
}

// formTitle returns the German section title for a form.
func formTitle(id domain.FormID) string {
	switch id {
	case domain.FormMainApplication:
		return "Hauptantrag"
	case domain.FormIncomeDeclaration:
		return "Einkommenserklärung"
	case domain.FormSelfDisclosure:
		return "Selbstauskunft"
	case domain.FormSelfHelp:
		return "Selbsthilfeleistungen"
	case domain.FormFloorArea:
		return "Wohnflächenberechnung"
	default:
		return string(id)
	}
}
