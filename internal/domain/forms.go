package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormID identifies one of the application forms. The ids are stable; the
// presentation layer uses them to group report sections and to build
// navigation routes.
type FormID string

const (
	FormMainApplication   FormID = "hauptantrag"
	FormIncomeDeclaration FormID = "einkommenserklaerung"
	FormSelfDisclosure    FormID = "selbstauskunft"
	FormSelfHelp          FormID = "selbsthilfe"
	FormFloorArea         FormID = "wohnflaechenberechnung"
)

// AllForms lists every form fetched for a validation run.
var AllForms = []FormID{
	FormMainApplication,
	FormIncomeDeclaration,
	FormSelfDisclosure,
	FormSelfHelp,
	FormFloorArea,
}

// MainApplicationForm is the snapshot of the main application.
type MainApplicationForm struct {
	AdultCount int  `yaml:"adult_count" json:"adult_count"`
	ChildCount int  `yaml:"child_count" json:"child_count"`
	Married    bool `yaml:"married" json:"married"`

	DisabledAdultCount int  `yaml:"disabled_adult_count" json:"disabled_adult_count"`
	DisabledChildCount int  `yaml:"disabled_child_count" json:"disabled_child_count"`
	HasDisabledMembers bool `yaml:"has_disabled_members" json:"has_disabled_members"`

	Postcode              string          `yaml:"postcode" json:"postcode"`
	RequestedBaseLoan     decimal.Decimal `yaml:"requested_base_loan" json:"requested_base_loan"`
	SupplementaryLoanOnly bool            `yaml:"supplementary_loan_only" json:"supplementary_loan_only"`

	SelfHelpTotal decimal.Decimal `yaml:"self_help_total" json:"self_help_total"`
}

// MemberRecord is the per-person block of the income declaration. The
// main applicant and additional members share this shape.
type MemberRecord struct {
	Name            string          `yaml:"name" json:"name"`
	BirthDate       *time.Time      `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	HasIncome       bool            `yaml:"has_income" json:"has_income"`
	Excluded        bool            `yaml:"excluded" json:"excluded"`
	CareLevel       int             `yaml:"care_level" json:"care_level"`
	DisabilityGrade int             `yaml:"disability_grade" json:"disability_grade"`
	Finances        FinancialRecord `yaml:"finances" json:"finances"`
}

// IncomeDeclarationForm is the snapshot of the income declaration. Stored
// records exist in two formats: the current keyed-by-id map and a legacy
// list. Normalization converts either into the canonical member model.
type IncomeDeclarationForm struct {
	Applicant MemberRecord `yaml:"applicant" json:"applicant"`

	Members       map[string]MemberRecord `yaml:"members,omitempty" json:"members,omitempty"`
	LegacyMembers []MemberRecord          `yaml:"legacy_members,omitempty" json:"legacy_members,omitempty"`
}

// SelfDisclosurePerson carries the fixed net monthly income and expense
// lines of one person on the self-disclosure form.
type SelfDisclosurePerson struct {
	Name            string `yaml:"name" json:"name"`
	HasSalaryIncome bool   `yaml:"has_salary_income" json:"has_salary_income"`

	NetSalaryMonthly     decimal.Decimal   `yaml:"net_salary_monthly" json:"net_salary_monthly"`
	ChristmasBonusAnnual decimal.Decimal   `yaml:"christmas_bonus_annual" json:"christmas_bonus_annual"`
	VacationBonusAnnual  decimal.Decimal   `yaml:"vacation_bonus_annual" json:"vacation_bonus_annual"`
	OtherBonusAnnual     decimal.Decimal   `yaml:"other_bonus_annual" json:"other_bonus_annual"`
	BusinessAnnual       decimal.Decimal   `yaml:"business_annual" json:"business_annual"`
	AgricultureAnnual    decimal.Decimal   `yaml:"agriculture_annual" json:"agriculture_annual"`
	RentAnnual           decimal.Decimal   `yaml:"rent_annual" json:"rent_annual"`
	CapitalAnnual        decimal.Decimal   `yaml:"capital_annual" json:"capital_annual"`
	Pensions             []decimal.Decimal `yaml:"pensions,omitempty" json:"pensions,omitempty"`
	OtherIncome          []decimal.Decimal `yaml:"other_income,omitempty" json:"other_income,omitempty"`

	TaxesInsurance         []decimal.Decimal `yaml:"taxes_insurance,omitempty" json:"taxes_insurance,omitempty"`
	LoanPayments           decimal.Decimal   `yaml:"loan_payments" json:"loan_payments"`
	BridgeLoanPayments     decimal.Decimal   `yaml:"bridge_loan_payments" json:"bridge_loan_payments"`
	MaintenancePaidMonthly decimal.Decimal   `yaml:"maintenance_paid_monthly" json:"maintenance_paid_monthly"`
	OtherObligations       decimal.Decimal   `yaml:"other_obligations" json:"other_obligations"`
	BuildingSavingsRate    decimal.Decimal   `yaml:"building_savings_rate" json:"building_savings_rate"`
	CapitalPensionPremium  decimal.Decimal   `yaml:"capital_pension_premium" json:"capital_pension_premium"`
}

// SelfDisclosureForm is the snapshot of the self-disclosure form. The
// per-type net figures feed the net-vs-gross sanity checks.
type SelfDisclosureForm struct {
	Persons []SelfDisclosurePerson `yaml:"persons" json:"persons"`

	NetByType            map[IncomeType]decimal.Decimal `yaml:"net_by_type,omitempty" json:"net_by_type,omitempty"`
	MaintenancePaidTotal decimal.Decimal                `yaml:"maintenance_paid_total" json:"maintenance_paid_total"`
}

// SelfHelpEntry is one itemized self-help labor position.
type SelfHelpEntry struct {
	Description string          `yaml:"description" json:"description"`
	Hours       decimal.Decimal `yaml:"hours" json:"hours"`
	HourlyRate  decimal.Decimal `yaml:"hourly_rate" json:"hourly_rate"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// SelfHelpForm is the snapshot of the self-help labor accounting form.
type SelfHelpForm struct {
	Entries []SelfHelpEntry `yaml:"entries,omitempty" json:"entries,omitempty"`
	Total   decimal.Decimal `yaml:"total" json:"total"`
}

// ItemizedSum returns the sum of the itemized entry amounts.
func (f SelfHelpForm) ItemizedSum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range f.Entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// RoomArea is one room line of the floor-area calculation.
type RoomArea struct {
	Name string          `yaml:"name" json:"name"`
	Area decimal.Decimal `yaml:"area" json:"area"` // square meters, already weighted
}

// FloorAreaForm is the snapshot of the floor-area calculation form.
type FloorAreaForm struct {
	Rooms           []RoomArea      `yaml:"rooms,omitempty" json:"rooms,omitempty"`
	TotalLivingArea decimal.Decimal `yaml:"total_living_area" json:"total_living_area"`
}

// ComputedArea returns the sum of the room areas.
func (f FloorAreaForm) ComputedArea() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range f.Rooms {
		sum = sum.Add(r.Area)
	}
	return sum
}

// ApplicationFile bundles all five form snapshots of one subject. It is the
// offline input format of the check and import commands.
type ApplicationFile struct {
	SubjectID string `yaml:"subject_id" json:"subject_id"`

	MainApplication   *MainApplicationForm   `yaml:"main_application,omitempty" json:"main_application,omitempty"`
	IncomeDeclaration *IncomeDeclarationForm `yaml:"income_declaration,omitempty" json:"income_declaration,omitempty"`
	SelfDisclosure    *SelfDisclosureForm    `yaml:"self_disclosure,omitempty" json:"self_disclosure,omitempty"`
	SelfHelp          *SelfHelpForm          `yaml:"self_help,omitempty" json:"self_help,omitempty"`
	FloorArea         *FloorAreaForm         `yaml:"floor_area,omitempty" json:"floor_area,omitempty"`
}
