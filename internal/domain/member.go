package domain

import "time"

// MainApplicantID is the stable member id for the main applicant.
const MainApplicantID = "applicant"

// HouseholdMember is the canonical per-person model every computation
// works over. Instances are built fresh per validation run from the form
// snapshots and never mutated.
type HouseholdMember struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	MainApplicant   bool       `json:"main_applicant"`
	Excluded        bool       `json:"excluded"`
	HasIncome       bool       `json:"has_income"`
	CareLevel       int        `json:"care_level"`       // Pflegegrad 0-5
	DisabilityGrade int        `json:"disability_grade"` // GdB 0-100
	BirthDate       *time.Time `json:"birth_date,omitempty"`

	Finances FinancialRecord `json:"finances"`
}

// Unborn reports whether the member's birth date lies after the reference
// date. Unborn members contribute no allowance and are excluded from the
// adult/child tallies.
func (m HouseholdMember) Unborn(ref time.Time) bool {
	return m.BirthDate != nil && m.BirthDate.After(ref)
}

// DisplayName returns a name usable in narratives, falling back to the id.
func (m HouseholdMember) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// HouseholdComposition is the declared household shape the eligibility
// classification runs against.
type HouseholdComposition struct {
	AdultCount int  `json:"adult_count"`
	ChildCount int  `json:"child_count"`
	Married    bool `json:"married"`
	Retired    bool `json:"retired"`
}

// Size returns the total declared household size.
func (c HouseholdComposition) Size() int {
	return c.AdultCount + c.ChildCount
}

// HasChildren reports whether the household declares at least one child.
func (c HouseholdComposition) HasChildren() bool {
	return c.ChildCount > 0
}
