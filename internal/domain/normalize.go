package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// memberNamespace is the UUID namespace for deterministic legacy member
// ids. Repeated runs over the same stored data must assign the same ids.
var memberNamespace = uuid.MustParse("7b0d3a52-8f1e-4c7a-9be4-2d6f1a5c9e30")

// LegacyMemberID derives a stable id for a legacy list-format member from
// the subject and the member's list position.
func LegacyMemberID(subjectID string, index int) string {
	name := fmt.Sprintf("%s/member/%d", subjectID, index)
	return uuid.NewSHA1(memberNamespace, []byte(name)).String()
}

// NormalizeHousehold converts an income declaration snapshot into the
// canonical member list. The main applicant comes first; keyed-map members
// follow in key order, legacy list members in list order. Excluded members
// are kept with their flag set so consistency checks can still see them.
func NormalizeHousehold(subjectID string, form *IncomeDeclarationForm) []HouseholdMember {
	if form == nil {
		return nil
	}

	members := make([]HouseholdMember, 0, 1+len(form.Members)+len(form.LegacyMembers))
	members = append(members, memberFromRecord(MainApplicantID, form.Applicant, true))

	keys := make([]string, 0, len(form.Members))
	for k := range form.Members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		members = append(members, memberFromRecord(k, form.Members[k], false))
	}

	for i, rec := range form.LegacyMembers {
		members = append(members, memberFromRecord(LegacyMemberID(subjectID, i), rec, false))
	}

	return members
}

// ActiveMembers filters out members flagged as excluded from the household.
func ActiveMembers(members []HouseholdMember) []HouseholdMember {
	active := make([]HouseholdMember, 0, len(members))
	for _, m := range members {
		if !m.Excluded {
			active = append(active, m)
		}
	}
	return active
}

func memberFromRecord(id string, rec MemberRecord, main bool) HouseholdMember {
	return HouseholdMember{
		ID:              id,
		Name:            rec.Name,
		MainApplicant:   main,
		Excluded:        rec.Excluded,
		HasIncome:       rec.HasIncome,
		CareLevel:       rec.CareLevel,
		DisabilityGrade: rec.DisabilityGrade,
		BirthDate:       rec.BirthDate,
		Finances:        rec.Finances,
	}
}
