package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkellner/wohnval/internal/calculation"
	"github.com/mkellner/wohnval/internal/domain"
)

func TestRenderNote_KnownCodes(t *testing.T) {
	tests := []struct {
		name string
		note domain.Note
		want string
	}{
		{
			"far future change",
			domain.WarningNote(domain.CodeChangeFarFuture, "date", "2027-06-01"),
			"2027-06-01",
		},
		{
			"loan ceiling exceeded",
			domain.ErrorNote(domain.CodeLoanCeilingExceeded,
				"requested", "120000.00", "ceiling", "115000.00", "category", "3", "tier", "B"),
			"übersteigt die Grenze",
		},
		{
			"household count off by one",
			domain.WarningNote(domain.CodeHouseholdCountOffByOne, "declared", "3", "actual", "4"),
			"Haushaltsmitglieder",
		},
		{
			"income type label",
			domain.WarningNote(domain.CodeSourceMissingTurnus, "type", "foreign"),
			"ausländischen Einkünften",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, RenderNote(tt.note), tt.want)
		})
	}
}

func TestRenderNote_UnknownCodeFallsBack(t *testing.T) {
	assert.Equal(t, "some.new_code", RenderNote(domain.Note{Code: "some.new_code"}))
}

func testResults() *calculation.RunResults {
	return &calculation.RunResults{
		RunID:          "run-1",
		SubjectID:      "app-1",
		Today:          time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		FormErrors:     map[domain.FormID]domain.Note{},
		IncomeDecl:     &domain.IncomeDeclarationForm{},
		SelfDisclosure: &domain.SelfDisclosureForm{},
		Income: calculation.HouseholdIncome{
			Aggregate: domain.HouseholdIncomeAggregate{
				Gross:         decimal.NewFromInt(24000),
				FinalAdjusted: decimal.NewFromInt(18138),
			},
		},
		Eligibility: domain.EligibilityResult{
			Tier:     domain.TierA,
			Eligible: true,
			Reason:   domain.ReasonWithinTierA,
		},
	}
}

func TestBuild_SectionOrderAndSuccess(t *testing.T) {
	r := Build(testResults())

	require.Len(t, r.Sections, 5)
	assert.Equal(t, string(domain.FormMainApplication), r.Sections[0].ID)
	assert.Equal(t, string(domain.FormIncomeDeclaration), r.Sections[1].ID)
	assert.Equal(t, string(domain.FormSelfDisclosure), r.Sections[2].ID)
	assert.Equal(t, string(domain.FormSelfHelp), r.Sections[3].ID)
	assert.Equal(t, string(domain.FormFloorArea), r.Sections[4].ID)

	assert.Equal(t, "Hauptantrag", r.Sections[0].Title)
	assert.True(t, r.OK())

	// Clean sections carry a success line and no action.
	for _, s := range r.Sections {
		assert.NotEmpty(t, s.Successes, "section %s", s.ID)
		assert.Empty(t, s.Actions, "section %s", s.ID)
	}

	// The income section carries the tier narrative.
	joined := strings.Join(r.Sections[1].Calculations, " ")
	assert.Contains(t, joined, "Einkommensstufe A")
}

func TestBuild_FindingsRoutedToFormSections(t *testing.T) {
	res := testResults()
	res.FormErrors[domain.FormFloorArea] = domain.ErrorNote(domain.CodeFormUnavailable,
		"form", string(domain.FormFloorArea))
	res.ConsistencyNotes = []domain.Note{
		domain.ErrorNote(domain.CodeSelfHelpTotalMismatch,
			"form_total", "1000.00", "application_total", "650.00"),
		domain.WarningNote(domain.CodeSalaryNetBelowHalfGross,
			"name", "Anna", "net", "900.00", "gross", "2400.00"),
		domain.ErrorNote(domain.CodeHouseholdCountMismatch,
			"declared", "2", "actual", "5"),
	}

	r := Build(res)
	require.Len(t, r.Sections, 5)

	main := r.Sections[0]
	selfDisclosure := r.Sections[2]
	selfHelp := r.Sections[3]
	floorArea := r.Sections[4]

	assert.Len(t, main.Errors, 1)
	assert.Len(t, selfHelp.Errors, 1)
	assert.Len(t, selfDisclosure.Warnings, 1)
	assert.Len(t, floorArea.Errors, 1)

	// Failed sections point back at their form.
	require.Len(t, selfHelp.Actions, 1)
	assert.Equal(t, "/forms/selbsthilfe", selfHelp.Actions[0].Route)
	assert.False(t, r.OK())
	assert.Equal(t, 3, r.ErrorCount())
	assert.Equal(t, 1, r.WarningCount())
}

func TestBuild_IneligibleHouseholdError(t *testing.T) {
	res := testResults()
	res.Eligibility = domain.EligibilityResult{
		Tier:   domain.TierNone,
		Reason: domain.ReasonGrossExceeded,
	}

	r := Build(res)
	income := r.Sections[1]
	require.NotEmpty(t, income.Errors)
	assert.Contains(t, income.Errors[0], "Bruttoeinkommensgrenze")
}

func TestWrite_Formats(t *testing.T) {
	r := Build(testResults())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, "json"))
	assert.Contains(t, buf.String(), `"run_id": "run-1"`)

	buf.Reset()
	require.NoError(t, Write(&buf, r, "yaml"))
	assert.Contains(t, buf.String(), "subject_id: app-1")

	buf.Reset()
	require.NoError(t, Write(&buf, r, "console"))
	assert.Contains(t, buf.String(), "Prüfbericht")

	assert.Error(t, Write(&buf, r, "pdf"))
}
