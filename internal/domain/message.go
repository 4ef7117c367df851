package domain

// Severity classifies a finding. Errors mark rule violations or missing
// data, warnings mark data-quality issues handled by a documented
// fallback, infos carry calculation narrative.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Note is a structured finding produced by the calculators and checkers.
// The numeric pipeline emits codes and parameters only; the report layer
// renders the human-readable text.
type Note struct {
	Severity Severity          `json:"severity"`
	Code     string            `json:"code"`
	Params   map[string]string `json:"params,omitempty"`
}

// Finding codes emitted by the calculation pipeline.
const (
	// Declared-change projection.
	CodeChangeFarFuture         = "change.far_future"
	CodeChangeLongPast          = "change.long_past"
	CodeChangeDirectionMismatch = "change.direction_mismatch"

	// Per-source aggregation.
	CodeSourceStaleYear     = "source.stale_year"
	CodeSourceStaleMonthly  = "source.stale_monthly"
	CodeSourceMissingTurnus = "source.missing_turnus"

	// Eligibility.
	CodeEligibilityRetiredWithChildren = "eligibility.retired_with_children"

	// Loan ceiling.
	CodeLoanSupplementarySkip = "loan.supplementary_skip"
	CodeLoanRegionUnsupported = "loan.region_unsupported"
	CodeLoanWithinCeiling     = "loan.within_ceiling"
	CodeLoanCeilingExceeded   = "loan.ceiling_exceeded"
	CodeLoanIneligibleNonzero = "loan.ineligible_nonzero"

	// Available income.
	CodeAvailableBelowFloor       = "available.below_floor"
	CodeAvailableNegative         = "available.negative"
	CodeAvailableBelowSingleFloor = "available.below_single_floor"

	// Cross-form consistency.
	CodeHouseholdCountOffByOne      = "household.count_off_by_one"
	CodeHouseholdCountMismatch      = "household.count_mismatch"
	CodeHouseholdAgeMismatch        = "household.age_mismatch"
	CodeHouseholdBirthDateMissing   = "household.birth_date_missing"
	CodeHouseholdUnbornMember       = "household.unborn_member"
	CodeDisabilityCountMismatch     = "disability.count_mismatch"
	CodeDisabilityFlagMismatch      = "disability.flag_mismatch"
	CodeSelfHelpTotalMismatch       = "selfhelp.total_mismatch"
	CodeSelfHelpEntryImplausible    = "selfhelp.entry_implausible"
	CodeNetExceedsGross             = "netgross.net_exceeds_gross"
	CodeSalaryFlagConflict          = "salary.flag_conflict"
	CodeSalaryNetAboveGross         = "salary.net_above_gross"
	CodeSalaryNetBelowHalfGross     = "salary.net_below_half_gross"
	CodeMaintenanceNetAboveItemized = "maintenance.net_above_itemized"
	CodeMaintenanceFarBelowItemized = "maintenance.far_below_itemized"
	CodeFloorAreaTotalMismatch      = "floorarea.total_mismatch"

	// Section boundary.
	CodeFormUnavailable = "form.unavailable"
	CodeFormMalformed   = "form.malformed"
	CodeInternalError   = "internal.error"
)

// NewNote builds a note from code and alternating key/value parameter
// pairs.
func NewNote(severity Severity, code string, kv ...string) Note {
	n := Note{Severity: severity, Code: code}
	if len(kv) > 0 {
		n.Params = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			n.Params[kv[i]] = kv[i+1]
		}
	}
	return n
}

// ErrorNote is shorthand for an error-severity note.
func ErrorNote(code string, kv ...string) Note { return NewNote(SeverityError, code, kv...) }

// WarningNote is shorthand for a warning-severity note.
func WarningNote(code string, kv ...string) Note { return NewNote(SeverityWarning, code, kv...) }

// InfoNote is shorthand for an info-severity note.
func InfoNote(code string, kv ...string) Note { return NewNote(SeverityInfo, code, kv...) }

// HasErrors reports whether any note carries error severity.
func HasErrors(notes []Note) bool {
	for _, n := range notes {
		if n.Severity == SeverityError {
			return true
		}
	}
	return false
}
