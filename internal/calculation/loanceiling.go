package calculation

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/region"
)

// LoanCheck is the outcome of the base-loan ceiling validation.
type LoanCheck struct {
	Skipped   bool
	Category  *region.CostCategory
	Ceiling   decimal.Decimal
	Requested decimal.Decimal
	Notes     []domain.Note
}

// CheckLoanCeiling validates the requested base loan against the regional
// ceiling for the household's classified tier. Supplementary-loan
// applications skip the check entirely.
func CheckLoanCeiling(main *domain.MainApplicationForm, elig domain.EligibilityResult, lookup region.Lookup) LoanCheck {
	if main == nil {
		return LoanCheck{Skipped: true}
	}
	out := LoanCheck{Requested: main.RequestedBaseLoan}

	if main.SupplementaryLoanOnly {
		out.Skipped = true
		out.Notes = append(out.Notes, domain.InfoNote(domain.CodeLoanSupplementarySkip))
		return out
	}

	if elig.Tier == domain.TierNone {
		if main.RequestedBaseLoan.GreaterThan(decimal.Zero) {
			out.Notes = append(out.Notes, domain.ErrorNote(domain.CodeLoanIneligibleNonzero,
				"requested", main.RequestedBaseLoan.StringFixed(2)))
		}
		return out
	}

	cc, err := lookup.Resolve(main.Postcode)
	if err != nil {
		if errors.Is(err, region.ErrUnsupportedRegion) {
			out.Notes = append(out.Notes, domain.WarningNote(domain.CodeLoanRegionUnsupported,
				"postcode", main.Postcode))
			return out
		}
		out.Notes = append(out.Notes, domain.ErrorNote(domain.CodeInternalError,
			"detail", err.Error()))
		return out
	}
	out.Category = &cc

	if elig.Tier == domain.TierA {
		out.Ceiling = cc.TierACeiling
	} else {
		out.Ceiling = cc.TierBCeiling
	}

	if main.RequestedBaseLoan.GreaterThan(out.Ceiling) {
		out.Notes = append(out.Notes, domain.ErrorNote(domain.CodeLoanCeilingExceeded,
			"requested", main.RequestedBaseLoan.StringFixed(2),
			"ceiling", out.Ceiling.StringFixed(2),
			"category", itoa(cc.Category),
			"tier", string(elig.Tier)))
	} else {
		out.Notes = append(out.Notes, domain.InfoNote(domain.CodeLoanWithinCeiling,
			"requested", main.RequestedBaseLoan.StringFixed(2),
			"ceiling", out.Ceiling.StringFixed(2),
			"category", itoa(cc.Category),
			"tier", string(elig.Tier)))
	}

	return out
}
