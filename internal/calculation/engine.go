package calculation

import (
	"context"
	"errors"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mkellner/wohnval/internal/consistency"
	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/region"
	"github.com/mkellner/wohnval/internal/regulatory"
	"github.com/mkellner/wohnval/internal/store"
)

// ValidationEngine orchestrates a full validation run: it fetches the form
// snapshots, runs the income pipeline and the cross-form checks, and
// collects everything into a RunResults for the report builder.
type ValidationEngine struct {
	Store      store.FormStore
	Regulatory *regulatory.Config
	Regions    region.Lookup
	Logger     Logger

	// Now supplies the reference date. Overridable for deterministic runs.
	Now func() time.Time
}

// NewValidationEngine creates an engine with the default statutory tables
// and a no-op logger.
func NewValidationEngine(st store.FormStore) *ValidationEngine {
	return &ValidationEngine{
		Store:      st,
		Regulatory: regulatory.Default(),
		Regions:    region.DefaultLookup(),
		Logger:     NopLogger{},
		Now:        time.Now,
	}
}

// SetLogger installs a custom logger. A nil logger resets to the no-op
// default.
func (e *ValidationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// RunResults carries everything one validation run produced. A nil form
// pointer means the snapshot was unavailable or malformed; the matching
// FormErrors entry says which.
type RunResults struct {
	RunID     string
	SubjectID string
	Today     time.Time

	Main           *domain.MainApplicationForm
	IncomeDecl     *domain.IncomeDeclarationForm
	SelfDisclosure *domain.SelfDisclosureForm
	SelfHelp       *domain.SelfHelpForm
	FloorArea      *domain.FloorAreaForm

	FormErrors map[domain.FormID]domain.Note

	Members     []domain.HouseholdMember
	Composition domain.HouseholdComposition

	Income      HouseholdIncome
	Eligibility domain.EligibilityResult
	Loan        LoanCheck
	Available   AvailableIncome

	ConsistencyNotes []domain.Note
}

// Run executes a full validation for one subject. Form fetches fan out
// concurrently; every later step degrades to a section-level finding when
// its inputs are missing, so a single broken form never aborts the run.
func (e *ValidationEngine) Run(ctx context.Context, subjectID string) (*RunResults, error) {
	if e.Store == nil {
		return nil, errors.New("validation engine has no form store")
	}

	res := &RunResults{
		RunID:      uuid.NewString(),
		SubjectID:  subjectID,
		Today:      e.Now().UTC(),
		FormErrors: make(map[domain.FormID]domain.Note),
	}

	e.Logger.Infof("validation run %s starting for subject %s", res.RunID, subjectID)

	snapshots := e.fetchSnapshots(ctx, subjectID, res)
	e.decodeForms(snapshots, res)

	if res.IncomeDecl != nil {
		res.Members = domain.NormalizeHousehold(subjectID, res.IncomeDecl)
	}

	// The income pipeline sees only the active household; the consistency
	// checks keep the full member list so exclusions stay visible there.
	active := domain.ActiveMembers(res.Members)
	res.Composition = DeriveComposition(res.Main, active)

	e.step("income", res, func() {
		res.Income = AggregateHousehold(active, res.Composition, e.Regulatory, res.Today)
	})
	e.step("eligibility", res, func() {
		res.Eligibility = Classify(res.Income.Aggregate, res.Composition, e.Regulatory)
	})
	e.step("loan", res, func() {
		res.Loan = CheckLoanCeiling(res.Main, res.Eligibility, e.Regions)
	})
	e.step("available", res, func() {
		res.Available = ComputeAvailableIncome(res.SelfDisclosure, res.Composition, e.Regulatory)
	})
	e.step("consistency", res, func() {
		res.ConsistencyNotes = consistency.RunChecks(consistency.Input{
			Today:          res.Today,
			Main:           res.Main,
			IncomeDecl:     res.IncomeDecl,
			SelfDisclosure: res.SelfDisclosure,
			SelfHelp:       res.SelfHelp,
			FloorArea:      res.FloorArea,
			Members:        res.Members,
		})
	})

	e.Logger.Infof("validation run %s finished, %d form errors", res.RunID, len(res.FormErrors))
	return res, nil
}

// step runs fn behind a recover boundary. A panic in one pipeline step
// becomes an internal-error finding on its form section instead of
// tearing down the run.
func (e *ValidationEngine) step(name string, res *RunResults, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.Errorf("step %s panicked: %v", name, r)
			res.ConsistencyNotes = append(res.ConsistencyNotes,
				domain.ErrorNote(domain.CodeInternalError, "step", name))
		}
	}()
	fn()
}

// fetchSnapshots loads all form snapshots concurrently and records an
// unavailability finding for every fetch that fails.
func (e *ValidationEngine) fetchSnapshots(ctx context.Context, subjectID string, res *RunResults) map[domain.FormID][]byte {
	type fetched struct {
		id  domain.FormID
		raw []byte
		err error
	}

	results := make(chan fetched, len(domain.AllForms))
	var wg sync.WaitGroup
	for _, id := range domain.AllForms {
		wg.Add(1)
		go func(id domain.FormID) {
			defer wg.Done()
			raw, err := e.Store.FetchFormSnapshot(ctx, id, subjectID)
			results <- fetched{id: id, raw: raw, err: err}
		}(id)
	}
	wg.Wait()
	close(results)

	snapshots := make(map[domain.FormID][]byte, len(domain.AllForms))
	for f := range results {
		if f.err != nil {
			e.Logger.Warnf("form %s unavailable: %v", f.id, f.err)
			res.FormErrors[f.id] = domain.ErrorNote(domain.CodeFormUnavailable,
				"form", string(f.id))
			continue
		}
		snapshots[f.id] = f.raw
	}
	return snapshots
}

// decodeForms unmarshals the raw snapshots. A malformed snapshot yields a
// finding on its own form and leaves the pointer nil; the other forms are
// unaffected.
func (e *ValidationEngine) decodeForms(snapshots map[domain.FormID][]byte, res *RunResults) {
	res.Main = decodeForm[domain.MainApplicationForm](e, snapshots, domain.FormMainApplication, res)
	res.IncomeDecl = decodeForm[domain.IncomeDeclarationForm](e, snapshots, domain.FormIncomeDeclaration, res)
	res.SelfDisclosure = decodeForm[domain.SelfDisclosureForm](e, snapshots, domain.FormSelfDisclosure, res)
	res.SelfHelp = decodeForm[domain.SelfHelpForm](e, snapshots, domain.FormSelfHelp, res)
	res.FloorArea = decodeForm[domain.FloorAreaForm](e, snapshots, domain.FormFloorArea, res)
}

func decodeForm[T any](e *ValidationEngine, snapshots map[domain.FormID][]byte, id domain.FormID, res *RunResults) *T {
	raw, ok := snapshots[id]
	if !ok {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		e.Logger.Warnf("form %s malformed: %v", id, err)
		res.FormErrors[id] = domain.ErrorNote(domain.CodeFormMalformed,
			"form", string(id))
		return nil
	}
	return &v
}
