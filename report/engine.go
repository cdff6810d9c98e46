/*
engine.go - Report facade: generation and re-materialization

PURPOSE:
  Single entry point for callers. Validates the request, resolves the
  student, parent and scope, runs resolver -> joiner -> calculator, and
  persists the Report record. The returned summary is always computed
  fresh; the stored Report only contributes id, notes and audit fields.

OPERATIONS:
  GenerateLessonReport / GenerateMonthReport / GenerateCourseReport
  Generate            dispatch on kind
  GetReportByID       load + Rematerialize
  GetStudentReports   stored Report records (not summaries)
  Rematerialize       re-derive the summary of a stored Report

FAILURE ORDER:
  1. Validation (missing ids, unknown kind) before any store access
  2. NotFound / kind mismatch while reading
  3. The upsert, attempted only when every read succeeded

INCONSISTENT REFERENCES:
  A stored Report may point at a lesson or scope deleted since. Generation
  fails with NotFound in that case; Rematerialize degrades to nil/empty
  fields instead, because reports outlive the data that produced them.

SEE ALSO:
  - summary.go: Calculators and summary types
  - repository.go: Upsert with retry
*/
package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/warp/academy-engine/academy"
)

// Source is what the engine needs from a store.
type Source interface {
	academy.Directory
	academy.ReportStore
}

// Engine is the report facade.
type Engine struct {
	Directory  academy.Directory
	Repository *Repository
	Resolver   *Resolver
	Joiner     *Joiner

	// Location decides calendar-month boundaries for course buckets.
	Location *time.Location

	log *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.Location = loc
		}
	}
}

// WithUpsertAttempts bounds the retry loop around report upserts.
func WithUpsertAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.Repository.MaxAttempts = n
		}
	}
}

func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{
		Directory:  src,
		Repository: NewRepository(src, nil),
		Resolver:   NewResolver(src),
		Joiner:     NewJoiner(src),
		Location:   time.UTC,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Repository.log = e.log.Named("repository")
	return e
}

// =============================================================================
// GENERATION
// =============================================================================

// GenerateRequest asks for a report of Kind about StudentID over ScopeRef
// (a lesson id for lesson reports, a scope id otherwise).
type GenerateRequest struct {
	Kind        academy.ReportKind
	StudentID   academy.StudentID
	ScopeRef    string
	Notes       string
	RequestedBy string
}

func (r GenerateRequest) validate() error {
	if !r.Kind.Valid() {
		return &academy.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown report kind %q", r.Kind)}
	}
	if r.StudentID == "" {
		return &academy.ValidationError{Field: "student_id", Message: "required"}
	}
	if r.ScopeRef == "" {
		field := "scope_id"
		if r.Kind == academy.ReportLesson {
			field = "lesson_id"
		}
		return &academy.ValidationError{Field: field, Message: "required"}
	}
	return nil
}

// Generate builds the summary for req, upserts its Report, and returns the
// summary overlaid with the persisted report's identity and notes.
func (e *Engine) Generate(ctx context.Context, req GenerateRequest) (Summary, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	summary, err := e.build(ctx, req.Kind, req.StudentID, req.ScopeRef, false)
	if err != nil {
		return nil, err
	}

	key := academy.ReportKey{StudentID: req.StudentID, Kind: req.Kind, ScopeRef: req.ScopeRef}
	stored, err := e.Repository.Upsert(ctx, key, academy.ReportFields{
		Notes:     req.Notes,
		CreatedBy: req.RequestedBy,
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("report generated",
		zap.String("report_id", string(stored.ID)),
		zap.String("kind", string(stored.Kind)),
		zap.String("student_id", string(stored.StudentID)),
		zap.String("scope_ref", stored.ScopeRef()),
		zap.Bool("replaced", stored.UpdatedAt.After(stored.CreatedAt)),
	)

	overlay(summary, stored)
	return summary, nil
}

func (e *Engine) GenerateLessonReport(ctx context.Context, studentID academy.StudentID, lessonID academy.LessonID, notes, requestedBy string) (*LessonSummary, error) {
	s, err := e.Generate(ctx, GenerateRequest{
		Kind:        academy.ReportLesson,
		StudentID:   studentID,
		ScopeRef:    string(lessonID),
		Notes:       notes,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return nil, err
	}
	return s.(*LessonSummary), nil
}

func (e *Engine) GenerateMonthReport(ctx context.Context, studentID academy.StudentID, scopeID academy.ScopeID, notes, requestedBy string) (*MonthSummary, error) {
	s, err := e.Generate(ctx, GenerateRequest{
		Kind:        academy.ReportMonth,
		StudentID:   studentID,
		ScopeRef:    string(scopeID),
		Notes:       notes,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return nil, err
	}
	return s.(*MonthSummary), nil
}

func (e *Engine) GenerateCourseReport(ctx context.Context, studentID academy.StudentID, scopeID academy.ScopeID, notes, requestedBy string) (*CourseSummary, error) {
	s, err := e.Generate(ctx, GenerateRequest{
		Kind:        academy.ReportCourse,
		StudentID:   studentID,
		ScopeRef:    string(scopeID),
		Notes:       notes,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return nil, err
	}
	return s.(*CourseSummary), nil
}

// =============================================================================
// RETRIEVAL
// =============================================================================

// GetReportByID loads a stored report and re-derives its summary.
func (e *Engine) GetReportByID(ctx context.Context, id academy.ReportID) (Summary, error) {
	if id == "" {
		return nil, &academy.ValidationError{Field: "report_id", Message: "required"}
	}
	stored, err := e.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.Rematerialize(ctx, *stored)
}

// GetStudentReports returns the stored report records of a student.
func (e *Engine) GetStudentReports(ctx context.Context, studentID academy.StudentID) ([]academy.Report, error) {
	if studentID == "" {
		return nil, &academy.ValidationError{Field: "student_id", Message: "required"}
	}
	return e.Repository.ListByStudent(ctx, studentID)
}

// Rematerialize re-runs the pipeline for a stored report. Deleted lessons
// or scopes degrade to empty fields rather than failing.
func (e *Engine) Rematerialize(ctx context.Context, stored academy.Report) (Summary, error) {
	summary, err := e.build(ctx, stored.Kind, stored.StudentID, stored.ScopeRef(), true)
	if err != nil {
		return nil, err
	}
	overlay(summary, stored)
	return summary, nil
}

// =============================================================================
// PIPELINE
// =============================================================================

// build resolves every input of a summary and runs the calculator for kind.
// tolerant=true turns a missing lesson/scope into nil fields.
func (e *Engine) build(ctx context.Context, kind academy.ReportKind, studentID academy.StudentID, scopeRef string, tolerant bool) (Summary, error) {
	student, err := e.Directory.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.ParentID == "" {
		return nil, academy.NotFound("parent", "(none) for student "+string(student.ID))
	}
	parent, err := e.Directory.GetParent(ctx, student.ParentID)
	if err != nil {
		return nil, err
	}

	switch kind {
	case academy.ReportLesson:
		return e.buildLesson(ctx, *student, *parent, academy.LessonID(scopeRef), tolerant)
	case academy.ReportMonth, academy.ReportCourse:
		return e.buildScoped(ctx, kind, *student, *parent, academy.ScopeID(scopeRef), tolerant)
	}
	return nil, &academy.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown report kind %q", kind)}
}

func (e *Engine) buildLesson(ctx context.Context, student academy.Student, parent academy.Parent, lessonID academy.LessonID, tolerant bool) (Summary, error) {
	lesson, err := e.Directory.GetLesson(ctx, lessonID)
	if err != nil {
		if !(tolerant && academy.IsNotFound(err)) {
			return nil, err
		}
		e.log.Warn("report references deleted lesson",
			zap.String("student_id", string(student.ID)),
			zap.String("lesson_id", string(lessonID)),
		)
		lesson = nil
	}

	records, err := e.Joiner.Join(ctx, student.ID, []academy.LessonID{lessonID})
	if err != nil {
		return nil, err
	}
	return SummarizeLesson(student, parent, lessonID, lesson, records), nil
}

func (e *Engine) buildScoped(ctx context.Context, kind academy.ReportKind, student academy.Student, parent academy.Parent, scopeID academy.ScopeID, tolerant bool) (Summary, error) {
	scope, err := e.Directory.GetGroupedLessons(ctx, scopeID)
	switch {
	case err == nil:
		if want := kind.ScopeKind(); scope.Kind != "" && scope.Kind != want {
			if !tolerant {
				return nil, &academy.KindMismatchError{ScopeID: scopeID, Expected: want, Actual: scope.Kind}
			}
			e.log.Warn("stored report kind no longer matches scope kind",
				zap.String("scope_id", string(scopeID)),
				zap.String("report_kind", string(kind)),
				zap.String("scope_kind", string(scope.Kind)),
			)
		}
	case tolerant && academy.IsNotFound(err):
		e.log.Warn("report references deleted scope",
			zap.String("student_id", string(student.ID)),
			zap.String("scope_id", string(scopeID)),
		)
		scope = nil
	default:
		return nil, err
	}

	// A deleted scope can still be resolved through back-references.
	target := academy.GroupedLessons{ID: scopeID}
	if scope != nil {
		target = *scope
	}
	lessonIDs, err := e.Resolver.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}

	records, err := e.Joiner.Join(ctx, student.ID, lessonIDs)
	if err != nil {
		return nil, err
	}

	e.log.Debug("scope joined",
		zap.String("scope_id", string(scopeID)),
		zap.Int("lessons", len(lessonIDs)),
		zap.Int("attendance", len(records)),
	)

	if kind == academy.ReportMonth {
		return SummarizeMonth(student, parent, scopeID, scope, records), nil
	}
	return SummarizeCourse(student, parent, scopeID, scope, records, e.Location), nil
}

func overlay(s Summary, stored academy.Report) {
	h := s.ReportHeader()
	h.ReportID = stored.ID
	h.Notes = stored.Notes
	h.CreatedBy = stored.CreatedBy
	h.CreatedAt = stored.CreatedAt
	h.UpdatedAt = stored.UpdatedAt
}
