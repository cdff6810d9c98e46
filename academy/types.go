/*
Package academy provides the domain model consumed by the report engine.

PURPOSE:
  Holds the read-only records an academic center produces (students, parents,
  lessons, grouped lessons, attendance) and the one record the report engine
  owns (Report). Everything else in the repository depends on these types;
  this package depends on nothing but decimal.

KEY CONCEPTS IN THIS FILE (types.go):
  - Typed IDs: StudentID, ParentID, LessonID, ScopeID, ReportID
  - ScopeKind: "month" or "course" tag on a GroupedLessons
  - Attendance: the (student, lesson) fact record with payment data
  - Report / ReportKind / ReportKey: the engine's persisted artifact

DESIGN PRINCIPLES:
  1. Precision: money is decimal.Decimal, never float64
  2. Type Safety: distinct ID types prevent passing a lesson id as a scope id
  3. Optional fields are pointers (nil = not recorded)

SEE ALSO:
  - store.go: Read/write interfaces over these types
  - errors.go: NotFound / Validation errors
  - report/: The aggregation engine
*/
package academy

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type StudentID string
type ParentID string
type LessonID string
type ScopeID string
type AttendanceID string
type ReportID string

// =============================================================================
// PEOPLE
// =============================================================================

// Student is an enrolled student. Every student has exactly one owning parent.
type Student struct {
	ID       StudentID
	Name     string
	ParentID ParentID
}

// Parent owns one or more students.
type Parent struct {
	ID       ParentID
	Name     string
	Children []StudentID
}

// =============================================================================
// LESSONS AND SCOPES
// =============================================================================

// Lesson is a single scheduled session.
type Lesson struct {
	ID        LessonID
	StartTime time.Time

	// BookletPrice is the price of supplementary material, if any is sold.
	BookletPrice *decimal.Decimal

	// ScopeID is the GroupedLessons this lesson points back to, if any.
	// Used for implicit membership when the scope has no explicit lesson list.
	ScopeID ScopeID
}

// ScopeKind tags a GroupedLessons as a calendar month or a multi-month course.
type ScopeKind string

const (
	ScopeMonth  ScopeKind = "month"
	ScopeCourse ScopeKind = "course"
)

func (k ScopeKind) Valid() bool {
	return k == ScopeMonth || k == ScopeCourse
}

// GroupedLessons is a "scope": a named set of lessons.
//
// Membership is EITHER the explicit ordered LessonIDs list OR, when that list
// is empty, every Lesson whose ScopeID equals this scope's ID.
type GroupedLessons struct {
	ID        ScopeID
	Name      string
	Kind      ScopeKind // may be empty on legacy records
	LessonIDs []LessonID
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type ExamStatus string

const (
	ExamNone    ExamStatus = ""
	ExamPassed  ExamStatus = "passed"
	ExamFailed  ExamStatus = "failed"
	ExamAbsent  ExamStatus = "absent"
	ExamPending ExamStatus = "pending"
)

type PaymentType string

const (
	PaymentCash     PaymentType = "cash"
	PaymentCard     PaymentType = "card"
	PaymentTransfer PaymentType = "transfer"
	PaymentWallet   PaymentType = "wallet"
	PaymentFree     PaymentType = "free"
)

// Attendance is the fact record for one student at one lesson.
// At most one exists per (StudentID, LessonID).
type Attendance struct {
	ID        AttendanceID
	StudentID StudentID
	LessonID  LessonID

	// AttendedAt is when the student actually showed up (and paid).
	AttendedAt time.Time
	LeftAt     *time.Time
	Duration   time.Duration

	ExamScore    *float64
	ExamMaxScore *float64
	ExamStatus   ExamStatus

	IsBookletPurchased bool
	PaymentType        PaymentType

	// AmountPaid already includes any booklet charge.
	AmountPaid decimal.Decimal
}

// =============================================================================
// REPORT - The only record the engine writes
// =============================================================================

// ReportKind discriminates which summary algorithm a report uses.
type ReportKind string

const (
	ReportLesson ReportKind = "lesson"
	ReportMonth  ReportKind = "month"
	ReportCourse ReportKind = "course"
)

func (k ReportKind) Valid() bool {
	switch k {
	case ReportLesson, ReportMonth, ReportCourse:
		return true
	}
	return false
}

// ScopeKind returns the GroupedLessons kind a report of this kind aggregates over.
// Lesson reports have no scope kind.
func (k ReportKind) ScopeKind() ScopeKind {
	switch k {
	case ReportMonth:
		return ScopeMonth
	case ReportCourse:
		return ScopeCourse
	}
	return ""
}

// ReportKey is the identity of a report. At most one Report exists per key.
// ScopeRef is a LessonID for lesson reports and a ScopeID otherwise.
type ReportKey struct {
	StudentID StudentID
	Kind      ReportKind
	ScopeRef  string
}

// ReportFields are the replaceable parts of a report.
type ReportFields struct {
	Notes     string
	CreatedBy string
}

// Report is the persisted artifact. It never stores a computed summary.
type Report struct {
	ID        ReportID
	StudentID StudentID
	Kind      ReportKind
	LessonID  LessonID // kind=lesson
	ScopeID   ScopeID  // kind=month|course
	Notes     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the identity tuple of the report.
func (r Report) Key() ReportKey {
	return ReportKey{StudentID: r.StudentID, Kind: r.Kind, ScopeRef: r.ScopeRef()}
}

// ScopeRef returns the lesson or scope id, according to kind.
func (r Report) ScopeRef() string {
	if r.Kind == ReportLesson {
		return string(r.LessonID)
	}
	return string(r.ScopeID)
}

// NewReportFromKey builds an unsaved report for a key. Stores use it so the
// lesson/scope split lives in one place.
func NewReportFromKey(id ReportID, key ReportKey, fields ReportFields, now time.Time) Report {
	r := Report{
		ID:        id,
		StudentID: key.StudentID,
		Kind:      key.Kind,
		Notes:     fields.Notes,
		CreatedBy: fields.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if key.Kind == ReportLesson {
		r.LessonID = LessonID(key.ScopeRef)
	} else {
		r.ScopeID = ScopeID(key.ScopeRef)
	}
	return r
}
