/*
summary.go - Kind-specific summary calculators

PURPOSE:
  Pure functions from (student, parent, scope, joined attendance) to the
  summary a caller sees. No I/O here; the Engine gathers the inputs.

SUMMARY KINDS:
  LessonSummary: one lesson, at most one attendance record, no aggregation
  MonthSummary:  every attendance record in the scope + totalPaid
  CourseSummary: month fields + payments bucketed per calendar month

TOTALS:
  totalPaid = sum of AmountPaid. AmountPaid already includes booklet
  charges, so BookletPrice is reported but never added.

COURSE BUCKETING:
  Bucket key = (year, month) of AttendedAt in the engine's location.
  Buckets are emitted in first-encounter order of the date-sorted input,
  which is chronological as long as the Joiner's sort is preserved.

SEE ALSO:
  - joiner.go: Produces the sorted input
  - engine.go: Overlays report identity onto these summaries
*/
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/academy-engine/academy"
)

// =============================================================================
// SUMMARY VARIANTS
// =============================================================================

// Summary is one of *LessonSummary, *MonthSummary, *CourseSummary.
type Summary interface {
	Kind() academy.ReportKind
	ReportHeader() *Header
}

// Header carries who the report is about and, once persisted, which report
// record it belongs to.
type Header struct {
	ReportID    academy.ReportID
	StudentID   academy.StudentID
	StudentName string
	ParentName  string
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AttendanceSnapshot is the per-record projection shared by every kind.
type AttendanceSnapshot struct {
	Date               time.Time
	LeaveTime          *time.Time
	Duration           time.Duration
	ExamScore          *float64
	ExamMaxScore       *float64
	ExamStatus         academy.ExamStatus
	IsBookletPurchased bool
	AmountPaid         decimal.Decimal
}

// AttendanceEntry is a row of a month or course summary.
type AttendanceEntry struct {
	AttendanceSnapshot

	LessonID        academy.LessonID
	LessonStartTime *time.Time
	BookletPrice    *decimal.Decimal
	PaymentType     academy.PaymentType
}

type LessonSummary struct {
	Header

	LessonID academy.LessonID
	Lesson   *academy.Lesson // nil if the lesson was deleted

	Attendance         *AttendanceSnapshot // nil if the student didn't attend
	IsBookletPurchased bool
	AmountPaid         decimal.Decimal
}

type MonthSummary struct {
	Header

	ScopeID    academy.ScopeID
	MonthName  string
	Attendance []AttendanceEntry
	TotalPaid  decimal.Decimal
}

// MonthlyPayment is one calendar-month bucket of a course.
type MonthlyPayment struct {
	Year  int
	Month time.Month
	Total decimal.Decimal
}

type CourseSummary struct {
	Header

	ScopeID          academy.ScopeID
	CourseName       string
	Attendance       []AttendanceEntry
	PaymentsPerMonth []MonthlyPayment
	TotalPaid        decimal.Decimal
}

func (s *LessonSummary) Kind() academy.ReportKind { return academy.ReportLesson }
func (s *MonthSummary) Kind() academy.ReportKind  { return academy.ReportMonth }
func (s *CourseSummary) Kind() academy.ReportKind { return academy.ReportCourse }

func (s *LessonSummary) ReportHeader() *Header { return &s.Header }
func (s *MonthSummary) ReportHeader() *Header  { return &s.Header }
func (s *CourseSummary) ReportHeader() *Header { return &s.Header }

// =============================================================================
// CALCULATORS
// =============================================================================

// SummarizeLesson projects the single attendance record of a lesson, if any.
// records is expected to hold at most one entry; extras are ignored.
func SummarizeLesson(student academy.Student, parent academy.Parent, lessonID academy.LessonID, lesson *academy.Lesson, records []JoinedAttendance) *LessonSummary {
	s := &LessonSummary{
		Header:     newHeader(student, parent),
		LessonID:   lessonID,
		Lesson:     lesson,
		AmountPaid: decimal.Zero,
	}
	if len(records) == 0 {
		return s
	}

	snap := snapshot(records[0].Attendance)
	s.Attendance = &snap
	s.IsBookletPurchased = snap.IsBookletPurchased
	s.AmountPaid = snap.AmountPaid
	return s
}

// SummarizeMonth lists every record and totals the payments.
// scope may be nil when the scope was deleted after the report was made.
func SummarizeMonth(student academy.Student, parent academy.Parent, scopeID academy.ScopeID, scope *academy.GroupedLessons, records []JoinedAttendance) *MonthSummary {
	s := &MonthSummary{
		Header:     newHeader(student, parent),
		ScopeID:    scopeID,
		Attendance: entries(records),
		TotalPaid:  TotalPaid(records),
	}
	if scope != nil {
		s.MonthName = scope.Name
	}
	return s
}

// SummarizeCourse is SummarizeMonth plus a per-calendar-month breakdown.
// Buckets use AttendedAt converted to loc (UTC if nil).
func SummarizeCourse(student academy.Student, parent academy.Parent, scopeID academy.ScopeID, scope *academy.GroupedLessons, records []JoinedAttendance, loc *time.Location) *CourseSummary {
	buckets := PaymentsPerMonth(records, loc)

	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Total)
	}

	s := &CourseSummary{
		Header:           newHeader(student, parent),
		ScopeID:          scopeID,
		Attendance:       entries(records),
		PaymentsPerMonth: buckets,
		TotalPaid:        total,
	}
	if scope != nil {
		s.CourseName = scope.Name
	}
	return s
}

// TotalPaid sums AmountPaid over records.
func TotalPaid(records []JoinedAttendance) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.AmountPaid)
	}
	return total
}

// PaymentsPerMonth buckets AmountPaid by the calendar month of AttendedAt.
// Buckets appear in the order their month is first seen in records.
func PaymentsPerMonth(records []JoinedAttendance, loc *time.Location) []MonthlyPayment {
	if loc == nil {
		loc = time.UTC
	}

	type monthKey struct {
		year  int
		month time.Month
	}

	buckets := []MonthlyPayment{}
	index := make(map[monthKey]int)
	for _, r := range records {
		at := r.AttendedAt.In(loc)
		k := monthKey{year: at.Year(), month: at.Month()}

		i, ok := index[k]
		if !ok {
			buckets = append(buckets, MonthlyPayment{Year: k.year, Month: k.month, Total: decimal.Zero})
			i = len(buckets) - 1
			index[k] = i
		}
		buckets[i].Total = buckets[i].Total.Add(r.AmountPaid)
	}
	return buckets
}

// =============================================================================
// HELPERS
// =============================================================================

func newHeader(student academy.Student, parent academy.Parent) Header {
	return Header{
		StudentID:   student.ID,
		StudentName: student.Name,
		ParentName:  parent.Name,
	}
}

func snapshot(a academy.Attendance) AttendanceSnapshot {
	return AttendanceSnapshot{
		Date:               a.AttendedAt,
		LeaveTime:          a.LeftAt,
		Duration:           a.Duration,
		ExamScore:          a.ExamScore,
		ExamMaxScore:       a.ExamMaxScore,
		ExamStatus:         a.ExamStatus,
		IsBookletPurchased: a.IsBookletPurchased,
		AmountPaid:         a.AmountPaid,
	}
}

func entries(records []JoinedAttendance) []AttendanceEntry {
	out := make([]AttendanceEntry, len(records))
	for i, r := range records {
		out[i] = AttendanceEntry{
			AttendanceSnapshot: snapshot(r.Attendance),
			LessonID:           r.LessonID,
			LessonStartTime:    r.LessonStartTime,
			BookletPrice:       r.BookletPrice,
			PaymentType:        r.PaymentType,
		}
	}
	return out
}
