package report_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/academy-engine/academy"
	"github.com/warp/academy-engine/academy/store"
	"github.com/warp/academy-engine/report"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// octoberStore: scope "Oct-2024" (month, [L1, L2]), S attended both.
func octoberStore(t *testing.T) *store.Memory {
	t.Helper()
	ctx := context.Background()
	m := newTestStore(t)
	saveLesson(t, m, "L1", day(2024, 10, 3), "")
	saveLesson(t, m, "L2", day(2024, 10, 17), "")
	require.NoError(t, m.SaveGroupedLessons(ctx, academy.GroupedLessons{
		ID:        "Oct-2024",
		Name:      "October 2024",
		Kind:      academy.ScopeMonth,
		LessonIDs: []academy.LessonID{"L1", "L2"},
	}))
	attend(t, m, "S", "L2", day(2024, 10, 17), 30)
	attend(t, m, "S", "L1", day(2024, 10, 3), 20)
	return m
}

// =============================================================================
// GENERATION TESTS
// =============================================================================

func TestEngine_MonthScenario(t *testing.T) {
	// GIVEN: Oct-2024 with payments 20 (Oct 3) and 30 (Oct 17)
	// WHEN: Generating the month report
	// THEN: totalPaid = 50, two entries in date order

	engine := report.NewEngine(octoberStore(t))

	s, err := engine.GenerateMonthReport(context.Background(), "S", "Oct-2024", "good month", "tutor-1")

	require.NoError(t, err)
	assert.True(t, s.TotalPaid.Equal(money(50)))
	require.Len(t, s.Attendance, 2)
	assert.Equal(t, academy.LessonID("L1"), s.Attendance[0].LessonID)
	assert.Equal(t, academy.LessonID("L2"), s.Attendance[1].LessonID)
	assert.Equal(t, "October 2024", s.MonthName)
	assert.Equal(t, "Student S", s.StudentName)
	assert.Equal(t, "Parent P", s.ParentName)
	assert.NotEmpty(t, s.ReportID)
	assert.Equal(t, "good month", s.Notes)
	assert.Equal(t, "tutor-1", s.CreatedBy)
}

func TestEngine_GenerateIsIdempotent(t *testing.T) {
	// GIVEN: A month report already generated
	// WHEN: Generating again for the same (student, scope) with new notes
	// THEN: Still one stored report, same id, latest notes

	m := octoberStore(t)
	engine := report.NewEngine(m)
	ctx := context.Background()

	first, err := engine.GenerateMonthReport(ctx, "S", "Oct-2024", "first", "tutor-1")
	require.NoError(t, err)
	second, err := engine.GenerateMonthReport(ctx, "S", "Oct-2024", "second", "tutor-2")
	require.NoError(t, err)

	assert.Equal(t, first.ReportID, second.ReportID)

	reports, err := engine.GetStudentReports(ctx, "S")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "second", reports[0].Notes)
	assert.Equal(t, "tutor-2", reports[0].CreatedBy)
}

func TestEngine_DifferentKindsAreDifferentReports(t *testing.T) {
	m := octoberStore(t)
	engine := report.NewEngine(m)
	ctx := context.Background()

	_, err := engine.GenerateMonthReport(ctx, "S", "Oct-2024", "", "")
	require.NoError(t, err)
	_, err = engine.GenerateLessonReport(ctx, "S", "L1", "", "")
	require.NoError(t, err)

	reports, err := engine.GetStudentReports(ctx, "S")
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestEngine_ConcurrentGenerateCreatesOneReport(t *testing.T) {
	// GIVEN: Many concurrent requests for the same tuple
	// THEN: Exactly one report exists afterwards

	m := octoberStore(t)
	engine := report.NewEngine(m)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]academy.ReportID, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := engine.GenerateMonthReport(ctx, "S", "Oct-2024", "n", "t")
			if assert.NoError(t, err) {
				ids[i] = s.ReportID
			}
		}(i)
	}
	wg.Wait()

	reports, err := engine.GetStudentReports(ctx, "S")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	for _, id := range ids {
		assert.Equal(t, reports[0].ID, id)
	}
}

func TestEngine_LessonReportWithoutAttendance(t *testing.T) {
	m := newTestStore(t)
	saveLesson(t, m, "L1", day(2024, 5, 1), "")
	engine := report.NewEngine(m)

	s, err := engine.GenerateLessonReport(context.Background(), "S", "L1", "", "")

	require.NoError(t, err)
	assert.Nil(t, s.Attendance)
	assert.False(t, s.IsBookletPurchased)
	assert.True(t, s.AmountPaid.IsZero())
	require.NotNil(t, s.Lesson)
}

func TestEngine_LessonReportWithAttendance(t *testing.T) {
	m := newTestStore(t)
	saveLesson(t, m, "L1", day(2024, 5, 1), "")
	score, maxScore := 18.0, 20.0
	require.NoError(t, m.SaveAttendance(context.Background(), academy.Attendance{
		StudentID:          "S",
		LessonID:           "L1",
		AttendedAt:         day(2024, 5, 1),
		ExamScore:          &score,
		ExamMaxScore:       &maxScore,
		ExamStatus:         academy.ExamPassed,
		IsBookletPurchased: true,
		AmountPaid:         money(12),
	}))
	engine := report.NewEngine(m)

	s, err := engine.GenerateLessonReport(context.Background(), "S", "L1", "", "")

	require.NoError(t, err)
	require.NotNil(t, s.Attendance)
	assert.True(t, s.IsBookletPurchased)
	assert.True(t, s.AmountPaid.Equal(money(12)))
	assert.Equal(t, academy.ExamPassed, s.Attendance.ExamStatus)
	require.NotNil(t, s.Attendance.ExamScore)
	assert.Equal(t, 18.0, *s.Attendance.ExamScore)
}

func TestEngine_CourseGroupsByMonth(t *testing.T) {
	// GIVEN: Course with implicit membership, attended Jan 5 ($10), Jan 20 ($5), Feb 1 ($7)
	// THEN: paymentsPerMonth = [2024-01: 15, 2024-02: 7], totalPaid = 22

	m := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, m.SaveGroupedLessons(ctx, academy.GroupedLessons{ID: "course-1", Name: "Algebra", Kind: academy.ScopeCourse}))
	saveLesson(t, m, "c1", day(2024, 1, 5), "course-1")
	saveLesson(t, m, "c2", day(2024, 1, 20), "course-1")
	saveLesson(t, m, "c3", day(2024, 2, 1), "course-1")
	attend(t, m, "S", "c3", day(2024, 2, 1), 7)
	attend(t, m, "S", "c1", day(2024, 1, 5), 10)
	attend(t, m, "S", "c2", day(2024, 1, 20), 5)

	s, err := report.NewEngine(m).GenerateCourseReport(ctx, "S", "course-1", "", "")

	require.NoError(t, err)
	assert.Equal(t, "Algebra", s.CourseName)
	require.Len(t, s.PaymentsPerMonth, 2)
	assert.Equal(t, time.January, s.PaymentsPerMonth[0].Month)
	assert.True(t, s.PaymentsPerMonth[0].Total.Equal(money(15)))
	assert.Equal(t, time.February, s.PaymentsPerMonth[1].Month)
	assert.True(t, s.PaymentsPerMonth[1].Total.Equal(money(7)))
	assert.True(t, s.TotalPaid.Equal(money(22)))
	assert.Len(t, s.Attendance, 3)
}

func TestEngine_EmptyScopeYieldsZeroTotals(t *testing.T) {
	m := newTestStore(t)
	require.NoError(t, m.SaveGroupedLessons(context.Background(), academy.GroupedLessons{ID: "empty", Kind: academy.ScopeCourse}))

	s, err := report.NewEngine(m).GenerateCourseReport(context.Background(), "S", "empty", "", "")

	require.NoError(t, err)
	assert.Empty(t, s.Attendance)
	assert.Empty(t, s.PaymentsPerMonth)
	assert.True(t, s.TotalPaid.IsZero())
}

// =============================================================================
// VALIDATION / NOT FOUND TESTS
// =============================================================================

func TestEngine_KindMismatchRejected(t *testing.T) {
	// GIVEN: Oct-2024 is tagged month
	// WHEN: Requesting a course report on it
	// THEN: ValidationError, and nothing is stored

	m := octoberStore(t)
	engine := report.NewEngine(m)
	ctx := context.Background()

	_, err := engine.GenerateCourseReport(ctx, "S", "Oct-2024", "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, academy.ErrValidation)
	assert.ErrorIs(t, err, academy.ErrKindMismatch)
	var mismatch *academy.KindMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, academy.ScopeCourse, mismatch.Expected)
	assert.Equal(t, academy.ScopeMonth, mismatch.Actual)

	reports, err := engine.GetStudentReports(ctx, "S")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestEngine_UntaggedScopeAccepted(t *testing.T) {
	m := newTestStore(t)
	require.NoError(t, m.SaveGroupedLessons(context.Background(), academy.GroupedLessons{ID: "legacy"}))

	_, err := report.NewEngine(m).GenerateMonthReport(context.Background(), "S", "legacy", "", "")

	assert.NoError(t, err)
}

func TestEngine_MissingIdentifiersRejected(t *testing.T) {
	engine := report.NewEngine(newTestStore(t))
	ctx := context.Background()

	_, err := engine.GenerateMonthReport(ctx, "", "Oct-2024", "", "")
	assert.ErrorIs(t, err, academy.ErrValidation)

	_, err = engine.GenerateLessonReport(ctx, "S", "", "", "")
	var verr *academy.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lesson_id", verr.Field)

	_, err = engine.Generate(ctx, report.GenerateRequest{Kind: "weekly", StudentID: "S", ScopeRef: "x"})
	assert.ErrorIs(t, err, academy.ErrValidation)

	_, err = engine.GetReportByID(ctx, "")
	assert.ErrorIs(t, err, academy.ErrValidation)
}

func TestEngine_NotFoundNamesEntity(t *testing.T) {
	m := octoberStore(t)
	engine := report.NewEngine(m)
	ctx := context.Background()

	_, err := engine.GenerateMonthReport(ctx, "nobody", "Oct-2024", "", "")
	var nf *academy.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "student", nf.Entity)

	_, err = engine.GenerateMonthReport(ctx, "S", "Nov-2024", "", "")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "scope", nf.Entity)

	_, err = engine.GenerateLessonReport(ctx, "S", "L9", "", "")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "lesson", nf.Entity)

	_, err = engine.GetReportByID(ctx, "no-such-report")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "report", nf.Entity)

	reports, err := engine.GetStudentReports(ctx, "S")
	require.NoError(t, err)
	assert.Empty(t, reports, "failed generations must not write")
}

func TestEngine_MissingParentIsNotFound(t *testing.T) {
	m := octoberStore(t)
	require.NoError(t, m.SaveStudent(context.Background(), academy.Student{ID: "orphan", Name: "Orphan"}))

	_, err := report.NewEngine(m).GenerateMonthReport(context.Background(), "orphan", "Oct-2024", "", "")

	var nf *academy.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "parent", nf.Entity)
}

// =============================================================================
// REMATERIALIZATION TESTS
// =============================================================================

func TestEngine_GetReportByIDRecomputes(t *testing.T) {
	// GIVEN: A month report, then a late attendance correction
	// WHEN: Reading the report back
	// THEN: The summary reflects current data, not the data at generation time

	m := octoberStore(t)
	engine := report.NewEngine(m)
	ctx := context.Background()

	generated, err := engine.GenerateMonthReport(ctx, "S", "Oct-2024", "notes", "")
	require.NoError(t, err)

	attend(t, m, "S", "L2", day(2024, 10, 17), 35)

	s, err := engine.GetReportByID(ctx, generated.ReportID)
	require.NoError(t, err)
	month, ok := s.(*report.MonthSummary)
	require.True(t, ok)
	assert.True(t, month.TotalPaid.Equal(money(55)))
	assert.Equal(t, "notes", month.Notes)
	assert.Equal(t, generated.ReportID, month.ReportID)
}

func TestEngine_RematerializeDeletedLesson(t *testing.T) {
	m := newTestStore(t)
	saveLesson(t, m, "L1", day(2024, 5, 1), "")
	attend(t, m, "S", "L1", day(2024, 5, 1), 9)
	engine := report.NewEngine(m)
	ctx := context.Background()

	generated, err := engine.GenerateLessonReport(ctx, "S", "L1", "", "")
	require.NoError(t, err)
	require.NoError(t, m.DeleteLesson(ctx, "L1"))

	s, err := engine.GetReportByID(ctx, generated.ReportID)

	require.NoError(t, err)
	lesson := s.(*report.LessonSummary)
	assert.Nil(t, lesson.Lesson)
	require.NotNil(t, lesson.Attendance)
	assert.True(t, lesson.AmountPaid.Equal(money(9)))
}

func TestEngine_RematerializeDeletedScope(t *testing.T) {
	m := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, m.SaveGroupedLessons(ctx, academy.GroupedLessons{ID: "course-1", Name: "Algebra", Kind: academy.ScopeCourse}))
	saveLesson(t, m, "c1", day(2024, 1, 5), "course-1")
	attend(t, m, "S", "c1", day(2024, 1, 5), 10)
	engine := report.NewEngine(m)

	generated, err := engine.GenerateCourseReport(ctx, "S", "course-1", "", "")
	require.NoError(t, err)
	require.NoError(t, m.DeleteGroupedLessons(ctx, "course-1"))

	s, err := engine.GetReportByID(ctx, generated.ReportID)

	require.NoError(t, err)
	course := s.(*report.CourseSummary)
	assert.Empty(t, course.CourseName)
	assert.True(t, course.TotalPaid.Equal(money(10)), "back-references still resolve")
}
