/*
handlers_test.go - HTTP tests for report and scenario endpoints

Tests run the full chi router against an in-memory SQLite store:
- Report generation per kind, idempotence, rematerialization
- Error mapping (400 / 404)
- Scenario loading
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/academy-engine/report"
	"github.com/warp/academy-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(report.NewEngine(store), store, nil)
	return NewRouter(handler, nil)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func loadScenario(t *testing.T, router http.Handler, id string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// REPORT GENERATION
// =============================================================================

func TestGenerateMonthReport_OctoberScenario(t *testing.T) {
	// GIVEN: Oct-2024 with L1 (paid 20, Oct 3) and L2 (paid 30, Oct 17)
	// WHEN: Generating the month report
	// THEN: total_paid is 50 and attendance follows date order

	router := setupTestServer(t)
	loadScenario(t, router, "october-month")

	rec := do(t, router, http.MethodPost, "/api/students/student-1/reports/month", ScopeReportRequest{
		ScopeID: "Oct-2024", Notes: "Great month", RequestedBy: "tutor-7",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[ReportDTO](t, rec)
	assert.Equal(t, "month", got.Kind)
	assert.NotEmpty(t, got.ReportID)
	assert.Equal(t, "Omar Haddad", got.StudentName)
	assert.Equal(t, "Mona Haddad", got.ParentName)
	assert.Equal(t, "Great month", got.Notes)
	assert.Equal(t, "tutor-7", got.CreatedBy)
	assert.Nil(t, got.Lesson)
	assert.Nil(t, got.Course)

	require.NotNil(t, got.Month)
	assert.Equal(t, "October 2024", got.Month.MonthName)
	assert.True(t, got.Month.TotalPaid.Equal(dec("50")), got.Month.TotalPaid.String())
	require.Len(t, got.Month.Attendance, 2)
	assert.Equal(t, "L1", got.Month.Attendance[0].LessonID)
	assert.Equal(t, "L2", got.Month.Attendance[1].LessonID)
	assert.Equal(t, "cash", got.Month.Attendance[0].PaymentType)
	assert.Equal(t, 90.0, got.Month.Attendance[0].DurationMinutes)
	require.NotNil(t, got.Month.Attendance[0].BookletPrice)
	assert.True(t, got.Month.Attendance[0].BookletPrice.Equal(dec("5")))
}

func TestGenerateMonthReport_IsIdempotent(t *testing.T) {
	// GIVEN: A month report generated once
	// WHEN: Generating it again with new notes
	// THEN: One stored record, same id, second notes persisted

	router := setupTestServer(t)
	loadScenario(t, router, "october-month")

	first := decodeBody[ReportDTO](t, do(t, router, http.MethodPost, "/api/students/student-1/reports/month",
		ScopeReportRequest{ScopeID: "Oct-2024", Notes: "first"}))
	second := decodeBody[ReportDTO](t, do(t, router, http.MethodPost, "/api/students/student-1/reports/month",
		ScopeReportRequest{ScopeID: "Oct-2024", Notes: "second"}))

	assert.Equal(t, first.ReportID, second.ReportID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	rec := do(t, router, http.MethodGet, "/api/students/student-1/reports", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	records := decodeBody[[]ReportRecordDTO](t, rec)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Notes)
	assert.Equal(t, "Oct-2024", records[0].ScopeID)
	assert.Empty(t, records[0].LessonID)
}

func TestGenerateCourseReport_BucketsPerMonth(t *testing.T) {
	// GIVEN: Term-1 by back-reference: Jan 5 ($10), Jan 20 ($5), Feb 1 ($7)
	// WHEN: Generating the course report
	// THEN: Buckets [2024-01: 15, 2024-02: 7], total 22, Term-2 excluded

	router := setupTestServer(t)
	loadScenario(t, router, "course-term")

	rec := do(t, router, http.MethodPost, "/api/students/student-1/reports/course", ScopeReportRequest{ScopeID: "Term-1"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[ReportDTO](t, rec)
	require.NotNil(t, got.Course)
	assert.Equal(t, "Algebra, Term 1", got.Course.CourseName)
	assert.Len(t, got.Course.Attendance, 3)
	require.Len(t, got.Course.PaymentsPerMonth, 2)
	assert.Equal(t, 2024, got.Course.PaymentsPerMonth[0].Year)
	assert.Equal(t, 1, got.Course.PaymentsPerMonth[0].Month)
	assert.True(t, got.Course.PaymentsPerMonth[0].Total.Equal(dec("15")))
	assert.Equal(t, 2, got.Course.PaymentsPerMonth[1].Month)
	assert.True(t, got.Course.PaymentsPerMonth[1].Total.Equal(dec("7")))
	assert.True(t, got.Course.TotalPaid.Equal(dec("22")))
}

func TestGenerateLessonReport_NoAttendance(t *testing.T) {
	router := setupTestServer(t)
	loadScenario(t, router, "october-month")

	rec := do(t, router, http.MethodPost, "/api/students/student-1/reports/lesson", LessonReportRequest{LessonID: "L3"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[ReportDTO](t, rec)
	require.NotNil(t, got.Lesson)
	assert.Nil(t, got.Lesson.Attendance)
	assert.False(t, got.Lesson.IsBookletPurchased)
	assert.True(t, got.Lesson.AmountPaid.IsZero())
	require.NotNil(t, got.Lesson.Lesson)
	assert.Equal(t, "L3", got.Lesson.Lesson.ID)
}

func TestGenerateLessonReport_WithAttendance(t *testing.T) {
	router := setupTestServer(t)
	loadScenario(t, router, "october-month")

	rec := do(t, router, http.MethodPost, "/api/students/student-1/reports/lesson", LessonReportRequest{LessonID: "L1"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[ReportDTO](t, rec)
	require.NotNil(t, got.Lesson)
	require.NotNil(t, got.Lesson.Attendance)
	assert.True(t, got.Lesson.IsBookletPurchased)
	assert.True(t, got.Lesson.AmountPaid.Equal(dec("20")))
	assert.Equal(t, "passed", got.Lesson.Attendance.ExamStatus)
	require.NotNil(t, got.Lesson.Attendance.ExamScore)
	assert.Equal(t, 18.0, *got.Lesson.Attendance.ExamScore)
}

func TestGenerateMonthReport_KeepsAttendanceOfDeletedLesson(t *testing.T) {
	// GIVEN: Nov-2024 lists N1 and N2; N2 was deleted after being attended
	// WHEN: Generating the month report
	// THEN: Both records present, N2 without lesson start time

	router := setupTestServer(t)
	loadScenario(t, router, "missing-lesson")

	rec := do(t, router, http.MethodPost, "/api/students/student-1/reports/month", ScopeReportRequest{ScopeID: "Nov-2024"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[ReportDTO](t, rec)
	require.NotNil(t, got.Month)
	require.Len(t, got.Month.Attendance, 2)
	assert.NotNil(t, got.Month.Attendance[0].LessonStartTime)
	assert.Nil(t, got.Month.Attendance[1].LessonStartTime)
	assert.Equal(t, "free", got.Month.Attendance[1].PaymentType)
	assert.True(t, got.Month.TotalPaid.Equal(dec("15")))
}

// =============================================================================
// RETRIEVAL
// =============================================================================

func TestGetReport_Rematerializes(t *testing.T) {
	router := setupTestServer(t)
	loadScenario(t, router, "course-term")

	created := decodeBody[ReportDTO](t, do(t, router, http.MethodPost, "/api/students/student-1/reports/course",
		ScopeReportRequest{ScopeID: "Term-1", Notes: "n"}))

	rec := do(t, router, http.MethodGet, "/api/reports/"+created.ReportID, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[ReportDTO](t, rec)
	assert.Equal(t, created.ReportID, got.ReportID)
	assert.Equal(t, "course", got.Kind)
	assert.Equal(t, "n", got.Notes)
	require.NotNil(t, got.Course)
	assert.True(t, got.Course.TotalPaid.Equal(dec("22")))
}

func TestListStudentReports_EmptyIsArray(t *testing.T) {
	router := setupTestServer(t)

	rec := do(t, router, http.MethodGet, "/api/students/nobody/reports", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestErrors(t *testing.T) {
	router := setupTestServer(t)
	loadScenario(t, router, "october-month")

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantDetail string
	}{
		{
			name:       "kind mismatch",
			method:     http.MethodPost,
			path:       "/api/students/student-1/reports/course",
			body:       ScopeReportRequest{ScopeID: "Oct-2024"},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Oct-2024",
		},
		{
			name:       "missing scope id",
			method:     http.MethodPost,
			path:       "/api/students/student-1/reports/month",
			body:       map[string]string{"notes": "x"},
			wantStatus: http.StatusBadRequest,
			wantDetail: "scope_id",
		},
		{
			name:       "missing lesson id",
			method:     http.MethodPost,
			path:       "/api/students/student-1/reports/lesson",
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
			wantDetail: "lesson_id",
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			path:       "/api/students/student-1/reports/month",
			body:       `{"scope_id":`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "invalid JSON",
		},
		{
			name:       "unknown student",
			method:     http.MethodPost,
			path:       "/api/students/ghost/reports/month",
			body:       ScopeReportRequest{ScopeID: "Oct-2024"},
			wantStatus: http.StatusNotFound,
			wantDetail: "ghost",
		},
		{
			name:       "unknown scope",
			method:     http.MethodPost,
			path:       "/api/students/student-1/reports/month",
			body:       ScopeReportRequest{ScopeID: "Dec-1999"},
			wantStatus: http.StatusNotFound,
			wantDetail: "Dec-1999",
		},
		{
			name:       "unknown report",
			method:     http.MethodGet,
			path:       "/api/reports/does-not-exist",
			wantStatus: http.StatusNotFound,
			wantDetail: "does-not-exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			resp := decodeBody[ErrorResponse](t, rec)
			assert.NotEmpty(t, resp.Error)
			assert.Contains(t, resp.Details, tt.wantDetail)
		})
	}

	// Nothing was persisted by the failed requests.
	records := decodeBody[[]ReportRecordDTO](t, do(t, router, http.MethodGet, "/api/students/student-1/reports", nil))
	assert.Empty(t, records)
}

func TestHealth(t *testing.T) {
	router := setupTestServer(t)

	rec := do(t, router, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
