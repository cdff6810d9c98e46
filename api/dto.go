/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. The report package has
  no JSON tags; these types are the external contract and are built from
  report summaries by the to*DTO helpers below.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Requests:
    LessonReportRequest, ScopeReportRequest, LoadScenarioRequest

  Summaries:
    ReportDTO (common header + exactly one of lesson/month/course fields)
    AttendanceDTO, AttendanceEntryDTO, MonthlyPaymentDTO, LessonDTO

  Records:
    ReportRecordDTO (stored identity, no summary)

  Scenarios:
    ScenarioDTO

MONEY:
  decimal.Decimal marshals as a JSON string ("50", "12.5") so no precision
  is lost on the wire.

VALIDATION:
  Request types carry go-playground/validator tags; handlers call
  Handler.decode which decodes and validates in one step.

SEE ALSO:
  - handlers.go: Uses these types
  - report/summary.go: Source summary types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/academy-engine/academy"
	"github.com/warp/academy-engine/report"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LessonReportRequest is the body of POST /students/{id}/reports/lesson.
type LessonReportRequest struct {
	LessonID    string `json:"lesson_id" validate:"required,max=128"`
	Notes       string `json:"notes" validate:"max=4000"`
	RequestedBy string `json:"requested_by" validate:"max=128"`
}

// ScopeReportRequest is the body of the month and course report endpoints.
type ScopeReportRequest struct {
	ScopeID     string `json:"scope_id" validate:"required,max=128"`
	Notes       string `json:"notes" validate:"max=4000"`
	RequestedBy string `json:"requested_by" validate:"max=128"`
}

// LoadScenarioRequest selects a demo scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// ReportDTO is a rematerialized report. Kind decides which block is set.
type ReportDTO struct {
	ReportID    string `json:"report_id"`
	Kind        string `json:"kind"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	ParentName  string `json:"parent_name"`
	Notes       string `json:"notes"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`

	Lesson *LessonReportDTO `json:"lesson,omitempty"`
	Month  *MonthReportDTO  `json:"month,omitempty"`
	Course *CourseReportDTO `json:"course,omitempty"`
}

type LessonReportDTO struct {
	LessonID           string          `json:"lesson_id"`
	Lesson             *LessonDTO      `json:"lesson"`
	Attendance         *AttendanceDTO  `json:"attendance"`
	IsBookletPurchased bool            `json:"is_booklet_purchased"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
}

type MonthReportDTO struct {
	ScopeID    string               `json:"scope_id"`
	MonthName  string               `json:"month_name"`
	Attendance []AttendanceEntryDTO `json:"attendance"`
	TotalPaid  decimal.Decimal      `json:"total_paid"`
}

type CourseReportDTO struct {
	ScopeID          string               `json:"scope_id"`
	CourseName       string               `json:"course_name"`
	Attendance       []AttendanceEntryDTO `json:"attendance"`
	PaymentsPerMonth []MonthlyPaymentDTO  `json:"payments_per_month"`
	TotalPaid        decimal.Decimal      `json:"total_paid"`
}

type LessonDTO struct {
	ID           string           `json:"id"`
	StartTime    string           `json:"start_time"`
	BookletPrice *decimal.Decimal `json:"booklet_price"`
}

// AttendanceDTO is the per-record snapshot shared by every kind.
type AttendanceDTO struct {
	Date               string          `json:"date"`
	LeaveTime          *string         `json:"leave_time"`
	DurationMinutes    float64         `json:"duration_minutes"`
	ExamScore          *float64        `json:"exam_score"`
	ExamMaxScore       *float64        `json:"exam_max_score"`
	ExamStatus         string          `json:"exam_status"`
	IsBookletPurchased bool            `json:"is_booklet_purchased"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
}

type AttendanceEntryDTO struct {
	AttendanceDTO
	LessonID        string           `json:"lesson_id"`
	LessonStartTime *string          `json:"lesson_start_time"`
	BookletPrice    *decimal.Decimal `json:"booklet_price"`
	PaymentType     string           `json:"payment_type"`
}

type MonthlyPaymentDTO struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// ReportRecordDTO is a stored report identity record.
type ReportRecordDTO struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	Kind      string `json:"kind"`
	LessonID  string `json:"lesson_id,omitempty"`
	ScopeID   string `json:"scope_id,omitempty"`
	Notes     string `json:"notes"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toReportDTO(s report.Summary) ReportDTO {
	h := s.ReportHeader()
	dto := ReportDTO{
		ReportID:    string(h.ReportID),
		Kind:        string(s.Kind()),
		StudentID:   string(h.StudentID),
		StudentName: h.StudentName,
		ParentName:  h.ParentName,
		Notes:       h.Notes,
		CreatedBy:   h.CreatedBy,
		CreatedAt:   formatTime(h.CreatedAt),
		UpdatedAt:   formatTime(h.UpdatedAt),
	}

	switch v := s.(type) {
	case *report.LessonSummary:
		dto.Lesson = &LessonReportDTO{
			LessonID:           string(v.LessonID),
			IsBookletPurchased: v.IsBookletPurchased,
			AmountPaid:         v.AmountPaid,
		}
		if v.Lesson != nil {
			dto.Lesson.Lesson = &LessonDTO{
				ID:           string(v.Lesson.ID),
				StartTime:    formatTime(v.Lesson.StartTime),
				BookletPrice: v.Lesson.BookletPrice,
			}
		}
		if v.Attendance != nil {
			a := toAttendanceDTO(*v.Attendance)
			dto.Lesson.Attendance = &a
		}
	case *report.MonthSummary:
		dto.Month = &MonthReportDTO{
			ScopeID:    string(v.ScopeID),
			MonthName:  v.MonthName,
			Attendance: toEntryDTOs(v.Attendance),
			TotalPaid:  v.TotalPaid,
		}
	case *report.CourseSummary:
		buckets := make([]MonthlyPaymentDTO, len(v.PaymentsPerMonth))
		for i, b := range v.PaymentsPerMonth {
			buckets[i] = MonthlyPaymentDTO{Year: b.Year, Month: int(b.Month), Total: b.Total}
		}
		dto.Course = &CourseReportDTO{
			ScopeID:          string(v.ScopeID),
			CourseName:       v.CourseName,
			Attendance:       toEntryDTOs(v.Attendance),
			PaymentsPerMonth: buckets,
			TotalPaid:        v.TotalPaid,
		}
	}
	return dto
}

func toAttendanceDTO(a report.AttendanceSnapshot) AttendanceDTO {
	return AttendanceDTO{
		Date:               formatTime(a.Date),
		LeaveTime:          formatTimePtr(a.LeaveTime),
		DurationMinutes:    a.Duration.Minutes(),
		ExamScore:          a.ExamScore,
		ExamMaxScore:       a.ExamMaxScore,
		ExamStatus:         string(a.ExamStatus),
		IsBookletPurchased: a.IsBookletPurchased,
		AmountPaid:         a.AmountPaid,
	}
}

func toEntryDTOs(entries []report.AttendanceEntry) []AttendanceEntryDTO {
	dtos := make([]AttendanceEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = AttendanceEntryDTO{
			AttendanceDTO:   toAttendanceDTO(e.AttendanceSnapshot),
			LessonID:        string(e.LessonID),
			LessonStartTime: formatTimePtr(e.LessonStartTime),
			BookletPrice:    e.BookletPrice,
			PaymentType:     string(e.PaymentType),
		}
	}
	return dtos
}

func toReportRecordDTO(r academy.Report) ReportRecordDTO {
	return ReportRecordDTO{
		ID:        string(r.ID),
		StudentID: string(r.StudentID),
		Kind:      string(r.Kind),
		LessonID:  string(r.LessonID),
		ScopeID:   string(r.ScopeID),
		Notes:     r.Notes,
		CreatedBy: r.CreatedBy,
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
