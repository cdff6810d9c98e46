/*
Package factory provides JSON to Go fixture conversion.

PURPOSE:
  Converts JSON fixture documents into academy entities (parents, students,
  lessons, grouped lessons, attendance) and applies them to any store that
  implements academy.Seeder. Demo scenarios and integration tests describe
  their data this way instead of hand-building structs.

JSON SCHEMA:
  {
    "parents":  [{"id": "P", "name": "Parent P", "children": ["S"]}],
    "students": [{"id": "S", "name": "Student S", "parent_id": "P"}],
    "lessons":  [{"id": "L1", "start_time": "2024-10-01T10:00:00Z",
                  "booklet_price": "5.00", "scope_id": "Oct-2024"}],
    "scopes":   [{"id": "Oct-2024", "name": "October", "kind": "month",
                  "lesson_ids": ["L1", "L2"]}],
    "attendance": [{"student_id": "S", "lesson_id": "L1",
                    "attended_at": "2024-10-01T10:00:00Z",
                    "payment_type": "cash", "amount_paid": "20"}],
    "delete_lessons": ["L9"],
    "delete_scopes":  []
  }

  Times are RFC 3339. Money is a decimal string or number. The delete lists
  are applied after everything else and produce dangling references on
  purpose (attendance of a deleted lesson, reports of a deleted scope).

KEY FEATURES:
  - Validates ids, kinds, enums and timestamps before touching the store
  - Errors are academy.ValidationError naming the offending field path
  - Apply order: parents, students, lessons, scopes, attendance, deletes

USAGE:
  f := factory.NewFixtureFactory()
  fixture, err := f.ParseFixture(factory.OctoberMonthJSON())
  if err != nil { ... }
  err = f.Apply(ctx, store, fixture)

SEE ALSO:
  - factory/presets.go: Demo scenario documents
  - academy/store.go: Seeder interface
*/
package factory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/academy-engine/academy"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// FixtureJSON is the JSON representation of a fixture document.
type FixtureJSON struct {
	Parents       []ParentJSON     `json:"parents,omitempty"`
	Students      []StudentJSON    `json:"students,omitempty"`
	Lessons       []LessonJSON     `json:"lessons,omitempty"`
	Scopes        []ScopeJSON      `json:"scopes,omitempty"`
	Attendance    []AttendanceJSON `json:"attendance,omitempty"`
	DeleteLessons []string         `json:"delete_lessons,omitempty"`
	DeleteScopes  []string         `json:"delete_scopes,omitempty"`
}

type ParentJSON struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Children []string `json:"children,omitempty"`
}

type StudentJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

// LessonJSON represents a lesson. BookletPrice is omitted when no booklet is sold.
type LessonJSON struct {
	ID           string           `json:"id"`
	StartTime    string           `json:"start_time"`
	BookletPrice *decimal.Decimal `json:"booklet_price,omitempty"`
	ScopeID      string           `json:"scope_id,omitempty"`
}

// ScopeJSON represents a GroupedLessons. An empty LessonIDs list means
// membership by back-reference.
type ScopeJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind,omitempty"` // month, course
	LessonIDs []string `json:"lesson_ids,omitempty"`
}

type AttendanceJSON struct {
	ID                 string          `json:"id,omitempty"`
	StudentID          string          `json:"student_id"`
	LessonID           string          `json:"lesson_id"`
	AttendedAt         string          `json:"attended_at"`
	LeftAt             string          `json:"left_at,omitempty"`
	DurationMinutes    int             `json:"duration_minutes,omitempty"`
	ExamScore          *float64        `json:"exam_score,omitempty"`
	ExamMaxScore       *float64        `json:"exam_max_score,omitempty"`
	ExamStatus         string          `json:"exam_status,omitempty"`
	IsBookletPurchased bool            `json:"booklet_purchased,omitempty"`
	PaymentType        string          `json:"payment_type,omitempty"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
}

// =============================================================================
// FIXTURE
// =============================================================================

// Fixture is a parsed, validated fixture document.
type Fixture struct {
	Parents       []academy.Parent
	Students      []academy.Student
	Lessons       []academy.Lesson
	Scopes        []academy.GroupedLessons
	Attendance    []academy.Attendance
	DeleteLessons []academy.LessonID
	DeleteScopes  []academy.ScopeID
}

// =============================================================================
// FIXTURE FACTORY
// =============================================================================

// FixtureFactory converts JSON fixtures to academy entities.
type FixtureFactory struct{}

// NewFixtureFactory creates a new fixture factory.
func NewFixtureFactory() *FixtureFactory {
	return &FixtureFactory{}
}

// ParseFixture parses a JSON string into a Fixture.
func (f *FixtureFactory) ParseFixture(jsonStr string) (*Fixture, error) {
	var fj FixtureJSON
	if err := json.Unmarshal([]byte(jsonStr), &fj); err != nil {
		return nil, fmt.Errorf("failed to parse fixture JSON: %w", err)
	}
	return f.FromJSON(fj)
}

// FromJSON converts FixtureJSON to a Fixture, validating every record.
func (f *FixtureFactory) FromJSON(fj FixtureJSON) (*Fixture, error) {
	fx := &Fixture{}

	for i, pj := range fj.Parents {
		if pj.ID == "" {
			return nil, invalid(fmt.Sprintf("parents[%d].id", i), "required")
		}
		p := academy.Parent{ID: academy.ParentID(pj.ID), Name: pj.Name}
		for _, c := range pj.Children {
			p.Children = append(p.Children, academy.StudentID(c))
		}
		fx.Parents = append(fx.Parents, p)
	}

	for i, sj := range fj.Students {
		if sj.ID == "" {
			return nil, invalid(fmt.Sprintf("students[%d].id", i), "required")
		}
		fx.Students = append(fx.Students, academy.Student{
			ID:       academy.StudentID(sj.ID),
			Name:     sj.Name,
			ParentID: academy.ParentID(sj.ParentID),
		})
	}

	for i, lj := range fj.Lessons {
		field := fmt.Sprintf("lessons[%d]", i)
		if lj.ID == "" {
			return nil, invalid(field+".id", "required")
		}
		start, err := parseTime(lj.StartTime)
		if err != nil {
			return nil, invalid(field+".start_time", err.Error())
		}
		fx.Lessons = append(fx.Lessons, academy.Lesson{
			ID:           academy.LessonID(lj.ID),
			StartTime:    start,
			BookletPrice: lj.BookletPrice,
			ScopeID:      academy.ScopeID(lj.ScopeID),
		})
	}

	for i, sj := range fj.Scopes {
		field := fmt.Sprintf("scopes[%d]", i)
		if sj.ID == "" {
			return nil, invalid(field+".id", "required")
		}
		kind := academy.ScopeKind(sj.Kind)
		if kind != "" && !kind.Valid() {
			return nil, invalid(field+".kind", fmt.Sprintf("unknown scope kind %q", sj.Kind))
		}
		g := academy.GroupedLessons{ID: academy.ScopeID(sj.ID), Name: sj.Name, Kind: kind}
		for _, id := range sj.LessonIDs {
			g.LessonIDs = append(g.LessonIDs, academy.LessonID(id))
		}
		fx.Scopes = append(fx.Scopes, g)
	}

	for i, aj := range fj.Attendance {
		a, err := parseAttendance(fmt.Sprintf("attendance[%d]", i), aj)
		if err != nil {
			return nil, err
		}
		fx.Attendance = append(fx.Attendance, a)
	}

	for _, id := range fj.DeleteLessons {
		fx.DeleteLessons = append(fx.DeleteLessons, academy.LessonID(id))
	}
	for _, id := range fj.DeleteScopes {
		fx.DeleteScopes = append(fx.DeleteScopes, academy.ScopeID(id))
	}

	return fx, nil
}

// Apply writes the fixture through seeder in dependency order.
func (f *FixtureFactory) Apply(ctx context.Context, seeder academy.Seeder, fx *Fixture) error {
	for _, p := range fx.Parents {
		if err := seeder.SaveParent(ctx, p); err != nil {
			return fmt.Errorf("save parent %s: %w", p.ID, err)
		}
	}
	for _, s := range fx.Students {
		if err := seeder.SaveStudent(ctx, s); err != nil {
			return fmt.Errorf("save student %s: %w", s.ID, err)
		}
	}
	for _, l := range fx.Lessons {
		if err := seeder.SaveLesson(ctx, l); err != nil {
			return fmt.Errorf("save lesson %s: %w", l.ID, err)
		}
	}
	for _, g := range fx.Scopes {
		if err := seeder.SaveGroupedLessons(ctx, g); err != nil {
			return fmt.Errorf("save scope %s: %w", g.ID, err)
		}
	}
	for _, a := range fx.Attendance {
		if err := seeder.SaveAttendance(ctx, a); err != nil {
			return fmt.Errorf("save attendance %s/%s: %w", a.StudentID, a.LessonID, err)
		}
	}
	for _, id := range fx.DeleteLessons {
		if err := seeder.DeleteLesson(ctx, id); err != nil {
			return fmt.Errorf("delete lesson %s: %w", id, err)
		}
	}
	for _, id := range fx.DeleteScopes {
		if err := seeder.DeleteGroupedLessons(ctx, id); err != nil {
			return fmt.Errorf("delete scope %s: %w", id, err)
		}
	}
	return nil
}

// Load parses jsonStr and applies it.
func (f *FixtureFactory) Load(ctx context.Context, seeder academy.Seeder, jsonStr string) (*Fixture, error) {
	fx, err := f.ParseFixture(jsonStr)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(ctx, seeder, fx); err != nil {
		return nil, err
	}
	return fx, nil
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseAttendance(field string, aj AttendanceJSON) (academy.Attendance, error) {
	if aj.StudentID == "" {
		return academy.Attendance{}, invalid(field+".student_id", "required")
	}
	if aj.LessonID == "" {
		return academy.Attendance{}, invalid(field+".lesson_id", "required")
	}

	attendedAt, err := parseTime(aj.AttendedAt)
	if err != nil {
		return academy.Attendance{}, invalid(field+".attended_at", err.Error())
	}

	a := academy.Attendance{
		ID:                 academy.AttendanceID(aj.ID),
		StudentID:          academy.StudentID(aj.StudentID),
		LessonID:           academy.LessonID(aj.LessonID),
		AttendedAt:         attendedAt,
		Duration:           time.Duration(aj.DurationMinutes) * time.Minute,
		ExamScore:          aj.ExamScore,
		ExamMaxScore:       aj.ExamMaxScore,
		IsBookletPurchased: aj.IsBookletPurchased,
		AmountPaid:         aj.AmountPaid,
	}

	if aj.LeftAt != "" {
		leftAt, err := parseTime(aj.LeftAt)
		if err != nil {
			return academy.Attendance{}, invalid(field+".left_at", err.Error())
		}
		a.LeftAt = &leftAt
		if a.Duration == 0 && leftAt.After(attendedAt) {
			a.Duration = leftAt.Sub(attendedAt)
		}
	}

	if a.ExamStatus, err = parseExamStatus(aj.ExamStatus); err != nil {
		return academy.Attendance{}, invalid(field+".exam_status", err.Error())
	}
	if a.PaymentType, err = parsePaymentType(aj.PaymentType); err != nil {
		return academy.Attendance{}, invalid(field+".payment_type", err.Error())
	}
	if a.AmountPaid.IsNegative() {
		return academy.Attendance{}, invalid(field+".amount_paid", "must not be negative")
	}

	return a, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("required")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (use RFC 3339)", s)
	}
	return t.UTC(), nil
}

func parseExamStatus(s string) (academy.ExamStatus, error) {
	switch academy.ExamStatus(s) {
	case academy.ExamNone, academy.ExamPassed, academy.ExamFailed, academy.ExamAbsent, academy.ExamPending:
		return academy.ExamStatus(s), nil
	}
	return "", fmt.Errorf("unknown exam status %q", s)
}

func parsePaymentType(s string) (academy.PaymentType, error) {
	switch academy.PaymentType(s) {
	case "":
		return academy.PaymentCash, nil
	case academy.PaymentCash, academy.PaymentCard, academy.PaymentTransfer, academy.PaymentWallet, academy.PaymentFree:
		return academy.PaymentType(s), nil
	}
	return "", fmt.Errorf("unknown payment type %q", s)
}

func invalid(field, message string) error {
	return &academy.ValidationError{Field: field, Message: message}
}
