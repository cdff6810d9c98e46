// Package store provides an in-memory academy.Store.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/academy-engine/academy"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	students map[academy.StudentID]academy.Student
	parents  map[academy.ParentID]academy.Parent
	lessons  map[academy.LessonID]academy.Lesson
	scopes   map[academy.ScopeID]academy.GroupedLessons

	// attendance keeps insertion order; attendanceIdx points into it.
	attendance    []academy.Attendance
	attendanceIdx map[pairKey]int

	reports    []academy.Report
	reportIdx  map[academy.ReportKey]int
	reportByID map[academy.ReportID]int

	now func() time.Time
}

type pairKey struct {
	StudentID academy.StudentID
	LessonID  academy.LessonID
}

func NewMemory() *Memory {
	m := &Memory{now: func() time.Time { return time.Now().UTC() }}
	m.resetLocked()
	return m
}

// WithClock replaces the time source used for report timestamps.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) resetLocked() {
	m.students = make(map[academy.StudentID]academy.Student)
	m.parents = make(map[academy.ParentID]academy.Parent)
	m.lessons = make(map[academy.LessonID]academy.Lesson)
	m.scopes = make(map[academy.ScopeID]academy.GroupedLessons)
	m.attendance = nil
	m.attendanceIdx = make(map[pairKey]int)
	m.reports = nil
	m.reportIdx = make(map[academy.ReportKey]int)
	m.reportByID = make(map[academy.ReportID]int)
}

// =============================================================================
// DIRECTORY
// =============================================================================

func (m *Memory) GetStudent(_ context.Context, id academy.StudentID) (*academy.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.students[id]
	if !ok {
		return nil, academy.NotFound("student", string(id))
	}
	return &s, nil
}

func (m *Memory) GetParent(_ context.Context, id academy.ParentID) (*academy.Parent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.parents[id]
	if !ok {
		return nil, academy.NotFound("parent", string(id))
	}
	p.Children = append([]academy.StudentID(nil), p.Children...)
	return &p, nil
}

func (m *Memory) GetLesson(_ context.Context, id academy.LessonID) (*academy.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lessons[id]
	if !ok {
		return nil, academy.NotFound("lesson", string(id))
	}
	return &l, nil
}

func (m *Memory) GetGroupedLessons(_ context.Context, id academy.ScopeID) (*academy.GroupedLessons, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.scopes[id]
	if !ok {
		return nil, academy.NotFound("scope", string(id))
	}
	g.LessonIDs = append([]academy.LessonID(nil), g.LessonIDs...)
	return &g, nil
}

func (m *Memory) FindLessons(_ context.Context, ids []academy.LessonID) ([]academy.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]academy.Lesson, 0, len(ids))
	for _, id := range ids {
		if l, ok := m.lessons[id]; ok {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *Memory) FindLessonsByScope(_ context.Context, scopeID academy.ScopeID) ([]academy.Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []academy.Lesson
	for _, l := range m.lessons {
		if l.ScopeID == scopeID {
			result = append(result, l)
		}
	}
	// Map iteration is random; keep scans deterministic.
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) FindAttendance(_ context.Context, studentID academy.StudentID, lessonIDs []academy.LessonID) ([]academy.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[academy.LessonID]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		wanted[id] = true
	}

	var result []academy.Attendance
	for _, a := range m.attendance {
		if a.StudentID == studentID && wanted[a.LessonID] {
			result = append(result, a)
		}
	}
	return result, nil
}

// =============================================================================
// REPORT STORE
// =============================================================================

// UpsertReport is atomic: lookup and write happen under one lock.
func (m *Memory) UpsertReport(_ context.Context, key academy.ReportKey, fields academy.ReportFields) (academy.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if i, ok := m.reportIdx[key]; ok {
		r := m.reports[i]
		r.Notes = fields.Notes
		r.CreatedBy = fields.CreatedBy
		r.UpdatedAt = now
		m.reports[i] = r
		return r, nil
	}

	r := academy.NewReportFromKey(academy.ReportID(uuid.NewString()), key, fields, now)
	m.reports = append(m.reports, r)
	m.reportIdx[key] = len(m.reports) - 1
	m.reportByID[r.ID] = len(m.reports) - 1
	return r, nil
}

func (m *Memory) GetReport(_ context.Context, id academy.ReportID) (*academy.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.reportByID[id]
	if !ok {
		return nil, academy.NotFound("report", string(id))
	}
	r := m.reports[i]
	return &r, nil
}

func (m *Memory) ListReportsByStudent(_ context.Context, studentID academy.StudentID) ([]academy.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []academy.Report{}
	for _, r := range m.reports {
		if r.StudentID == studentID {
			result = append(result, r)
		}
	}
	return result, nil
}

// =============================================================================
// SEEDER
// =============================================================================

func (m *Memory) SaveStudent(_ context.Context, s academy.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[s.ID] = s
	return nil
}

func (m *Memory) SaveParent(_ context.Context, p academy.Parent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Children = append([]academy.StudentID(nil), p.Children...)
	m.parents[p.ID] = p
	return nil
}

func (m *Memory) SaveLesson(_ context.Context, l academy.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lessons[l.ID] = l
	return nil
}

func (m *Memory) SaveGroupedLessons(_ context.Context, g academy.GroupedLessons) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.LessonIDs = append([]academy.LessonID(nil), g.LessonIDs...)
	m.scopes[g.ID] = g
	return nil
}

// SaveAttendance inserts the record, or replaces the existing record for the
// same (student, lesson) pair in place.
func (m *Memory) SaveAttendance(_ context.Context, a academy.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == "" {
		a.ID = academy.AttendanceID(uuid.NewString())
	}
	k := pairKey{StudentID: a.StudentID, LessonID: a.LessonID}
	if i, ok := m.attendanceIdx[k]; ok {
		m.attendance[i] = a
		return nil
	}
	m.attendance = append(m.attendance, a)
	m.attendanceIdx[k] = len(m.attendance) - 1
	return nil
}

func (m *Memory) DeleteLesson(_ context.Context, id academy.LessonID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lessons, id)
	return nil
}

func (m *Memory) DeleteGroupedLessons(_ context.Context, id academy.ScopeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scopes, id)
	return nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	return nil
}

var _ academy.Store = (*Memory)(nil)
