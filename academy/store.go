/*
store.go - Persistence interfaces consumed and implemented around the engine

PURPOSE:
  Defines the boundary between the report engine and the entity store.
  The engine only needs point lookups and two filtered scans over data it
  never writes, plus one atomic write for its own Report records.

KEY INTERFACES:
  Directory:   Read-only lookups of students, parents, lessons, scopes, attendance
  ReportStore: Atomic create-or-replace of Reports, lookup by id or student
  Seeder:      Writes used by fixtures and tests to populate a store
  Store:       Everything above (what concrete stores implement)

UPSERT CONTRACT:
  UpsertReport must be atomic at the ReportKey. Two concurrent calls for the
  same key must leave exactly one report behind. A read-then-insert sequence
  does not satisfy this; use a single conditional write or hold a lock.
  If the backend cannot complete the write because of contention it returns
  ErrConcurrentModification and the caller may retry.

NOT FOUND:
  Point lookups return a *NotFoundError (errors.Is(err, ErrNotFound)).
  Scans return an empty slice, never ErrNotFound.

IMPLEMENTATIONS:
  - academy/store/memory.go: In-memory for testing
  - store/sqlite/sqlite.go: SQLite
  - store/postgres/postgres.go: PostgreSQL via pgx

SEE ALSO:
  - report/repository.go: Retry loop around UpsertReport
*/
package academy

import "context"

// =============================================================================
// DIRECTORY - Read-only entity lookups
// =============================================================================

// Directory exposes the entity reads the report engine depends on.
type Directory interface {
	GetStudent(ctx context.Context, id StudentID) (*Student, error)
	GetParent(ctx context.Context, id ParentID) (*Parent, error)
	GetLesson(ctx context.Context, id LessonID) (*Lesson, error)
	GetGroupedLessons(ctx context.Context, id ScopeID) (*GroupedLessons, error)

	// FindLessons returns the lessons that still exist among ids.
	// Missing ids are skipped, not reported.
	FindLessons(ctx context.Context, ids []LessonID) ([]Lesson, error)

	// FindLessonsByScope returns lessons whose ScopeID equals scopeID.
	FindLessonsByScope(ctx context.Context, scopeID ScopeID) ([]Lesson, error)

	// FindAttendance returns the student's attendance for any of lessonIDs,
	// in insertion order.
	FindAttendance(ctx context.Context, studentID StudentID, lessonIDs []LessonID) ([]Attendance, error)
}

// =============================================================================
// REPORT STORE - The engine's only write path
// =============================================================================

// ReportStore persists Reports.
type ReportStore interface {
	// UpsertReport creates the report for key, or replaces the fields of the
	// existing one. The report id and CreatedAt never change once assigned.
	UpsertReport(ctx context.Context, key ReportKey, fields ReportFields) (Report, error)

	GetReport(ctx context.Context, id ReportID) (*Report, error)

	// ListReportsByStudent returns reports in storage order.
	ListReportsByStudent(ctx context.Context, studentID StudentID) ([]Report, error)
}

// =============================================================================
// SEEDER - Populating a store (fixtures, tests)
// =============================================================================

// Seeder writes entity records. The report engine never uses it.
type Seeder interface {
	SaveStudent(ctx context.Context, s Student) error
	SaveParent(ctx context.Context, p Parent) error
	SaveLesson(ctx context.Context, l Lesson) error
	SaveGroupedLessons(ctx context.Context, g GroupedLessons) error
	SaveAttendance(ctx context.Context, a Attendance) error

	DeleteLesson(ctx context.Context, id LessonID) error
	DeleteGroupedLessons(ctx context.Context, id ScopeID) error

	// Reset removes every record, reports included.
	Reset(ctx context.Context) error
}

// Store is implemented by every concrete backend.
type Store interface {
	Directory
	ReportStore
	Seeder
}
