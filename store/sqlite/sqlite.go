/*
Package sqlite provides a SQLite-backed implementation of academy.Store.

PURPOSE:
  Persists the entity records the report engine reads (students, parents,
  lessons, grouped lessons, attendance) and the Report records it writes.
  In production, the same patterns apply to PostgreSQL (store/postgres).

INTERFACES IMPLEMENTED:
  academy.Directory:   Entity lookups and scans
  academy.ReportStore: Atomic report upsert, lookups
  academy.Seeder:      Fixture writes, Reset

KEY TABLES:
  students, parents, parent_children
  lessons                (scope_id = implicit membership back-reference)
  grouped_lessons, grouped_lesson_items (explicit ordered membership)
  attendance             UNIQUE(student_id, lesson_id)
  reports                UNIQUE(student_id, kind, scope_ref)

ATOMIC UPSERT:
  UpsertReport is one statement:
    INSERT ... ON CONFLICT(student_id, kind, scope_ref) DO UPDATE ... RETURNING
  so two concurrent generations of the same report can never both insert.
  SQLITE_BUSY / SQLITE_LOCKED surface as academy.ErrConcurrentModification.

ORDERING:
  Attendance scans are ORDER BY rowid (insertion order). Re-saving a record
  for the same (student, lesson) updates in place and keeps its rowid.

USAGE:
  store, err := sqlite.New("./data/academy.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := report.NewEngine(store)

SEE ALSO:
  - academy/store.go: Interface definitions
  - academy/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/academy-engine/academy"
)

// Store implements academy.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	now func() time.Time
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS parent_children (
		parent_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (parent_id, student_id)
	);

	CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS lessons (
		id TEXT PRIMARY KEY,
		start_time TEXT NOT NULL,
		booklet_price TEXT,
		scope_id TEXT NOT NULL DEFAULT ''
	);

	-- Implicit membership scan
	CREATE INDEX IF NOT EXISTS idx_lessons_scope
		ON lessons(scope_id);

	CREATE TABLE IF NOT EXISTS grouped_lessons (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT ''
	);

	-- Explicit ordered membership. lesson_id is deliberately not a foreign
	-- key: deleted lessons stay listed.
	CREATE TABLE IF NOT EXISTS grouped_lesson_items (
		scope_id TEXT NOT NULL,
		lesson_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (scope_id, position)
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT NOT NULL UNIQUE,
		student_id TEXT NOT NULL,
		lesson_id TEXT NOT NULL,
		attended_at TEXT NOT NULL,
		left_at TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		exam_score REAL,
		exam_max_score REAL,
		exam_status TEXT NOT NULL DEFAULT '',
		booklet_purchased BOOLEAN NOT NULL DEFAULT FALSE,
		payment_type TEXT NOT NULL DEFAULT '',
		amount_paid TEXT NOT NULL DEFAULT '0',
		UNIQUE(student_id, lesson_id)
	);

	-- Reports: one per (student, kind, scope_ref)
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		scope_ref TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_reports_identity
		ON reports(student_id, kind, scope_ref);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// DIRECTORY (academy.Directory interface)
// =============================================================================

// GetStudent retrieves a student by ID.
func (s *Store) GetStudent(ctx context.Context, id academy.StudentID) (*academy.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st academy.Student
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, parent_id FROM students WHERE id = ?", id,
	).Scan(&st.ID, &st.Name, &st.ParentID)

	if err == sql.ErrNoRows {
		return nil, academy.NotFound("student", string(id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &st, nil
}

// GetParent retrieves a parent and its children.
func (s *Store) GetParent(ctx context.Context, id academy.ParentID) (*academy.Parent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p academy.Parent
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM parents WHERE id = ?", id,
	).Scan(&p.ID, &p.Name)

	if err == sql.ErrNoRows {
		return nil, academy.NotFound("parent", string(id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT student_id FROM parent_children WHERE parent_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var child academy.StudentID
		if err := rows.Scan(&child); err != nil {
			return nil, err
		}
		p.Children = append(p.Children, child)
	}
	return &p, rows.Err()
}

// GetLesson retrieves a lesson by ID.
func (s *Store) GetLesson(ctx context.Context, id academy.LessonID) (*academy.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lessons, err := s.queryLessons(ctx,
		"SELECT id, start_time, booklet_price, scope_id FROM lessons WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, academy.NotFound("lesson", string(id))
	}
	return &lessons[0], nil
}

// GetGroupedLessons retrieves a scope with its explicit lesson list.
func (s *Store) GetGroupedLessons(ctx context.Context, id academy.ScopeID) (*academy.GroupedLessons, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var g academy.GroupedLessons
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, kind FROM grouped_lessons WHERE id = ?", id,
	).Scan(&g.ID, &g.Name, &g.Kind)

	if err == sql.ErrNoRows {
		return nil, academy.NotFound("scope", string(id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scope: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT lesson_id FROM grouped_lesson_items WHERE scope_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get scope lessons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lessonID academy.LessonID
		if err := rows.Scan(&lessonID); err != nil {
			return nil, err
		}
		g.LessonIDs = append(g.LessonIDs, lessonID)
	}
	return &g, rows.Err()
}

// FindLessons returns the existing lessons among ids.
func (s *Store) FindLessons(ctx context.Context, ids []academy.LessonID) ([]academy.Lesson, error) {
	if len(ids) == 0 {
		return []academy.Lesson{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, start_time, booklet_price, scope_id FROM lessons WHERE id IN (" + placeholders(len(ids)) + ")"
	return s.queryLessons(ctx, query, lessonArgs(ids)...)
}

// FindLessonsByScope returns lessons pointing back at scopeID.
func (s *Store) FindLessonsByScope(ctx context.Context, scopeID academy.ScopeID) ([]academy.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLessons(ctx,
		"SELECT id, start_time, booklet_price, scope_id FROM lessons WHERE scope_id = ? ORDER BY start_time, id",
		scopeID)
}

// FindAttendance returns the student's attendance for lessonIDs in insertion order.
func (s *Store) FindAttendance(ctx context.Context, studentID academy.StudentID, lessonIDs []academy.LessonID) ([]academy.Attendance, error) {
	if len(lessonIDs) == 0 {
		return []academy.Attendance{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, student_id, lesson_id, attended_at, left_at, duration_seconds,
		       exam_score, exam_max_score, exam_status, booklet_purchased,
		       payment_type, amount_paid
		FROM attendance
		WHERE student_id = ? AND lesson_id IN (` + placeholders(len(lessonIDs)) + `)
		ORDER BY rowid ASC
	`
	args := append([]any{studentID}, lessonArgs(lessonIDs)...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	result := []academy.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (s *Store) queryLessons(ctx context.Context, query string, args ...any) ([]academy.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := []academy.Lesson{}
	for rows.Next() {
		var (
			l            academy.Lesson
			startTime    string
			bookletPrice sql.NullString
		)
		if err := rows.Scan(&l.ID, &startTime, &bookletPrice, &l.ScopeID); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		l.StartTime = parseTime(startTime)
		l.BookletPrice = parseNullDecimal(bookletPrice)
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func scanAttendance(rows *sql.Rows) (academy.Attendance, error) {
	var (
		a               academy.Attendance
		attendedAt      string
		leftAt          sql.NullString
		durationSeconds int64
		examScore       sql.NullFloat64
		examMaxScore    sql.NullFloat64
		amountPaid      string
	)

	err := rows.Scan(
		&a.ID, &a.StudentID, &a.LessonID, &attendedAt, &leftAt, &durationSeconds,
		&examScore, &examMaxScore, &a.ExamStatus, &a.IsBookletPurchased,
		&a.PaymentType, &amountPaid,
	)
	if err != nil {
		return a, fmt.Errorf("failed to scan attendance: %w", err)
	}

	a.AttendedAt = parseTime(attendedAt)
	if leftAt.Valid {
		t := parseTime(leftAt.String)
		a.LeftAt = &t
	}
	a.Duration = time.Duration(durationSeconds) * time.Second
	if examScore.Valid {
		v := examScore.Float64
		a.ExamScore = &v
	}
	if examMaxScore.Valid {
		v := examMaxScore.Float64
		a.ExamMaxScore = &v
	}
	a.AmountPaid = parseDecimal(amountPaid)
	return a, nil
}

// =============================================================================
// REPORT STORE (academy.ReportStore interface)
// =============================================================================

// UpsertReport creates or replaces the report for key in a single statement.
func (s *Store) UpsertReport(ctx context.Context, key academy.ReportKey, fields academy.ReportFields) (academy.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO reports (id, student_id, kind, scope_ref, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id, kind, scope_ref) DO UPDATE SET
			notes = excluded.notes,
			created_by = excluded.created_by,
			updated_at = excluded.updated_at
		RETURNING id, created_at, updated_at
	`

	now := formatTime(s.now())
	var id, createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, query,
		uuid.NewString(), key.StudentID, key.Kind, key.ScopeRef,
		fields.Notes, fields.CreatedBy, now, now,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		if isBusyError(err) {
			return academy.Report{}, fmt.Errorf("%w: %v", academy.ErrConcurrentModification, err)
		}
		return academy.Report{}, fmt.Errorf("failed to upsert report: %w", err)
	}

	r := academy.NewReportFromKey(academy.ReportID(id), key, fields, parseTime(createdAt))
	r.UpdatedAt = parseTime(updatedAt)
	return r, nil
}

// GetReport retrieves a report by ID.
func (s *Store) GetReport(ctx context.Context, id academy.ReportID) (*academy.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports, err := s.queryReports(ctx, reportColumns+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, academy.NotFound("report", string(id))
	}
	return &reports[0], nil
}

// ListReportsByStudent returns a student's reports in insertion order.
func (s *Store) ListReportsByStudent(ctx context.Context, studentID academy.StudentID) ([]academy.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryReports(ctx, reportColumns+" WHERE student_id = ? ORDER BY rowid", studentID)
}

const reportColumns = `
	SELECT id, student_id, kind, scope_ref, notes, created_by, created_at, updated_at
	FROM reports`

func (s *Store) queryReports(ctx context.Context, query string, args ...any) ([]academy.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []academy.Report{}
	for rows.Next() {
		var (
			id, createdAt, updatedAt string
			key                      academy.ReportKey
			fields                   academy.ReportFields
		)
		if err := rows.Scan(&id, &key.StudentID, &key.Kind, &key.ScopeRef,
			&fields.Notes, &fields.CreatedBy, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r := academy.NewReportFromKey(academy.ReportID(id), key, fields, parseTime(createdAt))
		r.UpdatedAt = parseTime(updatedAt)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// =============================================================================
// SEEDER (academy.Seeder interface)
// =============================================================================

// SaveStudent saves a student.
func (s *Store) SaveStudent(ctx context.Context, st academy.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (id, name, parent_id) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			parent_id = excluded.parent_id
	`, st.ID, st.Name, st.ParentID)
	return err
}

// SaveParent saves a parent and replaces its children list.
func (s *Store) SaveParent(ctx context.Context, p academy.Parent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO parents (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name
		`, p.ID, p.Name); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM parent_children WHERE parent_id = ?", p.ID); err != nil {
			return err
		}
		for i, child := range p.Children {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO parent_children (parent_id, student_id, position) VALUES (?, ?, ?)",
				p.ID, child, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveLesson saves a lesson.
func (s *Store) SaveLesson(ctx context.Context, l academy.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var price sql.NullString
	if l.BookletPrice != nil {
		price = sql.NullString{String: l.BookletPrice.String(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lessons (id, start_time, booklet_price, scope_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_time = excluded.start_time,
			booklet_price = excluded.booklet_price,
			scope_id = excluded.scope_id
	`, l.ID, formatTime(l.StartTime), price, l.ScopeID)
	return err
}

// SaveGroupedLessons saves a scope and replaces its explicit lesson list.
func (s *Store) SaveGroupedLessons(ctx context.Context, g academy.GroupedLessons) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO grouped_lessons (id, name, kind) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				kind = excluded.kind
		`, g.ID, g.Name, g.Kind); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM grouped_lesson_items WHERE scope_id = ?", g.ID); err != nil {
			return err
		}
		for i, lessonID := range g.LessonIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO grouped_lesson_items (scope_id, lesson_id, position) VALUES (?, ?, ?)",
				g.ID, lessonID, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveAttendance inserts or replaces the record for (student, lesson).
func (s *Store) SaveAttendance(ctx context.Context, a academy.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = academy.AttendanceID(uuid.NewString())
	}
	var leftAt sql.NullString
	if a.LeftAt != nil {
		leftAt = sql.NullString{String: formatTime(*a.LeftAt), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance
		(id, student_id, lesson_id, attended_at, left_at, duration_seconds,
		 exam_score, exam_max_score, exam_status, booklet_purchased, payment_type, amount_paid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id, lesson_id) DO UPDATE SET
			attended_at = excluded.attended_at,
			left_at = excluded.left_at,
			duration_seconds = excluded.duration_seconds,
			exam_score = excluded.exam_score,
			exam_max_score = excluded.exam_max_score,
			exam_status = excluded.exam_status,
			booklet_purchased = excluded.booklet_purchased,
			payment_type = excluded.payment_type,
			amount_paid = excluded.amount_paid
	`,
		a.ID, a.StudentID, a.LessonID, formatTime(a.AttendedAt), leftAt,
		int64(a.Duration/time.Second), nullFloat(a.ExamScore), nullFloat(a.ExamMaxScore),
		a.ExamStatus, a.IsBookletPurchased, a.PaymentType, a.AmountPaid.String(),
	)
	return err
}

// DeleteLesson removes a lesson. Attendance and scope lists keep their references.
func (s *Store) DeleteLesson(ctx context.Context, id academy.LessonID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = ?", id)
	return err
}

// DeleteGroupedLessons removes a scope and its explicit list.
func (s *Store) DeleteGroupedLessons(ctx context.Context, id academy.ScopeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM grouped_lesson_items WHERE scope_id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM grouped_lessons WHERE id = ?", id)
		return err
	})
}

// Reset clears all data (for testing/demos).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"reports", "attendance", "grouped_lesson_items", "grouped_lessons",
		"lessons", "students", "parent_children", "parents",
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

var _ academy.Store = (*Store)(nil)

// Helper functions

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseNullDecimal(s sql.NullString) *decimal.Decimal {
	if !s.Valid {
		return nil
	}
	d := parseDecimal(s.String)
	return &d
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func lessonArgs(ids []academy.LessonID) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = string(id)
	}
	return args
}

func isBusyError(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}
