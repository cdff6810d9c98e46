package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/warp/academy-engine/academy"
)

// =============================================================================
// REPOSITORY - Idempotent persistence of Report records
// =============================================================================

const (
	defaultUpsertAttempts = 3
	defaultUpsertBackoff  = 20 * time.Millisecond
)

// Repository wraps a ReportStore with the engine's idempotence contract.
//
// Upsert is find-or-create-then-replace keyed by (student, kind, scopeRef).
// The atomicity itself belongs to the store (one conditional write). The
// repository only retries when the store reports a concurrent writer.
type Repository struct {
	Store       academy.ReportStore
	MaxAttempts int
	Backoff     time.Duration

	log *zap.Logger
}

func NewRepository(store academy.ReportStore, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{
		Store:       store,
		MaxAttempts: defaultUpsertAttempts,
		Backoff:     defaultUpsertBackoff,
		log:         log,
	}
}

// Upsert creates the report for key or replaces notes/createdBy/updatedAt of
// the existing one.
func (r *Repository) Upsert(ctx context.Context, key academy.ReportKey, fields academy.ReportFields) (academy.Report, error) {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := r.Backoff

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		report, err := r.Store.UpsertReport(ctx, key, fields)
		if err == nil {
			return report, nil
		}
		if !academy.IsRetryable(err) {
			return academy.Report{}, fmt.Errorf("upsert report: %w", err)
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		r.log.Warn("report upsert conflict, retrying",
			zap.String("student_id", string(key.StudentID)),
			zap.String("kind", string(key.Kind)),
			zap.String("scope_ref", key.ScopeRef),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
		)

		select {
		case <-ctx.Done():
			return academy.Report{}, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return academy.Report{}, fmt.Errorf("upsert report after %d attempts: %w", attempts, lastErr)
}

func (r *Repository) GetByID(ctx context.Context, id academy.ReportID) (*academy.Report, error) {
	return r.Store.GetReport(ctx, id)
}

func (r *Repository) ListByStudent(ctx context.Context, studentID academy.StudentID) ([]academy.Report, error) {
	return r.Store.ListReportsByStudent(ctx, studentID)
}
