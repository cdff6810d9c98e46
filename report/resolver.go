/*
Package report implements the report aggregation engine.

PURPOSE:
  Builds a per-student progress report over one of three scopes (a single
  lesson, a "month" grouping, or a "course" grouping) by joining attendance,
  payment and scheduling records, then persists the report idempotently.
  Summaries are never stored: they are recomputed on every read.

PIPELINE:
  Engine (engine.go)
    -> Resolver   (resolver.go)   scope -> lesson ids
    -> Joiner     (joiner.go)     student + lesson ids -> dated attendance
    -> Summarize* (summary.go)    attendance -> lesson/month/course summary
    -> Repository (repository.go) atomic upsert of the Report record

SEE ALSO:
  - academy/store.go: Directory and ReportStore interfaces
  - api/handlers.go: HTTP surface over Engine
*/
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/warp/academy-engine/academy"
)

// =============================================================================
// RESOLVER - Which lessons does a scope cover?
// =============================================================================

// Resolver determines the authoritative lesson set of a GroupedLessons.
//
// Fallback order, evaluated on every call:
//  1. A non-empty explicit LessonIDs list is the answer, as-is. Ids of lessons
//     that have since been deleted stay in the list.
//  2. Otherwise every lesson whose ScopeID points back at the scope, ordered
//     by start time then id.
//
// Both empty yields an empty set, not an error.
type Resolver struct {
	Directory academy.Directory
}

func NewResolver(dir academy.Directory) *Resolver {
	return &Resolver{Directory: dir}
}

func (r *Resolver) Resolve(ctx context.Context, scope academy.GroupedLessons) ([]academy.LessonID, error) {
	if len(scope.LessonIDs) > 0 {
		return append([]academy.LessonID(nil), scope.LessonIDs...), nil
	}

	lessons, err := r.Directory.FindLessonsByScope(ctx, scope.ID)
	if err != nil {
		return nil, fmt.Errorf("find lessons for scope %s: %w", scope.ID, err)
	}

	sort.SliceStable(lessons, func(i, j int) bool {
		if !lessons[i].StartTime.Equal(lessons[j].StartTime) {
			return lessons[i].StartTime.Before(lessons[j].StartTime)
		}
		return lessons[i].ID < lessons[j].ID
	})

	ids := make([]academy.LessonID, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return ids, nil
}
