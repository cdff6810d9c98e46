package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/academy-engine/academy"
)

// =============================================================================
// JOINER - Attendance enriched with lesson scheduling fields
// =============================================================================

// JoinedAttendance is an attendance record plus the fields of its lesson.
// LessonStartTime and BookletPrice are nil when the lesson no longer exists.
type JoinedAttendance struct {
	academy.Attendance

	LessonStartTime *time.Time
	BookletPrice    *decimal.Decimal
}

// Joiner fetches a student's attendance over a lesson set.
//
// ORDERING:
//
//	Ascending by AttendedAt (when the student showed up, not when the lesson
//	was scheduled). The sort is stable, so records sharing a timestamp keep
//	the store's insertion order. Course bucketing relies on this order.
//
// MISSING LESSONS:
//
//	A record whose lesson was deleted is kept with nil lesson fields.
//	Dropping it would change payment totals.
type Joiner struct {
	Directory academy.Directory
}

func NewJoiner(dir academy.Directory) *Joiner {
	return &Joiner{Directory: dir}
}

func (j *Joiner) Join(ctx context.Context, studentID academy.StudentID, lessonIDs []academy.LessonID) ([]JoinedAttendance, error) {
	if len(lessonIDs) == 0 {
		return []JoinedAttendance{}, nil
	}

	records, err := j.Directory.FindAttendance(ctx, studentID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	if len(records) == 0 {
		return []JoinedAttendance{}, nil
	}

	lessons, err := j.Directory.FindLessons(ctx, uniqueLessonIDs(records))
	if err != nil {
		return nil, fmt.Errorf("find lessons: %w", err)
	}
	byID := make(map[academy.LessonID]academy.Lesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}

	joined := make([]JoinedAttendance, len(records))
	for i, a := range records {
		joined[i] = JoinedAttendance{Attendance: a}
		if l, ok := byID[a.LessonID]; ok {
			start := l.StartTime
			joined[i].LessonStartTime = &start
			joined[i].BookletPrice = l.BookletPrice
		}
	}

	sort.SliceStable(joined, func(a, b int) bool {
		return joined[a].AttendedAt.Before(joined[b].AttendedAt)
	})
	return joined, nil
}

func uniqueLessonIDs(records []academy.Attendance) []academy.LessonID {
	seen := make(map[academy.LessonID]bool, len(records))
	ids := make([]academy.LessonID, 0, len(records))
	for _, a := range records {
		if !seen[a.LessonID] {
			seen[a.LessonID] = true
			ids = append(ids, a.LessonID)
		}
	}
	return ids
}
