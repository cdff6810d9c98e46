package factory

// Preset fixture documents used by the demo scenarios and integration tests.
// Every preset has one parent "parent-1" and one student "student-1".

const family = `
  "parents":  [{"id": "parent-1", "name": "Mona Haddad", "children": ["student-1"]}],
  "students": [{"id": "student-1", "name": "Omar Haddad", "parent_id": "parent-1"}]`

// OctoberMonthJSON returns a month scope "Oct-2024" with an explicit
// [L1, L2] list and two paid attendances (20 + 30).
func OctoberMonthJSON() string {
	return `{` + family + `,
  "lessons": [
    {"id": "L1", "start_time": "2024-10-03T16:00:00Z", "booklet_price": "5.00"},
    {"id": "L2", "start_time": "2024-10-17T16:00:00Z"},
    {"id": "L3", "start_time": "2024-10-24T16:00:00Z", "scope_id": "Oct-2024"}
  ],
  "scopes": [
    {"id": "Oct-2024", "name": "October 2024", "kind": "month", "lesson_ids": ["L1", "L2"]}
  ],
  "attendance": [
    {"student_id": "student-1", "lesson_id": "L1", "attended_at": "2024-10-03T16:05:00Z",
     "left_at": "2024-10-03T17:35:00Z", "exam_score": 18, "exam_max_score": 20,
     "exam_status": "passed", "booklet_purchased": true, "payment_type": "cash", "amount_paid": "20"},
    {"student_id": "student-1", "lesson_id": "L2", "attended_at": "2024-10-17T16:00:00Z",
     "payment_type": "card", "amount_paid": "30"}
  ]
}`
}

// CourseTermJSON returns a course scope "Term-1" with no explicit list; its
// lessons point back at it and span January and February 2024.
func CourseTermJSON() string {
	return `{` + family + `,
  "lessons": [
    {"id": "C1", "start_time": "2024-01-05T09:00:00Z", "scope_id": "Term-1"},
    {"id": "C2", "start_time": "2024-01-20T09:00:00Z", "scope_id": "Term-1"},
    {"id": "C3", "start_time": "2024-02-01T09:00:00Z", "scope_id": "Term-1"},
    {"id": "X1", "start_time": "2024-02-02T09:00:00Z", "scope_id": "Term-2"}
  ],
  "scopes": [
    {"id": "Term-1", "name": "Algebra, Term 1", "kind": "course"},
    {"id": "Term-2", "name": "Geometry, Term 2", "kind": "course"}
  ],
  "attendance": [
    {"student_id": "student-1", "lesson_id": "C1", "attended_at": "2024-01-05T09:00:00Z", "amount_paid": "10"},
    {"student_id": "student-1", "lesson_id": "C2", "attended_at": "2024-01-20T09:00:00Z", "amount_paid": "5"},
    {"student_id": "student-1", "lesson_id": "C3", "attended_at": "2024-02-01T09:00:00Z",
     "payment_type": "transfer", "amount_paid": "7"},
    {"student_id": "student-1", "lesson_id": "X1", "attended_at": "2024-02-02T09:00:00Z", "amount_paid": "99"}
  ]
}`
}

// MissingLessonJSON returns a month scope whose second lesson has been
// deleted after the student attended it.
func MissingLessonJSON() string {
	return `{` + family + `,
  "lessons": [
    {"id": "N1", "start_time": "2024-11-04T16:00:00Z"},
    {"id": "N2", "start_time": "2024-11-11T16:00:00Z"}
  ],
  "scopes": [
    {"id": "Nov-2024", "name": "November 2024", "kind": "month", "lesson_ids": ["N1", "N2"]}
  ],
  "attendance": [
    {"student_id": "student-1", "lesson_id": "N1", "attended_at": "2024-11-04T16:00:00Z", "amount_paid": "15"},
    {"student_id": "student-1", "lesson_id": "N2", "attended_at": "2024-11-11T16:00:00Z",
     "payment_type": "free", "amount_paid": "0"}
  ],
  "delete_lessons": ["N2"]
}`
}
