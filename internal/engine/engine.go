// Package engine implements the attendance session lifecycle: starting
// and ending sessions, code-based check-in, manual roll-call marking,
// statistics, and random selection of present students. It talks to
// storage only through the store interfaces below, and every operation
// returns a Result instead of an error so callers always get a
// status-coded outcome.
package engine

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// Result is the uniform outcome of every engine operation. Code follows
// HTTP conventions (200 success, 400 invalid input, 404 not found, 500
// unexpected store failure) and the HTTP layer maps it to the response
// status verbatim.
type Result struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Body    interface{} `json:"body"`
}

type CourseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type StudentStore interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// RosterStore exposes the course→student enrollment; the engine only
// reads from it.
type RosterStore interface {
	ListStudents(ctx context.Context, courseID string) ([]models.Student, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *models.AttendanceSession) error
	FindByID(ctx context.Context, id string) (*models.AttendanceSession, error)
	FindActiveByCode(ctx context.Context, code string) (*models.AttendanceSession, error)
	End(ctx context.Context, id string, endTime time.Time) (*models.AttendanceSession, error)
	Save(ctx context.Context, session *models.AttendanceSession) error
	ListByStatus(ctx context.Context, status string) ([]models.AttendanceSession, error)
	ListEndedInWindow(ctx context.Context, courseID string, from, to time.Time) ([]models.AttendanceSession, error)
}

type RecordStore interface {
	Insert(ctx context.Context, record *models.AttendanceRecord) error
	FindInWindow(ctx context.Context, courseID primitive.ObjectID, studentID string, from, to time.Time) (*models.AttendanceRecord, error)
	List(ctx context.Context, studentID, courseID string) ([]models.AttendanceRecord, error)
	CountByStatus(ctx context.Context, courseID primitive.ObjectID, from, to *time.Time) (map[string]int64, error)
}

type Engine struct {
	courses  CourseStore
	students StudentStore
	roster   RosterStore
	sessions SessionStore
	records  RecordStore
}

func New(courses CourseStore, students StudentStore, roster RosterStore, sessions SessionStore, records RecordStore) *Engine {
	return &Engine{
		courses:  courses,
		students: students,
		roster:   roster,
		sessions: sessions,
		records:  records,
	}
}

func ok(message string, body interface{}) Result {
	return Result{Code: 200, Message: message, Body: body}
}

func fail(code int, message string) Result {
	return Result{Code: code, Message: message}
}

// internalError logs the underlying store failure and returns the
// generic 500 outcome; domain failures never go through here.
func internalError(op string, err error) Result {
	log.Printf("engine: %s: %v", op, err)
	return fail(500, "Internal server error")
}

// dayWindow returns the [start, end) calendar-day window containing t.
func dayWindow(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
