package engine

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// SessionSummary is a session with its derived check-in count, used by
// the listing operations.
type SessionSummary struct {
	models.AttendanceSession
	AttendanceCount int `json:"attendanceCount"`
}

// StartSession opens an attendance session for a course. Code mode gets
// a random 6-digit check-in code; manual mode gets a timestamp-derived
// token students can never type in. sessionDate is accepted for API
// compatibility, but the session is stamped with the wall clock at
// creation time.
//
// Codes are not checked for uniqueness across active sessions; when two
// active sessions share a code, check-in resolves to the newer one.
func (e *Engine) StartSession(ctx context.Context, courseID string, sessionDate time.Time, mode string) Result {
	course, err := e.courses.FindByID(ctx, courseID)
	if err != nil {
		return internalError("start session", err)
	}
	if course == nil {
		return fail(404, "Course not found")
	}

	var sessionCode string
	if mode == models.AttendanceModeManual {
		sessionCode = models.ManualCodePrefix + strconv.FormatInt(time.Now().UnixMilli(), 10)
	} else {
		sessionCode = strconv.Itoa(100000 + rand.Intn(900000))
	}

	now := time.Now()
	session := &models.AttendanceSession{
		CourseID:         course.ID,
		CourseName:       course.CourseName,
		SessionCode:      sessionCode,
		StartTime:        now,
		Status:           models.SessionStatusActive,
		AttendedStudents: []models.SessionEntry{},
		AbsentStudents:   []models.SessionEntry{},
		ExcusedStudents:  []models.SessionEntry{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := e.sessions.Create(ctx, session); err != nil {
		return internalError("start session", err)
	}
	return ok("Attendance session started", session)
}

// EndSession moves a session to ended and stamps endTime. The transition
// is terminal but re-enterable: ending an already-ended session only
// refreshes endTime, it never reopens.
func (e *Engine) EndSession(ctx context.Context, sessionID string) Result {
	session, err := e.sessions.End(ctx, sessionID, time.Now())
	if err != nil {
		return internalError("end session", err)
	}
	if session == nil {
		return fail(404, "Attendance session not found")
	}
	return ok("Attendance session ended", session)
}

func (e *Engine) ActiveSessions(ctx context.Context) Result {
	sessions, err := e.sessions.ListByStatus(ctx, models.SessionStatusActive)
	if err != nil {
		return internalError("active sessions", err)
	}
	return ok("Active sessions fetched", summarize(sessions))
}

func (e *Engine) AllSessions(ctx context.Context) Result {
	sessions, err := e.sessions.ListByStatus(ctx, "")
	if err != nil {
		return internalError("all sessions", err)
	}
	return ok("All sessions fetched", summarize(sessions))
}

// GetSession looks up one session by id.
func (e *Engine) GetSession(ctx context.Context, sessionID string) Result {
	session, err := e.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return internalError("get session", err)
	}
	if session == nil {
		return fail(404, "Attendance session not found")
	}
	return ok("Attendance session fetched", session)
}

// DaySessions returns the ended sessions of a course for one calendar
// day, most recent first; the export formatter consumes this.
func (e *Engine) DaySessions(ctx context.Context, courseID string, date time.Time) Result {
	if date.IsZero() {
		date = time.Now()
	}
	from, to := dayWindow(date)

	sessions, err := e.sessions.ListEndedInWindow(ctx, courseID, from, to)
	if err != nil {
		return internalError("day sessions", err)
	}
	if len(sessions) == 0 {
		return fail(404, "No ended attendance sessions for this day")
	}
	return ok("Sessions fetched", sessions)
}

func summarize(sessions []models.AttendanceSession) []SessionSummary {
	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, SessionSummary{
			AttendanceSession: s,
			AttendanceCount:   len(s.AttendedStudents),
		})
	}
	return summaries
}
