package engine

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// StatsSummary counts a course's check-in records by status. Late stays
// zero: the aggregation keeps the slot but no write path produces it.
type StatsSummary struct {
	Total   int64 `json:"total"`
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
}

// CourseStats aggregates check-in records for a course. With a
// sessionID the aggregation is restricted to that session's calendar
// day; an unknown sessionID falls back to the whole course.
func (e *Engine) CourseStats(ctx context.Context, courseID, sessionID string) Result {
	courseOID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return fail(400, "Invalid course ID")
	}

	var from, to *time.Time
	if sessionID != "" {
		session, err := e.sessions.FindByID(ctx, sessionID)
		if err != nil {
			return internalError("course stats", err)
		}
		if session != nil {
			f, t := session.DayWindow()
			from, to = &f, &t
		}
	}

	counts, err := e.records.CountByStatus(ctx, courseOID, from, to)
	if err != nil {
		return internalError("course stats", err)
	}

	summary := StatsSummary{
		Present: counts[models.StatusPresent],
		Absent:  counts[models.StatusAbsent],
		Late:    counts[models.StatusLate],
	}
	for _, n := range counts {
		summary.Total += n
	}
	return ok("Attendance statistics fetched", summary)
}
