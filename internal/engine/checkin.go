package engine

import (
	"context"
	"errors"
	"time"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// CheckIn records a student's code-based check-in. A student gets one
// record per course per calendar day; the day window comes from the
// session's start time.
//
// The duplicate guard is a lookup followed by an insert, so two
// concurrent check-ins can both pass it unless the strict unique index
// is enabled, in which case the second insert fails and is reported as
// already checked in.
func (e *Engine) CheckIn(ctx context.Context, studentID, attendanceCode string) Result {
	session, err := e.sessions.FindActiveByCode(ctx, attendanceCode)
	if err != nil {
		return internalError("check in", err)
	}
	if session == nil {
		return fail(400, "Invalid or expired attendance code")
	}

	from, to := session.DayWindow()
	existing, err := e.records.FindInWindow(ctx, session.CourseID, studentID, from, to)
	if err != nil {
		return internalError("check in", err)
	}
	if existing != nil {
		return fail(400, "You have already checked in today")
	}

	record := &models.AttendanceRecord{
		CourseID:       session.CourseID,
		StudentID:      studentID,
		AttendanceDate: session.StartTime,
		Status:         models.StatusPresent,
		CheckInTime:    time.Now(),
	}
	if err := e.records.Insert(ctx, record); err != nil {
		if errors.Is(err, models.ErrDuplicateRecord) {
			return fail(400, "You have already checked in today")
		}
		return internalError("check in", err)
	}
	return ok("Check-in successful", record)
}

// StudentRecords lists a student's check-in records, newest first,
// optionally restricted to one course.
func (e *Engine) StudentRecords(ctx context.Context, studentID, courseID string) Result {
	records, err := e.records.List(ctx, studentID, courseID)
	if err != nil {
		return internalError("student records", err)
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return ok("Attendance records fetched", records)
}
