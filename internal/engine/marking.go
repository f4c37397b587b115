package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// ManualAttendance marks a student present or absent during manual
// roll-call. A re-mark removes the student's previous entry and appends
// a fresh one, so the student moves to the end of the target list and a
// present mark always carries a new check-in time.
func (e *Engine) ManualAttendance(ctx context.Context, sessionID, studentID, status string) Result {
	if status != models.StatusPresent && status != models.StatusAbsent {
		return fail(400, "Status must be present or absent")
	}

	session, err := e.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return internalError("manual attendance", err)
	}
	if session == nil {
		return fail(404, "Attendance session not found")
	}

	student, err := e.students.FindByID(ctx, studentID)
	if err != nil {
		return internalError("manual attendance", err)
	}
	if student == nil {
		return fail(404, "Student not found")
	}

	session.AttendedStudents = removeStudent(session.AttendedStudents, student.StudentID)
	session.AbsentStudents = removeStudent(session.AbsentStudents, student.StudentID)

	if status == models.StatusPresent {
		now := time.Now()
		session.AttendedStudents = append(session.AttendedStudents, models.SessionEntry{
			StudentID:   student.StudentID,
			UserName:    student.Name,
			CheckInTime: &now,
		})
	} else {
		session.AbsentStudents = append(session.AbsentStudents, models.SessionEntry{
			StudentID: student.StudentID,
			UserName:  student.Name,
		})
	}

	if err := e.sessions.Save(ctx, session); err != nil {
		return internalError("manual attendance", err)
	}
	return ok(fmt.Sprintf("Student %s marked as %s", student.Name, status), session)
}

// UpdateAttendanceStatus reassigns a student across the three session
// lists, used when editing a closed roll-call. Same remove-then-append
// rule as ManualAttendance, extended with the excused list and an
// optional note.
func (e *Engine) UpdateAttendanceStatus(ctx context.Context, sessionID, studentID, newStatus, notes string) Result {
	if newStatus != models.StatusPresent && newStatus != models.StatusAbsent && newStatus != models.StatusExcused {
		return fail(400, "Status must be present, absent or excused")
	}

	session, err := e.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return internalError("update attendance status", err)
	}
	if session == nil {
		return fail(404, "Attendance session not found")
	}

	student, err := e.students.FindByID(ctx, studentID)
	if err != nil {
		return internalError("update attendance status", err)
	}
	if student == nil {
		return fail(404, "Student not found")
	}

	session.AttendedStudents = removeStudent(session.AttendedStudents, student.StudentID)
	session.AbsentStudents = removeStudent(session.AbsentStudents, student.StudentID)
	session.ExcusedStudents = removeStudent(session.ExcusedStudents, student.StudentID)

	entry := models.SessionEntry{
		StudentID: student.StudentID,
		UserName:  student.Name,
		Notes:     notes,
	}
	switch newStatus {
	case models.StatusPresent:
		now := time.Now()
		entry.CheckInTime = &now
		session.AttendedStudents = append(session.AttendedStudents, entry)
	case models.StatusAbsent:
		session.AbsentStudents = append(session.AbsentStudents, entry)
	case models.StatusExcused:
		session.ExcusedStudents = append(session.ExcusedStudents, entry)
	}

	if err := e.sessions.Save(ctx, session); err != nil {
		return internalError("update attendance status", err)
	}
	return ok(fmt.Sprintf("Student %s status updated to %s", student.Name, newStatus), session)
}

// CourseStudents returns the roster of a course for manual roll-call.
func (e *Engine) CourseStudents(ctx context.Context, courseID string) Result {
	course, err := e.courses.FindByID(ctx, courseID)
	if err != nil {
		return internalError("course students", err)
	}
	if course == nil {
		return fail(404, "Course not found")
	}

	students, err := e.roster.ListStudents(ctx, courseID)
	if err != nil {
		return internalError("course students", err)
	}
	if students == nil {
		students = []models.Student{}
	}
	return ok("Course students fetched", students)
}

func removeStudent(entries []models.SessionEntry, studentID string) []models.SessionEntry {
	kept := entries[:0]
	for _, entry := range entries {
		if entry.StudentID != studentID {
			kept = append(kept, entry)
		}
	}
	return kept
}
