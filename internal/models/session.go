package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SessionStatusActive = "active"
	SessionStatusEnded  = "ended"

	AttendanceModeCode   = "code"
	AttendanceModeManual = "manual"

	// ManualCodePrefix marks session codes issued for manual roll-call
	// so they can never collide with the 6-digit check-in codes.
	ManualCodePrefix = "MANUAL_"
)

// SessionEntry is one student's mark inside a session list. Entries are
// append-only within a list; re-marking a student removes the old entry
// and appends a fresh one, so list order reflects marking order.
type SessionEntry struct {
	StudentID   string     `bson:"studentId" json:"studentId"`
	UserName    string     `bson:"userName" json:"userName"`
	CheckInTime *time.Time `bson:"checkInTime,omitempty" json:"checkInTime,omitempty"`
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

type AttendanceSession struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CourseID         primitive.ObjectID `bson:"courseId" json:"courseId"`
	CourseName       string             `bson:"courseName" json:"courseName"`
	SessionCode      string             `bson:"sessionCode" json:"sessionCode"`
	StartTime        time.Time          `bson:"startTime" json:"startTime"`
	EndTime          *time.Time         `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Status           string             `bson:"status" json:"status"`
	AttendedStudents []SessionEntry     `bson:"attendedStudents" json:"attendedStudents"`
	AbsentStudents   []SessionEntry     `bson:"absentStudents" json:"absentStudents"`
	ExcusedStudents  []SessionEntry     `bson:"excusedStudents" json:"excusedStudents"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DayWindow returns the [start, end) calendar-day window of the session's
// start time, used for check-in dedup and per-day queries.
func (s *AttendanceSession) DayWindow() (time.Time, time.Time) {
	y, m, d := s.StartTime.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.StartTime.Location())
	return start, start.AddDate(0, 0, 1)
}
