package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusExcused = "excused"
	StatusLate    = "late"
)

// AttendanceRecord is one student's code-based check-in for one calendar
// day. Records are written once and never updated.
type AttendanceRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CourseID       primitive.ObjectID `bson:"courseId" json:"courseId"`
	StudentID      string             `bson:"studentId" json:"studentId"`
	AttendanceDate time.Time          `bson:"attendanceDate" json:"attendanceDate"`
	Status         string             `bson:"status" json:"status"`
	CheckInTime    time.Time          `bson:"checkInTime" json:"checkInTime"`

	// AttendanceDay is AttendanceDate truncated to midnight; it backs the
	// optional unique check-in index and is not exposed over the API.
	AttendanceDay time.Time `bson:"attendanceDay" json:"-"`
}
