package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CourseName string             `bson:"courseName" json:"courseName"`
	CourseCode string             `bson:"courseCode,omitempty" json:"courseCode,omitempty"`
	Teacher    string             `bson:"teacher,omitempty" json:"teacher,omitempty"`
	Semester   string             `bson:"semester,omitempty" json:"semester,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CourseStudent links an enrolled student to a course.
type CourseStudent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CourseID   primitive.ObjectID `bson:"courseId" json:"courseId"`
	StudentID  primitive.ObjectID `bson:"studentId" json:"studentId"`
	EnrolledAt time.Time          `bson:"enrolledAt" json:"enrolledAt"`
}
