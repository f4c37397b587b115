package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Student struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	StudentID  string             `bson:"studentId" json:"studentId"`
	Name       string             `bson:"name" json:"name"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	Grade      string             `bson:"grade,omitempty" json:"grade,omitempty"`
	Class      string             `bson:"class,omitempty" json:"class,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Absences   int                `bson:"absences" json:"absences"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
