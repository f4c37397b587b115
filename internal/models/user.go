package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// StudentInfo is the student profile embedded on a user account.
type StudentInfo struct {
	SID        string `bson:"sid,omitempty" json:"sid,omitempty"`
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
	Grade      string `bson:"grade,omitempty" json:"grade,omitempty"`
	Class      string `bson:"class,omitempty" json:"class,omitempty"`
	Email      string `bson:"email,omitempty" json:"email,omitempty"`
	Absences   int    `bson:"absences" json:"absences"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserName    string             `bson:"userName" json:"userName"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"`
	StudentInfo *StudentInfo       `bson:"studentInfo,omitempty" json:"studentInfo,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
