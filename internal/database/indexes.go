package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the stores rely on. The unique
// check-in index is opt-in (strictCheckIn): without it, duplicate
// detection is lookup-before-insert only, and two concurrent check-ins
// for the same student and day can both land.
func EnsureIndexes(db *mongo.Database, strictCheckIn bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessions := db.Collection("attendance_sessions")
	_, err := sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionCode", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "courseId", Value: 1}, {Key: "startTime", Value: -1}}},
	})
	if err != nil {
		return err
	}

	records := db.Collection("attendance_records")
	if strictCheckIn {
		_, err = records.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "studentId", Value: 1},
				{Key: "courseId", Value: 1},
				{Key: "attendanceDay", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		})
	} else {
		_, err = records.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "studentId", Value: 1},
				{Key: "courseId", Value: 1},
				{Key: "attendanceDate", Value: 1},
			},
		})
	}
	if err != nil {
		return err
	}

	users := db.Collection("users")
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
