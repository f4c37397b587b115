package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

type RecordStore struct {
	col *mongo.Collection
}

func NewRecordStore(db *mongo.Database) *RecordStore {
	return &RecordStore{col: db.Collection("attendance_records")}
}

func (s *RecordStore) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	y, m, d := record.AttendanceDate.Date()
	record.AttendanceDay = time.Date(y, m, d, 0, 0, 0, 0, record.AttendanceDate.Location())

	res, err := s.col.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateRecord
	}
	if err != nil {
		return err
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindInWindow returns a student's record for a course with an
// attendanceDate inside [from, to), or (nil, nil) when none exists.
func (s *RecordStore) FindInWindow(ctx context.Context, courseID primitive.ObjectID, studentID string, from, to time.Time) (*models.AttendanceRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var record models.AttendanceRecord
	err := s.col.FindOne(ctx, bson.M{
		"courseId":       courseID,
		"studentId":      studentID,
		"attendanceDate": bson.M{"$gte": from, "$lt": to},
	}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns a student's records, optionally restricted to one course,
// newest attendance date first.
func (s *RecordStore) List(ctx context.Context, studentID, courseID string) ([]models.AttendanceRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"studentId": studentID}
	if courseID != "" {
		oid, err := primitive.ObjectIDFromHex(courseID)
		if err != nil {
			return []models.AttendanceRecord{}, nil
		}
		filter["courseId"] = oid
	}

	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "attendanceDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountByStatus groups a course's records by status. A non-nil window
// restricts the aggregation to records with attendanceDate in [from, to).
func (s *RecordStore) CountByStatus(ctx context.Context, courseID primitive.ObjectID, from, to *time.Time) (map[string]int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	match := bson.M{"courseId": courseID}
	if from != nil && to != nil {
		match["attendanceDate"] = bson.M{"$gte": *from, "$lt": *to}
	}

	cursor, err := s.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
