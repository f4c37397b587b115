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

type StudentStore struct {
	col *mongo.Collection
}

func NewStudentStore(db *mongo.Database) *StudentStore {
	return &StudentStore{col: db.Collection("students")}
}

// FindByID accepts either the document id or the school-issued student
// number, since callers arrive with both forms.
func (s *StudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"studentId": id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filter = bson.M{"$or": []bson.M{{"_id": oid}, {"studentId": id}}}
	}

	var student models.Student
	err := s.col.FindOne(ctx, filter).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "studentId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentStore) Create(ctx context.Context, student *models.Student) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, student)
	if err != nil {
		return err
	}
	student.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpsertByStudentID creates or refreshes the roster entry keyed by the
// school-issued student number and returns the stored document.
func (s *StudentStore) UpsertByStudentID(ctx context.Context, student *models.Student) (*models.Student, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	set := bson.M{
		"name":      student.Name,
		"updatedAt": now,
	}
	if student.Department != "" {
		set["department"] = student.Department
	}
	if student.Grade != "" {
		set["grade"] = student.Grade
	}
	if student.Class != "" {
		set["class"] = student.Class
	}
	if student.Email != "" {
		set["email"] = student.Email
	}

	var stored models.Student
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"studentId": student.StudentID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"studentId": student.StudentID, "absences": 0, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
