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

const storeTimeout = 5 * time.Second

// withTimeout bounds every store call so a stalled database cannot hang
// a request indefinitely.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

type CourseStore struct {
	col *mongo.Collection
}

func NewCourseStore(db *mongo.Database) *CourseStore {
	return &CourseStore{col: db.Collection("courses")}
}

// FindByID returns (nil, nil) when the id is unknown or not a valid
// object id, so callers treat both as not-found.
func (s *CourseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var course models.Course
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseStore) List(ctx context.Context) ([]models.Course, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *CourseStore) Create(ctx context.Context, course *models.Course) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	course.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies a partial patch and returns the updated course, or
// (nil, nil) when the course does not exist.
func (s *CourseStore) Update(ctx context.Context, id string, patch bson.M) (*models.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	patch["updatedAt"] = time.Now()
	var course models.Course
	err = s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
