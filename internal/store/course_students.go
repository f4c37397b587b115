package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chun-Lin-Huang/class/internal/models"
)

// CourseStudentStore holds the enrollment links between courses and
// students; the engine only reads from it (roster store).
type CourseStudentStore struct {
	links    *mongo.Collection
	students *mongo.Collection
}

func NewCourseStudentStore(db *mongo.Database) *CourseStudentStore {
	return &CourseStudentStore{
		links:    db.Collection("course_students"),
		students: db.Collection("students"),
	}
}

// Enroll is idempotent: enrolling an already-enrolled student keeps the
// original link.
func (s *CourseStudentStore) Enroll(ctx context.Context, courseID, studentID primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.links.UpdateOne(
		ctx,
		bson.M{"courseId": courseID, "studentId": studentID},
		bson.M{"$setOnInsert": bson.M{
			"courseId":   courseID,
			"studentId":  studentID,
			"enrolledAt": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *CourseStudentStore) Remove(ctx context.Context, courseID, studentID primitive.ObjectID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.links.DeleteOne(ctx, bson.M{"courseId": courseID, "studentId": studentID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListStudents resolves the enrollment links of a course into roster
// documents, ordered by student number.
func (s *CourseStudentStore) ListStudents(ctx context.Context, courseID string) ([]models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.links.Find(ctx, bson.M{"courseId": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []models.CourseStudent
	if err := cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []models.Student{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.StudentID)
	}

	stuCursor, err := s.students.Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "studentId", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer stuCursor.Close(ctx)

	var students []models.Student
	if err := stuCursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
