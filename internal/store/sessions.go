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

type SessionStore struct {
	col *mongo.Collection
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{col: db.Collection("attendance_sessions")}
}

func (s *SessionStore) Create(ctx context.Context, session *models.AttendanceSession) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.col.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	session.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *SessionStore) FindByID(ctx context.Context, id string) (*models.AttendanceSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var session models.AttendanceSession
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActiveByCode resolves a check-in code to its active session. When
// two active sessions share a code the most recently started one wins.
func (s *SessionStore) FindActiveByCode(ctx context.Context, code string) (*models.AttendanceSession, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var session models.AttendanceSession
	err := s.col.FindOne(
		ctx,
		bson.M{"sessionCode": code, "status": models.SessionStatusActive},
		options.FindOne().SetSort(bson.D{{Key: "startTime", Value: -1}}),
	).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// End marks the session ended and stamps endTime, returning the updated
// document or (nil, nil) when the id is unknown. Ending an already-ended
// session just refreshes endTime.
func (s *SessionStore) End(ctx context.Context, id string, endTime time.Time) (*models.AttendanceSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var session models.AttendanceSession
	err = s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"status":    models.SessionStatusEnded,
			"endTime":   endTime,
			"updatedAt": endTime,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Save replaces the whole session document; used after the attendance
// lists are rewritten in memory.
func (s *SessionStore) Save(ctx context.Context, session *models.AttendanceSession) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	session.UpdatedAt = time.Now()
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	return err
}

// ListByStatus returns sessions sorted by startTime descending; an empty
// status lists everything.
func (s *SessionStore) ListByStatus(ctx context.Context, status string) ([]models.AttendanceSession, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.AttendanceSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListEndedInWindow returns the ended sessions of a course whose
// startTime falls in [from, to), most recent first.
func (s *SessionStore) ListEndedInWindow(ctx context.Context, courseID string, from, to time.Time) ([]models.AttendanceSession, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.col.Find(
		ctx,
		bson.M{
			"courseId":  oid,
			"status":    models.SessionStatusEnded,
			"startTime": bson.M{"$gte": from, "$lt": to},
		},
		options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.AttendanceSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
