package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learnhub/gamification"
	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LessonStore is the Mongo-backed lesson collection access used by the
// lesson controllers and the award engine's metadata lookups.
type LessonStore struct {
	coll *mongo.Collection
}

// NewLessonStore returns a store over the lessons collection.
func NewLessonStore() *LessonStore {
	return &LessonStore{coll: MongoDatabase.Collection("lessons")}
}

// GetLesson loads one lesson by id.
func (s *LessonStore) GetLesson(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, gamification.ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	return &lesson, nil
}

// MarkCompleted flips a lesson to completed in one conditional update, so two
// racing completions can never both win: the filter only matches while
// isCompleted is still false.
func (s *LessonStore) MarkCompleted(ctx context.Context, id primitive.ObjectID, mastery float64, now time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "isCompleted": false},
		bson.M{"$set": bson.M{
			"isCompleted":  true,
			"masteryScore": mastery,
			"completedAt":  now,
			"updatedAt":    now,
		}})
	if err != nil {
		return fmt.Errorf("failed to complete lesson: %w", err)
	}
	if res.MatchedCount == 0 {
		return gamification.ErrLessonCompleted
	}
	return nil
}

// InsertLesson creates a new lesson and returns its id.
func (s *LessonStore) InsertLesson(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, lesson)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert lesson: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// DeleteLesson removes one lesson by id.
func (s *LessonStore) DeleteLesson(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	if res.DeletedCount == 0 {
		return gamification.ErrLessonNotFound
	}
	return nil
}

// FindByUser lists a user's lessons, newest first.
func (s *LessonStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Lesson, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer cursor.Close(ctx)

	var lessons []models.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}
	return lessons, nil
}

// CountLessons counts lessons created after since; a zero since counts all.
func (s *LessonStore) CountLessons(ctx context.Context, since time.Time) (int, error) {
	filter := bson.M{}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return int(n), nil
}
