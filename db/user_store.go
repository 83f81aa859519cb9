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

// UserStore is the Mongo-backed implementation of the gamification engine's
// user seam plus the user queries the HTTP layer needs.
type UserStore struct {
	coll *mongo.Collection
}

// NewUserStore returns a store over the users collection.
func NewUserStore() *UserStore {
	return &UserStore{coll: MongoDatabase.Collection("users")}
}

// GetUser loads one user aggregate by id.
func (s *UserStore) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, gamification.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// PutUser writes the whole aggregate back in a single replace, so the domain
// buckets can never land without the matching weightedXp update.
func (s *UserStore) PutUser(ctx context.Context, user *models.User) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if res.MatchedCount == 0 {
		return gamification.ErrUserNotFound
	}
	return nil
}

// TopUsers runs one leaderboard page query. Sorting is descending by the
// score field with _id ascending as tiebreak, so pagination is stable.
func (s *UserStore) TopUsers(ctx context.Context, q gamification.TopQuery) ([]models.User, error) {
	filter := bson.M{}
	sortField := "weightedXp"
	if q.School != "" {
		filter["school"] = q.School
	}
	if q.Domain != "" {
		sortField = "domainStats." + string(q.Domain)
		filter[sortField] = bson.M{"$gt": 0}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(q.Limit))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}
	return users, nil
}

// CountOutranking counts users with strictly greater weighted XP. An empty
// school counts globally.
func (s *UserStore) CountOutranking(ctx context.Context, school string, weightedXP int) (int, error) {
	filter := bson.M{"weightedXp": bson.M{"$gt": weightedXP}}
	if school != "" {
		filter["school"] = school
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count outranking users: %w", err)
	}
	return int(n), nil
}

// FindByEmail loads a user by email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, gamification.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// ExistsByEmailOrUsername reports whether a user already claimed either key.
func (s *UserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"email": email},
		{"username": username},
	}})
	if err != nil {
		return false, fmt.Errorf("failed to check duplicates: %w", err)
	}
	return n > 0, nil
}

// FindByResetToken loads a user holding an unexpired password reset token.
func (s *UserStore) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{
		"resetPasswordToken":  token,
		"resetPasswordExpire": bson.M{"$gt": now},
	}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, gamification.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// InsertUser creates a new user and returns its id.
func (s *UserStore) InsertUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert user: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// CountUsers counts users created after since; a zero since counts all.
func (s *UserStore) CountUsers(ctx context.Context, since time.Time) (int, error) {
	filter := bson.M{}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return int(n), nil
}

// EmailsByAudience lists recipient emails for an admin broadcast filtered by
// school or country; both empty means everyone.
func (s *UserStore) EmailsByAudience(ctx context.Context, school, country string) ([]string, error) {
	filter := bson.M{}
	if school != "" {
		filter["school"] = school
	}
	if country != "" {
		filter["country"] = country
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"email": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query recipients: %w", err)
	}
	defer cursor.Close(ctx)

	var emails []string
	for cursor.Next(ctx) {
		var doc struct {
			Email string `bson:"email"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode recipient: %w", err)
		}
		emails = append(emails, doc.Email)
	}
	return emails, cursor.Err()
}
