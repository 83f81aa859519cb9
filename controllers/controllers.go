package controllers

import (
	"context"
	"time"

	"learnhub/config"
	"learnhub/db"
	"learnhub/gamification"
	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userStore is what the controllers need from the user collection, over and
// above the gamification seams. The Mongo store implements it; tests swap in
// fakes.
type userStore interface {
	gamification.LeaderboardStore
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	CountUsers(ctx context.Context, since time.Time) (int, error)
	EmailsByAudience(ctx context.Context, school, country string) ([]string, error)
}

type lessonStore interface {
	gamification.LessonStore
	MarkCompleted(ctx context.Context, id primitive.ObjectID, mastery float64, now time.Time) error
	InsertLesson(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error)
	DeleteLesson(ctx context.Context, id primitive.ObjectID) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Lesson, error)
	CountLessons(ctx context.Context, since time.Time) (int, error)
}

type locationStore interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	SchoolsByCountry(ctx context.Context, country string) ([]models.School, error)
	InsertCountry(ctx context.Context, country *models.Country) (primitive.ObjectID, error)
	InsertSchool(ctx context.Context, school *models.School) (primitive.ObjectID, error)
}

var (
	cfg       *config.Config
	users     userStore
	lessons   lessonStore
	locations locationStore
	engine    *gamification.Engine
	ranker    *gamification.Ranker
)

// Init wires the controllers to the stores and the gamification core. Must
// run after the MongoDB connection is established.
func Init(c *config.Config) {
	cfg = c
	users = db.NewUserStore()
	lessons = db.NewLessonStore()
	locations = db.NewLocationStore()
	engine = gamification.NewEngine(users, lessons)
	ranker = gamification.NewRanker(users)
}
