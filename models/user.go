package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a learner entity. It is the single mutable aggregate the
// gamification engine reads and writes.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`

	// Demographics
	Country string `bson:"country" json:"country"`
	School  string `bson:"school" json:"school"`

	// Personalization
	Interests     []string `bson:"interests" json:"interests"`
	LearningStyle string   `bson:"learningStyle" json:"learningStyle"`

	// Gamification state. XP is the raw total; WeightedXP is the
	// fairness-normalized total used for leveling and ranking.
	XP               int         `bson:"xp" json:"xp"`
	WeightedXP       int         `bson:"weightedXp" json:"weightedXp"`
	ProgressionScore int         `bson:"progressionScore" json:"progressionScore"`
	Level            int         `bson:"level" json:"level"`
	Streak           int         `bson:"streak" json:"streak"`
	LastActive       time.Time   `bson:"lastActive" json:"lastActive"`
	DomainStats      DomainStats `bson:"domainStats" json:"domainStats"`

	// Display caches, repopulated at read time from the ranking queries.
	// Never used as a ranking source.
	GlobalRank int `bson:"globalRank" json:"globalRank"`
	SchoolRank int `bson:"schoolRank" json:"schoolRank"`

	// Progress tracking
	CompletedLessons []primitive.ObjectID `bson:"completedLessons" json:"completedLessons"`
	LessonsStarted   int                  `bson:"lessonsStarted" json:"lessonsStarted"`
	QuizzesTaken     int                  `bson:"quizzesTaken" json:"quizzesTaken"`
	AverageMastery   float64              `bson:"averageMastery" json:"averageMastery"`

	Role       string `bson:"role" json:"role"`
	AvatarURL  string `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	IsVerified bool   `bson:"isVerified" json:"isVerified"`

	ResetPasswordToken  string    `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire time.Time `bson:"resetPasswordExpire,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasCompleted reports whether the lesson was already marked completed for
// this user. The completion controller uses it to keep awards once-only.
func (u *User) HasCompleted(lessonID primitive.ObjectID) bool {
	for _, id := range u.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
