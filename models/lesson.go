package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LessonSection is one generated segment of a lesson.
type LessonSection struct {
	Title        string   `bson:"title" json:"title"`
	Content      string   `bson:"content" json:"content"`
	VisualPrompt string   `bson:"visualPrompt,omitempty" json:"visualPrompt,omitempty"`
	KeyTakeaways []string `bson:"keyTakeaways,omitempty" json:"keyTakeaways,omitempty"`
}

// QuizQuestion is one generated assessment question.
type QuizQuestion struct {
	Question           string   `bson:"question" json:"question"`
	Options            []string `bson:"options" json:"options"`
	CorrectAnswerIndex int      `bson:"correctAnswerIndex" json:"correctAnswerIndex"`
	Explanation        string   `bson:"explanation" json:"explanation"`
	Difficulty         int      `bson:"difficulty" json:"difficulty"`
}

// Lesson defines a generated lesson entity. Domain and DifficultyMultiplier
// are assigned by the content classifier at creation time and are read-only
// inputs to the XP award engine afterwards.
type Lesson struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Title        string `bson:"title" json:"title"`
	Topic        string `bson:"topic" json:"topic"`
	InterestUsed string `bson:"interestUsed" json:"interestUsed"`
	CoverImage   string `bson:"coverImage,omitempty" json:"coverImage,omitempty"`

	// Pedagogical metadata. The multiplier is in [1.0, 1.5].
	Difficulty           string  `bson:"difficulty" json:"difficulty"`
	Domain               Domain  `bson:"domain" json:"domain"`
	DifficultyMultiplier float64 `bson:"difficultyMultiplier" json:"difficultyMultiplier"`

	Content    string   `bson:"content" json:"content"`
	SourceType string   `bson:"sourceType" json:"sourceType"`
	MediaURLs  []string `bson:"mediaUrls,omitempty" json:"mediaUrls,omitempty"`

	Sections []LessonSection `bson:"sections" json:"sections"`
	Quiz     []QuizQuestion  `bson:"quiz" json:"quiz"`

	// XPReward is the ceiling for any single award against this lesson.
	XPReward      int    `bson:"xpReward" json:"xpReward"`
	EstimatedTime string `bson:"estimatedTime" json:"estimatedTime"`

	IsCompleted  bool       `bson:"isCompleted" json:"isCompleted"`
	MasteryScore float64    `bson:"masteryScore" json:"masteryScore"`
	CompletedAt  *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
