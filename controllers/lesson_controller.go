package controllers

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"learnhub/gamification"
	"learnhub/models"
	"learnhub/services"
	"learnhub/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateLessonRequest is the lesson generation payload
type CreateLessonRequest struct {
	Title     string   `json:"title" binding:"required"`
	Topic     string   `json:"topic"`
	Content   string   `json:"content" binding:"required"`
	MediaURLs []string `json:"mediaUrls"`
}

// CompleteLessonRequest is the completion payload
type CompleteLessonRequest struct {
	XPEarned     int     `json:"xpEarned"`
	MasteryScore float64 `json:"masteryScore"`
}

// CreateLesson generates a new lesson from uploaded material via AURA
func CreateLesson(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	user, err := users.GetUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	interest := "Pop Culture"
	if len(user.Interests) > 0 {
		interest = user.Interests[rand.Intn(len(user.Interests))]
	}

	topic := req.Topic
	if topic == "" {
		topic = req.Title
	}

	generated, err := services.GenerateLesson(ctx, services.GenerationParams{
		Topic:        topic,
		RawContent:   req.Content,
		UserInterest: interest,
		Difficulty:   "intermediate",
	})
	if err != nil {
		log.Printf("Lesson generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate lesson"})
		return
	}

	now := time.Now()
	lesson := &models.Lesson{
		UserID:               userID,
		Title:                generated.Title,
		Topic:                topic,
		InterestUsed:         interest,
		Content:              req.Content,
		MediaURLs:            req.MediaURLs,
		Difficulty:           "intermediate",
		Domain:               models.Domain(generated.Domain),
		DifficultyMultiplier: generated.DifficultyMultiplier,
		SourceType:           "text",
		Sections:             generated.Sections,
		Quiz:                 generated.Quiz,
		XPReward:             generated.XPReward,
		EstimatedTime:        generated.EstimatedTime,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	id, err := lessons.InsertLesson(ctx, lesson)
	if err != nil {
		log.Printf("Failed to insert lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lesson"})
		return
	}
	lesson.ID = id

	user.LessonsStarted++
	user.UpdatedAt = now
	if err := users.PutUser(ctx, user); err != nil {
		log.Printf("Failed to bump lessonsStarted: %v", err)
	}

	c.JSON(http.StatusCreated, lesson)
}

// GetMyLessons lists the current user's lessons, newest first
func GetMyLessons(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := lessons.FindByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching lessons"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteLesson removes one of the current user's lessons
func DeleteLesson(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	lessonID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lesson, err := lessons.GetLesson(ctx, lessonID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if lesson.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := lessons.DeleteLesson(ctx, lessonID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson removed"})
}

// CompleteLesson marks a lesson completed and awards XP. Awards are
// once-only per lesson, and the raw XP is clamped to the lesson's defined
// reward before it reaches the award engine.
func CompleteLesson(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	lessonID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson id"})
		return
	}

	var req CompleteLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lesson, err := lessons.GetLesson(ctx, lessonID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if lesson.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}
	if lesson.IsCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson already completed"})
		return
	}

	user, err := users.GetUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.HasCompleted(lessonID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson already completed"})
		return
	}

	mastery := req.MasteryScore
	if mastery <= 0 || mastery > 100 {
		mastery = 100
	}

	// Conditional flip of isCompleted is the authoritative dedup: of two
	// racing completions only one can match the update filter, so the award
	// below runs at most once per lesson. The checks above just give nicer
	// errors on the common paths.
	now := time.Now()
	if err := lessons.MarkCompleted(ctx, lessonID, mastery, now); err != nil {
		if errors.Is(err, gamification.ErrLessonCompleted) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson already completed"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	// Quiz-scoring collaborator: fold this lesson's mastery into the running
	// average before the award, so the progression score sees fresh mastery.
	user.AverageMastery = (user.AverageMastery*float64(user.QuizzesTaken) + mastery) / float64(user.QuizzesTaken+1)
	user.QuizzesTaken++
	user.CompletedLessons = append(user.CompletedLessons, lessonID)
	user.UpdatedAt = now
	if err := users.PutUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	prevLevel := user.Level
	prevStreak := user.Streak

	rawXP := req.XPEarned
	if rawXP <= 0 || rawXP > lesson.XPReward {
		rawXP = lesson.XPReward
	}

	summary, err := engine.AwardXP(ctx, userID, rawXP, lessonID)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			log.Printf("XP award failed for %s: %v", userID.Hex(), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to award XP"})
		}
		return
	}

	publishProgress(userID, lesson, summary, prevLevel, prevStreak)

	c.JSON(http.StatusOK, gin.H{
		"message":          "Lesson completed",
		"xp":               summary.XP,
		"weightedXp":       summary.WeightedXP,
		"level":            summary.Level,
		"streak":           summary.Streak,
		"progressionScore": summary.ProgressionScore,
	})
}

// publishProgress pushes live events to connected clients after an award
func publishProgress(userID primitive.ObjectID, lesson *models.Lesson, summary gamification.Summary, prevLevel, prevStreak int) {
	websocket.BroadcastProgressEvent(models.ProgressEvent{
		Type:             "xp_awarded",
		UserID:           userID.Hex(),
		XP:               summary.XP,
		WeightedXP:       summary.WeightedXP,
		ProgressionScore: summary.ProgressionScore,
		Domain:           string(lesson.Domain),
		Timestamp:        time.Now(),
	})

	if summary.Level > prevLevel {
		websocket.BroadcastProgressEvent(models.ProgressEvent{
			Type:      "level_up",
			UserID:    userID.Hex(),
			Level:     summary.Level,
			Timestamp: time.Now(),
		})
	}
	if summary.Streak > prevStreak {
		websocket.BroadcastProgressEvent(models.ProgressEvent{
			Type:      "streak_extended",
			UserID:    userID.Hex(),
			Streak:    summary.Streak,
			Timestamp: time.Now(),
		})
	}
}
