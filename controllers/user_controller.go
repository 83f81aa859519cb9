package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"learnhub/gamification"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUserProfile returns the current user's aggregate with live ranks
func GetUserProfile(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	// Ranks are recomputed per request; the stored fields are display caches.
	ranks, err := ranker.RankOf(ctx, userID)
	if err != nil {
		log.Printf("Rank computation failed for %s: %v", userID.Hex(), err)
	} else {
		user.GlobalRank = ranks.GlobalRank
		user.SchoolRank = ranks.SchoolRank
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfileRequest is the profile update payload
type UpdateProfileRequest struct {
	Name          string   `json:"name"`
	Interests     []string `json:"interests"`
	LearningStyle string   `json:"learningStyle"`
	School        string   `json:"school"`
}

// UpdateUserProfile applies partial profile edits
func UpdateUserProfile(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.LearningStyle != "" {
		user.LearningStyle = req.LearningStyle
	}
	if req.School != "" {
		// School transfer is allowed; school rank follows the new school on
		// the next profile read.
		user.School = req.School
	}
	user.UpdatedAt = time.Now()

	if err := users.PutUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID.Hex(),
		"name":          user.Name,
		"email":         user.Email,
		"interests":     user.Interests,
		"learningStyle": user.LearningStyle,
		"school":        user.School,
		"xp":            user.XP,
		"level":         user.Level,
		"role":          user.Role,
		"avatarUrl":     user.AvatarURL,
	})
}
