package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"learnhub/gamification"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetLeaderboard returns the top learners, globally or per school, sorted by
// weighted XP or by a specific domain's bucket.
//
// Query params: type=global|school, school=<name>, domain=<domain|all>,
// limit=<n>.
func GetLeaderboard(c *gin.Context) {
	limit := gamification.DefaultLeaderboardSize
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	domain := c.Query("domain")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var entries []gamification.Entry
	var err error
	if c.Query("type") == "school" && c.Query("school") != "" {
		entries, err = ranker.TopForSchool(ctx, c.Query("school"), limit, domain)
	} else {
		entries, err = ranker.TopGlobal(ctx, limit, domain)
	}
	if err != nil {
		if errors.Is(err, gamification.ErrUnknownDomain) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown domain"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		}
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetUserRank returns the current user's count-based global and school ranks
func GetUserRank(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ranks, err := ranker.RankOf(ctx, userID)
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rank"})
		}
		return
	}

	c.JSON(http.StatusOK, ranks)
}
