package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"learnhub/utils"

	"github.com/gin-gonic/gin"
)

// GetSystemStats returns totals and 30-day growth for the admin dashboard
func GetSystemStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	monthAgo := time.Now().AddDate(0, 0, -30)

	totalUsers, err := users.CountUsers(ctx, time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}
	usersLastMonth, err := users.CountUsers(ctx, monthAgo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}
	totalLessons, err := lessons.CountLessons(ctx, time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}
	lessonsLastMonth, err := lessons.CountLessons(ctx, monthAgo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": gin.H{
			"total":  totalUsers,
			"growth": fmt.Sprintf("+%d", usersLastMonth),
		},
		"lessons": gin.H{
			"total":  totalLessons,
			"growth": fmt.Sprintf("+%d", lessonsLastMonth),
		},
		"systemStatus": "Healthy",
	})
}

// BroadcastRequest is the announcement payload
type BroadcastRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Message     string `json:"message" binding:"required"`
	FilterType  string `json:"filterType"` // "school", "country" or empty for all
	FilterValue string `json:"filterValue"`
}

// BroadcastAnnouncement emails an announcement to the selected audience
func BroadcastAnnouncement(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and message are required"})
		return
	}

	var school, country string
	switch req.FilterType {
	case "school":
		school = req.FilterValue
	case "country":
		country = req.FilterValue
	case "":
		// everyone
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "filterType must be school, country or empty"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	emails, err := users.EmailsByAudience(ctx, school, country)
	if err != nil {
		log.Printf("Failed to resolve broadcast audience: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	go func(recipients []string) {
		for _, email := range recipients {
			if err := utils.SendAnnouncementEmail(cfg, email, req.Subject, req.Message); err != nil {
				log.Printf("Announcement to %s failed: %v", email, err)
			}
		}
	}(emails)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Broadcast queued",
		"recipients": len(emails),
	})
}
