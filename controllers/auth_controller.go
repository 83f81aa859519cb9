package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"learnhub/gamification"
	"learnhub/models"
	"learnhub/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Name      string   `json:"name" binding:"required"`
	Username  string   `json:"username" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required"`
	Country   string   `json:"country" binding:"required"`
	School    string   `json:"school" binding:"required"`
	Interests []string `json:"interests"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new learner account
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required", "details": err.Error()})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}
	if len(req.Interests) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least 3 interests"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		log.Printf("Duplicate check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during registration"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email or username already exists"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during registration"})
		return
	}

	now := time.Now()
	user := &models.User{
		Name:      req.Name,
		Username:  username,
		Email:     email,
		Password:  hashed,
		Country:   req.Country,
		School:    req.School,
		Interests: req.Interests,
		Level:     1,
		Role:      "student",
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := users.InsertUser(ctx, user)
	if err != nil {
		log.Printf("Failed to insert user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during registration"})
		return
	}

	go func() {
		if err := utils.SendWelcomeEmail(cfg, email, req.Name); err != nil {
			log.Printf("Welcome email failed: %v", err)
		}
	}()

	token, err := utils.GenerateJWTToken(id.Hex(), email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    id.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

// Login authenticates a learner and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID.Hex(),
		"name":      user.Name,
		"email":     user.Email,
		"token":     token,
		"interests": user.Interests,
		"xp":        user.XP,
		"level":     user.Level,
		"role":      user.Role,
	})
}

// ForgotPassword issues a reset token and mails it to the user
func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gamification.ErrUserNotFound) {
			// Same response either way, so the endpoint cannot be used to
			// enumerate registered emails.
			c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset link has been sent"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	token, err := utils.GenerateRandomToken(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	user.ResetPasswordToken = token
	user.ResetPasswordExpire = time.Now().Add(time.Hour)
	if err := users.PutUser(ctx, user); err != nil {
		log.Printf("Failed to store reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	go func() {
		if err := utils.SendPasswordResetEmail(cfg, user.Email, token); err != nil {
			log.Printf("Password reset email failed: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "If that email is registered, a reset link has been sent"})
}

// ResetPassword consumes a reset token and sets a new password
func ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and password are required"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := users.FindByResetToken(ctx, req.Token, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	user.Password = hashed
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = time.Time{}
	user.UpdatedAt = time.Now()
	if err := users.PutUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
