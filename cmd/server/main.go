package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"learnhub/config"
	"learnhub/controllers"
	"learnhub/db"
	"learnhub/middlewares"
	"learnhub/routes"
	"learnhub/services"
	"learnhub/utils"
	"learnhub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(cfg.JWT.Expiry)

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}
	cancel()

	if err := services.InitAuraService(cfg); err != nil {
		log.Fatalf("Failed to initialize AURA service: %v", err)
	}
	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	controllers.Init(cfg)

	// Seed sample learners for local development
	utils.PopulateTestUsers()

	router := setupRouter()
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for the location directory (registration dropdowns)
	router.GET("/locations/countries", routes.GetCountriesRouteHandler)
	router.GET("/locations/schools/:country", routes.GetSchoolsByCountryRouteHandler)

	// Public routes for authentication
	router.POST("/auth/register", routes.RegisterRouteHandler)
	router.POST("/auth/login", routes.LoginRouteHandler)
	router.POST("/auth/forgotPassword", routes.ForgotPasswordRouteHandler)
	router.POST("/auth/resetPassword", routes.ResetPasswordRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/profile", routes.GetProfileRouteHandler)
		auth.PUT("/user/profile", routes.UpdateProfileRouteHandler)
		auth.GET("/user/rank", routes.GetUserRankRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		auth.POST("/lessons", routes.CreateLessonRouteHandler)
		auth.GET("/lessons", routes.GetMyLessonsRouteHandler)
		auth.DELETE("/lessons/:id", routes.DeleteLessonRouteHandler)
		auth.PUT("/lessons/:id/complete", routes.CompleteLessonRouteHandler)
	}

	// Live progress feed does its own token handling (query param fallback
	// for browser WebSocket clients)
	router.GET("/ws/progress", websocket.ProgressWebSocketHandler)

	// Admin routes (JWT auth + RBAC)
	admin := router.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.GET("/stats", middlewares.RBACMiddleware("stats", "read"), routes.GetSystemStatsRouteHandler)
		admin.POST("/broadcast", middlewares.RBACMiddleware("announcement", "send"), routes.BroadcastAnnouncementRouteHandler)
		admin.POST("/countries", middlewares.RBACMiddleware("location", "write"), routes.AddCountryRouteHandler)
		admin.POST("/schools", middlewares.RBACMiddleware("location", "write"), routes.AddSchoolRouteHandler)
	}

	return router
}
