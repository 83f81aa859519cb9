package utils

import (
	"context"
	"time"

	"learnhub/db"
	"learnhub/gamification"
	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PopulateTestUsers inserts sample learners into the database for local
// development. Existing users are left untouched.
func PopulateTestUsers() {
	collection := db.MongoDatabase.Collection("users")

	users := []models.User{
		{
			ID:         primitive.NewObjectID(),
			Name:       "Alice Johnson",
			Username:   "alicej",
			Email:      "alice@example.com",
			Country:    "USA",
			School:     "Riverside High",
			Interests:  []string{"Anime", "Gaming", "Sci-Fi"},
			XP:         1200,
			WeightedXP: 1560,
			Streak:     4,
			DomainStats: models.DomainStats{
				STEM:     1100,
				Language: 460,
			},
			AverageMastery: 82,
			Role:           "student",
			CreatedAt:      time.Now(),
		},
		{
			ID:         primitive.NewObjectID(),
			Name:       "Bob Smith",
			Username:   "bobsmith",
			Email:      "bob@example.com",
			Country:    "Canada",
			School:     "Maplewood Academy",
			Interests:  []string{"Basketball", "History", "Music Production"},
			XP:         800,
			WeightedXP: 880,
			Streak:     1,
			DomainStats: models.DomainStats{
				Humanities: 600,
				General:    280,
			},
			AverageMastery: 71,
			Role:           "student",
			CreatedAt:      time.Now(),
		},
		{
			ID:         primitive.NewObjectID(),
			Name:       "Carol Davis",
			Username:   "carold",
			Email:      "carol@example.com",
			Country:    "UK",
			School:     "Riverside High",
			Interests:  []string{"K-Pop", "Cooking", "Marvel/DC"},
			XP:         350,
			WeightedXP: 420,
			Streak:     2,
			DomainStats: models.DomainStats{
				Arts:     300,
				Business: 120,
			},
			AverageMastery: 90,
			Role:           "student",
			CreatedAt:      time.Now(),
		},
	}

	for i := range users {
		users[i].Level = gamification.LevelFor(users[i].WeightedXP)
		users[i].ProgressionScore = gamification.ProgressionScore(
			users[i].WeightedXP, users[i].Streak, users[i].AverageMastery)
		users[i].LastActive = time.Now()

		filter := bson.M{"email": users[i].Email}
		if n, _ := collection.CountDocuments(context.Background(), filter); n == 0 {
			collection.InsertOne(context.Background(), users[i])
		}
	}

	populateLocations()
}

// populateLocations seeds the country/school directory matching the sample
// learners, so the registration dropdowns work out of the box.
func populateLocations() {
	countries := db.MongoDatabase.Collection("countries")
	schools := db.MongoDatabase.Collection("schools")
	now := time.Now()

	for _, c := range []models.Country{
		{Name: "USA", Code: "US", Flag: "🇺🇸", CreatedAt: now, UpdatedAt: now},
		{Name: "Canada", Code: "CA", Flag: "🇨🇦", CreatedAt: now, UpdatedAt: now},
		{Name: "UK", Code: "GB", Flag: "🇬🇧", CreatedAt: now, UpdatedAt: now},
	} {
		filter := bson.M{"name": c.Name}
		if n, _ := countries.CountDocuments(context.Background(), filter); n == 0 {
			countries.InsertOne(context.Background(), c)
		}
	}

	for _, s := range []models.School{
		{Name: "Riverside High", Country: "USA", CreatedAt: now, UpdatedAt: now},
		{Name: "Maplewood Academy", Country: "Canada", CreatedAt: now, UpdatedAt: now},
		{Name: "Riverside High", Country: "UK", CreatedAt: now, UpdatedAt: now},
	} {
		filter := bson.M{"name": s.Name, "country": s.Country}
		if n, _ := schools.CountDocuments(context.Background(), filter); n == 0 {
			schools.InsertOne(context.Background(), s)
		}
	}
}
