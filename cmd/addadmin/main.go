package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"learnhub/config"
	"learnhub/db"
	"learnhub/models"
	"learnhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	email := flag.String("email", "", "Admin email (required)")
	password := flag.String("password", "", "Admin password (required for new accounts)")
	name := flag.String("name", "", "Admin name (required for new accounts)")
	role := flag.String("role", "admin", "Role: 'admin' or 'moderator'")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *email == "" {
		fmt.Println("Error: email is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *role != "admin" && *role != "moderator" {
		fmt.Println("Error: role must be 'admin' or 'moderator'")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.MongoClient.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := db.MongoDatabase.Collection("users")

	var existing models.User
	err = collection.FindOne(ctx, bson.M{"email": *email}).Decode(&existing)
	switch {
	case err == nil:
		// Existing user: promote in place
		_, err = collection.UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"role": *role, "updatedAt": time.Now()}})
		if err != nil {
			log.Fatalf("Failed to promote user: %v", err)
		}
		fmt.Printf("Promoted %s to %s\n", *email, *role)

	case err == mongo.ErrNoDocuments:
		if *password == "" || *name == "" {
			fmt.Println("Error: password and name are required to create a new account")
			os.Exit(1)
		}
		hashed, err := utils.HashPassword(*password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		now := time.Now()
		user := models.User{
			Name:      *name,
			Username:  *email,
			Email:     *email,
			Password:  hashed,
			Country:   "N/A",
			School:    "N/A",
			Level:     1,
			Role:      *role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := collection.InsertOne(ctx, user); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		fmt.Printf("Created %s account for %s\n", *role, *email)

	default:
		log.Fatalf("Failed to look up user: %v", err)
	}
}
