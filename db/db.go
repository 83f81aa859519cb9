package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "learnhub"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "learnhub"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "learnhub"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	return nil
}

// EnsureIndexes creates the indexes the leaderboard queries depend on.
func EnsureIndexes(ctx context.Context) error {
	_, err := MongoDatabase.Collection("users").Indexes().CreateMany(ctx, userIndexModels())
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = MongoDatabase.Collection("lessons").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "domain", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create lesson indexes: %w", err)
	}

	_, err = MongoDatabase.Collection("countries").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create country indexes: %w", err)
	}

	_, err = MongoDatabase.Collection("schools").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "country", Value: 1}, {Key: "name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create school indexes: %w", err)
	}
	return nil
}

// userIndexModels lists the user collection indexes. Every domain bucket gets
// one, so domain leaderboards never fall back to collection scans.
func userIndexModels() []mongo.IndexModel {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "weightedXp", Value: -1}}},
		{Keys: bson.D{{Key: "progressionScore", Value: -1}}},
		{Keys: bson.D{{Key: "school", Value: 1}, {Key: "weightedXp", Value: -1}}},
	}
	for _, d := range models.Domains {
		indexes = append(indexes, mongo.IndexModel{
			Keys: bson.D{{Key: "domainStats." + string(d), Value: -1}},
		})
	}
	return indexes
}
