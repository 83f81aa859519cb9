package db

import (
	"context"
	"fmt"

	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LocationStore serves the country/school directory behind registration and
// school leaderboards.
type LocationStore struct {
	countries *mongo.Collection
	schools   *mongo.Collection
}

// NewLocationStore returns a store over the countries and schools collections.
func NewLocationStore() *LocationStore {
	return &LocationStore{
		countries: MongoDatabase.Collection("countries"),
		schools:   MongoDatabase.Collection("schools"),
	}
}

// ListCountries returns every country, alphabetical by name.
func (s *LocationStore) ListCountries(ctx context.Context) ([]models.Country, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.countries.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer cursor.Close(ctx)

	var countries []models.Country
	if err := cursor.All(ctx, &countries); err != nil {
		return nil, fmt.Errorf("failed to decode countries: %w", err)
	}
	return countries, nil
}

// SchoolsByCountry lists a country's schools, alphabetical by name.
func (s *LocationStore) SchoolsByCountry(ctx context.Context, country string) ([]models.School, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.schools.Find(ctx, bson.M{"country": country}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query schools: %w", err)
	}
	defer cursor.Close(ctx)

	var schools []models.School
	if err := cursor.All(ctx, &schools); err != nil {
		return nil, fmt.Errorf("failed to decode schools: %w", err)
	}
	return schools, nil
}

// InsertCountry creates a country and returns its id. The unique name index
// rejects duplicates.
func (s *LocationStore) InsertCountry(ctx context.Context, country *models.Country) (primitive.ObjectID, error) {
	res, err := s.countries.InsertOne(ctx, country)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert country: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// InsertSchool creates a school and returns its id.
func (s *LocationStore) InsertSchool(ctx context.Context, school *models.School) (primitive.ObjectID, error) {
	res, err := s.schools.InsertOne(ctx, school)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert school: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}
