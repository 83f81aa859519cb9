package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Country is one entry in the location directory backing registration and
// school leaderboards. Name doubles as the reference key on schools.
type Country struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
	Code string             `bson:"code" json:"code"` // ISO code like NG, US
	Flag string             `bson:"flag" json:"flag"` // Emoji like 🇳🇬

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// School belongs to a country by name.
type School struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Country string             `bson:"country" json:"country"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
