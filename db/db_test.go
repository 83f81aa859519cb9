package db

import (
	"testing"

	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestExtractDBName(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"mongodb://localhost:27017/learnhub", "learnhub"},
		{"mongodb://localhost:27017/custom", "custom"},
		{"mongodb://localhost:27017", "learnhub"},
		{"mongodb://localhost:27017/", "learnhub"},
	}

	for _, tt := range tests {
		if got := extractDBName(tt.uri); got != tt.expected {
			t.Errorf("extractDBName(%q) = %q, want %q", tt.uri, got, tt.expected)
		}
	}
}

func TestUserIndexModelsCoverEveryDomain(t *testing.T) {
	indexed := make(map[string]bool)
	for _, m := range userIndexModels() {
		keys, ok := m.Keys.(bson.D)
		if !ok || len(keys) == 0 {
			t.Fatalf("Index model with unexpected keys: %+v", m.Keys)
		}
		indexed[keys[0].Key] = true
	}

	for _, d := range models.Domains {
		if !indexed["domainStats."+string(d)] {
			t.Errorf("Missing index on domainStats.%s", d)
		}
	}
	for _, field := range []string{"email", "username", "weightedXp", "progressionScore", "school"} {
		if !indexed[field] {
			t.Errorf("Missing index on %s", field)
		}
	}
}
