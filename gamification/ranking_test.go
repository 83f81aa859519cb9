package gamification

import (
	"context"
	"errors"
	"testing"

	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTopGlobalOrdering(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{Name: "Alice", WeightedXP: 500})
	store.addUser(models.User{Name: "Bob", WeightedXP: 900})
	store.addUser(models.User{Name: "Carol", WeightedXP: 200})

	ranker := NewRanker(store)

	entries, err := ranker.TopGlobal(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("TopGlobal failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	want := []string{"Bob", "Alice", "Carol"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, entries[i].Name)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("Position %d: expected rank %d, got %d", i, i+1, entries[i].Rank)
		}
	}
}

func TestTopGlobalDomainFilterExcludesZeroBuckets(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{Name: "Alice", WeightedXP: 500, DomainStats: models.DomainStats{STEM: 300}})
	store.addUser(models.User{Name: "Bob", WeightedXP: 900, DomainStats: models.DomainStats{Arts: 900}})
	store.addUser(models.User{Name: "Carol", WeightedXP: 400, DomainStats: models.DomainStats{STEM: 400}})

	ranker := NewRanker(store)

	entries, err := ranker.TopGlobal(context.Background(), 10, "STEM")
	if err != nil {
		t.Fatalf("TopGlobal failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 STEM entries, got %d", len(entries))
	}
	if entries[0].Name != "Carol" || entries[1].Name != "Alice" {
		t.Errorf("Expected Carol then Alice by STEM bucket, got %s then %s", entries[0].Name, entries[1].Name)
	}
}

func TestTopGlobalUnknownDomain(t *testing.T) {
	ranker := NewRanker(newMemStore())

	if _, err := ranker.TopGlobal(context.Background(), 10, "Astrology"); !errors.Is(err, ErrUnknownDomain) {
		t.Errorf("Expected ErrUnknownDomain, got %v", err)
	}
}

func TestTopGlobalAllMeansNoFilter(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{Name: "Alice", WeightedXP: 500})

	ranker := NewRanker(store)

	entries, err := ranker.TopGlobal(context.Background(), 10, "all")
	if err != nil {
		t.Fatalf("TopGlobal failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry with no filter, got %d", len(entries))
	}
}

func TestTopForSchool(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{Name: "Alice", School: "Northside High", WeightedXP: 500})
	store.addUser(models.User{Name: "Bob", School: "Westview Academy", WeightedXP: 900})
	store.addUser(models.User{Name: "Carol", School: "Northside High", WeightedXP: 400})

	ranker := NewRanker(store)

	entries, err := ranker.TopForSchool(context.Background(), "Northside High", 10, "")
	if err != nil {
		t.Fatalf("TopForSchool failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries for school, got %d", len(entries))
	}
	if entries[0].Name != "Alice" || entries[0].Rank != 1 {
		t.Errorf("Expected Alice at rank 1, got %s at rank %d", entries[0].Name, entries[0].Rank)
	}
}

func TestTopGlobalLimit(t *testing.T) {
	store := newMemStore()
	for i := 0; i < 5; i++ {
		store.addUser(models.User{WeightedXP: 100 * (i + 1)})
	}

	ranker := NewRanker(store)

	entries, err := ranker.TopGlobal(context.Background(), 3, "")
	if err != nil {
		t.Fatalf("TopGlobal failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected limit to cap at 3, got %d", len(entries))
	}
}

func TestRankOfCountBased(t *testing.T) {
	store := newMemStore()
	store.addUser(models.User{School: "Northside High", WeightedXP: 900})
	store.addUser(models.User{School: "Westview Academy", WeightedXP: 700})
	target := store.addUser(models.User{School: "Northside High", WeightedXP: 500})
	store.addUser(models.User{School: "Northside High", WeightedXP: 200})

	ranker := NewRanker(store)

	ranks, err := ranker.RankOf(context.Background(), target)
	if err != nil {
		t.Fatalf("RankOf failed: %v", err)
	}
	if ranks.GlobalRank != 3 {
		t.Errorf("Expected global rank 3, got %d", ranks.GlobalRank)
	}
	if ranks.SchoolRank != 2 {
		t.Errorf("Expected school rank 2, got %d", ranks.SchoolRank)
	}
}

func TestRankOfTiesShareRank(t *testing.T) {
	store := newMemStore()
	a := store.addUser(models.User{WeightedXP: 500})
	b := store.addUser(models.User{WeightedXP: 500})

	ranker := NewRanker(store)

	ranksA, err := ranker.RankOf(context.Background(), a)
	if err != nil {
		t.Fatalf("RankOf failed: %v", err)
	}
	ranksB, err := ranker.RankOf(context.Background(), b)
	if err != nil {
		t.Fatalf("RankOf failed: %v", err)
	}
	if ranksA.GlobalRank != 1 || ranksB.GlobalRank != 1 {
		t.Errorf("Expected tied users to share rank 1, got %d and %d", ranksA.GlobalRank, ranksB.GlobalRank)
	}
}

func TestRankOfUserNotFound(t *testing.T) {
	ranker := NewRanker(newMemStore())

	_, err := ranker.RankOf(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
