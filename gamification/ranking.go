package gamification

import (
	"context"

	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLeaderboardSize bounds leaderboard queries when the caller passes no
// explicit limit.
const DefaultLeaderboardSize = 50

// TopQuery describes one leaderboard page. An empty School means global; an
// empty Domain sorts by overall weighted XP.
type TopQuery struct {
	School string
	Domain models.Domain
	Limit  int
}

// LeaderboardStore is the read seam for ranking queries. TopUsers must return
// users sorted descending by the query's score field with user id as the
// ascending secondary key, filtered to bucket > 0 when a domain is set.
// CountOutranking counts users with strictly greater weighted XP, optionally
// restricted to a school.
type LeaderboardStore interface {
	UserStore
	TopUsers(ctx context.Context, q TopQuery) ([]models.User, error)
	CountOutranking(ctx context.Context, school string, weightedXP int) (int, error)
}

// Entry is one leaderboard row. Rank is 1-based and assigned by output
// position, never stored.
type Entry struct {
	Rank             int                `json:"rank"`
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Username         string             `json:"username"`
	Country          string             `json:"country"`
	School           string             `json:"school"`
	XP               int                `json:"xp"`
	WeightedXP       int                `json:"weightedXp"`
	Level            int                `json:"level"`
	AvatarURL        string             `json:"avatarUrl,omitempty"`
	DomainStats      models.DomainStats `json:"domainStats"`
	ProgressionScore int                `json:"progressionScore"`
}

// Ranks holds a single user's count-based ranks. Tied users share a rank.
type Ranks struct {
	GlobalRank int `json:"globalRank"`
	SchoolRank int `json:"schoolRank"`
}

// Ranker answers leaderboard and rank queries. It never mutates state and
// recomputes from current data on every call.
type Ranker struct {
	store LeaderboardStore
}

// NewRanker creates a ranker over the given store.
func NewRanker(store LeaderboardStore) *Ranker {
	return &Ranker{store: store}
}

// TopGlobal returns at most limit users sorted by weighted XP, or by the
// given domain's bucket when domain names one of the closed set. Users with
// zero XP in a requested domain are excluded, not ranked at 0.
func (r *Ranker) TopGlobal(ctx context.Context, limit int, domain string) ([]Entry, error) {
	return r.top(ctx, "", limit, domain)
}

// TopForSchool is TopGlobal restricted to one school.
func (r *Ranker) TopForSchool(ctx context.Context, school string, limit int, domain string) ([]Entry, error) {
	return r.top(ctx, school, limit, domain)
}

func (r *Ranker) top(ctx context.Context, school string, limit int, domain string) ([]Entry, error) {
	d, err := parseDomainFilter(domain)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	users, err := r.store.TopUsers(ctx, TopQuery{School: school, Domain: d, Limit: limit})
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(users))
	for i, u := range users {
		entries = append(entries, Entry{
			Rank:             i + 1,
			ID:               u.ID.Hex(),
			Name:             u.Name,
			Username:         u.Username,
			Country:          u.Country,
			School:           u.School,
			XP:               u.XP,
			WeightedXP:       u.WeightedXP,
			Level:            u.Level,
			AvatarURL:        u.AvatarURL,
			DomainStats:      u.DomainStats,
			ProgressionScore: u.ProgressionScore,
		})
	}
	return entries, nil
}

// RankOf returns the user's global and school ranks as
// 1 + count(users with strictly greater weighted XP). The count-based form
// stays correct for users far outside any top-N window.
func (r *Ranker) RankOf(ctx context.Context, userID primitive.ObjectID) (Ranks, error) {
	user, err := r.store.GetUser(ctx, userID)
	if err != nil {
		return Ranks{}, err
	}

	global, err := r.store.CountOutranking(ctx, "", user.WeightedXP)
	if err != nil {
		return Ranks{}, err
	}
	school, err := r.store.CountOutranking(ctx, user.School, user.WeightedXP)
	if err != nil {
		return Ranks{}, err
	}

	return Ranks{GlobalRank: global + 1, SchoolRank: school + 1}, nil
}

// parseDomainFilter maps a caller-supplied domain string to a filter. Empty
// and "all" mean no filter; anything else must be in the closed set.
func parseDomainFilter(domain string) (models.Domain, error) {
	if domain == "" || domain == "all" {
		return "", nil
	}
	d, ok := models.ParseDomain(domain)
	if !ok {
		return "", ErrUnknownDomain
	}
	return d, nil
}
