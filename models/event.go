package models

import "time"

// ProgressEvent is a gamification update broadcast to connected clients.
type ProgressEvent struct {
	Type             string    `json:"type"` // "xp_awarded", "level_up", "streak_extended"
	UserID           string    `json:"userId"`
	XP               int       `json:"xp,omitempty"`
	WeightedXP       int       `json:"weightedXp,omitempty"`
	Level            int       `json:"level,omitempty"`
	Streak           int       `json:"streak,omitempty"`
	ProgressionScore int       `json:"progressionScore,omitempty"`
	Domain           string    `json:"domain,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
