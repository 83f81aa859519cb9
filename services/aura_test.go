package services

import (
	"testing"
)

func TestCleanJSONOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare object", `{"domain": "STEM"}`, `{"domain": "STEM"}`},
		{"markdown fenced", "```json\n{\"domain\": \"STEM\"}\n```", `{"domain": "STEM"}`},
		{"conversational filler", "Sure, here is the lesson:\n{\"domain\": \"Arts\"}\nHope that helps!", `{"domain": "Arts"}`},
		{"no object at all", "  plain text  ", "plain text"},
		{"nested braces", `prefix {"a": {"b": 1}} suffix`, `{"a": {"b": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONOutput(tt.input); got != tt.expected {
				t.Errorf("cleanJSONOutput(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeLessonClampsMultiplier(t *testing.T) {
	lesson := GeneratedLesson{Domain: "STEM", DifficultyMultiplier: 2.7, XPReward: 100}
	normalizeLesson(&lesson, "Calculus")
	if lesson.DifficultyMultiplier != 1.5 {
		t.Errorf("Expected multiplier clamped to 1.5, got %v", lesson.DifficultyMultiplier)
	}

	lesson = GeneratedLesson{Domain: "STEM", DifficultyMultiplier: 0.4, XPReward: 100}
	normalizeLesson(&lesson, "Calculus")
	if lesson.DifficultyMultiplier != 1.0 {
		t.Errorf("Expected multiplier raised to 1.0, got %v", lesson.DifficultyMultiplier)
	}
}

func TestNormalizeLessonInvalidDomain(t *testing.T) {
	lesson := GeneratedLesson{Domain: "Astrology", DifficultyMultiplier: 1.2, XPReward: 100}
	normalizeLesson(&lesson, "Star signs")
	if lesson.Domain != "General" {
		t.Errorf("Expected unknown domain mapped to General, got %q", lesson.Domain)
	}
}

func TestFallbackLessonIsUnweighted(t *testing.T) {
	lesson := fallbackLesson(GenerationParams{Topic: "Photosynthesis", RawContent: "Plants make food from light."})
	if lesson.Domain != "General" {
		t.Errorf("Expected fallback domain General, got %q", lesson.Domain)
	}
	if lesson.DifficultyMultiplier != 1.0 {
		t.Errorf("Expected fallback multiplier 1.0, got %v", lesson.DifficultyMultiplier)
	}
	if len(lesson.Sections) != 1 || lesson.Sections[0].Content == "" {
		t.Errorf("Expected single section carrying the raw material, got %+v", lesson.Sections)
	}
}

func TestNormalizeLessonDefaults(t *testing.T) {
	lesson := GeneratedLesson{Domain: "STEM", DifficultyMultiplier: 1.2}
	normalizeLesson(&lesson, "Photosynthesis")
	if lesson.Title != "Photosynthesis" {
		t.Errorf("Expected title defaulted to topic, got %q", lesson.Title)
	}
	if lesson.XPReward != 100 {
		t.Errorf("Expected xpReward defaulted to 100, got %d", lesson.XPReward)
	}
	if lesson.EstimatedTime != "15 min" {
		t.Errorf("Expected estimatedTime defaulted, got %q", lesson.EstimatedTime)
	}
}
