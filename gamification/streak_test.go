package gamification

import (
	"testing"
	"time"
)

func TestStreakNewUser(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	streak, lastActive := AdvanceStreak(0, time.Time{}, now)
	if streak != 1 {
		t.Errorf("Expected streak 1 for new user, got %d", streak)
	}
	if !lastActive.Equal(now) {
		t.Errorf("Expected lastActive %v, got %v", now, lastActive)
	}
}

func TestStreakContinuation(t *testing.T) {
	yesterday := time.Date(2024, 2, 29, 14, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	streak, _ := AdvanceStreak(5, yesterday, today)
	if streak != 6 {
		t.Errorf("Expected streak 6 after consecutive day, got %d", streak)
	}
}

func TestStreakSameDayIdempotent(t *testing.T) {
	morning := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

	streak, lastActive := AdvanceStreak(3, morning, evening)
	if streak != 3 {
		t.Errorf("Expected streak unchanged at 3 for same-day repeat, got %d", streak)
	}
	if !lastActive.Equal(evening) {
		t.Errorf("Expected lastActive refreshed to %v, got %v", evening, lastActive)
	}
}

func TestStreakReset(t *testing.T) {
	threeDaysAgo := time.Date(2024, 2, 27, 12, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	streak, _ := AdvanceStreak(5, threeDaysAgo, now)
	if streak != 1 {
		t.Errorf("Expected streak reset to 1 after gap, got %d", streak)
	}
}

func TestStreakComparesUTCCalendarDays(t *testing.T) {
	// 23:30 UTC yesterday to 00:30 UTC today is only one elapsed hour but
	// still a day boundary.
	lateYesterday := time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC)
	earlyToday := time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC)

	streak, _ := AdvanceStreak(2, lateYesterday, earlyToday)
	if streak != 3 {
		t.Errorf("Expected streak 3 across UTC midnight, got %d", streak)
	}

	// Non-UTC timestamps normalize to UTC before comparing.
	est := time.FixedZone("EST", -5*3600)
	lastActive := time.Date(2024, 2, 29, 20, 0, 0, 0, est) // 01:00 UTC Mar 1
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	streak, _ = AdvanceStreak(4, lastActive, now)
	if streak != 4 {
		t.Errorf("Expected same-UTC-day repeat to keep streak 4, got %d", streak)
	}
}
