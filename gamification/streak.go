package gamification

import "time"

// AdvanceStreak computes the next consecutive-day streak value for an
// activity happening at now. Days are compared as UTC calendar days, not
// elapsed hours, so a 2pm activity yesterday followed by a 9am activity today
// still extends the streak.
//
// The returned lastActive is always now: same-day repeats refresh the
// activity timestamp without inflating the streak.
func AdvanceStreak(current int, lastActive time.Time, now time.Time) (int, time.Time) {
	if lastActive.IsZero() {
		return 1, now
	}

	lastDate := dateOnlyUTC(lastActive)
	today := dateOnlyUTC(now)
	yesterday := today.AddDate(0, 0, -1)

	switch {
	case lastDate.Equal(today):
		return current, now
	case lastDate.Equal(yesterday):
		return current + 1, now
	default:
		// Missed a day, or the clock moved backwards; either way the chain
		// restarts at 1.
		return 1, now
	}
}

func dateOnlyUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
