package gamification

import "errors"

var (
	// ErrUserNotFound is returned when the target user aggregate does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrLessonNotFound is returned by lesson lookups for missing lessons.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrLessonCompleted is returned when a completion races with or repeats
	// an earlier completion of the same lesson.
	ErrLessonCompleted = errors.New("lesson already completed")
	// ErrInvalidXP is returned for non-positive raw XP amounts.
	ErrInvalidXP = errors.New("invalid xp amount")
	// ErrUnknownDomain is returned when a caller-supplied domain string is not
	// in the closed domain set.
	ErrUnknownDomain = errors.New("unknown domain")
)
