package gamification

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"learnhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence seam for the user aggregate. Get and Put are
// each atomic on their own; the engine serializes the Get/Put pair per user
// itself (see Engine.lockFor).
type UserStore interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	PutUser(ctx context.Context, user *models.User) error
}

// LessonStore resolves lesson metadata for weighting an award.
type LessonStore interface {
	GetLesson(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error)
}

// Summary is the post-award snapshot returned to the caller.
type Summary struct {
	XP               int `json:"xp"`
	WeightedXP       int `json:"weightedXp"`
	Level            int `json:"level"`
	Streak           int `json:"streak"`
	ProgressionScore int `json:"progressionScore"`
}

// Engine converts a single lesson-completion event into XP, level, streak and
// progression-score updates on the user aggregate. Completion dedup and
// clamping raw XP to the lesson's reward are the caller's responsibility.
type Engine struct {
	users   UserStore
	lessons LessonStore

	// Now is the clock for streak transitions. Tests override it.
	Now func() time.Time

	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

// NewEngine creates an award engine over the given stores.
func NewEngine(users UserStore, lessons LessonStore) *Engine {
	return &Engine{
		users:   users,
		lessons: lessons,
		Now:     time.Now,
		locks:   make(map[primitive.ObjectID]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing awards for one user. Awards for
// different users proceed in parallel. Entries are never reclaimed; the map
// is bounded by the number of users active since process start.
func (e *Engine) lockFor(userID primitive.ObjectID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[userID] = l
	}
	return l
}

// AwardXP processes one completion event: weights the raw XP by the lesson's
// difficulty multiplier, credits the lesson's domain bucket, advances level
// and streak, recomputes the progression score and persists the whole
// aggregate in a single write.
//
// A zero lessonID, or one that no longer resolves, awards the raw amount
// unweighted and credits no domain bucket. Such awards still raise
// weightedXp, so the bucket totals only reconcile with weightedXp for
// lesson-attributed awards.
func (e *Engine) AwardXP(ctx context.Context, userID primitive.ObjectID, rawXP int, lessonID primitive.ObjectID) (Summary, error) {
	if rawXP <= 0 {
		return Summary{}, ErrInvalidXP
	}

	lock := e.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := e.users.GetUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	weighted := rawXP
	attributed := false
	domain := models.DomainGeneral

	if !lessonID.IsZero() {
		lesson, err := e.lessons.GetLesson(ctx, lessonID)
		switch {
		case err == nil:
			if lesson.Domain != "" {
				domain = lesson.Domain
			}
			multiplier := lesson.DifficultyMultiplier
			if multiplier == 0 {
				multiplier = 1.0
			}
			weighted = int(math.Round(float64(rawXP) * multiplier))
			attributed = true
		case errors.Is(err, ErrLessonNotFound):
			// Lesson deleted since completion; award stays unweighted.
		default:
			return Summary{}, err
		}
	}

	if attributed {
		user.DomainStats.Add(domain, weighted)
	}

	user.XP += rawXP
	user.WeightedXP += weighted

	// WeightedXP only grows, so the recomputed level can never be lower; the
	// guard protects the monotonicity invariant against out-of-order writes.
	if newLevel := LevelFor(user.WeightedXP); newLevel > user.Level {
		user.Level = newLevel
	}

	now := e.Now()
	user.Streak, user.LastActive = AdvanceStreak(user.Streak, user.LastActive, now)
	user.ProgressionScore = ProgressionScore(user.WeightedXP, user.Streak, user.AverageMastery)
	user.UpdatedAt = now

	if err := e.users.PutUser(ctx, user); err != nil {
		return Summary{}, err
	}

	return Summary{
		XP:               user.XP,
		WeightedXP:       user.WeightedXP,
		Level:            user.Level,
		Streak:           user.Streak,
		ProgressionScore: user.ProgressionScore,
	}, nil
}

// ProgressionScore blends weighted XP, streak length and average quiz mastery
// into the composite "true skill" metric.
func ProgressionScore(weightedXP, streak int, averageMastery float64) int {
	return int(math.Round(float64(weightedXP)*0.5 + float64(streak)*10 + averageMastery*5))
}
