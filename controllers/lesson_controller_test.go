package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"learnhub/models"

	"github.com/gin-gonic/gin"
)

func completeParams(lessonID string) gin.Params {
	return gin.Params{{Key: "id", Value: lessonID}}
}

func TestCompleteLessonAwardsAndDedups(t *testing.T) {
	userStore := newFakeUserStore()
	lessonStore := newFakeLessonStore()
	wireFakes(userStore, lessonStore, &fakeLocationStore{})

	userID := userStore.add(models.User{Level: 1})
	lessonID := lessonStore.add(models.Lesson{
		UserID:               userID,
		Domain:               models.DomainSTEM,
		DifficultyMultiplier: 1.4,
		XPReward:             100,
	})

	body := []byte(`{"xpEarned": 100, "masteryScore": 90}`)
	c, w := testContext(http.MethodPut, "/lessons/"+lessonID.Hex()+"/complete", body, userID, completeParams(lessonID.Hex()))
	CompleteLesson(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	user, _ := userStore.GetUser(context.Background(), userID)
	if user.XP != 100 || user.WeightedXP != 140 {
		t.Errorf("Expected xp=100 weightedXp=140, got xp=%d weightedXp=%d", user.XP, user.WeightedXP)
	}
	if user.AverageMastery != 90 || user.QuizzesTaken != 1 {
		t.Errorf("Expected mastery 90 over 1 quiz, got %v over %d", user.AverageMastery, user.QuizzesTaken)
	}

	// Second completion of the same lesson is rejected and awards nothing.
	c, w = testContext(http.MethodPut, "/lessons/"+lessonID.Hex()+"/complete", body, userID, completeParams(lessonID.Hex()))
	CompleteLesson(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 on repeat completion, got %d", w.Code)
	}
	user, _ = userStore.GetUser(context.Background(), userID)
	if user.XP != 100 {
		t.Errorf("Repeat completion changed xp to %d", user.XP)
	}
}

func TestCompleteLessonRacingDuplicateAwardsNothing(t *testing.T) {
	userStore := newFakeUserStore()
	lessonStore := newFakeLessonStore()
	wireFakes(userStore, lessonStore, &fakeLocationStore{})

	userID := userStore.add(models.User{Level: 1})
	lessonID := lessonStore.add(models.Lesson{
		UserID:               userID,
		Domain:               models.DomainSTEM,
		DifficultyMultiplier: 1.4,
		XPReward:             100,
	})

	// A concurrent request already completed the lesson, but this request's
	// reads still see the pre-completion state. Both read-side checks pass;
	// only the conditional completion write can stop the double award.
	lessonStore.pinStale(lessonID)
	if err := lessonStore.MarkCompleted(context.Background(), lessonID, 90, time.Now()); err != nil {
		t.Fatalf("Setup completion failed: %v", err)
	}

	body := []byte(`{"xpEarned": 100, "masteryScore": 90}`)
	c, w := testContext(http.MethodPut, "/lessons/"+lessonID.Hex()+"/complete", body, userID, completeParams(lessonID.Hex()))
	CompleteLesson(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for lost completion race, got %d: %s", w.Code, w.Body.String())
	}

	user, _ := userStore.GetUser(context.Background(), userID)
	if user.XP != 0 || user.WeightedXP != 0 {
		t.Errorf("Lost race still awarded xp=%d weightedXp=%d", user.XP, user.WeightedXP)
	}
	if user.QuizzesTaken != 0 {
		t.Errorf("Lost race still recorded %d quizzes", user.QuizzesTaken)
	}
}

func TestCompleteLessonRejectsOtherUsersLesson(t *testing.T) {
	userStore := newFakeUserStore()
	lessonStore := newFakeLessonStore()
	wireFakes(userStore, lessonStore, &fakeLocationStore{})

	owner := userStore.add(models.User{Level: 1})
	intruder := userStore.add(models.User{Level: 1})
	lessonID := lessonStore.add(models.Lesson{UserID: owner, XPReward: 100})

	body := []byte(`{"xpEarned": 100, "masteryScore": 90}`)
	c, w := testContext(http.MethodPut, "/lessons/"+lessonID.Hex()+"/complete", body, intruder, completeParams(lessonID.Hex()))
	CompleteLesson(c)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for foreign lesson, got %d", w.Code)
	}
}
