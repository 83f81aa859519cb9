package controllers

import (
	"bytes"
	"context"
	"net/http/httptest"
	"time"

	"learnhub/gamification"
	"learnhub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserStore backs controller tests with an in-memory user map.
type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeUserStore) add(u models.User) primitive.ObjectID {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = &u
	return u.ID
}

func (s *fakeUserStore) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gamification.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) PutUser(ctx context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return gamification.ErrUserNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) TopUsers(ctx context.Context, q gamification.TopQuery) ([]models.User, error) {
	return nil, nil
}

func (s *fakeUserStore) CountOutranking(ctx context.Context, school string, weightedXP int) (int, error) {
	return 0, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gamification.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return nil, gamification.ErrUserNotFound
}

func (s *fakeUserStore) InsertUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	return s.add(*user), nil
}

func (s *fakeUserStore) CountUsers(ctx context.Context, since time.Time) (int, error) {
	return len(s.users), nil
}

func (s *fakeUserStore) EmailsByAudience(ctx context.Context, school, country string) ([]string, error) {
	return nil, nil
}

// fakeLessonStore serves reads from a snapshot that can be pinned stale, so
// tests can drive both completion requests past the read-side checks while
// MarkCompleted tracks the real completion state.
type fakeLessonStore struct {
	lessons map[primitive.ObjectID]*models.Lesson
	stale   map[primitive.ObjectID]*models.Lesson
}

func newFakeLessonStore() *fakeLessonStore {
	return &fakeLessonStore{
		lessons: make(map[primitive.ObjectID]*models.Lesson),
		stale:   make(map[primitive.ObjectID]*models.Lesson),
	}
}

func (s *fakeLessonStore) add(l models.Lesson) primitive.ObjectID {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	s.lessons[l.ID] = &l
	return l.ID
}

// pinStale freezes GetLesson reads for one lesson at its current state.
func (s *fakeLessonStore) pinStale(id primitive.ObjectID) {
	snapshot := *s.lessons[id]
	s.stale[id] = &snapshot
}

func (s *fakeLessonStore) GetLesson(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	if l, ok := s.stale[id]; ok {
		copied := *l
		return &copied, nil
	}
	l, ok := s.lessons[id]
	if !ok {
		return nil, gamification.ErrLessonNotFound
	}
	copied := *l
	return &copied, nil
}

func (s *fakeLessonStore) MarkCompleted(ctx context.Context, id primitive.ObjectID, mastery float64, now time.Time) error {
	l, ok := s.lessons[id]
	if !ok || l.IsCompleted {
		return gamification.ErrLessonCompleted
	}
	l.IsCompleted = true
	l.MasteryScore = mastery
	l.CompletedAt = &now
	l.UpdatedAt = now
	return nil
}

func (s *fakeLessonStore) InsertLesson(ctx context.Context, lesson *models.Lesson) (primitive.ObjectID, error) {
	return s.add(*lesson), nil
}

func (s *fakeLessonStore) DeleteLesson(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.lessons[id]; !ok {
		return gamification.ErrLessonNotFound
	}
	delete(s.lessons, id)
	return nil
}

func (s *fakeLessonStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Lesson, error) {
	var result []models.Lesson
	for _, l := range s.lessons {
		if l.UserID == userID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (s *fakeLessonStore) CountLessons(ctx context.Context, since time.Time) (int, error) {
	return len(s.lessons), nil
}

// fakeLocationStore is an in-memory country/school directory.
type fakeLocationStore struct {
	countries []models.Country
	schools   []models.School
}

func (s *fakeLocationStore) ListCountries(ctx context.Context) ([]models.Country, error) {
	return s.countries, nil
}

func (s *fakeLocationStore) SchoolsByCountry(ctx context.Context, country string) ([]models.School, error) {
	var result []models.School
	for _, school := range s.schools {
		if school.Country == country {
			result = append(result, school)
		}
	}
	return result, nil
}

func (s *fakeLocationStore) InsertCountry(ctx context.Context, country *models.Country) (primitive.ObjectID, error) {
	country.ID = primitive.NewObjectID()
	s.countries = append(s.countries, *country)
	return country.ID, nil
}

func (s *fakeLocationStore) InsertSchool(ctx context.Context, school *models.School) (primitive.ObjectID, error) {
	school.ID = primitive.NewObjectID()
	s.schools = append(s.schools, *school)
	return school.ID, nil
}

// wireFakes points the controller globals at in-memory stores for one test.
func wireFakes(u *fakeUserStore, l *fakeLessonStore, loc *fakeLocationStore) {
	gin.SetMode(gin.TestMode)
	users = u
	lessons = l
	locations = loc
	engine = gamification.NewEngine(u, l)
	ranker = gamification.NewRanker(u)
}

// testContext builds a gin context carrying an authenticated user and a JSON
// body, the shape the middleware chain would produce.
func testContext(method, path string, body []byte, userID primitive.ObjectID, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if !userID.IsZero() {
		c.Set("userID", userID)
	}
	return c, w
}
