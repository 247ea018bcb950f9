package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/skillpath/roadmap-backend/internal/domain"
)

type stubUserRepo struct {
	user *types.User
}

func (s *stubUserRepo) Create(context.Context, *gorm.DB, *types.User) error { return nil }
func (s *stubUserRepo) GetByID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*types.User, error) {
	if s.user != nil && s.user.ID == userID {
		return s.user, nil
	}
	return nil, nil
}
func (s *stubUserRepo) GetByUsername(context.Context, *gorm.DB, string) (*types.User, error) {
	return nil, nil
}
func (s *stubUserRepo) GetByEmail(context.Context, *gorm.DB, string) (*types.User, error) {
	return nil, nil
}
func (s *stubUserRepo) UsernameExists(context.Context, *gorm.DB, string) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) EmailExists(context.Context, *gorm.DB, string) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) SetLevel(context.Context, *gorm.DB, uuid.UUID, types.Level, bool) error {
	return nil
}
func (s *stubUserRepo) SetAssessmentCompleted(context.Context, *gorm.DB, uuid.UUID, bool) error {
	return nil
}

type stubTopicRepo struct {
	topics []*types.Topic
	total  int64
}

func (s *stubTopicRepo) ListByLevel(context.Context, *gorm.DB, types.Level) ([]*types.Topic, error) {
	return s.topics, nil
}
func (s *stubTopicRepo) GetByID(context.Context, *gorm.DB, uuid.UUID) (*types.Topic, error) {
	return nil, nil
}
func (s *stubTopicRepo) CountByLevel(context.Context, *gorm.DB, types.Level) (int64, error) {
	return s.total, nil
}

type stubProgressRepo struct {
	rows         map[uuid.UUID]*types.UserProgress
	completed    []uuid.UUID
	currentTitle string
}

func (s *stubProgressRepo) GetForTopic(_ context.Context, _ *gorm.DB, _ uuid.UUID, topicID uuid.UUID) (*types.UserProgress, error) {
	return s.rows[topicID], nil
}
func (s *stubProgressRepo) CompletedTopicIDs(context.Context, *gorm.DB, uuid.UUID) ([]uuid.UUID, error) {
	return s.completed, nil
}
func (s *stubProgressRepo) StartUpsert(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, time.Time) error {
	return nil
}
func (s *stubProgressRepo) Complete(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, time.Time) (int64, error) {
	return 0, nil
}
func (s *stubProgressRepo) UpdateProgress(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, float64, int, time.Time) (int64, error) {
	return 0, nil
}
func (s *stubProgressRepo) LatestInProgressTopicTitle(context.Context, *gorm.DB, uuid.UUID) (string, error) {
	return s.currentTitle, nil
}

func TestAskWithoutConfiguredClient(t *testing.T) {
	userID := uuid.New()
	svc := NewAssistantService(
		testLogger(t),
		nil,
		&stubUserRepo{user: &types.User{ID: userID, CurrentLevel: types.LevelIntermediate}},
		&stubTopicRepo{total: 8},
		&stubProgressRepo{completed: []uuid.UUID{uuid.New(), uuid.New()}, currentTitle: "React Fundamentals"},
	)

	reply, err := svc.Ask(context.Background(), userID, "What should I learn next?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply.Response != notConfiguredMessage {
		t.Fatalf("response: got=%q", reply.Response)
	}
	if reply.Context.Level != "intermediate" || reply.Context.CurrentTopic != "React Fundamentals" {
		t.Fatalf("context: got=%+v", reply.Context)
	}
	if reply.Context.CompletedCount != 2 || reply.Context.TotalCount != 8 {
		t.Fatalf("counts: got=%+v", reply.Context)
	}
	if reply.Context.ProgressPercentage != 25 {
		t.Fatalf("percentage: got=%v want=25", reply.Context.ProgressPercentage)
	}
}

func TestAskNoInProgressTopic(t *testing.T) {
	userID := uuid.New()
	svc := NewAssistantService(
		testLogger(t),
		nil,
		&stubUserRepo{user: &types.User{ID: userID, CurrentLevel: types.LevelBeginner}},
		&stubTopicRepo{},
		&stubProgressRepo{},
	)

	reply, err := svc.Ask(context.Background(), userID, "hello")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply.Context.CurrentTopic != "None" {
		t.Fatalf("current topic should fall back to None, got=%q", reply.Context.CurrentTopic)
	}
	if reply.Context.ProgressPercentage != 0 {
		t.Fatalf("no topics should yield 0%%, got=%v", reply.Context.ProgressPercentage)
	}
}
