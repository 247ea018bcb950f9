package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		name      string
		score     int
		maxPoints int
		want      types.Level
	}{
		{"zero max", 0, 0, types.LevelBeginner},
		{"negative max", 5, -1, types.LevelBeginner},
		{"zero score", 0, 10, types.LevelBeginner},
		{"exactly 40 percent", 4, 10, types.LevelBeginner},
		{"just above 40 percent", 41, 100, types.LevelIntermediate},
		{"exactly 70 percent", 7, 10, types.LevelIntermediate},
		{"just above 70 percent", 71, 100, types.LevelAdvanced},
		{"full score", 10, 10, types.LevelAdvanced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LevelFor(tc.score, tc.maxPoints); got != tc.want {
				t.Fatalf("LevelFor(%d, %d): got=%s want=%s", tc.score, tc.maxPoints, got, tc.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	q1 := &types.AssessmentQuestion{ID: uuid.New(), CorrectAnswer: "let", Points: 5}
	q2 := &types.AssessmentQuestion{ID: uuid.New(), CorrectAnswer: "201", Points: 5}
	bank := []*types.AssessmentQuestion{q1, q2}

	t.Run("all correct", func(t *testing.T) {
		answers := []types.SubmittedAnswer{
			{QuestionID: q1.ID, Answer: "let"},
			{QuestionID: q2.ID, Answer: "201"},
		}
		score, max := Score(answers, bank)
		if score != 10 || max != 10 {
			t.Fatalf("got score=%d max=%d, want 10/10", score, max)
		}
		if LevelFor(score, max) != types.LevelAdvanced {
			t.Fatalf("full score should assign advanced")
		}
	})

	t.Run("wrong and unknown answers score nothing", func(t *testing.T) {
		answers := []types.SubmittedAnswer{
			{QuestionID: q1.ID, Answer: "var"},
			{QuestionID: uuid.New(), Answer: "let"},
		}
		score, max := Score(answers, bank)
		if score != 0 || max != 10 {
			t.Fatalf("got score=%d max=%d, want 0/10", score, max)
		}
	})

	t.Run("last answer per question wins", func(t *testing.T) {
		answers := []types.SubmittedAnswer{
			{QuestionID: q1.ID, Answer: "let"},
			{QuestionID: q1.ID, Answer: "var"},
		}
		score, _ := Score(answers, bank)
		if score != 0 {
			t.Fatalf("resubmitted answer should replace the first, got score=%d", score)
		}
	})

	t.Run("empty bank", func(t *testing.T) {
		score, max := Score(nil, nil)
		if score != 0 || max != 0 {
			t.Fatalf("got score=%d max=%d, want 0/0", score, max)
		}
	})
}

type stubQuestionRepo struct {
	bank []*types.AssessmentQuestion
}

func (s *stubQuestionRepo) List(context.Context, *gorm.DB) ([]*types.AssessmentQuestion, error) {
	return s.bank, nil
}

type stubResultRepo struct{}

func (s *stubResultRepo) Upsert(context.Context, *gorm.DB, *types.UserAssessment) error { return nil }
func (s *stubResultRepo) GetByUserID(context.Context, *gorm.DB, uuid.UUID) (*types.UserAssessment, error) {
	return nil, nil
}

func TestSubmitEmptyBank(t *testing.T) {
	svc := NewAssessmentService(nil, testLogger(t), &stubQuestionRepo{}, &stubResultRepo{}, &stubUserRepo{})

	_, err := svc.Submit(context.Background(), uuid.New(), nil)
	if !errors.Is(err, apperr.ErrPreconditionFailed) {
		t.Fatalf("expected precondition-failed for empty bank, got %v", err)
	}
}

func TestSubmitZeroWeightBank(t *testing.T) {
	bank := []*types.AssessmentQuestion{{ID: uuid.New(), CorrectAnswer: "a", Points: 0}}
	svc := NewAssessmentService(nil, testLogger(t), &stubQuestionRepo{bank: bank}, &stubResultRepo{}, &stubUserRepo{})

	_, err := svc.Submit(context.Background(), uuid.New(), nil)
	if !errors.Is(err, apperr.ErrPreconditionFailed) {
		t.Fatalf("expected precondition-failed for zero-weight bank, got %v", err)
	}
}
