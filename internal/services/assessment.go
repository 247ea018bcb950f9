package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assessrepo "github.com/skillpath/roadmap-backend/internal/data/repos/assessment"
	userrepo "github.com/skillpath/roadmap-backend/internal/data/repos/user"
	types "github.com/skillpath/roadmap-backend/internal/domain"
	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

// AssessmentResult is what a submission returns to the client: the raw score
// plus the assigned level and its guidance copy.
type AssessmentResult struct {
	Score          int         `json:"score"`
	TotalQuestions int         `json:"total_questions"`
	Percentage     float64     `json:"percentage"`
	AssignedLevel  types.Level `json:"assigned_level"`
	Message        string      `json:"message"`
	NextSteps      string      `json:"next_steps"`
}

// AssessmentStatus reports whether the user has a completed assessment and,
// if so, the stored result.
type AssessmentStatus struct {
	Completed      bool        `json:"completed"`
	AssignedLevel  types.Level `json:"assigned_level,omitempty"`
	Score          int         `json:"score,omitempty"`
	TotalQuestions int         `json:"total_questions,omitempty"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
}

type AssessmentService interface {
	Questions(ctx context.Context) ([]*types.AssessmentQuestion, error)
	// Submit scores the answers against the question bank, assigns the level
	// and persists both the result and the user's new level atomically.
	Submit(ctx context.Context, userID uuid.UUID, answers []types.SubmittedAnswer) (*AssessmentResult, error)
	Status(ctx context.Context, userID uuid.UUID) (*AssessmentStatus, error)
	// Retake clears the completed flag so the quiz can be taken again. The
	// previous result and level stay in place until the next submission.
	Retake(ctx context.Context, userID uuid.UUID) error
}

type assessmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo assessrepo.QuestionRepo
	resultRepo   assessrepo.ResultRepo
	userRepo     userrepo.UserRepo
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	questionRepo assessrepo.QuestionRepo,
	resultRepo assessrepo.ResultRepo,
	userRepo userrepo.UserRepo,
) AssessmentService {
	return &assessmentService{
		db:           db,
		log:          log.With("service", "AssessmentService"),
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		userRepo:     userRepo,
	}
}

// Score tallies points for answers matching the bank's correct answers and
// returns (earned, maximum). Answers referencing unknown questions score
// nothing; duplicate answers for one question each get scored, matching a
// map-insertion client where the last write wins before submission.
func Score(answers []types.SubmittedAnswer, bank []*types.AssessmentQuestion) (int, int) {
	byID := make(map[uuid.UUID]*types.AssessmentQuestion, len(bank))
	maxPoints := 0
	for _, q := range bank {
		byID[q.ID] = q
		maxPoints += q.Points
	}

	// Last answer per question wins.
	chosen := make(map[uuid.UUID]string, len(answers))
	for _, a := range answers {
		chosen[a.QuestionID] = a.Answer
	}

	score := 0
	for id, answer := range chosen {
		q, ok := byID[id]
		if !ok {
			continue
		}
		if answer == q.CorrectAnswer {
			score += q.Points
		}
	}
	return score, maxPoints
}

// LevelFor maps a score to a level: at most 40% of the maximum is beginner,
// at most 70% intermediate, anything above advanced. A non-positive maximum
// falls back to beginner.
func LevelFor(score, maxPoints int) types.Level {
	if maxPoints <= 0 {
		return types.LevelBeginner
	}
	pct := float64(score) / float64(maxPoints) * 100
	switch {
	case pct <= 40:
		return types.LevelBeginner
	case pct <= 70:
		return types.LevelIntermediate
	default:
		return types.LevelAdvanced
	}
}

var levelGuidance = map[types.Level]struct {
	Message   string
	NextSteps string
}{
	types.LevelBeginner: {
		Message:   "Welcome to your learning journey! You'll start with the fundamentals.",
		NextSteps: "Begin with HTML, CSS, and JavaScript basics to build a strong foundation.",
	},
	types.LevelIntermediate: {
		Message:   "Great! You have some experience. Let's take you to the next level.",
		NextSteps: "You'll dive into React, Node.js, and build full-stack applications.",
	},
	types.LevelAdvanced: {
		Message:   "Impressive! You're ready for advanced concepts.",
		NextSteps: "Focus on system design, performance optimization, and production-ready applications.",
	},
}

func (s *assessmentService) Questions(ctx context.Context) ([]*types.AssessmentQuestion, error) {
	questions, err := s.questionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (s *assessmentService) Submit(ctx context.Context, userID uuid.UUID, answers []types.SubmittedAnswer) (*AssessmentResult, error) {
	bank, err := s.questionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	score, maxPoints := Score(answers, bank)
	if len(bank) == 0 || maxPoints <= 0 {
		return nil, fmt.Errorf("%w: no assessment questions available", apperr.ErrPreconditionFailed)
	}

	level := LevelFor(score, maxPoints)
	now := time.Now()

	record := &types.UserAssessment{
		UserID:         userID,
		Score:          score,
		TotalQuestions: len(bank),
		AssignedLevel:  level,
		Answers:        types.AnswerList(answers),
		CompletedAt:    now,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.resultRepo.Upsert(ctx, tx, record); err != nil {
			return err
		}
		return s.userRepo.SetLevel(ctx, tx, userID, level, true)
	})
	if err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	s.log.Info("Assessment submitted",
		"user_id", userID,
		"score", score,
		"max_points", maxPoints,
		"assigned_level", level,
	)

	guidance := levelGuidance[level]
	pct := math.Round(float64(score)/float64(maxPoints)*10000) / 100
	return &AssessmentResult{
		Score:          score,
		TotalQuestions: len(bank),
		Percentage:     pct,
		AssignedLevel:  level,
		Message:        guidance.Message,
		NextSteps:      guidance.NextSteps,
	}, nil
}

func (s *assessmentService) Status(ctx context.Context, userID uuid.UUID) (*AssessmentStatus, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrUnauthorized)
	}
	if !user.HasCompletedAssessment {
		return &AssessmentStatus{Completed: false}, nil
	}

	result, err := s.resultRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup result: %w", err)
	}
	if result == nil {
		// Flag set without a stored row; report incomplete rather than invent
		// a result.
		s.log.Warn("Assessment flag set but no result row", "user_id", userID)
		return &AssessmentStatus{Completed: false}, nil
	}
	completedAt := result.CompletedAt
	return &AssessmentStatus{
		Completed:      true,
		AssignedLevel:  result.AssignedLevel,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CompletedAt:    &completedAt,
	}, nil
}

func (s *assessmentService) Retake(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.SetAssessmentCompleted(ctx, nil, userID, false); err != nil {
		return fmt.Errorf("reset assessment flag: %w", err)
	}
	s.log.Info("Assessment reset for retake", "user_id", userID)
	return nil
}
