package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roadmaprepo "github.com/skillpath/roadmap-backend/internal/data/repos/roadmap"
	userrepo "github.com/skillpath/roadmap-backend/internal/data/repos/user"
	types "github.com/skillpath/roadmap-backend/internal/domain"
	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
	"github.com/skillpath/roadmap-backend/internal/pkg/pointers"
)

// TopicView is one roadmap entry with the user's derived status folded in.
type TopicView struct {
	ID                 uuid.UUID         `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	DifficultyLevel    string            `json:"difficulty_level"`
	EstimatedHours     float64           `json:"estimated_hours"`
	OrderIndex         int               `json:"order_index"`
	Level              types.Level       `json:"level"`
	Status             types.TopicStatus `json:"status"`
	ProgressPercentage float64           `json:"progress_percentage"`
	Prerequisites      []uuid.UUID       `json:"prerequisites"`
}

// LearningPathView is the whole roadmap for the user's current level.
type LearningPathView struct {
	UserLevel          types.Level `json:"user_level"`
	TotalTopics        int         `json:"total_topics"`
	CompletedTopics    int         `json:"completed_topics"`
	InProgressTopics   int         `json:"in_progress_topics"`
	ProgressPercentage float64     `json:"progress_percentage"`
	Topics             []TopicView `json:"topics"`
}

type PrerequisiteView struct {
	ID    uuid.UUID   `json:"id"`
	Title string      `json:"title"`
	Level types.Level `json:"level"`
}

type ResourceView struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Type     string    `json:"type"`
	Platform string    `json:"platform"`
	Duration *int      `json:"duration"`
}

type TopicDetailView struct {
	ID                 uuid.UUID          `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Content            string             `json:"content"`
	DifficultyLevel    string             `json:"difficulty_level"`
	EstimatedHours     float64            `json:"estimated_hours"`
	Level              types.Level        `json:"level"`
	Status             types.TopicStatus  `json:"status"`
	ProgressPercentage float64            `json:"progress_percentage"`
	TimeSpentMinutes   int                `json:"time_spent_minutes"`
	LastAccessed       *time.Time         `json:"last_accessed"`
	Prerequisites      []PrerequisiteView `json:"prerequisites"`
	Resources          []ResourceView     `json:"resources"`
}

type StartTopicResult struct {
	Message string            `json:"message"`
	TopicID uuid.UUID         `json:"topic_id"`
	Status  types.TopicStatus `json:"status"`
}

type RoadmapService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) (*LearningPathView, error)
	TopicDetail(ctx context.Context, userID, topicID uuid.UUID) (*TopicDetailView, error)
	// Start marks a topic in_progress. Prerequisites must all be completed;
	// restarting a completed topic drops it back to in_progress.
	Start(ctx context.Context, userID, topicID uuid.UUID) (*StartTopicResult, error)
	// Complete requires the topic to have been started.
	Complete(ctx context.Context, userID, topicID uuid.UUID) error
	// UpdateProgress sets the completion percentage and adds study time to a
	// started topic.
	UpdateProgress(ctx context.Context, userID, topicID uuid.UUID, percent float64, minutesDelta int) error
}

type roadmapService struct {
	db         *gorm.DB
	log        *logger.Logger
	topicRepo  roadmaprepo.TopicRepo
	prereqRepo roadmaprepo.PrerequisiteRepo
	progress   roadmaprepo.ProgressRepo
	resources  roadmaprepo.ResourceRepo
	userRepo   userrepo.UserRepo
}

func NewRoadmapService(
	db *gorm.DB,
	log *logger.Logger,
	topicRepo roadmaprepo.TopicRepo,
	prereqRepo roadmaprepo.PrerequisiteRepo,
	progress roadmaprepo.ProgressRepo,
	resources roadmaprepo.ResourceRepo,
	userRepo userrepo.UserRepo,
) RoadmapService {
	return &roadmapService{
		db:         db,
		log:        log.With("service", "RoadmapService"),
		topicRepo:  topicRepo,
		prereqRepo: prereqRepo,
		progress:   progress,
		resources:  resources,
		userRepo:   userRepo,
	}
}

// DeriveStatus resolves a topic's status for one user. A stored progress row
// is authoritative; otherwise the topic is locked while any prerequisite is
// incomplete and available once they all are.
func DeriveStatus(prereqs []uuid.UUID, completed map[uuid.UUID]bool, progress *types.UserProgress) types.TopicStatus {
	if progress != nil {
		return progress.Status
	}
	for _, id := range prereqs {
		if !completed[id] {
			return types.StatusLocked
		}
	}
	return types.StatusAvailable
}

func (s *roadmapService) ListForUser(ctx context.Context, userID uuid.UUID) (*LearningPathView, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrUnauthorized)
	}

	topics, err := s.topicRepo.ListByLevel(ctx, nil, user.CurrentLevel)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	completedIDs, err := s.progress.CompletedTopicIDs(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed topics: %w", err)
	}
	completed := make(map[uuid.UUID]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	views := make([]TopicView, 0, len(topics))
	completedCount := 0
	inProgressCount := 0
	for _, topic := range topics {
		prereqs, err := s.prereqRepo.IDsForTopic(ctx, nil, topic.ID)
		if err != nil {
			return nil, fmt.Errorf("list prerequisites: %w", err)
		}
		row, err := s.progress.GetForTopic(ctx, nil, userID, topic.ID)
		if err != nil {
			return nil, fmt.Errorf("lookup progress: %w", err)
		}

		status := DeriveStatus(prereqs, completed, row)
		switch status {
		case types.StatusCompleted:
			completedCount++
		case types.StatusInProgress:
			inProgressCount++
		}
		pct := 0.0
		if row != nil {
			pct = row.ProgressPercentage
		}
		if prereqs == nil {
			prereqs = []uuid.UUID{}
		}
		views = append(views, TopicView{
			ID:                 topic.ID,
			Title:              topic.Title,
			Description:        topic.Description,
			DifficultyLevel:    topic.DifficultyLevel,
			EstimatedHours:     topic.EstimatedHours,
			OrderIndex:         topic.OrderIndex,
			Level:              topic.Level,
			Status:             status,
			ProgressPercentage: pct,
			Prerequisites:      prereqs,
		})
	}

	overall := 0.0
	if len(topics) > 0 {
		overall = math.Round(float64(completedCount)/float64(len(topics))*10000) / 100
	}
	return &LearningPathView{
		UserLevel:          user.CurrentLevel,
		TotalTopics:        len(topics),
		CompletedTopics:    completedCount,
		InProgressTopics:   inProgressCount,
		ProgressPercentage: overall,
		Topics:             views,
	}, nil
}

func (s *roadmapService) TopicDetail(ctx context.Context, userID, topicID uuid.UUID) (*TopicDetailView, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("lookup topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("%w: topic not found", apperr.ErrNotFound)
	}

	row, err := s.progress.GetForTopic(ctx, nil, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("lookup progress: %w", err)
	}
	prereqTopics, err := s.prereqRepo.DetailsForTopic(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("list prerequisites: %w", err)
	}
	completedIDs, err := s.progress.CompletedTopicIDs(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed topics: %w", err)
	}
	resources, err := s.resources.ListForTopic(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	completed := make(map[uuid.UUID]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}
	prereqIDs := make([]uuid.UUID, 0, len(prereqTopics))
	prereqViews := make([]PrerequisiteView, 0, len(prereqTopics))
	for _, p := range prereqTopics {
		prereqIDs = append(prereqIDs, p.ID)
		prereqViews = append(prereqViews, PrerequisiteView{ID: p.ID, Title: p.Title, Level: p.Level})
	}

	view := &TopicDetailView{
		ID:              topic.ID,
		Title:           topic.Title,
		Description:     topic.Description,
		Content:         topic.Content,
		DifficultyLevel: topic.DifficultyLevel,
		EstimatedHours:  topic.EstimatedHours,
		Level:           topic.Level,
		Status:          DeriveStatus(prereqIDs, completed, row),
		Prerequisites:   prereqViews,
		Resources:       make([]ResourceView, 0, len(resources)),
	}
	if row != nil {
		view.ProgressPercentage = row.ProgressPercentage
		view.TimeSpentMinutes = row.TimeSpentMinutes
		accessed := row.LastAccessed
		view.LastAccessed = &accessed
	}
	for _, r := range resources {
		rv := ResourceView{
			ID:       r.ID,
			Title:    r.Title,
			URL:      r.ResourceURL,
			Type:     r.ResourceType,
			Platform: r.Platform,
		}
		if r.DurationMinutes > 0 {
			rv.Duration = pointers.Ptr(r.DurationMinutes)
		}
		view.Resources = append(view.Resources, rv)
	}
	return view, nil
}

func (s *roadmapService) Start(ctx context.Context, userID, topicID uuid.UUID) (*StartTopicResult, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("lookup topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("%w: topic not found", apperr.ErrNotFound)
	}

	prereqs, err := s.prereqRepo.IDsForTopic(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("list prerequisites: %w", err)
	}
	if len(prereqs) > 0 {
		completedIDs, err := s.progress.CompletedTopicIDs(ctx, nil, userID)
		if err != nil {
			return nil, fmt.Errorf("list completed topics: %w", err)
		}
		completed := make(map[uuid.UUID]bool, len(completedIDs))
		for _, id := range completedIDs {
			completed[id] = true
		}
		for _, id := range prereqs {
			if !completed[id] {
				return nil, fmt.Errorf("%w: please complete prerequisite topics first", apperr.ErrPreconditionFailed)
			}
		}
	}

	if err := s.progress.StartUpsert(ctx, nil, userID, topicID, time.Now()); err != nil {
		return nil, fmt.Errorf("start topic: %w", err)
	}
	s.log.Info("Topic started", "user_id", userID, "topic_id", topicID)
	return &StartTopicResult{
		Message: fmt.Sprintf("Started learning: %s", topic.Title),
		TopicID: topicID,
		Status:  types.StatusInProgress,
	}, nil
}

func (s *roadmapService) Complete(ctx context.Context, userID, topicID uuid.UUID) error {
	rows, err := s.progress.Complete(ctx, nil, userID, topicID, time.Now())
	if err != nil {
		return fmt.Errorf("complete topic: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: please start the topic first", apperr.ErrPreconditionFailed)
	}
	s.log.Info("Topic completed", "user_id", userID, "topic_id", topicID)
	return nil
}

func (s *roadmapService) UpdateProgress(ctx context.Context, userID, topicID uuid.UUID, percent float64, minutesDelta int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: progress_percentage must be between 0 and 100", apperr.ErrInvalidArgument)
	}
	if minutesDelta < 0 {
		return fmt.Errorf("%w: time_spent_minutes must not be negative", apperr.ErrInvalidArgument)
	}
	rows, err := s.progress.UpdateProgress(ctx, nil, userID, topicID, percent, minutesDelta, time.Now())
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: please start the topic first", apperr.ErrPreconditionFailed)
	}
	return nil
}
