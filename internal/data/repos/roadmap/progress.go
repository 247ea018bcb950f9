package roadmap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type ProgressRepo interface {
	GetForTopic(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.UserProgress, error)
	CompletedTopicIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	// StartUpsert marks the topic in_progress, inserting or overwriting the
	// (user, topic) row. Concurrent starts are resolved by the unique index;
	// last writer wins on last_accessed.
	StartUpsert(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, now time.Time) error
	// Complete updates an existing row; returns the number of rows touched so
	// the caller can enforce the started-first precondition.
	Complete(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, now time.Time) (int64, error)
	// UpdateProgress sets the percentage absolutely and accumulates time
	// spent; returns rows touched.
	UpdateProgress(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, percent float64, minutesDelta int, now time.Time) (int64, error)
	// LatestInProgressTopicTitle returns the title of the most recently
	// accessed in_progress topic, or "" when there is none.
	LatestInProgressTopicTitle(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (string, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (pr *progressRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *progressRepo) GetForTopic(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.UserProgress, error) {
	var result types.UserProgress
	err := pr.handle(tx).WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *progressRepo) CompletedTopicIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := pr.handle(tx).WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("user_id = ? AND status = ?", userID, types.StatusCompleted).
		Pluck("topic_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (pr *progressRepo) StartUpsert(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, now time.Time) error {
	row := &types.UserProgress{
		UserID:       userID,
		TopicID:      topicID,
		Status:       types.StatusInProgress,
		LastAccessed: now,
	}
	return pr.handle(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "last_accessed", "updated_at"}),
		}).
		Create(row).Error
}

func (pr *progressRepo) Complete(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, now time.Time) (int64, error) {
	result := pr.handle(tx).WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Updates(map[string]any{
			"status":              types.StatusCompleted,
			"progress_percentage": 100.0,
			"completed_at":        now,
			"last_accessed":       now,
		})
	return result.RowsAffected, result.Error
}

func (pr *progressRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID, percent float64, minutesDelta int, now time.Time) (int64, error) {
	result := pr.handle(tx).WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Updates(map[string]any{
			"progress_percentage": percent,
			"time_spent_minutes":  gorm.Expr("time_spent_minutes + ?", minutesDelta),
			"last_accessed":       now,
		})
	return result.RowsAffected, result.Error
}

func (pr *progressRepo) LatestInProgressTopicTitle(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (string, error) {
	var title string
	err := pr.handle(tx).WithContext(ctx).
		Model(&types.UserProgress{}).
		Select("topic.title").
		Joins("INNER JOIN topic ON topic.id = user_progress.topic_id").
		Where("user_progress.user_id = ? AND user_progress.status = ?", userID, types.StatusInProgress).
		Order("user_progress.last_accessed DESC").
		Limit(1).
		Scan(&title).Error
	if err != nil {
		return "", err
	}
	return title, nil
}
