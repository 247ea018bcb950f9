package roadmap

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type TopicRepo interface {
	ListByLevel(ctx context.Context, tx *gorm.DB, level types.Level) ([]*types.Topic, error)
	GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
	CountByLevel(ctx context.Context, tx *gorm.DB, level types.Level) (int64, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (tr *topicRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return tr.db
}

func (tr *topicRepo) ListByLevel(ctx context.Context, tx *gorm.DB, level types.Level) ([]*types.Topic, error) {
	var results []*types.Topic
	if err := tr.handle(tx).WithContext(ctx).
		Where("level = ?", level).
		Order("order_index").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *topicRepo) GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
	var result types.Topic
	err := tr.handle(tx).WithContext(ctx).
		Where("id = ?", topicID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *topicRepo) CountByLevel(ctx context.Context, tx *gorm.DB, level types.Level) (int64, error) {
	var count int64
	if err := tr.handle(tx).WithContext(ctx).
		Model(&types.Topic{}).
		Where("level = ?", level).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
