package roadmap

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type ResourceRepo interface {
	ListForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.LearningResource, error)
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (rr *resourceRepo) ListForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.LearningResource, error) {
	handle := tx
	if handle == nil {
		handle = rr.db
	}
	var results []*types.LearningResource
	if err := handle.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
