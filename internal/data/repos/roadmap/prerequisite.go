package roadmap

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type PrerequisiteRepo interface {
	IDsForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]uuid.UUID, error)
	DetailsForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Topic, error)
}

type prerequisiteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrerequisiteRepo(db *gorm.DB, baseLog *logger.Logger) PrerequisiteRepo {
	return &prerequisiteRepo{db: db, log: baseLog.With("repo", "PrerequisiteRepo")}
}

func (pr *prerequisiteRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *prerequisiteRepo) IDsForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := pr.handle(tx).WithContext(ctx).
		Model(&types.TopicPrerequisite{}).
		Where("topic_id = ?", topicID).
		Pluck("prerequisite_topic_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (pr *prerequisiteRepo) DetailsForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Topic, error) {
	var results []*types.Topic
	if err := pr.handle(tx).WithContext(ctx).
		Model(&types.Topic{}).
		Joins("INNER JOIN topic_prerequisite tp ON tp.prerequisite_topic_id = topic.id").
		Where("tp.topic_id = ?", topicID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
