package assessment

import (
	"context"

	"gorm.io/gorm"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type QuestionRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.AssessmentQuestion, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (qr *questionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.AssessmentQuestion, error) {
	handle := tx
	if handle == nil {
		handle = qr.db
	}
	var results []*types.AssessmentQuestion
	if err := handle.WithContext(ctx).
		Order("order_index").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
