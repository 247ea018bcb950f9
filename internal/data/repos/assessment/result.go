package assessment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type ResultRepo interface {
	// Upsert keeps at most one row per user; a resubmission overwrites the
	// previous result.
	Upsert(ctx context.Context, tx *gorm.DB, result *types.UserAssessment) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserAssessment, error)
}

type resultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	return &resultRepo{db: db, log: baseLog.With("repo", "ResultRepo")}
}

func (rr *resultRepo) Upsert(ctx context.Context, tx *gorm.DB, result *types.UserAssessment) error {
	handle := tx
	if handle == nil {
		handle = rr.db
	}
	return handle.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "total_questions", "assigned_level", "answers", "completed_at", "updated_at",
			}),
		}).
		Create(result).Error
}

func (rr *resultRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserAssessment, error) {
	handle := tx
	if handle == nil {
		handle = rr.db
	}
	var result types.UserAssessment
	err := handle.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
