package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Username               string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email                  string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash           string    `gorm:"not null;column:password_hash" json:"-"`
	CurrentLevel           Level     `gorm:"not null;default:'beginner';column:current_level" json:"current_level"`
	HasCompletedAssessment bool      `gorm:"not null;default:false;column:has_completed_assessment" json:"has_completed_assessment"`
	CreatedAt              time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
