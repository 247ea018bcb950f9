package domain

import (
	"time"

	"github.com/google/uuid"
)

type LearningResource struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TopicID         uuid.UUID `gorm:"index;not null;column:topic_id" json:"topic_id"`
	Topic           *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	Title           string    `gorm:"not null;column:title" json:"title"`
	ResourceURL     string    `gorm:"not null;column:resource_url" json:"url"`
	ResourceType    string    `gorm:"column:resource_type" json:"type"`
	Platform        string    `gorm:"column:platform" json:"platform"`
	DurationMinutes int       `gorm:"not null;default:0;column:duration_minutes" json:"duration"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (LearningResource) TableName() string {
	return "learning_resource"
}
