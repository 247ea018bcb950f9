package domain

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string    `gorm:"not null;column:title" json:"title"`
	Description     string    `gorm:"column:description" json:"description"`
	Content         string    `gorm:"column:content" json:"content"`
	DifficultyLevel string    `gorm:"column:difficulty_level" json:"difficulty_level"`
	EstimatedHours  float64   `gorm:"not null;default:0;column:estimated_hours" json:"estimated_hours"`
	OrderIndex      int       `gorm:"not null;default:0;column:order_index" json:"order_index"`
	Level           Level     `gorm:"index;not null;column:level" json:"level"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Topic) TableName() string {
	return "topic"
}

// TopicPrerequisite is one edge of the prerequisite graph. The seed data is
// assumed acyclic; this is not enforced here.
type TopicPrerequisite struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TopicID             uuid.UUID `gorm:"uniqueIndex:idx_topic_prerequisite;not null;column:topic_id" json:"topic_id"`
	Topic               *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	PrerequisiteTopicID uuid.UUID `gorm:"uniqueIndex:idx_topic_prerequisite;not null;column:prerequisite_topic_id" json:"prerequisite_topic_id"`
	PrerequisiteTopic   *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PrerequisiteTopicID;references:ID" json:"-"`
}

func (TopicPrerequisite) TableName() string {
	return "topic_prerequisite"
}
