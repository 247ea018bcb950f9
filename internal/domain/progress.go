package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopicStatus is the per-(user, topic) state. Only in_progress and completed
// are persisted; locked and available are derived on every read.
type TopicStatus string

const (
	StatusLocked     TopicStatus = "locked"
	StatusAvailable  TopicStatus = "available"
	StatusInProgress TopicStatus = "in_progress"
	StatusCompleted  TopicStatus = "completed"
)

// UserProgress is the authoritative state for a topic once it has been
// started. At most one row per (user, topic) pair.
type UserProgress struct {
	ID                 uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID   `gorm:"uniqueIndex:idx_user_progress_user_topic;not null;column:user_id" json:"user_id"`
	User               *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	TopicID            uuid.UUID   `gorm:"uniqueIndex:idx_user_progress_user_topic;not null;column:topic_id" json:"topic_id"`
	Topic              *Topic      `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	Status             TopicStatus `gorm:"not null;column:status" json:"status"`
	ProgressPercentage float64     `gorm:"not null;default:0;column:progress_percentage" json:"progress_percentage"`
	TimeSpentMinutes   int         `gorm:"not null;default:0;column:time_spent_minutes" json:"time_spent_minutes"`
	LastAccessed       time.Time   `gorm:"not null;default:now();column:last_accessed" json:"last_accessed"`
	CompletedAt        *time.Time  `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt          time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
