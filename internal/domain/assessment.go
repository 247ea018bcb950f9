package domain

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentQuestion struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionText  string      `gorm:"not null;column:question_text" json:"question_text"`
	QuestionType  string      `gorm:"not null;default:'multiple_choice';column:question_type" json:"question_type"`
	Options       StringSlice `gorm:"column:options" json:"options"`
	CorrectAnswer string      `gorm:"not null;column:correct_answer" json:"-"`
	Points        int         `gorm:"not null;default:1;column:points" json:"-"`
	OrderIndex    int         `gorm:"not null;default:0;column:order_index" json:"order_index"`
	CreatedAt     time.Time   `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_question"
}

// UserAssessment is the single per-user record of the last submission.
type UserAssessment struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	User           *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Score          int        `gorm:"not null;column:score" json:"score"`
	TotalQuestions int        `gorm:"not null;column:total_questions" json:"total_questions"`
	AssignedLevel  Level      `gorm:"not null;column:assigned_level" json:"assigned_level"`
	Answers        AnswerList `gorm:"column:answers" json:"answers"`
	CompletedAt    time.Time  `gorm:"not null;default:now();column:completed_at" json:"completed_at"`
	CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserAssessment) TableName() string {
	return "user_assessment"
}
