package db

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	types "github.com/skillpath/roadmap-backend/internal/domain"
)

// seedFile is the on-disk shape of the reference-data seed. Topics refer to
// each other through stable string keys; IDs are assigned at insert time.
type seedFile struct {
	AssessmentQuestions []seedQuestion `yaml:"assessment_questions"`
	Topics              []seedTopic    `yaml:"topics"`
}

type seedQuestion struct {
	QuestionText  string   `yaml:"question_text"`
	QuestionType  string   `yaml:"question_type"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Points        int      `yaml:"points"`
	OrderIndex    int      `yaml:"order_index"`
}

type seedTopic struct {
	Key             string         `yaml:"key"`
	Title           string         `yaml:"title"`
	Description     string         `yaml:"description"`
	Content         string         `yaml:"content"`
	DifficultyLevel string         `yaml:"difficulty_level"`
	EstimatedHours  float64        `yaml:"estimated_hours"`
	OrderIndex      int            `yaml:"order_index"`
	Level           string         `yaml:"level"`
	Prerequisites   []string       `yaml:"prerequisites"`
	Resources       []seedResource `yaml:"resources"`
}

type seedResource struct {
	Title           string `yaml:"title"`
	URL             string `yaml:"url"`
	Type            string `yaml:"type"`
	Platform        string `yaml:"platform"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

// Seed loads reference data (assessment questions, topics, prerequisite
// edges, resources) from a YAML file. Tables that already hold rows are left
// untouched, so reseeding an existing database is a no-op.
func (s *PostgresService) Seed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.seedQuestions(tx, seed.AssessmentQuestions); err != nil {
			return err
		}
		return s.seedTopics(tx, seed.Topics)
	})
}

func (s *PostgresService) seedQuestions(tx *gorm.DB, questions []seedQuestion) error {
	var count int64
	if err := tx.Model(&types.AssessmentQuestion{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(questions) == 0 {
		s.log.Debug("Skipping assessment question seed", "existing", count)
		return nil
	}

	rows := make([]*types.AssessmentQuestion, 0, len(questions))
	for _, q := range questions {
		questionType := q.QuestionType
		if questionType == "" {
			questionType = "multiple_choice"
		}
		points := q.Points
		if points <= 0 {
			points = 1
		}
		rows = append(rows, &types.AssessmentQuestion{
			QuestionText:  q.QuestionText,
			QuestionType:  questionType,
			Options:       types.StringSlice(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
			OrderIndex:    q.OrderIndex,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed assessment questions: %w", err)
	}
	s.log.Info("Seeded assessment questions", "count", len(rows))
	return nil
}

func (s *PostgresService) seedTopics(tx *gorm.DB, topics []seedTopic) error {
	var count int64
	if err := tx.Model(&types.Topic{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(topics) == 0 {
		s.log.Debug("Skipping topic seed", "existing", count)
		return nil
	}

	idsByKey := make(map[string]uuid.UUID, len(topics))
	for _, t := range topics {
		row := &types.Topic{
			Title:           t.Title,
			Description:     t.Description,
			Content:         t.Content,
			DifficultyLevel: t.DifficultyLevel,
			EstimatedHours:  t.EstimatedHours,
			OrderIndex:      t.OrderIndex,
			Level:           types.Level(t.Level),
		}
		if !row.Level.Valid() {
			return fmt.Errorf("seed topic %q: invalid level %q", t.Key, t.Level)
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("seed topic %q: %w", t.Key, err)
		}
		idsByKey[t.Key] = row.ID

		for _, r := range t.Resources {
			resource := &types.LearningResource{
				TopicID:         row.ID,
				Title:           r.Title,
				ResourceURL:     r.URL,
				ResourceType:    r.Type,
				Platform:        r.Platform,
				DurationMinutes: r.DurationMinutes,
			}
			if err := tx.Create(resource).Error; err != nil {
				return fmt.Errorf("seed resource for topic %q: %w", t.Key, err)
			}
		}
	}

	// Second pass so edges can reference topics defined in any order.
	for _, t := range topics {
		for _, prereqKey := range t.Prerequisites {
			prereqID, ok := idsByKey[prereqKey]
			if !ok {
				return fmt.Errorf("seed topic %q: unknown prerequisite key %q", t.Key, prereqKey)
			}
			edge := &types.TopicPrerequisite{
				TopicID:             idsByKey[t.Key],
				PrerequisiteTopicID: prereqID,
			}
			if err := tx.Create(edge).Error; err != nil {
				return fmt.Errorf("seed prerequisite %q -> %q: %w", t.Key, prereqKey, err)
			}
		}
	}

	s.log.Info("Seeded topics", "count", len(topics))
	return nil
}
