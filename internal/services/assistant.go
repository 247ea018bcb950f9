package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/skillpath/roadmap-backend/internal/clients/openai"
	roadmaprepo "github.com/skillpath/roadmap-backend/internal/data/repos/roadmap"
	userrepo "github.com/skillpath/roadmap-backend/internal/data/repos/user"
	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

const notConfiguredMessage = "Chatbot is not configured. Please add OPENAI_API_KEY to your environment."

const (
	chatMaxTokens   = 300
	quizMaxTokens   = 800
	quizDefaultSize = 5
	quizMaxSize     = 10
	quizContentCap  = 500
)

// LearnerContext is the progress snapshot injected into the mentor prompt
// and echoed back alongside chat responses.
type LearnerContext struct {
	Level              string  `json:"level"`
	CurrentTopic       string  `json:"current_topic"`
	CompletedCount     int     `json:"completed_count"`
	TotalCount         int     `json:"total_count"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

type ChatReply struct {
	Response string         `json:"response"`
	Context  LearnerContext `json:"context"`
}

// QuizQuestion is one generated question after normalization: exactly four
// options, with correct_answer guaranteed to be one of them.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type QuizReply struct {
	Questions  []QuizQuestion `json:"questions"`
	TopicTitle string         `json:"topic_title"`
}

type AssistantService interface {
	// Ask forwards the learner's message to the mentor persona. Provider
	// failures degrade to an apology string rather than an error; only the
	// context lookup itself can fail.
	Ask(ctx context.Context, userID uuid.UUID, message string) (*ChatReply, error)
	// GenerateQuiz builds n multiple-choice questions for a topic. Unusable
	// provider output is an external-service error.
	GenerateQuiz(ctx context.Context, topicID uuid.UUID, n int) (*QuizReply, error)
}

type assistantService struct {
	log       *logger.Logger
	ai        openai.Client
	userRepo  userrepo.UserRepo
	topicRepo roadmaprepo.TopicRepo
	progress  roadmaprepo.ProgressRepo
}

// NewAssistantService accepts a nil ai client; the service then answers with
// a fixed not-configured message instead of calling out.
func NewAssistantService(
	log *logger.Logger,
	ai openai.Client,
	userRepo userrepo.UserRepo,
	topicRepo roadmaprepo.TopicRepo,
	progress roadmaprepo.ProgressRepo,
) AssistantService {
	return &assistantService{
		log:       log.With("service", "AssistantService"),
		ai:        ai,
		userRepo:  userRepo,
		topicRepo: topicRepo,
		progress:  progress,
	}
}

func (s *assistantService) Ask(ctx context.Context, userID uuid.UUID, message string) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message must not be empty", apperr.ErrInvalidArgument)
	}

	learner, err := s.learnerContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.ai == nil {
		return &ChatReply{Response: notConfiguredMessage, Context: *learner}, nil
	}

	systemPrompt := mentorPrompt(learner)
	text, err := s.ai.Complete(ctx, systemPrompt, message, chatMaxTokens, 0.7)
	if err != nil {
		s.log.Error("Chat completion failed", "user_id", userID, "error", err)
		return &ChatReply{
			Response: fmt.Sprintf("Sorry, I'm having trouble responding right now. Error: %s", err),
			Context:  *learner,
		}, nil
	}
	return &ChatReply{Response: text, Context: *learner}, nil
}

func (s *assistantService) GenerateQuiz(ctx context.Context, topicID uuid.UUID, n int) (*QuizReply, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, fmt.Errorf("lookup topic: %w", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("%w: topic not found", apperr.ErrNotFound)
	}

	if n <= 0 {
		n = quizDefaultSize
	}
	if n > quizMaxSize {
		n = quizMaxSize
	}

	if s.ai == nil {
		return nil, fmt.Errorf("%w: quiz generation is not configured", apperr.ErrExternalService)
	}

	raw, err := s.ai.Complete(ctx, "", quizPrompt(topic.Title, topic.Content, n), quizMaxTokens, 0.7)
	if err != nil {
		s.log.Error("Quiz completion failed", "topic_id", topicID, "error", err)
		return nil, fmt.Errorf("%w: failed to generate quiz questions", apperr.ErrExternalService)
	}

	questions := parseQuizResponse(raw)
	if len(questions) == 0 {
		s.log.Warn("Quiz response unusable", "topic_id", topicID)
		return nil, fmt.Errorf("%w: failed to generate quiz questions", apperr.ErrExternalService)
	}
	return &QuizReply{Questions: questions, TopicTitle: topic.Title}, nil
}

func (s *assistantService) learnerContext(ctx context.Context, userID uuid.UUID) (*LearnerContext, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrUnauthorized)
	}

	completedIDs, err := s.progress.CompletedTopicIDs(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed topics: %w", err)
	}
	total, err := s.topicRepo.CountByLevel(ctx, nil, user.CurrentLevel)
	if err != nil {
		return nil, fmt.Errorf("count topics: %w", err)
	}
	currentTopic, err := s.progress.LatestInProgressTopicTitle(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup current topic: %w", err)
	}
	if currentTopic == "" {
		currentTopic = "None"
	}

	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(len(completedIDs))/float64(total)*10000) / 100
	}
	return &LearnerContext{
		Level:              string(user.CurrentLevel),
		CurrentTopic:       currentTopic,
		CompletedCount:     len(completedIDs),
		TotalCount:         int(total),
		ProgressPercentage: pct,
	}, nil
}

func mentorPrompt(learner *LearnerContext) string {
	return fmt.Sprintf(`You are a friendly and helpful programming mentor for a learning platform focused on Full-Stack JavaScript Development.

Student Context:
- Level: %s
- Current Topic: %s
- Topics Completed: %d/%d
- Progress: %g%%

Your role:
1. Answer programming questions clearly and concisely
2. Provide encouragement and motivation
3. Suggest next steps in their learning journey
4. Give code examples when relevant
5. Explain concepts at their skill level
6. Be supportive and positive

Keep responses concise (2-3 paragraphs max) unless asked for detailed explanations.`,
		learner.Level,
		learner.CurrentTopic,
		learner.CompletedCount,
		learner.TotalCount,
		learner.ProgressPercentage,
	)
}

func quizPrompt(title, content string, n int) string {
	// Cap counts runes, not bytes, so multibyte content is never cut mid
	// character.
	if runes := []rune(content); len(runes) > quizContentCap {
		content = string(runes[:quizContentCap])
	}
	return fmt.Sprintf(`Generate %d multiple-choice quiz questions for the topic: "%s"

Topic content: %s

Format as JSON array with this structure:
[
  {
    "question": "Question text?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct_answer": "Option A",
    "explanation": "Brief explanation"
  }
]

Make questions practical and test understanding, not just memorization.`, n, title, content)
}

// stripCodeFence unwraps a ```json ... ``` (or bare ```) block; models often
// fence their output even when asked for raw JSON.
func stripCodeFence(s string) string {
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+len("```"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	return strings.TrimSpace(s)
}

func parseQuizResponse(raw string) []QuizQuestion {
	var parsed []QuizQuestion
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return nil
	}

	questions := make([]QuizQuestion, 0, len(parsed))
	for _, q := range parsed {
		if normalized, ok := normalizeQuestion(q); ok {
			questions = append(questions, normalized)
		}
	}
	return questions
}

// normalizeQuestion enforces exactly four options and a correct answer drawn
// from them. Questions without text are dropped; a correct answer that
// matches no option is coerced to the first one so the quiz stays playable.
func normalizeQuestion(q QuizQuestion) (QuizQuestion, bool) {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return QuizQuestion{}, false
	}

	options := make([]string, 0, 4)
	for _, opt := range q.Options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	if len(options) == 0 {
		return QuizQuestion{}, false
	}
	for len(options) < 4 {
		options = append(options, fmt.Sprintf("Option %c", 'A'+len(options)))
	}
	if len(options) > 4 {
		options = options[:4]
	}
	q.Options = options

	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	matched := false
	for _, opt := range options {
		if q.CorrectAnswer == opt {
			matched = true
			break
		}
	}
	if !matched {
		q.CorrectAnswer = options[0]
	}
	return q, true
}
