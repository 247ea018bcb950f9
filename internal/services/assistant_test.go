package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `[{"question":"q"}]`, `[{"question":"q"}]`},
		{"json fence", "```json\n[1,2]\n```", "[1,2]"},
		{"bare fence", "```\n[1,2]\n```", "[1,2]"},
		{"fence with leading prose", "Here you go:\n```json\n[1]\n```", "[1]"},
		{"unterminated fence", "```json\n[1]", "[1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.in); got != tc.want {
				t.Fatalf("stripCodeFence: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestParseQuizResponse(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		raw := "```json\n" + `[
			{
				"question": "What does let declare?",
				"options": ["A block-scoped variable", "A constant", "A function", "A class"],
				"correct_answer": "A block-scoped variable",
				"explanation": "let declares block-scoped variables."
			}
		]` + "\n```"
		questions := parseQuizResponse(raw)
		if len(questions) != 1 {
			t.Fatalf("expected 1 question, got %d", len(questions))
		}
		if questions[0].CorrectAnswer != "A block-scoped variable" {
			t.Fatalf("correct answer: got=%q", questions[0].CorrectAnswer)
		}
	})

	t.Run("invalid json yields nothing", func(t *testing.T) {
		if got := parseQuizResponse("I could not produce a quiz."); len(got) != 0 {
			t.Fatalf("expected no questions, got %d", len(got))
		}
	})

	t.Run("questions without text are dropped", func(t *testing.T) {
		raw := `[{"question": "  ", "options": ["a"], "correct_answer": "a"}]`
		if got := parseQuizResponse(raw); len(got) != 0 {
			t.Fatalf("expected no questions, got %d", len(got))
		}
	})
}

func TestNormalizeQuestion(t *testing.T) {
	t.Run("pads short option lists to four", func(t *testing.T) {
		q, ok := normalizeQuestion(QuizQuestion{
			Question:      "Pick one",
			Options:       []string{"x", "y"},
			CorrectAnswer: "y",
		})
		if !ok {
			t.Fatalf("expected question to survive normalization")
		}
		if len(q.Options) != 4 {
			t.Fatalf("options: got=%d want=4", len(q.Options))
		}
		if q.CorrectAnswer != "y" {
			t.Fatalf("matching correct answer must be preserved, got=%q", q.CorrectAnswer)
		}
	})

	t.Run("truncates long option lists", func(t *testing.T) {
		q, _ := normalizeQuestion(QuizQuestion{
			Question:      "Pick one",
			Options:       []string{"a", "b", "c", "d", "e", "f"},
			CorrectAnswer: "a",
		})
		if len(q.Options) != 4 {
			t.Fatalf("options: got=%d want=4", len(q.Options))
		}
	})

	t.Run("unmatched correct answer is coerced to first option", func(t *testing.T) {
		q, _ := normalizeQuestion(QuizQuestion{
			Question:      "Pick one",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "e",
		})
		if q.CorrectAnswer != "a" {
			t.Fatalf("correct answer: got=%q want=%q", q.CorrectAnswer, "a")
		}
	})

	t.Run("no options drops the question", func(t *testing.T) {
		if _, ok := normalizeQuestion(QuizQuestion{Question: "Pick one"}); ok {
			t.Fatalf("question without options should be dropped")
		}
	})
}

func TestQuizPromptTruncatesContent(t *testing.T) {
	long := strings.Repeat("x", 2000)
	prompt := quizPrompt("Topic", long, 5)
	if strings.Contains(prompt, strings.Repeat("x", quizContentCap+1)) {
		t.Fatalf("content should be capped at %d characters", quizContentCap)
	}
	if !strings.Contains(prompt, strings.Repeat("x", quizContentCap)) {
		t.Fatalf("capped content should still be present")
	}
}

func TestQuizPromptTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", quizContentCap+100)
	prompt := quizPrompt("Topic", long, 5)
	if !utf8.ValidString(prompt) {
		t.Fatalf("truncation must not split a multibyte character")
	}
	if !strings.Contains(prompt, strings.Repeat("é", quizContentCap)) {
		t.Fatalf("cap should keep the first %d characters", quizContentCap)
	}
	if strings.Contains(prompt, strings.Repeat("é", quizContentCap+1)) {
		t.Fatalf("cap should count characters, not bytes")
	}
}

func TestMentorPromptIncludesContext(t *testing.T) {
	prompt := mentorPrompt(&LearnerContext{
		Level:              "intermediate",
		CurrentTopic:       "React Fundamentals",
		CompletedCount:     3,
		TotalCount:         8,
		ProgressPercentage: 37.5,
	})
	for _, want := range []string{"intermediate", "React Fundamentals", "3/8", "37.5%"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
