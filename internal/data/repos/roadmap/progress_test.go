package roadmap

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillpath/roadmap-backend/internal/data/repos/testutil"
	types "github.com/skillpath/roadmap-backend/internal/domain"
)

func seedProgressUser(t *testing.T, tx *gorm.DB) uuid.UUID {
	t.Helper()
	u := &types.User{
		Username:     fmt.Sprintf("learner_%d", time.Now().UnixNano()),
		Email:        fmt.Sprintf("learner_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		CurrentLevel: types.LevelBeginner,
	}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func seedTopic(t *testing.T, tx *gorm.DB, title string) uuid.UUID {
	t.Helper()
	topic := &types.Topic{
		Title:      title,
		Level:      types.LevelBeginner,
		OrderIndex: 1,
	}
	if err := tx.Create(topic).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic.ID
}

func TestProgressStartCompleteLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewProgressRepo(db, testutil.Logger(t))
	ctx := context.Background()

	userID := seedProgressUser(t, tx)
	topicID := seedTopic(t, tx, "HTML Fundamentals")

	if err := repo.StartUpsert(ctx, tx, userID, topicID, time.Now()); err != nil {
		t.Fatalf("StartUpsert: %v", err)
	}
	row, err := repo.GetForTopic(ctx, tx, userID, topicID)
	if err != nil {
		t.Fatalf("GetForTopic: %v", err)
	}
	if row == nil || row.Status != types.StatusInProgress {
		t.Fatalf("after start: got=%+v", row)
	}

	rows, err := repo.Complete(ctx, tx, userID, topicID, time.Now())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("Complete rows: got=%d want=1", rows)
	}
	row, err = repo.GetForTopic(ctx, tx, userID, topicID)
	if err != nil {
		t.Fatalf("GetForTopic: %v", err)
	}
	if row.Status != types.StatusCompleted || row.ProgressPercentage != 100 || row.CompletedAt == nil {
		t.Fatalf("after complete: got=%+v", row)
	}

	ids, err := repo.CompletedTopicIDs(ctx, tx, userID)
	if err != nil {
		t.Fatalf("CompletedTopicIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != topicID {
		t.Fatalf("CompletedTopicIDs: got=%v", ids)
	}

	// Restarting a completed topic regresses it to in_progress; the stored
	// row stays unique per (user, topic).
	if err := repo.StartUpsert(ctx, tx, userID, topicID, time.Now()); err != nil {
		t.Fatalf("StartUpsert (restart): %v", err)
	}
	row, err = repo.GetForTopic(ctx, tx, userID, topicID)
	if err != nil {
		t.Fatalf("GetForTopic: %v", err)
	}
	if row.Status != types.StatusInProgress {
		t.Fatalf("restart should regress to in_progress, got=%s", row.Status)
	}
	var count int64
	if err := tx.Model(&types.UserProgress{}).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single progress row, got=%d", count)
	}
}

func TestProgressCompleteWithoutStart(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewProgressRepo(db, testutil.Logger(t))

	userID := seedProgressUser(t, tx)
	topicID := seedTopic(t, tx, "CSS Fundamentals")

	rows, err := repo.Complete(context.Background(), tx, userID, topicID, time.Now())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if rows != 0 {
		t.Fatalf("completing an unstarted topic should touch no rows, got=%d", rows)
	}
}

func TestProgressUpdateAccumulatesTime(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewProgressRepo(db, testutil.Logger(t))
	ctx := context.Background()

	userID := seedProgressUser(t, tx)
	topicID := seedTopic(t, tx, "JavaScript Basics")

	if err := repo.StartUpsert(ctx, tx, userID, topicID, time.Now()); err != nil {
		t.Fatalf("StartUpsert: %v", err)
	}

	if _, err := repo.UpdateProgress(ctx, tx, userID, topicID, 25, 10, time.Now()); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	rows, err := repo.UpdateProgress(ctx, tx, userID, topicID, 60, 15, time.Now())
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if rows != 1 {
		t.Fatalf("UpdateProgress rows: got=%d want=1", rows)
	}

	row, err := repo.GetForTopic(ctx, tx, userID, topicID)
	if err != nil {
		t.Fatalf("GetForTopic: %v", err)
	}
	if row.ProgressPercentage != 60 {
		t.Fatalf("percentage is absolute, got=%v want=60", row.ProgressPercentage)
	}
	if row.TimeSpentMinutes != 25 {
		t.Fatalf("time spent accumulates, got=%d want=25", row.TimeSpentMinutes)
	}
}

func TestLatestInProgressTopicTitle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewProgressRepo(db, testutil.Logger(t))
	ctx := context.Background()

	userID := seedProgressUser(t, tx)

	title, err := repo.LatestInProgressTopicTitle(ctx, tx, userID)
	if err != nil {
		t.Fatalf("LatestInProgressTopicTitle: %v", err)
	}
	if title != "" {
		t.Fatalf("no progress should yield empty title, got=%q", title)
	}

	first := seedTopic(t, tx, "First Topic")
	second := seedTopic(t, tx, "Second Topic")
	base := time.Now()
	if err := repo.StartUpsert(ctx, tx, userID, first, base); err != nil {
		t.Fatalf("StartUpsert: %v", err)
	}
	if err := repo.StartUpsert(ctx, tx, userID, second, base.Add(time.Minute)); err != nil {
		t.Fatalf("StartUpsert: %v", err)
	}

	title, err = repo.LatestInProgressTopicTitle(ctx, tx, userID)
	if err != nil {
		t.Fatalf("LatestInProgressTopicTitle: %v", err)
	}
	if title != "Second Topic" {
		t.Fatalf("most recently accessed topic should win, got=%q", title)
	}
}
