package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/skillpath/roadmap-backend/internal/data/repos/testutil"
	types "github.com/skillpath/roadmap-backend/internal/domain"
)

func seedUser(t *testing.T, repo UserRepo, tx *gorm.DB, username string) *types.User {
	t.Helper()
	u := &types.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
		CurrentLevel: types.LevelBeginner,
	}
	if err := repo.Create(context.Background(), tx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestUserRepoCreateAndLookup(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := seedUser(t, repo, tx, fmt.Sprintf("alice_%d", time.Now().UnixNano()))

	got, err := repo.GetByID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Username != u.Username {
		t.Fatalf("GetByID: got=%+v", got)
	}

	byName, err := repo.GetByUsername(ctx, tx, u.Username)
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName == nil || byName.ID != u.ID {
		t.Fatalf("GetByUsername: got=%+v", byName)
	}

	byEmail, err := repo.GetByEmail(ctx, tx, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Fatalf("GetByEmail: got=%+v", byEmail)
	}

	missing, err := repo.GetByUsername(ctx, tx, "no_such_user")
	if err != nil {
		t.Fatalf("GetByUsername (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("missing user should be nil, got=%+v", missing)
	}
}

func TestUserRepoExistenceChecks(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := seedUser(t, repo, tx, fmt.Sprintf("bob_%d", time.Now().UnixNano()))

	exists, err := repo.UsernameExists(ctx, tx, u.Username)
	if err != nil || !exists {
		t.Fatalf("UsernameExists: got=%v err=%v", exists, err)
	}
	exists, err = repo.EmailExists(ctx, tx, u.Email)
	if err != nil || !exists {
		t.Fatalf("EmailExists: got=%v err=%v", exists, err)
	}
	exists, err = repo.UsernameExists(ctx, tx, "no_such_user")
	if err != nil || exists {
		t.Fatalf("UsernameExists (missing): got=%v err=%v", exists, err)
	}
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := seedUser(t, repo, tx, fmt.Sprintf("carol_%d", time.Now().UnixNano()))

	dup := &types.User{
		Username:     u.Username,
		Email:        "other@example.com",
		PasswordHash: "x",
		CurrentLevel: types.LevelBeginner,
	}
	err := repo.Create(ctx, tx, dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestUserRepoSetLevel(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := seedUser(t, repo, tx, fmt.Sprintf("dave_%d", time.Now().UnixNano()))

	if err := repo.SetLevel(ctx, tx, u.ID, types.LevelAdvanced, true); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	got, err := repo.GetByID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CurrentLevel != types.LevelAdvanced || !got.HasCompletedAssessment {
		t.Fatalf("after SetLevel: level=%s completed=%v", got.CurrentLevel, got.HasCompletedAssessment)
	}

	if err := repo.SetAssessmentCompleted(ctx, tx, u.ID, false); err != nil {
		t.Fatalf("SetAssessmentCompleted: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.HasCompletedAssessment {
		t.Fatalf("retake reset should clear the flag but keep the level, got level=%s", got.CurrentLevel)
	}
	if got.CurrentLevel != types.LevelAdvanced {
		t.Fatalf("level should survive the reset, got=%s", got.CurrentLevel)
	}
}
