package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/skillpath/roadmap-backend/internal/data/repos/user"
	types "github.com/skillpath/roadmap-backend/internal/domain"
	"github.com/skillpath/roadmap-backend/internal/pkg/ctxutil"
	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*types.User, error)
	Login(ctx context.Context, username, password string) (*types.User, string, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	// CurrentUser resolves the authenticated identity on the context to a
	// stored user; an unknown id is an auth failure, not a 404.
	CurrentUser(ctx context.Context) (*types.User, error)
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
	tokens   TokenService
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo userrepo.UserRepo, tokens TokenService) AuthService {
	return &authService{
		db:       db,
		log:      log.With("service", "AuthService"),
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (as *authService) Register(ctx context.Context, username, email, password string) (*types.User, error) {
	username = strings.TrimSpace(username)
	// Emails are stored lowercased so every later lookup is effectively
	// case-insensitive.
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	usernameTaken, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if usernameTaken {
		return nil, fmt.Errorf("%w: username already exists", apperr.ErrConflict)
	}
	emailTaken, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if emailTaken {
		return nil, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CurrentLevel: types.LevelBeginner,
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return as.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		// The pre-checks race with concurrent registrations; the unique
		// indexes are the real guard.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already registered", apperr.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	as.log.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*types.User, string, error) {
	username = strings.TrimSpace(username)

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, "", fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthorized)
	}

	token, err := as.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (as *authService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := as.userRepo.UsernameExists(ctx, nil, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return !exists, nil
}

func (as *authService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := as.userRepo.EmailExists(ctx, nil, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return !exists, nil
}

func (as *authService) CurrentUser(ctx context.Context) (*types.User, error) {
	identity := ctxutil.GetIdentity(ctx)
	if identity == nil {
		return nil, fmt.Errorf("%w: no identity on context", apperr.ErrUnauthorized)
	}
	user, err := as.userRepo.GetByID(ctx, nil, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrUnauthorized)
	}
	return user, nil
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-50 characters of letters, digits or underscore", apperr.ErrInvalidArgument)
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("%w: invalid email address", apperr.ErrInvalidArgument)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperr.ErrInvalidArgument)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: password must contain upper and lower case letters and a digit", apperr.ErrInvalidArgument)
	}
	return nil
}
