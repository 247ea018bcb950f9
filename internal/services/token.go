package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperr "github.com/skillpath/roadmap-backend/internal/pkg/errors"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

// Claims is the signed identity payload carried by an access token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(userID uuid.UUID, username string) (string, error)
	// Verify returns the claims and the parsed subject. Bad signature,
	// expiry and a malformed subject all surface as the unauthorized kind;
	// the distinction is logged, never returned to clients.
	Verify(tokenString string) (*Claims, uuid.UUID, error)
	AccessTTL() time.Duration
}

type tokenService struct {
	log       *logger.Logger
	secretKey []byte
	accessTTL time.Duration
}

func NewTokenService(log *logger.Logger, secretKey string, accessTTL time.Duration) TokenService {
	return &tokenService{
		log:       log.With("service", "TokenService"),
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
	}
}

func (ts *tokenService) Issue(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secretKey)
}

func (ts *tokenService) Verify(tokenString string) (*Claims, uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return ts.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		ts.log.Debug("Token rejected", "error", err)
		return nil, uuid.Nil, fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, uuid.Nil, fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		ts.log.Debug("Token subject malformed", "subject", claims.Subject)
		return nil, uuid.Nil, fmt.Errorf("%w: invalid token subject", apperr.ErrUnauthorized)
	}
	return claims, userID, nil
}

func (ts *tokenService) AccessTTL() time.Duration {
	return ts.accessTTL
}
