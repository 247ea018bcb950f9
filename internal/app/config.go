package app

import (
	"time"

	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
	"github.com/skillpath/roadmap-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	Port           string
	SeedFile       string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 30, log)
	port := utils.GetEnv("PORT", "8080", log)
	seedFile := utils.GetEnv("SEED_FILE", "", log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLMinutes) * time.Minute,
		Port:           port,
		SeedFile:       seedFile,
	}
}
