package config

import (
	"fmt"
	"os"
	"time"

	"github.com/reelhouse/auth-service/token"
)

const (
	accessSecretEnvVar  = "JWT_ACCESSTOKEN_SECRET"
	accessExpiryEnvVar  = "JWT_ACCESSTOKEN_EXPIRES_IN"
	refreshSecretEnvVar = "JWT_REFRESHTOKEN_SECRET"
	refreshExpiryEnvVar = "JWT_REFRESHTOKEN_EXPIRES_IN"
)

type TokenSettings struct {
	tokenConfig token.Config
}

var _ TokenConfig = TokenSettings{}

func (t TokenSettings) GetTokenConfig() token.Config {
	return t.tokenConfig
}

func loadTokenSettings() (TokenSettings, error) {
	accessSecret, err := requireEnv(accessSecretEnvVar)
	if err != nil {
		return TokenSettings{}, err
	}
	refreshSecret, err := requireEnv(refreshSecretEnvVar)
	if err != nil {
		return TokenSettings{}, err
	}
	accessTTL, err := requireDuration(accessExpiryEnvVar)
	if err != nil {
		return TokenSettings{}, err
	}
	refreshTTL, err := requireDuration(refreshExpiryEnvVar)
	if err != nil {
		return TokenSettings{}, err
	}

	return TokenSettings{
		tokenConfig: token.Config{
			AccessSecret:  []byte(accessSecret),
			AccessTTL:     accessTTL,
			RefreshSecret: []byte(refreshSecret),
			RefreshTTL:    refreshTTL,
		},
	}, nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("config: %s is required", key)
	}
	return value, nil
}

func requireDuration(key string) (time.Duration, error) {
	raw, err := requireEnv(key)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parsing %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", key)
	}
	return d, nil
}
