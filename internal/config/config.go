package config

import "github.com/reelhouse/auth-service/token"

type Config interface {
	EnvConfig
	CorsConfig
	TokenConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetRedisAddr() string
	GetKeyPrefix() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// TokenConfig exposes the four token signing settings. They have no defaults:
// loading fails when any is absent or unparsable.
type TokenConfig interface {
	GetTokenConfig() token.Config
}

type mainConfig struct {
	EnvVars
	Cors
	TokenSettings
}

func New() (Config, error) {
	tokenSettings, err := loadTokenSettings()
	if err != nil {
		return nil, err
	}
	return mainConfig{TokenSettings: tokenSettings}, nil
}
