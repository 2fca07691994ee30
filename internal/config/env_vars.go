package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar      = "PORT"
	appNameEnvVar   = "APP_NAME"
	redisAddrEnvVar = "REDIS_ADDR"
	keyPrefixEnvVar = "REDIS_KEY_PREFIX"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := getEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return getEnv(appNameEnvVar, "Catalog Auth")
}

func (EnvVars) GetEnv() string {
	return getEnv("ENV", "DEV")
}

func (EnvVars) GetRedisAddr() string {
	return getEnv(redisAddrEnvVar, "127.0.0.1:6379")
}

func (EnvVars) GetKeyPrefix() string {
	return getEnv(keyPrefixEnvVar, "catalog:")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
