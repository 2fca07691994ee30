package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reelhouse/auth-service/auth"
	"github.com/reelhouse/auth-service/internal/config"
	"github.com/reelhouse/auth-service/server"
	redissessionrepo "github.com/reelhouse/auth-service/sessions/redisrepo"
	"github.com/reelhouse/auth-service/token"
	redisuserrepo "github.com/reelhouse/auth-service/users/redisrepo"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	setupLogger(cfg.GetEnv())
	displayAppName(cfg.GetAppName())

	rdb := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})
	defer rdb.Close()
	if err := pingRedis(rdb); err != nil {
		return err
	}

	tokens, err := token.NewService(cfg.GetTokenConfig())
	if err != nil {
		return err
	}

	repos := auth.Repos{
		Users:    redisuserrepo.New(rdb, cfg.GetKeyPrefix()),
		Sessions: redissessionrepo.NewStore(rdb, cfg.GetKeyPrefix()),
	}

	srv, err := server.New(cfg, repos, tokens)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func pingRedis(rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	return nil
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func setupLogger(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func displayAppName(appName string) {
	myFigure := figure.NewFigure(appName, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
