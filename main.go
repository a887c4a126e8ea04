package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/explorer"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/llm"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/repo"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/router"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/steps"
	"github.com/AngelitoMA11/DataProject-3/internal/core"
	"github.com/AngelitoMA11/DataProject-3/internal/search/canned"
	"github.com/AngelitoMA11/DataProject-3/internal/search/serpapi"
	"github.com/AngelitoMA11/DataProject-3/internal/server"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
	pkgredis "github.com/AngelitoMA11/DataProject-3/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Planner      model.PlannerModelConfig
	Explorer     model.ExplorerModelConfig
	Conversation model.ConversationConfig

	// Travel search providers
	Search serpapi.Config
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Conversation.TTL).Msg("invalid CONVERSATION_TTL")
	}

	var tripRepo model.TripRepository
	if cfg.Redis.URL != "" {
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise Redis client")
		}
		defer rdb.Close()
		tripRepo = repo.NewRedisTripRepository(rdb, ttl)
		logx.Info().Msg("using Redis trip repository")
	} else {
		tripRepo = repo.NewMemoryTripRepository()
		logx.Warn().Msg("REDIS_URL not set, using in-memory trip repository")
	}

	models, err := llm.NewModels(ctx, llm.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Planner:  &cfg.Planner,
		Explorer: &cfg.Explorer,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise Gemini models")
	}

	var search model.ExternalSearchPort
	if cfg.Search.APIKey != "" {
		search = serpapi.New(cfg.Search, models.Explorer)
	} else {
		search = canned.New()
	}

	clarifier := explorer.New(models.Explorer, cfg.Conversation.Explorer.MaxTurns)
	execs := steps.New(search, clarifier)
	conv := router.New(models.Planner, execs, tripRepo, cfg.Conversation)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(conv, tripRepo).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logx.Info().Str("addr", cfg.HTTPAddr).Msg("trip assistant listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
	logx.Info().Msg("shutdown complete")
}
