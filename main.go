package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/pasar-labs/xiara/server/internal/agent/ambiguity"
	"github.com/pasar-labs/xiara/server/internal/agent/answer"
	"github.com/pasar-labs/xiara/server/internal/agent/model"
	"github.com/pasar-labs/xiara/server/internal/agent/negotiation"
	"github.com/pasar-labs/xiara/server/internal/agent/orchestrator"
	"github.com/pasar-labs/xiara/server/internal/agent/profile"
	"github.com/pasar-labs/xiara/server/internal/agent/repo"
	"github.com/pasar-labs/xiara/server/internal/api"
	"github.com/pasar-labs/xiara/server/internal/core"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
	pkgredis "github.com/pasar-labs/xiara/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the agent service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Addr        string `envconfig:"HTTP_ADDR" default:":8080"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Generator  model.GeneratorModelConfig
	Classifier model.ClassifierModelConfig
	Prompt     model.PromptConfig
	Session    model.SessionConfig
	Cache      model.CacheConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	defer rdb.Close()

	sessionTTL, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("value", cfg.Session.TTL).Msg("Invalid SESSION_TTL")
	}
	cacheTTL, err := time.ParseDuration(cfg.Cache.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("value", cfg.Cache.TTL).Msg("Invalid RESPONSE_CACHE_TTL")
	}
	genTimeout, err := time.ParseDuration(cfg.Generator.Timeout)
	if err != nil {
		logx.Fatal().Err(err).Str("value", cfg.Generator.Timeout).Msg("Invalid GENERATOR_TIMEOUT")
	}

	chatModels, err := answer.NewChatModels(ctx, answer.ChatModelConfig{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		GeneratorConfig:  &cfg.Generator,
		ClassifierConfig: &cfg.Classifier,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build chat models")
	}

	agent := orchestrator.New(orchestrator.Config{
		Sessions:   repo.NewRedisSessionRepository(rdb, sessionTTL),
		History:    repo.NewRedisHistoryRepository(rdb, sessionTTL, cfg.Session.History.MaxTurns),
		Cache:      repo.NewRedisResponseCache(rdb, cacheTTL),
		Generator:  answer.NewGenerator(chatModels.Generator, cfg.Prompt),
		Classifier: ambiguity.NewClassifier(answer.NewLLMBorderlineClassifier(chatModels.Classifier)),
		Negotiator: negotiation.NewNegotiator(repo.NewRedisNegotiationRepository(rdb)),
		Profiles:   profile.NewManager(repo.NewRedisProfileRepository(rdb)),
		GenTimeout: genTimeout,
	})

	mux := http.NewServeMux()
	api.NewHandler(agent).Register(mux)

	logx.Info().Str("addr", cfg.Addr).Msg("Xiara agent listening")
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logx.Fatal().Err(err).Msg("HTTP server stopped")
	}
}
