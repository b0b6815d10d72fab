package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vancy-storefront/server/internal/cli"
	"github.com/vancy-storefront/server/internal/core"
	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront"
	storemodel "github.com/vancy-storefront/server/internal/storefront/model"
	storerepo "github.com/vancy-storefront/server/internal/storefront/repo"
	"github.com/vancy-storefront/server/internal/stylist"
	stylistmodel "github.com/vancy-storefront/server/internal/stylist/model"
	stylistrepo "github.com/vancy-storefront/server/internal/stylist/repo"
	logx "github.com/vancy-storefront/server/pkg/logger"
	pkgredis "github.com/vancy-storefront/server/pkg/redis"
)

// AppConfig defines every configurable parameter of the storefront,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config

	Store   storemodel.StoreConfig
	Stylist stylistmodel.Config
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(cfg.Environment),
		Level:       cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := newApp(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to start storefront")
	}
	defer cleanup()

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		logx.Debug().Err(err).Int("status", errx.StatusOf(err)).Msg("command failed")
		cleanup()
		os.Exit(1)
	}
}

// newApp wires the store and stylist to Redis, or to process memory when
// STORE_PERSISTENCE=memory.
func newApp(ctx context.Context, cfg AppConfig) (*cli.App, func(), error) {
	var (
		stateRepo   storemodel.StateRepository
		historyRepo stylistmodel.ConversationRepository
		cleanup     = func() {}
	)

	switch strings.ToLower(cfg.Store.Persistence) {
	case "memory":
		stateRepo = storerepo.NewMemoryStateRepository()
		historyRepo = stylistrepo.NewMemoryConversationRepository()
	default:
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", errx.WrapRedis(err))
		}
		cleanup = closeRedis(rdb)
		stateRepo = storerepo.NewRedisStateRepository(rdb, cfg.Store.KeyPrefix, cfg.Store.TTL())
		historyRepo = stylistrepo.NewRedisConversationRepository(rdb, cfg.Store.KeyPrefix, cfg.Stylist.Conversation.HistoryTTL())
	}

	store, err := storefront.New(ctx, stateRepo, storefront.OptionsFromConfig(cfg.Store))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	advisor, err := stylist.New(ctx, stylist.Options{
		Config:  cfg.Stylist,
		Catalog: store,
		History: historyRepo,
	})
	if err != nil {
		logx.Warn().Err(err).Msg("stylist unavailable; using fallbacks")
		advisor = stylist.Offline()
	}

	return &cli.App{Store: store, Stylist: advisor}, cleanup, nil
}

func closeRedis(rdb *goredis.Client) func() {
	var closed bool
	return func() {
		if closed {
			return
		}
		closed = true
		if err := rdb.Close(); err != nil {
			logx.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}

// userMessage prefers the safe message of domain errors.
func userMessage(err error) string {
	if msg := errx.MessageOf(err); msg != errx.SystemErrorMessage {
		return msg
	}
	return err.Error()
}
