package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortunaclub/spinbot/internal/clock"
	"github.com/fortunaclub/spinbot/internal/core/ports"
	"github.com/fortunaclub/spinbot/internal/core/service"
	"github.com/fortunaclub/spinbot/internal/infrastructure/backend"
	"github.com/fortunaclub/spinbot/internal/infrastructure/config"
	opshttp "github.com/fortunaclub/spinbot/internal/infrastructure/http"
	"github.com/fortunaclub/spinbot/internal/infrastructure/session"
	"github.com/fortunaclub/spinbot/internal/infrastructure/telegram"
	"github.com/fortunaclub/spinbot/internal/state"
	"github.com/fortunaclub/spinbot/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Redis is optional: without it sessions live in a file and update
	// dedup is disabled.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = session.Connect(ctx, session.ConnConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Error().Err(err).Msg("connect redis")
			os.Exit(1)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("close redis")
			}
		}()
	}

	var sessions ports.SessionStore
	var dedup telegram.Dedup
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
		dedup = telegram.NewRedisDedup(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions backed by redis")
	} else {
		fileStore, err := session.NewFileStore(cfg.Session.File)
		if err != nil {
			log.Error().Err(err).Str("file", cfg.Session.File).Msg("open session file")
			os.Exit(1)
		}
		sessions = fileStore
		log.Info().Str("file", cfg.Session.File).Msg("sessions backed by file")
	}

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	bot, err := telegram.New(cfg.Telegram.Token, dedup, log)
	if err != nil {
		log.Error().Err(err).Msg("connect telegram")
		os.Exit(1)
	}

	clk := clock.System{}
	orc := service.NewOrchestrator(service.Deps{
		Sessions:  sessions,
		Dialogs:   state.NewDialogStore(),
		Geo:       state.NewGeoConfirmation(cfg.Spin.GeoTTL, clk),
		Rate:      state.NewRateWindow(cfg.Spin.RateMax, cfg.Spin.RateWindow, clk),
		Referrals: state.NewReferralLedger(),
		Backend:   client,
		Sender:    bot,
		Input:     service.NewInputValidator(cfg.Referral.Prefix, cfg.Referral.CodeLen),
		Clock:     clk,
		Log:       log,
	}, service.Options{
		AuthCode:        cfg.Backend.AuthCode,
		MinSpinBalance:  cfg.Spin.MinBalance,
		SpinResultDelay: cfg.Spin.ResultDelay,
		TokenExpiry:     backend.TokenExpiry,
	})

	// Ops server: health probes and Prometheus metrics.
	ops := opshttp.NewRouter(rdb, func(ctx context.Context) error {
		_, err := client.RecentWins(ctx)
		return err
	})
	go func() {
		if err := ops.Start(":" + cfg.Port); err != nil {
			log.Warn().Err(err).Msg("ops server stopped")
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	botErrCh := make(chan error, 1)
	go func() {
		botErrCh <- bot.Run(runCtx, orc)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-botErrCh:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("bot stopped")
			os.Exit(1)
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := ops.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("ops server shutdown")
	}

	log.Info().Msg("bot exited cleanly")
}
