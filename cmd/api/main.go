package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "roomdesk/internal/adapters/http_server"
	"roomdesk/internal/adapters/observability"
	"roomdesk/internal/adapters/payment"
	redisad "roomdesk/internal/adapters/redis"
	"roomdesk/internal/app"
	"roomdesk/internal/domain"
	"roomdesk/internal/shared"
	mysqlstore "roomdesk/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	store := mysqlstore.New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("state schema setup failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	svc, err := app.NewBookingService(ctx, store, cache, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("booking service init failed")
	}

	var gateway domain.PaymentGateway
	if cfg.PaymentURL != "" {
		gateway, err = payment.NewClient(cfg.PaymentURL, cfg.PaymentKey, cfg.PaymentRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("payment client init failed")
		}
		log.Info().Str("url", cfg.PaymentURL).Msg("using HTTP payment gateway")
	} else {
		gateway = payment.NewSimulator()
		log.Info().Msg("using simulated payment gateway")
	}

	// http
	srv := server.New()
	srv.MountHandlers(&server.Handlers{Svc: svc, Gateway: gateway})

	reg := observability.InitRegistry()
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", observability.MetricsHandler(reg))

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}
	metSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metSrv.Shutdown(shutdownCtx)
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// final write-through so nothing held in memory is lost
		if err := svc.Flush(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("final state flush failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}
