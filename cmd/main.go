package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/JoelKishanX/payment/internal/clock"
	"github.com/JoelKishanX/payment/internal/command"
	"github.com/JoelKishanX/payment/internal/config"
	"github.com/JoelKishanX/payment/internal/events"
	"github.com/JoelKishanX/payment/internal/handler"
	"github.com/JoelKishanX/payment/internal/logging"
	"github.com/JoelKishanX/payment/internal/middleware"
	"github.com/JoelKishanX/payment/internal/query"
	redisclient "github.com/JoelKishanX/payment/internal/redis"
	"github.com/JoelKishanX/payment/internal/repository"
	"github.com/JoelKishanX/payment/internal/scheduler"
	"github.com/JoelKishanX/payment/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging)

	// Store and eventing backends
	var store repository.TransactionStore
	var publisher command.EventPublisher

	switch cfg.Store.Driver {
	case "memory":
		store = repository.NewMemoryStore()
		logger.Info("using in-memory transaction store")
	default:
		db, err := sql.Open("postgres", cfg.Store.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		if err := migrations.Apply(context.Background(), db); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}

		var cache *redisclient.TransactionCache
		if cfg.Redis.Addr != "" {
			rdb, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				logger.Error("failed to connect to redis", "error", err)
				os.Exit(1)
			}
			defer rdb.Close()
			cache = redisclient.NewTransactionCache(rdb.Client, 0, logger)
			publisher = events.NewPublisher(rdb.Client)
		}

		store = repository.NewPostgresStore(db, cache)
	}

	// Lifecycle, query and stats services
	clk := clock.NewSystem()
	sched := scheduler.New(logger, cfg.Payments.ResolverWorkers)
	commandSvc := command.NewTransactionCommandService(store, sched, publisher, clk, logger, cfg.Payments)
	sched.Start(commandSvc.Resolve)

	querySvc := query.NewTransactionQueryService(store, cfg.Payments.DefaultPageLimit)
	statsSvc := query.NewStatsService(store, clk)

	// HTTP transport
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	handler.NewTransactionHandler(commandSvc, querySvc, statsSvc).Register(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info("payment gateway listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	sched.Stop()
}
