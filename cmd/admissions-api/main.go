// @title         Admissions API
// @version       0.1.0
// @description   Public registration and review forms, admin moderation and growth stats
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admissions/internal/platform/config"
	"admissions/internal/platform/logger"
	phttp "admissions/internal/platform/net/http"
	"admissions/internal/platform/store"
	"admissions/internal/platform/store/migrate"

	"admissions/internal/services/api"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logger.Init(logger.FromEnv())

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")  // pgCfg lives under SERVICE_PGSQL_*
	rdsCfg := root.Prefix("SERVICE_REDIS_") // rdsCfg lives under SERVICE_REDIS_*
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// postgres is required, redis only backs revocations and rate limits
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "admissions-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			RDS: store.RedisConfig{
				Enabled:  rdsCfg.MayBool("ENABLED", false),
				Addr:     rdsCfg.MayString("ADDR", "localhost:6379"),
				Password: rdsCfg.MayString("PASSWORD", ""),
				DB:       rdsCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if pgCfg.MayBool("MIGRATE", true) {
		n, err := migrate.Up(ctx, st.PG)
		if err != nil {
			l.Panic().Err(err).Msg("migrate.Up failed")
		}
		l.Info().Int("applied", n).Msg("migrations applied")
	}

	var reg *prometheus.Registry
	if apiCfg.MayBool("METRICS", true) {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(root.Prefix("CORE_"))

	err = api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Registry:       reg,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second))
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
