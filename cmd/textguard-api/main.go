// @title         Textguard API
// @version       0.1.0
// @description   PII scrubbing and content moderation endpoints

package main

import (
	"context"

	"textguard/internal/platform/config"
	"textguard/internal/platform/logger"
	phttp "textguard/internal/platform/net/http"
	"textguard/internal/platform/store"

	"textguard/internal/adapters/semantic"
	"textguard/internal/core/rulepack"
	"textguard/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (TEXTGUARD_API_*)
	root := config.New()
	apiCfg := root.Prefix("TEXTGUARD_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	semCfg := root.Prefix("SEMANTIC_")          // remote inference service

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()

	pack, err := rulepack.Load()
	if err != nil {
		l.Panic().Err(err).Msg("rulepack load failed")
	}

	// the store is optional; without it scans still run, findings are dropped
	var st *store.Store
	if pgCfg.MayBool("ENABLED", false) || chCfg.MayBool("ENABLED", false) {
		st, err = store.Open(
			context.Background(),
			store.Config{
				AppName: "textguard-api",
				PG: store.PGConfig{
					Enabled:     pgCfg.MayBool("ENABLED", false),
					URL:         pgCfg.MayString("DBURL", ""),
					MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
					LogSQL:      pgCfg.MayBool("LOG_SQL", true),
				},
				CH: store.CHConfig{
					Enabled: chCfg.MayBool("ENABLED", false),
					URL:     chCfg.MayString("DBURL", ""),
					Role:    "api",
				},
			},
			store.WithLogger(*l),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	}

	// the remote detectors are optional too; without them only the
	// in-process structured detector and censor run
	var sem *semantic.Client
	if base := semCfg.MayString("BASE_URL", ""); base != "" {
		sem = semantic.NewClient(semantic.Options{
			BaseURL:    base,
			APIKey:     semCfg.MayString("API_KEY", ""),
			Timeout:    semCfg.MayDuration("TIMEOUT", 0),
			MaxRetries: semCfg.MayInt("MAX_RETRIES", 0),
		})
	}

	// http server (reads TEXTGUARD_API_PORT / TEXTGUARD_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Pack:           pack,
			Semantic:       sem,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
