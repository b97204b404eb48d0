package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/custody"
	"server/internal/finalize"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/geoip"
	"server/internal/ledger"
	"server/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	events := repo.NewLedgerEventRepository(runner)
	payouts := repo.NewPayoutRepository(runner)

	store := ledger.New(ledger.Options{
		Logger:   logger,
		Sink:     custody.NewJournalSink(events, logger),
		Transfer: custody.NewAuditTransferer(payouts, logger),
	})

	journal, err := events.LoadAll(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load ledger journal")
	}
	if err := store.Replay(journal); err != nil {
		logger.Fatal().Err(err).Msg("failed to replay ledger journal")
	}
	logger.Info().Int("events", len(journal)).Int64("campaigns", store.Count()).Msg("ledger restored")

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip resolver unavailable")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(store, logger, cfg.PageSizeDefault, cfg.PageSizeMax)
	router := httpapi.NewRouter(app, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	if cfg.FinalizerEnabled {
		sweeper := finalize.NewSweeper(store, logger, cfg.FinalizerInterval)
		go sweeper.Run(ctx)
	}

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
