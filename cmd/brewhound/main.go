package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brewhound/internal/breweryapi"
	"brewhound/internal/logging"
	"brewhound/internal/store"
	"brewhound/internal/suggest"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fallback := logging.New(logging.Config{})
		fallback.Fatal().Err(err).Msg("configuration error")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.SetGlobal(logger)

	// The session context bounds every background workflow the store runs.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directory := breweryapi.NewClient(cfg.DirectoryURL)
	st := store.New(ctx, directory, logger)
	debouncer := suggest.New(cfg.DebounceQuiet, st.SuggestInput)
	defer debouncer.Stop()

	// Initial unfiltered catalog load, same as the frontend firing its first
	// fetch on mount.
	go st.LoadCatalog(ctx)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newHTTPHandler(cfg, st, debouncer),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("directory", cfg.DirectoryURL).
			Msg("brewhound API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("forced shutdown")
	}
	st.Wait()
}
