package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skatuve/skatuve-client/internal/config"
	"github.com/skatuve/skatuve-client/internal/devstub"
	"github.com/skatuve/skatuve-client/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	handler := devstub.NewHandler(log)
	server := &http.Server{
		Addr:    cfg.DevstubAddr,
		Handler: handler.Router(),
	}

	go func() {
		log.Info().Str("addr", cfg.DevstubAddr).Msg("devstub listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("devstub failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("stopped")
}
