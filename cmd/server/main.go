package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/cvserve/internal/api"
	"github.com/dgallion1/cvserve/internal/config"
	"github.com/dgallion1/cvserve/internal/cv"
	"github.com/dgallion1/cvserve/internal/mailer"
	"github.com/dgallion1/cvserve/internal/ner"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	parser := cv.NewParser(ner.NewRuleTagger(), log)
	sender := mailer.NewSender(mailer.Config{
		SendGridKey:  cfg.SendGridAPIKey,
		SMTPHost:     cfg.SMTPServer,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		From:         cfg.FromEmail,
	}, log)

	// Best-effort bootstrap: load the sample CV when present so the chat
	// endpoint works out of the box. Failure is not fatal.
	if _, err := os.Stat(cfg.SampleCVPath); err == nil {
		if parser.Load(cfg.SampleCVPath) {
			log.Info("loaded sample CV", "path", cfg.SampleCVPath)
		}
	}

	srv := api.NewServer(parser, sender, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting cvserve", "port", cfg.Port, "email_configured", sender.IsConfigured())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
