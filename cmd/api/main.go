package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption/internal/adapters/auth/jwtauth"
	"pet-adoption/internal/adapters/payments/stripe"
	"pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/payments"
	"pet-adoption/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// todavía no hay logger configurado
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	issuer, err := jwtauth.New(jwtauth.Options{Secret: cfg.JWTSecret})
	if err != nil {
		log.Fatal().Err(err).Msg("jwt issuer")
	}

	opts := router.Options{
		Issuer:         issuer,
		Logger:         log,
		CookieSecure:   cfg.CookieSecure,
		RequestTimeout: cfg.RequestTimeout,
	}

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres")
		}
		defer db.Close()
		opts.DB = db
		log.Info().Msg("storage: postgres")
	} else {
		log.Info().Msg("storage: in-memory (DB_DSN vacío)")
	}

	if cfg.StripeSecretKey != "" {
		var creator payments.IntentCreator
		creator, err = stripe.NewClient(stripe.Config{SecretKey: cfg.StripeSecretKey})
		if err != nil {
			log.Fatal().Err(err).Msg("stripe")
		}
		opts.Payments = creator
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY vacío: /create-payment-intent responderá 503")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
