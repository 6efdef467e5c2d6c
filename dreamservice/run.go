package dreamservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamshare/dreams-backend/internal/api"
	"github.com/dreamshare/dreams-backend/internal/auth"
	"github.com/dreamshare/dreams-backend/internal/config"
	"github.com/dreamshare/dreams-backend/internal/platform/logger"
	"github.com/dreamshare/dreams-backend/internal/services"
	mongostore "github.com/dreamshare/dreams-backend/internal/store/mongo"
)

// Run starts the dreams service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("dreams-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("mongo_database", cfg.MongoDatabase).
		Msg("Dreams service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongostore.Open(ctx, cfg.MongoURI)
	if err != nil {
		log.Error().Err(err).Msg("MongoDB unavailable")
		return err
	}
	defer func() {
		ctxDisc, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctxDisc)
	}()

	if err := mongostore.EnsureIndexes(ctx, client, cfg.MongoDatabase); err != nil {
		log.Error().Err(err).Msg("Failed to ensure indexes")
		return err
	}
	st := mongostore.New(client, cfg.MongoDatabase)

	authn := auth.New(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	userSvc := services.NewUserService(st, authn, cfg.BcryptCost)
	dreamSvc := services.NewDreamService(st)

	router := api.NewRouter(st, authn, userSvc, dreamSvc)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}
