package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/bfqc/courtres/internal/config"
	"github.com/bfqc/courtres/internal/db"
	"github.com/bfqc/courtres/internal/handlers"
	"github.com/bfqc/courtres/internal/metrics"
	"github.com/bfqc/courtres/internal/services"
	"github.com/bfqc/courtres/internal/web"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(os.Getenv("COURT_CONFIG_PATH"))
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load config")
	}
	logger := newLogger(cfg)
	if envErr != nil {
		logger.Debug().Msg("no .env file found; using system environment")
	}

	conn, err := db.Open(cfg.Database.Path, nil)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("open db")
	}
	defer db.Close(conn) //nolint:errcheck
	logger.Info().Str("path", cfg.Database.Path).Msg("database ready (sqlite)")

	loc := cfg.Location()
	engine := services.NewEngine(db.NewReservationStore(conn), loc, time.Now)
	auth := services.NewAuth(db.NewAdminStore(conn), 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	created, err := auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed admin")
	}
	if created {
		logger.Info().Str("username", cfg.Admin.Username).Msg("admin account created")
	}

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logger.Fatal().Err(err).Msg("generate session secret")
		}
		logger.Warn().Msg("session.secret not set; admin sessions will not survive a restart")
	}
	sessions := handlers.NewSessions(secret, cfg.Session.CookieName, cfg.SessionTTL(), cfg.Session.Secure)

	if cfg.Metrics.Enabled {
		metrics.Register()
	}

	h := handlers.New(engine, auth, sessions, logger, cfg.App.SiteName, pinger(conn))
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           web.Router(h, web.Options{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute, Metrics: cfg.Metrics.Enabled}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("tz", loc.String()).Msg("court reservations listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Log.Format == "json" {
		return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func pinger(conn *gorm.DB) handlers.Pinger {
	return func(ctx context.Context) error {
		return db.Ping(ctx, conn)
	}
}
