package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/skillfolio/portfolio-api/internal/config"
	"github.com/skillfolio/portfolio-api/internal/es"
	"github.com/skillfolio/portfolio-api/internal/handlers"
	"github.com/skillfolio/portfolio-api/internal/hash"
	"github.com/skillfolio/portfolio-api/internal/logging"
	authmw "github.com/skillfolio/portfolio-api/internal/middleware/auth"
	loggingmw "github.com/skillfolio/portfolio-api/internal/middleware/logging"
	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/mykafka"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service"
	"github.com/skillfolio/portfolio-api/internal/service/token"
	httpserver "github.com/skillfolio/portfolio-api/internal/transport/http"
)

const blogIndex = "blog_posts"

// ensureAdmin seeds the admin account from the environment on first run and
// enforces the single-admin invariant afterwards.
func ensureAdmin(ctx context.Context, r *repo.GormRepo, cfg *config.Config, l *slog.Logger) error {
	admins, err := r.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if admins > 1 {
		return errors.New("more than one admin account exists")
	}
	if admins == 1 {
		return nil
	}

	users, err := r.CountUsers(ctx)
	if err != nil {
		return err
	}
	if users > 0 {
		return errors.New("users exist but no admin account does")
	}

	if cfg.ADMIN_EMAIL == "" || cfg.ADMIN_PASSWORD == "" || cfg.ADMIN_FULLNAME == "" {
		l.Warn("empty database and no admin seed configured; /home will return 404 until an admin is created")
		return nil
	}

	pwHash, err := hash.HashPassword(cfg.ADMIN_PASSWORD)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:        cfg.ADMIN_EMAIL,
		FullName:     cfg.ADMIN_FULLNAME,
		PasswordHash: pwHash,
		IsAdmin:      true,
	}
	return r.CreateUser(ctx, &admin)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	rp := repo.New(db)

	if err := ensureAdmin(context.Background(), rp, cfg, logger); err != nil {
		log.Fatalf("admin invariant: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})
	}

	blogHandler := &handlers.BlogHandler{Repo: rp, Index: blogIndex, Producer: producer}
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		blogHandler.ES = client
	}

	tokens := &token.Service{Secret: []byte(cfg.JWT_SECRET)}
	authSvc := &service.AuthService{Repo: rp, Tokens: tokens}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:      &handlers.AuthHandler{Svc: authSvc, Producer: producer},
		Home:      &handlers.HomeHandler{Repo: rp},
		Profile:   &handlers.ProfileHandler{Repo: rp},
		Portfolio: &handlers.PortfolioHandler{Repo: rp},
		Blog:      blogHandler,
		Comments:  &handlers.CommentHandler{Repo: rp},
		AuthMW:    authmw.New(rp, tokens),
	})

	srv := &http.Server{
		Addr:              cfg.ADDR,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", cfg.ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
