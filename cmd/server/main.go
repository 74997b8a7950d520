package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	_ "github.com/lib/pq"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/catalog"
	"github.com/VSP7988/ISD/internal/config"
	"github.com/VSP7988/ISD/internal/email"
	"github.com/VSP7988/ISD/internal/imaging"
	"github.com/VSP7988/ISD/internal/infrastructure/repository"
	handlers "github.com/VSP7988/ISD/internal/interfaces/http"
	"github.com/VSP7988/ISD/internal/logger"
	"github.com/VSP7988/ISD/internal/metrics"
	"github.com/VSP7988/ISD/internal/scheduler"
	services "github.com/VSP7988/ISD/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("isha-stone", logger.Options{}).WithError(err).Fatal("error loading config")
	}

	log := logger.NewLogger("isha-stone", logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.WithError(err).Fatal("error connecting to database")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("error pinging database")
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		log.WithError(err).Fatal("error applying schema")
	}

	cat, err := catalog.Load()
	if err != nil {
		log.WithError(err).Fatal("error loading catalog")
	}

	m := metrics.NewMetrics()

	store, err := services.NewS3Service(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("error initializing object store")
	}

	// Gallery
	galleryRepo := repository.NewGalleryRepository(db)
	galleryService := application.NewGalleryService(galleryRepo, store, imaging.NewCompressor(5, 2560), cfg.GalleryBucket, log, m)

	// Logo
	settingsRepo := repository.NewSiteSettingRepository(db)
	logoService := application.NewLogoService(settingsRepo, store, imaging.NewCompressor(1, 512), cfg.AssetsBucket, application.NewSettingsCache(5*time.Minute), log)

	// Content
	contentService := application.NewContentService(repository.NewContentRepository(db))

	// Brochures (mail is optional)
	var mailer application.BrochureMailer
	if cfg.MailEnabled() {
		emailClient, err := email.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFromName, cfg.SMTPFromEmail)
		if err != nil {
			log.WithError(err).Warn("email client initialization failed, brochure mail disabled")
		} else {
			mailer = emailClient
		}
	}
	limiter := application.NewRateLimiter(time.Hour, 5)
	defer limiter.Stop()
	brochureService := application.NewBrochureService(cat, cfg.BrochureDir, cfg.SiteURL, mailer, limiter, log)

	sweeper := scheduler.NewOrphanSweeper(galleryRepo, store, cfg.GalleryBucket, cfg.SweepInterval, cfg.SweepGrace, log, m)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	sessions := session.New(session.Config{
		Expiration:     cfg.SessionTTL,
		KeyLookup:      "cookie:isha_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	app := handlers.NewApp(handlers.Deps{
		Catalog:     cat,
		Auth:        application.NewAuthService(cfg.AdminEmail, cfg.AdminPassword),
		Sessions:    sessions,
		Gallery:     galleryService,
		Logo:        logoService,
		Content:     contentService,
		Brochures:   brochureService,
		DB:          db,
		Metrics:     m,
		Log:         log,
		PublicDir:   cfg.PublicDir,
		CORSOrigins: cfg.AllowedOrigins(),
		BodyLimitMB: cfg.MaxBodyMB,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.WithError(err).Error("error during shutdown")
		}
	}()

	log.WithField("port", cfg.ServerPort).Info("server starting")
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.WithError(err).Fatal("error starting server")
	}
}
