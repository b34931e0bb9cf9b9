package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	ReportRoutes "schoolku_backend/internals/features/school/reports/route"
	"schoolku_backend/internals/features/school/reports/service"
	appLogger "schoolku_backend/internals/logger"
	middlewares "schoolku_backend/internals/middlewares"
	accessLogger "schoolku_backend/internals/middlewares/logger"
	routes "schoolku_backend/internals/route"
)

func main() {
	cfg, err := configs.LoadEnv()
	if err != nil {
		appLogger.Get("app").WithError(err).Fatal("config error")
	}
	if err := appLogger.Init(cfg.Log); err != nil {
		appLogger.Get("app").WithError(err).Fatal("logger init error")
	}
	log := appLogger.Get("app")

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
		ErrorHandler:            middlewares.ErrorHandler,
	})

	// registry prometheus sendiri (bukan global default)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ⚙️ middleware dasar + performa
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.RequestID())
	app.Use(accessLogger.LoggerMiddleware())
	app.Use(middlewares.HTTPMetrics(registry))
	app.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))
	app.Use(middlewares.GlobalRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	// HTTP timeout guard (selaras dengan statement_timeout di DB)
	app.Use(middlewares.RequestTimeout(cfg.RequestTimeout))

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("db connect error")
	}
	database.TunePool(db, cfg)
	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := database.Migrate(ctx, db); err != nil {
			cancel()
			log.WithError(err).Fatal("auto migrate error")
		}
		cancel()
	}
	database.WarmUpQueries(db)

	// ✅ Report engine
	reports := ReportRoutes.NewDeps(db, service.Options{
		FetchTimeout: cfg.ReportFetchTimeout,
		Metrics:      service.NewMetrics(registry),
		Logger:       appLogger.Get("report"),
	})
	reports.GenerateLimiter = middlewares.GenerateRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)

	// ✅ Routes
	routes.SetupRoutes(app, db, routes.Options{
		Config:   cfg,
		Gatherer: registry,
		Reports:  reports,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Infof("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if err := database.Close(db); err != nil {
		log.WithError(err).Warn("close db error")
	}
}
