package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applabels "github.com/dispatch/backend/internal/application/labels"
	apporders "github.com/dispatch/backend/internal/application/orders"
	"github.com/dispatch/backend/internal/infrastructure/config"
	"github.com/dispatch/backend/internal/infrastructure/ecommerce"
	"github.com/dispatch/backend/internal/infrastructure/erp"
	"github.com/dispatch/backend/internal/infrastructure/labels"
	"github.com/dispatch/backend/internal/infrastructure/logger"
	"github.com/dispatch/backend/internal/interfaces/http/handler"
	"github.com/dispatch/backend/internal/interfaces/http/middleware"
	"github.com/dispatch/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting dispatch backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// ERP export pipeline: transport, token session, export client
	creds := erp.Credentials{
		Username:   cfg.ERP.Username,
		Password:   cfg.ERP.Password,
		Company:    cfg.ERP.Company,
		WebService: cfg.ERP.WebService,
	}
	transport := erp.NewTransport(cfg.ERP.EndpointURL, log)
	session := erp.NewSession(creds, transport, log,
		erp.WithTokenValidity(cfg.ERP.TokenValidity))
	exportClient := erp.NewClient(creds, session, transport, log,
		erp.WithExportTimeout(cfg.ERP.ExportTimeout))

	// Tiendanube order lookup for enrichment
	tnConfig := ecommerce.NewTiendanubeConfig(
		cfg.Tiendanube.StoreID,
		cfg.Tiendanube.AccessToken,
		cfg.Tiendanube.UserAgent,
	)
	if cfg.Tiendanube.APIBaseURL != "" {
		tnConfig.APIBaseURL = cfg.Tiendanube.APIBaseURL
	}
	if cfg.Tiendanube.TimeoutSeconds > 0 {
		tnConfig.TimeoutSeconds = cfg.Tiendanube.TimeoutSeconds
	}
	lookup, err := ecommerce.NewTiendanubeAdapter(tnConfig, log)
	if err != nil {
		log.Fatal("Failed to initialize Tiendanube adapter", zap.Error(err))
	}

	registry, err := config.DefaultExportRegistry()
	if err != nil {
		log.Fatal("Failed to build export registry", zap.Error(err))
	}
	orderService := apporders.NewOrderService(registry, exportClient, lookup, log)

	// Label rendering
	templateStore, err := labels.NewTemplateStore(&labels.TemplateStoreConfig{
		ExternalPath: cfg.Labels.TemplatePath,
	})
	if err != nil {
		log.Fatal("Failed to load label template", zap.Error(err))
	}
	renderer, err := labels.NewRenderer(templateStore)
	if err != nil {
		log.Fatal("Failed to parse label template", zap.Error(err))
	}
	labelService := applabels.NewLabelService(orderService, renderer, log)

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	router.NewRouter(engine).
		Register(handler.NewOrderHandler(orderService, log)).
		Register(handler.NewLabelHandler(labelService, log)).
		Register(handler.NewHealthHandler()).
		Setup()

	// Plain liveness probe outside the versioned API
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.Ints("exports", registry.IDs()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
