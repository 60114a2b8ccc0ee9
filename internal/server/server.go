package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"profitlogic/internal/api/v1"
	"profitlogic/internal/config"
	"profitlogic/internal/metrics"
	"profitlogic/internal/service/calculator"
	"profitlogic/internal/service/market"
	"profitlogic/internal/service/store"
	"profitlogic/internal/service/vin"
)

// Server HTTP server
type Server struct {
	router *gin.Engine
	v1     *v1.Handler
}

// NewServer wires the session store, engine and collaborators from cfg
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	currentYear := func() int { return time.Now().Year() }

	sessionStore := store.NewSessionStore(cfg.Pricing)
	decoder := newVINService(cfg.VIN, currentYear)
	engine := calculator.NewEngine(
		sessionStore,
		market.NewSynthetic(cfg.Market.ListingCount, currentYear),
		decoder,
		calculator.Options{Workers: cfg.Batch.Workers},
	)

	s := &Server{
		router: gin.Default(),
		v1:     v1.NewHandler(sessionStore, engine, decoder),
	}

	s.setupRoutes()

	return s
}

// newVINService static tables, or vPIC with the static tables as fallback
func newVINService(cfg config.VINConfig, currentYear func() int) *vin.Service {
	static := vin.NewStaticDecoder(currentYear)
	if cfg.Mode == vin.StrategyVPIC {
		return vin.NewService(vin.StrategyVPIC, vin.NewVPICClient(cfg.BaseURL, cfg.Timeout()), static)
	}
	return vin.NewService(vin.StrategyStatic, static, nil)
}

// setupRoutes registers middleware and routes
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}

// Handler root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
