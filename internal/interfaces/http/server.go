// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application
// service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NamanGarg4/procurement/internal/application/service"
	"github.com/NamanGarg4/procurement/internal/export"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config           ServerConfig
	httpServer       *http.Server
	router           *gin.Engine
	listViewService  service.ListViewService
	quotationService service.QuotationService
	orderService     service.OrderService
	exporter         *export.ExcelExporter
	logger           Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	listViewService service.ListViewService,
	quotationService service.QuotationService,
	orderService service.OrderService,
	exporter *export.ExcelExporter,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:           config,
		router:           gin.New(),
		listViewService:  listViewService,
		quotationService: quotationService,
		orderService:     orderService,
		exporter:         exporter,
		logger:           logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.listViewService, s.quotationService, s.orderService, s.exporter, s.config, s.logger)

	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/list/:doctype", handlers.ListView)
		api.GET("/list/:doctype/export", handlers.ExportListView)

		api.POST("/supplier-quotations", handlers.CreateQuotation)
		api.GET("/supplier-quotations/:name", handlers.GetQuotation)
		api.POST("/supplier-quotations/:name/submit", handlers.SubmitQuotation)
		api.POST("/supplier-quotations/:name/reject", handlers.RejectQuotation)
		api.POST("/supplier-quotations/:name/expire", handlers.ExpireQuotation)

		api.POST("/purchase-orders", handlers.CreateOrder)
		api.GET("/purchase-orders/:name", handlers.GetOrder)
		api.POST("/purchase-orders/:name/submit", handlers.SubmitOrder)
		api.POST("/purchase-orders/:name/cancel", handlers.CancelOrder)
		api.PUT("/purchase-orders/:name/status", handlers.UpdateOrderStatus)
		api.POST("/purchase-orders/close", handlers.CloseOrUncloseOrders)
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("HTTP server starting", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying router for tests
func (s *Server) Router() http.Handler {
	return s.router
}
