// Package server exposes the simulated backend over HTTP so the live transport can run against it.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"proposal-desk/internal/common/config"
	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/simulator"
	"proposal-desk/pkg/registry"
)

// APIPrefix is the path prefix of every simulated route.
const APIPrefix = "/api"

type Server struct {
	engine  *gin.Engine
	backend *simulator.Backend
	cfg     config.ServerConfig
	logger  logger.Logger
}

func New(backend *simulator.Backend, reg *registry.RouteRegistry, cfg config.ServerConfig, log logger.Logger) *Server {
	if reg == nil {
		reg = registry.Default()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	s := &Server{engine: engine, backend: backend, cfg: cfg, logger: log}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group(APIPrefix)
	for _, route := range reg.Routes {
		handlers := []gin.HandlerFunc{}
		if !route.Public {
			handlers = append(handlers, bearerAuth(backend))
		}
		handlers = append(handlers, s.serve)
		api.Handle(route.Method, route.Pattern, handlers...)
	}

	engine.NoRoute(s.notImplemented)
	engine.NoMethod(s.notImplemented)

	return s
}

// Handler returns the gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Simulated API listening", map[string]interface{}{
			"address": srv.Addr,
			"prefix":  APIPrefix,
		})
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("Shutting down simulated API", nil)
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) serve(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, errors.NewStatusError(http.StatusBadRequest, "Invalid request body", err.Error()))
		return
	}

	ctx := c.Request.Context()
	if userID := c.GetString(ContextUserID); userID != "" {
		ctx = simulator.WithSubject(ctx, userID)
	}

	path := strings.TrimPrefix(c.Request.URL.Path, APIPrefix)
	res, err := s.backend.Do(ctx, c.Request.Method, path, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(res.Status, "application/json; charset=utf-8", res.Data)
}

func (s *Server) notImplemented(c *gin.Context) {
	path := strings.TrimPrefix(c.Request.URL.Path, APIPrefix)
	writeError(c, errors.NewNotImplementedError(c.Request.Method, path))
}

func writeError(c *gin.Context, err error) {
	stdErr := errors.Normalize(err)
	status := stdErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, gin.H{
		"message": stdErr.Message,
		"details": stdErr.Details,
		"code":    string(stdErr.Code),
	})
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
