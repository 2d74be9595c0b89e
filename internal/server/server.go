// Package server exposes the portfolio profile and the admin tools over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ishant9805/portfolio/internal/config"
	"github.com/ishant9805/portfolio/internal/content"
	"github.com/ishant9805/portfolio/internal/portfolio"
	"github.com/ishant9805/portfolio/internal/store"
)

// maxDocumentSize caps uploaded and previewed documents.
const maxDocumentSize = 1 << 20

type Server struct {
	cfg       config.Config
	store     *store.Store
	loader    *content.Loader
	extractor *portfolio.Extractor
	logger    *zap.Logger

	adminToken  string
	hashingSalt string
	now         func() time.Time

	engine   *gin.Engine
	tracking sync.WaitGroup
}

// New wires the routes. The admin token and IP hashing salt are generated
// fresh for every process.
func New(cfg config.Config, st *store.Store, loader *content.Loader, extractor *portfolio.Extractor, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	salt, err := generateToken()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		store:       st,
		loader:      loader,
		extractor:   extractor,
		logger:      logger,
		adminToken:  token,
		hashingSalt: salt,
		now:         time.Now,
	}
	s.engine = s.routes()

	if cfg.GinMode == gin.DebugMode {
		logger.Debug("admin token (dev only)", zap.String("token", token))
		if cfg.UsesDefaultCredentials() {
			logger.Warn("using default admin credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
		}
	}
	logger.Info("privacy: visitor tracking enabled with hashed IP addresses")
	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), s.visitorTracking())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/portfolio", func(c *gin.Context) {
		profile, origin := s.loader.Load(c.Request.Context())
		c.Header("X-Content-Origin", origin)
		c.JSON(http.StatusOK, profile)
	})

	r.GET("/api/portfolio/defaults", func(c *gin.Context) {
		c.JSON(http.StatusOK, portfolio.ExtractDefaults())
	})

	// Preview: extract a draft document without storing it.
	r.POST("/api/extract", func(c *gin.Context) {
		body, ok := readDocument(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.extractor.Extract(body))
	})

	r.GET("/about_me.txt", func(c *gin.Context) {
		text, origin, err := s.loader.Raw(c.Request.Context())
		if errors.Is(err, content.ErrUnavailable) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			s.logger.Error("reading raw document", zap.Error(err))
			c.String(http.StatusInternalServerError, "failed to read document")
			return
		}
		c.Header("X-Content-Origin", origin)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
	})

	s.adminRoutes(r)
	return r
}

// readDocument reads a capped request body. It writes the error response
// itself and reports whether the caller should continue.
func readDocument(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentSize)
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document too large"})
			return "", false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return "", false
	}
	return string(data), true
}

// Run serves until ctx is cancelled, purging expired visitor data once a day.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.purgeLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.tracking.Wait()
	return err
}

func (s *Server) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		s.purgeExpiredVisits(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) purgeExpiredVisits(ctx context.Context) int64 {
	n, err := s.store.PurgeVisits(ctx, s.now().Add(-s.cfg.VisitorRetention))
	if err != nil {
		s.logger.Error("privacy cleanup failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.logger.Info("privacy cleanup: removed expired visitor records",
			zap.Int64("rows", n),
			zap.Duration("retention", s.cfg.VisitorRetention))
	}
	return n
}
