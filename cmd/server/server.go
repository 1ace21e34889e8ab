package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/memorylane/internal/config"
	"github.com/thereayou/memorylane/internal/database"
	"github.com/thereayou/memorylane/internal/handlers"
	"github.com/thereayou/memorylane/internal/middleware"
	"github.com/thereayou/memorylane/internal/session"
	"github.com/thereayou/memorylane/internal/storage"
	"github.com/thereayou/memorylane/internal/storage/memory"
	ws "github.com/thereayou/memorylane/internal/websocket"
	"github.com/thereayou/memorylane/pkg/auth"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Router  *gin.Engine
	Store   storage.Storage
	Hub     *ws.Hub
	Limiter *middleware.RateLimiter

	cfg     *config.Config
	logger  *slog.Logger
	closers []func() error
}

func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	if err := handlers.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	s := &Server{cfg: cfg, logger: logger}
	s.Hub = ws.NewHub(logger)

	switch cfg.DatabaseDriver {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on restart")
		s.Store = memory.New(memory.WithPublisher(s.Hub))
	default:
		db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL,
			database.WithPublisher(s.Hub),
			database.WithLogger(logger.With("component", "database")),
		)
		if err != nil {
			return nil, err
		}
		s.Store = db
		s.closers = append(s.closers, db.Close)
	}

	var revoker session.Revoker
	if cfg.RedisURL != "" {
		rdb, err := session.Dial(ctx, cfg.RedisURL)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("redis connect failed: %w", err)
		}
		revoker = session.NewRedisRevoker(rdb)
		s.closers = append(s.closers, rdb.Close)
	} else {
		logger.Warn("REDIS_URL not set, revoked sessions are kept in process")
		revoker = session.NewMemoryRevoker()
	}

	uploads, err := handlers.NewUploadHandler(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		s.close()
		return nil, err
	}

	s.Limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	s.Router = NewRouter(Dependencies{
		Store:        s.Store,
		JWTManager:   auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL),
		Revoker:      revoker,
		Hub:          s.Hub,
		Limiter:      s.Limiter,
		Uploads:      uploads,
		UploadDir:    cfg.UploadDir,
		CORSOrigin:   cfg.CORSOrigin,
		CookieSecure: cfg.CookieSecure,
		Logger:       logger,
	})

	return s, nil
}

// Run serves until ctx is cancelled and then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	defer s.close()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go s.Hub.Run(hubCtx)
	go s.Limiter.Run(hubCtx)

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "port", s.cfg.Port, "driver", s.cfg.DatabaseDriver)
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	stopHub()
	<-s.Hub.Done()
	return err
}

func (s *Server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Error("close resource", "error", err)
		}
	}
	s.closers = nil
}
