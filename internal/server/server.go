package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/orgball2608/social-feed/internal/feed"
	"github.com/orgball2608/social-feed/internal/instagram"
	"github.com/orgball2608/social-feed/internal/linkedin"
	"github.com/orgball2608/social-feed/internal/ratelimit"
	"github.com/orgball2608/social-feed/pkg/config"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.uber.org/fx"
)

const readHeaderTimeout = 5 * time.Second

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Feed      feed.Client
	Instagram instagram.Client
	LinkedIn  linkedin.Client
}

type Server struct {
	engine    *gin.Engine
	http      *http.Server
	feed      feed.Client
	instagram instagram.Client
	linkedin  linkedin.Client
	limiter   ratelimit.Limiter
	jwtSecret []byte
	logger    logger.Logger
}

func New(opts Opts) *Server {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:    gin.New(),
		feed:      opts.Feed,
		instagram: opts.Instagram,
		linkedin:  opts.LinkedIn,
		limiter: ratelimit.NewInMemoryLimiter(
			opts.Config.Operator.RateLimit, opts.Config.Operator.RatePeriod, opts.Config.Operator.RateLimit),
		jwtSecret: []byte(opts.Config.Operator.JwtSecret),
		logger:    opts.Logger.WithComponent("HTTP"),
	}

	if err := s.engine.SetTrustedProxies(opts.Config.TrustedProxies()); err != nil {
		s.logger.Error("Invalid APP_TRUSTED_PROXIES, trusting no proxy", "error", err)
		_ = s.engine.SetTrustedProxies(nil)
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())
	corsConfig := cors.Config{
		AllowOrigins:  opts.Config.AllowedOrigins(),
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	s.engine.Use(cors.New(corsConfig))
	s.routes()

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.healthCheck)

	api := s.engine.Group("/api")
	api.GET("/social-feed", s.getSocialFeed)
	api.GET("/instagram", s.getInstagram)
	api.GET("/linkedin", s.getLinkedIn)

	if len(s.jwtSecret) == 0 {
		s.logger.Warn("OPERATOR_JWT_SECRET not set, manual token refresh disabled")
		return
	}
	api.POST("/linkedin/refresh", s.rateLimit(), s.operatorAuth(), s.refreshLinkedIn)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves in the background; it returns once the listener goroutine is running.
func (s *Server) Start() {
	s.logger.Info("Starting server", "addr", s.http.Addr)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed", "error", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping server")
	return s.http.Shutdown(ctx)
}
