package recordapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

// Options configures a Server.
type Options struct {
	RateLimit    float64 // Requests per second per client IP
	RateBurst    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Gzip         bool
	Logger       *log.Logger
}

// Server is the HTTP record service.
type Server struct {
	store   core.RecordStore
	opts    Options
	logger  *log.Logger
	metrics *Metrics
	limiter *ipLimiter
	engine  *gin.Engine
	started time.Time
}

// NewServer creates a record service in front of store.
func NewServer(store core.RecordStore, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 20
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}

	s := &Server{
		store:   store,
		opts:    opts,
		logger:  logger,
		metrics: NewMetrics(),
		limiter: newIPLimiter(opts.RateLimit, opts.RateBurst, time.Hour),
		started: time.Now(),
	}
	s.engine = s.routes()
	return s
}

// routes builds the gin engine.
func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(s.logger, s.metrics))
	if s.opts.Gzip {
		router.Use(ginGzip.Gzip(ginGzip.DefaultCompression, ginGzip.WithExcludedPaths([]string{MetricsPath})))
	}

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: errMsgMethodNotAllowed})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})

	api := router.Group("/api", noStoreMiddleware(), rateLimitMiddleware(s.limiter, s.metrics))
	api.GET(strings.TrimPrefix(RecordsPath, "/api"), s.getRecords)
	api.POST(strings.TrimPrefix(SessionsPath, "/api"), s.postSession)

	router.GET(HealthPath, s.healthz)
	router.GET(MetricsPath, gin.WrapH(s.metrics.Handler()))

	return router
}

// Handler returns the service as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		ReadTimeout:       s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.run(sweepCtx, 10*time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Record service listening", "addr", addr)
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

	s.logger.Info("Shutting down record service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// getRecords handles GET /api/records.
func (s *Server) getRecords(c *gin.Context) {
	player := c.Query("playerName")
	distance := c.Query("distance")
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if player == "" || distance == "" || err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMsgMissingParams})
		return
	}

	report, err := s.store.FetchBests(c.Request.Context(), core.Player(player), core.Distance(distance), quantity)
	if err != nil {
		s.metrics.storeErrors.WithLabelValues("fetch_bests").Inc()
		s.logger.Error("Error fetching records", "player", player, "distance", distance, "error", err,
			"request_id", RequestID(c.Request.Context()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errMsgFetchFailed, Message: err.Error()})
		return
	}

	s.metrics.bestsServed.Inc()
	c.JSON(http.StatusOK, BestsResponse{Records: report.Bests, TotalGames: report.TotalGames})
}

// postSession handles POST /api/sessions.
func (s *Server) postSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Message: err.Error()})
		return
	}

	if missing := req.missing(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMsgMissingFields, MissingFields: missing})
		return
	}

	id, err := s.store.SubmitSession(c.Request.Context(), req.Summary())
	if err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: errMsgMissingFields, MissingFields: vErr.Missing})
			return
		}
		s.metrics.storeErrors.WithLabelValues("submit_session").Inc()
		s.logger.Error("Error creating record", "error", err, "request_id", RequestID(c.Request.Context()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: errMsgCreateFailed, Message: err.Error()})
		return
	}

	s.metrics.sessionsSubmitted.Inc()
	c.JSON(http.StatusOK, SessionResponse{Success: true, ID: id})
}

// healthz reports liveness and uptime.
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}
