// Package mockapi serves the SyncFlow REST endpoints from a fixture dataset
// so the dashboard can run without the real backend.
package mockapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/syncflow/dashboard/internal/logging"
	"github.com/syncflow/dashboard/internal/model"
)

const intruderStream = "intruder"

// Server is the fixture-backed HTTP API.
type Server struct {
	addr      string
	fx        *Fixtures
	streams   *streams
	log       *logrus.Entry
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	seed int64
	now  func() time.Time
}

// WithSeed fixes the random source used to generate traffic.
func WithSeed(seed int64) Option {
	return func(o *serverOptions) { o.seed = seed }
}

// WithClock sets the clock used to timestamp generated traffic.
func WithClock(now func() time.Time) Option {
	return func(o *serverOptions) { o.now = now }
}

// NewServer creates a server for fx listening on addr.
func NewServer(addr string, fx *Fixtures, opts ...Option) *Server {
	if addr == "" {
		addr = model.DefaultMockAddr
	}
	o := serverOptions{seed: time.Now().UnixNano(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		fx:      fx,
		streams: newStreams(fx.Traffic, o.seed, o.now),
		log:     logging.NewLogger("mockapi"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.handleHealth)
	r.GET("/logs", s.handleRoster)
	r.GET("/logs/intruder", s.handleIntruder)
	r.GET("/managers", s.handleManagers)
	r.GET("/checkout/ips", s.handleIPs)
	r.GET("/checkout/ips/:ip", s.handleIPLogs)
	r.GET("/checkout/ips/:ip/ports", s.handlePorts)
	r.GET("/policies/:ip", s.handlePolicies)
	r.GET("/sysinfo", s.handleSysInfo)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("mock api stopped")
		}
	}()
	s.log.WithField("addr", listener.Addr().String()).Info("mock api listening")
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start),
		}).Debug("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
		"hosts":  len(s.fx.Hosts),
	})
}

func (s *Server) handleRoster(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(s.fx.Employees))
}

func (s *Server) handleIntruder(c *gin.Context) {
	local := "10.0.0.1"
	if len(s.fx.Hosts) > 0 {
		local = s.fx.Hosts[0].IP
	}
	c.JSON(http.StatusOK, s.streams.advance(intruderStream, local))
}

func (s *Server) handleManagers(c *gin.Context) {
	c.JSON(http.StatusOK, nonNil(s.fx.Managers))
}

func (s *Server) handleIPs(c *gin.Context) {
	c.JSON(http.StatusOK, s.fx.IPs())
}

func (s *Server) handleIPLogs(c *gin.Context) {
	host, ok := s.host(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.streams.advance(host.IP, host.IP))
}

func (s *Server) handlePorts(c *gin.Context) {
	host, ok := s.host(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, nonNil(host.Ports))
}

func (s *Server) handlePolicies(c *gin.Context) {
	host, ok := s.host(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, nonNil(host.Policies))
}

func (s *Server) handleSysInfo(c *gin.Context) {
	info := s.fx.SysInfo
	if !s.startTime.IsZero() {
		extra := uint64(time.Since(s.startTime).Seconds())
		info.Uptime += extra
		info.HostInfo.Uptime += extra
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) host(c *gin.Context) (Host, bool) {
	ip := c.Param("ip")
	host, ok := s.fx.Host(ip)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown ip " + ip})
		return Host{}, false
	}
	return host, true
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
