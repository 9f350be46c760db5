// Package server assembles the HTTP router and owns the listener lifecycle.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/chibox/chibox-server/internal/caseopen"
	"github.com/chibox/chibox-server/internal/handler"
	"github.com/chibox/chibox-server/internal/livefeed"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/metrics"
	"github.com/chibox/chibox-server/internal/middleware"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/session"
	"github.com/chibox/chibox-server/internal/subscription"
	"github.com/chibox/chibox-server/internal/upgrade"
	"github.com/chibox/chibox-server/internal/user"

	_ "github.com/chibox/chibox-server/docs" // swagger spec
)

// Options are the transport settings
type Options struct {
	Port           int
	Version        string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	AllowedOrigins []string
	TrustedProxies []string
	RateLimit      int
	RateWindow     time.Duration
}

// Deps are the services behind the routes
type Deps struct {
	Users         user.Service
	Sessions      *session.Manager
	Subscriptions subscription.Service
	Cases         caseopen.Service
	Upgrades      upgrade.Service
	Games         minigame.Service
	LiveFeed      *livefeed.Hub
	History       handler.HistoryReader
	Checks        map[string]handler.HealthChecker
}

// Server wraps the http.Server
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router. Middleware executes in the order defined.
func NewRouter(opts Options, deps Deps) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, NewRateLimiter(opts.RateLimit, opts.RateWindow)))
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Checks))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if deps.LiveFeed != nil {
		upgrader := websocket.Upgrader{
			ReadBufferSize:  livefeed.ReadBufferSize,
			WriteBufferSize: livefeed.WriteBufferSize,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		}
		r.Get("/ws/live", livefeed.Handler(deps.LiveFeed, upgrader))
	}

	userHandlers := handler.NewUserHandlers(deps.Users, deps.Sessions, deps.Subscriptions)
	caseHandlers := handler.NewCaseHandlers(deps.Cases)
	upgradeHandlers := handler.NewUpgradeHandlers(deps.Upgrades)
	gameHandlers := handler.NewGameHandlers(deps.Games)
	requireAuth := middleware.RequireAuth(deps.Sessions)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
		r.Use(chimw.Timeout(opts.RequestTimeout))

		// public
		r.Post("/users/register", userHandlers.HandleRegister())
		r.Post("/users/login", userHandlers.HandleLogin())
		r.Get("/cases/{caseID}", caseHandlers.HandleGetCase())
		r.Get("/upgrade/chance", upgradeHandlers.HandleChance())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/users/logout", userHandlers.HandleLogout())
			r.Get("/me", userHandlers.HandleMe())

			r.Post("/cases/{caseID}/open", caseHandlers.HandleOpenCase())
			r.Get("/inventory", caseHandlers.HandleInventory())
			r.Post("/inventory/{inventoryID}/sell", caseHandlers.HandleSell())

			r.Post("/upgrade", upgradeHandlers.HandleUpgrade())

			r.Get("/games/{game}/status", gameHandlers.HandleStatus())
			r.Post("/games/{game}/play", gameHandlers.HandlePlay())

			if deps.History != nil {
				r.Get("/history", handler.NewHistoryHandlers(deps.History).HandleHistory())
			}
		})
	})

	return r
}

// responseWriter captures the status code for request logging
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Hijack lets websocket upgrades pass through the wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range quietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, "Cookie") {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called. A graceful stop is not an error.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
