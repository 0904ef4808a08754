// Package http exposes the operations board as a JSON API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"opsboard/internal/cache"
	"opsboard/internal/core"
	"opsboard/internal/dataset"
	applog "opsboard/internal/log"
	"opsboard/internal/middleware/ratelimit"
	"opsboard/internal/middleware/security"
	"opsboard/internal/middleware/trace"
	"opsboard/internal/services"
)

const snapshotCacheKey = "snapshot"

type Server struct {
	http.Server
	reader dataset.SnapshotReader
	cfg    services.ScoreConfig

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector

	// Snapshot reads hit the backing store at most once per TTL.
	snapshotCache *cache.LRUCache[core.Snapshot]
	cacheManager  *cache.Manager

	errlog *applog.StructuredLogger

	// now is swappable for tests; every handler derives day arithmetic
	// from it.
	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, reader dataset.SnapshotReader, cfg services.ScoreConfig) *Server {
	mux := http.NewServeMux()
	logger := applog.New(applog.Config{Component: applog.ComponentHTTP})

	s := &Server{
		reader:        reader,
		cfg:           cfg,
		rateLimiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:      security.NewDetector(),
		snapshotCache: cache.NewLRUCache[core.Snapshot](1, 30*time.Second),
		cacheManager:  cache.NewManager(),
		errlog:        applog.NewStructuredLogger(logger),
		now:           time.Now,
	}
	s.cacheManager.Register(s.snapshotCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(s.detector.ExtractClientIP)
	logCtx := applog.Middleware(logger)
	reqID := applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	api := map[string]http.HandlerFunc{
		"/api/dashboard":  s.handleDashboard,
		"/api/pipeline":   s.handlePipeline,
		"/api/ventures":   s.handleVentures,
		"/api/studio":     s.handleStudio,
		"/api/clients":    s.handleClients,
		"/api/finance":    s.handleFinance,
		"/api/compliance": s.handleCompliance,
		"/api/weekly":     s.handleWeekly,
		"/api/progress":   s.handleProgress,
		"/api/farmstead":  s.handleFarmstead,
	}
	for path, handler := range api {
		mux.Handle(path, headers.Middleware(tracer.Middleware(logCtx(reqID(s.guard(handler))))))
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// guard applies method filtering, suspicious-request rejection, and
// rate limiting ahead of each API handler.
func (s *Server) guard(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if s.detector.DetectSuspiciousRequest(r) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request rejected", "path", r.URL.Path)
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		clientIP := s.detector.ExtractClientIP(r)
		if !s.rateLimiter.Allow(clientIP) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded", applog.FieldClientIP, clientIP, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	})
}

// snapshot returns the current dataset, caching reads briefly so a busy
// board does not hammer the sheet or database.
func (s *Server) snapshot(ctx context.Context) (core.Snapshot, error) {
	if snap, ok := s.snapshotCache.Get(snapshotCacheKey); ok {
		return snap, nil
	}
	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	snap, err := s.reader.ReadSnapshot(cctx)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	s.snapshotCache.Set(snapshotCacheKey, snap)
	return snap, nil
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady verifies the backend answers before reporting ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.snapshot(r.Context()); err != nil {
		s.errlog.LogError(r.Context(), "Readiness check failed", err, applog.ComponentHTTP, applog.OpRead, applog.NewFields())
		writeError(w, http.StatusServiceUnavailable, "backend unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
