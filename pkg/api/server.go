package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/panelayout/pkg/observability"
	"github.com/matzehuels/panelayout/pkg/pipeline"
	"github.com/matzehuels/panelayout/pkg/session"
)

const (
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 4 << 20

	// shutdownTimeout is how long Serve waits for in-flight requests.
	shutdownTimeout = 10 * time.Second

	// cleanupInterval is how often expired gestures are dropped.
	cleanupInterval = time.Minute
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner   *pipeline.Runner
	gestures *session.Manager
	logger   *log.Logger
}

// New creates a server. A nil gestures manager gets an in-memory one using
// the runner's engine, and a nil logger discards output.
func New(runner *pipeline.Runner, gestures *session.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if gestures == nil {
		gestures = session.NewManager(session.NewMemoryStore(), runner.Engine, session.DefaultTTL, logger)
	}
	return &Server{runner: runner, gestures: gestures, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.healthz)
	r.Route("/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/format", appHandler{s, s.handleFormat, "format"})
		r.Method(http.MethodPost, "/positions", appHandler{s, s.handlePositions, "positions"})
		r.Method(http.MethodPost, "/check", appHandler{s, s.handleCheck, "check"})
		r.Method(http.MethodPost, "/apply", appHandler{s, s.handleApply, "apply"})
		for _, route := range opRoutes {
			r.Method(http.MethodPost, "/"+string(route), appHandler{s, s.handleOp(route), string(route)})
		}

		r.Route("/gestures", func(r chi.Router) {
			r.Method(http.MethodPost, "/", appHandler{s, s.handleGestureBegin, "gesture-begin"})
			r.Method(http.MethodPatch, "/{id}", appHandler{s, s.handleGestureUpdate, "gesture-update"})
			r.Method(http.MethodPost, "/{id}/end", appHandler{s, s.handleGestureEnd, "gesture-end"})
			r.Method(http.MethodDelete, "/{id}", appHandler{s, s.handleGestureCancel, "gesture-cancel"})
		})
	})
	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
// Expired gestures are cleaned up in the background while serving.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.gestures.RunCleanup(cleanupCtx, cleanupInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(contentTypeHeader, "text/plain")
	_, _ = w.Write([]byte("ok"))
}

// instrument reports every request to the server hooks and logs it.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", dur,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// appHandler adapts a handler that returns a status and an error, doing the
// common error processing in one place.
type appHandler struct {
	s       *Server
	handler func(http.ResponseWriter, *http.Request) (int, error)
	name    string
}

func (a appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	status, err := a.handler(w, r)
	if err != nil {
		if status == 0 {
			status = statusFor(err)
		}
		if status >= http.StatusInternalServerError {
			a.s.logger.Error("handler failed", "handler", a.name, "error", err)
		} else {
			a.s.logger.Debug("request rejected", "handler", a.name, "status", status, "error", err)
		}
		sendError(w, status, err)
	}
}
