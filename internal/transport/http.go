package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/intake"
)

// Intake handles one inbound text message.
type Intake interface {
	Handle(ctx context.Context, in message.Inbound) (*intake.Outcome, error)
}

// Accounts reacts to identity provider events.
type Accounts interface {
	OnUserCreated(ctx context.Context, uid string) error
}

// Options configures the HTTP router.
type Options struct {
	Intake   Intake
	Accounts Accounts

	// MCP is mounted at /mcp when non-nil.
	MCP      http.Handler
	MCPToken string

	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	intake   Intake
	accounts Accounts
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		intake:   opts.Intake,
		accounts: opts.Accounts,
		logger:   logger,
		now:      time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", srv.handleHealth)

	// Webhooks
	r.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}
		r.Post("/sms", srv.handleSMS)
		r.Post("/hooks/user-created", srv.handleUserCreated)
	})

	if opts.MCP != nil {
		r.Group(func(r chi.Router) {
			if opts.MCPToken != "" {
				r.Use(AuthMiddleware(opts.MCPToken))
			}
			r.Handle("/mcp", opts.MCP)
		})
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
