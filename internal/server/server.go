package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fintrack-ai/fintrack-be/internal/agent"
	"github.com/fintrack-ai/fintrack-be/internal/auth"
	"github.com/fintrack-ai/fintrack-be/internal/config"
	"github.com/fintrack-ai/fintrack-be/internal/http/handlers"
	"github.com/fintrack-ai/fintrack-be/internal/middleware"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
)

// Deps collects the injected collaborators for route wiring.
type Deps struct {
	Users   storage.UserStore
	Records storage.RecordStore
	DB      handlers.Pinger
	Handle  *agent.Handle
	Rebuild func() (agent.Asker, error)
	Logger  *slog.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), deps.DB).Register(mux)
	handlers.NewUsersHandler(deps.Users, logger).Register(mux)
	handlers.NewPermissionsHandler(deps.Users, logger).Register(mux)
	handlers.NewRecordsHandler(deps.Records, logger).Register(mux)

	chatLimit := func(next http.Handler) http.Handler {
		return middleware.RateLimit(cfg.ChatRatePerMinute, cfg.ChatRateBurst, next)
	}
	handlers.NewChatHandler(deps.Handle, deps.Rebuild, logger).Register(mux, chatLimit)

	var handler http.Handler = mux
	if cfg.AuthEnabled() {
		tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
		handlers.NewTokenHandler(deps.Users, tokens, logger).Register(mux)
		handler = apiGate(middleware.BearerAuth(tokens, mux), mux)
	}

	handler = middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, handler))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Chat requests block on up to three upstream calls.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// apiGate applies the bearer guard to /api/v1 routes only; health probes
// and token minting stay open.
func apiGate(protected, open http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/v1/") {
			protected.ServeHTTP(w, r)
			return
		}
		open.ServeHTTP(w, r)
	})
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
