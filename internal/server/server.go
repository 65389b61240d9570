package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbancanopy/auth-service/internal/auth"
	"github.com/urbancanopy/auth-service/internal/config"
	"github.com/urbancanopy/auth-service/internal/http/handlers"
	"github.com/urbancanopy/auth-service/internal/middleware"
	"github.com/urbancanopy/auth-service/internal/models"
	"github.com/urbancanopy/auth-service/internal/storage"
)

// Access levels a route can declare. roleAny admits any authenticated
// identity; a concrete role name additionally requires that role.
const (
	rolePublic = ""
	roleAny    = "*"
)

type route struct {
	pattern string
	handler http.HandlerFunc
	role    string
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires middleware and the route table and returns a ready server.
// Route protection is declared once here rather than checked inside
// handlers.
func New(cfg config.Config, store storage.UserStore, denylist auth.Denylist, log *zap.Logger) (*Server, error) {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewPasswordHasher(bcrypt.DefaultCost)
	guard := middleware.NewAuth(tokens, denylist, log)

	authHandler, err := handlers.NewAuthHandler(store, hasher, tokens, denylist, cfg.PasswordMin, log)
	if err != nil {
		return nil, err
	}
	userHandler := handlers.NewUserHandler(store, log)
	health := handlers.NewHealthHandler(time.Now())

	routes := []route{
		{"GET /health", health.Handle, rolePublic},
		{"POST /register", authHandler.HandleRegister, rolePublic},
		{"POST /login", authHandler.HandleLogin, rolePublic},
		{"POST /logout", authHandler.HandleLogout, roleAny},
		{"GET /me", userHandler.HandleMe, roleAny},
		{"PUT /admin/users/role", userHandler.HandleUpdateRole, models.RoleAdmin},
	}

	mux := http.NewServeMux()
	for _, rt := range routes {
		var h http.Handler = rt.handler
		switch rt.role {
		case rolePublic:
		case roleAny:
			h = guard.RequireAuth(h)
		default:
			h = guard.RequireAuth(guard.RequireRole(rt.role)(h))
		}
		mux.Handle(rt.pattern, h)
	}

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}, nil
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
