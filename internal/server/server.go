package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mohitmishra786/cv-wiz/internal/cache"
	"github.com/mohitmishra786/cv-wiz/internal/compile"
	"github.com/mohitmishra786/cv-wiz/internal/config"
	"github.com/mohitmishra786/cv-wiz/internal/coverletter"
	"github.com/mohitmishra786/cv-wiz/internal/db"
	"github.com/mohitmishra786/cv-wiz/internal/llm"
	"github.com/mohitmishra786/cv-wiz/internal/parser"
	"github.com/mohitmishra786/cv-wiz/internal/render"
	"github.com/mohitmishra786/cv-wiz/internal/scoring"
	"github.com/mohitmishra786/cv-wiz/internal/server/middleware"
	"github.com/mohitmishra786/cv-wiz/internal/server/ratelimit"
)

// Store is the database surface the server handlers use. Implemented by
// *db.DB; faked in handler tests.
type Store interface {
	UserStore
	ProfileStore
	Ping(ctx context.Context) error
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	db          Store
	settings    *config.Settings
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	compiler  *compile.Compiler
	letters   *coverletter.Generator
	parser    *parser.Parser
	llmClient llm.Client

	// responses caches compile and cover letter outputs per user+input.
	responses *cache.Cache
	validator *validator.Validate

	closeDB func()
}

// New creates a new server instance.
func New(settings *config.Settings) (*Server, error) {
	database, err := db.Connect(context.Background(), settings.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:        database,
		settings:  settings,
		validator: validator.New(),
		responses: cache.New(settings.ResponseCacheTTL, cache.DefaultMaxEntries),
		closeDB:   database.Close,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	contexts := scoring.NewContextCache(scoring.DefaultCacheSize)
	s.compiler = compile.New(contexts, render.NewPDFRenderer(), settings.MaxResumePages)

	// LLM-backed features are optional. Without an API key the compile
	// pipeline still works; cover letters and resume parsing return 503.
	if settings.GeminiAPIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), settings.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.letters = coverletter.New(client, contexts)
		s.parser, err = parser.New(client)
		if err != nil {
			return nil, err
		}
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", settings.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF rendering can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request multiplexer.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	authRequired := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", authRequired(http.HandlerFunc(s.handleUpdatePassword)))

	// Tailoring operations
	mux.Handle("POST /compile", authRequired(http.HandlerFunc(s.handleCompile)))
	mux.Handle("POST /cover-letter", authRequired(http.HandlerFunc(s.handleCoverLetter)))
	mux.Handle("POST /parse-resume", authRequired(http.HandlerFunc(s.handleParseResume)))
	mux.Handle("POST /ingest-job", authRequired(http.HandlerFunc(s.handleIngestJob)))

	// Profile
	mux.Handle("GET /users/me", authRequired(http.HandlerFunc(s.handleGetMe)))
	mux.Handle("GET /profile", authRequired(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("GET /profile/{kind}", authRequired(http.HandlerFunc(s.handleListItems)))
	mux.Handle("POST /profile/{kind}", authRequired(http.HandlerFunc(s.handleCreateItem)))
	mux.Handle("PUT /profile/{kind}/{id}", authRequired(http.HandlerFunc(s.handleUpdateItem)))
	mux.Handle("DELETE /profile/{kind}/{id}", authRequired(http.HandlerFunc(s.handleDeleteItem)))
	mux.Handle("GET /settings", authRequired(http.HandlerFunc(s.handleGetSettings)))
	mux.Handle("PUT /settings", authRequired(http.HandlerFunc(s.handleUpdateSettings)))

	// Stored compilation results
	mux.Handle("GET /artifacts", authRequired(http.HandlerFunc(s.handleListArtifacts)))
	mux.Handle("GET /artifacts/{id}", authRequired(http.HandlerFunc(s.handleGetArtifact)))
	mux.Handle("DELETE /artifacts/{id}", authRequired(http.HandlerFunc(s.handleDeleteArtifact)))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.closeDB != nil {
		s.closeDB()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.settings.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP address) from the
// request. X-Forwarded-For is deliberately ignored; it is only trustworthy
// behind a known proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	if err := s.db.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
		s.jsonResponse(w, http.StatusServiceUnavailable, status)
		return
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// handleUpdatePassword routes authenticated password updates.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	s.authHandler.UpdatePassword(w, r, userID)
}
