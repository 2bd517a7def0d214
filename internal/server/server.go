package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/skillmatch-io/apiserver/config"
	"github.com/skillmatch-io/apiserver/internal/auth"
	"github.com/skillmatch-io/apiserver/internal/db"
	"github.com/skillmatch-io/apiserver/internal/handlers"
	"github.com/skillmatch-io/apiserver/internal/judge"
	"github.com/skillmatch-io/apiserver/internal/mq"
	"github.com/skillmatch-io/apiserver/internal/services"
	"github.com/skillmatch-io/apiserver/internal/storage"
	"github.com/skillmatch-io/apiserver/internal/store"
)

// Server wraps the HTTP server, router, and shared resources.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	events     *mq.MQ
	logger     zerolog.Logger
}

// New wires the whole application: database, repositories, services,
// and routes. Storage and eventing are optional; grading and auth are
// not.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	archive, err := storage.NewArchiveFromConfig(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init storage failed: %w", err)
	}
	if archive != nil {
		if err := archive.EnsureBucket(ctx); err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("ensure bucket failed: %w", err)
		}
	}

	events, err := mq.NewFromConfig(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init mq failed: %w", err)
	}

	userRepo := store.NewUserRepository(dbConn)
	challengeRepo := store.NewChallengeRepository(dbConn)
	taskRepo := store.NewTaskRepository(dbConn)
	submissionRepo := store.NewSubmissionRepository(dbConn)
	taskSubmissionRepo := store.NewTaskSubmissionRepository(dbConn)
	feedbackRepo := store.NewFeedbackRepository(dbConn)
	profileRepo := store.NewCompanyProfileRepository(dbConn)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret)
	grader := judge.NewClient(cfg.Judge)

	userService := services.NewUserService(userRepo, tokens, cfg.Auth.BcryptCost, logger)
	challengeService := services.NewChallengeService(challengeRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	submissionService := services.NewSubmissionService(
		challengeRepo, taskRepo, submissionRepo, taskSubmissionRepo,
		userRepo, grader, archive, events, logger,
	)
	feedbackService := services.NewFeedbackService(feedbackRepo, profileRepo)

	authMiddleware := handlers.RequireAuth(tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, tokens)
	})
	router.Route("/api", func(r chi.Router) {
		// Public reads first; everything else sits behind auth.
		handlers.PublicFeedbackRouter(r, feedbackService)
		r.Get("/anonymous-submissions/{taskID}", handlers.AnonymousSubmissions(submissionService))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Route("/challenges", func(r chi.Router) {
				handlers.ChallengeRouter(r, challengeService, submissionService)
			})
			handlers.TaskRouter(r, taskService)
			handlers.SubmissionRouter(r, submissionService)
			handlers.FeedbackRouter(r, feedbackService)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout: 15 * time.Second,
		// Grading may hold a request for two judge attempts.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		events:     events,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting http server")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown and releases shared resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.events != nil {
		_ = s.events.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
