package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/codejudge/internal/handlers"
	"gitlab.com/fcv-2025.net/codejudge/internal/handlers/submissions"
)

type ServiceProvider struct {
	judgeService   judge.IJudgeService
	summaryStore   secondary.SummaryStore
	metricsHandler http.Handler
	middleware     *handlers.MiddlewareProvider
}

// NewServiceProvider bundles what the routes need. A nil middleware leaves
// submit unauthenticated; a nil metrics handler disables /metrics.
func NewServiceProvider(
	judgeService judge.IJudgeService,
	summaryStore secondary.SummaryStore,
	metricsHandler http.Handler,
	middleware *handlers.MiddlewareProvider,
) *ServiceProvider {
	return &ServiceProvider{
		judgeService:   judgeService,
		summaryStore:   summaryStore,
		metricsHandler: metricsHandler,
		middleware:     middleware,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	WriteTimeout    time.Duration
	logger          primary.Logger
}

// NewServer creates the HTTP server. writeTimeout must cover a whole judged
// submission, so it is derived from the backend timeout by the caller.
func NewServer(port int, serviceName string, serviceProvider ServiceProvider, writeTimeout time.Duration, logger primary.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 15 * time.Second
	}
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		WriteTimeout:    writeTimeout,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	var protect func(http.Handler) http.Handler
	if s.ServiceProvider.middleware != nil {
		protect = s.ServiceProvider.middleware.JWTMiddleware
	} else {
		s.logger.Warn("JWT secret not configured, submit is not authenticated")
	}

	submissions.
		NewSubmissionHandler(s.ServiceProvider.judgeService, s.ServiceProvider.summaryStore, s.logger).
		RegisterRoutes(r, protect)
	r.HandleFunc("/healthz", handlers.Health).Methods("GET")
	if s.ServiceProvider.metricsHandler != nil {
		r.Handle("/metrics", s.ServiceProvider.metricsHandler).Methods("GET")
	}
	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background; errChan receives the error if serving fails.
func (s *Server) Start(ctx context.Context) <-chan error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errChan <- err
		}
		close(errChan)
	}()
	return errChan
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
