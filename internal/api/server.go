package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/open-climate-tech/firecam/internal/usecase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	recorder   *usecase.RecordLabelUseCase
	extractor  *usecase.ExtractFramesUseCase
	logger     *zap.Logger
}

func NewServer(port int, recorder *usecase.RecordLabelUseCase, extractor *usecase.ExtractFramesUseCase, logger *zap.Logger) *Server {
	s := &Server{
		recorder:  recorder,
		extractor: extractor,
		logger:    logger,
	}
	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     s.Routes(),
		ReadTimeout: 30 * time.Second,
		// Extraction requests run for minutes; no write timeout here,
		// the invoking infrastructure owns the request deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/labels/bbox", s.handleRecordLabel)
	r.Post("/extract", s.handleExtract)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) Start() error {
	s.logger.Info("http server starting", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
