package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/nguyentantai21042004/reelscript/internal/generator"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
)

// Options configures the HTTP server.
type Options struct {
	Addr            string
	Generator       generator.Generator
	Logger          logger.Logger
	SRTDuration     float64
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server exposes the transcript and caption pipelines over HTTP.
type Server struct {
	addr            string
	gen             generator.Generator
	logger          logger.Logger
	srtDuration     float64
	shutdownTimeout time.Duration

	handler  http.Handler
	listener net.Listener
	server   *http.Server
	stopOnce sync.Once
}

// New builds the router and middleware chain. It does not listen yet.
func New(opts Options) *Server {
	s := &Server{
		addr:            opts.Addr,
		gen:             opts.Generator,
		logger:          opts.Logger,
		srtDuration:     opts.SRTDuration,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 5 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 150 * time.Second
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/generate_transcript", s.handleTranscript).Methods(http.MethodPost)
	r.HandleFunc("/generate_caption", s.handleCaption).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	s.handler = s.middleware(r)
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(context.Background(), "api server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info(ctx, "api server listening on %s", listener.Addr().String())
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts the server down. Calls after the first are no-ops.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(context.Background(), "api server shutdown: %v", err)
		}
	})
}
