package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
)

const headerRequestID = "X-Request-ID"

func (s *Server) middleware(h http.Handler) http.Handler {
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{headerRequestID, "Content-Disposition"}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.logger}),
		handlers.PrintRecoveryStack(true),
	)(h)
	h = s.logRequests(h)
	return s.withRequestID(h)
}

// withRequestID assigns every request a fresh id, exposed in the context and
// the X-Request-ID response header.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s.logger.Debug(ctx, "%s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Info(ctx, "%s %s -> %d (%d bytes, %s)", r.Method, r.URL.Path, m.Code, m.Written, m.Duration)
	})
}

type recoveryLogger struct {
	log logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error(context.Background(), "%s", strings.TrimSpace(fmt.Sprintln(v...)))
}
