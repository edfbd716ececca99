package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mailboard/mailboard/internal/auth"
)

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"bytes", ww.BytesWritten(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// authMiddleware verifies the bearer token and stores the principal in
// the request context. Missing or invalid tokens yield 401.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)

		principal, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Unauthorized"})
				return
			}
			s.logger.Error("token verification failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Authentication failed"})
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyPrincipal, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// PrincipalFromContext returns the verified principal, or nil
func PrincipalFromContext(ctx context.Context) *auth.Principal {
	if p, ok := ctx.Value(ctxKeyPrincipal).(*auth.Principal); ok {
		return p
	}
	return nil
}
