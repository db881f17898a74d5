package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trichyfresh/connect/internal/adapter/auth"
	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/logging"
)

// Identity is the authenticated caller, as carried in the request context.
type Identity struct {
	UserID  int64
	Role    domain.Role
	TalukID int64
}

// TokenVerifier abstracts token parsing so handler tests can stub it.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type ctxKey int

const identityKey ctxKey = iota

func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

type Middleware struct {
	verifier TokenVerifier
}

func NewMiddleware(verifier TokenVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// RequireRole authenticates the bearer token and gates the route on role.
func (m *Middleware) RequireRole(role domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if claims.Role != role {
			writeError(w, http.StatusForbidden, "access allowed for "+strings.ToLower(string(role))+"s only")
			return
		}

		id := &Identity{UserID: claims.UserID, Role: claims.Role, TalukID: claims.TalukID}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger tags every request with an id and emits one JSON access line.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logging.Log(logging.Fields{
			Service:    "api",
			RequestID:  uuid.NewString(),
			Method:     r.Method,
			Path:       r.URL.Path,
			Status:     rec.status,
			DurationMS: time.Since(start).Milliseconds(),
		})
	})
}
