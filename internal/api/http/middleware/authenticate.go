package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
)

// Authenticate validates bearer session tokens and injects the admin identity
// into the request context.
type Authenticate struct {
	sessions       model.SessionManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions model.SessionManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Handle parses the Authorization header and rejects requests without a valid
// session token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorized(w, "missing authorization token")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, role, err := m.sessions.ParseAccessToken(tokenString)
		if err != nil {
			m.logger.Warn("Authenticate middleware: invalid session token", "error", err)
			unauthorized(w, "invalid authorization token")
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), userID, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
