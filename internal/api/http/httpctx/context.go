// Package httpctx carries the authenticated admin identity through request
// contexts.
package httpctx

import (
	"context"

	"github.com/google/uuid"

	"github.com/eospatial/geoforestry/internal/model"
)

type contextKey int

const userKey contextKey = iota

type userInfo struct {
	id   uuid.UUID
	role model.Role
}

var _ model.ContextManager = (*Manager)(nil)

// Manager implements model.ContextManager over plain context values.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a context carrying the admin's ID and role.
func (m *Manager) SetUserToContext(ctx context.Context, userID uuid.UUID, role model.Role) context.Context {
	return context.WithValue(ctx, userKey, userInfo{id: userID, role: role})
}

// GetUserFromContext retrieves the admin's ID and role set by the
// authentication middleware.
func (m *Manager) GetUserFromContext(ctx context.Context) (uuid.UUID, model.Role, bool) {
	info, ok := ctx.Value(userKey).(userInfo)
	if !ok {
		return uuid.Nil, "", false
	}
	return info.id, info.role, true
}
