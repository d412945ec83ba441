package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores and retrieves the authenticated admin in a request
// context.
type ContextManager interface {
	SetUserToContext(ctx context.Context, userID uuid.UUID, role Role) context.Context
	GetUserFromContext(ctx context.Context) (uuid.UUID, Role, bool)
}
