package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ForestryStore defines persistence operations for forestry records.
type ForestryStore interface {
	Create(ctx context.Context, forestry Forestry) (Forestry, error)
	Update(ctx context.Context, forestry Forestry) (Forestry, error)
	GetByID(ctx context.Context, id uuid.UUID) (Forestry, error)
	GetByName(ctx context.Context, name string) (Forestry, error)
	GetByRegion(ctx context.Context, region string) (Forestry, error)
	GetByToken(ctx context.Context, token string) (Forestry, error)
	GetAll(ctx context.Context) ([]Forestry, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameExcludingID(ctx context.Context, name string, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByName(ctx context.Context, name string) error
	ListByExpirationRange(ctx context.Context, start, end time.Time) ([]Forestry, error)
}

// Forestry represents a stored forestry management unit.
type Forestry struct {
	ID             uuid.UUID
	Name           string
	Region         string
	MapStyleURL    string
	MapBoxToken    string
	Center         GeoCoordinate
	Token          string
	TokenExpiresOn *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ForestryParams contains the mutable attributes of a forestry record.
// Token and ID are managed by the lifecycle service, never by callers.
type ForestryParams struct {
	Name           string
	Region         string
	MapStyleURL    string
	MapBoxToken    string
	Center         GeoCoordinate
	TokenExpiresOn *time.Time
}

// ForestryRef addresses a forestry either by ID or by its unique name.
type ForestryRef struct {
	ID   uuid.UUID
	Name string
}

// RefByID builds a reference addressing a forestry by ID.
func RefByID(id uuid.UUID) ForestryRef {
	return ForestryRef{ID: id}
}

// RefByName builds a reference addressing a forestry by name.
func RefByName(name string) ForestryRef {
	return ForestryRef{Name: name}
}

func (r ForestryRef) String() string {
	if r.ID != uuid.Nil {
		return r.ID.String()
	}
	return r.Name
}
