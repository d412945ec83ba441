package model

import (
	"context"

	"github.com/google/uuid"
)

// SRID is the coordinate reference system for all stored geometry (WGS84).
const SRID = 4326

// GeoCoordinate is a point in decimal degrees, latitude first. This is the
// record-model axis order; GeoJSON payloads use the opposite order, which
// Position preserves at the parser boundary.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Position is a single ring vertex in GeoJSON axis order (longitude first).
type Position struct {
	Lon float64
	Lat float64
}

// Ring is an ordered sequence of vertices forming a polygon boundary.
type Ring []Position

// Closed reports whether the first and last vertex coincide exactly.
func (r Ring) Closed() bool {
	return len(r) > 0 && r[0] == r[len(r)-1]
}

// MultiPolygon is an ordered collection of closed outer rings. Holes are not
// represented.
type MultiPolygon struct {
	Polygons []Ring
}

// IsEmpty reports whether the geometry contains no polygons.
func (mp MultiPolygon) IsEmpty() bool {
	return len(mp.Polygons) == 0
}

// GeometryStore associates at most one MultiPolygon with a forestry record.
type GeometryStore interface {
	Upsert(ctx context.Context, forestryID uuid.UUID, geom MultiPolygon) error
	DeleteByForestry(ctx context.Context, forestryID uuid.UUID) error
	GetByForestry(ctx context.Context, forestryID uuid.UUID) (MultiPolygon, bool, error)
}
