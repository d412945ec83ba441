package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eospatial/geoforestry/internal/geojson"
	"github.com/eospatial/geoforestry/internal/model"
)

var _ model.GeometryStore = (*GeometryRepository)(nil)

// GeometryRepository stores forestry boundaries as PostGIS MultiPolygon rows,
// one row per forestry. Geometry crosses the wire as GeoJSON text and is
// converted by ST_GeomFromGeoJSON / ST_AsGeoJSON on the database side.
type GeometryRepository struct {
	db *Connection
}

func NewGeometryRepository(db *Connection) *GeometryRepository {
	return &GeometryRepository{
		db: db,
	}
}

func (r *GeometryRepository) Upsert(ctx context.Context, forestryID uuid.UUID, geom model.MultiPolygon) error {
	raw, err := geojson.EncodeGeometry(geom)
	if err != nil {
		return fmt.Errorf("failed to encode geometry: %w", err)
	}

	query := `
		INSERT INTO forestry_geometries (forestry_id, boundary)
		VALUES ($1, ST_SetSRID(ST_GeomFromGeoJSON($2), $3))
		ON CONFLICT (forestry_id)
		DO UPDATE SET boundary = EXCLUDED.boundary, updated_at = NOW()`

	if _, err := r.db.Exec(ctx, query, forestryID, string(raw), model.SRID); err != nil {
		return err
	}

	return nil
}

func (r *GeometryRepository) DeleteByForestry(ctx context.Context, forestryID uuid.UUID) error {
	const query = `DELETE FROM forestry_geometries WHERE forestry_id = $1`

	// Deleting an absent row is not an error; callers rely on idempotence.
	if _, err := r.db.Exec(ctx, query, forestryID); err != nil {
		return err
	}

	return nil
}

func (r *GeometryRepository) GetByForestry(ctx context.Context, forestryID uuid.UUID) (model.MultiPolygon, bool, error) {
	const query = `SELECT ST_AsGeoJSON(boundary) FROM forestry_geometries WHERE forestry_id = $1`

	var raw string
	err := r.db.QueryRow(ctx, query, forestryID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MultiPolygon{}, false, nil
		}
		return model.MultiPolygon{}, false, err
	}

	geom, err := geojson.DecodeGeometry([]byte(raw))
	if err != nil {
		return model.MultiPolygon{}, false, fmt.Errorf("failed to decode stored geometry: %w", err)
	}

	return geom, true, nil
}
