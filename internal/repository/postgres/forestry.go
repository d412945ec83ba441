package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eospatial/geoforestry/internal/model"
)

var _ model.ForestryStore = (*ForestryRepository)(nil)

type ForestryRepository struct {
	db *Connection
}

func NewForestryRepository(db *Connection) *ForestryRepository {
	return &ForestryRepository{
		db: db,
	}
}

const forestryColumns = `id, name, region, map_style_url, mapbox_token, center_lat, center_lon, token, token_expires_on, created_at, updated_at`

func scanForestry(row pgx.Row) (model.Forestry, error) {
	var f model.Forestry
	err := row.Scan(
		&f.ID, &f.Name, &f.Region, &f.MapStyleURL, &f.MapBoxToken,
		&f.Center.Latitude, &f.Center.Longitude,
		&f.Token, &f.TokenExpiresOn, &f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

func (r *ForestryRepository) Create(ctx context.Context, forestry model.Forestry) (model.Forestry, error) {
	query := `
		INSERT INTO forestries (id, name, region, map_style_url, mapbox_token, center_lat, center_lon, token, token_expires_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + forestryColumns

	saved, err := scanForestry(r.db.QueryRow(ctx, query,
		forestry.ID, forestry.Name, forestry.Region,
		forestry.MapStyleURL, forestry.MapBoxToken,
		forestry.Center.Latitude, forestry.Center.Longitude,
		forestry.Token, forestry.TokenExpiresOn,
	))
	if err != nil {
		return model.Forestry{}, err
	}

	return saved, nil
}

func (r *ForestryRepository) Update(ctx context.Context, forestry model.Forestry) (model.Forestry, error) {
	query := `
		UPDATE forestries
		SET name = $2, region = $3, map_style_url = $4, mapbox_token = $5,
		    center_lat = $6, center_lon = $7, token = $8, token_expires_on = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + forestryColumns

	saved, err := scanForestry(r.db.QueryRow(ctx, query,
		forestry.ID, forestry.Name, forestry.Region,
		forestry.MapStyleURL, forestry.MapBoxToken,
		forestry.Center.Latitude, forestry.Center.Longitude,
		forestry.Token, forestry.TokenExpiresOn,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Forestry{}, model.ErrNotFound
		}
		return model.Forestry{}, err
	}

	return saved, nil
}

func (r *ForestryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Forestry, error) {
	query := `SELECT ` + forestryColumns + ` FROM forestries WHERE id = $1`

	forestry, err := scanForestry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Forestry{}, model.ErrNotFound
		}
		return model.Forestry{}, err
	}

	return forestry, nil
}

func (r *ForestryRepository) GetByName(ctx context.Context, name string) (model.Forestry, error) {
	query := `SELECT ` + forestryColumns + ` FROM forestries WHERE name = $1`

	forestry, err := scanForestry(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Forestry{}, model.ErrNotFound
		}
		return model.Forestry{}, err
	}

	return forestry, nil
}

func (r *ForestryRepository) GetByRegion(ctx context.Context, region string) (model.Forestry, error) {
	query := `SELECT ` + forestryColumns + ` FROM forestries WHERE region = $1 ORDER BY created_at LIMIT 1`

	forestry, err := scanForestry(r.db.QueryRow(ctx, query, region))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Forestry{}, model.ErrNotFound
		}
		return model.Forestry{}, err
	}

	return forestry, nil
}

func (r *ForestryRepository) GetByToken(ctx context.Context, token string) (model.Forestry, error) {
	query := `SELECT ` + forestryColumns + ` FROM forestries WHERE token = $1`

	forestry, err := scanForestry(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Forestry{}, model.ErrNotFound
		}
		return model.Forestry{}, err
	}

	return forestry, nil
}

func (r *ForestryRepository) GetAll(ctx context.Context) ([]model.Forestry, error) {
	query := `SELECT ` + forestryColumns + ` FROM forestries ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forestries []model.Forestry
	for rows.Next() {
		forestry, err := scanForestry(rows)
		if err != nil {
			return nil, err
		}
		forestries = append(forestries, forestry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return forestries, nil
}

func (r *ForestryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM forestries WHERE name = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *ForestryRepository) ExistsByNameExcludingID(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM forestries WHERE name = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name, id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *ForestryRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM forestries WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ForestryRepository) DeleteByName(ctx context.Context, name string) error {
	const query = `DELETE FROM forestries WHERE name = $1`

	cmd, err := r.db.Exec(ctx, query, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *ForestryRepository) ListByExpirationRange(ctx context.Context, start, end time.Time) ([]model.Forestry, error) {
	query := `
		SELECT ` + forestryColumns + `
		FROM forestries
		WHERE token_expires_on IS NOT NULL AND token_expires_on BETWEEN $1::date AND $2::date
		ORDER BY token_expires_on, name`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forestries []model.Forestry
	for rows.Next() {
		forestry, err := scanForestry(rows)
		if err != nil {
			return nil, err
		}
		forestries = append(forestries, forestry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return forestries, nil
}
