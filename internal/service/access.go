package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
)

// Access validates capability tokens and releases forestry records to token
// holders. Expiration is checked lazily at validation time; there is no sweep.
type Access struct {
	forestryStore model.ForestryStore
	geometryStore model.GeometryStore
	logger        *logger.Logger
}

func NewAccess(
	forestryStore model.ForestryStore,
	geometryStore model.GeometryStore,
	logger *logger.Logger,
) *Access {
	return &Access{
		forestryStore: forestryStore,
		geometryStore: geometryStore,
		logger:        logger,
	}
}

// Validate resolves a token to its tri-state verdict. A record with no
// expiration date, or one expiring today or later, is valid; an expiration
// date strictly before today's local calendar date makes it expired. Lookup
// failures other than absence propagate as errors.
func (s *Access) Validate(ctx context.Context, token string) (model.TokenValidationResult, error) {
	forestry, err := s.forestryStore.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Warn("Access service: token not found")
		return model.TokenNotFound(), nil
	}
	if err != nil {
		return model.TokenValidationResult{}, fmt.Errorf("failed to look up token: %w", err)
	}

	return verdictFor(forestry, time.Now()), nil
}

// GetForestryByToken validates the token and, when valid, returns the owning
// record and its geometry. The verdict is always returned so callers can
// distinguish all three states; on a non-valid verdict no record data is
// released.
func (s *Access) GetForestryByToken(ctx context.Context, token string) (model.Forestry, model.MultiPolygon, model.TokenValidationResult, error) {
	forestry, err := s.forestryStore.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Warn("Access service: token not found")
		return model.Forestry{}, model.MultiPolygon{}, model.TokenNotFound(), nil
	}
	if err != nil {
		return model.Forestry{}, model.MultiPolygon{}, model.TokenValidationResult{}, fmt.Errorf("failed to look up token: %w", err)
	}

	verdict := verdictFor(forestry, time.Now())
	if !verdict.IsValid() {
		s.logger.Warn("Access service: token rejected",
			"forestry_id", forestry.ID,
			"status", verdict.Status)
		return model.Forestry{}, model.MultiPolygon{}, verdict, nil
	}

	geometry, _, err := s.geometryStore.GetByForestry(ctx, forestry.ID)
	if err != nil {
		return model.Forestry{}, model.MultiPolygon{}, model.TokenValidationResult{}, fmt.Errorf("failed to get geometry: %w", err)
	}

	return forestry, geometry, verdict, nil
}

func verdictFor(forestry model.Forestry, now time.Time) model.TokenValidationResult {
	if forestry.TokenExpiresOn != nil && dateOnly(*forestry.TokenExpiresOn).Before(dateOnly(now)) {
		return model.TokenExpired()
	}
	return model.TokenValid()
}

// dateOnly truncates a timestamp to its calendar date, keeping the location.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
