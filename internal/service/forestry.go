package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eospatial/geoforestry/internal/geojson"
	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
)

// Forestry orchestrates the lifecycle of forestry records together with their
// capability tokens and boundary geometry.
type Forestry struct {
	forestryStore model.ForestryStore
	geometryStore model.GeometryStore
	documents     model.DocumentStorage
	issuer        model.TokenIssuer
	logger        *logger.Logger
}

func NewForestry(
	forestryStore model.ForestryStore,
	geometryStore model.GeometryStore,
	documents model.DocumentStorage,
	issuer model.TokenIssuer,
	logger *logger.Logger,
) *Forestry {
	return &Forestry{
		forestryStore: forestryStore,
		geometryStore: geometryStore,
		documents:     documents,
		issuer:        issuer,
		logger:        logger,
	}
}

// Create persists a new forestry record with a freshly issued capability token
// and, when rawGeoJSON is non-empty, attaches the parsed boundary geometry.
// The plaintext token is returned only here.
//
// Record creation and geometry attachment are two separate commits: a geometry
// failure after the record is persisted does not roll the record back. In that
// case Create returns the persisted record and token together with the
// geometry error so callers can surface the partial success.
func (s *Forestry) Create(ctx context.Context, params model.ForestryParams, rawGeoJSON []byte) (model.Forestry, string, error) {
	s.logger.Info("Forestry service: creating forestry", "name", params.Name)

	exists, err := s.forestryStore.ExistsByName(ctx, params.Name)
	if err != nil {
		return model.Forestry{}, "", fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	if exists {
		return model.Forestry{}, "", fmt.Errorf("%w: %s", model.ErrNameConflict, params.Name)
	}

	token := s.issuer.Issue()

	forestry := model.Forestry{
		ID:             uuid.New(),
		Name:           params.Name,
		Region:         params.Region,
		MapStyleURL:    params.MapStyleURL,
		MapBoxToken:    params.MapBoxToken,
		Center:         params.Center,
		Token:          token,
		TokenExpiresOn: params.TokenExpiresOn,
	}

	saved, err := s.forestryStore.Create(ctx, forestry)
	if err != nil {
		return model.Forestry{}, "", fmt.Errorf("failed to create forestry: %w", err)
	}

	s.logger.Info("Forestry service: forestry created", "id", saved.ID, "name", saved.Name)

	if len(rawGeoJSON) > 0 {
		if err := s.attachGeometry(ctx, saved.ID, rawGeoJSON); err != nil {
			s.logger.Error("Forestry service: geometry attach failed after create",
				"id", saved.ID,
				"error", err.Error())
			return saved, token, fmt.Errorf("forestry created but geometry attach failed: %w", err)
		}
	}

	return saved, token, nil
}

// Update replaces the mutable fields of an existing forestry. The capability
// token is never regenerated here. Geometry is replaced only when rawGeoJSON
// is present; an absent payload leaves existing geometry untouched.
func (s *Forestry) Update(ctx context.Context, ref model.ForestryRef, params model.ForestryParams, rawGeoJSON []byte) (model.Forestry, error) {
	existing, err := s.resolve(ctx, ref)
	if err != nil {
		return model.Forestry{}, err
	}

	if params.Name != existing.Name {
		taken, err := s.forestryStore.ExistsByNameExcludingID(ctx, params.Name, existing.ID)
		if err != nil {
			return model.Forestry{}, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		if taken {
			return model.Forestry{}, fmt.Errorf("%w: %s", model.ErrNameConflict, params.Name)
		}
	}

	existing.Name = params.Name
	existing.Region = params.Region
	existing.MapStyleURL = params.MapStyleURL
	existing.MapBoxToken = params.MapBoxToken
	existing.Center = params.Center
	existing.TokenExpiresOn = params.TokenExpiresOn

	updated, err := s.forestryStore.Update(ctx, existing)
	if err != nil {
		return model.Forestry{}, fmt.Errorf("failed to update forestry: %w", err)
	}

	s.logger.Info("Forestry service: forestry updated", "id", updated.ID, "name", updated.Name)

	if len(rawGeoJSON) > 0 {
		if err := s.attachGeometry(ctx, updated.ID, rawGeoJSON); err != nil {
			return model.Forestry{}, fmt.Errorf("forestry updated but geometry attach failed: %w", err)
		}
	}

	return updated, nil
}

// Delete removes a forestry and its geometry. Geometry is deleted first so a
// failure between the two commits cannot orphan geometry. Returns false when
// the target does not exist.
func (s *Forestry) Delete(ctx context.Context, ref model.ForestryRef) (bool, error) {
	existing, err := s.resolve(ctx, ref)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Warn("Forestry service: delete requested for missing forestry", "ref", ref.String())
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.geometryStore.DeleteByForestry(ctx, existing.ID); err != nil {
		return false, fmt.Errorf("failed to delete geometry: %w", err)
	}

	s.deleteArchivedDocument(ctx, existing.ID)

	if err := s.forestryStore.DeleteByID(ctx, existing.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete forestry: %w", err)
	}

	s.logger.Info("Forestry service: forestry deleted", "id", existing.ID, "name", existing.Name)
	return true, nil
}

// RegenerateToken issues a fresh capability token and sets a new expiration
// date. The previous token stops resolving immediately.
func (s *Forestry) RegenerateToken(ctx context.Context, ref model.ForestryRef, newExpiresOn *time.Time) (string, error) {
	existing, err := s.resolve(ctx, ref)
	if err != nil {
		return "", err
	}

	newToken := s.issuer.Issue()
	existing.Token = newToken
	existing.TokenExpiresOn = newExpiresOn

	if _, err := s.forestryStore.Update(ctx, existing); err != nil {
		return "", fmt.Errorf("failed to store regenerated token: %w", err)
	}

	s.logger.Info("Forestry service: token regenerated", "id", existing.ID)
	return newToken, nil
}

// UpdateTokenExpiration changes the token expiration date without touching the
// token itself.
func (s *Forestry) UpdateTokenExpiration(ctx context.Context, ref model.ForestryRef, newExpiresOn *time.Time) (model.Forestry, error) {
	existing, err := s.resolve(ctx, ref)
	if err != nil {
		return model.Forestry{}, err
	}

	existing.TokenExpiresOn = newExpiresOn

	updated, err := s.forestryStore.Update(ctx, existing)
	if err != nil {
		return model.Forestry{}, fmt.Errorf("failed to update token expiration: %w", err)
	}

	s.logger.Info("Forestry service: token expiration updated", "id", updated.ID)
	return updated, nil
}

// AttachGeometry parses rawGeoJSON and replaces any geometry owned by the
// referenced forestry.
func (s *Forestry) AttachGeometry(ctx context.Context, ref model.ForestryRef, rawGeoJSON []byte) (model.Forestry, error) {
	existing, err := s.resolve(ctx, ref)
	if err != nil {
		return model.Forestry{}, err
	}

	if err := s.attachGeometry(ctx, existing.ID, rawGeoJSON); err != nil {
		return model.Forestry{}, err
	}

	return existing, nil
}

// ClearGeometry removes any geometry owned by the referenced forestry.
// Clearing a forestry that has no geometry is a no-op.
func (s *Forestry) ClearGeometry(ctx context.Context, ref model.ForestryRef) error {
	existing, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}

	if err := s.geometryStore.DeleteByForestry(ctx, existing.ID); err != nil {
		return fmt.Errorf("failed to delete geometry: %w", err)
	}

	s.deleteArchivedDocument(ctx, existing.ID)

	s.logger.Info("Forestry service: geometry cleared", "id", existing.ID)
	return nil
}

// Get returns the referenced forestry record.
func (s *Forestry) Get(ctx context.Context, ref model.ForestryRef) (model.Forestry, error) {
	return s.resolve(ctx, ref)
}

// GetByRegion returns the forestry registered for the given region.
func (s *Forestry) GetByRegion(ctx context.Context, region string) (model.Forestry, error) {
	forestry, err := s.forestryStore.GetByRegion(ctx, region)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Forestry{}, fmt.Errorf("%w: region %s", model.ErrNotFound, region)
		}
		return model.Forestry{}, fmt.Errorf("failed to get forestry by region: %w", err)
	}
	return forestry, nil
}

// GetAll returns all forestry records.
func (s *Forestry) GetAll(ctx context.Context) ([]model.Forestry, error) {
	forestries, err := s.forestryStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list forestries: %w", err)
	}
	return forestries, nil
}

// GetGeometry returns the geometry owned by the given forestry, if any.
func (s *Forestry) GetGeometry(ctx context.Context, forestryID uuid.UUID) (model.MultiPolygon, bool, error) {
	return s.geometryStore.GetByForestry(ctx, forestryID)
}

// ListByTokenExpiration returns forestries whose token expiration date falls
// in the given range. A nil end narrows the range to the start date alone; a
// nil start yields no records.
func (s *Forestry) ListByTokenExpiration(ctx context.Context, start, end *time.Time) ([]model.Forestry, error) {
	if start == nil {
		return []model.Forestry{}, nil
	}
	rangeEnd := *start
	if end != nil {
		rangeEnd = *end
	}

	forestries, err := s.forestryStore.ListByExpirationRange(ctx, *start, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list forestries by expiration: %w", err)
	}
	return forestries, nil
}

func (s *Forestry) resolve(ctx context.Context, ref model.ForestryRef) (model.Forestry, error) {
	var (
		forestry model.Forestry
		err      error
	)

	switch {
	case ref.ID != uuid.Nil:
		forestry, err = s.forestryStore.GetByID(ctx, ref.ID)
	case ref.Name != "":
		forestry, err = s.forestryStore.GetByName(ctx, ref.Name)
	default:
		return model.Forestry{}, model.ErrNotFound
	}

	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Forestry{}, fmt.Errorf("%w: forestry %s", model.ErrNotFound, ref.String())
		}
		return model.Forestry{}, fmt.Errorf("failed to get forestry: %w", err)
	}

	return forestry, nil
}

func (s *Forestry) attachGeometry(ctx context.Context, forestryID uuid.UUID, rawGeoJSON []byte) error {
	geometry, err := geojson.Parse(rawGeoJSON)
	if err != nil {
		return err
	}

	if err := s.geometryStore.Upsert(ctx, forestryID, geometry); err != nil {
		return fmt.Errorf("failed to upsert geometry: %w", err)
	}

	s.archiveDocument(ctx, forestryID, rawGeoJSON)

	s.logger.Info("Forestry service: geometry attached",
		"id", forestryID,
		"polygons", len(geometry.Polygons))
	return nil
}

// archiveDocument keeps the raw uploaded document alongside the parsed
// geometry. Archival is best-effort: the parsed geometry is already committed.
func (s *Forestry) archiveDocument(ctx context.Context, forestryID uuid.UUID, rawGeoJSON []byte) {
	if s.documents == nil {
		return
	}
	if err := s.documents.Upload(ctx, documentKey(forestryID), bytes.NewReader(rawGeoJSON)); err != nil {
		s.logger.Error("Forestry service: failed to archive geojson document",
			"id", forestryID,
			"error", err.Error())
	}
}

func (s *Forestry) deleteArchivedDocument(ctx context.Context, forestryID uuid.UUID) {
	if s.documents == nil {
		return
	}
	if err := s.documents.Delete(ctx, documentKey(forestryID)); err != nil {
		s.logger.Error("Forestry service: failed to delete archived geojson document",
			"id", forestryID,
			"error", err.Error())
	}
}

func documentKey(forestryID uuid.UUID) string {
	return fmt.Sprintf("forestries/%s/boundary.geojson", forestryID)
}
