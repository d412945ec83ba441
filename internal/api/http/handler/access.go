package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
)

// AccessService resolves capability tokens for public map consumers.
type AccessService interface {
	Validate(ctx context.Context, token string) (model.TokenValidationResult, error)
	GetForestryByToken(ctx context.Context, token string) (model.Forestry, model.MultiPolygon, model.TokenValidationResult, error)
}

// Access handles the public token-gated endpoints.
type Access struct {
	service AccessService
	logger  *logger.Logger
}

func NewAccess(service AccessService, logger *logger.Logger) *Access {
	return &Access{
		service: service,
		logger:  logger,
	}
}

func verdictStatus(result model.TokenValidationResult) int {
	switch result.Status {
	case model.TokenStatusValid:
		return http.StatusOK
	case model.TokenStatusExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusNotFound
	}
}

type validationResponse struct {
	Status  model.TokenStatus `json:"status"`
	Message string            `json:"message"`
}

// Validate reports the token verdict without releasing any record data.
func (h *Access) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Validate(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, verdictStatus(result), validationResponse{
		Status:  result.Status,
		Message: result.Message,
	})
}

// GetForestry releases the public projection and boundary to a valid token
// holder.
func (h *Access) GetForestry(w http.ResponseWriter, r *http.Request) {
	forestry, geometry, result, err := h.service.GetForestryByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		handleError(w, err)
		return
	}

	if !result.IsValid() {
		writeJSON(w, verdictStatus(result), validationResponse{
			Status:  result.Status,
			Message: result.Message,
		})
		return
	}

	rawGeometry, err := encodeGeometry(geometry)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, publicForestryResponse{
		Name:        forestry.Name,
		Region:      forestry.Region,
		MapStyleURL: forestry.MapStyleURL,
		MapBoxToken: forestry.MapBoxToken,
		Center: centerDTO{
			Latitude:  forestry.Center.Latitude,
			Longitude: forestry.Center.Longitude,
		},
		Geometry: rawGeometry,
	})
}
