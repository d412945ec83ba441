package handler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eospatial/geoforestry/internal/geojson"
	"github.com/eospatial/geoforestry/internal/model"
)

// dateLayout is the wire format for calendar dates such as token expiration.
const dateLayout = "2006-01-02"

type centerDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type forestryRequest struct {
	Name                string    `json:"name"`
	Region              string    `json:"region"`
	MapStyleURL         string    `json:"mapStyleUrl"`
	MapBoxToken         string    `json:"mapBoxToken"`
	Center              centerDTO `json:"center"`
	TokenExpirationDate string    `json:"tokenExpirationDate"`
}

func (r forestryRequest) toParams() (model.ForestryParams, error) {
	params := model.ForestryParams{
		Name:        r.Name,
		Region:      r.Region,
		MapStyleURL: r.MapStyleURL,
		MapBoxToken: r.MapBoxToken,
		Center: model.GeoCoordinate{
			Latitude:  r.Center.Latitude,
			Longitude: r.Center.Longitude,
		},
	}

	if r.TokenExpirationDate != "" {
		expires, err := time.Parse(dateLayout, r.TokenExpirationDate)
		if err != nil {
			return model.ForestryParams{}, fmt.Errorf("invalid tokenExpirationDate: %w", err)
		}
		params.TokenExpiresOn = &expires
	}

	return params, nil
}

type forestryResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Region              string    `json:"region"`
	MapStyleURL         string    `json:"mapStyleUrl"`
	MapBoxToken         string    `json:"mapBoxToken"`
	Center              centerDTO `json:"center"`
	Token               string    `json:"token"`
	TokenExpirationDate string    `json:"tokenExpirationDate,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func toForestryResponse(f model.Forestry) forestryResponse {
	resp := forestryResponse{
		ID:          f.ID,
		Name:        f.Name,
		Region:      f.Region,
		MapStyleURL: f.MapStyleURL,
		MapBoxToken: f.MapBoxToken,
		Center: centerDTO{
			Latitude:  f.Center.Latitude,
			Longitude: f.Center.Longitude,
		},
		Token:     f.Token,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if f.TokenExpiresOn != nil {
		resp.TokenExpirationDate = f.TokenExpiresOn.Format(dateLayout)
	}
	return resp
}

func toForestryResponses(forestries []model.Forestry) []forestryResponse {
	out := make([]forestryResponse, 0, len(forestries))
	for _, f := range forestries {
		out = append(out, toForestryResponse(f))
	}
	return out
}

// publicForestryResponse is the projection released to capability token
// holders. It never carries the token itself or admin metadata.
type publicForestryResponse struct {
	Name        string          `json:"name"`
	Region      string          `json:"region"`
	MapStyleURL string          `json:"mapStyleUrl"`
	MapBoxToken string          `json:"mapBoxToken"`
	Center      centerDTO       `json:"center"`
	Geometry    json.RawMessage `json:"geometry,omitempty"`
}

// parseRef resolves a path segment to a forestry reference: UUIDs address by
// id, anything else by name.
func parseRef(segment string) model.ForestryRef {
	if id, err := uuid.Parse(segment); err == nil {
		return model.RefByID(id)
	}
	return model.RefByName(segment)
}

func encodeGeometry(geom model.MultiPolygon) (json.RawMessage, error) {
	if geom.IsEmpty() {
		return nil, nil
	}
	raw, err := geojson.EncodeGeometry(geom)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}
