package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
)

// Multipart payloads carry a small JSON document plus one GeoJSON file.
const maxUploadBytes = 16 << 20

// ForestryService drives the admin lifecycle of forestry records.
type ForestryService interface {
	Create(ctx context.Context, params model.ForestryParams, rawGeoJSON []byte) (model.Forestry, string, error)
	Update(ctx context.Context, ref model.ForestryRef, params model.ForestryParams, rawGeoJSON []byte) (model.Forestry, error)
	Delete(ctx context.Context, ref model.ForestryRef) (bool, error)
	RegenerateToken(ctx context.Context, ref model.ForestryRef, newExpiresOn *time.Time) (string, error)
	UpdateTokenExpiration(ctx context.Context, ref model.ForestryRef, newExpiresOn *time.Time) (model.Forestry, error)
	AttachGeometry(ctx context.Context, ref model.ForestryRef, rawGeoJSON []byte) (model.Forestry, error)
	ClearGeometry(ctx context.Context, ref model.ForestryRef) error
	Get(ctx context.Context, ref model.ForestryRef) (model.Forestry, error)
	GetByRegion(ctx context.Context, region string) (model.Forestry, error)
	GetAll(ctx context.Context) ([]model.Forestry, error)
	GetGeometry(ctx context.Context, forestryID uuid.UUID) (model.MultiPolygon, bool, error)
	ListByTokenExpiration(ctx context.Context, start, end *time.Time) ([]model.Forestry, error)
}

// Forestry handles admin forestry endpoints.
type Forestry struct {
	service ForestryService
	logger  *logger.Logger
}

func NewForestry(service ForestryService, logger *logger.Logger) *Forestry {
	return &Forestry{
		service: service,
		logger:  logger,
	}
}

type createForestryResponse struct {
	Forestry forestryResponse `json:"forestry"`
	Token    string           `json:"token"`
	// Set when the record was created but its geometry could not be ingested.
	GeometryError string `json:"geometryError,omitempty"`
}

// readMultipartForestry extracts the forestry JSON part and the optional
// geojson file part.
func readMultipartForestry(r *http.Request) (model.ForestryParams, []byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return model.ForestryParams{}, nil, err
	}

	var req forestryRequest
	if err := json.Unmarshal([]byte(r.FormValue("forestry")), &req); err != nil {
		return model.ForestryParams{}, nil, err
	}

	params, err := req.toParams()
	if err != nil {
		return model.ForestryParams{}, nil, err
	}

	file, _, err := r.FormFile("geojson")
	if err == http.ErrMissingFile {
		return params, nil, nil
	}
	if err != nil {
		return model.ForestryParams{}, nil, err
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return model.ForestryParams{}, nil, err
	}

	return params, raw, nil
}

func (h *Forestry) Create(w http.ResponseWriter, r *http.Request) {
	params, raw, err := readMultipartForestry(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	saved, token, err := h.service.Create(r.Context(), params, raw)
	if err != nil && saved.ID == uuid.Nil {
		handleError(w, err)
		return
	}

	resp := createForestryResponse{
		Forestry: toForestryResponse(saved),
		Token:    token,
	}
	if err != nil {
		// The record exists; only the boundary ingestion failed.
		resp.GeometryError = "geometry was not attached: malformed or unstorable payload"
		h.logger.Warn("Forestry handler: created without geometry", "forestry_id", saved.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Forestry) Update(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(chi.URLParam(r, "ref"))

	params, raw, err := readMultipartForestry(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	updated, err := h.service.Update(r.Context(), ref, params, raw)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponse(updated))
}

func (h *Forestry) Delete(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(chi.URLParam(r, "ref"))

	deleted, err := h.service.Delete(r.Context(), ref)
	if err != nil {
		handleError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Forestry) GetAll(w http.ResponseWriter, r *http.Request) {
	forestries, err := h.service.GetAll(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponses(forestries))
}

func (h *Forestry) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid forestry id")
		return
	}

	forestry, err := h.service.Get(r.Context(), model.RefByID(id))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponse(forestry))
}

func (h *Forestry) GetByName(w http.ResponseWriter, r *http.Request) {
	forestry, err := h.service.Get(r.Context(), model.RefByName(chi.URLParam(r, "name")))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponse(forestry))
}

func (h *Forestry) GetByRegion(w http.ResponseWriter, r *http.Request) {
	forestry, err := h.service.GetByRegion(r.Context(), chi.URLParam(r, "region"))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponse(forestry))
}

func (h *Forestry) ListByTokenExpiration(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateParam(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseDateParam(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date")
		return
	}

	forestries, err := h.service.ListByTokenExpiration(r.Context(), start, end)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponses(forestries))
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *Forestry) AttachGeometry(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(chi.URLParam(r, "ref"))

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	updated, err := h.service.AttachGeometry(r.Context(), ref, raw)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponse(updated))
}

func (h *Forestry) ClearGeometry(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(chi.URLParam(r, "ref"))

	if err := h.service.ClearGeometry(r.Context(), ref); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Forestry) GetGeometry(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(chi.URLParam(r, "ref"))

	forestry, err := h.service.Get(r.Context(), ref)
	if err != nil {
		handleError(w, err)
		return
	}

	geom, found, err := h.service.GetGeometry(r.Context(), forestry.ID)
	if err != nil {
		handleError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "forestry has no geometry")
		return
	}

	raw, err := encodeGeometry(geom)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

type tokenUpdateRequest struct {
	ExpirationDate string `json:"expirationDate"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func readTokenUpdate(r *http.Request) (*time.Time, error) {
	var req tokenUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return nil, err
	}
	return parseDateParam(req.ExpirationDate)
}

func (h *Forestry) RegenerateToken(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(chi.URLParam(r, "ref"))

	expiresOn, err := readTokenUpdate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expiration date")
		return
	}

	token, err := h.service.RegenerateToken(r.Context(), ref, expiresOn)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *Forestry) UpdateTokenExpiration(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(chi.URLParam(r, "ref"))

	expiresOn, err := readTokenUpdate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expiration date")
		return
	}

	updated, err := h.service.UpdateTokenExpiration(r.Context(), ref, expiresOn)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toForestryResponse(updated))
}
