package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/eospatial/geoforestry/internal/model"
)

// geometryObject is the GeoJSON geometry representation exchanged with the
// database (ST_GeomFromGeoJSON / ST_AsGeoJSON) and with API clients.
type geometryObject struct {
	Type        string          `json:"type"`
	Coordinates [][][][]float64 `json:"coordinates"`
}

// EncodeGeometry serializes a MultiPolygon as a GeoJSON MultiPolygon geometry
// object. Each polygon contributes a single outer ring.
func EncodeGeometry(mp model.MultiPolygon) ([]byte, error) {
	obj := geometryObject{
		Type:        "MultiPolygon",
		Coordinates: make([][][][]float64, 0, len(mp.Polygons)),
	}

	for _, ring := range mp.Polygons {
		vertices := make([][]float64, 0, len(ring))
		for _, p := range ring {
			vertices = append(vertices, []float64{p.Lon, p.Lat})
		}
		obj.Coordinates = append(obj.Coordinates, [][][]float64{vertices})
	}

	out, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal geometry: %w", err)
	}
	return out, nil
}

// DecodeGeometry parses a GeoJSON MultiPolygon geometry object back into the
// model. Holes are dropped; rings are expected to be closed already.
func DecodeGeometry(raw []byte) (model.MultiPolygon, error) {
	var obj geometryObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return model.MultiPolygon{}, fmt.Errorf("%w: invalid geometry JSON: %v", model.ErrMalformedGeometry, err)
	}

	if obj.Type != "MultiPolygon" {
		return model.MultiPolygon{}, fmt.Errorf("%w: unexpected geometry type %q", model.ErrMalformedGeometry, obj.Type)
	}

	mp := model.MultiPolygon{}
	for i, polygon := range obj.Coordinates {
		if len(polygon) == 0 {
			return model.MultiPolygon{}, fmt.Errorf("%w: polygon %d has no outer ring", model.ErrMalformedGeometry, i)
		}
		ring := make(model.Ring, 0, len(polygon[0]))
		for j, vertex := range polygon[0] {
			if len(vertex) < 2 {
				return model.MultiPolygon{}, fmt.Errorf("%w: polygon %d vertex %d has %d ordinates", model.ErrMalformedGeometry, i, j, len(vertex))
			}
			ring = append(ring, model.Position{Lon: vertex[0], Lat: vertex[1]})
		}
		mp.Polygons = append(mp.Polygons, ring)
	}

	return mp, nil
}
