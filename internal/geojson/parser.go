// Package geojson parses uploaded GeoJSON documents into the multi-polygon
// model and converts between the model and GeoJSON geometry objects.
package geojson

import (
	"encoding/json"
	"fmt"

	"github.com/eospatial/geoforestry/internal/model"
)

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry geometry `json:"geometry"`
}

type geometry struct {
	Type string `json:"type"`
	// MultiPolygon nesting: polygon -> ring -> vertex -> ordinate.
	Coordinates [][][][]float64 `json:"coordinates"`
}

// Parse reads a GeoJSON FeatureCollection and returns the multi-polygon built
// from the first feature's geometry. Only the outer ring (index 0) of each
// polygon is consumed; holes and additional features are ignored. Open rings
// are repaired by appending a copy of the first vertex. A document with an
// empty coordinates array yields an empty MultiPolygon.
//
// Parse fails with a wrapped model.ErrMalformedGeometry when the input is not
// valid JSON, lacks the features[0].geometry.coordinates path, or contains a
// ring with fewer than 3 vertices ignoring the closing duplicate.
func Parse(raw []byte) (model.MultiPolygon, error) {
	var fc featureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return model.MultiPolygon{}, fmt.Errorf("%w: invalid JSON: %v", model.ErrMalformedGeometry, err)
	}

	if len(fc.Features) == 0 {
		return model.MultiPolygon{}, fmt.Errorf("%w: document has no features", model.ErrMalformedGeometry)
	}

	coords := fc.Features[0].Geometry.Coordinates
	if coords == nil {
		return model.MultiPolygon{}, fmt.Errorf("%w: first feature has no geometry coordinates", model.ErrMalformedGeometry)
	}

	mp := model.MultiPolygon{}
	for i, polygon := range coords {
		if len(polygon) == 0 {
			return model.MultiPolygon{}, fmt.Errorf("%w: polygon %d has no outer ring", model.ErrMalformedGeometry, i)
		}

		ring, err := buildRing(polygon[0])
		if err != nil {
			return model.MultiPolygon{}, fmt.Errorf("polygon %d: %w", i, err)
		}
		mp.Polygons = append(mp.Polygons, ring)
	}

	return mp, nil
}

func buildRing(vertices [][]float64) (model.Ring, error) {
	ring := make(model.Ring, 0, len(vertices)+1)
	for j, vertex := range vertices {
		if len(vertex) < 2 {
			return nil, fmt.Errorf("%w: vertex %d has %d ordinates", model.ErrMalformedGeometry, j, len(vertex))
		}
		// GeoJSON axis order is [longitude, latitude]; extra ordinates such as
		// altitude are dropped.
		ring = append(ring, model.Position{Lon: vertex[0], Lat: vertex[1]})
	}

	effective := len(ring)
	if ring.Closed() {
		effective--
	}
	if effective < 3 {
		return nil, fmt.Errorf("%w: ring has %d vertices before closure, need at least 3", model.ErrMalformedGeometry, effective)
	}

	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	return ring, nil
}
