// Package geojson encodes materialized geometries as GeoJSON for
// external rendering layers.
package geojson

import (
	"encoding/json"
	"io"

	"github.com/omniscale/osmview/geom"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// FromGeometries builds a FeatureCollection. Coordinates are emitted in
// GeoJSON order (longitude first); polygon rings are re-closed since the
// materialized polygon drops the closing duplicate.
func FromGeometries(geoms []*geom.Geometry) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(geoms)),
	}
	for _, g := range geoms {
		fc.Features = append(fc.Features, fromGeometry(g))
	}
	return fc
}

func fromGeometry(g *geom.Geometry) Feature {
	f := Feature{
		Type: "Feature",
		Properties: map[string]interface{}{
			"type":  g.Source.Type,
			"id":    g.Source.Id,
			"style": g.StyleKey,
		},
	}
	if len(g.Source.Tags) > 0 {
		f.Properties["tags"] = g.Source.Tags
	}

	switch g.Kind {
	case geom.POINT:
		f.Geometry = Geometry{
			Type:        "Point",
			Coordinates: position(g.Points[0]),
		}
	case geom.LINESTRING:
		f.Geometry = Geometry{
			Type:        "LineString",
			Coordinates: positions(g.Points),
		}
	case geom.POLYGON:
		ring := positions(g.Points)
		if len(ring) > 0 {
			ring = append(ring, ring[0])
		}
		f.Geometry = Geometry{
			Type:        "Polygon",
			Coordinates: [][][]float64{ring},
		}
	case geom.RECT:
		b := g.Bounds
		ring := [][]float64{
			{b.MinLong, b.MinLat},
			{b.MaxLong, b.MinLat},
			{b.MaxLong, b.MaxLat},
			{b.MinLong, b.MaxLat},
			{b.MinLong, b.MinLat},
		}
		f.Geometry = Geometry{
			Type:        "Polygon",
			Coordinates: [][][]float64{ring},
		}
	}
	return f
}

func position(p geom.Point) []float64 {
	return []float64{p.Long, p.Lat}
}

func positions(points []geom.Point) [][]float64 {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = position(p)
	}
	return coords
}

// Encode writes geometries as a GeoJSON FeatureCollection.
func Encode(w io.Writer, geoms []*geom.Geometry) error {
	enc := json.NewEncoder(w)
	return enc.Encode(FromGeometries(geoms))
}
