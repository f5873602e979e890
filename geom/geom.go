// Package geom turns assembled features into renderable vector
// geometries.
package geom

import (
	"github.com/omniscale/osmview/element"
	"github.com/omniscale/osmview/features"
	"github.com/omniscale/osmview/mapping"
	"github.com/omniscale/osmview/stats"
)

type Kind int

const (
	POINT Kind = iota
	LINESTRING
	POLYGON
	RECT
)

func (k Kind) String() string {
	switch k {
	case POINT:
		return "point"
	case LINESTRING:
		return "linestring"
	case POLYGON:
		return "polygon"
	case RECT:
		return "rect"
	}
	return "unknown"
}

// Style keys of the geometry classes, matching the keys of the
// caller-supplied style map.
const (
	StyleChangeset = "changeset"
	StyleNode      = "node"
	StyleArea      = "area"
	StyleWay       = "way"
)

type Point struct {
	Lat  float64
	Long float64
}

// Ref points back to the source record of a geometry for click and
// selection handling. It is read only, the layer never modifies the
// entity graph.
type Ref struct {
	Type string
	Id   int64
	Tags element.Tags
}

type Geometry struct {
	Kind     Kind
	Points   []Point        // POINT, LINESTRING, POLYGON
	Bounds   element.Bounds // RECT
	StyleKey string
	Source   Ref
}

// FromFeature materializes a single feature.
//
// Changesets become axis-aligned rects, standalone nodes points. Area
// ways become polygons with the closing duplicate coordinate dropped,
// all other ways polylines with every resolved coordinate kept.
func FromFeature(f features.Feature, m *mapping.Mapping) Geometry {
	switch {
	case f.Changeset != nil:
		return Geometry{
			Kind:     RECT,
			Bounds:   f.Changeset.Bounds,
			StyleKey: StyleChangeset,
			Source:   Ref{Type: "changeset", Id: f.Changeset.Id, Tags: f.Changeset.Tags},
		}
	case f.Node != nil:
		return Geometry{
			Kind:     POINT,
			Points:   []Point{{Lat: f.Node.Lat, Long: f.Node.Long}},
			StyleKey: StyleNode,
			Source:   Ref{Type: "node", Id: f.Node.Id, Tags: f.Node.Tags},
		}
	case f.Way != nil:
		nodes := f.Way.Nodes
		styleKey := StyleWay
		kind := LINESTRING
		if m.IsWayArea(f.Way) {
			nodes = nodes[:len(nodes)-1]
			styleKey = StyleArea
			kind = POLYGON
		}
		points := make([]Point, len(nodes))
		for i, node := range nodes {
			points[i] = Point{Lat: node.Lat, Long: node.Long}
		}
		return Geometry{
			Kind:     kind,
			Points:   points,
			StyleKey: styleKey,
			Source:   Ref{Type: "way", Id: f.Way.Id, Tags: f.Way.Tags},
		}
	}
	return Geometry{}
}

// FromFeatures materializes all features, preserving their order.
func FromFeatures(fs []features.Feature, m *mapping.Mapping) []Geometry {
	geoms := make([]Geometry, len(fs))
	for i, f := range fs {
		geoms[i] = FromFeature(f, m)
		stats.GeometriesTotal.WithLabelValues(geoms[i].StyleKey).Inc()
	}
	return geoms
}

// BoundingBox returns the bounds covering the geometry.
func (g *Geometry) BoundingBox() element.Bounds {
	if g.Kind == RECT {
		return g.Bounds
	}
	var b element.Bounds
	for i, p := range g.Points {
		if i == 0 {
			b = element.Bounds{MinLat: p.Lat, MaxLat: p.Lat, MinLong: p.Long, MaxLong: p.Long}
			continue
		}
		b = b.Union(element.Bounds{MinLat: p.Lat, MaxLat: p.Lat, MinLong: p.Long, MaxLong: p.Long})
	}
	return b
}
