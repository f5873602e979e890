// Package layer implements the caller-owned geometry container. A Layer
// accepts raw documents or pre-assembled features, keeps the resulting
// geometries in draw order and indexes them in an R-tree for viewport
// and click queries.
package layer

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/omniscale/osmview/element"
	"github.com/omniscale/osmview/extract"
	"github.com/omniscale/osmview/features"
	"github.com/omniscale/osmview/geom"
	"github.com/omniscale/osmview/mapping"
	"github.com/omniscale/osmview/parser/osm"
	"github.com/omniscale/osmview/proj"
)

// degenerate rects (points, empty bounds) still need a positive extent
// for the R-tree
const minRectExtent = 1e-9

type Options struct {
	// Mapping provides the area-tag set and styles. Nil selects the
	// default mapping.
	Mapping *mapping.Mapping
	// Mercator projects all geometry coordinates to spherical mercator.
	Mercator bool
}

type Layer struct {
	mapping  *mapping.Mapping
	mercator bool
	geoms    []*geom.Geometry
	rtree    *rtreego.Rtree
}

type entry struct {
	g     *geom.Geometry
	order int
	rect  rtreego.Rect
}

func (e entry) Bounds() rtreego.Rect {
	return e.rect
}

func New(opts Options) *Layer {
	m := opts.Mapping
	if m == nil {
		m = mapping.Default()
	}
	return &Layer{
		mapping:  m,
		mercator: opts.Mercator,
		rtree:    rtreego.NewTree(2, 25, 50),
	}
}

// AddData runs the full pipeline over a parsed document and appends the
// resulting geometries.
func (l *Layer) AddData(doc *osm.Document) *extract.Diagnostics {
	fs, diag := features.Build(doc)
	l.AddFeatures(fs)
	return diag
}

// AddFeatures appends geometries for already assembled features,
// bypassing extraction. Feature order is preserved as draw order.
func (l *Layer) AddFeatures(fs []features.Feature) {
	for _, g := range geom.FromFeatures(fs, l.mapping) {
		if l.mercator {
			proj.GeometryToMerc(&g)
		}
		l.insert(g)
	}
}

func (l *Layer) insert(g geom.Geometry) {
	stored := new(geom.Geometry)
	*stored = g
	l.rtree.Insert(entry{g: stored, order: len(l.geoms), rect: boundsRect(stored.BoundingBox())})
	l.geoms = append(l.geoms, stored)
}

// Geometries returns all geometries in draw order. Later entries draw
// above earlier ones.
func (l *Layer) Geometries() []*geom.Geometry {
	return l.geoms
}

func (l *Layer) Len() int {
	return len(l.geoms)
}

// Style returns the opaque style hint for a geometry class.
func (l *Layer) Style(key string) mapping.Style {
	return l.mapping.Style(key)
}

// Query returns the geometries intersecting bounds, in draw order.
func (l *Layer) Query(b element.Bounds) []*geom.Geometry {
	hits := l.rtree.SearchIntersect(boundsRect(b))
	entries := make([]entry, 0, len(hits))
	for _, hit := range hits {
		entries = append(entries, hit.(entry))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})
	result := make([]*geom.Geometry, len(entries))
	for i, e := range entries {
		result[i] = e.g
	}
	return result
}

// Clear drops all geometries and the spatial index. The entity graph the
// geometries were derived from is untouched and stays usable.
func (l *Layer) Clear() {
	l.geoms = nil
	l.rtree = rtreego.NewTree(2, 25, 50)
}

func boundsRect(b element.Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinLong, b.MinLat}
	lengths := []float64{
		b.MaxLong - b.MinLong,
		b.MaxLat - b.MinLat,
	}
	for i := range lengths {
		if lengths[i] < minRectExtent {
			lengths[i] = minRectExtent
		}
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}
