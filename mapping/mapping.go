// Package mapping classifies extracted elements for rendering: whether a
// way draws as a filled area or a line, and whether a node draws as its
// own feature or is scaffolding of a way or relation.
package mapping

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/omniscale/osmview/element"
)

// DefaultAreaTags are the tag keys that mark a closed way as a filled
// area. Closed ways without one of these keys stay lines (roundabouts).
var DefaultAreaTags = []string{
	"area",
	"building",
	"leisure",
	"tourism",
	"ruins",
	"historic",
	"landuse",
	"military",
	"natural",
	"sport",
}

// Style is an opaque presentation hint, passed through unmodified to the
// rendering layer.
type Style map[string]interface{}

type Mapping struct {
	areaTags map[string]struct{}
	styles   map[string]Style
}

type mappingDoc struct {
	AreaTags []string         `yaml:"area_tags"`
	Styles   map[string]Style `yaml:"styles"`
}

// New builds a Mapping from an area-tag key set and a style map keyed by
// geometry class ("changeset", "node", "area", "way"). Nil arguments
// select the defaults.
func New(areaTags []string, styles map[string]Style) *Mapping {
	if areaTags == nil {
		areaTags = DefaultAreaTags
	}
	m := &Mapping{
		areaTags: make(map[string]struct{}, len(areaTags)),
		styles:   styles,
	}
	for _, key := range areaTags {
		m.areaTags[key] = struct{}{}
	}
	return m
}

func Default() *Mapping {
	return New(nil, nil)
}

func FromFile(filename string) (*Mapping, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	m, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing mapping file %s", filename)
	}
	return m, nil
}

func Parse(b []byte) (*Mapping, error) {
	doc := mappingDoc{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return New(doc.AreaTags, doc.Styles), nil
}

// Style returns the configured style for a geometry class, nil if the
// mapping carries no style for it.
func (m *Mapping) Style(key string) Style {
	return m.styles[key]
}

// IsWayArea reports whether a way renders as a filled area. Only closed
// ways with more than two resolved nodes and at least one area-tag key
// qualify.
func (m *Mapping) IsWayArea(way *element.Way) bool {
	if !way.IsClosed() {
		return false
	}
	for key := range way.Tags {
		if _, ok := m.areaTags[key]; ok {
			return true
		}
	}
	return false
}
