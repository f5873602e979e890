// Package features composes extracted records into the ordered feature
// list that drives geometry materialization.
package features

import (
	"github.com/omniscale/osmview/element"
	"github.com/omniscale/osmview/extract"
	"github.com/omniscale/osmview/mapping"
	"github.com/omniscale/osmview/parser/osm"
	"github.com/omniscale/osmview/stats"
)

// Feature is one assembled entity, exactly one field is set.
type Feature struct {
	Changeset *element.Changeset
	Node      *element.Node
	Way       *element.Way
}

// Build extracts a document and assembles its features: changesets
// first, then ways, then standalone nodes. The slice order is the draw
// order, later features draw above earlier ones. Relations are consumed
// as filter input only and never appear in the output.
func Build(doc *osm.Document) ([]Feature, *extract.Diagnostics) {
	res := extract.Document(doc)
	return FromResult(res), &res.Diag
}

// BuildWithSource is Build with an external node source, see
// extract.DocumentWithSource.
func BuildWithSource(doc *osm.Document, src extract.NodeSource) ([]Feature, *extract.Diagnostics) {
	res := extract.DocumentWithSource(doc, src)
	return FromResult(res), &res.Diag
}

// FromResult assembles features from an already extracted result.
func FromResult(res *extract.Result) []Feature {
	countResult(res)

	features := make([]Feature, 0, len(res.Changesets)+len(res.Ways))
	for i := range res.Changesets {
		features = append(features, Feature{Changeset: &res.Changesets[i]})
	}
	for i := range res.Ways {
		features = append(features, Feature{Way: &res.Ways[i]})
	}

	idx := mapping.NewRefIndex(res.Ways, res.Relations)
	for _, id := range res.NodeOrder {
		node := res.Nodes[id]
		if idx.IsInterestingNode(&node) {
			features = append(features, Feature{Node: &node})
		}
	}
	return features
}

func countResult(res *extract.Result) {
	stats.ElementsTotal.WithLabelValues("changeset").Add(float64(len(res.Changesets)))
	stats.ElementsTotal.WithLabelValues("node").Add(float64(len(res.Nodes)))
	stats.ElementsTotal.WithLabelValues("way").Add(float64(len(res.Ways)))
	stats.ElementsTotal.WithLabelValues("relation").Add(float64(len(res.Relations)))
	stats.ElementsSkipped.WithLabelValues("changeset").Add(float64(res.Diag.SkippedChangesets))
	stats.ElementsSkipped.WithLabelValues("node").Add(float64(res.Diag.SkippedNodes))
	stats.ElementsSkipped.WithLabelValues("way").Add(float64(res.Diag.SkippedWays))
	stats.ElementsSkipped.WithLabelValues("relation").Add(float64(res.Diag.SkippedRelations))
}
