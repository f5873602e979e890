package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ElementsTotal counts extracted elements by kind
	// (changeset, node, way, relation).
	ElementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osmview_elements_total",
			Help: "Total number of extracted elements",
		},
		[]string{"kind"},
	)

	// ElementsSkipped counts elements skipped for missing or malformed
	// required attributes.
	ElementsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osmview_elements_skipped_total",
			Help: "Total number of elements skipped as malformed",
		},
		[]string{"kind"},
	)

	// GeometriesTotal counts materialized geometries by style key.
	GeometriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "osmview_geometries_total",
			Help: "Total number of materialized geometries",
		},
		[]string{"style"},
	)

	// NodeCacheHits and NodeCacheMisses track the node store LRU layer.
	NodeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "osmview_node_cache_hits_total",
			Help: "Node store reads served from the LRU layer",
		},
	)

	NodeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "osmview_node_cache_misses_total",
			Help: "Node store reads that went to disk",
		},
	)
)
