// Package extract resolves raw OSM documents into typed element records.
//
// Elements with a missing or unparseable id or coordinate are skipped and
// counted, the rest of the document is processed. Unresolvable way refs
// are dropped from the resolved node sequence; unresolvable or non-node
// relation members become unresolved slots, never errors.
package extract

import (
	"strconv"

	"github.com/omniscale/osmview/element"
	"github.com/omniscale/osmview/log"
	"github.com/omniscale/osmview/parser/osm"
)

// NodeSource resolves node references during way and relation extraction.
type NodeSource interface {
	GetNode(id int64) (element.Node, bool)
}

// NodeTable is the in-memory node table of a single document.
type NodeTable map[int64]element.Node

func (t NodeTable) GetNode(id int64) (element.Node, bool) {
	node, ok := t[id]
	return node, ok
}

// Diagnostics counts elements skipped for missing or malformed required
// attributes, and way refs dropped because no node was found.
type Diagnostics struct {
	SkippedChangesets int
	SkippedNodes      int
	SkippedWays       int
	SkippedRelations  int
	DroppedWayRefs    int
}

// Result is the resolved entity graph of one document. It is built once
// and not modified afterwards.
type Result struct {
	Changesets []element.Changeset
	Nodes      NodeTable
	// NodeOrder lists surviving node ids in document order. A re-declared
	// id keeps its first position while the record itself is replaced.
	NodeOrder []int64
	Ways      []element.Way
	Relations []element.Relation
	Diag      Diagnostics
}

// Document runs the full extraction over a parsed document.
func Document(doc *osm.Document) *Result {
	res := &Result{}
	res.Changesets = Changesets(doc, &res.Diag)
	res.Nodes, res.NodeOrder = Nodes(doc, &res.Diag)
	res.Ways = Ways(doc, res.Nodes, &res.Diag)
	res.Relations = Relations(doc, res.Nodes, &res.Diag)
	return res
}

// DocumentWithSource extracts a document but resolves node references
// against src instead of only the document's own node table, for
// incremental ingestion over multiple documents. src must already
// contain this document's nodes.
func DocumentWithSource(doc *osm.Document, src NodeSource) *Result {
	res := &Result{}
	res.Changesets = Changesets(doc, &res.Diag)
	res.Nodes, res.NodeOrder = Nodes(doc, &res.Diag)
	res.Ways = Ways(doc, src, &res.Diag)
	res.Relations = Relations(doc, src, &res.Diag)
	return res
}

func Changesets(doc *osm.Document, diag *Diagnostics) []element.Changeset {
	changesets := make([]element.Changeset, 0, len(doc.Changesets))
	for _, raw := range doc.Changesets {
		id, ok := parseId(raw.Id)
		if !ok {
			log.Warnf("skipping changeset with invalid id %q", raw.Id)
			diag.SkippedChangesets++
			continue
		}
		minLat, ok1 := parseCoord(raw.MinLat)
		minLon, ok2 := parseCoord(raw.MinLon)
		maxLat, ok3 := parseCoord(raw.MaxLat)
		maxLon, ok4 := parseCoord(raw.MaxLon)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			log.Warnf("skipping changeset %d with invalid bounds", id)
			diag.SkippedChangesets++
			continue
		}
		changesets = append(changesets, element.Changeset{
			OSMElem: element.OSMElem{Id: id, Tags: TagMap(raw.Tags)},
			Bounds: element.Bounds{
				MinLat:  minLat,
				MinLong: minLon,
				MaxLat:  maxLat,
				MaxLong: maxLon,
			},
			CreatedAt:  raw.CreatedAt.Time,
			ClosedAt:   raw.ClosedAt.Time,
			Open:       raw.Open,
			User:       raw.User,
			UserId:     raw.UserId,
			NumChanges: raw.NumChanges,
		})
	}
	return changesets
}

// Nodes builds the node table. A repeated id replaces the earlier record
// including its tags, matching tag overwrite semantics.
func Nodes(doc *osm.Document, diag *Diagnostics) (NodeTable, []int64) {
	nodes := make(NodeTable, len(doc.Nodes))
	order := make([]int64, 0, len(doc.Nodes))
	for _, raw := range doc.Nodes {
		id, ok := parseId(raw.Id)
		if !ok {
			log.Warnf("skipping node with invalid id %q", raw.Id)
			diag.SkippedNodes++
			continue
		}
		lat, ok1 := parseCoord(raw.Lat)
		lon, ok2 := parseCoord(raw.Lon)
		if !ok1 || !ok2 {
			log.Warnf("skipping node %d with invalid position", id)
			diag.SkippedNodes++
			continue
		}
		if _, seen := nodes[id]; !seen {
			order = append(order, id)
		}
		nodes[id] = element.Node{
			OSMElem: element.OSMElem{Id: id, Tags: TagMap(raw.Tags)},
			Lat:     lat,
			Long:    lon,
		}
	}
	return nodes, order
}

func Ways(doc *osm.Document, nodes NodeSource, diag *Diagnostics) []element.Way {
	ways := make([]element.Way, 0, len(doc.Ways))
	for _, raw := range doc.Ways {
		id, ok := parseId(raw.Id)
		if !ok {
			log.Warnf("skipping way with invalid id %q", raw.Id)
			diag.SkippedWays++
			continue
		}
		way := element.Way{
			OSMElem: element.OSMElem{Id: id, Tags: TagMap(raw.Tags)},
		}
		for _, nd := range raw.Refs {
			ref, ok := parseId(nd.Ref)
			if !ok {
				diag.DroppedWayRefs++
				continue
			}
			way.Refs = append(way.Refs, ref)
			node, found := nodes.GetNode(ref)
			if !found {
				diag.DroppedWayRefs++
				continue
			}
			way.Nodes = append(way.Nodes, node)
		}
		ways = append(ways, way)
	}
	return ways
}

func Relations(doc *osm.Document, nodes NodeSource, diag *Diagnostics) []element.Relation {
	rels := make([]element.Relation, 0, len(doc.Relations))
	for _, raw := range doc.Relations {
		id, ok := parseId(raw.Id)
		if !ok {
			log.Warnf("skipping relation with invalid id %q", raw.Id)
			diag.SkippedRelations++
			continue
		}
		rel := element.Relation{
			OSMElem: element.OSMElem{Id: id, Tags: TagMap(raw.Tags)},
			Members: make([]element.Member, 0, len(raw.Members)),
		}
		for _, m := range raw.Members {
			member := element.Member{Role: m.Role}
			member.Id, _ = parseId(m.Ref)
			memberType, known := element.MemberTypeValues[m.Type]
			if !known {
				memberType = element.UNKNOWN
			}
			member.Type = memberType
			if memberType == element.NODE {
				if node, found := nodes.GetNode(member.Id); found {
					member.Node = &node
				}
			}
			// one slot per source member, resolved or not
			rel.Members = append(rel.Members, member)
		}
		rels = append(rels, rel)
	}
	return rels
}

// TagMap builds a tag mapping in document order, last key wins.
func TagMap(tags []osm.Tag) element.Tags {
	if len(tags) == 0 {
		return nil
	}
	result := make(element.Tags, len(tags))
	for _, tag := range tags {
		result[tag.Key] = tag.Value
	}
	return result
}

func parseId(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseCoord(s string) (float64, bool) {
	coord, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return coord, true
}
