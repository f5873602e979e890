package extract

import (
	"strings"
	"testing"

	"github.com/omniscale/osmview/element"
	"github.com/omniscale/osmview/parser/osm"
)

func parseDoc(t *testing.T, xml string) *osm.Document {
	t.Helper()
	doc, err := osm.Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestTagMapLastWins(t *testing.T) {
	tags := TagMap([]osm.Tag{
		{Key: "name", Value: "first"},
		{Key: "highway", Value: "residential"},
		{Key: "name", Value: "second"},
	})
	if len(tags) != 2 {
		t.Fatal(tags)
	}
	if tags["name"] != "second" {
		t.Fatal(tags)
	}
}

func TestTagMapEmpty(t *testing.T) {
	if tags := TagMap(nil); tags != nil {
		t.Fatal(tags)
	}
}

func TestNodesLastDeclarationWins(t *testing.T) {
	doc := parseDoc(t, `<osm>
		<node id="1" lat="1.0" lon="1.0"><tag k="amenity" v="cafe"/></node>
		<node id="2" lat="2.0" lon="2.0"/>
		<node id="1" lat="9.0" lon="9.0"/>
	</osm>`)
	diag := Diagnostics{}
	nodes, order := Nodes(doc, &diag)
	if len(nodes) != 2 {
		t.Fatal(nodes)
	}
	node := nodes[1]
	if node.Lat != 9.0 || node.Long != 9.0 {
		t.Fatal(node)
	}
	// the re-declaration replaces the tags as well
	if len(node.Tags) != 0 {
		t.Fatal(node.Tags)
	}
	// first position is kept
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatal(order)
	}
	if diag.SkippedNodes != 0 {
		t.Fatal(diag)
	}
}

func TestNodesSkipMalformed(t *testing.T) {
	doc := parseDoc(t, `<osm>
		<node id="1" lon="1.0"/>
		<node lat="1.0" lon="1.0"/>
		<node id="3" lat="not-a-number" lon="1.0"/>
		<node id="4" lat="4.0" lon="4.0"/>
	</osm>`)
	diag := Diagnostics{}
	nodes, order := Nodes(doc, &diag)
	if len(nodes) != 1 || len(order) != 1 || order[0] != 4 {
		t.Fatalf("%v %v", nodes, order)
	}
	if diag.SkippedNodes != 3 {
		t.Fatal(diag)
	}
}

func TestWaysDropUnresolvableRefs(t *testing.T) {
	doc := parseDoc(t, `<osm>
		<node id="1" lat="1.0" lon="1.0"/>
		<node id="3" lat="3.0" lon="3.0"/>
		<way id="10">
			<nd ref="1"/>
			<nd ref="2"/>
			<nd ref="3"/>
		</way>
	</osm>`)
	diag := Diagnostics{}
	nodes, _ := Nodes(doc, &diag)
	ways := Ways(doc, nodes, &diag)
	if len(ways) != 1 {
		t.Fatal(ways)
	}
	way := ways[0]
	// source refs keep their order and length
	if len(way.Refs) != 3 || way.Refs[0] != 1 || way.Refs[1] != 2 || way.Refs[2] != 3 {
		t.Fatal(way.Refs)
	}
	// the unresolvable ref is absent, not nil-padded
	if len(way.Nodes) != 2 || way.Nodes[0].Id != 1 || way.Nodes[1].Id != 3 {
		t.Fatal(way.Nodes)
	}
	if diag.DroppedWayRefs != 1 {
		t.Fatal(diag)
	}
}

func TestRelationsSlotPerMember(t *testing.T) {
	doc := parseDoc(t, `<osm>
		<node id="1" lat="1.0" lon="1.0"/>
		<relation id="20">
			<member type="node" ref="1" role="stop"/>
			<member type="node" ref="99" role=""/>
			<member type="way" ref="10" role="outer"/>
			<member type="relation" ref="30" role=""/>
			<member type="bogus" ref="40" role=""/>
		</relation>
	</osm>`)
	diag := Diagnostics{}
	nodes, _ := Nodes(doc, &diag)
	rels := Relations(doc, nodes, &diag)
	if len(rels) != 1 {
		t.Fatal(rels)
	}
	members := rels[0].Members
	if len(members) != 5 {
		t.Fatal(members)
	}
	if !members[0].Resolved() || members[0].Node.Id != 1 || members[0].Role != "stop" {
		t.Fatal(members[0])
	}
	// node member not in the table: slot present, unresolved
	if members[1].Resolved() {
		t.Fatal(members[1])
	}
	if members[2].Resolved() || members[2].Type != element.WAY {
		t.Fatal(members[2])
	}
	if members[3].Resolved() || members[3].Type != element.RELATION {
		t.Fatal(members[3])
	}
	if members[4].Resolved() || members[4].Type != element.UNKNOWN {
		t.Fatal(members[4])
	}
}

func TestChangesets(t *testing.T) {
	doc := parseDoc(t, `<osm>
		<changeset id="42" min_lat="53.0" min_lon="8.0" max_lat="53.1" max_lon="8.1">
			<tag k="comment" v="test"/>
		</changeset>
		<changeset id="43"/>
	</osm>`)
	diag := Diagnostics{}
	changesets := Changesets(doc, &diag)
	if len(changesets) != 1 {
		t.Fatal(changesets)
	}
	cs := changesets[0]
	if cs.Id != 42 || cs.Tags["comment"] != "test" {
		t.Fatal(cs)
	}
	want := element.Bounds{MinLat: 53.0, MinLong: 8.0, MaxLat: 53.1, MaxLong: 8.1}
	if cs.Bounds != want {
		t.Fatal(cs.Bounds)
	}
	// the boundless changeset is skipped and counted
	if diag.SkippedChangesets != 1 {
		t.Fatal(diag)
	}
}

func TestDocument(t *testing.T) {
	doc := parseDoc(t, `<osm>
		<node id="1" lat="1.0" lon="1.0"/>
		<node id="2" lat="2.0" lon="2.0"/>
		<way id="10"><nd ref="1"/><nd ref="2"/></way>
		<relation id="20"><member type="node" ref="2" role=""/></relation>
	</osm>`)
	res := Document(doc)
	if len(res.Nodes) != 2 || len(res.Ways) != 1 || len(res.Relations) != 1 {
		t.Fatalf("%v %v %v", res.Nodes, res.Ways, res.Relations)
	}
	if len(res.Ways[0].Nodes) != 2 {
		t.Fatal(res.Ways[0])
	}
	if !res.Relations[0].Members[0].Resolved() {
		t.Fatal(res.Relations[0])
	}
}

type singleNodeSource element.Node

func (s singleNodeSource) GetNode(id int64) (element.Node, bool) {
	if element.Node(s).Id == id {
		return element.Node(s), true
	}
	return element.Node{}, false
}

func TestDocumentWithSource(t *testing.T) {
	// node 5 comes from an earlier ingestion, only the source knows it
	doc := parseDoc(t, `<osm>
		<way id="10"><nd ref="5"/><nd ref="6"/></way>
	</osm>`)
	src := singleNodeSource(element.Node{OSMElem: element.OSMElem{Id: 5}, Lat: 5, Long: 5})
	res := DocumentWithSource(doc, src)
	way := res.Ways[0]
	if len(way.Nodes) != 1 || way.Nodes[0].Id != 5 {
		t.Fatal(way.Nodes)
	}
	if res.Diag.DroppedWayRefs != 1 {
		t.Fatal(res.Diag)
	}
}
