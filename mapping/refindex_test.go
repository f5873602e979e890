package mapping

import (
	"testing"

	"github.com/omniscale/osmview/element"
)

func makeNode(id int64, tags element.Tags) element.Node {
	return element.Node{OSMElem: element.OSMElem{Id: id, Tags: tags}}
}

func TestInterestingNodeUnreferenced(t *testing.T) {
	idx := NewRefIndex(nil, nil)
	node := makeNode(1, nil)
	if !idx.IsInterestingNode(&node) {
		t.Fatal("unreferenced node suppressed")
	}
}

func TestInterestingNodeWayScaffolding(t *testing.T) {
	ways := []element.Way{*makeWay(nil, 1, 2)}
	idx := NewRefIndex(ways, nil)
	node := makeNode(1, nil)
	// untagged way geometry is suppressed
	if idx.IsInterestingNode(&node) {
		t.Fatal("untagged way vertex rendered")
	}
}

func TestInterestingNodeRelationMember(t *testing.T) {
	ways := []element.Way{*makeWay(nil, 1, 2)}
	node1 := makeNode(1, nil)
	rels := []element.Relation{{
		Members: []element.Member{
			{Id: 1, Type: element.NODE, Node: &node1},
		},
	}}
	idx := NewRefIndex(ways, rels)
	// relation membership makes a way vertex standalone again
	if !idx.IsInterestingNode(&node1) {
		t.Fatal("relation member suppressed")
	}
}

func TestInterestingNodeTagged(t *testing.T) {
	tagged := makeNode(1, element.Tags{"amenity": "cafe"})
	ways := []element.Way{{
		Refs:  []int64{1, 2},
		Nodes: []element.Node{tagged, makeNode(2, nil)},
	}}
	idx := NewRefIndex(ways, nil)
	if !idx.IsInterestingNode(&tagged) {
		t.Fatal("tagged way vertex suppressed")
	}
}

func TestInterestingNodeUnresolvedSlotDoesNotCount(t *testing.T) {
	ways := []element.Way{*makeWay(nil, 1, 2)}
	rels := []element.Relation{{
		Members: []element.Member{
			// unresolved slots, one of them sharing the node's id
			{Id: 1, Type: element.WAY},
			{Id: 1, Type: element.UNKNOWN},
		},
	}}
	idx := NewRefIndex(ways, rels)
	node := makeNode(1, nil)
	// an unresolved slot never matches a node, it cannot make the
	// vertex "used in a relation"
	if idx.IsInterestingNode(&node) {
		t.Fatal("unresolved slot rescued a way vertex")
	}
}
