package element

import (
	"testing"
)

func TestWayIsClosed(t *testing.T) {
	way := Way{}
	way.Nodes = []Node{
		{OSMElem: OSMElem{Id: 1}},
		{OSMElem: OSMElem{Id: 1}},
	}
	if way.IsClosed() {
		t.Fatal("way with two resolved nodes reported closed")
	}

	way.Nodes = []Node{
		{OSMElem: OSMElem{Id: 1}},
		{OSMElem: OSMElem{Id: 2}},
		{OSMElem: OSMElem{Id: 3}},
		{OSMElem: OSMElem{Id: 1}},
	}
	if !way.IsClosed() {
		t.Fatal("ring of four refs not closed")
	}

	way.Nodes[3].Id = 4
	if way.IsClosed() {
		t.Fatal("open way reported closed")
	}
}

func TestWayIsClosedComparesIds(t *testing.T) {
	// distinct records for the same logical node, as produced by
	// lazy resolution after a re-declaration
	first := Node{OSMElem: OSMElem{Id: 7, Tags: Tags{"name": "a"}}}
	last := Node{OSMElem: OSMElem{Id: 7, Tags: Tags{"name": "b"}}}
	way := Way{}
	way.Nodes = []Node{
		first,
		{OSMElem: OSMElem{Id: 8}},
		{OSMElem: OSMElem{Id: 9}},
		last,
	}
	if !way.IsClosed() {
		t.Fatal("closure must compare node ids, not records")
	}
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{MinLat: 1, MinLong: 2, MaxLat: 3, MaxLong: 4}
	b := Bounds{MinLat: 0, MinLong: 3, MaxLat: 2, MaxLong: 6}
	u := a.Union(b)
	if u != (Bounds{MinLat: 0, MinLong: 2, MaxLat: 3, MaxLong: 6}) {
		t.Fatal(u)
	}
}

func TestBoundsIntersects(t *testing.T) {
	a := Bounds{MinLat: 0, MinLong: 0, MaxLat: 10, MaxLong: 10}
	if !a.Intersects(Bounds{MinLat: 5, MinLong: 5, MaxLat: 15, MaxLong: 15}) {
		t.Fatal("overlapping bounds do not intersect")
	}
	if a.Intersects(Bounds{MinLat: 11, MinLong: 11, MaxLat: 12, MaxLong: 12}) {
		t.Fatal("disjoint bounds intersect")
	}
	// touching edges count as intersecting
	if !a.Intersects(Bounds{MinLat: 10, MinLong: 10, MaxLat: 12, MaxLong: 12}) {
		t.Fatal("touching bounds do not intersect")
	}
}
