package element

import (
	"fmt"
	"time"
)

type Tags map[string]string

func (t *Tags) String() string {
	return fmt.Sprintf("%v", (map[string]string)(*t))
}

type OSMElem struct {
	Id   int64
	Tags Tags
}

type Node struct {
	OSMElem
	Lat  float64
	Long float64
}

type Way struct {
	OSMElem
	// Refs is the node reference list in source order, duplicates allowed.
	Refs []int64
	// Nodes holds the resolved nodes. Unresolvable refs are dropped, so
	// Nodes can be shorter than Refs.
	Nodes []Node
}

// IsClosed returns whether the way forms a ring. First and last node are
// compared by id, not by record identity: a re-declared node can resolve
// to two distinct records for the same logical node.
func (w *Way) IsClosed() bool {
	return len(w.Nodes) > 2 && w.Nodes[0].Id == w.Nodes[len(w.Nodes)-1].Id
}

type MemberType int

const (
	NODE     MemberType = 0
	WAY                 = 1
	RELATION            = 2
	// UNKNOWN marks member slots whose declared type is not an OSM type.
	UNKNOWN MemberType = -1
)

var MemberTypeValues = map[string]MemberType{
	"node":     NODE,
	"way":      WAY,
	"relation": RELATION,
}

func (mt MemberType) String() string {
	switch mt {
	case NODE:
		return "node"
	case WAY:
		return "way"
	case RELATION:
		return "relation"
	}
	return "unknown"
}

// Member is a single slot of a relation. Node members are resolved
// against the document's node table, way and relation members stay
// unresolved. Node is nil for unresolved slots; the slot itself is
// always present so that slot count matches the source member count.
type Member struct {
	Id   int64
	Type MemberType
	Role string
	Node *Node
}

func (m *Member) Resolved() bool {
	return m.Node != nil
}

type Relation struct {
	OSMElem
	Members []Member
}

type Changeset struct {
	OSMElem
	Bounds     Bounds
	CreatedAt  time.Time
	ClosedAt   time.Time
	Open       bool
	User       string
	UserId     int
	NumChanges int
}

type Bounds struct {
	MinLat  float64
	MinLong float64
	MaxLat  float64
	MaxLong float64
}

func (b Bounds) Union(other Bounds) Bounds {
	if other.MinLat < b.MinLat {
		b.MinLat = other.MinLat
	}
	if other.MinLong < b.MinLong {
		b.MinLong = other.MinLong
	}
	if other.MaxLat > b.MaxLat {
		b.MaxLat = other.MaxLat
	}
	if other.MaxLong > b.MaxLong {
		b.MaxLong = other.MaxLong
	}
	return b
}

func (b Bounds) Intersects(other Bounds) bool {
	return b.MinLong <= other.MaxLong && b.MaxLong >= other.MinLong &&
		b.MinLat <= other.MaxLat && b.MaxLat >= other.MinLat
}
