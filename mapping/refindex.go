package mapping

import (
	"github.com/omniscale/osmview/element"
)

// RefIndex answers way and relation membership queries for nodes. It is
// built in one pass over all ways and relations, replacing a per-node
// scan over the whole document.
type RefIndex struct {
	inWay      map[int64]struct{}
	inRelation map[int64]struct{}
}

func NewRefIndex(ways []element.Way, relations []element.Relation) *RefIndex {
	idx := &RefIndex{
		inWay:      make(map[int64]struct{}),
		inRelation: make(map[int64]struct{}),
	}
	for _, way := range ways {
		for _, node := range way.Nodes {
			idx.inWay[node.Id] = struct{}{}
		}
	}
	for _, rel := range relations {
		for _, member := range rel.Members {
			// only resolved node slots mark a node as relation member;
			// an unresolved slot never matches any node
			if member.Resolved() {
				idx.inRelation[member.Node.Id] = struct{}{}
			}
		}
	}
	return idx
}

// IsInterestingNode reports whether a node renders as its own feature.
// Untagged nodes that only serve as way geometry are suppressed;
// relation membership or tags make a node standalone again.
func (idx *RefIndex) IsInterestingNode(node *element.Node) bool {
	if _, used := idx.inWay[node.Id]; !used {
		return true
	}
	if _, used := idx.inRelation[node.Id]; used {
		return true
	}
	return len(node.Tags) > 0
}
