// Package cache provides a persistent node store for ingestions where
// the node table must outlive a single document, e.g. incremental
// AddData calls against a large extract. Reads go through an in-memory
// LRU in front of a Badger database.
package cache

import (
	"encoding/binary"

	"github.com/dgraph-io/badger"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/omniscale/osmview/element"
	"github.com/omniscale/osmview/stats"
)

var NotFound = errors.New("not found")

const defaultLRUSize = 8192

type NodeStore struct {
	db  *badger.DB
	lru *lru.Cache[int64, element.Node]
}

func NewNodeStore(dir string) (*NodeStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, errors.Wrapf(err, "opening node store %s", dir)
	}
	l, err := lru.New[int64, element.Node](defaultLRUSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &NodeStore{db: db, lru: l}, nil
}

func (s *NodeStore) PutNode(node element.Node) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(idToKeyBuf(node.Id), marshalNode(node))
	})
	if err != nil {
		return err
	}
	s.lru.Add(node.Id, node)
	return nil
}

func (s *NodeStore) PutNodes(nodes []element.Node) error {
	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for _, node := range nodes {
		if err := batch.Set(idToKeyBuf(node.Id), marshalNode(node)); err != nil {
			return err
		}
	}
	if err := batch.Flush(); err != nil {
		return err
	}
	for _, node := range nodes {
		s.lru.Add(node.Id, node)
	}
	return nil
}

func (s *NodeStore) Get(id int64) (element.Node, error) {
	if node, ok := s.lru.Get(id); ok {
		stats.NodeCacheHits.Inc()
		return node, nil
	}
	stats.NodeCacheMisses.Inc()

	var node element.Node
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idToKeyBuf(id))
		if err == badger.ErrKeyNotFound {
			return NotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			node, err = unmarshalNode(id, val)
			return err
		})
	})
	if err != nil {
		return element.Node{}, err
	}
	s.lru.Add(id, node)
	return node, nil
}

// GetNode implements extract.NodeSource. Store errors beyond NotFound
// count as a miss as well, the ref is then dropped like an unresolvable
// reference.
func (s *NodeStore) GetNode(id int64) (element.Node, bool) {
	node, err := s.Get(id)
	if err != nil {
		return element.Node{}, false
	}
	return node, true
}

func (s *NodeStore) DeleteNode(id int64) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(idToKeyBuf(id))
	})
	if err != nil {
		return err
	}
	s.lru.Remove(id)
	return nil
}

func (s *NodeStore) Close() error {
	s.lru.Purge()
	return s.db.Close()
}

func idToKeyBuf(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
