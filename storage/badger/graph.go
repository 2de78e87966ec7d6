package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/storage"
)

// GraphRepository implements storage.GraphRepository for BadgerDB.
type GraphRepository struct {
	backend *Backend
}

var _ storage.GraphRepository = (*GraphRepository)(nil)

// NewGraphRepository creates a new GraphRepository.
func NewGraphRepository(backend *Backend) (storage.GraphRepository, error) {
	return &GraphRepository{
		backend: backend,
	}, nil
}

// Close releases resources. GraphRepository has no resources of its own.
func (r *GraphRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *GraphRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.NodeMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *GraphRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutNodes upserts one or more nodes.
func (r *GraphRepository) PutNodes(ctx context.Context, nodes ...*core.Node) ([]*core.Node, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, node := range nodes {
			if err := core.ValidateNode(node); err != nil {
				return err
			}

			key := makeNodeKey(node.Id)

			// Read old node to preserve CreatedAt and clean up a stale
			// label index entry.
			old, err := readNode(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				node.CreatedAt = old.CreatedAt
				if old.Label != node.Label {
					if err := tx.Delete(makeLabelKey(old.Label)); err != nil {
						return err
					}
				}
			} else if node.CreatedAt.IsZero() {
				node.CreatedAt = now
			}
			node.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalNode(node)); err != nil {
				return err
			}
			if err := tx.Set(makeLabelKey(node.Label), []byte(node.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return nodes, err
}

// GetNode retrieves a single node by ID.
func (r *GraphRepository) GetNode(ctx context.Context, id string) (*core.Node, error) {
	var result *core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readNode(tx, makeNodeKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNodeByLabel retrieves a node by its label, case-insensitively.
func (r *GraphRepository) GetNodeByLabel(ctx context.Context, label string) (*core.Node, error) {
	var result *core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLabelKey(label))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var id string
		err = item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
		if err != nil {
			return err
		}

		result, err = readNode(tx, makeNodeKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllNodes retrieves all nodes from storage.
func (r *GraphRepository) GetAllNodes(ctx context.Context) ([]*core.Node, error) {
	var results []*core.Node
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(nodeRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var node *core.Node
			err := iter.Item().Value(func(val []byte) error {
				var err error
				node, err = storage.UnmarshalNode(val)
				return err
			})
			if err != nil {
				return err
			}
			if node != nil {
				results = append(results, node)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteNodes removes nodes by their IDs, along with referencing edges.
func (r *GraphRepository) DeleteNodes(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		deleted := make(map[string]bool, len(ids))
		for _, id := range ids {
			key := makeNodeKey(id)

			node, err := readNode(tx, key)
			if err != nil {
				return err
			}
			if node == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeLabelKey(node.Label)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			deleted[id] = true
		}

		// Cascade: remove edges touching any deleted node.
		edges, err := readAllEdges(tx)
		if err != nil {
			return err
		}
		for _, edge := range edges {
			if deleted[edge.Source] || deleted[edge.Target] {
				if err := tx.Delete(makeEdgeKey(edge.Source, edge.Target)); err != nil {
					return err
				}
			}
		}

		return tx.Commit()
	}, true)
}

// PutEdges upserts one or more edges, keyed by unordered endpoint pair.
func (r *GraphRepository) PutEdges(ctx context.Context, edges ...*core.Edge) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, edge := range edges {
			if err := core.ValidateEdge(edge); err != nil {
				return err
			}

			for _, id := range []string{edge.Source, edge.Target} {
				node, err := readNode(tx, makeNodeKey(id))
				if err != nil {
					return err
				}
				if node == nil {
					return storage.ErrNotFound
				}
			}

			key := makeEdgeKey(edge.Source, edge.Target)
			if err := tx.Set(key, storage.MarshalEdge(edge)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// DeleteEdge removes the edge between two nodes, in either endpoint order.
func (r *GraphRepository) DeleteEdge(ctx context.Context, source, target string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEdgeKey(source, target)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetAllEdges retrieves all edges from storage.
func (r *GraphRepository) GetAllEdges(ctx context.Context) ([]*core.Edge, error) {
	var results []*core.Edge
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = readAllEdges(tx)
		return err
	}, false)
	return results, err
}

// Clear removes all nodes and edges.
func (r *GraphRepository) Clear(ctx context.Context) error {
	return r.backend.DropAll()
}

// Helper methods

// readNode reads a node from the transaction.
// Returns (nil, nil) if the key doesn't exist.
func readNode(tx *badger.Txn, key []byte) (*core.Node, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var node *core.Node
	err = item.Value(func(val []byte) error {
		var err error
		node, err = storage.UnmarshalNode(val)
		return err
	})
	return node, err
}

// readAllEdges scans all edge records in the transaction.
func readAllEdges(tx *badger.Txn) ([]*core.Edge, error) {
	var results []*core.Edge

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(edgeRecordPrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var edge *core.Edge
		err := iter.Item().Value(func(val []byte) error {
			var err error
			edge, err = storage.UnmarshalEdge(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		if edge != nil {
			results = append(results, edge)
		}
	}

	return results, nil
}
