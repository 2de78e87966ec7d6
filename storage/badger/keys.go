package badger

import (
	"fmt"
	"strings"

	"github.com/poiesic/mindgraph/core"
)

// Key prefixes for different data types
const (
	nodeRecordPrefix = "gnode"
	nodeLabelPrefix  = "gnodelbl"
	edgeRecordPrefix = "gedge"
)

// makeNodeKey generates a key for a node by ID.
func makeNodeKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", nodeRecordPrefix, id))
}

// makeLabelKey generates a key for the label index.
// Labels are lowercased so lookups are case-insensitive.
func makeLabelKey(label string) []byte {
	return []byte(fmt.Sprintf("%s:%s", nodeLabelPrefix, strings.ToLower(strings.TrimSpace(label))))
}

// makeEdgeKey generates a key for an edge by its unordered pair key.
func makeEdgeKey(source, target string) []byte {
	return []byte(fmt.Sprintf("%s:%s", edgeRecordPrefix, core.PairKey(source, target)))
}
