// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package graphio

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/graph"
)

// ImportCSV reads a two-column source,target edge list and builds a
// deduplicated undirected graph. Node ids are derived from the labels, so
// labels differing only in case collapse to one node.
//
// Malformed lines (wrong column count, empty fields, self loops) are
// skipped with a logged diagnostic rather than failing the import. An
// optional "source,target" header line is skipped.
func ImportCSV(r io.Reader) (*graph.Graph, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	g := graph.New()
	logger := slog.Default().With("component", "csv-import")

	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Unparseable line; skip it like any other malformed row.
			logger.Warn("skipping unreadable line", "line", line+1, "err", err)
			line++
			continue
		}
		line++

		if len(record) != 2 {
			logger.Warn("skipping malformed line", "line", line, "fields", len(record))
			continue
		}

		source := strings.TrimSpace(record[0])
		target := strings.TrimSpace(record[1])
		if source == "" || target == "" {
			logger.Warn("skipping line with empty field", "line", line)
			continue
		}

		if line == 1 && strings.EqualFold(source, "source") && strings.EqualFold(target, "target") {
			continue
		}

		sourceID := core.IDFromLabel(source)
		targetID := core.IDFromLabel(target)
		if sourceID == targetID {
			logger.Warn("skipping self loop", "line", line, "label", source)
			continue
		}

		ensureNode(g, sourceID, source)
		ensureNode(g, targetID, target)

		// AddEdge deduplicates by unordered pair.
		if _, err := g.AddEdge(&core.Edge{Source: sourceID, Target: targetID}); err != nil {
			logger.Warn("skipping edge", "line", line, "err", err)
		}
	}

	return g, nil
}

func ensureNode(g *graph.Graph, id, label string) {
	if _, ok := g.Node(id); ok {
		return
	}
	// Error ignored: id was just checked and the node is well-formed.
	_ = g.AddNode(&core.Node{Id: id, Label: label, Visible: true})
}
