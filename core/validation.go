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


package core

import "fmt"

// ValidateNode validates a Node according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Label must not be empty
//   - Depth must not be negative
//
// NOT validated (populated by processors):
//   - Vector (can be empty until an embedder runs)
func ValidateNode(node *Node) error {
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidNode)
	}

	if node.Id == "" {
		return fmt.Errorf("%w: id is empty", ErrInvalidNode)
	}

	if node.Label == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNode, ErrEmptyLabel)
	}

	if node.Depth < 0 {
		return fmt.Errorf("%w: negative depth %d", ErrInvalidNode, node.Depth)
	}

	return nil
}

// ValidateEdge validates an Edge according to domain rules.
//
// Validation rules:
//   - Source and Target must not be empty
//   - Source and Target must differ (no self loops)
func ValidateEdge(edge *Edge) error {
	if edge == nil {
		return fmt.Errorf("%w: edge is nil", ErrInvalidEdge)
	}

	if edge.Source == "" || edge.Target == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEdge, ErrEmptyEndpoint)
	}

	if edge.Source == edge.Target {
		return fmt.Errorf("%w: %w", ErrInvalidEdge, ErrSelfLoop)
	}

	return nil
}
