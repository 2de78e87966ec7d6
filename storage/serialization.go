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


package storage

import (
	"github.com/poiesic/mindgraph/core"
)

// MarshalNode serializes a Node to bytes.
func MarshalNode(node *core.Node) []byte {
	buf := make([]byte, core.NodeMUS.Size(*node))
	core.NodeMUS.Marshal(*node, buf)
	return buf
}

// UnmarshalNode deserializes a Node from bytes.
func UnmarshalNode(data []byte) (*core.Node, error) {
	node, _, err := core.NodeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// MarshalEdge serializes an Edge to bytes.
func MarshalEdge(edge *core.Edge) []byte {
	buf := make([]byte, core.EdgeMUS.Size(*edge))
	core.EdgeMUS.Marshal(*edge, buf)
	return buf
}

// UnmarshalEdge deserializes an Edge from bytes.
func UnmarshalEdge(data []byte) (*core.Edge, error) {
	edge, _, err := core.EdgeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &edge, nil
}
