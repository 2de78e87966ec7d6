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

import "errors"

var (
	// ErrInvalidNode indicates a node that fails domain validation.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidEdge indicates an edge that fails domain validation.
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrEmptyLabel indicates a node with an empty display label.
	ErrEmptyLabel = errors.New("empty label")

	// ErrEmptyEndpoint indicates an edge with an empty source or target.
	ErrEmptyEndpoint = errors.New("empty edge endpoint")

	// ErrSelfLoop indicates an edge whose source and target are the same node.
	ErrSelfLoop = errors.New("self loop")
)
