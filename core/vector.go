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

import (
	"log/slog"
	"math"
)

// Cosine returns the cosine similarity of two vectors, in [-1, 1].
//
// Degenerate inputs never raise: a zero-magnitude vector yields 0, and
// mismatched lengths yield 0 with a logged diagnostic. Malformed vectors
// therefore degrade to "not similar" rather than propagating NaN.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		slog.Warn("cosine similarity on mismatched vector lengths",
			"lenA", len(a),
			"lenB", len(b))
		return 0
	}
	if len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// Normalize scales a vector to unit length in place and returns it.
// Zero-magnitude vectors are returned unchanged.
func Normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}
