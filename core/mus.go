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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the storage layer. The graph types are small and
// stable, so they are written against the mus-go primitives directly
// instead of being generated.

var (
	// NodeMUS serializes Node values.
	NodeMUS = nodeMUS{}

	// EdgeMUS serializes Edge values.
	EdgeMUS = edgeMUS{}

	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
)

type nodeMUS struct{}

func (nodeMUS) Marshal(v Node, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Label, bs[n:])
	n += varint.Int.Marshal(v.Depth, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += ord.Bool.Marshal(v.Visible, bs[n:])
	n += ord.Bool.Marshal(v.Expanded, bs[n:])
	n += ord.Bool.Marshal(v.LLMGenerated, bs[n:])
	n += varint.Int64.Marshal(timeToMicro(v.CreatedAt), bs[n:])
	n += varint.Int64.Marshal(timeToMicro(v.UpdatedAt), bs[n:])
	return
}

func (nodeMUS) Unmarshal(bs []byte) (v Node, n int, err error) {
	var n1 int
	if v.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Label, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Depth, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Visible, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Expanded, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.LLMGenerated, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var micro int64
	if micro, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.CreatedAt = microToTime(micro)
	if micro, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.UpdatedAt = microToTime(micro)
	return
}

func (nodeMUS) Size(v Node) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Label)
	size += varint.Int.Size(v.Depth)
	size += vectorMUS.Size(v.Vector)
	size += ord.Bool.Size(v.Visible)
	size += ord.Bool.Size(v.Expanded)
	size += ord.Bool.Size(v.LLMGenerated)
	size += varint.Int64.Size(timeToMicro(v.CreatedAt))
	size += varint.Int64.Size(timeToMicro(v.UpdatedAt))
	return
}

type edgeMUS struct{}

func (edgeMUS) Marshal(v Edge, bs []byte) (n int) {
	n = ord.String.Marshal(v.Source, bs)
	n += ord.String.Marshal(v.Target, bs[n:])
	n += ord.String.Marshal(v.Relation, bs[n:])
	n += raw.Float32.Marshal(v.Weight, bs[n:])
	return
}

func (edgeMUS) Unmarshal(bs []byte) (v Edge, n int, err error) {
	var n1 int
	if v.Source, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Target, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Relation, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Weight, n1, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (edgeMUS) Size(v Edge) (size int) {
	size = ord.String.Size(v.Source)
	size += ord.String.Size(v.Target)
	size += ord.String.Size(v.Relation)
	size += raw.Float32.Size(v.Weight)
	return
}

// timeToMicro converts a timestamp to Unix microseconds, preserving the
// zero value as 0 so zero times round-trip exactly.
func timeToMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microToTime(micro int64) time.Time {
	if micro == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micro).UTC()
}
