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


package ai

import (
	"errors"
	"sync"
)

// ErrProviderClosed is returned by Get when the handle was closed before
// the provider was ever initialized.
var ErrProviderClosed = errors.New("ai provider closed")

// Lazy defers provider construction until first use. Concurrent first
// callers share a single in-flight initialization instead of triggering
// duplicate loads; the construction result (provider or error) is memoized.
//
// Lazy is an explicitly owned resource handle: the owner passes it to
// whichever components need AI services and closes it when done.
type Lazy struct {
	build func() (Provider, error)

	once     sync.Once
	provider Provider
	err      error
}

// NewLazy wraps a provider constructor in a lazily-initialized handle.
func NewLazy(build func() (Provider, error)) *Lazy {
	return &Lazy{build: build}
}

// Get returns the provider, constructing it on first call.
// All callers observe the same provider instance or the same error.
func (l *Lazy) Get() (Provider, error) {
	l.once.Do(func() {
		l.provider, l.err = l.build()
	})
	return l.provider, l.err
}

// Close closes the underlying provider if it was ever initialized.
// A Lazy that was never used closes without side effects.
func (l *Lazy) Close() error {
	// Run the once so a concurrent in-flight Get cannot resurrect
	// a provider after Close returns. A never-used handle stays unusable.
	l.once.Do(func() {
		l.err = ErrProviderClosed
	})
	if l.provider == nil {
		return nil
	}
	return l.provider.Close()
}
