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
	"encoding/json"
	"log/slog"
	"strings"
)

// ExtractJSONArray returns the first balanced JSON array embedded in free
// text, located by bracket matching. Brackets inside string literals are
// ignored. Returns "" if no balanced array is found.
func ExtractJSONArray(s string) string {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// ParseRelatedWords extracts a list of related words from a raw LLM
// response. The response may wrap the JSON array in markdown fences or
// surrounding prose. Malformed payloads degrade to an empty list rather
// than an error; entries with an empty word are dropped.
func ParseRelatedWords(response string) []RelatedWord {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	payload := ExtractJSONArray(text)
	if payload == "" {
		slog.Debug("no JSON array found in generator response", "response", response)
		return []RelatedWord{}
	}

	var words []RelatedWord
	if err := json.Unmarshal([]byte(payload), &words); err != nil {
		slog.Warn("error parsing generator response", "payload", payload, "err", err)
		return []RelatedWord{}
	}

	cleaned := make([]RelatedWord, 0, len(words))
	for _, w := range words {
		w.Word = strings.ToLower(strings.TrimSpace(w.Word))
		w.Relation = strings.TrimSpace(w.Relation)
		if w.Word == "" {
			continue
		}
		cleaned = append(cleaned, w)
	}
	return cleaned
}
