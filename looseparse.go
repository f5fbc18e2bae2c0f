package studyquiz

import (
	"encoding/json"
	"strconv"
	"strings"
)

// remotePayload mirrors the wire contract of the generation service.
// Extra fields are ignored; missing ones are validated away later.
type remotePayload struct {
	Questions []remoteQuestion `json:"questions"`
}

type remoteQuestion struct {
	Question    string      `json:"question"`
	Choices     []string    `json:"choices"`
	AnswerIndex interface{} `json:"answer_index"`
}

// parseLoosePayload parses an untrusted generation-service reply. The
// reply should be strict JSON but often is not, so parsing degrades in
// stages: strict parse, then the first balanced {...} block (models like
// to wrap JSON in prose), then a naive single-to-double quote pass.
// Reports ok=false when every stage fails; parse failures never escape
// as errors.
func parseLoosePayload(raw string) (remotePayload, bool) {
	var p remotePayload

	if err := json.Unmarshal([]byte(raw), &p); err == nil {
		return p, true
	}

	block := balancedBlock(raw)
	if block != "" {
		if err := json.Unmarshal([]byte(block), &p); err == nil {
			return p, true
		}
		requoted := strings.ReplaceAll(block, "'", `"`)
		if err := json.Unmarshal([]byte(requoted), &p); err == nil {
			return p, true
		}
	}

	return remotePayload{}, false
}

// balancedBlock returns the first balanced top-level {...} block in s,
// or "" when none closes. Braces inside JSON strings are ignored.
func balancedBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// coerceAnswerIndex turns whatever the service put in answer_index into
// an int clamped to [0,3], defaulting to 0 on anything unusable.
func coerceAnswerIndex(v interface{}) int {
	idx := 0
	switch n := v.(type) {
	case float64:
		idx = int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			idx = parsed
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return idx
}
