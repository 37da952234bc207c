package domain

import (
	"encoding/json"
	"strconv"
)

// ParsePointsMap decodes a stored points schedule. The column holds a JSON
// object keyed by finishing position ("1": 25, ...). Malformed JSON, non
// positive positions and negative point values are dropped rather than
// reported; an empty result means "use the default schedule".
func ParsePointsMap(raw []byte) map[int]int {
	if len(raw) == 0 {
		return nil
	}

	var decoded map[string]int
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}

	out := make(map[int]int, len(decoded))
	for key, points := range decoded {
		pos, err := strconv.Atoi(key)
		if err != nil || pos <= 0 || points < 0 {
			continue
		}
		out[pos] = points
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// EncodePointsMap serializes a points schedule for storage. A nil or empty
// map encodes as JSON null so reads fall back to the default schedule.
func EncodePointsMap(m map[int]int) ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	encoded := make(map[string]int, len(m))
	for pos, points := range m {
		encoded[strconv.Itoa(pos)] = points
	}
	return json.Marshal(encoded)
}
