package progress

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/vovakirdan/affine-affinity/internal/affine"
)

// Storage keys shared by every backend.
const (
	KeySolvedLevels = "solvedLevels"
	KeyValues       = "affineAffinityValues"
)

// DecodeSolved parses the stored solved-level list. Malformed input and
// unknown levels are dropped; the result is sorted and free of duplicates.
func DecodeSolved(raw string) ([]int, error) {
	var levels []int
	if err := json.Unmarshal([]byte(raw), &levels); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(levels))
	for _, lv := range levels {
		if affine.ValidLevel(lv) {
			out = append(out, lv)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// EncodeSolved serializes a solved-level list as a JSON array.
func EncodeSolved(levels []int) string {
	if levels == nil {
		levels = []int{}
	}
	data, _ := json.Marshal(levels)
	return string(data)
}

// DecodeValues parses the stored per-level parameter map. Entries with an
// unknown level key or a malformed body are skipped, missing fields keep
// their identity value and every value is clamped to its slider range.
func DecodeValues(raw string) (map[int]affine.Params, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	values := make(map[int]affine.Params, len(entries))
	for key, body := range entries {
		level, err := strconv.Atoi(key)
		if err != nil || !affine.ValidLevel(level) {
			continue
		}
		p := affine.DefaultParams()
		if err := json.Unmarshal(body, &p); err != nil {
			continue
		}
		values[level] = p.Clamped()
	}
	return values, nil
}

// EncodeValues serializes the per-level parameter map keyed by level string.
func EncodeValues(values map[int]affine.Params) string {
	entries := make(map[string]affine.Params, len(values))
	for level, p := range values {
		entries[strconv.Itoa(level)] = p
	}
	data, _ := json.Marshal(entries)
	return string(data)
}
