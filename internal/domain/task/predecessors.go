package task

import (
	"strconv"
	"strings"
)

// ParsePredecessors normalizes a serialized predecessor list. Ingestion may
// hand the field over as "[1, 2, 3]", "1,2,3" or a single "7"; unparseable
// input yields an empty list rather than an error. Duplicates are removed,
// original order is kept.
func ParsePredecessors(raw string) []int64 {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}

	var ids []int64
	seen := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// FormatPredecessors serializes a predecessor list for storage.
func FormatPredecessors(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// DedupePredecessors removes duplicates and self references in place of a
// fresh slice, keeping original order.
func DedupePredecessors(taskID int64, ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == taskID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
