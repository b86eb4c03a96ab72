package service

import "strings"

// SplitList turns a comma-separated form value into a clean slice: items are
// trimmed and empties dropped.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinList is the inverse of SplitList, used when rendering a stored slice
// back into a form field.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
