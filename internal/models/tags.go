package models

import "strings"

// SplitTags parses a comma-separated tag string into trimmed, lower-cased,
// deduplicated tags, preserving first-seen order.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags normalizes a comma-separated tag string for storage.
func JoinTags(s string) string {
	return strings.Join(SplitTags(s), ",")
}

// TagSet returns the tags of a comma-separated string as a set.
func TagSet(s string) map[string]struct{} {
	tags := SplitTags(s)
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}
