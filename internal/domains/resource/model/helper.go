package model

import "strings"

// ParseTags normalizes a raw comma-separated tag string into a trimmed
// sequence. Empty segments are dropped; an absent input yields an
// empty (non-nil) slice so the JSON encoding stays [].
func ParseTags(raw string) []string {
	tags := []string{}
	if raw == "" {
		return tags
	}

	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}
