package enrichment

import (
	"fmt"
	"strings"
)

// ParseTags turns a comma-separated model reply into a tag list.
//
// Each entry is trimmed of whitespace, wrapping quotes and a trailing period.
// Empty entries are dropped and duplicates are removed case-insensitively,
// keeping the first spelling. A reply that yields no tags is ErrInvalidResponse.
func ParseTags(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		tag := cleanTag(part)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: no tags in reply", ErrInvalidResponse)
	}
	return tags, nil
}

func cleanTag(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	s = strings.Trim(strings.TrimSpace(s), "\"'`")
	return strings.TrimSpace(strings.TrimSuffix(s, "."))
}
