package companies

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads one platform's identifier set: a JSON array of strings.
// Identifiers are trimmed and deduplicated case-insensitively (first
// spelling wins; Workday site IDs are case-sensitive, so casing is kept).
// The set is loaded once per run and immutable afterwards.
func LoadFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("companies %s: %w", path, err)
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out, nil
}
