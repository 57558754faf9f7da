package database

import "github.com/google/uuid"

// canonicalID returns id in the form Postgres prints UUIDs, or false when id
// is not a UUID. A malformed id can match no row.
func canonicalID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// canonicalIDs keeps the well-formed ids, deduplicated, in input order.
func canonicalIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		c, ok := canonicalID(id)
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
