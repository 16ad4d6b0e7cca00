package ids

import (
	"errors"
	"strings"
)

var (
	// ErrNoMatch is returned when no ID starts with the given prefix.
	ErrNoMatch = errors.New("no matching ID")

	// ErrAmbiguous is returned when more than one ID starts with the given prefix.
	ErrAmbiguous = errors.New("ambiguous ID prefix")
)

// Index resolves unique prefixes of a fixed set of IDs.
type Index struct {
	ids []string
}

// NewIndex builds an Index. Matching is case-insensitive; empty and duplicate
// IDs are dropped.
func NewIndex(values []string) Index {
	return Index{ids: normalizeUnique(values)}
}

// Resolve returns the full ID for a prefix. An exact match wins over longer
// IDs that share the prefix.
func (index Index) Resolve(prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", ErrNoMatch
	}

	var match string
	count := 0
	for _, id := range index.ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			match = id
			count++
		}
	}
	switch count {
	case 0:
		return "", ErrNoMatch
	case 1:
		return match, nil
	default:
		return "", ErrAmbiguous
	}
}

// PrefixLengths returns the shortest unique prefix length for each ID.
func (index Index) PrefixLengths() map[string]int {
	lengths := make(map[string]int, len(index.ids))
	for _, id := range index.ids {
		lengths[id] = uniquePrefixLength(id, index.ids)
	}
	return lengths
}

// UniquePrefixLengths returns the shortest unique prefix length for each ID.
func UniquePrefixLengths(ids []string) map[string]int {
	return NewIndex(ids).PrefixLengths()
}

func normalizeUnique(values []string) []string {
	unique := make([]string, 0, len(values))
	seen := make(map[string]bool)
	for _, id := range values {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		unique = append(unique, idLower)
	}
	return unique
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
