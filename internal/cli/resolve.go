package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/contrack/internal/domain"
)

// resolveEvent finds an event by full id, unique id prefix, or row number
// as shown by "list" (oldest event is #1). Prefix matches win over row
// numbers.
func resolveEvent(history []*domain.Event, ref string) (*domain.Event, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	if ref == "" {
		return nil, fmt.Errorf("event reference is empty")
	}

	var matches []*domain.Event
	for _, e := range history {
		if e.ID == ref {
			return e, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("event reference %q is ambiguous (%d matches)", ref, len(matches))
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(history) {
		return history[len(history)-n], nil
	}
	return nil, fmt.Errorf("event %q: %w", ref, domain.ErrNotFound)
}
