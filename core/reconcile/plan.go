package reconcile

import (
	"kg-sync/core/identity"
	"kg-sync/core/schema"
)

// Snapshot is the set of trade codes present in the graph when a run
// started. It is the create-versus-update oracle for the whole run.
type Snapshot map[string]struct{}

// NewSnapshot indexes codes. Codes that do not normalize are kept as given.
func NewSnapshot(codes []string) Snapshot {
	s := make(Snapshot, len(codes))
	for _, c := range codes {
		s[normalize(c)] = struct{}{}
	}
	return s
}

// Contains reports whether code was in the graph.
func (s Snapshot) Contains(code string) bool {
	_, ok := s[normalize(code)]
	return ok
}

func normalize(code string) string {
	if n, err := identity.NormalizeTradeCode(code); err == nil {
		return n
	}
	return code
}

// Plan splits products into the ones the graph already has and the new ones.
// Input order is preserved within each side.
func Plan(snapshot Snapshot, products []*schema.Product) Batch {
	var b Batch
	for _, p := range products {
		if snapshot.Contains(p.GTIN14) {
			b.Update = append(b.Update, p)
		} else {
			b.Create = append(b.Create, p)
		}
	}
	return b
}
