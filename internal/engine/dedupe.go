package engine

import (
	"github.com/yourorg/aggregator-api/internal/canon"
	"github.com/yourorg/aggregator-api/listing"
)

// Dedupe merges the per-source listings into one list with cross-source
// duplicates removed. The first listing seen for a dedup key wins; since
// outcomes arrive in registry order, source precedence is deterministic.
// Listings with no address share a placeholder key per ZIP so malformed
// records from different sources collapse into one entry.
func Dedupe(outcomes []Outcome) []listing.Listing {
	seen := make(map[string]struct{})
	var out []listing.Listing
	for _, oc := range outcomes {
		for _, l := range oc.Listings {
			key := canon.DedupeKey(l.Address, l.Zip)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}
