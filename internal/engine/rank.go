package engine

import (
	"sort"

	"github.com/yourorg/aggregator-api/listing"
)

// RankByPrice orders listings by price descending. The sort is stable so
// equal-price listings keep their dedup (registry) order.
func RankByPrice(ls []listing.Listing) {
	sort.SliceStable(ls, func(i, j int) bool {
		return ls[i].Price > ls[j].Price
	})
}

// Paginate truncates to the page size. It runs only after dedup and ranking
// so the caller gets the best N of the merged set, never N-per-source.
func Paginate(ls []listing.Listing, limit int) []listing.Listing {
	if limit > 0 && len(ls) > limit {
		return ls[:limit]
	}
	return ls
}
