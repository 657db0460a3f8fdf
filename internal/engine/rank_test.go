package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/aggregator-api/listing"
)

func TestRankByPrice_Descending(t *testing.T) {
	ls := []listing.Listing{
		mk("a", "1 First St", "33901", 300000),
		mk("a", "2 Second St", "33901", 500000),
		mk("a", "3 Third St", "33901", 100000),
	}

	RankByPrice(ls)

	for i := 0; i < len(ls)-1; i++ {
		assert.GreaterOrEqual(t, ls[i].Price, ls[i+1].Price)
	}
}

func TestRankByPrice_StableOnTies(t *testing.T) {
	ls := []listing.Listing{
		mk("a", "1 First St", "33901", 400000),
		mk("b", "2 Second St", "33901", 400000),
		mk("c", "3 Third St", "33901", 400000),
	}

	RankByPrice(ls)

	require.Len(t, ls, 3)
	assert.Equal(t, "a", ls[0].SourceName)
	assert.Equal(t, "b", ls[1].SourceName)
	assert.Equal(t, "c", ls[2].SourceName)
}

func TestPaginate(t *testing.T) {
	ls := []listing.Listing{
		mk("a", "1 First St", "33901", 500000),
		mk("a", "2 Second St", "33901", 400000),
		mk("a", "3 Third St", "33901", 300000),
	}

	assert.Len(t, Paginate(ls, 2), 2)
	assert.Len(t, Paginate(ls, 3), 3)
	assert.Len(t, Paginate(ls, 10), 3)
	assert.Len(t, Paginate(ls, 0), 3, "zero limit means no truncation here; defaulting happens upstream")
}

func TestPaginate_KeepsBestRanked(t *testing.T) {
	ls := []listing.Listing{
		mk("a", "1 First St", "33901", 500000),
		mk("a", "2 Second St", "33901", 400000),
		mk("a", "3 Third St", "33901", 300000),
		mk("a", "4 Fourth St", "33901", 200000),
		mk("a", "5 Fifth St", "33901", 100000),
	}
	RankByPrice(ls)

	got := Paginate(ls, 1)

	require.Len(t, got, 1)
	assert.Equal(t, 500000, got[0].Price)
}
