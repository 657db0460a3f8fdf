package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	return NewRegistry(
		Entry{Adapter: &stubAdapter{id: "realtor", name: "Realtor.com"}, Enabled: true},
		Entry{Adapter: &stubAdapter{id: "redfin", name: "Redfin"}, Enabled: true},
		Entry{Adapter: &stubAdapter{id: "zillow", name: "Zillow"}, Enabled: false},
	)
}

func TestResolve_AllReturnsEnabledInOrder(t *testing.T) {
	got := testRegistry().Resolve(SelectorAll)

	require.Len(t, got, 2)
	assert.Equal(t, "realtor", got[0].SourceID())
	assert.Equal(t, "redfin", got[1].SourceID())
}

func TestResolve_EmptySelectorMeansAll(t *testing.T) {
	assert.Len(t, testRegistry().Resolve(""), 2)
}

func TestResolve_SingleSource(t *testing.T) {
	got := testRegistry().Resolve("redfin")

	require.Len(t, got, 1)
	assert.Equal(t, "redfin", got[0].SourceID())
}

func TestResolve_UnknownSourceIsEmptyNotError(t *testing.T) {
	assert.Empty(t, testRegistry().Resolve("mls-direct"))
}

func TestResolve_DisabledSourceDoesNotResolve(t *testing.T) {
	assert.Empty(t, testRegistry().Resolve("zillow"))
}

func TestKnown_IncludesDisabled(t *testing.T) {
	assert.Equal(t, []string{"realtor", "redfin", "zillow"}, testRegistry().Known())
}
