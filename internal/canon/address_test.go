package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t,
		DedupeKey("123 Main St", "33901"),
		DedupeKey("123 MAIN ST", "33901"))
}

func TestDedupeKey_SuffixVariantsCollapse(t *testing.T) {
	assert.Equal(t,
		DedupeKey("123 Main Street", "33901"),
		DedupeKey("123 Main St", "33901"))
	assert.Equal(t,
		DedupeKey("9 Palm Boulevard", "33901"),
		DedupeKey("9 Palm Blvd", "33901"))
}

func TestDedupeKey_ZipDistinguishes(t *testing.T) {
	assert.NotEqual(t,
		DedupeKey("123 Main St", "33901"),
		DedupeKey("123 Main St", "33990"))
}

func TestDedupeKey_Zip4Trimmed(t *testing.T) {
	assert.Equal(t,
		DedupeKey("123 Main St", "33901-4412"),
		DedupeKey("123 Main St", "33901"))
}

func TestDedupeKey_UnitIgnored(t *testing.T) {
	assert.Equal(t,
		DedupeKey("123 Main St APT 4", "33901"),
		DedupeKey("123 Main St", "33901"))
}

func TestDedupeKey_MissingAddressPlaceholder(t *testing.T) {
	assert.Equal(t, "address not available|33901", DedupeKey("", "33901"))
	assert.Equal(t, DedupeKey("", "33901"), DedupeKey("   ", "33901"))
}

func TestNormalizeLine(t *testing.T) {
	assert.Equal(t, "123 N MAIN ST", NormalizeLine("  123 N. Main Street "))
	assert.Equal(t, "", NormalizeLine(""))
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "FL", NormalizeState("Florida"))
	assert.Equal(t, "FL", NormalizeState("fl"))
	assert.Equal(t, "PUSHKIN", NormalizeState("Pushkin"), "unknown names pass through upcased")
}
