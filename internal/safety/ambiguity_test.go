package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupAmbiguityFirstMatchWins(t *testing.T) {
	info := lookupAmbiguity("go and rust")

	require.NotNil(t, info)
	assert.Equal(t, "go", info.Term)
}

func TestLookupAmbiguityIsCaseInsensitive(t *testing.T) {
	info := lookupAmbiguity("learning Rust today")

	require.NotNil(t, info)
	assert.Equal(t, "rust", info.Term)
	assert.Equal(t, "Rust", info.ProperForm)
}

func TestLookupAmbiguitySplitsOnNonAlphabetic(t *testing.T) {
	info := lookupAmbiguity("docker-compose.yml")

	require.NotNil(t, info)
	assert.Equal(t, "docker", info.Term)
	assert.Equal(t, AmbiguityProductName, info.Kind)
}

func TestLookupAmbiguityNoMatch(t *testing.T) {
	assert.Nil(t, lookupAmbiguity("nothing suspicious here"))
	assert.Nil(t, lookupAmbiguity(""))
	assert.Nil(t, lookupAmbiguity("12345 !!!"))
}

func TestLookupAmbiguityWholeTokensOnly(t *testing.T) {
	// "trust" contains "rust" but is not the ambiguous token itself.
	assert.Nil(t, lookupAmbiguity("trust the process"))
}
