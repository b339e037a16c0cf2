package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	version, err := Version()
	require.NoError(t, err)
	assert.NotEmpty(t, version)
}

func TestTable_HeadingHints(t *testing.T) {
	hints, err := Table("heading_hints")
	require.NoError(t, err)
	assert.Contains(t, hints, "responsibilities")
	assert.Contains(t, hints, "requirements")
	assert.Contains(t, hints, "selection criteria")
}

func TestTable_NotFound(t *testing.T) {
	_, err := Table("no_such_table")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustTable_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustTable("no_such_table")
	})
}

func TestTableSet(t *testing.T) {
	set, err := TableSet("stopwords")
	require.NoError(t, err)
	assert.True(t, set["the"])
	assert.True(t, set["and"])
	assert.False(t, set["terraform"])
}

func TestPatterns_CertAcronyms(t *testing.T) {
	patterns, err := Patterns("cert_acronyms")
	require.NoError(t, err)
	require.NotEmpty(t, patterns)

	var secPlus *Pattern
	for i := range patterns {
		if patterns[i].Name == "sec+" {
			secPlus = &patterns[i]
			break
		}
	}
	require.NotNil(t, secPlus, "sec+ pattern should exist")

	// Both spellings normalize to the same canonical name.
	assert.True(t, secPlus.Re.MatchString("security+"))
	assert.True(t, secPlus.Re.MatchString("sec+"))
	assert.False(t, secPlus.Re.MatchString("section"))
}

func TestPatterns_MustHaveTech(t *testing.T) {
	patterns, err := Patterns("musthave_tech")
	require.NoError(t, err)

	matched := make(map[string]bool)
	text := "we use terraform, kubernetes (k8s) and ci/cd pipelines on aws"
	for _, p := range patterns {
		if p.Re.MatchString(text) {
			matched[p.Name] = true
		}
	}

	assert.True(t, matched["terraform"])
	assert.True(t, matched["kubernetes"])
	assert.True(t, matched["ci/cd"])
	assert.True(t, matched["aws"])
	assert.False(t, matched["splunk"])
}

func TestPatterns_Cached(t *testing.T) {
	first, err := Patterns("musthave_tech")
	require.NoError(t, err)
	second, err := Patterns("musthave_tech")
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}

func TestBuckets_OrderFixed(t *testing.T) {
	buckets, err := Table("buckets")
	require.NoError(t, err)
	require.Len(t, buckets, 8)
	assert.Equal(t, "Cloud", buckets[0])
	assert.Equal(t, "Certs", buckets[7])
}
