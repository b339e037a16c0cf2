package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_EmptyTermList(t *testing.T) {
	m := New()
	r := m.Match("a perfectly good resume", nil)

	assert.Equal(t, 0, r.Score)
	assert.Empty(t, r.Found)
	assert.Empty(t, r.Missing)
	assert.NotNil(t, r.Found, "empty, not nil")
	assert.NotNil(t, r.Missing)
}

func TestMatch_FullCoverage(t *testing.T) {
	m := New()
	resume := "Ran the Splunk SIEM deployment for three years."
	r := m.Match(resume, []string{"siem", "splunk"})

	assert.Equal(t, 100, r.Score)
	assert.Equal(t, []string{"siem", "splunk"}, r.Found)
	assert.Empty(t, r.Missing)
}

func TestMatch_PartialCoverageRounds(t *testing.T) {
	m := New()
	r := m.Match("aws only here", []string{"aws", "gcp", "azure"})

	assert.Equal(t, 33, r.Score)
	assert.Equal(t, []string{"aws"}, r.Found)
	assert.Equal(t, []string{"gcp", "azure"}, r.Missing)
}

func TestMatch_ShortTermIsSubstring(t *testing.T) {
	m := New()
	r := m.Match("worked with postgresql clusters", []string{"postgres"})
	assert.Equal(t, 100, r.Score, "short bare terms match anywhere as substrings")
}

func TestMatch_PhraseRelaxedSingleKeyword(t *testing.T) {
	m := New()
	// Qualifier words and short parts are stripped; "terraform" is the only
	// keyword left, so one hit suffices.
	r := m.Match("I have shipped terraform modules", []string{"strong experience with terraform"})
	assert.Equal(t, 100, r.Score)
}

func TestMatch_PhraseNeedsTwoOfFourKeywords(t *testing.T) {
	m := New()
	term := "linux windows networking firewalls administration"

	one := m.Match("I only know linux", []string{term})
	assert.Equal(t, 0, one.Score, "one of five keywords is not enough")

	two := m.Match("linux and firewalls background", []string{term})
	assert.Equal(t, 100, two.Score)
}

func TestMatch_QualifierOnlyPhraseFallsBack(t *testing.T) {
	m := New()
	term := "strong working knowledge"

	miss := m.Match("unrelated resume", []string{term})
	assert.Equal(t, 0, miss.Score)

	hit := m.Match("brings strong working knowledge of operations", []string{term})
	assert.Equal(t, 100, hit.Score, "whole-phrase containment when no keywords survive")
}

func TestMatch_ListsCappedAtTwelve(t *testing.T) {
	m := New()
	var terms []string
	for i := 0; i < 30; i++ {
		terms = append(terms, fmt.Sprintf("zz%02d", i))
	}
	r := m.Match("nothing relevant", terms)

	assert.Equal(t, 0, r.Score)
	assert.Len(t, r.Missing, 12)
	assert.Empty(t, r.Found)
}

func TestMatch_ScoreUsesFullTermCount(t *testing.T) {
	m := New()
	var terms []string
	var resume strings.Builder
	for i := 0; i < 20; i++ {
		term := fmt.Sprintf("qq%02d", i)
		terms = append(terms, term)
		resume.WriteString(term + " ")
	}
	terms = append(terms, "absent-term-xyz")

	r := m.Match(resume.String(), terms)
	assert.Equal(t, 95, r.Score, "20 of 21 matched, despite the 12-item list cap")
	assert.Len(t, r.Found, 12)
}

func TestMatchBuckets_Categorizes(t *testing.T) {
	m := New()
	r := m.MatchBuckets("aws and splunk daily", []string{"aws", "splunk", "terraform", "quilting"})

	assert.Equal(t, 50, r.Score)
	require.NotEmpty(t, r.Buckets)

	byName := make(map[string]Bucket)
	var order []string
	for _, b := range r.Buckets {
		byName[b.Name] = b
		order = append(order, b.Name)
	}

	assert.Equal(t, []string{"aws"}, byName["Cloud"].Found)
	assert.Equal(t, []string{"splunk"}, byName["Monitoring"].Found)
	assert.Equal(t, []string{"terraform"}, byName["DevOps/IaC"].Missing)
	assert.Equal(t, []string{"quilting"}, byName["Other"].Missing)
	assert.Equal(t, "Other", order[len(order)-1], "Other is always listed last")
}

func TestMatchBuckets_FirstCategoryWins(t *testing.T) {
	m := New()
	// "cloud security" hits both the Cloud and Security keyword lists; the
	// fixed category order decides.
	r := m.MatchBuckets("", []string{"cloud security"})
	require.Len(t, r.Buckets, 1)
	assert.Equal(t, "Cloud", r.Buckets[0].Name)
}

func TestSourceFunc_Adapts(t *testing.T) {
	var src TermSource = SourceFunc(func(job string) []string {
		return strings.Fields(job)
	})
	assert.Equal(t, []string{"aws", "gcp"}, src.Terms("aws gcp"))
}
