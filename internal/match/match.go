// Package match scores a resume against a list of job terms, producing a
// coverage percentage with found/missing breakdowns and an optional
// category view.
package match

import (
	"math"
	"strings"

	"github.com/jonathan/jobscan/internal/vocab"
)

// maxListed caps the found and missing lists in a Result. The score is still
// computed over the full term list.
const maxListed = 12

// minRelaxedKeywords is the keyword count above which a phrase must hit two
// of its keywords in the resume instead of one.
const minRelaxedKeywords = 4

// TermSource produces the job terms a resume is scored against. Both the
// structured requirements path and the flat mining path satisfy it, so the
// matcher stays strategy-agnostic.
type TermSource interface {
	Terms(jobText string) []string
}

// SourceFunc adapts a plain function to a TermSource.
type SourceFunc func(jobText string) []string

func (f SourceFunc) Terms(jobText string) []string { return f(jobText) }

// Result is the outcome of one match call. It is recomputed per request and
// never persisted.
type Result struct {
	Score   int      `json:"score"`
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

// Bucket groups found and missing terms under one category label.
type Bucket struct {
	Name    string   `json:"name"`
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

// BucketedResult is a Result plus the category breakdown. Only non-empty
// buckets are listed, in the fixed category order with "Other" last.
type BucketedResult struct {
	Result
	Buckets []Bucket `json:"buckets"`
}

type bucketDef struct {
	name     string
	keywords []string
}

// Matcher evaluates terms against resume text. Construction loads the
// qualifier stoplist and category keyword tables once.
type Matcher struct {
	qualifiers map[string]bool
	buckets    []bucketDef
}

// New builds a Matcher from the embedded vocabulary.
func New() *Matcher {
	names := vocab.MustTable("buckets")
	defs := make([]bucketDef, 0, len(names))
	for _, name := range names {
		key := "bucket_" + strings.ToLower(strings.ReplaceAll(name, "/", "_"))
		defs = append(defs, bucketDef{name: name, keywords: vocab.MustTable(key)})
	}
	return &Matcher{
		qualifiers: vocab.MustTableSet("generic_qualifiers"),
		buckets:    defs,
	}
}

// Match scores the resume against the term list. An empty term list is a
// defined zero-result state, not an error.
func (m *Matcher) Match(resume string, terms []string) Result {
	result := Result{Found: []string{}, Missing: []string{}}
	if len(terms) == 0 {
		return result
	}

	lower := strings.ToLower(resume)
	foundCount := 0
	for _, term := range terms {
		if m.termMatches(lower, term) {
			foundCount++
			if len(result.Found) < maxListed {
				result.Found = append(result.Found, term)
			}
		} else if len(result.Missing) < maxListed {
			result.Missing = append(result.Missing, term)
		}
	}

	result.Score = int(math.Round(100 * float64(foundCount) / float64(len(terms))))
	return result
}

// MatchBuckets runs Match and additionally classifies every found and
// missing term into a category.
func (m *Matcher) MatchBuckets(resume string, terms []string) BucketedResult {
	result := m.Match(resume, terms)

	found := make(map[string][]string)
	missing := make(map[string][]string)
	for _, t := range result.Found {
		name := m.bucketFor(t)
		found[name] = append(found[name], t)
	}
	for _, t := range result.Missing {
		name := m.bucketFor(t)
		missing[name] = append(missing[name], t)
	}

	var buckets []Bucket
	for _, def := range m.buckets {
		if len(found[def.name]) == 0 && len(missing[def.name]) == 0 {
			continue
		}
		buckets = append(buckets, Bucket{Name: def.name, Found: found[def.name], Missing: missing[def.name]})
	}
	if len(found["Other"]) > 0 || len(missing["Other"]) > 0 {
		buckets = append(buckets, Bucket{Name: "Other", Found: found["Other"], Missing: missing["Other"]})
	}

	return BucketedResult{Result: result, Buckets: buckets}
}

// termMatches applies the per-term rule: short bare terms must appear as a
// substring; multi-word or long terms match through their significant
// keywords, needing two hits when four or more keywords remain and one
// otherwise.
func (m *Matcher) termMatches(lowerResume, term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return false
	}
	if len(t) <= 10 && !strings.Contains(t, " ") {
		return strings.Contains(lowerResume, t)
	}

	var keywords []string
	for _, part := range strings.Fields(t) {
		if len(part) < 4 || m.qualifiers[part] {
			continue
		}
		keywords = append(keywords, part)
	}
	if len(keywords) == 0 {
		return strings.Contains(lowerResume, t)
	}

	need := 1
	if len(keywords) >= minRelaxedKeywords {
		need = 2
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lowerResume, kw) {
			hits++
			if hits >= need {
				return true
			}
		}
	}
	return false
}

// bucketFor returns the first category whose keyword list has a substring
// hit against the term, or "Other".
func (m *Matcher) bucketFor(term string) string {
	t := strings.ToLower(term)
	for _, def := range m.buckets {
		for _, kw := range def.keywords {
			if strings.Contains(t, kw) {
				return def.name
			}
		}
	}
	return "Other"
}
