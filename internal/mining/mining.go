// Package mining derives a ranked list of skill-like terms from unsegmented
// job text. It is the denser alternative to the structured requirements
// extractor, tuned for matching against a resume rather than producing a
// labeled report.
package mining

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/jobscan/internal/vocab"
)

const (
	// candidateCap bounds the list entering the substring prune, which is a
	// pairwise O(n²) scan.
	candidateCap = 80
	// resultCap is the final number of terms returned.
	resultCap = 40
	// maxPhraseWords drops run-on phrases that survived the sliding window.
	maxPhraseWords = 3
)

var (
	acronymRe = regexp.MustCompile(`\b[A-Z]{2,10}\b`)
	// cleanRe keeps + and # so terms like sec+ and c# survive tokenization.
	cleanRe = regexp.MustCompile(`[^a-z0-9+#]+`)
)

// Miner holds the vocabulary and curated patterns resolved once at
// construction. Mine is a pure function of its input text.
type Miner struct {
	certPatterns []vocab.Pattern
	techPatterns []vocab.Pattern
	stopwords    map[string]bool
	verbish      map[string]bool
	softKill     map[string]bool
	connectors   map[string]bool
	techHints    []string
	hintSet      map[string]bool
}

// New builds a Miner from the embedded vocabulary.
func New() *Miner {
	hints := vocab.MustTable("tech_hints")
	hintSet := make(map[string]bool, len(hints))
	for _, h := range hints {
		hintSet[h] = true
	}
	return &Miner{
		certPatterns: vocab.MustPatterns("cert_acronyms"),
		techPatterns: vocab.MustPatterns("musthave_tech"),
		stopwords:    vocab.MustTableSet("stopwords"),
		verbish:      vocab.MustTableSet("verbish_words"),
		softKill:     vocab.MustTableSet("softskill_kill"),
		connectors:   vocab.MustTableSet("connector_words"),
		techHints:    hints,
		hintSet:      hintSet,
	}
}

// Mine extracts up to 40 ranked, deduplicated, overlap-pruned terms.
//
// Candidates come from five sources counted into one frequency table:
// curated certification patterns, curated must-have tech patterns, bare
// uppercase acronyms, single tech-hinted words, and two-word tech-hinted
// phrases. Curated and acronym candidates are anchors and skip the frequency
// retention rule.
func (m *Miner) Mine(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	freq := make(map[string]int)
	anchor := make(map[string]bool)
	var order []string
	add := func(term string, isAnchor bool) {
		if freq[term] == 0 {
			order = append(order, term)
		}
		freq[term]++
		if isAnchor {
			anchor[term] = true
		}
	}

	for _, p := range m.certPatterns {
		if p.Re.MatchString(lower) {
			add(p.Name, true)
		}
	}
	for _, p := range m.techPatterns {
		if p.Re.MatchString(lower) {
			add(p.Name, true)
		}
	}
	for _, a := range acronymRe.FindAllString(text, -1) {
		la := strings.ToLower(a)
		if m.stopwords[la] || la == "it" {
			continue
		}
		add(la, true)
	}

	words := strings.Fields(cleanRe.ReplaceAllString(lower, " "))
	for _, w := range words {
		if len(w) < 3 || m.stopwords[w] {
			continue
		}
		if m.fuzzyHint(w) {
			add(w, false)
		}
	}
	for i := 0; i+1 < len(words); i++ {
		if m.skipInPhrase(words[i]) || m.skipInPhrase(words[i+1]) {
			continue
		}
		phrase := words[i] + " " + words[i+1]
		if m.containsHint(phrase) {
			add(phrase, false)
		}
	}

	kept := make([]string, 0, len(order))
	for _, term := range order {
		n := len(strings.Fields(term))
		if n > maxPhraseWords {
			continue
		}
		if n > 1 && m.hasConnector(term) {
			continue
		}
		if !anchor[term] {
			if n > 1 {
				if freq[term] < 2 && !m.containsHint(term) {
					continue
				}
			} else if freq[term] < 2 && !m.hintSet[term] {
				continue
			}
		}
		kept = append(kept, term)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if freq[kept[i]] != freq[kept[j]] {
			return freq[kept[i]] > freq[kept[j]]
		}
		return len(kept[i]) > len(kept[j])
	})
	if len(kept) > candidateCap {
		kept = kept[:candidateCap]
	}

	pruned := pruneContained(kept)

	out := make([]string, 0, resultCap)
	for _, term := range pruned {
		if hasSingleLetterToken(term) || m.startsVerbish(term) {
			continue
		}
		out = append(out, term)
		if len(out) == resultCap {
			break
		}
	}
	return out
}

// Terms implements the term-source contract used by the matcher.
func (m *Miner) Terms(jobText string) []string {
	return m.Mine(jobText)
}

// pruneContained drops every term that is a strict substring of another term
// in the list, keeping the more specific phrase. First-seen order is
// preserved among survivors.
func pruneContained(terms []string) []string {
	out := make([]string, 0, len(terms))
	for i, t := range terms {
		contained := false
		for j, u := range terms {
			if i == j || len(u) <= len(t) {
				continue
			}
			if strings.Contains(u, t) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, t)
		}
	}
	return out
}

// fuzzyHint reports whether a single word relates to the tech-hint
// vocabulary, by containment in either direction.
func (m *Miner) fuzzyHint(word string) bool {
	for _, h := range m.techHints {
		if strings.Contains(word, h) || strings.Contains(h, word) {
			return true
		}
	}
	return false
}

// containsHint reports whether any tech hint appears inside the phrase.
func (m *Miner) containsHint(phrase string) bool {
	for _, h := range m.techHints {
		if strings.Contains(phrase, h) {
			return true
		}
	}
	return false
}

func (m *Miner) skipInPhrase(word string) bool {
	return m.stopwords[word] || m.verbish[word] || m.softKill[word]
}

func (m *Miner) hasConnector(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if m.connectors[w] {
			return true
		}
	}
	return false
}

func (m *Miner) startsVerbish(term string) bool {
	fields := strings.Fields(term)
	return len(fields) > 0 && m.verbish[fields[0]]
}

func hasSingleLetterToken(term string) bool {
	for _, f := range strings.Fields(term) {
		if len(f) == 1 {
			return true
		}
	}
	return false
}
