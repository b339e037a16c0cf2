// Package segment splits job-description text into an ordered sequence of
// typed blocks (heading, bullet, text) consumed by requirement extraction.
package segment

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobscan/internal/vocab"
)

// Kind classifies a line of job-description text.
type Kind string

// Block kinds. Order in the block sequence matters: a heading changes the
// importance context for the blocks that follow it.
const (
	KindHeading Kind = "heading"
	KindBullet  Kind = "bullet"
	KindText    Kind = "text"
)

// Block is a single classified line with its marker stripped.
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// maxHeadingLength is the longest line still considered a heading candidate.
const maxHeadingLength = 70

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	allCapsRe    = regexp.MustCompile(`^[A-Z\s]{6,}$`)
	bulletRe     = regexp.MustCompile(`^[-•*]\s+`)
	numberedRe   = regexp.MustCompile(`^\d+[.)]\s+`)
)

// Normalize lowercases text and collapses runs of whitespace to single spaces.
func Normalize(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(s), " "))
}

// Blocks splits text into classified blocks. Empty lines are dropped and
// internal whitespace is collapsed. Classification is line-local: heading
// first, then bullet, then plain text.
func Blocks(text string) []Block {
	headingHints := vocab.MustTable("heading_hints")

	var blocks []Block
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
		if line == "" {
			continue
		}

		switch {
		case isHeading(line, headingHints):
			blocks = append(blocks, Block{
				Kind: KindHeading,
				Text: strings.TrimSpace(strings.TrimSuffix(line, ":")),
			})
		case isBullet(line):
			stripped := bulletRe.ReplaceAllString(line, "")
			stripped = numberedRe.ReplaceAllString(stripped, "")
			blocks = append(blocks, Block{Kind: KindBullet, Text: strings.TrimSpace(stripped)})
		default:
			blocks = append(blocks, Block{Kind: KindText, Text: line})
		}
	}
	return blocks
}

// isHeading reports whether a line reads like a section heading: short, and
// either colon-terminated, shouted in all caps, or containing a known hint.
func isHeading(line string, hints []string) bool {
	if len(line) > maxHeadingLength {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if allCapsRe.MatchString(line) {
		return true
	}
	normalized := Normalize(line)
	for _, hint := range hints {
		if strings.Contains(normalized, hint) {
			return true
		}
	}
	return false
}

// isBullet reports whether a line starts with a bullet glyph or a
// numbered-list marker.
func isBullet(line string) bool {
	return bulletRe.MatchString(line) || numberedRe.MatchString(line)
}
