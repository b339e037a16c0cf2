// Package detect scores candidate content regions of a page and selects the
// one most likely to hold the job description.
package detect

import (
	"math"
	"strings"

	"github.com/jonathan/jobscan/internal/segment"
	"github.com/jonathan/jobscan/internal/vocab"
)

// Region is a candidate content region with its structural signals.
// Width and Height of 0 mean the rendered size is unknown; unknown sizes are
// not filtered out.
type Region struct {
	Text             string
	Width            int
	Height           int
	BulletCount      int
	LinkCount        int
	FormControlCount int
	Tag              string
}

// Options holds the tunable constants of the detector. The calibration
// divisor has no derivation beyond "a strong match tops out near 100"; it is
// configuration, not law.
type Options struct {
	MinTextLength      int     // regions shorter than this are disqualified
	MinWidth           int     // regions narrower than this are skipped
	MinHeight          int     // regions shorter (rendered) than this are skipped
	ConfidenceDivisor  float64 // score-to-confidence calibration
	LinkDensityLimit   float64 // links per character above which the region looks like navigation
	FormControlLimit   int     // form controls above which the region looks like filter UI
	DisqualifiedScore  float64 // score assigned to regions under the length floor
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		MinTextLength:     600,
		MinWidth:          200,
		MinHeight:         200,
		ConfidenceDivisor: 18,
		LinkDensityLimit:  0.02,
		FormControlLimit:  8,
		DisqualifiedScore: -999,
	}
}

// Detector selects the best job-description region among candidates.
type Detector struct {
	opts         Options
	headingHints []string
}

// New creates a detector with the given options.
func New(opts Options) *Detector {
	return &Detector{
		opts:         opts,
		headingHints: vocab.MustTable("heading_hints"),
	}
}

// NewDefault creates a detector with default options.
func NewDefault() *Detector {
	return New(DefaultOptions())
}

// Score computes the detection score for a single region.
func (d *Detector) Score(r Region) float64 {
	text := strings.TrimSpace(r.Text)
	if len(text) < d.opts.MinTextLength {
		return d.opts.DisqualifiedScore
	}

	lengthScore := math.Min(float64(len(text))/1200, 6)
	bulletScore := math.Min(float64(r.BulletCount)/6, 6)

	normalized := segment.Normalize(text)
	hintHits := 0
	for _, hint := range d.headingHints {
		if strings.Contains(normalized, hint) {
			hintHits++
		}
	}
	hintScore := math.Min(float64(hintHits), 8)

	linkPenalty := 0.0
	if float64(r.LinkCount)/float64(len(text)+1) > d.opts.LinkDensityLimit {
		linkPenalty = 6
	}

	uiPenalty := 0.0
	if r.FormControlCount > d.opts.FormControlLimit {
		uiPenalty = 3
	}

	return lengthScore + bulletScore + hintScore - linkPenalty - uiPenalty
}

// Detect returns the highest-scoring candidate region and its score, or nil
// when no candidate clears the disqualification floor. Candidates with a
// known rendered size under the minimum are skipped. Ties go to the earlier
// candidate: comparison is strict and regions are visited in document order.
func (d *Detector) Detect(regions []Region) (*Region, float64) {
	var best *Region
	bestScore := d.opts.DisqualifiedScore

	for i := range regions {
		r := &regions[i]
		if sizeKnown(r) && (r.Width < d.opts.MinWidth || r.Height < d.opts.MinHeight) {
			continue
		}
		score := d.Score(*r)
		if score > bestScore {
			bestScore = score
			best = r
		}
	}

	if best == nil {
		return nil, d.opts.DisqualifiedScore
	}
	return best, bestScore
}

// Confidence maps a raw detection score to a 0-100 value.
func (d *Detector) Confidence(score float64) int {
	c := score / d.opts.ConfidenceDivisor
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return int(math.Round(c * 100))
}

// sizeKnown reports whether the region carries a rendered bounding size.
func sizeKnown(r *Region) bool {
	return r.Width > 0 && r.Height > 0
}
