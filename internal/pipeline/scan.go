// Package pipeline composes the scan stages: locate the job description,
// segment it, extract requirements, and score resumes against the result.
package pipeline

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobscan/internal/detect"
	"github.com/jonathan/jobscan/internal/match"
	"github.com/jonathan/jobscan/internal/mining"
	"github.com/jonathan/jobscan/internal/requirements"
	"github.com/jonathan/jobscan/internal/segment"
)

// MinSelectionLength is the shortest manual text selection that overrides
// automatic detection. Anything shorter is treated as an accidental
// selection and ignored.
const MinSelectionLength = 30

// DefaultScanConcurrency bounds parallel batch scans.
const DefaultScanConcurrency = 4

// Scanner wires the pipeline stages together. It is safe for concurrent use;
// every method re-derives its output from its inputs.
type Scanner struct {
	detector  *detect.Detector
	extractor *requirements.Extractor
	miner     *mining.Miner
	matcher   *match.Matcher
}

// New builds a Scanner with default detection options.
func New() *Scanner {
	return &Scanner{
		detector:  detect.NewDefault(),
		extractor: requirements.New(),
		miner:     mining.New(),
		matcher:   match.New(),
	}
}

// ScanResult is the outcome of one requirements scan.
type ScanResult struct {
	Requirements requirements.Result `json:"requirements"`
	Formatted    string              `json:"formatted"`
	Confidence   int                 `json:"confidence"`
	SourceTag    string              `json:"source_tag,omitempty"`
}

// ScanText segments plain text and extracts requirements from it.
func (s *Scanner) ScanText(text string) ScanResult {
	blocks := segment.Blocks(text)
	result := s.extractor.Extract(blocks)
	return ScanResult{
		Requirements: result,
		Formatted:    requirements.Format(result),
	}
}

// ScanHTML locates the job-description region in an HTML document, then
// scans its text. When no region qualifies the whole body is used with zero
// confidence.
func (s *Scanner) ScanHTML(html string) (ScanResult, error) {
	text, confidence, tag, err := s.detector.FromHTML(html)
	if err != nil {
		return ScanResult{}, err
	}
	result := s.ScanText(text)
	result.Confidence = confidence
	result.SourceTag = tag
	return result, nil
}

// DetectText locates the job-description region in an HTML document and
// returns its text with the detection confidence and source tag.
func (s *Scanner) DetectText(html string) (string, int, string, error) {
	return s.detector.FromHTML(html)
}

// ScanAll scans several texts concurrently, preserving input order. A
// concurrency of zero or less uses the default limit.
func (s *Scanner) ScanAll(ctx context.Context, texts []string, concurrency int) ([]ScanResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultScanConcurrency
	}
	results := make([]ScanResult, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.ScanText(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ResolveText applies the manual-selection override: a selection of at least
// MinSelectionLength characters takes precedence over the document text.
func ResolveText(docText, selection string) string {
	if len(strings.TrimSpace(selection)) >= MinSelectionLength {
		return selection
	}
	return docText
}

// RequirementsSource returns the structured term source: segment, extract,
// and flatten the labeled requirement names.
func (s *Scanner) RequirementsSource() match.TermSource {
	return match.SourceFunc(func(jobText string) []string {
		return s.extractor.Extract(segment.Blocks(jobText)).Terms()
	})
}

// MiningSource returns the flat candidate-skill term source.
func (s *Scanner) MiningSource() match.TermSource {
	return s.miner
}

// MatchResume scores a resume against job text using the given term source,
// with the category breakdown included.
func (s *Scanner) MatchResume(resume, jobText string, source match.TermSource) match.BucketedResult {
	return s.matcher.MatchBuckets(resume, source.Terms(jobText))
}
