package detect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// candidateSelector enumerates the coarse structural containers considered as
// job-description candidates.
const candidateSelector = "main, article, section, div"

var bulletLineRe = regexp.MustCompile(`(?m)^\s*[-•*]\s+`)

// RegionsFromHTML parses HTML and derives a Region per coarse structural
// container, in document order. Script and style content is dropped before
// text extraction. Width and height are read from the element's width=/height=
// attributes when present; pages rarely carry them, so most regions report an
// unknown (zero) size.
func RegionsFromHTML(html string) ([]Region, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var regions []Region
	doc.Find(candidateSelector).Each(func(_ int, sel *goquery.Selection) {
		text := normalizeRegionText(sel.Text())
		regions = append(regions, Region{
			Text:             text,
			Width:            intAttr(sel, "width"),
			Height:           intAttr(sel, "height"),
			BulletCount:      sel.Find("li").Length() + len(bulletLineRe.FindAllString(text, -1)),
			LinkCount:        sel.Find("a").Length(),
			FormControlCount: sel.Find("input, select, textarea, button").Length(),
			Tag:              goquery.NodeName(sel),
		})
	})

	return regions, nil
}

// BodyText extracts the full body text of the document, used as the fallback
// when no region qualifies.
func BodyText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return normalizeRegionText(doc.Find("body").Text()), nil
}

// FromHTML runs detection over a raw HTML document. It returns the selected
// region text (or the whole body text when detection fails), the confidence
// value, and the tag of the selected container ("body" on fallback).
func (d *Detector) FromHTML(html string) (text string, confidence int, tag string, err error) {
	regions, err := RegionsFromHTML(html)
	if err != nil {
		return "", 0, "", err
	}

	region, score := d.Detect(regions)
	if region == nil {
		body, err := BodyText(html)
		if err != nil {
			return "", 0, "", err
		}
		return body, 0, "body", nil
	}

	return region.Text, d.Confidence(score), region.Tag, nil
}

// normalizeRegionText trims each line and drops blanks, keeping the newline
// structure the segmenter depends on.
func normalizeRegionText(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// intAttr reads an integer attribute, returning 0 when absent or malformed.
func intAttr(sel *goquery.Selection, name string) int {
	val, exists := sel.Attr(name)
	if !exists {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0
	}
	return n
}
