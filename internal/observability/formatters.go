// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobscan/internal/match"
	"github.com/jonathan/jobscan/internal/requirements"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDetection outputs where the posting text came from and how confident
// the detector was about it.
func (p *Printer) PrintDetection(sourceTag string, confidence int, textLen int) {
	if sourceTag == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:     %s\n", sourceTag))
	sb.WriteString(fmt.Sprintf("Confidence: %d\n", confidence))
	sb.WriteString(fmt.Sprintf("Text:       %d chars", textLen))

	p.printBox("DETECTED JOB DESCRIPTION", sb.String())
}

// PrintRequirements outputs a summary of the extracted requirements by
// category.
func (p *Printer) PrintRequirements(result requirements.Result) {
	if result.IsEmpty() {
		p.printBox("EXTRACTED REQUIREMENTS", "(none found)")
		return
	}

	var sb strings.Builder

	writeItems(&sb, "Tools / Systems", result.ToolsOrSystems)
	writeItems(&sb, "Hard Skills", result.HardSkills)
	writeItems(&sb, "Certifications", result.Certifications)

	if len(result.Degrees) > 0 {
		sb.WriteString("Degrees:\n")
		for i, d := range result.Degrees {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Degrees)-maxItemsToShow))
				break
			}
			line := d.Level
			if d.Field != "" {
				line += " in " + d.Field
			}
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", line, d.Importance))
		}
		sb.WriteString("\n")
	}

	if len(result.YearsExperience) > 0 {
		sb.WriteString("Years of Experience:\n")
		for i, y := range result.YearsExperience {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.YearsExperience)-maxItemsToShow))
				break
			}
			line := fmt.Sprintf("%d+ years", y.MinYears)
			if y.Domain != "" {
				line += " in " + y.Domain
			}
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", line, y.Importance))
		}
		sb.WriteString("\n")
	}

	writeItems(&sb, "Soft Skills", result.SoftSkills)

	p.printBox("EXTRACTED REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// writeItems appends one named category section, capped at maxItemsToShow.
func writeItems(sb *strings.Builder, title string, items []requirements.Item) {
	if len(items) == 0 {
		return
	}

	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s [%s]\n", items[i].Name, items[i].Importance))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintMatch outputs the resume match score with its found/missing breakdown.
func (p *Printer) PrintMatch(result match.BucketedResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d%%\n\n", result.Score))

	if len(result.Found) > 0 {
		sb.WriteString(fmt.Sprintf("Found (%d):\n", len(result.Found)))
		count := min(len(result.Found), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", result.Found[i]))
		}
		if len(result.Found) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Found)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(result.Missing) > 0 {
		sb.WriteString(fmt.Sprintf("Missing (%d):\n", len(result.Missing)))
		count := min(len(result.Missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", result.Missing[i]))
		}
		if len(result.Missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Missing)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	for _, bucket := range result.Buckets {
		sb.WriteString(fmt.Sprintf("%s: %d found, %d missing\n",
			bucket.Name, len(bucket.Found), len(bucket.Missing)))
	}

	p.printBox("RESUME MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMinedSkills outputs the candidate skills mined from free text.
func (p *Printer) PrintMinedSkills(terms []string) {
	if len(terms) == 0 {
		p.printBox("MINED SKILLS", "(none found)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Mined %d candidate skills:\n\n", len(terms)))

	count := min(len(terms), 2*maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", terms[i]))
	}
	if len(terms) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(terms)-count))
	}

	p.printBox("MINED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}
