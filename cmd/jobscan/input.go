package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobscan/internal/ingest"
	"github.com/jonathan/jobscan/internal/pipeline"
)

// jobInput names one job posting source: a local text or HTML file, or a URL.
// Exactly one of Path and URL must be set.
type jobInput struct {
	Path       string
	URL        string
	Selection  string
	UseBrowser bool
	Verbose    bool
}

func (in jobInput) validate() error {
	if in.Path == "" && in.URL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if in.Path != "" && in.URL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	return nil
}

// loadJobText resolves a job input to plain text. HTML files go through
// region detection and report its confidence; everything else is cleaned
// text with zero confidence. A sufficiently long --selection overrides both.
func loadJobText(ctx context.Context, scanner *pipeline.Scanner, in jobInput) (text string, confidence int, tag string, err error) {
	if err := in.validate(); err != nil {
		return "", 0, "", err
	}

	if in.URL != "" {
		fetched, _, err := ingest.FromURL(ctx, in.URL, in.UseBrowser, in.Verbose)
		if err != nil {
			return "", 0, "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return pipeline.ResolveText(fetched, in.Selection), 0, "url", nil
	}

	ext := strings.ToLower(filepath.Ext(in.Path))
	if ext == ".html" || ext == ".htm" {
		raw, err := os.ReadFile(in.Path)
		if err != nil {
			return "", 0, "", fmt.Errorf("failed to read job posting: %w", err)
		}
		if pipeline.ResolveText("", in.Selection) != "" {
			return in.Selection, 0, "selection", nil
		}
		return scanner.DetectText(string(raw))
	}

	cleaned, _, err := ingest.FromFile(in.Path)
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to read job posting: %w", err)
	}
	return pipeline.ResolveText(cleaned, in.Selection), 0, "", nil
}

// readResume loads and lightly cleans a resume text file.
func readResume(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	return ingest.CleanText(string(raw)), nil
}
