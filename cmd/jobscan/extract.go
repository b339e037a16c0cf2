package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobscan/internal/config"
	"github.com/jonathan/jobscan/internal/db"
	"github.com/jonathan/jobscan/internal/ingest"
	"github.com/jonathan/jobscan/internal/observability"
	"github.com/jonathan/jobscan/internal/pipeline"
	"github.com/jonathan/jobscan/internal/requirements"
	"github.com/jonathan/jobscan/internal/schemas"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract typed requirements from a job posting",
	Long: `Extract segments a job posting and pulls out typed requirements: years of
experience, degrees, certifications, tools and skills, and soft skills, each
classified as must-have or preferred.

The posting comes from a text file, an HTML file (the job description region
is located automatically), or a URL. Configuration can be loaded from a JSON
file using --config; command-line arguments override config file values.`,
	RunE: runExtract,
}

var (
	extractConfigPath  string
	extractJob         string
	extractJobURL      string
	extractSelection   string
	extractBatch       string
	extractConcurrency int
	extractUseBrowser  bool
	extractVerbose     bool
	extractJSON        bool
	extractCheckSchema bool
	extractSave        bool
	extractDatabaseURL string
)

func init() {
	extractCmd.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	extractCmd.Flags().StringVarP(&extractJob, "job", "j", "", "Path to job posting text or HTML file (mutually exclusive with --job-url)")
	extractCmd.Flags().StringVarP(&extractJobURL, "job-url", "u", "", "URL to fetch job posting from (mutually exclusive with --job)")
	extractCmd.Flags().StringVarP(&extractSelection, "selection", "s", "", "Manually selected posting text; overrides detection when at least 30 characters")
	extractCmd.Flags().StringVarP(&extractBatch, "batch", "b", "", "Path to a file listing job posting files or URLs, one per line")
	extractCmd.Flags().IntVar(&extractConcurrency, "concurrency", 0, "Parallel scans in batch mode (default 4)")
	extractCmd.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Emit JSON instead of the formatted report")
	extractCmd.Flags().BoolVar(&extractCheckSchema, "check-schema", false, "Validate JSON output against the requirements schema")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "Persist the scan to the database")
	extractCmd.Flags().StringVar(&extractDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergedConfig(cmd, extractConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("job") {
			cfg.Job = extractJob
		}
		if cmd.Flags().Changed("job-url") {
			cfg.JobURL = extractJobURL
		}
		if cmd.Flags().Changed("use-browser") {
			cfg.UseBrowser = extractUseBrowser
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = extractVerbose
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Concurrency = extractConcurrency
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DatabaseURL = extractDatabaseURL
		}
	})
	if err != nil {
		return err
	}

	scanner := pipeline.New()

	if extractBatch != "" {
		if cfg.Job != "" || cfg.JobURL != "" {
			return fmt.Errorf("--batch is mutually exclusive with --job and --job-url")
		}
		return runExtractBatch(ctx, scanner, cfg)
	}

	text, confidence, tag, err := loadJobText(ctx, scanner, jobInput{
		Path:       cfg.Job,
		URL:        cfg.JobURL,
		Selection:  extractSelection,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return err
	}

	result := scanner.ScanText(text)
	result.Confidence = confidence
	result.SourceTag = tag

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintDetection(tag, confidence, len(text))
		printer.PrintRequirements(result.Requirements)
	}

	if extractSave {
		if err := saveExtractScan(ctx, cfg, result); err != nil {
			return err
		}
	}

	if extractCheckSchema {
		if err := checkRequirementsSchema(result.Requirements); err != nil {
			return err
		}
	}

	if extractJSON {
		return printJSON(result)
	}

	if tag != "" {
		fmt.Fprintf(os.Stdout, "Source: %s (confidence %d)\n\n", tag, confidence)
	}
	fmt.Fprintln(os.Stdout, result.Formatted)
	return nil
}

// runExtractBatch scans every posting file or URL named in the batch list
// concurrently and emits a JSON array in input order.
func runExtractBatch(ctx context.Context, scanner *pipeline.Scanner, cfg config.Config) error {
	paths, err := readBatchList(extractBatch)
	if err != nil {
		return err
	}

	texts := make([]string, len(paths))
	for i, path := range paths {
		var cleaned string
		var err error
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			cleaned, _, err = ingest.FromURL(ctx, path, cfg.UseBrowser, cfg.Verbose)
		} else {
			cleaned, _, err = ingest.FromFile(path)
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		texts[i] = cleaned
	}

	results, err := scanner.ScanAll(ctx, texts, cfg.Concurrency)
	if err != nil {
		return err
	}

	if extractJSON {
		return printJSON(results)
	}
	for i, result := range results {
		fmt.Fprintf(os.Stdout, "=== %s ===\n%s\n", paths[i], result.Formatted)
	}
	return nil
}

// readBatchList reads a batch file: one posting path per line, blank lines
// and #-comments skipped.
func readBatchList(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch list: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("batch list %s names no postings", path)
	}
	return paths, nil
}

// saveExtractScan persists an anonymous scan record.
func saveExtractScan(ctx context.Context, cfg config.Config, result pipeline.ScanResult) error {
	database, err := connectDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	scan, err := database.SaveScan(ctx, &db.ScanCreateInput{
		JobURL:       cfg.JobURL,
		SourceTag:    result.SourceTag,
		Confidence:   result.Confidence,
		Requirements: result.Requirements,
	})
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Saved scan %s\n", scan.ID)
	return nil
}

// checkRequirementsSchema validates an extraction result against the
// requirements JSON schema.
func checkRequirementsSchema(result requirements.Result) error {
	buf, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode requirements: %w", err)
	}

	schemaPath := schemas.ResolveSchemaPath("schemas/requirements_result.schema.json")
	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if err := schemas.ValidateJSONString(string(schemaContent), string(buf)); err != nil {
		return fmt.Errorf("output failed schema validation: %w", err)
	}
	return nil
}

// printJSON writes indented JSON to stdout.
func printJSON(v any) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(buf))
	return nil
}
