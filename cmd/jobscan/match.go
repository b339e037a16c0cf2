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
	"github.com/jonathan/jobscan/internal/match"
	"github.com/jonathan/jobscan/internal/observability"
	"github.com/jonathan/jobscan/internal/pipeline"
	"github.com/jonathan/jobscan/internal/schemas"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job posting",
	Long: `Match extracts the job posting's terms and reports which ones the resume
covers, as a 0-100 score with found/missing lists and a per-category
breakdown.

By default terms come from structured requirements extraction; --source mined
uses the flat candidate-skill miner instead.`,
	RunE: runMatch,
}

var (
	matchConfigPath  string
	matchJob         string
	matchJobURL      string
	matchResume      string
	matchSelection   string
	matchSource      string
	matchUseBrowser  bool
	matchVerbose     bool
	matchJSON        bool
	matchCheckSchema bool
	matchSave        bool
	matchDatabaseURL string
)

func init() {
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job posting text or HTML file (mutually exclusive with --job-url)")
	matchCmd.Flags().StringVarP(&matchJobURL, "job-url", "u", "", "URL to fetch job posting from (mutually exclusive with --job)")
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume text file")
	matchCmd.Flags().StringVarP(&matchSelection, "selection", "s", "", "Manually selected posting text; overrides detection when at least 30 characters")
	matchCmd.Flags().StringVar(&matchSource, "source", "structured", "Term source: structured or mined")
	matchCmd.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Emit JSON instead of the formatted report")
	matchCmd.Flags().BoolVar(&matchCheckSchema, "check-schema", false, "Validate JSON output against the match schema")
	matchCmd.Flags().BoolVar(&matchSave, "save", false, "Persist the scan to the database")
	matchCmd.Flags().StringVar(&matchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergedConfig(cmd, matchConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("job") {
			cfg.Job = matchJob
		}
		if cmd.Flags().Changed("job-url") {
			cfg.JobURL = matchJobURL
		}
		if cmd.Flags().Changed("resume") {
			cfg.Resume = matchResume
		}
		if cmd.Flags().Changed("use-browser") {
			cfg.UseBrowser = matchUseBrowser
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = matchVerbose
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DatabaseURL = matchDatabaseURL
		}
	})
	if err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if matchSource != "structured" && matchSource != "mined" {
		return fmt.Errorf("--source must be structured or mined, got %q", matchSource)
	}

	resume, err := readResume(cfg.Resume)
	if err != nil {
		return err
	}

	scanner := pipeline.New()
	jobText, confidence, tag, err := loadJobText(ctx, scanner, jobInput{
		Path:       cfg.Job,
		URL:        cfg.JobURL,
		Selection:  matchSelection,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return err
	}

	source := scanner.RequirementsSource()
	if matchSource == "mined" {
		source = scanner.MiningSource()
	}
	result := scanner.MatchResume(resume, jobText, source)

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintDetection(tag, confidence, len(jobText))
		if matchSource == "mined" {
			printer.PrintMinedSkills(source.Terms(jobText))
		}
		printer.PrintMatch(result)
	}

	if matchSave {
		if err := saveMatchScan(ctx, cfg, result, confidence, tag); err != nil {
			return err
		}
	}

	if matchCheckSchema {
		if err := checkMatchSchema(result); err != nil {
			return err
		}
	}

	if matchJSON {
		return printJSON(result)
	}

	printMatchReport(result, confidence, tag)
	return nil
}

// saveMatchScan persists an anonymous scan record with the match outcome.
func saveMatchScan(ctx context.Context, cfg config.Config, result match.BucketedResult, confidence int, tag string) error {
	database, err := connectDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	scan, err := database.SaveScan(ctx, &db.ScanCreateInput{
		JobURL:      cfg.JobURL,
		SourceTag:   tag,
		Confidence:  confidence,
		Score:       &result.Score,
		MatchResult: result,
	})
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Saved scan %s\n", scan.ID)
	return nil
}

// checkMatchSchema validates a match result against the match JSON schema.
func checkMatchSchema(result match.BucketedResult) error {
	buf, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode match result: %w", err)
	}

	schemaPath := schemas.ResolveSchemaPath("schemas/match_result.schema.json")
	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if err := schemas.ValidateJSONString(string(schemaContent), string(buf)); err != nil {
		return fmt.Errorf("output failed schema validation: %w", err)
	}
	return nil
}

func printMatchReport(result match.BucketedResult, confidence int, tag string) {
	if tag != "" {
		fmt.Fprintf(os.Stdout, "Source: %s (confidence %d)\n", tag, confidence)
	}
	fmt.Fprintf(os.Stdout, "Score: %d%%\n", result.Score)
	if len(result.Found) > 0 {
		fmt.Fprintf(os.Stdout, "Found: %s\n", strings.Join(result.Found, ", "))
	}
	if len(result.Missing) > 0 {
		fmt.Fprintf(os.Stdout, "Missing: %s\n", strings.Join(result.Missing, ", "))
	}
	for _, bucket := range result.Buckets {
		fmt.Fprintf(os.Stdout, "\n%s\n", bucket.Name)
		if len(bucket.Found) > 0 {
			fmt.Fprintf(os.Stdout, "  found: %s\n", strings.Join(bucket.Found, ", "))
		}
		if len(bucket.Missing) > 0 {
			fmt.Fprintf(os.Stdout, "  missing: %s\n", strings.Join(bucket.Missing, ", "))
		}
	}
}
