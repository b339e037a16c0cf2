// Package main provides the jobscan command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscan",
	Short: "Job posting requirements scanner",
	Long:  "jobscan extracts typed requirements from job postings, mines candidate skills, and scores resumes against them, as a CLI or via the REST API server.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
