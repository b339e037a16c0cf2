package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobscan/internal/config"
	"github.com/jonathan/jobscan/internal/db"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage saved resumes in the database",
	Long: `Resume manages the per-user saved resume that match falls back to when no
inline resume is given. Users are addressed by email; this talks to the
database directly and does not go through the API's authentication.`,
}

var (
	resumeEmail       string
	resumeFile        string
	resumeDatabaseURL string
)

var resumeSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save or replace a user's resume from a file",
	RunE:  runResumeSave,
}

var resumeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a user's saved resume",
	RunE:  runResumeShow,
}

var resumeDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user's saved resume",
	RunE:  runResumeDelete,
}

func init() {
	for _, sub := range []*cobra.Command{resumeSaveCmd, resumeShowCmd, resumeDeleteCmd} {
		sub.Flags().StringVar(&resumeEmail, "email", "", "Email of the user whose resume to manage (required)")
		sub.Flags().StringVar(&resumeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
		resumeCmd.AddCommand(sub)
	}
	resumeSaveCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Path to the resume text file (required)")

	rootCmd.AddCommand(resumeCmd)
}

func runResumeSave(cmd *cobra.Command, _ []string) error {
	if resumeEmail == "" {
		return fmt.Errorf("--email is required")
	}
	if resumeFile == "" {
		return fmt.Errorf("--file is required")
	}

	body, err := readResume(resumeFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, userID, err := resolveResumeUser(ctx, resumeEmail)
	if err != nil {
		return err
	}
	defer database.Close()

	r, err := database.SaveResume(ctx, userID, body)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved resume %s for %s (%d chars)\n", r.ID, resumeEmail, len(r.Body))
	return nil
}

func runResumeShow(cmd *cobra.Command, _ []string) error {
	if resumeEmail == "" {
		return fmt.Errorf("--email is required")
	}

	ctx := context.Background()
	database, userID, err := resolveResumeUser(ctx, resumeEmail)
	if err != nil {
		return err
	}
	defer database.Close()

	r, err := database.GetResume(ctx, userID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no saved resume for %s", resumeEmail)
	}
	fmt.Fprintln(os.Stdout, r.Body)
	return nil
}

func runResumeDelete(cmd *cobra.Command, _ []string) error {
	if resumeEmail == "" {
		return fmt.Errorf("--email is required")
	}

	ctx := context.Background()
	database, userID, err := resolveResumeUser(ctx, resumeEmail)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteResume(ctx, userID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Deleted resume for %s\n", resumeEmail)
	return nil
}

// resolveResumeUser connects to the database and looks up the user by email.
func resolveResumeUser(ctx context.Context, email string) (*db.DB, uuid.UUID, error) {
	database, err := connectDatabase(ctx, config.Config{DatabaseURL: resumeDatabaseURL})
	if err != nil {
		return nil, uuid.Nil, err
	}

	user, err := database.GetUserByEmail(ctx, email)
	if err != nil {
		database.Close()
		return nil, uuid.Nil, err
	}
	if user == nil {
		database.Close()
		return nil, uuid.Nil, fmt.Errorf("no user with email %s", email)
	}
	return database, user.ID, nil
}
