// Package main provides the entry point for the CV-Wiz resume tailoring service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvwiz",
	Short: "CV-Wiz resume tailoring service",
	Long:  "CV-Wiz scores a user's career profile against a job description, selects the most relevant entries per template, and serves tailored resumes and cover letters via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
