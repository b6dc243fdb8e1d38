package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohitmishra786/cv-wiz/internal/compile"
	"github.com/mohitmishra786/cv-wiz/internal/ingest"
	"github.com/mohitmishra786/cv-wiz/internal/render"
	"github.com/mohitmishra786/cv-wiz/internal/scoring"
	"github.com/mohitmishra786/cv-wiz/internal/types"
)

var compileCommand = &cobra.Command{
	Use:   "compile",
	Short: "Tailor a profile to a job description without the server",
	Long: `Compile a resume locally from a profile JSON file and a job posting,
without a database or a running server. Useful for trying out templates and
inspecting how entries are scored and selected.`,
	RunE: runCompileCmd,
}

var (
	compileProfile  string
	compileJob      string
	compileJobURL   string
	compileTemplate string
	compilePDF      string
	compileMaxPages int
)

func init() {
	compileCommand.Flags().StringVarP(&compileProfile, "profile", "p", "", "Path to profile JSON file (required)")
	compileCommand.Flags().StringVarP(&compileJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	compileCommand.Flags().StringVar(&compileJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	compileCommand.Flags().StringVarP(&compileTemplate, "template", "t", "", "Template name (defaults to the profile's setting)")
	compileCommand.Flags().StringVar(&compilePDF, "pdf", "", "Write rendered PDF to this path")
	compileCommand.Flags().IntVar(&compileMaxPages, "max-pages", 1, "Maximum PDF pages")

	_ = compileCommand.MarkFlagRequired("profile")
	rootCmd.AddCommand(compileCommand)
}

func runCompileCmd(cmd *cobra.Command, _ []string) error {
	if (compileJob == "") == (compileJobURL == "") {
		return fmt.Errorf("exactly one of --job or --job-url is required")
	}

	raw, err := os.ReadFile(compileProfile)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	var profile types.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobDescription, err := loadJobDescription(ctx)
	if err != nil {
		return err
	}

	var renderer compile.Renderer
	if compilePDF != "" {
		renderer = render.NewPDFRenderer()
	}
	compiler := compile.New(scoring.NewContextCache(scoring.DefaultCacheSize), renderer, compileMaxPages)

	resp := compiler.Compile(ctx, &profile, types.ResumeRequest{
		JobDescription: jobDescription,
		Template:       compileTemplate,
		RenderPDF:      compilePDF != "",
	})
	if !resp.Success {
		return fmt.Errorf("compilation failed: %s", resp.Error)
	}

	if compilePDF != "" {
		pdf, err := base64.StdEncoding.DecodeString(resp.PDFBase64)
		if err != nil {
			return fmt.Errorf("failed to decode PDF: %w", err)
		}
		if err := os.WriteFile(compilePDF, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", compilePDF, len(pdf))
	}

	out, err := json.MarshalIndent(resp.ResumeJSON, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func loadJobDescription(ctx context.Context) (string, error) {
	if compileJob != "" {
		raw, err := os.ReadFile(compileJob)
		if err != nil {
			return "", fmt.Errorf("failed to read job posting: %w", err)
		}
		return string(raw), nil
	}
	text, err := ingest.JobDescription(ctx, compileJobURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return text, nil
}
