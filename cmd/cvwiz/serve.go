package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohitmishra786/cv-wiz/internal/config"
	"github.com/mohitmishra786/cv-wiz/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for profile management, resume compilation, and cover letter generation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := config.NewSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if servePort > 0 {
		settings.Port = servePort
	}

	srv, err := server.New(settings)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
