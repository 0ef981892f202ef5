package main

// @title           Shelfshare Catalog API
// @version         1.0
// @description     Authors, books, countries, reviewers and reviews of the Shelfshare catalog.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/logger"
)

// Set via -ldflags at build time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-api",
	Short: "Shelfshare catalog HTTP service",
	// Running without a subcommand starts the server.
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("catalog-api %s (%s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and installs the global logger.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, nil
}
