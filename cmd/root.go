// Package cmd implements the transhub command line.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yrtrans/transhub/internal/config"
	"github.com/yrtrans/transhub/internal/store"
)

var (
	cfgFile   string
	workspace string
)

var rootCmd = &cobra.Command{
	Use:   "transhub",
	Short: "Resumable RNA-seq analysis pipeline",
	Long: `Transhub runs the RNA-seq analysis of a project in three stages:
alignment, read counting and differential expression. Completed stages are
checkpointed inside the project directory, an interrupted run resumes where
it stopped.`,
	SilenceUsage: true,
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", ".", "directory holding the projects")
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func projectStore() *store.Projects {
	return store.NewProjects(workspace)
}
