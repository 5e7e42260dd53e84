package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/autodoc/internal/config"
	"github.com/mvp-joe/autodoc/internal/logging"
	"github.com/spf13/cobra"
)

var (
	projectDir string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autodoc",
	Short: "Autodoc - documentation and literate tests for JavaScript libraries",
	Long: `Autodoc reads the doc comments of a JavaScript project, associates each
with the function that follows it and generates an HTML site with the
documented API, runnable examples and benchmark definitions.

Configuration lives in .autodoc/config.yml and can be overridden with
AUTODOC_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "project root (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadProject resolves the project root and loads its configuration.
func loadProject() (string, *config.Config, error) {
	rootDir := projectDir
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		rootDir = wd
	}
	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return "", nil, err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return rootDir, cfg, nil
}
