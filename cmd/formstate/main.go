package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/logging"
)

type sourceFlags struct {
	file      string
	form      string
	openapi   string
	operation string
	messages  string
}

var (
	verbose bool
	source  sourceFlags
)

var rootCmd = &cobra.Command{
	Use:   "formstate",
	Short: "Fill and check forms described by descriptor files",
	Long: `formstate loads form descriptors from YAML, JSON or TOML catalogs, or
derives them from an OpenAPI operation, and runs them through the field
state engine.

  fill   prompts for every field interactively
  check  validates a file of values in batch`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	flags.StringVarP(&source.file, "file", "f", "", "descriptor file or directory")
	flags.StringVar(&source.form, "form", "", "form id inside the descriptor catalog")
	flags.StringVar(&source.openapi, "openapi", "", "OpenAPI document to derive descriptors from")
	flags.StringVar(&source.operation, "operation", "", "OpenAPI operation id")
	flags.StringVar(&source.messages, "messages", "", "YAML map of translation keys to message templates")

	rootCmd.AddCommand(fillCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "formstate: %v\n", err)
		os.Exit(1)
	}
}
