// Package cli wires the command-line interface: flag parsing, settings
// loading, and the generation entry point.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagInput   string
	flagOutput  string
	flagAPIKey  string
)

// rootCmd is the base command for gw2yaml.
var rootCmd = &cobra.Command{
	Use:   "gw2yaml",
	Short: "Generate an Archipelago player options template from a Guild Wars 2 account",
	Long: `gw2yaml fetches character and story data from the Guild Wars 2 API and
generates an Archipelago weighted-options YAML template: one weighted entry
and one set of conditional triggers per selected character, with quest
budgets adjusted for story progress already made.

The account access token and the character selection come from the input
document (input.yaml by default); client tuning and file locations come from
an optional gw2yaml.toml settings file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Invoking the tool with no subcommand runs a generation; that is the
	// tool's whole job. Help is still available via --help.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("GW2YAML_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("GW2YAML_QUIET") != "" {
			flagQuiet = true
		}

		jsonFormat := os.Getenv("GW2YAML_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: GW2YAML_VERBOSE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: GW2YAML_QUIET)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to gw2yaml.toml settings file")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Path to the character selection document (default from settings)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Path the generated template is written to (default from settings)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Guild Wars 2 API access token (overrides api_key in the input document)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
