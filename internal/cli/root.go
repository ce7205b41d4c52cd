package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/lcaengine/internal/config"
	"github.com/rshade/lcaengine/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // set once per command in setupLogging

// NewRootCmd creates the root command for the lca CLI. It loads the
// configuration, sets up logging and registers the calculate, factors,
// value and config command groups.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "lca",
		Short:         "Life cycle assessment for metallurgical processes",
		Long:          "lca: calculate environmental impact indicators from process inventories",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				if _, ok := cmd.Annotations[annotationIgnoreConfigErrors]; !ok {
					return err
				}
				cmd.PrintErrf("Warning: ignoring configuration: %v\n", err)
				cfg = config.New()
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $LCA_CONFIG or ~/.lca/config.yaml)")
	cmd.PersistentFlags().String("catalog", "", "YAML reference-factor catalog merged onto the built-in one")
	cmd.AddCommand(NewCalculateCmd(), newFactorsCmd(), NewValueCmd(), newConfigCmd())

	return cmd
}

// annotationIgnoreConfigErrors marks commands that still run, with
// defaults, when the configuration file cannot be loaded.
const annotationIgnoreConfigErrors = "lca/ignore-config-errors"

// loadConfig reads the file named by --config, falling back to the
// default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

const rootCmdExample = `  # Calculate impacts for an inventory in one region
  lca calculate -f smelter.yaml --region "United States"

  # Add uncertainty and sensitivity analysis, JSON output
  lca calculate -f smelter.yaml --uncertainty --sensitivity --output json

  # Run a seeded Monte Carlo uncertainty analysis
  lca calculate -f smelter.yaml --monte-carlo 2000 --seed 7

  # Look up a reference factor
  lca factors emission CO2 "Grid Electricity" --region China

  # Value recoverable materials at LME prices
  lca value -f smelter.yaml --market LME

  # Write a default configuration file
  lca config init`

// newFactorsCmd creates the factors command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "factors", Short: "Reference factor lookup and data quality commands"}
	cmd.AddCommand(
		NewFactorsEmissionCmd(), NewFactorsLookupCmd(),
		NewFactorsCurrencyCmd(), NewFactorsQualityCmd(),
	)
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
