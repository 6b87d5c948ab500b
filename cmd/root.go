// Package cmd provides the CLI commands for bindery.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/bindery/internal/config"
	"github.com/guilhermegouw/bindery/internal/debug"
)

type contextKey struct{}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindery",
		Short: "Weak pub/sub and edit sessions for observable entities",
		Long: `bindery wires observable entities to a process-wide message bus.

Components subscribe through proxies the bus only holds weakly, and edit
entities inside transactions that can be committed or cancelled. Run
"bindery demo" to see both working together.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
	}

	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging to the data directory")
	cmd.AddCommand(
		newDemoCmd(),
		newStatsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

// setup loads configuration and enables debug logging when requested.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		cfg = config.NewConfig()
	}

	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}
	if debugMode || cfg.Options.Debug {
		logPath := cfg.DebugLogPath()
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	cmd.SetContext(withConfig(cmd, cfg))
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	debug.Disable()
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
