package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/bindery/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the global config file path",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), config.GlobalConfigPath())
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a field in the global config file",
			Long: `Set a field in the global config file using JSON path notation.

Examples:
  bindery config set bus.name main
  bindery config set bus.recover_panics true
  bindery config set edit.excluded_properties Notes,UpdatedAt`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], parseConfigValue(args[0], args[1])
				if err := configFrom(cmd).SetConfigField(key, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
				return nil
			},
		},
	)
	return cmd
}

// parseConfigValue converts command-line text to the JSON value stored
// under key.
func parseConfigValue(key, raw string) any {
	if strings.HasSuffix(key, "excluded_properties") {
		var names []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
		return names
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
