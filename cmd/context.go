package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/bindery/internal/config"
)

func withConfig(cmd *cobra.Command, cfg *config.Config) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, cfg)
}

// configFrom returns the configuration loaded by setup, or defaults.
func configFrom(cmd *cobra.Command) *config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(contextKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.NewConfig()
}
