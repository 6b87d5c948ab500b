package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/bindery/internal/styles"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Run the demo quietly and print bus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := newWorkspace(configFrom(cmd))
			if err != nil {
				return err
			}
			defer ws.close()

			if _, err := runDemo(io.Discard, ws); err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), ws)
		},
	}
}

func printStats(w io.Writer, ws *workspace) error {
	t := styles.CurrentTheme()
	s := ws.hub.Bus.Stats()

	fmt.Fprintln(w, t.S().Title.Render(fmt.Sprintf("Bus %s", s.Name)))
	fmt.Fprintf(w, "  published:   %d\n", s.Published)
	fmt.Fprintf(w, "  delivered:   %d\n", s.Delivered)
	fmt.Fprintf(w, "  shape drops: %d\n", s.ShapeDrops)
	fmt.Fprintf(w, "  purged:      %d\n", s.Purged)
	fmt.Fprintf(w, "  panics:      %d\n", s.Panics)
	fmt.Fprintf(w, "  topics:      %d\n", s.Topics)
	fmt.Fprintln(w)

	families, err := ws.hub.Gatherer().Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	fmt.Fprintln(w, t.S().Title.Render("Metrics"))
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("  %s{%s} %g",
				mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	slices.Sort(lines)
	for _, line := range lines {
		fmt.Fprintln(w, t.S().Muted.Render(line))
	}
	return nil
}
