package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xtding233/legend-sim/internal/climb"
	"github.com/xtding233/legend-sim/internal/ladder"
)

var ladderCmd = &cobra.Command{
	Use:   "ladder",
	Short: "Print the star map with floors and the streak cutoff",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, _, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return printLadder(cmd.OutOrStdout(), settings.Params)
	},
}

func printLadder(out io.Writer, p climb.Params) error {
	m := ladder.Build(p.Ladder)
	rules, err := climb.NewRules(m, p)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFIRST STAR\tSTARS\tFLOOR\tSTREAKS")
	for _, rank := range m.Ranks() {
		first, _ := m.MinStars(rank)
		floor := ""
		if rules.Floors[first] {
			floor = "yes"
		}
		streaks := "yes"
		if first >= rules.StreakCutoff {
			streaks = "no"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", rank, first, m.BandWidth(rank), floor, streaks)
	}
	fmt.Fprintf(tw, "Legend\t%d\t\t\t\n", m.Legend())
	return tw.Flush()
}
