package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addStats(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streak, entry count and this week's average mood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}

			st := e.journal.Stats()

			week := "no data"
			if st.WeeklyAverage != nil {
				week = fmt.Sprintf("%.1f  %s", *st.WeeklyAverage, moodLabel(st.WeeklyMood))
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("Entries"), st.TotalEntries)
			tbl.AddRow(bold.Sprint("Streak"), plural(st.Streak, "day"))
			tbl.AddRow(bold.Sprint("This week"), week)
			fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addTrend(topLevel *cobra.Command, e *env) {
	var days int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the average mood per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := e.active(cmd); err != nil {
				return err
			}

			points := e.journal.Trend()
			title(cmd.OutOrStdout(), "Trend", len(points))
			if days > 0 && len(points) > days {
				points = points[len(points)-days:]
			}
			if len(points) == 0 {
				none(cmd.OutOrStdout())
				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("DAY"), bold.Sprint("MOOD"), bold.Sprint("AVG"), "")
			for _, p := range points {
				bar := strings.Repeat("#", int(math.Round(p.Average*2)))
				tbl.AddRow(p.Day.Format("Mon Jan 2"), moodLabel(p.Mood), fmt.Sprintf("%.1f", p.Average), moodColor(p.Mood).Sprint(bar))
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 14, "number of most recent days, 0 for all")

	topLevel.AddCommand(cmd)
}
