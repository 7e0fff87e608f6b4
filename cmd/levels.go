package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/mastery"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels with their lock state and best results",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer env.Close()

		gate := mastery.NewGate(env.catalog, env.progress.All(cmd.Context()))
		return printLevels(cmd.OutOrStdout(), env.catalog, gate)
	},
}

func printLevels(w io.Writer, cat *catalog.Catalog, gate *mastery.Gate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tQUESTIONS\tPASS\tSTATE\tSTARS\tBEST")
	for _, l := range cat.Levels() {
		best, stars := "-", "-"
		if p, ok := gate.Progress(l.ID); ok {
			best = fmt.Sprintf("%d%%", p.Accuracy)
			if p.AvgTime != nil {
				best += fmt.Sprintf(" %.1fs", *p.AvgTime)
			}
			stars = fmt.Sprintf("%d/3", p.Stars)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d%%\t%s\t%s\t%s\n",
			l.ID, l.Name, l.Type, l.QuestionCount, l.PassingScore, gate.State(l.ID).Label(), stars, best)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d/%d levels unlocked, %d/%d stars", gate.UnlockedCount(), cat.Len(), gate.TotalStars(), gate.MaxStars())
	if gate.IsAllComplete() {
		fmt.Fprint(w, ", all levels passed: diploma available")
	}
	fmt.Fprintln(w)
	return nil
}
