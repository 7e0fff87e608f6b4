package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics from the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		env, err := openEnv(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer env.Close()

		events := env.store.EventRepo()
		if sessionID != "" {
			return printSessionAnswers(cmd.Context(), cmd.OutOrStdout(), events, sessionID)
		}
		return printStats(cmd.Context(), cmd.OutOrStdout(), env.catalog, events, limit)
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent sessions to show")
	statsCmd.Flags().String("session", "", "Show every answer of one session")
}

func printStats(ctx context.Context, w io.Writer, cat *catalog.Catalog, events store.EventRepo, limit int) error {
	sessions, err := events.RecentSessions(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recent sessions")
	if len(sessions) == 0 {
		fmt.Fprintln(w, "  (none yet)")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tLEVEL\tCORRECT\tACCURACY\tAVG TIME\tSTARS\tSESSION")
		for _, s := range sessions {
			name := fmt.Sprintf("%d", s.LevelID)
			if l, ok := cat.Get(s.LevelID); ok {
				name = fmt.Sprintf("%d %s", l.ID, l.Name)
			}
			fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d%%\t%.1fs\t%d\t%s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"), name,
				s.CorrectAnswers, s.Questions, s.Accuracy, s.AvgTime, s.Stars, s.SessionID)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nAnswers per level")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tANSWERS\tCORRECT")
	for _, l := range cat.Levels() {
		acc, n, err := events.LevelAccuracy(ctx, l.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		fmt.Fprintf(tw, "%d %s\t%d\t%.0f%%\n", l.ID, l.Name, n, acc*100)
	}
	return tw.Flush()
}

func printSessionAnswers(ctx context.Context, w io.Writer, events store.EventRepo, sessionID string) error {
	answers, err := events.SessionAnswers(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(answers) == 0 {
		return fmt.Errorf("no answers recorded for session %q", sessionID)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tQUESTION\tEXPECTED\tGIVEN\tRESULT\tTIME")
	for i, a := range answers {
		result := "✓"
		if !a.Correct {
			result = "✗"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%.1fs\n",
			i+1, a.QuestionText, a.Expected, a.Given, result, float64(a.TimeMs)/1000)
	}
	return tw.Flush()
}
