package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/mastery"
)

var diplomaCmd = &cobra.Command{
	Use:   "diploma",
	Short: "Submit the completion diploma",
	Long: `Submit the diploma once every level is passed. With server.url configured the
diploma is posted to that server; otherwise it is stored in the local database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		env, err := openEnv(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		snap := env.progress.All(ctx)
		gate := mastery.NewGate(env.catalog, snap)
		if !gate.IsAllComplete() {
			passed := 0
			for _, id := range env.catalog.IDs() {
				if gate.IsPassed(id) {
					passed++
				}
			}
			return fmt.Errorf("diploma requires every level passed (%d/%d so far)", passed, env.catalog.Len())
		}

		sub, err := diploma.Build(name, env.catalog, snap)
		if err != nil {
			return err
		}
		id, err := env.submitter().Submit(ctx, sub)
		if err != nil {
			return fmt.Errorf("submit diploma: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Diploma %s for %s: %d stars, %d%% average accuracy\n",
			id, sub.StudentName, sub.TotalStars, sub.AvgAccuracy)
		return nil
	},
}

var diplomaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diplomas stored in the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, logToStderr)
		if err != nil {
			return err
		}
		defer env.Close()

		list, err := diploma.NewService(env.store.DiplomaRepo(), env.log).List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No diplomas yet.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "COMPLETED\tSTUDENT\tSTARS\tACCURACY\tID")
		for _, d := range list {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d%%\t%s\n",
				d.CompletedAt.Local().Format("2006-01-02 15:04"), d.StudentName, d.TotalStars, d.AvgAccuracy, d.ID)
		}
		return tw.Flush()
	},
}

func init() {
	diplomaCmd.Flags().String("name", "", "Student name (required)")
	_ = diplomaCmd.MarkFlagRequired("name")

	diplomaCmd.AddCommand(diplomaListCmd)
}
