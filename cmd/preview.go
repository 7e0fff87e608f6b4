package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions for a level (no database)",
	Long: `Generate and interactively answer questions for a specific level.

This is a stateless developer tool: no database, no progress, no events.
Useful for checking a recipe's question mix and difficulty.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("level", 0, "Level id (required)")
	previewCmd.Flags().Int("count", 0, "Number of questions (default: the level's question count)")
	previewCmd.Flags().Uint64("seed", 0, "Random seed (default: random)")
	previewCmd.Flags().String("locale", problemgen.DefaultLocale, "Prompt language")
	previewCmd.Flags().Bool("list", false, "Only print the questions with their answers")
	_ = previewCmd.MarkFlagRequired("level")
}

func runPreview(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	locale, _ := cmd.Flags().GetString("locale")
	list, _ := cmd.Flags().GetBool("list")

	level, ok := catalog.Default().Get(id)
	if !ok {
		return fmt.Errorf("no level %d", id)
	}
	if count > 0 && !level.IsTutorial() {
		level.QuestionCount = count
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(seed, seed))
	questions := problemgen.Questions(r, level, problemgen.PromptsFor(locale))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Level %d: %s (%s, seed %d)\n\n", level.ID, level.Name, level.Type, seed)

	if list {
		for i, q := range questions {
			fmt.Fprintf(out, "%2d. %-28s %s\n", i+1, q.Equation(), q.CorrectText())
		}
		return nil
	}
	return quiz(cmd.Context(), out, cmd.InOrStdin(), level, questions)
}

// quiz asks each question on out, reading answers from in, and prints the
// scored result.
func quiz(ctx context.Context, out io.Writer, in io.Reader, level catalog.Level, questions []problemgen.Question) error {
	sess, err := session.New(ctx, level, questions)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)

	for sess.State() != session.StateCompleted {
		q := sess.Current()
		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n\nYour answer: ", sess.Index()+1, sess.Len(), q.Equation())

		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return nil
		}
		n, err := problemgen.ParseAnswer(scanner.Text())
		if err != nil {
			if errors.Is(err, problemgen.ErrEmptyAnswer) {
				fmt.Fprintln(out, "(enter a number)")
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}

		fb, err := sess.Submit(ctx, n)
		if err != nil {
			return err
		}
		if fb == session.FeedbackCorrect {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectText())
		}
		fmt.Fprintln(out)
		sess.Next()
	}

	res, _ := sess.Result()
	fmt.Fprintf(out, "── Summary: %d/%d correct, %d%% accuracy, %.1fs average, %d stars ──\n",
		res.Correct, res.Total, res.Accuracy, res.AvgTime, res.Stars)
	return nil
}
