package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/matteflyt/internal/auth"
	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/config"
	"github.com/abhisek/matteflyt/internal/logger"
	"github.com/abhisek/matteflyt/internal/mastery"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/progress"
	"github.com/abhisek/matteflyt/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestQuiz(t *testing.T) {
	cat := catalog.Default()
	level, ok := cat.Get(1)
	require.True(t, ok)
	qs := problemgen.Questions(rand.New(rand.NewPCG(1, 2)), level, problemgen.PromptsFor("nb"))

	var in strings.Builder
	in.WriteString("abc\n\n")
	for i, q := range qs {
		answer := q.Expected()
		if i == 1 {
			answer++
		}
		fmt.Fprintf(&in, "%d\n", answer)
	}

	var out bytes.Buffer
	err := quiz(context.Background(), &out, strings.NewReader(in.String()), level, qs)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "is not a number")
	assert.Contains(t, got, "(enter a number)")
	assert.Contains(t, got, "Wrong.")
	assert.Contains(t, got, fmt.Sprintf("Summary: %d/%d correct, 90%% accuracy", len(qs)-1, len(qs)))
}

func TestQuiz_InputClosed(t *testing.T) {
	level, _ := catalog.Default().Get(1)
	qs := problemgen.Questions(rand.New(rand.NewPCG(1, 2)), level, problemgen.PromptsFor("nb"))

	var out bytes.Buffer
	require.NoError(t, quiz(context.Background(), &out, strings.NewReader(""), level, qs))
	assert.Contains(t, out.String(), "(input closed)")
	assert.NotContains(t, out.String(), "Summary")
}

func TestPrintLevels(t *testing.T) {
	cat := catalog.Default()
	ps := progress.NewStore(progress.NewMemorySlots(), logger.Nop())
	ps.RecordResult(context.Background(), 0, 100, 2.0)

	var out bytes.Buffer
	require.NoError(t, printLevels(&out, cat, mastery.NewGate(cat, ps.All(context.Background()))))

	got := out.String()
	assert.Contains(t, got, "Finn tallene")
	assert.Contains(t, got, "Passed")
	assert.Contains(t, got, "Locked")
	assert.Contains(t, got, "100% 2.0s")
	assert.Contains(t, got, "4/15 levels unlocked, 3/45 stars")
	assert.NotContains(t, got, "diploma available")
}

func TestPrintStats(t *testing.T) {
	ctx := context.Background()
	events := openTestStore(t).EventRepo()

	require.NoError(t, events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "s1", LevelID: 1, Action: store.ActionStart, Questions: 2,
	}))
	for i, correct := range []bool{true, false} {
		require.NoError(t, events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID: "s1", LevelID: 1, QuestionText: fmt.Sprintf("%d + 1 = ___", i),
			Expected: i + 1, Given: 1, Correct: correct, TimeMs: 1500,
		}))
	}
	require.NoError(t, events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: "s1", LevelID: 1, Action: store.ActionEnd, Questions: 2,
		CorrectAnswers: 1, Accuracy: 50, AvgTime: 1.5,
	}))

	var out bytes.Buffer
	require.NoError(t, printStats(ctx, &out, catalog.Default(), events, 10))
	got := out.String()
	assert.Contains(t, got, "1 Pluss 0 og 1")
	assert.Contains(t, got, "1/2")
	assert.Contains(t, got, "50%")
	assert.Contains(t, got, "s1")

	out.Reset()
	require.NoError(t, printSessionAnswers(ctx, &out, events, "s1"))
	assert.Contains(t, out.String(), "1 + 1 = ___")
	assert.Contains(t, out.String(), "✗")
	assert.Contains(t, out.String(), "1.5s")

	assert.Error(t, printSessionAnswers(ctx, &out, events, "missing"))
}

func TestPrintStats_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printStats(context.Background(), &out, catalog.Default(), openTestStore(t).EventRepo(), 10))
	assert.Contains(t, out.String(), "(none yet)")
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	cmd := &cobra.Command{}
	cmd.Flags().String("db", "", "")

	flagPath := filepath.Join(dir, "flag", "a.db")
	require.NoError(t, cmd.Flags().Set("db", flagPath))
	got, err := resolveDBPath(cmd, &config.Config{DB: filepath.Join(dir, "cfg.db")})
	require.NoError(t, err)
	assert.Equal(t, flagPath, got)
	assert.DirExists(t, filepath.Dir(flagPath))

	require.NoError(t, cmd.Flags().Set("db", ""))
	cfgPath := filepath.Join(dir, "cfg", "b.db")
	got, err = resolveDBPath(cmd, &config.Config{DB: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, cfgPath, got)
}

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"admin", "hash-password", "--password", "5656"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, auth.CheckPassword(hash, "5656"))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "matteflyt (devel)\n", out.String())
}
