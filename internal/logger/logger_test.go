package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedact(t *testing.T) {
	got := redact([]any{"level", 3, "admin_password", "hunter2", "Token", "abc", "odd"})
	assert.Equal(t, []any{"level", 3, "admin_password", "[REDACTED]", "Token", "[REDACTED]", "odd"}, got)
}

func TestRedact_DoesNotMutateInput(t *testing.T) {
	in := []any{"secret", "x"}
	_ = redact(in)
	assert.Equal(t, "x", in[1])
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New("prod", path)
	require.NoError(t, err)

	log.Info("level completed", "level", 4, "jwt_secret", "s3cr3t")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "level completed"), out)
	assert.False(t, strings.Contains(out, "s3cr3t"), out)
}

func TestNop(t *testing.T) {
	log := Nop()
	log.With("k", "v").Warn("discarded")
	log.Sync()
}
