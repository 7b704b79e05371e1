package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplogConsole(t *testing.T) {
	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, "", false)
	require.NoError(t, err)

	splog.Info("merged %s", "topic")
	splog.Debug("hidden")
	splog.Warn("careful")
	splog.Error("boom")

	out := buf.String()
	require.Contains(t, out, "merged topic\n")
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "⚠️  careful")
	require.Contains(t, out, "❌ boom")
}

func TestSplogQuiet(t *testing.T) {
	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, "", true)
	require.NoError(t, err)

	splog.SetQuiet(true)
	require.True(t, splog.IsQuiet())
	splog.Info("suppressed")
	splog.Newline()
	require.Empty(t, buf.String())

	splog.SetQuiet(false)
	splog.Debug("visible")
	require.Equal(t, "visible\n", buf.String())
}

func TestSplogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "gitmenu.log")

	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, logPath, false)
	require.NoError(t, err)

	splog.SetQuiet(true)
	splog.Debug("running git merge --no-ff topic")
	require.NoError(t, splog.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "running git merge --no-ff topic")
	require.Empty(t, buf.String())
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("GITMENU_LOG_FILE", "/tmp/custom.log")
	require.Equal(t, "/tmp/custom.log", GetLogFilePath())

	t.Setenv("GITMENU_LOG_FILE", "")
	require.Equal(t, "gitmenu.log", filepath.Base(GetLogFilePath()))
}
