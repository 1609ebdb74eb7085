package logger_test

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecisecode/collection/logger"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New(&logger.Option{Level: logger.WARN, Console: &buf, ConsoleColor: false})

	lg.Debug("hidden")
	lg.Info("hidden too")
	lg.Warnf("kept %d", 1)
	lg.Errorf("kept %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "kept 1")
	assert.Contains(t, out, "kept 2")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestRecordFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New(&logger.Option{Level: logger.TRACE, Console: &buf, ConsoleColor: false})

	lg.Tracef("t-%s", "msg")
	out := buf.String()
	assert.Contains(t, out, "[T]")
	assert.Contains(t, out, "t-msg")
	assert.Contains(t, out, "logger_test.go:")
}

func TestSetLevelByName(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New(&logger.Option{Console: &buf, ConsoleColor: false})

	lg.Debug("off")
	lg.SetLevel("debug")
	lg.Debug("on")

	out := buf.String()
	assert.NotContains(t, out, "off")
	assert.Contains(t, out, "on")
}

func TestFatalTerminatesWhenFiltered(t *testing.T) {
	// Fatal calls os.Exit, so the exiting half runs in a child process
	if os.Getenv("LOGGER_FATAL_CHILD") == "1" {
		lg := logger.New(&logger.Option{Level: logger.OFF, Console: io.Discard})
		lg.Fatal("unrecoverable")
		t.Fatal("Fatal returned")
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=TestFatalTerminatesWhenFiltered$")
	cmd.Env = append(os.Environ(), "LOGGER_FATAL_CHILD=1")
	err := cmd.Run()
	ee, ok := err.(*exec.ExitError)
	require.True(t, ok, "expected the child to exit non-zero, got %v", err)
	assert.Equal(t, 1, ee.ExitCode())
}

func TestSetOutput(t *testing.T) {
	var a, b bytes.Buffer
	lg := logger.New(&logger.Option{Level: logger.INFO, Console: &a, ConsoleColor: false})
	lg.Info("first")
	lg.SetOutput(&b)
	lg.Info("second")

	assert.Contains(t, a.String(), "first")
	assert.NotContains(t, a.String(), "second")
	assert.Contains(t, b.String(), "second")
}
