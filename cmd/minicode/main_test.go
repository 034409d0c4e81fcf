package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minicode/interpreter-go/pkg/capability"
	"minicode/interpreter-go/pkg/driver"
)

var fixtures = filepath.Join("..", "..", "pkg", "driver", "testdata")

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(driver.EnvDiagnosticsLog, filepath.Join(dir, "fatal_error.log"))
	t.Setenv(driver.EnvLogLevel, "")
	t.Setenv(driver.EnvGraphics, "")

	base := []string{"--no-color", "--env-file", filepath.Join(dir, "missing.env")}
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), append(base, args...), strings.NewReader(""), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestVersion(t *testing.T) {
	res := runCLI(t, "version")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, cliToolVersion+"\n", res.stdout)
}

func TestRunSquare(t *testing.T) {
	res := runCLI(t, "run", "--grid", filepath.Join(fixtures, "square.yml"))
	require.Equal(t, 0, res.code, res.stderr)

	lines := strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n")
	require.Len(t, lines, 4+capability.DefaultGridSize)
	assert.Equal(t, []string{driver.BannerStart, "corners: done", "4.0", driver.BannerFinish}, lines[:4])
	assert.Equal(t, []string{".....***..", ".....*.*..", ".....>**.."}, lines[4+3:4+6])
}

func TestRunFailureExitsNonZero(t *testing.T) {
	res := runCLI(t, "run", filepath.Join(fixtures, "divide.json"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "Error: DivisionByZeroError: division by zero")
	assert.Contains(t, res.stdout, driver.BannerFailed)
	assert.NotContains(t, res.stdout, "after")
	assert.NotContains(t, res.stderr, "run failed")

	logPath := os.Getenv(driver.EnvDiagnosticsLog)
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DivisionByZeroError")
}

func TestRunWithoutGraphics(t *testing.T) {
	res := runCLI(t, "run", "--no-graphics", filepath.Join(fixtures, "square.yml"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, 8, strings.Count(res.stdout, "Warning: AdapterUnavailableWarning"))
	assert.Contains(t, res.stdout, "4.0\n")
}

func TestCheck(t *testing.T) {
	res := runCLI(t, "check", filepath.Join(fixtures, "polynomials.json"))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "(7 statements)")

	res = runCLI(t, "check", filepath.Join(fixtures, "broken.json"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "body[1].value")
}

func TestConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minicode.yml")
	require.NoError(t, os.WriteFile(path, []byte("graphics:\n  gridSize: 1\n"), 0o644))
	res := runCLI(t, "--config", path, "version")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "graphics.gridSize must be between 2 and 200")

	res = runCLI(t, "--log-level", "chatty", "version")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "chatty")
}

func TestUnknownCommand(t *testing.T) {
	res := runCLI(t, "fly")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown command")
}

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	cfg := driver.DefaultConfig()
	cfg.Diagnostics.Log = filepath.Join(t.TempDir(), "fatal_error.log")
	var out bytes.Buffer
	a := &app{
		stdout:  &out,
		stderr:  &out,
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		console: capability.NewWriterConsole(&out, false),
	}
	return newShell(a), &out
}

func TestShellCommands(t *testing.T) {
	sh, out := newTestShell(t)
	ctx := context.Background()

	assert.False(t, sh.exec(ctx, "polys"))
	assert.Equal(t, "no polynomials defined\n", out.String())

	out.Reset()
	assert.False(t, sh.exec(ctx, "run "+filepath.Join(fixtures, "polynomials.json")))
	assert.Contains(t, out.String(), "New polynomial 'p1_sum_p2' = 2*x")

	out.Reset()
	sh.exec(ctx, "polys")
	assert.Equal(t, "p1 = x + 1\np1_product_p2 = x**2 - 1\np1_sum_p2 = 2*x\np2 = x - 1\n", out.String())

	out.Reset()
	sh.exec(ctx, "show p1_sum_p2")
	assert.Equal(t, "[p1_sum_p2] 2*x\n", out.String())

	out.Reset()
	sh.exec(ctx, "plot p1")
	assert.Contains(t, out.String(), "plot p1(x) = x + 1\n")
	assert.Contains(t, out.String(), "  x = 0    | 1.0\n")

	out.Reset()
	sh.exec(ctx, "show nope")
	assert.Equal(t, "polynomial 'nope' does not exist\n", out.String())

	out.Reset()
	sh.exec(ctx, "grid")
	assert.Equal(t, capability.DefaultGridSize, strings.Count(out.String(), "\n"))

	out.Reset()
	sh.exec(ctx, "reset")
	sh.exec(ctx, "polys")
	assert.Equal(t, "session reset\nno polynomials defined\n", out.String())

	out.Reset()
	sh.exec(ctx, "dance")
	assert.Contains(t, out.String(), `unknown command "dance"`)

	out.Reset()
	sh.exec(ctx, "run")
	assert.Equal(t, "usage: run <tree>\n", out.String())

	assert.True(t, sh.exec(ctx, ":quit"))
}

func TestShellGridShowsLastRun(t *testing.T) {
	sh, out := newTestShell(t)
	ctx := context.Background()
	square := "run " + filepath.Join(fixtures, "square.yml")
	sh.exec(ctx, square)
	sh.exec(ctx, square)
	assert.Equal(t, 2, strings.Count(out.String(), driver.BannerFinish))

	grid := sh.session.Graphics().(*capability.GridSimulator)
	assert.Len(t, grid.Trail(), 8, "each run starts from a cleared grid")
}
