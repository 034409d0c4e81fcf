package capability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minicode/interpreter-go/pkg/algebra"
)

func TestGridSimulatorQueuesUntilFlush(t *testing.T) {
	g := NewGridSimulator(10)
	x, y, err := g.Position()
	require.NoError(t, err)
	assert.Equal(t, Cell{5, 5}, Cell{x, y})

	nx, ny, err := g.Move(x, y, 0, DirectionForward, 3, true, "black")
	require.NoError(t, err)
	assert.Equal(t, Cell{8, 5}, Cell{nx, ny})
	assert.Equal(t, 3, g.Pending())

	x, y, _ = g.Position()
	assert.Equal(t, Cell{5, 5}, Cell{x, y}, "position is committed state")

	require.NoError(t, g.Flush())
	x, y, _ = g.Position()
	assert.Equal(t, Cell{8, 5}, Cell{x, y})
	assert.Len(t, g.Trail(), 3)
	assert.Zero(t, g.Pending())
}

func TestGridSimulatorMovesContinueFromQueuedState(t *testing.T) {
	g := NewGridSimulator(10)
	_, _, _ = g.Move(0, 0, 0, DirectionForward, 1, true, "black")
	require.NoError(t, g.Rotate(DirectionLeft))
	nx, ny, _ := g.Move(0, 0, 0, DirectionForward, 2, false, "black")
	assert.Equal(t, Cell{6, 3}, Cell{nx, ny}, "north is -y")

	require.NoError(t, g.Flush())
	assert.Equal(t, 90.0, g.Heading())
	assert.Len(t, g.Trail(), 1, "pen-up steps leave no trail")
}

func TestGridSimulatorStopsAtBoundaryAndWalls(t *testing.T) {
	g := NewGridSimulator(4, Cell{3, 2})
	nx, ny, _ := g.Move(0, 0, 0, DirectionBackward, 10, true, "black")
	assert.Equal(t, Cell{0, 2}, Cell{nx, ny})
	g.Reset()
	assert.Zero(t, g.Pending())

	nx, ny, _ = g.Move(0, 0, 0, DirectionForward, 10, true, "black")
	assert.Equal(t, Cell{2, 2}, Cell{nx, ny}, "wall at (3,2) blocks")
}

func TestGridSimulatorRender(t *testing.T) {
	g := NewGridSimulator(3, Cell{0, 0})
	_, _, _ = g.Move(0, 0, 0, DirectionBackward, 1, true, "black")
	require.NoError(t, g.Flush())
	var b strings.Builder
	require.NoError(t, g.Render(&b))
	assert.Equal(t, "#..\n>*.\n...\n", b.String())

	g.Clear()
	b.Reset()
	require.NoError(t, g.Render(&b))
	assert.Equal(t, "#..\n.>.\n...\n", b.String())
}

func TestTextPanel(t *testing.T) {
	var out Transcript
	p := NewTextPanel(&out, 1, -1)
	e, err := algebra.Parse("x^2 + 1")
	require.NoError(t, err)

	require.NoError(t, p.Display(e, "p"))
	require.NoError(t, p.Plot(e, "p"))
	assert.Equal(t, []string{
		"[p] x**2 + 1",
		"plot p(x) = x**2 + 1",
		"  x = -1   | 2.0",
		"  x = 0    | 1.0",
		"  x = 1    | 2.0",
	}, out.Lines())
	assert.Len(t, p.Entries(), 2)
	p.Clear()
	assert.Empty(t, p.Entries())
}

func TestTextPanelPoles(t *testing.T) {
	var out Transcript
	p := NewTextPanel(&out, 0, 0)
	e, err := algebra.Parse("1/x")
	require.NoError(t, err)
	require.NoError(t, p.Plot(e, "q"))
	assert.Equal(t, "  x = 0    | undefined", out.Lines()[1])
}

func TestWriterConsole(t *testing.T) {
	var b strings.Builder
	c := NewWriterConsole(&b, false)
	c.Append("hello")
	c.AppendDiagnostic(SeverityError, "Error: boom")
	assert.Equal(t, "hello\nError: boom\n", b.String())

	b.Reset()
	colored := NewWriterConsole(&b, true)
	colored.AppendDiagnostic(SeverityWarning, "careful")
	assert.Contains(t, b.String(), "\x1b[")
	assert.Contains(t, b.String(), "careful")
}

func TestTee(t *testing.T) {
	var a, b Transcript
	tee := Tee{&a, &b}
	tee.Append("one")
	tee.AppendDiagnostic(SeverityWarning, "two")
	assert.Equal(t, []string{"one", "two"}, a.Lines())
	assert.Equal(t, a.Lines(), b.Lines())
}

func TestFileDiagnosticLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fatal_error.log")
	log := NewFileDiagnosticLog(path, nil)
	log.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	log.Append("DivisionByZeroError: division by zero")
	log.Append("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"--- 2024-05-01T12:00:00Z ---\nDivisionByZeroError: division by zero\n"+
			"--- 2024-05-01T12:00:00Z ---\nsecond\n",
		string(data))

	// Unwritable paths are swallowed.
	bad := NewFileDiagnosticLog(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), nil)
	assert.NotPanics(t, func() { bad.Append("ignored") })
	assert.NotPanics(t, func() { NewFileDiagnosticLog("", nil).Append("ignored") })
}
