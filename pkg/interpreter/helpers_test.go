package interpreter

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"minicode/interpreter-go/pkg/algebra"
	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/capability"
)

type diagnostic struct {
	Severity capability.Severity
	Line     string
}

// recordingConsole keeps program output and diagnostics in one transcript.
type recordingConsole struct {
	lines       []string
	diagnostics []diagnostic
}

func (c *recordingConsole) Append(line string) {
	c.lines = append(c.lines, line)
}

func (c *recordingConsole) AppendDiagnostic(severity capability.Severity, line string) {
	c.lines = append(c.lines, line)
	c.diagnostics = append(c.diagnostics, diagnostic{severity, line})
}

type recordingLog struct {
	entries []string
}

func (l *recordingLog) Append(entry string) { l.entries = append(l.entries, entry) }

type panelCall struct {
	Op   string
	Name string
	Expr string
}

type recordingPanel struct {
	calls   []panelCall
	panicOn string
}

func (p *recordingPanel) Display(expr algebra.Expr, name string) error {
	if p.panicOn == "display" {
		panic("widget destroyed")
	}
	p.calls = append(p.calls, panelCall{"display", name, expr.String()})
	return nil
}

func (p *recordingPanel) Plot(expr algebra.Expr, name string) error {
	p.calls = append(p.calls, panelCall{"plot", name, expr.String()})
	return nil
}

// countingHandler counts slog records per level.
type countingHandler struct {
	mu     sync.Mutex
	counts map[slog.Level]int
	msgs   []string
}

func newCountingHandler() *countingHandler {
	return &countingHandler{counts: make(map[slog.Level]int)}
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *countingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[r.Level]++
	h.msgs = append(h.msgs, r.Message)
	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

type harness struct {
	interp  *Interpreter
	console *recordingConsole
	log     *recordingLog
}

func newHarness(opts ...Option) *harness {
	h := &harness{console: &recordingConsole{}, log: &recordingLog{}}
	all := append([]Option{WithConsole(h.console), WithDiagnosticLog(h.log)}, opts...)
	h.interp = New(all...)
	return h
}

func (h *harness) run(t *testing.T, body ...ast.Statement) error {
	t.Helper()
	return h.interp.Run(context.Background(), ast.Prog(body...))
}

func (h *harness) mustRun(t *testing.T, body ...ast.Statement) []string {
	t.Helper()
	if err := h.run(t, body...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h.console.lines
}
