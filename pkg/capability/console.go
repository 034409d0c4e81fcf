package capability

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// WriterConsole prints lines to an io.Writer. Diagnostics are coloured by
// severity unless colour is disabled.
type WriterConsole struct {
	w       io.Writer
	warn    *color.Color
	fail    *color.Color
	info    *color.Color
	noColor bool
}

func NewWriterConsole(w io.Writer, useColor bool) *WriterConsole {
	c := &WriterConsole{
		w:       w,
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		info:    color.New(color.FgCyan),
		noColor: !useColor,
	}
	if c.noColor {
		c.warn.DisableColor()
		c.fail.DisableColor()
		c.info.DisableColor()
	} else {
		c.warn.EnableColor()
		c.fail.EnableColor()
		c.info.EnableColor()
	}
	return c
}

func (c *WriterConsole) Append(line string) {
	fmt.Fprintln(c.w, line)
}

func (c *WriterConsole) AppendDiagnostic(severity Severity, line string) {
	switch severity {
	case SeverityError:
		c.fail.Fprintln(c.w, line)
	case SeverityWarning:
		c.warn.Fprintln(c.w, line)
	default:
		c.info.Fprintln(c.w, line)
	}
}

// Transcript records every line in memory. It is safe for concurrent use so
// a host can read it while a run is in progress.
type Transcript struct {
	mu    sync.Mutex
	lines []string
}

func (t *Transcript) Append(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
}

func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
}

// Tee fans every line out to several consoles. Diagnostics keep their
// severity for consoles that understand it.
type Tee []Console

func (t Tee) Append(line string) {
	for _, c := range t {
		c.Append(line)
	}
}

func (t Tee) AppendDiagnostic(severity Severity, line string) {
	for _, c := range t {
		if dc, ok := c.(DiagnosticConsole); ok {
			dc.AppendDiagnostic(severity, line)
			continue
		}
		c.Append(line)
	}
}
