package capability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"minicode/interpreter-go/pkg/runtime"
)

// LogAudio "plays" notes by printing them.
type LogAudio struct {
	out    Console
	logger *slog.Logger
	played []string
}

func NewLogAudio(out Console, logger *slog.Logger) *LogAudio {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogAudio{out: out, logger: logger}
}

func (a *LogAudio) PlayNote(note string, duration float64) error {
	line := fmt.Sprintf("play note %s for %s seconds", note, runtime.FormatNumber(duration))
	a.played = append(a.played, note)
	a.logger.Debug("note played", "note", note, "duration", duration)
	if a.out != nil {
		a.out.Append(line)
	}
	return nil
}

// Played lists the notes in play order.
func (a *LogAudio) Played() []string {
	out := make([]string, len(a.played))
	copy(out, a.played)
	return out
}

// FileDiagnosticLog appends timestamped entries to a file. Write failures
// are logged and otherwise ignored. An empty path disables it.
type FileDiagnosticLog struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

func NewFileDiagnosticLog(path string, logger *slog.Logger) *FileDiagnosticLog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileDiagnosticLog{path: path, logger: logger, now: time.Now}
}

func (l *FileDiagnosticLog) Path() string { return l.path }

func (l *FileDiagnosticLog) Append(entry string) {
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.logger.Warn("diagnostic log unavailable", "path", l.path, "error", err)
		return
	}
	defer f.Close()
	stamp := l.now().Format(time.RFC3339)
	if _, err := fmt.Fprintf(f, "--- %s ---\n%s\n", stamp, entry); err != nil {
		l.logger.Warn("diagnostic log write failed", "path", l.path, "error", err)
	}
}
