// Package capability holds the contracts between the evaluator and the
// side-effecting back ends (console, turtle graphics, audio, polynomial panel,
// diagnostic log), the fail-soft dispatchers that sit in front of graphics and
// audio, and a set of headless adapters used by the command-line host.
package capability

import (
	"errors"
	"fmt"

	"minicode/interpreter-go/pkg/algebra"
)

var (
	// ErrAdapterUnavailable is reported when no adapter could be constructed.
	ErrAdapterUnavailable = errors.New("adapter unavailable")
	// ErrAdapterPanic wraps a panic recovered at the adapter boundary.
	ErrAdapterPanic = errors.New("adapter panicked")
	// ErrUnknownDirection rejects direction words outside the command's set.
	ErrUnknownDirection = errors.New("unknown direction")
)

// Console receives one line of program output per call.
type Console interface {
	Append(line string)
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity_%d", int(s))
	}
}

// DiagnosticConsole is implemented by consoles that render diagnostics apart
// from ordinary output.
type DiagnosticConsole interface {
	Console
	AppendDiagnostic(severity Severity, line string)
}

// GraphicsAdapter animates the turtle. Positions are grid cells and heading is
// in degrees. Move returns the cell the adapter expects the turtle to end in.
type GraphicsAdapter interface {
	Move(x, y int, heading float64, direction string, distance int, penDown bool, color string) (int, int, error)
	Rotate(direction string) error
	Position() (int, int, error)
	SetColor(color string) error
}

type AudioAdapter interface {
	PlayNote(note string, duration float64) error
}

// PolynomialPanel shows symbolic expressions.
type PolynomialPanel interface {
	Display(expr algebra.Expr, name string) error
	Plot(expr algebra.Expr, name string) error
}

// DiagnosticLog is an append-only record of reported errors. Implementations
// must not fail loudly.
type DiagnosticLog interface {
	Append(entry string)
}

// Resetter drops actions an adapter still has queued from a previous run.
type Resetter interface {
	Reset()
}

// Flusher applies queued actions.
type Flusher interface {
	Flush() error
}

// Clearer empties a panel.
type Clearer interface {
	Clear()
}

// Fault describes a capability call that failed at the adapter boundary. It
// never aborts a run.
type Fault struct {
	Capability string
	Op         string
	Err        error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Capability, f.Op, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// guard runs fn and converts returned errors and panics into a *Fault.
func guard(capabilityName, op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Fault{Capability: capabilityName, Op: op, Err: fmt.Errorf("%w: %v", ErrAdapterPanic, r)}
		}
	}()
	if ferr := fn(); ferr != nil {
		var fault *Fault
		if errors.As(ferr, &fault) {
			return fault
		}
		return &Fault{Capability: capabilityName, Op: op, Err: ferr}
	}
	return nil
}
