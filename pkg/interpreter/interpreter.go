package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/capability"
	"minicode/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested procedure calls.
const DefaultMaxCallDepth = 1000

// Interpreter evaluates Minicode programs. An instance is not safe for
// concurrent use; hosts create one per run or serialise runs.
type Interpreter struct {
	scopes      *runtime.ScopeStack
	functions   *runtime.FunctionTable
	polynomials *runtime.PolynomialRegistry

	graphicsFactory capability.GraphicsFactory
	audioFactory    capability.AudioFactory
	graphics        *capability.GraphicsDispatcher
	audio           *capability.AudioDispatcher
	panel           capability.PolynomialPanel
	console         capability.Console
	diagnostics     capability.DiagnosticLog
	logger          *slog.Logger

	ctx          context.Context
	callDepth    int
	maxCallDepth int
}

type Option func(*Interpreter)

// WithGraphics installs the factory used to build the graphics adapter on
// the first turtle command.
func WithGraphics(factory capability.GraphicsFactory) Option {
	return func(i *Interpreter) { i.graphicsFactory = factory }
}

func WithAudio(factory capability.AudioFactory) Option {
	return func(i *Interpreter) { i.audioFactory = factory }
}

func WithPolynomialPanel(panel capability.PolynomialPanel) Option {
	return func(i *Interpreter) { i.panel = panel }
}

func WithConsole(console capability.Console) Option {
	return func(i *Interpreter) { i.console = console }
}

func WithDiagnosticLog(log capability.DiagnosticLog) Option {
	return func(i *Interpreter) { i.diagnostics = log }
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithPolynomials shares a registry owned by the host. Without it the
// interpreter keeps a private one.
func WithPolynomials(registry *runtime.PolynomialRegistry) Option {
	return func(i *Interpreter) {
		if registry != nil {
			i.polynomials = registry
		}
	}
}

func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

type discardConsole struct{}

func (discardConsole) Append(string) {}

// New returns an interpreter with no capabilities attached.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		scopes:       runtime.NewScopeStack(),
		functions:    runtime.NewFunctionTable(),
		polynomials:  runtime.NewPolynomialRegistry(),
		console:      discardConsole{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:          context.Background(),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.graphics = capability.NewGraphicsDispatcher(i.graphicsFactory, i.logger)
	i.audio = capability.NewAudioDispatcher(i.audioFactory, i.logger)
	return i
}

// Scopes exposes the scope stack of the most recent run.
func (i *Interpreter) Scopes() *runtime.ScopeStack { return i.scopes }

func (i *Interpreter) Functions() *runtime.FunctionTable { return i.functions }

func (i *Interpreter) Polynomials() *runtime.PolynomialRegistry { return i.polynomials }

// Graphics returns the logical turtle state.
func (i *Interpreter) Graphics() capability.GraphicsState { return i.graphics.State() }

// Run executes program from a clean scope stack and function table. The
// polynomial registry is left alone. The first error aborts the run; it is
// reported to the console and diagnostic log and returned. Cancellation of
// ctx stops the run between statements or loop iterations and is returned
// without a report.
func (i *Interpreter) Run(ctx context.Context, program *ast.Program) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	i.ctx = ctx
	i.scopes = runtime.NewScopeStack()
	i.functions = runtime.NewFunctionTable()
	i.graphics = capability.NewGraphicsDispatcher(i.graphicsFactory, i.logger)
	i.audio = capability.NewAudioDispatcher(i.audioFactory, i.logger)
	i.callDepth = 0

	defer func() {
		if r := recover(); r != nil {
			i.logc(ctx, slog.LevelError, "evaluator panic", "panic", r, "stack", string(debug.Stack()))
			err = &RuntimeError{Kind: KindInternal, Message: fmt.Sprint(r)}
			i.report(err)
		}
	}()

	if program == nil {
		return nil
	}
	for idx, stmt := range program.Body {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err := i.execStatement(stmt); err != nil {
			if isCancellation(err) {
				i.logc(ctx, slog.LevelInfo, "run cancelled", "statement", idx, "error", err)
				return err
			}
			i.logc(ctx, slog.LevelError, "run aborted", "statement", idx, "error", err)
			i.report(err)
			return err
		}
	}
	return nil
}

// isCancellation reports whether err comes from the run's context rather
// than from the program.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// report writes err to the console as a diagnostic line and appends it to
// the diagnostic log.
func (i *Interpreter) report(err error) {
	severity := capability.SeverityError
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		severity = rerr.Severity()
	}
	prefix := "Error"
	if severity == capability.SeverityWarning {
		prefix = "Warning"
	}
	line := prefix + ": " + err.Error()
	if dc, ok := i.console.(capability.DiagnosticConsole); ok {
		dc.AppendDiagnostic(severity, line)
	} else {
		i.console.Append(line)
	}
	if i.diagnostics != nil {
		i.diagnostics.Append(err.Error())
	}
}

func (i *Interpreter) logc(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !i.logger.Enabled(ctx, level) {
		return
	}
	if i.callDepth > 0 {
		args = append([]any{slog.Int("call_depth", i.callDepth)}, args...)
	}
	i.logger.Log(ctx, level, msg, args...)
}
