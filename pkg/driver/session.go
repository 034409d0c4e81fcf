package driver

import (
	"context"
	"io"
	"log/slog"

	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/capability"
	"minicode/interpreter-go/pkg/interpreter"
	"minicode/interpreter-go/pkg/runtime"
)

const (
	BannerStart  = "--- Running Minicode program ---"
	BannerFinish = "--- Run finished ---"
	BannerFailed = "--- Run failed ---"
)

// Session is the host around successive runs. It owns the polynomial
// registry and the adapters, and prepares them before every run.
type Session struct {
	cfg         *Config
	console     capability.Console
	logger      *slog.Logger
	registry    *runtime.PolynomialRegistry
	graphics    capability.GraphicsAdapter
	audio       capability.AudioAdapter
	panel       *capability.TextPanel
	diagnostics capability.DiagnosticLog
	runs        int
}

// NewSession wires the headless adapters selected by cfg.
func NewSession(cfg *Config, console capability.Console, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if console == nil {
		console = &capability.Transcript{}
	}
	s := &Session{
		cfg:         cfg,
		console:     console,
		logger:      logger,
		registry:    runtime.NewPolynomialRegistry(),
		panel:       capability.NewTextPanel(console, cfg.Polynomials.PlotFrom, cfg.Polynomials.PlotTo),
		diagnostics: capability.NewFileDiagnosticLog(cfg.Diagnostics.Log, logger),
	}
	if cfg.Graphics.Enabled {
		s.graphics = capability.NewGridSimulator(cfg.Graphics.GridSize, cfg.Graphics.Walls...)
	}
	if cfg.Audio.Enabled {
		s.audio = capability.NewLogAudio(console, logger)
	}
	return s
}

func (s *Session) Registry() *runtime.PolynomialRegistry { return s.registry }

func (s *Session) Panel() *capability.TextPanel { return s.panel }

// Graphics returns the graphics adapter, or nil when graphics are disabled.
func (s *Session) Graphics() capability.GraphicsAdapter { return s.graphics }

// Runs counts completed and failed runs.
func (s *Session) Runs() int { return s.runs }

func (s *Session) interpreterOptions() []interpreter.Option {
	opts := []interpreter.Option{
		interpreter.WithConsole(s.console),
		interpreter.WithDiagnosticLog(s.diagnostics),
		interpreter.WithLogger(s.logger),
		interpreter.WithPolynomials(s.registry),
		interpreter.WithPolynomialPanel(s.panel),
	}
	if s.graphics != nil {
		g := s.graphics
		opts = append(opts, interpreter.WithGraphics(func() (capability.GraphicsAdapter, error) { return g, nil }))
	}
	if s.audio != nil {
		a := s.audio
		opts = append(opts, interpreter.WithAudio(func() (capability.AudioAdapter, error) { return a, nil }))
	}
	return opts
}

// Run prepares the adapters, executes program with a fresh interpreter and
// flushes queued graphics. The run error, if any, is returned after it has
// been reported on the console.
func (s *Session) Run(ctx context.Context, program *ast.Program) error {
	s.prepare()
	s.console.Append(BannerStart)

	interp := interpreter.New(s.interpreterOptions()...)
	err := interp.Run(ctx, program)
	s.runs++

	if f, ok := s.graphics.(capability.Flusher); ok {
		if ferr := f.Flush(); ferr != nil {
			s.logger.Warn("graphics flush failed", "error", ferr)
		}
	}
	if err != nil {
		s.console.Append(BannerFailed)
		return err
	}
	s.console.Append(BannerFinish)
	return nil
}

func (s *Session) prepare() {
	if s.cfg.Polynomials.ClearBetweenRuns {
		s.registry.Clear()
	}
	if r, ok := s.graphics.(capability.Resetter); ok {
		r.Reset()
	}
	if c, ok := s.graphics.(capability.Clearer); ok {
		c.Clear()
	}
	s.panel.Clear()
}

// Reset forgets every polynomial and restores the grid.
func (s *Session) Reset() {
	s.registry.Clear()
	if c, ok := s.graphics.(capability.Clearer); ok {
		c.Clear()
	}
	s.panel.Clear()
}

// RenderGraphics draws the committed grid when the adapter can render.
func (s *Session) RenderGraphics(w io.Writer) error {
	r, ok := s.graphics.(interface{ Render(io.Writer) error })
	if !ok {
		return nil
	}
	return r.Render(w)
}
