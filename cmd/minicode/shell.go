package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"minicode/interpreter-go/pkg/driver"
)

const (
	shellPrompt  = "minicode> "
	historyFile  = ".minicode_history"
	shellWelcome = "Minicode shell. Type help for commands, :quit to exit."
)

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run programs interactively in one session",
		Long: `Start an interactive session. Programs run in the same session, so
polynomials carry over unless clearBetweenRuns is set. The grid is cleared
before every run; "grid" draws the result of the last one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), a)
		},
	}
}

func runShell(ctx context.Context, a *app) error {
	fmt.Fprintln(a.stdout, shellWelcome)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sh := newShell(a)
	for {
		line, err := ln.Prompt(shellPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if sh.exec(ctx, line) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// shell interprets shell lines against one long-lived session.
type shell struct {
	app     *app
	session *driver.Session
}

func newShell(a *app) *shell {
	return &shell{app: a, session: a.newSession()}
}

// exec runs one line and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	out := s.app.stdout
	switch cmd, args := fields[0], fields[1:]; cmd {
	case ":quit", ":q", "exit":
		return true
	case "help":
		fmt.Fprintln(out, "commands:")
		fmt.Fprintln(out, "  run <tree>    execute a program tree in this session")
		fmt.Fprintln(out, "  polys         list defined polynomials")
		fmt.Fprintln(out, "  show <name>   print one polynomial")
		fmt.Fprintln(out, "  plot <name>   tabulate one polynomial")
		fmt.Fprintln(out, "  grid          draw the turtle grid")
		fmt.Fprintln(out, "  reset         forget polynomials and clear the grid")
		fmt.Fprintln(out, "  :quit         leave the shell")
	case "run":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: run <tree>")
			return false
		}
		program, err := driver.LoadProgram(args[0])
		if err != nil {
			fmt.Fprintln(out, err)
			return false
		}
		if err := s.session.Run(ctx, program); err != nil {
			s.app.logger.Info("program failed", "path", args[0], "error", err)
		}
	case "polys":
		registry := s.session.Registry()
		if registry.Len() == 0 {
			fmt.Fprintln(out, "no polynomials defined")
			return false
		}
		for _, name := range registry.Names() {
			expr, _ := registry.Get(name)
			fmt.Fprintf(out, "%s = %s\n", name, expr)
		}
	case "show", "plot":
		if len(args) != 1 {
			fmt.Fprintf(out, "usage: %s <name>\n", cmd)
			return false
		}
		expr, ok := s.session.Registry().Get(args[0])
		if !ok {
			fmt.Fprintf(out, "polynomial '%s' does not exist\n", args[0])
			return false
		}
		panel := s.session.Panel()
		if cmd == "show" {
			_ = panel.Display(expr, args[0])
		} else {
			_ = panel.Plot(expr, args[0])
		}
	case "grid":
		if s.session.Graphics() == nil {
			fmt.Fprintln(out, "graphics are disabled")
			return false
		}
		if err := s.session.RenderGraphics(out); err != nil {
			fmt.Fprintln(out, err)
		}
	case "reset":
		s.session.Reset()
		fmt.Fprintln(out, "session reset")
	default:
		fmt.Fprintf(out, "unknown command %q. Type help for commands.\n", cmd)
	}
	return false
}
