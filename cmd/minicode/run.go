package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minicode/interpreter-go/pkg/driver"
)

func newRunCommand(a *app) *cobra.Command {
	var noGraphics, showGrid bool
	cmd := &cobra.Command{
		Use:   "run <tree>",
		Short: "Execute a serialized program",
		Long: `Execute a program tree (.json, .yml or .yaml). Errors raised by the
program are printed on the console and appended to the diagnostic log.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := driver.LoadProgram(args[0])
			if err != nil {
				return err
			}
			if noGraphics {
				a.cfg.Graphics.Enabled = false
			}
			session := a.newSession()
			if err := session.Run(cmd.Context(), program); err != nil {
				a.logger.Info("program failed", "path", args[0], "error", err)
				return errRunFailed
			}
			if showGrid {
				return session.RenderGraphics(a.stdout)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noGraphics, "no-graphics", false, "run without a graphics adapter")
	cmd.Flags().BoolVar(&showGrid, "grid", false, "print the grid after the run")
	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <tree>",
		Short: "Decode a program tree without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := driver.LoadProgram(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "ok: %s (%d statements)\n", args[0], len(program.Body))
			return nil
		},
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(a.stdout, cliToolVersion)
		},
	}
}
