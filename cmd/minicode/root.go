package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"minicode/interpreter-go/pkg/capability"
	"minicode/interpreter-go/pkg/driver"
)

type globalOptions struct {
	configPath string
	envFile    string
	logLevel   string
	noColor    bool
}

// app is the state shared by every subcommand once the persistent flags
// have been resolved.
type app struct {
	opts   globalOptions
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg     *driver.Config
	logger  *slog.Logger
	console capability.Console
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "minicode",
		Short: "Minicode runs programs from their serialized syntax trees",
		Long: `Minicode executes programs handed over by the Minicode parser as
JSON or YAML syntax trees. Graphics run on a headless grid, audio is
logged and polynomials are printed as text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "configuration file (default: ./"+driver.DefaultConfigFile+" when present)")
	flags.StringVar(&a.opts.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "disable coloured diagnostics")

	root.AddCommand(
		newRunCommand(a),
		newCheckCommand(a),
		newShellCommand(a),
		newVersionCommand(a),
	)
	return root
}

// setup resolves configuration in order: defaults, config file, dotenv and
// process environment, then flags.
func (a *app) setup() error {
	if err := driver.LoadDotEnv(a.opts.envFile); err != nil {
		return err
	}
	cfg, err := driver.LoadConfig(a.opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if a.opts.logLevel != "" {
		cfg.Logging.Level = a.opts.logLevel
	}
	if a.opts.noColor {
		cfg.Console.Color = false
	}
	level, err := driver.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.console = capability.NewWriterConsole(a.stdout, cfg.Console.Color)
	a.logger.Debug("configuration loaded", "path", cfg.Path, "graphics", cfg.Graphics.Enabled, "audio", cfg.Audio.Enabled)
	return nil
}

func (a *app) newSession() *driver.Session {
	return driver.NewSession(a.cfg, a.console, a.logger)
}
