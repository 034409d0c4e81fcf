package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"minicode/interpreter-go/pkg/capability"
)

// DefaultConfigFile is looked up in the working directory when no
// configuration path is given.
const DefaultConfigFile = "minicode.yml"

const (
	EnvLogLevel       = "MINICODE_LOG_LEVEL"
	EnvDiagnosticsLog = "MINICODE_DIAGNOSTICS_LOG"
	EnvNoColor        = "MINICODE_NO_COLOR"
	EnvGraphics       = "MINICODE_GRAPHICS"
)

// Config is the validated host configuration.
type Config struct {
	Path        string
	Logging     LoggingConfig
	Diagnostics DiagnosticsConfig
	Console     ConsoleConfig
	Graphics    GraphicsConfig
	Audio       AudioConfig
	Polynomials PolynomialsConfig
}

type LoggingConfig struct {
	Level string
}

type DiagnosticsConfig struct {
	// Log is the diagnostic file; empty disables it.
	Log string
}

type ConsoleConfig struct {
	Color bool
}

type GraphicsConfig struct {
	Enabled  bool
	GridSize int
	Walls    []capability.Cell
}

type AudioConfig struct {
	Enabled bool
}

type PolynomialsConfig struct {
	ClearBetweenRuns bool
	PlotFrom         int
	PlotTo           int
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig mirrors an empty minicode.yml.
func DefaultConfig() *Config {
	return &Config{
		Logging:     LoggingConfig{Level: "warn"},
		Diagnostics: DiagnosticsConfig{Log: "fatal_error.log"},
		Console:     ConsoleConfig{Color: true},
		Graphics:    GraphicsConfig{Enabled: true, GridSize: capability.DefaultGridSize},
		Audio:       AudioConfig{Enabled: true},
		Polynomials: PolynomialsConfig{ClearBetweenRuns: true, PlotFrom: -5, PlotTo: 5},
	}
}

type configFile struct {
	Logging *struct {
		Level *string `yaml:"level"`
	} `yaml:"logging"`
	Diagnostics *struct {
		Log *string `yaml:"log"`
	} `yaml:"diagnostics"`
	Console *struct {
		Color *bool `yaml:"color"`
	} `yaml:"console"`
	Graphics *struct {
		Enabled  *bool   `yaml:"enabled"`
		GridSize *int    `yaml:"gridSize"`
		Walls    [][]int `yaml:"walls"`
	} `yaml:"graphics"`
	Audio *struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"audio"`
	Polynomials *struct {
		ClearBetweenRuns *bool `yaml:"clearBetweenRuns"`
		PlotRange        []int `yaml:"plotRange"`
	} `yaml:"polynomials"`
}

// LoadConfig reads and validates a configuration file. An empty path looks
// for DefaultConfigFile and falls back to the defaults when it is absent.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return DefaultConfig(), nil
		}
		path = DefaultConfigFile
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := ParseConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// ParseConfig decodes YAML on top of the defaults. Unknown keys are errors.
func ParseConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	cfg, issues := raw.toConfig()
	if err := cfg.validate(issues); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw *configFile) toConfig() (*Config, []string) {
	cfg := DefaultConfig()
	var issues []string
	if raw.Logging != nil && raw.Logging.Level != nil {
		cfg.Logging.Level = *raw.Logging.Level
	}
	if raw.Diagnostics != nil && raw.Diagnostics.Log != nil {
		cfg.Diagnostics.Log = *raw.Diagnostics.Log
	}
	if raw.Console != nil && raw.Console.Color != nil {
		cfg.Console.Color = *raw.Console.Color
	}
	if g := raw.Graphics; g != nil {
		if g.Enabled != nil {
			cfg.Graphics.Enabled = *g.Enabled
		}
		if g.GridSize != nil {
			cfg.Graphics.GridSize = *g.GridSize
		}
		for idx, wall := range g.Walls {
			if len(wall) != 2 {
				issues = append(issues, fmt.Sprintf("graphics.walls[%d] must be an [x, y] pair", idx))
				continue
			}
			cfg.Graphics.Walls = append(cfg.Graphics.Walls, capability.Cell{X: wall[0], Y: wall[1]})
		}
	}
	if raw.Audio != nil && raw.Audio.Enabled != nil {
		cfg.Audio.Enabled = *raw.Audio.Enabled
	}
	if p := raw.Polynomials; p != nil {
		if p.ClearBetweenRuns != nil {
			cfg.Polynomials.ClearBetweenRuns = *p.ClearBetweenRuns
		}
		if p.PlotRange != nil {
			if len(p.PlotRange) != 2 {
				issues = append(issues, "polynomials.plotRange must be a [from, to] pair")
			} else {
				cfg.Polynomials.PlotFrom, cfg.Polynomials.PlotTo = p.PlotRange[0], p.PlotRange[1]
			}
		}
	}
	return cfg, issues
}

func (c *Config) validate(issues []string) error {
	errs := ValidationError{Issues: issues}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	if c.Graphics.GridSize < 2 || c.Graphics.GridSize > 200 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("graphics.gridSize must be between 2 and 200, got %d", c.Graphics.GridSize))
	}
	for idx, w := range c.Graphics.Walls {
		if w.X < 0 || w.Y < 0 || w.X >= c.Graphics.GridSize || w.Y >= c.Graphics.GridSize {
			errs.Issues = append(errs.Issues, fmt.Sprintf("graphics.walls[%d] (%d, %d) lies outside the grid", idx, w.X, w.Y))
		}
	}
	if c.Polynomials.PlotFrom > c.Polynomials.PlotTo {
		errs.Issues = append(errs.Issues, "polynomials.plotRange must be ascending")
	} else if c.Polynomials.PlotTo-c.Polynomials.PlotFrom > 1000 {
		errs.Issues = append(errs.Issues, "polynomials.plotRange spans more than 1000 points")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ApplyEnv overrides fields from environment variables looked up through
// lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var issues []string
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvDiagnosticsLog); ok {
		c.Diagnostics.Log = v
	}
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		if b, err := strconv.ParseBool(v); err != nil || b {
			c.Console.Color = false
		}
	}
	if v, ok := lookup(EnvGraphics); ok && v != "" {
		switch strings.ToLower(v) {
		case "on", "true", "1":
			c.Graphics.Enabled = true
		case "off", "false", "0":
			c.Graphics.Enabled = false
		default:
			issues = append(issues, fmt.Sprintf("%s must be on or off, got %q", EnvGraphics, v))
		}
	}
	return c.validate(issues)
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ParseLogLevel accepts debug, info, warn and error (any case).
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("logging.level: unknown level %q", level)
	}
	return l, nil
}
