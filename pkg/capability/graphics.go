package capability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"
	DirectionLeft     = "left"
	DirectionRight    = "right"

	DefaultDistance = 1
	DefaultDegrees  = 90.0
	DefaultColor    = "black"
)

// GraphicsFactory builds the adapter on first use.
type GraphicsFactory func() (GraphicsAdapter, error)

// GraphicsState is the dispatcher's own view of the turtle.
type GraphicsState struct {
	X, Y    int
	Heading float64
	PenDown bool
	Color   string
}

// GraphicsDispatcher translates turtle commands into adapter calls. The
// heading is owned here and changes synchronously; the adapter owns the
// animated view and may apply rotations later. Positions are re-read from
// the adapter after every move.
type GraphicsDispatcher struct {
	factory GraphicsFactory
	adapter GraphicsAdapter
	state   GraphicsState
	logger  *slog.Logger
}

func NewGraphicsDispatcher(factory GraphicsFactory, logger *slog.Logger) *GraphicsDispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &GraphicsDispatcher{
		factory: factory,
		state:   GraphicsState{PenDown: true, Color: DefaultColor},
		logger:  logger,
	}
}

// State returns a copy of the logical turtle state.
func (d *GraphicsDispatcher) State() GraphicsState { return d.state }

// Connected reports whether an adapter has been constructed.
func (d *GraphicsDispatcher) Connected() bool { return d.adapter != nil }

func (d *GraphicsDispatcher) ensure() (GraphicsAdapter, error) {
	if d.adapter != nil {
		return d.adapter, nil
	}
	if d.factory == nil {
		return nil, ErrAdapterUnavailable
	}
	adapter, err := d.factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdapterUnavailable, err)
	}
	if adapter == nil {
		return nil, ErrAdapterUnavailable
	}
	d.adapter = adapter
	if x, y, err := adapter.Position(); err == nil {
		d.state.X, d.state.Y = x, y
	}
	d.logger.Debug("graphics adapter connected", "x", d.state.X, "y", d.state.Y)
	return adapter, nil
}

func (d *GraphicsDispatcher) call(op string, fn func(GraphicsAdapter) error) error {
	err := guard("graphics", op, func() error {
		adapter, err := d.ensure()
		if err != nil {
			return err
		}
		return fn(adapter)
	})
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrAdapterUnavailable) {
			level = slog.LevelInfo
		}
		d.logger.Log(context.Background(), level, "graphics command degraded", "op", op, "error", err)
	}
	return err
}

// StepCount converts a distance into whole grid steps: fractions are
// truncated and anything below one becomes one.
func StepCount(distance float64) int {
	if math.IsNaN(distance) || distance < 1 {
		return DefaultDistance
	}
	if distance > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(distance)
}

// Move walks the turtle forward or backward.
func (d *GraphicsDispatcher) Move(direction string, distance float64) error {
	if direction != DirectionForward && direction != DirectionBackward {
		return &Fault{Capability: "graphics", Op: "move", Err: fmt.Errorf("%w %q", ErrUnknownDirection, direction)}
	}
	steps := StepCount(distance)
	return d.call("move", func(adapter GraphicsAdapter) error {
		s := d.state
		nx, ny, err := adapter.Move(s.X, s.Y, s.Heading, direction, steps, s.PenDown, s.Color)
		if err != nil {
			return err
		}
		d.state.X, d.state.Y = nx, ny
		if px, py, err := adapter.Position(); err == nil {
			d.state.X, d.state.Y = px, py
		}
		return nil
	})
}

// Rotate turns the turtle. The logical heading is updated before the
// adapter is contacted, so it changes even when no adapter is available.
func (d *GraphicsDispatcher) Rotate(direction string, degrees float64) error {
	switch direction {
	case DirectionLeft:
		d.state.Heading = normalizeHeading(d.state.Heading + degrees)
	case DirectionRight:
		d.state.Heading = normalizeHeading(d.state.Heading - degrees)
	default:
		return &Fault{Capability: "graphics", Op: "rotate", Err: fmt.Errorf("%w %q", ErrUnknownDirection, direction)}
	}
	return d.call("rotate", func(adapter GraphicsAdapter) error {
		return adapter.Rotate(direction)
	})
}

func (d *GraphicsDispatcher) SetColor(color string) error {
	d.state.Color = color
	return d.call("color", func(adapter GraphicsAdapter) error {
		return adapter.SetColor(color)
	})
}

// PenDown and PenUp only change logical state; the pen travels to the
// adapter with the next move.
func (d *GraphicsDispatcher) PenDown() error {
	d.state.PenDown = true
	return d.call("penDown", func(GraphicsAdapter) error { return nil })
}

func (d *GraphicsDispatcher) PenUp() error {
	d.state.PenDown = false
	return d.call("penUp", func(GraphicsAdapter) error { return nil })
}

func normalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
