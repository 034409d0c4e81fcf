package interpreter

import (
	"errors"
	"fmt"
	"log/slog"

	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/capability"
	"minicode/interpreter-go/pkg/runtime"
)

// execGraphicsCommand evaluates the argument (errors there abort the run as
// usual) and hands the command to the dispatcher. An argument of the wrong
// kind and dispatcher failures are reported as warnings and never abort the
// run.
func (i *Interpreter) execGraphicsCommand(n *ast.GraphicsCommand) error {
	var arg runtime.Value
	if n.Argument != nil {
		v, err := i.evaluateExpression(n.Argument)
		if err != nil {
			return err
		}
		arg = v
	}

	var err error
	switch n.Action {
	case ast.GraphicsMove:
		distance := float64(capability.DefaultDistance)
		if arg != nil {
			d, ok := runtime.ToNumber(arg)
			if !ok {
				i.degrade(fmt.Errorf("move distance must be a number, got %s", arg.Kind()))
				return nil
			}
			distance = d
		}
		err = i.graphics.Move(n.Direction, distance)
	case ast.GraphicsRotate:
		degrees := capability.DefaultDegrees
		if arg != nil {
			d, ok := runtime.ToNumber(arg)
			if !ok {
				i.degrade(fmt.Errorf("rotation must be a number of degrees, got %s", arg.Kind()))
				return nil
			}
			degrees = d
		}
		err = i.graphics.Rotate(n.Direction, degrees)
	case ast.GraphicsColor:
		color := capability.DefaultColor
		if arg != nil {
			color = runtime.FormatValue(arg)
		}
		err = i.graphics.SetColor(color)
	case ast.GraphicsPenDown:
		err = i.graphics.PenDown()
	case ast.GraphicsPenUp:
		err = i.graphics.PenUp()
	default:
		return newRuntimeError(KindInternal, "unknown graphics action %q", n.Action)
	}
	i.degrade(err)
	return nil
}

func (i *Interpreter) execAudioCommand(n *ast.AudioCommand) error {
	duration := capability.DefaultNoteDuration
	if n.Duration != nil {
		v, err := i.evaluateExpression(n.Duration)
		if err != nil {
			return err
		}
		d, ok := runtime.ToNumber(v)
		if !ok {
			i.degrade(fmt.Errorf("note duration must be a number, got %s", v.Kind()))
			return nil
		}
		duration = d
	}
	i.degrade(i.audio.Play(n.Note, duration))
	return nil
}

// degrade turns a capability fault into a reported warning.
func (i *Interpreter) degrade(err error) {
	if err == nil {
		return
	}
	i.logc(i.ctx, slog.LevelWarn, "capability degraded", "error", err)
	rerr := &RuntimeError{Kind: KindAdapterUnavailable, Message: err.Error(), Err: err}
	if !errors.Is(err, capability.ErrAdapterUnavailable) {
		rerr.Message = "capability call failed: " + err.Error()
	}
	i.report(rerr)
}
