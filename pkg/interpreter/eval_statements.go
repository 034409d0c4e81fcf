package interpreter

import (
	"log/slog"
	"math"

	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execStatement(node ast.Statement) error {
	i.logc(i.ctx, slog.LevelDebug, "statement", "type", node.NodeType())
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		return i.execVariableDeclaration(n)
	case *ast.Assignment:
		return i.execAssignment(n)
	case *ast.FunctionDefinition:
		i.functions.Define(n.Name, n.Params, n.Body)
		return nil
	case *ast.FunctionCall:
		_, err := i.callFunction(n)
		return err
	case *ast.IfStatement:
		return i.execIf(n)
	case *ast.RepeatStatement:
		return i.execRepeat(n)
	case *ast.PrintStatement:
		return i.execPrint(n)
	case *ast.GraphicsCommand:
		return i.execGraphicsCommand(n)
	case *ast.AudioCommand:
		return i.execAudioCommand(n)
	case *ast.PolynomialDefinition:
		i.definePolynomial(n)
		return nil
	case *ast.PolynomialShow:
		i.showPolynomial(n)
		return nil
	case *ast.PolynomialPlot:
		i.plotPolynomial(n)
		return nil
	case *ast.PolynomialOperation:
		i.combinePolynomials(n)
		return nil
	default:
		return newRuntimeError(KindInternal, "unsupported statement type: %s", node.NodeType())
	}
}

// execBlock runs statements in order. Blocks share the enclosing frame.
func (i *Interpreter) execBlock(block *ast.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Body {
		if err := i.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execVariableDeclaration(n *ast.VariableDeclaration) error {
	value := runtime.Null
	if n.Value != nil {
		v, err := i.evaluateExpression(n.Value)
		if err != nil {
			return err
		}
		value = v
	}
	i.scopes.Declare(n.Name, value)
	return nil
}

func (i *Interpreter) execAssignment(n *ast.Assignment) error {
	value, err := i.evaluateExpression(n.Value)
	if err != nil {
		return err
	}
	i.scopes.Assign(n.Name, value)
	return nil
}

func (i *Interpreter) execIf(n *ast.IfStatement) error {
	cond, err := i.evaluateExpression(n.Condition)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return i.execBlock(n.Then)
	}
	return i.execBlock(n.Else)
}

// execRepeat runs the body a truncated number of times. Negative and NaN
// counts run it zero times.
func (i *Interpreter) execRepeat(n *ast.RepeatStatement) error {
	countVal, err := i.evaluateExpression(n.Count)
	if err != nil {
		return err
	}
	count, ok := runtime.ToNumber(countVal)
	if !ok {
		return newTypeMismatch("repeat count must be a number, got %s", countVal.Kind())
	}
	if math.IsNaN(count) || count < 1 {
		return nil
	}
	times := math.Trunc(count)
	for iter := 0.0; iter < times; iter++ {
		if err := i.ctx.Err(); err != nil {
			return err
		}
		if err := i.execBlock(n.Body); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execPrint(n *ast.PrintStatement) error {
	value, err := i.evaluateExpression(n.Value)
	if err != nil {
		return err
	}
	i.console.Append(runtime.FormatValue(value))
	return nil
}
