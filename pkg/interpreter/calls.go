package interpreter

import (
	"log/slog"

	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/runtime"
)

// callFunction evaluates the arguments in the caller's frame, then runs the
// body in a fresh frame holding the parameters. Calls always yield Null.
func (i *Interpreter) callFunction(call *ast.FunctionCall) (runtime.Value, error) {
	def, ok := i.functions.Lookup(call.Callee)
	if !ok {
		return nil, newRuntimeError(KindUndefinedFunction, "function '%s' is not defined", call.Callee)
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		v, err := i.evaluateExpression(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if len(args) != def.Arity() {
		return nil, newRuntimeError(KindArityMismatch, "function '%s' expects %d arguments, got %d", def.Name, def.Arity(), len(args))
	}
	if i.callDepth >= i.maxCallDepth {
		return nil, newRuntimeError(KindRecursionLimit, "maximum call depth of %d exceeded in '%s'", i.maxCallDepth, def.Name)
	}

	i.callDepth++
	defer func() { i.callDepth-- }()
	i.logc(i.ctx, slog.LevelDebug, "call", "function", def.Name, "args", len(args))

	err := i.scopes.WithFrame(func() error {
		for idx, param := range def.Params {
			i.scopes.Declare(param, args[idx])
		}
		return i.execBlock(def.Body)
	})
	if err != nil {
		return nil, err
	}
	return runtime.Null, nil
}
