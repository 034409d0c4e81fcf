package interpreter

import (
	"fmt"
	"strings"

	"minicode/interpreter-go/pkg/algebra"
	"minicode/interpreter-go/pkg/ast"
	"minicode/interpreter-go/pkg/capability"
)

// Polynomial statements never abort a run: every failure is reported as a
// diagnostic and the next statement executes.

func (i *Interpreter) definePolynomial(n *ast.PolynomialDefinition) {
	source := strings.TrimSpace(n.Source)
	if len(source) >= 2 && strings.HasPrefix(source, `"`) && strings.HasSuffix(source, `"`) {
		source = source[1 : len(source)-1]
	}
	expr, err := algebra.Parse(source)
	if err != nil {
		i.report(&RuntimeError{
			Kind:    KindPolynomialParse,
			Message: fmt.Sprintf("cannot define polynomial '%s': %v", n.Name, err),
			Err:     err,
		})
		return
	}
	i.polynomials.Set(n.Name, expr)
	i.console.Append(fmt.Sprintf("Polynomial '%s' defined as: %s", n.Name, expr))
}

func (i *Interpreter) showPolynomial(n *ast.PolynomialShow) {
	expr, ok := i.lookupPolynomial(n.Name)
	if !ok {
		return
	}
	i.console.Append("Polynomial:")
	i.console.Append(expr.String())
	if i.panelMissing("display") {
		return
	}
	i.toPanel("display", func() error { return i.panel.Display(expr, n.Name) })
}

func (i *Interpreter) plotPolynomial(n *ast.PolynomialPlot) {
	expr, ok := i.lookupPolynomial(n.Name)
	if !ok {
		return
	}
	i.console.Append(fmt.Sprintf("Plotting polynomial '%s'...", n.Name))
	if i.panelMissing("plot") {
		return
	}
	i.toPanel("plot", func() error { return i.panel.Plot(expr, n.Name) })
}

// combinePolynomials stores the simplified result under "<left>_<op>_<right>".
func (i *Interpreter) combinePolynomials(n *ast.PolynomialOperation) {
	var missing []string
	for _, name := range []string{n.Left, n.Right} {
		if !i.polynomials.Has(name) {
			missing = append(missing, fmt.Sprintf("'%s'", name))
		}
	}
	if len(missing) > 0 {
		i.report(newRuntimeError(KindMissingOperand, "polynomial %s is not defined", strings.Join(missing, " and ")))
		return
	}
	a, _ := i.polynomials.Get(n.Left)
	b, _ := i.polynomials.Get(n.Right)

	var (
		result algebra.Expr
		err    error
	)
	switch n.Operator {
	case ast.PolynomialSum:
		result, err = algebra.Add(a, b)
	case ast.PolynomialDifference:
		result, err = algebra.Sub(a, b)
	case ast.PolynomialProduct:
		result, err = algebra.Mul(a, b)
	case ast.PolynomialQuotient:
		result, err = algebra.Quo(a, b)
	default:
		i.report(newTypeMismatch("unknown polynomial operation '%s'", n.Operator))
		return
	}
	if err != nil {
		rerr := algebraError(err)
		rerr.Message = fmt.Sprintf("cannot %s '%s' and '%s': %s", operationVerb(n.Operator), n.Left, n.Right, rerr.Message)
		i.report(rerr)
		return
	}

	key := fmt.Sprintf("%s_%s_%s", n.Left, n.Operator, n.Right)
	i.polynomials.Set(key, result)
	i.console.Append(fmt.Sprintf("New polynomial '%s' = %s", key, result))
	i.toPanel("display", func() error { return i.panel.Display(result, key) })
}

func operationVerb(op ast.PolynomialOperator) string {
	switch op {
	case ast.PolynomialSum:
		return "add"
	case ast.PolynomialDifference:
		return "subtract"
	case ast.PolynomialProduct:
		return "multiply"
	default:
		return "divide"
	}
}

func (i *Interpreter) lookupPolynomial(name string) (algebra.Expr, bool) {
	expr, ok := i.polynomials.Get(name)
	if !ok {
		i.report(newRuntimeError(KindMissingOperand, "polynomial '%s' does not exist", name))
	}
	return expr, ok
}

// panelMissing warns when show or plot has no panel to draw on. Combined
// results are still printed, so combine stays silent without a panel.
func (i *Interpreter) panelMissing(op string) bool {
	if i.panel != nil {
		return false
	}
	i.degrade(fmt.Errorf("polynomial panel %s: %w", op, capability.ErrAdapterUnavailable))
	return true
}

// toPanel forwards to the panel when one is attached. Panel errors and
// panics become warnings.
func (i *Interpreter) toPanel(op string, fn func() error) {
	if i.panel == nil {
		return
	}
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panel %s panicked: %v", op, r)
			}
		}()
		return fn()
	}()
	if err != nil {
		i.degrade(fmt.Errorf("polynomial panel %s: %w", op, err))
	}
}
