package capability

import (
	"fmt"
	"math"
	"strings"

	"minicode/interpreter-go/pkg/algebra"
	"minicode/interpreter-go/pkg/runtime"
)

// TextPanel is a PolynomialPanel that writes to a console. Plot prints an
// evaluation table over an integer range.
type TextPanel struct {
	out     Console
	from    int
	to      int
	entries []string
}

// NewTextPanel returns a panel that plots x in [from, to].
func NewTextPanel(out Console, from, to int) *TextPanel {
	if from > to {
		from, to = to, from
	}
	return &TextPanel{out: out, from: from, to: to}
}

func (p *TextPanel) Display(expr algebra.Expr, name string) error {
	line := fmt.Sprintf("[%s] %s", name, expr)
	p.entries = append(p.entries, line)
	p.out.Append(line)
	return nil
}

func (p *TextPanel) Plot(expr algebra.Expr, name string) error {
	variable := expr.Variable()
	if variable == "" {
		variable = "x"
	}
	header := fmt.Sprintf("plot %s(%s) = %s", name, variable, expr)
	p.entries = append(p.entries, header)
	p.out.Append(header)
	for x := p.from; x <= p.to; x++ {
		y := expr.Eval(float64(x))
		cell := runtime.FormatNumber(y)
		if math.IsInf(y, 0) || math.IsNaN(y) {
			cell = "undefined"
		}
		line := fmt.Sprintf("  %s = %-4d | %s", variable, x, cell)
		p.out.Append(strings.TrimRight(line, " "))
	}
	return nil
}

// Clear forgets what the panel has shown.
func (p *TextPanel) Clear() {
	p.entries = nil
}

// Entries lists the Display and Plot headers shown since the last Clear.
func (p *TextPanel) Entries() []string {
	out := make([]string, len(p.entries))
	copy(out, p.entries)
	return out
}
