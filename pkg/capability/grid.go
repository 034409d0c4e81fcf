package capability

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

const DefaultGridSize = 10

type Cell struct {
	X, Y int
}

// Segment is one drawn step of the trail.
type Segment struct {
	From, To Cell
	Color    string
}

type gridActionKind int

const (
	gridStep gridActionKind = iota
	gridRotate
	gridColor
)

type gridAction struct {
	kind     gridActionKind
	to       Cell
	draw     bool
	color    string
	rotation string
}

// GridSimulator is a headless turtle on a square grid with optional walls.
// Moves, rotations and colour changes are queued and only committed by
// Flush, the way an animated view plays them back after the program has
// finished. Position reports the committed cell.
type GridSimulator struct {
	size  int
	walls map[Cell]bool
	start Cell

	pos   Cell
	angle float64
	color string
	queue []gridAction
	trail []Segment
}

// NewGridSimulator creates a size×size grid with the turtle in the middle,
// facing east (0°). Walls outside the grid are ignored.
func NewGridSimulator(size int, walls ...Cell) *GridSimulator {
	if size <= 0 {
		size = DefaultGridSize
	}
	g := &GridSimulator{size: size, walls: make(map[Cell]bool)}
	for _, w := range walls {
		if g.inside(w) {
			g.walls[w] = true
		}
	}
	g.start = Cell{X: size / 2, Y: size / 2}
	g.Clear()
	return g
}

func (g *GridSimulator) Size() int { return g.size }

func (g *GridSimulator) inside(c Cell) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// planned replays the queue on top of the committed state.
func (g *GridSimulator) planned() (Cell, float64) {
	pos, angle := g.pos, g.angle
	for _, a := range g.queue {
		switch a.kind {
		case gridStep:
			pos = a.to
		case gridRotate:
			angle = applyRotation(angle, a.rotation)
		}
	}
	return pos, angle
}

// Move queues up to distance single steps from the planned position along
// the planned visual heading, stopping at the grid edge or a wall. The
// coordinates and heading passed in are informational.
func (g *GridSimulator) Move(_, _ int, _ float64, direction string, distance int, penDown bool, color string) (int, int, error) {
	cur, angle := g.planned()
	dx, dy := headingDelta(angle, direction)
	for i := 0; i < max(1, distance); i++ {
		next := Cell{X: cur.X + dx, Y: cur.Y + dy}
		if !g.inside(next) || g.walls[next] {
			break
		}
		g.queue = append(g.queue, gridAction{kind: gridStep, to: next, draw: penDown, color: color})
		cur = next
	}
	return cur.X, cur.Y, nil
}

func (g *GridSimulator) Rotate(direction string) error {
	g.queue = append(g.queue, gridAction{kind: gridRotate, rotation: direction})
	return nil
}

func (g *GridSimulator) SetColor(color string) error {
	g.queue = append(g.queue, gridAction{kind: gridColor, color: color})
	return nil
}

func (g *GridSimulator) Position() (int, int, error) {
	return g.pos.X, g.pos.Y, nil
}

// Heading is the committed visual heading in degrees.
func (g *GridSimulator) Heading() float64 { return g.angle }

// Pending is the number of queued actions.
func (g *GridSimulator) Pending() int { return len(g.queue) }

// Flush commits every queued action in order.
func (g *GridSimulator) Flush() error {
	for _, a := range g.queue {
		switch a.kind {
		case gridStep:
			if a.draw {
				g.trail = append(g.trail, Segment{From: g.pos, To: a.to, Color: a.color})
			}
			g.pos = a.to
		case gridRotate:
			g.angle = applyRotation(g.angle, a.rotation)
		case gridColor:
			g.color = a.color
		}
	}
	g.queue = g.queue[:0]
	return nil
}

// Reset drops queued actions without committing them.
func (g *GridSimulator) Reset() {
	g.queue = g.queue[:0]
}

// Clear restores the initial state: turtle in the middle, no trail, no queue.
func (g *GridSimulator) Clear() {
	g.pos = g.start
	g.angle = 0
	g.color = DefaultColor
	g.queue = nil
	g.trail = nil
}

func (g *GridSimulator) Trail() []Segment {
	out := make([]Segment, len(g.trail))
	copy(out, g.trail)
	return out
}

// Render draws the committed grid: '#' walls, '*' visited by the pen, the
// turtle as an arrow for its heading and '.' elsewhere.
func (g *GridSimulator) Render(w io.Writer) error {
	drawn := make(map[Cell]bool, len(g.trail)*2)
	for _, s := range g.trail {
		drawn[s.From] = true
		drawn[s.To] = true
	}
	bw := bufio.NewWriter(w)
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			c := Cell{X: x, Y: y}
			switch {
			case c == g.pos:
				bw.WriteByte(turtleGlyph(g.angle))
			case g.walls[c]:
				bw.WriteByte('#')
			case drawn[c]:
				bw.WriteByte('*')
			default:
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// applyRotation turns by a quarter for left/right; any other word is read as
// an absolute heading in degrees and ignored when it is not a number.
func applyRotation(angle float64, rotation string) float64 {
	switch rotation {
	case DirectionLeft:
		return normalizeHeading(angle + 90)
	case DirectionRight:
		return normalizeHeading(angle - 90)
	default:
		deg, err := strconv.Atoi(rotation)
		if err != nil {
			return angle
		}
		return normalizeHeading(float64(deg))
	}
}

// headingDelta maps a heading onto a unit grid step. Screen rows grow
// downwards, so north is -y.
func headingDelta(angle float64, direction string) (int, int) {
	rad := angle * math.Pi / 180
	dx := int(math.Round(math.Cos(rad)))
	dy := int(math.Round(-math.Sin(rad)))
	if direction == DirectionBackward {
		dx, dy = -dx, -dy
	}
	return dx, dy
}

func turtleGlyph(angle float64) byte {
	switch int(math.Round(angle/90)) % 4 {
	case 1:
		return '^'
	case 2:
		return '<'
	case 3:
		return 'v'
	default:
		return '>'
	}
}
