package scene

import (
	"fmt"
	"math"
	"strings"
)

// pathCursor accumulates the path described by a 'd' attribute.
type pathCursor struct {
	path       Path
	cur, start Point
	ctrl       Point // last control point, for the smooth commands
	lastOp     byte  // upper case previous command
}

func argCount(cmd byte) int {
	switch cmd {
	case 'M', 'L', 'T':
		return 2
	case 'H', 'V':
		return 1
	case 'C':
		return 6
	case 'S', 'Q':
		return 4
	case 'A':
		return 7
	}
	return 0
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0
}

// parsePathData compiles path data. On error, the path built so far
// is returned, as SVG requires rendering up to the first error.
func parsePathData(d string) (Path, error) {
	var (
		c   pathCursor
		cmd byte
		s   = strings.TrimSpace(d)
	)
	for {
		s = strings.TrimLeft(s, " \t\n\r\f")
		if s == "" {
			return c.path, nil
		}
		if isCommand(s[0]) {
			cmd = s[0]
			s = s[1:]
		} else if cmd == 0 {
			return c.path, fmt.Errorf("path data must start with a command: %q", d)
		} else if s[0] == ',' && cmd != 'z' && cmd != 'Z' {
			s = s[1:]
		}
		if cmd == 'z' || cmd == 'Z' {
			c.close()
			// a number after z is a syntax error
			if rest := strings.TrimLeft(s, " \t\n\r\f"); rest != "" && !isCommand(rest[0]) {
				return c.path, fmt.Errorf("unexpected %q after close command", rest)
			}
			continue
		}
		var args [7]float64
		n := argCount(upper(cmd))
		for i := 0; i < n; i++ {
			var ok bool
			if upper(cmd) == 'A' && (i == 3 || i == 4) {
				var flag bool
				flag, s, ok = scanFlag(s)
				if flag {
					args[i] = 1
				}
			} else {
				args[i], s, ok = scanNumber(s)
			}
			if !ok {
				return c.path, fmt.Errorf("%w: command %c expects %d arguments", errParamMismatch, cmd, n)
			}
		}
		c.apply(cmd, args)
		// implicit repeats of moveto are linetos
		if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
	}
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func (c *pathCursor) close() {
	if len(c.path) == 0 {
		return
	}
	c.path.Stop(true)
	c.cur = c.start
	c.lastOp = 'Z'
}

// reflect returns the reflection of the previous control point,
// if the previous command was of the same family.
func (c *pathCursor) reflect(family ...byte) Point {
	for _, f := range family {
		if c.lastOp == f {
			return Point{2*c.cur.X - c.ctrl.X, 2*c.cur.Y - c.ctrl.Y}
		}
	}
	return c.cur
}

func (c *pathCursor) apply(cmd byte, a [7]float64) {
	rel := cmd != upper(cmd)
	var dx, dy float64
	if rel {
		dx, dy = c.cur.X, c.cur.Y
	}
	pt := func(i int) Point { return Point{a[i] + dx, a[i+1] + dy} }
	if len(c.path) == 0 && upper(cmd) != 'M' {
		// a path must start with a moveto; be lenient
		c.path.Start(c.cur)
		c.start = c.cur
	} else if c.lastOp == 'Z' && upper(cmd) != 'M' {
		c.path.Start(c.cur)
	}
	switch upper(cmd) {
	case 'M':
		c.cur = pt(0)
		c.start = c.cur
		c.path.Start(c.cur)
	case 'L':
		c.cur = pt(0)
		c.path.Line(c.cur)
	case 'H':
		c.cur.X = a[0] + dx
		c.path.Line(c.cur)
	case 'V':
		c.cur.Y = a[0] + dy
		c.path.Line(c.cur)
	case 'C':
		c1, c2, end := pt(0), pt(2), pt(4)
		c.path.CubeBezier(c1, c2, end)
		c.ctrl, c.cur = c2, end
	case 'S':
		c1 := c.reflect('C', 'S')
		c2, end := pt(0), pt(2)
		c.path.CubeBezier(c1, c2, end)
		c.ctrl, c.cur = c2, end
	case 'Q':
		c1, end := pt(0), pt(2)
		c.path.QuadBezier(c1, end)
		c.ctrl, c.cur = c1, end
	case 'T':
		c1 := c.reflect('Q', 'T')
		end := pt(0)
		c.path.QuadBezier(c1, end)
		c.ctrl, c.cur = c1, end
	case 'A':
		end := pt(5)
		c.arcTo(a, end)
		c.cur = end
	}
	c.lastOp = upper(cmd)
}

func (c *pathCursor) arcTo(a [7]float64, end Point) {
	if end == c.cur {
		return
	}
	rx, ry := math.Abs(a[0]), math.Abs(a[1])
	if rx == 0 || ry == 0 {
		c.path.Line(end)
		return
	}
	largeArc, sweep := a[3] != 0, a[4] != 0
	cx, cy := findEllipseCenter(&rx, &ry, a[2]*math.Pi/180, c.cur.X, c.cur.Y, end.X, end.Y, !sweep, !largeArc)
	c.path.addArc([7]float64{rx, ry, a[2], a[3], a[4], end.X, end.Y}, cx, cy, c.cur.X, c.cur.Y)
}
