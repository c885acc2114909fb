// Package statetest provides a Surface that records drawing calls, for
// tests that check what was drawn without rasterizing it.
package statetest

import (
	"fmt"
	"image/color"
)

// Op is one recorded surface call, formatted as "Name(args)".
type Op string

// Recorder implements state.Surface and render.Surface.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) add(format string, args ...any) {
	r.Ops = append(r.Ops, Op(fmt.Sprintf(format, args...)))
}

func (r *Recorder) SetColor(c color.Color) {
	cr, cg, cb, ca := c.RGBA()
	r.add("SetColor(%02x%02x%02x%02x)", cr>>8, cg>>8, cb>>8, ca>>8)
}

func (r *Recorder) SetLineWidth(w float64)    { r.add("SetLineWidth(%g)", w) }
func (r *Recorder) MoveTo(x, y float64)       { r.add("MoveTo(%g,%g)", x, y) }
func (r *Recorder) LineTo(x, y float64)       { r.add("LineTo(%g,%g)", x, y) }
func (r *Recorder) Stroke()                   { r.add("Stroke()") }
func (r *Recorder) DrawDot(x, y, rad float64) { r.add("DrawDot(%g,%g,%g)", x, y, rad) }

func (r *Recorder) DrawGlyph(glyph string, x, y, size float64) {
	r.add("DrawGlyph(%s,%g,%g,%g)", glyph, x, y, size)
}

func (r *Recorder) Clear(bg color.Color) {
	cr, cg, cb, ca := bg.RGBA()
	r.add("Clear(%02x%02x%02x%02x)", cr>>8, cg>>8, cb>>8, ca>>8)
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Filter returns the recorded calls whose name matches one of names.
func (r *Recorder) Filter(names ...string) []Op {
	var out []Op
	for _, op := range r.Ops {
		for _, n := range names {
			if len(op) > len(n) && string(op[:len(n)]) == n && op[len(n)] == '(' {
				out = append(out, op)
				break
			}
		}
	}
	return out
}
