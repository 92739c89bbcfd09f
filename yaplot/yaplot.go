//Package yaplot builds commands for the Yaplot visualizer
//(github.com/vitroid/Yaplot). Every primitive returns one text line;
//drawing is string concatenation. Coordinates are taken from the first
//three components of each point.
package yaplot

import (
	"fmt"
	"strings"
)

//Color selects a palette entry for the following primitives.
func Color(n int) string {
	return fmt.Sprintf("@ %d\n", n)
}

//Palette redefines palette entry n as an r,g,b triplet (0..255).
func Palette(n, r, g, b int) string {
	return fmt.Sprintf("@ %d %d %d %d\n", n, r, g, b)
}

//Layer moves the following primitives to layer n.
func Layer(n int) string {
	return fmt.Sprintf("y %d\n", n)
}

//Size sets the radius used by Circle.
func Size(r float64) string {
	return fmt.Sprintf("r %g\n", r)
}

//Line draws a segment from a to b.
func Line(a, b []float64) string {
	return fmt.Sprintf("l %g %g %g %g %g %g\n", a[0], a[1], a[2], b[0], b[1], b[2])
}

//Circle draws a circle at p.
func Circle(p []float64) string {
	return fmt.Sprintf("c %g %g %g\n", p[0], p[1], p[2])
}

//Polygon draws a filled polygon through the given points.
func Polygon(pts [][]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "p %d", len(pts))
	for _, p := range pts {
		fmt.Fprintf(&b, " %g %g %g", p[0], p[1], p[2])
	}
	b.WriteByte('\n')
	return b.String()
}

//Text writes s at p.
func Text(p []float64, s string) string {
	return fmt.Sprintf("t %g %g %g %s\n", p[0], p[1], p[2], s)
}

//Arrow draws an arrow from a to b.
func Arrow(a, b []float64) string {
	return fmt.Sprintf("s %g %g %g %g %g %g\n", a[0], a[1], a[2], b[0], b[1], b[2])
}

//NewPage ends the current frame.
func NewPage() string {
	return "\n"
}
