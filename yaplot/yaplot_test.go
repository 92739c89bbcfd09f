package yaplot

import "testing"

func TestPrimitives(Te *testing.T) {
	cases := []struct{ got, want string }{
		{Color(4), "@ 4\n"},
		{Palette(3, 255, 0, 128), "@ 3 255 0 128\n"},
		{Layer(12), "y 12\n"},
		{Size(0.25), "r 0.25\n"},
		{Line([]float64{0, 0, 0}, []float64{1, 0.5, 0}), "l 0 0 0 1 0.5 0\n"},
		{Circle([]float64{0.5, 0.5, 0.5}), "c 0.5 0.5 0.5\n"},
		{Polygon([][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}), "p 3 0 0 0 1 0 0 0 1 0\n"},
		{Text([]float64{0, 0, 1}, "cage"), "t 0 0 1 cage\n"},
		{Arrow([]float64{0, 0, 0}, []float64{0, 0, 1}), "s 0 0 0 0 0 1\n"},
		{NewPage(), "\n"},
	}
	for i, c := range cases {
		if c.got != c.want {
			Te.Errorf("primitive %d: got %q want %q", i, c.got, c.want)
		}
	}
}
