package escape

import "testing"

func TestIterate(t *testing.T) {
	tcs := []struct {
		name    string
		cx, cy  float32
		maxIter int32
		want    int32
	}{
		{name: "origin", cx: 0, cy: 0, maxIter: 100, want: 100},
		{name: "period two", cx: -1, cy: 0, maxIter: 1000, want: 1000},
		{name: "period two imaginary", cx: 0, cy: 1, maxIter: 500, want: 500},
		{name: "cardioid cusp side", cx: 0.25, cy: 0, maxIter: 64, want: 64},
		{name: "escapes after one", cx: 1, cy: 0, maxIter: 100, want: 1},
		{name: "escapes after four", cx: 0.5, cy: 0, maxIter: 100, want: 4},
		{name: "capped", cx: 0.5, cy: 0, maxIter: 3, want: 3},
		{name: "on radius", cx: 2, cy: 0, maxIter: 100, want: 0},
		{name: "on radius negative", cx: -2, cy: 0, maxIter: 100, want: 0},
		{name: "on radius imaginary", cx: 0, cy: 2, maxIter: 100, want: 0},
		{name: "outside radius", cx: 1.5, cy: 1.5, maxIter: 100, want: 0},
		{name: "zero cap", cx: 0, cy: 0, maxIter: 0, want: 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := Iterate(tc.cx, tc.cy, tc.maxIter)
			if got != tc.want {
				t.Errorf("Iterate(%v, %v, %d) = %d, want %d", tc.cx, tc.cy, tc.maxIter, got, tc.want)
			}
		})
	}
}

func TestIterate_RealAxisInterior(t *testing.T) {
	// The real-axis slice of the set is [-2, 0.25]; points well inside never escape.
	for x := float32(-1.5); x < 0.2; x += 0.05 {
		if got := Iterate(x, 0, 200); got != 200 {
			t.Errorf("Iterate(%v, 0, 200) = %d, want 200", x, got)
		}
	}
}

func BenchmarkIterate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Iterate(-0.7435, 0.1314, 1000)
	}
}

// roundedStep advances z = z*z + c one step. The conversions round every
// product to float32 before it is added.
func roundedStep(x, y, cx, cy float32) (float32, float32) {
	re := float32(float32(x*x) - float32(y*y))
	return re + cx, float32(2*x*y) + cy
}

func TestIterate_RoundsEachStep(t *testing.T) {
	// Points near the boundary, where a single ulp changes the count.
	points := [][2]float32{
		{-0.7435669, 0.1314023},
		{-0.74364, 0.13182},
		{0.2501, 0.0001},
		{-1.7548776, 0.0000001},
		{0.3602404, -0.6413130},
	}

	const maxIter = 5000
	for _, p := range points {
		cx, cy := p[0], p[1]

		var want int32
		x, y := cx, cy
		for float32(x*x)+float32(y*y) < Bailout && want < maxIter {
			x, y = roundedStep(x, y, cx, cy)
			want++
		}

		if got := Iterate(cx, cy, maxIter); got != want {
			t.Errorf("Iterate(%v, %v) = %d, want %d", cx, cy, got, want)
		}
	}
}
