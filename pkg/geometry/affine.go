package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate is returned when the grid positions do not span a plane.
var ErrDegenerate = errors.New("grid positions are collinear")

// Affine maps grid positions to world coordinates:
//
//	x = A*il + B*xl + C
//	y = D*il + E*xl + F
type Affine struct {
	A, B, C float64
	D, E, F float64

	// RMS is the root mean square misfit of the fit in world units.
	RMS float64
}

// Apply maps a grid position to world coordinates.
func (a Affine) Apply(il, xl float64) (x, y float64) {
	return a.A*il + a.B*xl + a.C, a.D*il + a.E*xl + a.F
}

// FitAffine finds the least squares affine transform taking (il, xl) to
// (x, y). At least three non-collinear positions are needed.
func FitAffine(il, xl, x, y []float64) (Affine, error) {
	n := len(il)
	if len(xl) != n || len(x) != n || len(y) != n {
		return Affine{}, fmt.Errorf("coordinate slices differ in length")
	}
	if n < 3 {
		return Affine{}, fmt.Errorf("%w: need 3 positions, have %d", ErrDegenerate, n)
	}

	design := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, il[i])
		design.Set(i, 1, xl[i])
		design.Set(i, 2, 1)
	}

	var qr mat.QR
	qr.Factorize(design)
	if cond := qr.Cond(); math.IsInf(cond, 1) || cond > 1e12 {
		return Affine{}, ErrDegenerate
	}

	var cx, cy mat.VecDense
	if err := qr.SolveVecTo(&cx, false, mat.NewVecDense(n, append([]float64(nil), x...))); err != nil {
		return Affine{}, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}
	if err := qr.SolveVecTo(&cy, false, mat.NewVecDense(n, append([]float64(nil), y...))); err != nil {
		return Affine{}, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}

	a := Affine{
		A: cx.AtVec(0), B: cx.AtVec(1), C: cx.AtVec(2),
		D: cy.AtVec(0), E: cy.AtVec(1), F: cy.AtVec(2),
	}

	resid := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		px, py := a.Apply(il[i], xl[i])
		resid = append(resid, px-x[i], py-y[i])
	}
	a.RMS = floats.Norm(resid, 2) / math.Sqrt(float64(n))
	return a, nil
}

// Corner is a grid corner and its world position.
type Corner struct {
	Iline, Xline int32
	X, Y         float64
}

// Corners returns the world positions of the four corners of the grid
// bounding box, in the order (min il, min xl), (min il, max xl),
// (max il, max xl), (max il, min xl).
func (g *Geometry) Corners() ([4]Corner, error) {
	var out [4]Corner
	a, err := g.Affine()
	if err != nil {
		return out, err
	}
	il0, il1 := g.Ilines[0], g.Ilines[len(g.Ilines)-1]
	xl0, xl1 := g.Xlines[0], g.Xlines[len(g.Xlines)-1]
	for i, k := range []Key{{il0, xl0}, {il0, xl1}, {il1, xl1}, {il1, xl0}} {
		x, y := a.Apply(float64(k.Iline), float64(k.Xline))
		out[i] = Corner{Iline: k.Iline, Xline: k.Xline, X: x, Y: y}
	}
	return out, nil
}

// Extent returns the bounding box of the trace world coordinates.
func (g *Geometry) Extent() (minX, maxX, minY, maxY float64) {
	return floats.Min(g.x), floats.Max(g.x), floats.Min(g.y), floats.Max(g.y)
}
