package geometry_test

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segysak/internal/fixture"
	"segysak/pkg/geometry"
	"segysak/pkg/segy"
)

var session *fixture.Session

func TestMain(m *testing.M) {
	os.Exit(fixture.Run(m, &session))
}

func inferFixture(t *testing.T, p fixture.Param) *geometry.Geometry {
	t.Helper()
	f, err := segy.Open(session.SEGY(t, p))
	require.NoError(t, err)
	defer f.Close()

	g, err := geometry.Infer(f, segy.ByteLocs{})
	require.NoError(t, err)
	return g
}

func TestInferRegular(t *testing.T) {
	g := inferFixture(t, fixture.Params[0])

	assert.Equal(t, 100, g.Traces)
	assert.Len(t, g.Ilines, 10)
	assert.Len(t, g.Xlines, 10)
	assert.Equal(t, int32(1), g.Ilines[0])
	assert.Equal(t, int32(11), g.Xlines[0])
	assert.True(t, g.Regular())

	i, ok := g.TraceIndex(3, 12)
	require.True(t, ok)
	assert.Equal(t, 1*10+2, i)
}

func TestInferSkewed(t *testing.T) {
	g := inferFixture(t, fixture.Params[1])

	assert.Equal(t, 100, g.Traces)
	assert.Len(t, g.Ilines, 19)
	assert.Len(t, g.Xlines, 10)
	assert.Equal(t, 19*10-100, g.Missing)
	assert.False(t, g.Regular())

	_, ok := g.TraceIndex(1, 20)
	assert.False(t, ok, "the sheared footprint has no trace at inline 1 on the last crossline")
}

func TestAffineRecoversScale(t *testing.T) {
	for _, p := range fixture.Params {
		t.Run(p.ID, func(t *testing.T) {
			a, err := inferFixture(t, p).Affine()
			require.NoError(t, err)
			assert.InDelta(t, 1000, a.A, 1e-6)
			assert.InDelta(t, 0, a.B, 1e-6)
			assert.InDelta(t, 0, a.C, 1e-3)
			assert.InDelta(t, 0, a.D, 1e-6)
			assert.InDelta(t, 1000, a.E, 1e-6)
			assert.InDelta(t, 0, a.F, 1e-3)
			assert.InDelta(t, 0, a.RMS, 1e-6)
		})
	}
}

func TestCorners(t *testing.T) {
	g := inferFixture(t, fixture.Params[0])
	corners, err := g.Corners()
	require.NoError(t, err)

	assert.Equal(t, int32(1), corners[0].Iline)
	assert.Equal(t, int32(11), corners[0].Xline)
	assert.InDelta(t, 1000, corners[0].X, 1e-6)
	assert.InDelta(t, 11000, corners[0].Y, 1e-6)
	assert.InDelta(t, 10000, corners[2].X, 1e-6)
	assert.InDelta(t, 20000, corners[2].Y, 1e-6)

	minX, maxX, minY, maxY := g.Extent()
	assert.Equal(t, []float64{1000, 10000, 11000, 20000}, []float64{minX, maxX, minY, maxY})
}

func TestFitAffineRotated(t *testing.T) {
	theta := math.Pi / 6
	var il, xl, x, y []float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			il = append(il, float64(100+i))
			xl = append(xl, float64(200+j))
			x = append(x, 25*math.Cos(theta)*float64(i)-12.5*math.Sin(theta)*float64(j)+500000)
			y = append(y, 25*math.Sin(theta)*float64(i)+12.5*math.Cos(theta)*float64(j)+6000000)
		}
	}
	a, err := geometry.FitAffine(il, xl, x, y)
	require.NoError(t, err)

	gx, gy := a.Apply(102, 203)
	assert.InDelta(t, 25*math.Cos(theta)*2-12.5*math.Sin(theta)*3+500000, gx, 1e-4)
	assert.InDelta(t, 25*math.Sin(theta)*2+12.5*math.Cos(theta)*3+6000000, gy, 1e-4)
	assert.Less(t, a.RMS, 1e-4)
}

func TestFitAffineDegenerate(t *testing.T) {
	_, err := geometry.FitAffine([]float64{1, 1}, []float64{1, 2}, []float64{0, 0}, []float64{0, 0})
	assert.ErrorIs(t, err, geometry.ErrDegenerate)

	line := []float64{1, 2, 3, 4}
	_, err = geometry.FitAffine(line, line, line, line)
	assert.ErrorIs(t, err, geometry.ErrDegenerate, "positions along a single diagonal are collinear")
}

func TestApplyScalar(t *testing.T) {
	assert.Equal(t, 1234.0, geometry.ApplyScalar(1234, 0))
	assert.Equal(t, 12.34, geometry.ApplyScalar(1234, -100))
	assert.Equal(t, 12340.0, geometry.ApplyScalar(1234, 10))
}
