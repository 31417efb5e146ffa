package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segysak/internal/fixture"
	"segysak/pkg/loader"
	"segysak/pkg/segy"
)

var session *fixture.Session

func TestMain(m *testing.M) {
	os.Exit(fixture.Run(m, &session))
}

func TestLoadFixtures(t *testing.T) {
	for _, p := range fixture.Params {
		t.Run(p.ID, func(t *testing.T) {
			vol, err := loader.Load(session.SEGY(t, p), loader.Options{Workers: 3})
			require.NoError(t, err)

			ni, nx, ns := vol.Shape()
			assert.Equal(t, 10, nx)
			assert.Equal(t, 10, ns)
			assert.Equal(t, 100, vol.LiveCount())
			if p.Skew {
				assert.Equal(t, 19, ni)
			} else {
				assert.Equal(t, 10, ni)
			}
			for _, v := range vol.Data {
				if v != 0 {
					t.Fatalf("Expected an all-zero cube, found %v", v)
				}
			}
		})
	}
}

func TestLoadPlacesTraces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.segy")
	spec := segy.Spec{
		Sorting: segy.SortingInline,
		Format:  segy.FormatIEEEFloat,
		Samples: []float64{0, 2, 4},
		Ilines:  []int{5, 6},
		Xlines:  []int{1, 2, 3},
	}
	f, err := segy.Create(path, spec)
	require.NoError(t, err)
	// write traces in reverse grid order
	k := 0
	for il := int32(6); il >= 5; il-- {
		for xl := int32(3); xl >= 1; xl-- {
			require.NoError(t, f.SetHeader(k, segy.Header{segy.Inline3D: il, segy.Crossline3D: xl}))
			v := float32(il*10 + xl)
			require.NoError(t, f.SetTrace(k, []float32{v, v, v}))
			k++
		}
	}
	require.NoError(t, f.Close())

	for _, workers := range []int{0, 1, 4} {
		vol, err := loader.Load(path, loader.Options{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, []int32{5, 6}, vol.Ilines)
		assert.Equal(t, []int32{1, 2, 3}, vol.Xlines)
		assert.Equal(t, []float32{62, 62, 62}, vol.Trace(1, 1), "workers=%d", workers)
		assert.Equal(t, []float32{51, 51, 51}, vol.Trace(0, 0), "workers=%d", workers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.segy"), loader.Options{})
	assert.Error(t, err)
}
