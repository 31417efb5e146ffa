package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"segysak/internal/models"
)

// Axis names accepted by the viewer.
const (
	AxisIline  = "iline"
	AxisXline  = "xline"
	AxisSample = "sample"
)

// Viewer renders sections and time slices of a seismic cube as grayscale
// images. Amplitudes are mapped symmetrically around zero, so zero is mid
// gray and +/-Clip are white and black.
type Viewer struct {
	volume *models.Volume

	// Clip is the amplitude mapped to full white. Defaults to the absolute
	// maximum of the cube.
	Clip float64

	// Quality is the JPEG quality used when saving slices
	Quality int
}

// NewViewer creates a viewer for the volume
func NewViewer(volume *models.Volume, quality int) *Viewer {
	clip := 0.0
	for _, v := range volume.Data {
		clip = math.Max(clip, math.Abs(float64(v)))
	}
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	return &Viewer{volume: volume, Clip: clip, Quality: quality}
}

func (v *Viewer) gray(a float32) color.Gray16 {
	if v.Clip <= 0 {
		return color.Gray16{Y: 32768}
	}
	t := (float64(a)/v.Clip + 1) / 2
	return color.Gray16{Y: uint16(math.Max(0, math.Min(65535, t*65535)))}
}

// AxisLength returns the number of positions along axis.
func (v *Viewer) AxisLength(axis string) (int, error) {
	ni, nx, ns := v.volume.Shape()
	switch axis {
	case AxisIline:
		return ni, nil
	case AxisXline:
		return nx, nil
	case AxisSample:
		return ns, nil
	}
	return 0, fmt.Errorf("invalid axis: %s (must be %s, %s or %s)", axis, AxisIline, AxisXline, AxisSample)
}

// ExtractSlice extracts a 2D slice at the given index along axis. Inline and
// crossline sections put samples down the image; sample slices put inlines
// across and crosslines down.
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}
	n, err := v.AxisLength(axis)
	if err != nil {
		return nil, err
	}
	if position >= n {
		return nil, fmt.Errorf("position %d exceeds %s axis length %d", position, axis, n)
	}

	ni, nx, ns := v.volume.Shape()
	var img *image.Gray16

	switch axis {
	case AxisIline:
		img = image.NewGray16(image.Rect(0, 0, nx, ns))
		for j := 0; j < nx; j++ {
			tr := v.volume.Trace(position, j)
			for k := 0; k < ns; k++ {
				img.SetGray16(j, k, v.gray(tr[k]))
			}
		}

	case AxisXline:
		img = image.NewGray16(image.Rect(0, 0, ni, ns))
		for i := 0; i < ni; i++ {
			tr := v.volume.Trace(i, position)
			for k := 0; k < ns; k++ {
				img.SetGray16(i, k, v.gray(tr[k]))
			}
		}

	case AxisSample:
		img = image.NewGray16(image.Rect(0, 0, ni, nx))
		for i := 0; i < ni; i++ {
			for j := 0; j < nx; j++ {
				img.SetGray16(i, j, v.gray(v.volume.Data[v.volume.Index(i, j, position)]))
			}
		}
	}

	return img, nil
}

// ExtractRegion extracts a sub-cube starting at grid index (i0, j0, k0)
func (v *Viewer) ExtractRegion(i0, j0, k0, ni, nx, ns int) (*models.Volume, error) {
	if i0 < 0 || j0 < 0 || k0 < 0 {
		return nil, fmt.Errorf("start indices must be non-negative")
	}
	if ni <= 0 || nx <= 0 || ns <= 0 {
		return nil, fmt.Errorf("region dimensions must be positive")
	}
	vi, vx, vs := v.volume.Shape()
	if i0+ni > vi || j0+nx > vx || k0+ns > vs {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	region := models.NewVolume(
		v.volume.Ilines[i0:i0+ni],
		v.volume.Xlines[j0:j0+nx],
		v.volume.Samples[k0:k0+ns],
	)
	for i := 0; i < ni; i++ {
		for j := 0; j < nx; j++ {
			copy(region.Trace(i, j), v.volume.Trace(i0+i, j0+j)[k0:k0+ns])
			region.Live[i*nx+j] = v.volume.Live[(i0+i)*vx+j0+j]
		}
	}
	return region, nil
}

// SaveSlice saves an extracted slice as a JPEG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: v.Quality}); err != nil {
		return err
	}
	return file.Close()
}

// SaveSliceSequence extracts and saves every slice along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	maxPos, err := v.AxisLength(axis)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
