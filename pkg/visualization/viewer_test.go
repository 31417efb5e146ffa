package visualization

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"segysak/internal/models"
)

// testVolume builds a cube where every sample holds its sample index minus
// a constant, so the amplitudes run from -2 to +2.
func testVolume() *models.Volume {
	vol := models.NewVolume([]int32{1, 2, 3, 4}, []int32{10, 11, 12}, []float64{0, 4, 8, 12, 16})
	ni, nx, ns := vol.Shape()
	for i := 0; i < ni; i++ {
		for j := 0; j < nx; j++ {
			tr := vol.Trace(i, j)
			for k := 0; k < ns; k++ {
				tr[k] = float32(k - 2)
			}
			vol.Live[i*nx+j] = true
		}
	}
	return vol
}

// TestNewViewer verifies the clip is taken from the data
func TestNewViewer(t *testing.T) {
	viewer := NewViewer(testVolume(), 0)
	if viewer.Clip != 2 {
		t.Errorf("Expected clip 2, got %f", viewer.Clip)
	}
	if viewer.Quality != 75 {
		t.Errorf("Expected default JPEG quality 75, got %d", viewer.Quality)
	}
}

// TestExtractSlice verifies slice dimensions and amplitude mapping along each axis
func TestExtractSlice(t *testing.T) {
	viewer := NewViewer(testVolume(), 90)

	cases := []struct {
		axis          string
		width, height int
	}{
		{AxisIline, 3, 5},
		{AxisXline, 4, 5},
		{AxisSample, 4, 3},
	}
	for _, c := range cases {
		img, err := viewer.ExtractSlice(c.axis, 1)
		if err != nil {
			t.Fatalf("Failed to extract %s slice: %v", c.axis, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != c.width || bounds.Dy() != c.height {
			t.Errorf("Expected %s slice dimensions %dx%d, got %dx%d",
				c.axis, c.width, c.height, bounds.Dx(), bounds.Dy())
		}
	}

	img, _ := viewer.ExtractSlice(AxisIline, 0)
	gray := img.(*image.Gray16)
	if y := gray.Gray16At(0, 0).Y; y != 0 {
		t.Errorf("Expected -clip to map to black, got %d", y)
	}
	if y := gray.Gray16At(0, 2).Y; y < 32767 || y > 32768 {
		t.Errorf("Expected zero to map to mid gray, got %d", y)
	}
	if y := gray.Gray16At(0, 4).Y; y != 65535 {
		t.Errorf("Expected +clip to map to white, got %d", y)
	}

	if _, err := viewer.ExtractSlice("depth", 0); err == nil {
		t.Error("Expected error for invalid axis, got nil")
	}
	if _, err := viewer.ExtractSlice(AxisSample, 5); err == nil {
		t.Error("Expected error for out of bounds position, got nil")
	}
	if _, err := viewer.ExtractSlice(AxisIline, -1); err == nil {
		t.Error("Expected error for negative position, got nil")
	}
}

// TestZeroCubeIsMidGray verifies an all-zero cube renders without dividing by zero
func TestZeroCubeIsMidGray(t *testing.T) {
	vol := models.NewVolume([]int32{1, 2}, []int32{1, 2}, []float64{0, 1})
	viewer := NewViewer(vol, 90)
	img, err := viewer.ExtractSlice(AxisSample, 0)
	if err != nil {
		t.Fatalf("Failed to extract slice: %v", err)
	}
	if y := img.(*image.Gray16).Gray16At(1, 1).Y; y != 32768 {
		t.Errorf("Expected mid gray, got %d", y)
	}
}

// TestExtractRegion verifies that sub-cubes are copied with their axes
func TestExtractRegion(t *testing.T) {
	viewer := NewViewer(testVolume(), 90)

	region, err := viewer.ExtractRegion(1, 1, 2, 2, 2, 3)
	if err != nil {
		t.Fatalf("Failed to extract region: %v", err)
	}
	ni, nx, ns := region.Shape()
	if ni != 2 || nx != 2 || ns != 3 {
		t.Errorf("Expected region shape (2, 2, 3), got (%d, %d, %d)", ni, nx, ns)
	}
	if region.Ilines[0] != 2 || region.Xlines[0] != 11 || region.Samples[0] != 8 {
		t.Errorf("Region axes start at wrong position: %d %d %f",
			region.Ilines[0], region.Xlines[0], region.Samples[0])
	}
	if tr := region.Trace(1, 1); tr[0] != 0 || tr[2] != 2 {
		t.Errorf("Region samples mismatch: %v", tr)
	}
	if region.LiveCount() != 4 {
		t.Errorf("Expected 4 live traces, got %d", region.LiveCount())
	}

	if _, err := viewer.ExtractRegion(-1, 0, 0, 1, 1, 1); err == nil {
		t.Error("Expected error for negative start index, got nil")
	}
	if _, err := viewer.ExtractRegion(0, 0, 0, 0, 1, 1); err == nil {
		t.Error("Expected error for zero size, got nil")
	}
	if _, err := viewer.ExtractRegion(3, 0, 0, 2, 1, 1); err == nil {
		t.Error("Expected error for region extending beyond volume, got nil")
	}
}

// TestSaveSliceSequence verifies that a sequence of slices can be saved
func TestSaveSliceSequence(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping file I/O test in short mode")
	}

	outputDir := filepath.Join(t.TempDir(), "slices")
	viewer := NewViewer(testVolume(), 90)
	if err := viewer.SaveSliceSequence(AxisXline, outputDir); err != nil {
		t.Fatalf("Failed to save slice sequence: %v", err)
	}

	for j := 0; j < 3; j++ {
		filename := filepath.Join(outputDir, fmt.Sprintf("slice_xline_%03d.jpg", j))
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			t.Errorf("Expected slice file does not exist: %s", filename)
		}
	}

	if err := viewer.SaveSliceSequence("invalid", outputDir); err == nil {
		t.Error("Expected error for invalid axis, got nil")
	}
}
