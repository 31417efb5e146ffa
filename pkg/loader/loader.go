// Package loader reads a SEG-Y file into a dense inline/crossline/sample cube.
package loader

import (
	"fmt"
	"runtime"
	"sync"

	"segysak/internal/log"
	"segysak/internal/models"
	"segysak/pkg/geometry"
	"segysak/pkg/segy"
)

// Options controls how a file is loaded.
type Options struct {
	// ByteLocs overrides the header byte locations; zero fields use the
	// standard 3D locations.
	ByteLocs segy.ByteLocs

	// Workers is the number of goroutines reading traces. All CPUs when zero.
	Workers int
}

// Load reads the file at path into a volume. Grid positions without a trace
// are zero filled and marked not live.
func Load(path string, opts Options) (*models.Volume, error) {
	f, err := segy.Open(path, opts.ByteLocs.Options()...)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := geometry.Infer(f, opts.ByteLocs)
	if err != nil {
		return nil, err
	}
	if g.Duplicates > 0 {
		log.Warnf("%s: %d traces share a grid position, keeping the first of each", path, g.Duplicates)
	}

	vol := models.NewVolume(g.Ilines, g.Xlines, f.Samples())
	if err := fill(f, g, vol, opts.Workers); err != nil {
		return nil, err
	}

	log.WithField("traces", g.Traces).WithField("missing", g.Missing).
		Debugf("loaded %s", path)
	return vol, nil
}

// fill reads every indexed trace into vol. Inlines are split evenly between
// the workers.
func fill(f *segy.File, g *geometry.Geometry, vol *models.Volume, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ni, nx, _ := vol.Shape()
	perWorker := (ni + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, ni)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(workerID, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := 0; j < nx; j++ {
					idx, ok := g.TraceIndex(vol.Ilines[i], vol.Xlines[j])
					if !ok {
						continue
					}
					if err := f.ReadTrace(idx, vol.Trace(i, j)); err != nil {
						errs[workerID] = fmt.Errorf("inline %d crossline %d: %w", vol.Ilines[i], vol.Xlines[j], err)
						return
					}
					vol.Live[i*nx+j] = true
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
