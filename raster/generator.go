package raster

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc receives the fraction of cells done. In parallel mode it is
// called from the worker goroutines and calls can arrive out of order.
type ProgressFunc func(progress float32)

type Generator struct {
	regions  []*Region
	parallel bool
	workers  int
	progress ProgressFunc
	index    IndexKind
}

func NewGenerator(regions []*Region) *Generator {
	return &Generator{
		regions: regions,
		index:   RTreeIndex,
	}
}

// Parallel classifies cells on a pool of workers. Zero or less uses one
// worker per CPU.
func (g *Generator) Parallel(workers int) *Generator {
	g.parallel = true
	g.workers = workers
	return g
}

func (g *Generator) Progress(fn ProgressFunc) *Generator {
	g.progress = fn
	return g
}

func (g *Generator) Index(kind IndexKind) *Generator {
	g.index = kind
	return g
}

func (g *Generator) Run(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("Invalid raster size: %dx%d", width, height)
	}

	regions := make([]*Region, 0, len(g.regions))
	areas := make(map[string]float64)
	for _, r := range g.regions {
		if r.ID == "" {
			log.Println("Skipping region without id")
			continue
		}
		if _, ok := areas[r.ID]; ok {
			return nil, fmt.Errorf("Duplicate region id: %s", r.ID)
		}

		area, err := r.Shape.Area()
		if err != nil {
			return nil, fmt.Errorf("Region %s: %w", r.ID, err)
		}
		areas[r.ID] = area
		regions = append(regions, r)
	}

	index, err := NewIndex(g.index, regions)
	if err != nil {
		return nil, err
	}

	raster := &Raster{
		Width:  width,
		Height: height,
		Cells:  make([]*Cell, width*height),
		Areas:  areas,
	}

	if g.parallel {
		err = g.runParallel(index, raster)
	} else {
		err = g.runSequential(index, raster)
	}
	if err != nil {
		return nil, err
	}

	g.report(1)
	return raster, nil
}

func (g *Generator) runSequential(index Index, raster *Raster) error {
	total := raster.Width * raster.Height
	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			cell, err := classify(index, x, y, raster.Width, raster.Height)
			if err != nil {
				return fmt.Errorf("Cell %d,%d: %w", x, y, err)
			}
			raster.Cells[x+y*raster.Width] = cell
			g.report(fraction(y*raster.Width+x, total))
		}
	}
	return nil
}

func (g *Generator) runParallel(index Index, raster *Raster) error {
	total := raster.Width * raster.Height

	workers := g.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	eg, ctx := errgroup.WithContext(context.Background())
	jobs := make(chan int, workers*4)
	eg.Go(func() error {
		defer close(jobs)
		for i := 0; i < total; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	var done atomic.Int64
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			for i := range jobs {
				if ctx.Err() != nil {
					return nil
				}

				x, y := i%raster.Width, i/raster.Width
				cell, err := classify(index, x, y, raster.Width, raster.Height)
				if err != nil {
					return fmt.Errorf("Cell %d,%d: %w", x, y, err)
				}
				raster.Cells[i] = cell

				n := done.Add(1)
				if int(n) < total {
					g.report(fraction(int(n), total))
				}
			}
			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		return err
	}
	if int(done.Load()) != total {
		return errors.New("Raster generation stopped early")
	}
	return nil
}

func (g *Generator) report(p float32) {
	if g.progress != nil {
		g.progress(p)
	}
}

// fraction stays below 1 until the run is complete, 1 is reported once at
// the end.
func fraction(n, total int) float32 {
	p := float32(float64(n) / float64(total))
	if p >= 1 {
		p = math.Nextafter32(1, 0)
	}
	return p
}
