package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/rubenv/countryraster/raster"
	"github.com/rubenv/countryraster/source"
)

type CmdGenerate struct {
	global *GlobalOptions

	Output   string `short:"o" long:"output" env:"COUNTRYRASTER_OUTPUT" description:"Output file"`
	Parallel bool   `short:"p" long:"parallel" description:"Classify cells in parallel"`
	Workers  int    `short:"j" long:"workers" description:"Number of workers (default: number of CPUs)"`
	Index    string `long:"index" choice:"rtree" choice:"interval" description:"Spatial index"`
}

func init() {
	_, err := parser.AddCommand("generate",
		"Generate raster",
		"Classify boundary polygons onto a lon/lat grid and write the raster",
		&CmdGenerate{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdGenerate) Usage() string {
	return "input [width height]"
}

func (cmd CmdGenerate) Execute(args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return fmt.Errorf("Options missing, Usage: %s", cmd.Usage())
	}

	cfg, err := cmd.global.LoadConfig()
	if err != nil {
		return err
	}

	if len(args) == 3 {
		cfg.Width, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("Invalid width: %w", err)
		}
		cfg.Height, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("Invalid height: %w", err)
		}
	}
	if cmd.Output != "" {
		cfg.Output = cmd.Output
	}
	if cmd.Parallel {
		cfg.Parallel = true
	}
	if cmd.Workers > 0 {
		cfg.Workers = cmd.Workers
	}
	if cmd.Index != "" {
		cfg.Index = cmd.Index
	}
	err = cfg.Validate()
	if err != nil {
		return err
	}

	log.Printf("Loading %s", args[0])
	features, err := source.Load(args[0], cfg.SourceOptions())
	if err != nil {
		return err
	}

	regions, err := source.Regions(features)
	if err != nil {
		return err
	}
	log.Printf("Merged %d regions", len(regions))

	bar := pb.New(1000)
	bar.ShowCounters = false
	bar.Start()

	gen := raster.NewGenerator(regions).
		Index(raster.IndexKind(cfg.Index)).
		Progress(func(p float32) {
			bar.Set(int(p * 1000))
		})
	if cfg.Parallel {
		gen = gen.Parallel(cfg.Workers)
	}

	log.Printf("Generating %dx%d raster", cfg.Width, cfg.Height)
	start := time.Now()
	r, err := gen.Run(cfg.Width, cfg.Height)
	bar.Finish()
	if err != nil {
		return err
	}
	log.Printf("Classified %d cells in %s", len(r.Cells), time.Since(start))

	out, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := r.WriteTo(out)
	if err != nil {
		return err
	}
	log.Printf("Wrote %d bytes to %s", n, cfg.Output)
	return out.Close()
}
