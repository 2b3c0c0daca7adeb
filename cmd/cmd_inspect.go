package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kr/pretty"
	"github.com/rubenv/countryraster/raster"
)

type CmdInspect struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("inspect",
		"Inspect raster",
		"Print the classification of one raster cell",
		&CmdInspect{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdInspect) Usage() string {
	return "raster x y"
}

func (cmd CmdInspect) Execute(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("Options missing, Usage: %s", cmd.Usage())
	}

	x, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	y, err := strconv.Atoi(args[2])
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := raster.ReadRaster(f)
	if err != nil {
		return fmt.Errorf("Failed to read raster: %w", err)
	}
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return fmt.Errorf("Cell %d,%d outside of %dx%d raster", x, y, r.Width, r.Height)
	}

	fmt.Printf("Bounds: %s\n", raster.CellBounds(x, y, r.Width, r.Height))
	fmt.Printf("%# v\n", pretty.Formatter(r.Cell(x, y)))
	return nil
}
