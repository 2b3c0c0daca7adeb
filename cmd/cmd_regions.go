package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/rubenv/countryraster/source"
)

type CmdRegions struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("regions",
		"Export regions",
		"Load and merge boundaries and write the merged regions as GeoJSON",
		&CmdRegions{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdRegions) Usage() string {
	return "input output.geojson"
}

func (cmd CmdRegions) Execute(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("Options missing, Usage: %s", cmd.Usage())
	}

	cfg, err := cmd.global.LoadConfig()
	if err != nil {
		return err
	}

	features, err := source.Load(args[0], cfg.SourceOptions())
	if err != nil {
		return err
	}

	regions, err := source.Regions(features)
	if err != nil {
		return err
	}
	log.Printf("Merged %d regions", len(regions))

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	err = source.WriteGeoJSON(out, source.FromRegions(regions))
	if err != nil {
		return err
	}
	return out.Close()
}
