package config

import (
	"strings"
	"testing"

	"github.com/cheekybits/is"
	"github.com/rubenv/countryraster/raster"
)

func TestParseConfig(t *testing.T) {
	is := is.New(t)

	in := `
width: 720
height: 360
parallel: true
workers: 4
index: interval
output: out.ser
exclude: [AQ]
id_property: ISO_A2
simplify: 0.01
`

	cfg, err := ParseConfig(strings.NewReader(in))
	is.NoErr(err)
	is.NotNil(cfg)
	is.Equal(cfg.Width, 720)
	is.Equal(cfg.Height, 360)
	is.True(cfg.Parallel)
	is.Equal(cfg.Workers, 4)
	is.Equal(raster.IndexKind(cfg.Index), raster.IntervalIndex)
	is.Equal(cfg.Output, "out.ser")
	is.Equal(cfg.Exclude, []string{"AQ"})
	is.Equal(cfg.IDProperty, "ISO_A2")
	is.Equal(cfg.IDTags, []string{"ISO3166-1:alpha2", "ISO3166-2"})

	opts := cfg.SourceOptions()
	is.Equal(opts.IDProperty, "ISO_A2")
	is.Equal(opts.Simplify, 0.01)
}

func TestParseConfigDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := ParseConfig(strings.NewReader(""))
	is.NoErr(err)
	is.Equal(cfg.Width, 360)
	is.Equal(cfg.Height, 180)
	is.False(cfg.Parallel)
	is.Equal(cfg.Output, "boundaries.ser")
	is.Equal(cfg.Exclude, []string{"FX", "EU"})
	is.Equal(cfg.IDProperty, "id")
}

func TestParseConfigInvalid(t *testing.T) {
	is := is.New(t)

	_, err := ParseConfig(strings.NewReader("width: 0\n"))
	is.Err(err)

	_, err = ParseConfig(strings.NewReader("index: quadtree\n"))
	is.Err(err)

	_, err = ParseConfig(strings.NewReader("workers: -1\n"))
	is.Err(err)

	_, err = ParseConfig(strings.NewReader("width: [\n"))
	is.Err(err)
}
