package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rubenv/countryraster/config"
)

type GlobalOptions struct {
	Config string `short:"c" long:"config" env:"COUNTRYRASTER_CONFIG" description:"Config file"`
}

var globalOpts = GlobalOptions{}
var parser = flags.NewParser(&globalOpts, flags.HelpFlag|flags.PassDoubleDash)

func Run() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("Failed to load .env: %w", err)
	}

	_, err = parser.Parse()
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	return err
}

func (g *GlobalOptions) LoadConfig() (*config.Config, error) {
	if g.Config == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.ReadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("Failed to read config: %w", err)
	}
	return cfg, nil
}
