package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

type Config struct {
	MappingFile string `json:"mapping"`
	CacheDir    string `json:"cachedir"`
	HTTPStats   string `json:"httpstats"`
	Mercator    bool   `json:"mercator"`
}

type Options struct {
	ConfigFile  string
	MappingFile string
	CacheDir    string
	Output      string
	HTTPStats   string
	Mercator    bool
	Quiet       bool
	Files       []string
}

var RenderFlags = flag.NewFlagSet("render", flag.ExitOnError)

var renderOpts = Options{}

func init() {
	RenderFlags.StringVar(&renderOpts.ConfigFile, "config", "", "JSON config file")
	RenderFlags.StringVar(&renderOpts.MappingFile, "mapping", "", "YAML mapping with area tags and styles")
	RenderFlags.StringVar(&renderOpts.CacheDir, "cachedir", "", "node cache directory for incremental input")
	RenderFlags.StringVar(&renderOpts.Output, "out", "-", "GeoJSON output file, - for stdout")
	RenderFlags.StringVar(&renderOpts.HTTPStats, "httpstats", "", "bind address for /metrics and pprof")
	RenderFlags.BoolVar(&renderOpts.Mercator, "mercator", false, "project coordinates to EPSG:3857")
	RenderFlags.BoolVar(&renderOpts.Quiet, "quiet", false, "quiet log output")
}

func ParseRender(args []string) Options {
	if err := RenderFlags.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	opts := renderOpts
	opts.Files = RenderFlags.Args()

	if opts.ConfigFile != "" {
		conf := Config{}
		f, err := os.Open(opts.ConfigFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&conf); err != nil {
			fmt.Fprintln(os.Stderr, "invalid config file:", err)
			os.Exit(1)
		}
		// flags win over config file values
		if opts.MappingFile == "" {
			opts.MappingFile = conf.MappingFile
		}
		if opts.CacheDir == "" {
			opts.CacheDir = conf.CacheDir
		}
		if opts.HTTPStats == "" {
			opts.HTTPStats = conf.HTTPStats
		}
		if !opts.Mercator {
			opts.Mercator = conf.Mercator
		}
	}
	return opts
}
