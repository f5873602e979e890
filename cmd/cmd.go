package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	osmview "github.com/omniscale/osmview"
	"github.com/omniscale/osmview/cache"
	"github.com/omniscale/osmview/config"
	"github.com/omniscale/osmview/element"
	"github.com/omniscale/osmview/extract"
	"github.com/omniscale/osmview/features"
	"github.com/omniscale/osmview/geom/geojson"
	"github.com/omniscale/osmview/layer"
	"github.com/omniscale/osmview/log"
	"github.com/omniscale/osmview/mapping"
	"github.com/omniscale/osmview/parser/osm"
	"github.com/omniscale/osmview/stats"
)

func printCmds() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [args]\n\n", os.Args[0])
	fmt.Println("Available commands:")
	fmt.Println("\trender")
	fmt.Println("\tversion")
}

func Main() {
	if len(os.Args) <= 1 {
		printCmds()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		opts := config.ParseRender(os.Args[2:])
		render(opts)
	case "version":
		fmt.Printf("osmview %s %s(%s-%s) numcpu=%d\n",
			osmview.Version, runtime.Version(), runtime.GOARCH, runtime.GOOS,
			runtime.NumCPU())
	default:
		printCmds()
		log.Fatalf("invalid command: '%s'", os.Args[1])
	}
}

func render(opts config.Options) {
	if len(opts.Files) == 0 {
		log.Fatal("no input files")
	}
	if opts.Quiet {
		log.SetMinLevel(log.LStep)
	}
	if opts.HTTPStats != "" {
		stats.StartHTTP(opts.HTTPStats)
	}

	m := mapping.Default()
	if opts.MappingFile != "" {
		var err error
		m, err = mapping.FromFile(opts.MappingFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	var store *cache.NodeStore
	if opts.CacheDir != "" {
		var err error
		store, err = cache.NewNodeStore(opts.CacheDir)
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()
	}

	l := layer.New(layer.Options{Mapping: m, Mercator: opts.Mercator})
	progress := stats.NewReporter()

	for _, filename := range opts.Files {
		step := log.Step(fmt.Sprintf("Rendering %s", filename))
		doc, err := osm.ParseFile(filename)
		if err != nil {
			log.Fatal(err)
		}
		diag := renderDocument(l, doc, store)
		step()
		progress.AddChangesets(len(doc.Changesets))
		progress.AddNodes(len(doc.Nodes))
		progress.AddWays(len(doc.Ways))
		progress.AddRelations(len(doc.Relations))
		if skipped := diag.SkippedChangesets + diag.SkippedNodes +
			diag.SkippedWays + diag.SkippedRelations; skipped > 0 {
			log.Warnf("%s: skipped %d malformed elements", filename, skipped)
		}
	}
	progress.AddGeometries(l.Len())
	progress.Stop()

	out := io.Writer(os.Stdout)
	if opts.Output != "-" && opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := geojson.Encode(out, l.Geometries()); err != nil {
		log.Fatal(err)
	}
}

// renderDocument feeds one document into the layer. With a node store
// the document's nodes are persisted first so ways and relations of this
// and later documents can resolve against all nodes seen so far.
func renderDocument(l *layer.Layer, doc *osm.Document, store *cache.NodeStore) *extract.Diagnostics {
	if store == nil {
		return l.AddData(doc)
	}
	res := &extract.Result{}
	res.Changesets = extract.Changesets(doc, &res.Diag)
	res.Nodes, res.NodeOrder = extract.Nodes(doc, &res.Diag)

	put := make([]element.Node, 0, len(res.Nodes))
	for _, id := range res.NodeOrder {
		put = append(put, res.Nodes[id])
	}
	if err := store.PutNodes(put); err != nil {
		log.Fatal(err)
	}

	res.Ways = extract.Ways(doc, store, &res.Diag)
	res.Relations = extract.Relations(doc, store, &res.Diag)
	l.AddFeatures(features.FromResult(res))
	return &res.Diag
}
