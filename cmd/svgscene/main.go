// Command svgscene resolves an SVG file and prints the resulting
// tree, optionally rendering it to PNG or PDF.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/benoitkugler/svgscene/scene"
	"github.com/benoitkugler/svgscene/svgpdf"
	"github.com/benoitkugler/svgscene/svgxml"
)

func main() {
	var (
		width   = flag.Float64("width", 600, "viewport width, in pixels")
		height  = flag.Float64("height", 400, "viewport height, in pixels")
		ppi     = flag.Float64("ppi", 96, "resolution of the viewport, in pixels per inch")
		pngFile = flag.String("png", "", "PNG output file")
		pdfFile = flag.String("pdf", "", "PDF output file")
		strict  = flag.Bool("strict", false, "exit with an error on diagnostics")
		verbose = flag.Bool("v", false, "log fetches and diagnostics")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: svgscene [flags] file.svg")
	}

	mode := scene.WarnErrorMode
	if *strict {
		mode = scene.StrictErrorMode
	}
	opts := []scene.Option{
		scene.WithResolution(scene.Bounds{W: *width, H: *height}, *ppi),
		scene.WithErrorMode(mode),
	}
	if *verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, scene.WithLogger(slog.New(handler)))
	}

	doc, err := svgxml.ReadDocumentFile(flag.Arg(0), opts...)
	if doc == nil {
		log.Fatalf("Failed to read: %v", err)
	}
	if err := doc.Root.Dump(os.Stdout); err != nil {
		log.Fatal(err)
	}
	for _, d := range doc.Diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}

	if *pngFile != "" {
		w, h := doc.Size()
		img := scene.Rasterize(doc, int(w+0.5), int(h+0.5))
		f, err := os.Create(*pngFile)
		if err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		if err := png.Encode(f, img); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	}
	if *pdfFile != "" {
		if err := svgpdf.RenderToFile(doc, *pdfFile); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}
