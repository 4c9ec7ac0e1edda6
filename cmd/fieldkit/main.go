package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/fieldkit/internal/imagefile"
	"github.com/zombor/fieldkit/internal/imagemeta"
	"github.com/zombor/fieldkit/internal/render"
	"github.com/zombor/fieldkit/internal/sequence"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("fieldkit")
	var (
		outDir      = fs.StringLong("out-dir", "", "Write processed PNGs with metadata to this directory")
		stamp       = fs.StringLong("stamp", "", "Text drawn centered on each processed image")
		fontSize    = fs.IntLong("font-size", 32, "Stamp font size in pixels")
		resize      = fs.StringLong("resize", "", "Resize processed images to WxH (e.g. 640x480)")
		alpha       = fs.IntLong("alpha", 100, "Opacity of processed images in percent (0-100)")
		partition   = fs.BoolLong("partition", "Write each property only under its own namespace")
		logLevel    = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("FIELDKIT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	paths := sequence.RemoveAdjacentDuplicates(fs.GetArgs())
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: no images given\n")
		os.Exit(1)
	}

	p := &pipeline{
		reader: imagemeta.NewReader(logger),
		stamp:  *stamp,
		alpha:  float64(*alpha) / 100,
		log:    logger,
	}
	p.writeOpts = append(p.writeOpts, imagemeta.WithLogger(logger))
	if *partition {
		p.writeOpts = append(p.writeOpts, imagemeta.WithPartitionedNamespaces())
	}

	if *resize != "" {
		size, err := parseSize(*resize)
		if err != nil {
			slog.Error("Invalid resize value", "value", *resize, "error", err)
			os.Exit(1)
		}
		p.size = size
	}

	if *stamp != "" {
		face, err := render.DefaultFace(float64(*fontSize))
		if err != nil {
			slog.Error("Failed to load font", "error", err)
			os.Exit(1)
		}
		defer face.Close()
		p.face = face
	}

	if *outDir != "" {
		slog.Debug("Initializing storage...", "dir", *outDir)
		store, err := imagefile.NewLocalStorage(*outDir)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		p.store = store
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := false
	for _, path := range paths {
		r, err := p.run(path)
		if err != nil {
			slog.Error("Failed to process image", "path", path, "error", err)
			failed = true
			continue
		}
		if err := enc.Encode(r); err != nil {
			slog.Error("Failed to write report", "path", path, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
