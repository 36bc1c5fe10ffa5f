// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Command edl2scenelist reads the video events of a CMX 3600 edit list and
// writes them merged into scenes.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/mrjoshuak/cmx3600"
	"github.com/mrjoshuak/cmx3600/internal/config"
	applog "github.com/mrjoshuak/cmx3600/internal/log"
	"github.com/mrjoshuak/cmx3600/internal/scenelist"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

type options struct {
	configPath string
	outfile    string
	format     string
	pattern    string
	title      string
	tolerant   bool
	clipboard  bool
	input      string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "edl2scenelist: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	var o options
	fs := flag.NewFlagSet("edl2scenelist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: edl2scenelist [flags] [input.edl]")
		fmt.Fprintln(stderr, "Reads video events from a CMX EDL and outputs them merged into scenes.")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.configPath, "config", "", "path to config file")
	fs.StringVar(&o.outfile, "o", "", "output file (default stdout)")
	fs.StringVar(&o.format, "f", "", "output format: cmx, cols or yaml (default from config, cmx)")
	fs.StringVar(&o.pattern, "p", "", "pattern for extracting the scene name from the clip name, matched case-insensitively (default "+scenelist.DefaultPattern+")")
	fs.StringVar(&o.title, "title", scenelist.DefaultTitle, "title of the cmx and yaml output")
	fs.BoolVar(&o.tolerant, "tolerant", false, "recover event lines that do not fit the fixed columns")
	fs.BoolVar(&o.clipboard, "clipboard", false, "also copy the output to the clipboard")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return o, nil, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	o.input = fs.Arg(0)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logOpts := cfg.Logging.LogOptions()
	logOpts.Output = stderr
	logger := applog.WithComponent(applog.Init(logOpts), "edl2scenelist")

	if o.format == "" {
		o.format = cfg.Scenes.Format
	}
	if o.pattern == "" {
		o.pattern = cfg.Scenes.Pattern
	}
	if !set["tolerant"] {
		o.tolerant = cfg.Parse.Tolerant
	}

	format, err := scenelist.ParseFormat(o.format)
	if err != nil {
		return err
	}
	x, err := scenelist.NewExtractor(o.pattern)
	if err != nil {
		return err
	}

	in := stdin
	if o.input != "" && o.input != "-" {
		f, err := os.Open(o.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	d := cmx3600.NewDecoder(in)
	d.SetTolerant(o.tolerant)
	d.SetLogger(logger)
	edl, err := d.Decode()
	if err != nil {
		return fmt.Errorf("read edit list: %w", err)
	}

	scenes := scenelist.Build(edl, x)
	logger.Info("built scene list", "title", edl.Title(), "edits", len(edl.Edits()), "scenes", len(scenes))

	var buf bytes.Buffer
	w := scenelist.NewWriter(&buf)
	w.SetFormat(format)
	w.SetTitle(o.title)
	if err := w.Write(scenes); err != nil {
		return err
	}

	if o.outfile != "" {
		if err := os.WriteFile(o.outfile, buf.Bytes(), 0o644); err != nil {
			return err
		}
	} else if _, err := stdout.Write(buf.Bytes()); err != nil {
		return err
	}

	if o.clipboard {
		if err := copyToClipboard(buf.String()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}
