// Command png2pdf converts PNG figures into compact single-page PDFs, in
// place, for use in size-constrained submissions.
//
// Without -apply the command performs a dry run, reporting the size each PDF
// would have. Pass explicit paths, or let it scan a directory:
//
//	png2pdf -root figures -apply
//	png2pdf -apply -remove-original fig1.png fig2.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/tsawler/pngpdf"
	"github.com/tsawler/pngpdf/logging"
)

// config holds the parsed command-line settings.
type config struct {
	root           string
	apply          bool
	removeOriginal bool
	workers        int
	paths          []string
}

// validate checks flag combinations and normalizes the worker count.
func (c *config) validate() error {
	if c.removeOriginal && !c.apply {
		return errors.New("-remove-original requires -apply")
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return nil
}

// targets returns the files to convert: the explicit paths when given,
// otherwise a scan of the root directory.
func (c *config) targets() ([]string, error) {
	if len(c.paths) > 0 {
		return c.paths, nil
	}
	if _, err := os.Stat(c.root); err != nil {
		return nil, fmt.Errorf("directory %s does not exist", c.root)
	}
	found, err := pngpdf.FindPNGs(c.root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", c.root, err)
	}
	return found, nil
}

func main() {
	cfg := &config{}
	flag.StringVar(&cfg.root, "root", "figures", "directory to scan when no explicit paths are given")
	flag.BoolVar(&cfg.apply, "apply", false, "write the resulting PDFs; without this flag the command performs a dry run")
	flag.BoolVar(&cfg.removeOriginal, "remove-original", false, "delete the source PNGs after successful conversion (requires -apply)")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of files to convert in parallel")
	verbose := flag.Bool("v", false, "enable debug logging to stderr")
	flag.Parse()
	cfg.paths = flag.Args()

	log.SetFlags(0)

	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	targets, err := cfg.targets()
	if err != nil {
		log.Fatal(err)
	}
	if len(targets) == 0 {
		fmt.Println("No PNG files found to process.")
		return
	}

	if failures := convertAll(targets, cfg.apply, cfg.removeOriginal, cfg.workers); failures > 0 {
		log.Fatalf("%d of %d conversions failed", failures, len(targets))
	}
}

// convertAll converts the target files, at most workers at a time, and
// returns the number of failures. Conversions of separate files are fully
// independent, so they can run in parallel.
func convertAll(targets []string, apply, removeOriginal bool, workers int) int {
	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex // guards failures and interleaved report lines
	failures := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				result, err := convertOne(path, apply, removeOriginal)

				mu.Lock()
				if err != nil {
					failures++
					log.Printf("%s: %v", path, err)
				} else {
					status := ""
					if !result.Applied {
						status = " (dry run)"
					}
					fmt.Printf("%s: %.1f KiB -> %.1f KiB%s\n",
						path, float64(result.OriginalSize)/1024, float64(result.ConvertedSize)/1024, status)
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range targets {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	return failures
}

// convertOne converts a single file with the requested options.
func convertOne(path string, apply, removeOriginal bool) (*pngpdf.FileResult, error) {
	conv := pngpdf.Open(path)
	if !apply {
		conv = conv.DryRun()
	}
	if removeOriginal {
		conv = conv.RemoveOriginal()
	}
	return conv.Run()
}
