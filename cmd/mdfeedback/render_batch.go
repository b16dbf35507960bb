package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-mdfeedback"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// RenderResult holds the outcome of a single page.
type RenderResult struct {
	InputPath  string
	OutputPath string
	PDFPath    string // empty unless a PDF was written
	Decorated  int
	Err        error
	Duration   time.Duration
}

// renderBatch processes files concurrently using the converter pool.
// Results are in the same order as files.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark this worker's jobs as failed
				for idx := range jobs {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, conv PageConverter, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrCreateOutputDir, err))
	}

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		return fail(err)
	}

	res, err := conv.Convert(ctx, mdfeedback.Input{
		Markdown:   string(content),
		Standalone: params.standalone,
		PDF:        params.pdf,
		SourceDir:  sourceDir,
		Updated:    params.updated,
	})
	if err != nil {
		return fail(err)
	}
	result.Decorated = res.DecoratedHeadings

	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.HTML, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}

	if params.pdf {
		pdfPath := pdfOutputPath(f.OutputPath)
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(pdfPath, res.PDF, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
		}
		result.PDFPath = pdfPath
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed pages.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Decorated int // headings decorated across succeeded pages
}

// countResults tallies succeeded and failed pages.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Decorated += r.Decorated
	}
	return summary
}

// printResults outputs render results and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d decorated, %v)\n",
				r.InputPath, r.OutputPath, r.Decorated, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
		if r.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed, %d headings decorated\n",
			summary.Succeeded, summary.Failed, summary.Decorated)
	}

	return summary.Failed
}

// summarize prints results and turns failures into an error wrapping the
// first failure, so the exit code reflects its cause.
func summarize(results []RenderResult, common commonFlags, env *Environment) error {
	failed := printResults(results, common.quiet, common.verbose, env)
	if failed == 0 {
		return nil
	}
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%d of %d pages failed: %w", failed, len(results), withHint(r.Err, env.AssetLoader))
		}
	}
	return nil
}
