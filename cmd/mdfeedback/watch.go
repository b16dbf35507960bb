package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-mdfeedback/internal/fileutil"
	"github.com/alnah/go-mdfeedback/internal/watch"
)

// watchAndRender re-renders changed pages until ctx is canceled.
// The registry and config are read once; changing them needs a restart.
func watchAndRender(ctx context.Context, inputPath, outputDir string, pool Pool, params *renderParams, common commonFlags, env *Environment) error {
	w, err := watch.New([]string{inputPath}, watch.Options{
		Logger: env.Logger,
		Match:  fileutil.IsMarkdown,
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	baseDir := ""
	if fileutil.DirExists(inputPath) {
		// Watch events carry absolute paths.
		if baseDir, err = filepath.Abs(inputPath); err != nil {
			return err
		}
	}

	if !common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", inputPath)
	}

	return w.Run(ctx, func(ctx context.Context, changed []string) {
		files := changedFiles(changed, baseDir, outputDir)
		if len(files) == 0 {
			return
		}
		results := renderBatch(ctx, pool, files, params)
		printResults(results, common.quiet, common.verbose, env)
	})
}

// changedFiles maps changed paths to render jobs, skipping deleted files and
// anything that is not markdown.
func changedFiles(changed []string, baseDir, outputDir string) []FileToRender {
	var files []FileToRender
	for _, p := range changed {
		if !fileutil.IsMarkdown(p) || !fileutil.FileExists(p) {
			continue
		}
		files = append(files, FileToRender{
			InputPath:  p,
			OutputPath: resolveOutputPath(p, outputDir, baseDir),
		})
	}
	return files
}
