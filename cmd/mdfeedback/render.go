package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdfeedback"
	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/config"
	"github.com/alnah/go-mdfeedback/internal/dateutil"
	"github.com/alnah/go-mdfeedback/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrNoInput         = errors.New("no input specified")
	ErrNoMarkdownFiles = errors.New("no markdown files found")
	ErrInvalidTimeout  = errors.New("invalid timeout")
)

// renderParams groups settings shared by every page of a run.
type renderParams struct {
	standalone bool
	pdf        bool
	updated    string
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Resolve "auto" once so every page of the run shows the same date.
	updated, err := dateutil.ResolveDate(cfg.Render.Updated, env.Now())
	if err != nil {
		return fmt.Errorf("resolving updated date: %w", err)
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	// Parsed once and shared by every pooled converter.
	reg, err := loadRegistry(cfg.Registry.Path)
	if err != nil {
		return err
	}

	size := mdfeedback.ResolvePoolSize(cfg.Render.Workers)
	env.Logger.Debug("starting render", "files", len(files), "workers", size, "pdf", cfg.Render.PDF)
	pool := env.NewPool(size, converterOptions(cfg, reg))
	defer pool.Close()

	params := &renderParams{
		standalone: cfg.Render.Standalone,
		pdf:        cfg.Render.PDF,
		updated:    updated,
	}

	results := renderBatch(ctx, pool, files, params)
	err = summarize(results, flags.common, env)
	if !flags.watch {
		return err
	}
	if err != nil {
		env.Logger.Warn("initial render had failures; watching anyway", "error", err)
	}
	return watchAndRender(ctx, inputPath, outputDir, pool, params, flags.common, env)
}

// loadConfig loads the named config, or copies env.Config when no name is given.
// flagName wins over envName.
func loadConfig(flagName, envName string, env *Environment) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		if env.Config == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *env.Config
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadRegistry parses a registry file. An empty path returns nil, which
// leaves the converter on the registry found in its assets.
func loadRegistry(path string) (*mdfeedback.Registry, error) {
	if path == "" {
		return nil, nil
	}

	reg, err := mdfeedback.LoadRegistry(path)
	switch {
	case err == nil:
		return reg, nil
	case errors.Is(err, mdfeedback.ErrRegistryNotFound):
		return nil, fmt.Errorf("%w%s", err, hints.ForRegistryNotFound())
	case errors.Is(err, mdfeedback.ErrRegistryParse), errors.Is(err, mdfeedback.ErrEmptyTitle),
		errors.Is(err, mdfeedback.ErrEmptyKey):
		return nil, fmt.Errorf("%w%s", err, hints.ForRegistryParse())
	default:
		return nil, err
	}
}

// mergeFlags copies explicitly set CLI flags over cfg.
func mergeFlags(flags *renderFlags, cfg *config.Config) error {
	if flags.registry != "" {
		cfg.Registry.Path = flags.registry
	}
	if flags.workers > 0 {
		cfg.Render.Workers = flags.workers
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q (use a positive duration like 30s or 2m)", ErrInvalidTimeout, flags.timeout)
		}
		cfg.Render.Timeout = d
	}
	if flags.updated != "" {
		cfg.Render.Updated = flags.updated
	}

	d := flags.decoration
	if d.level != 0 {
		cfg.Decoration.Level = d.level
	}
	if d.wrapperClass != "" {
		cfg.Decoration.WrapperClass = d.wrapperClass
	}
	if d.component != "" {
		cfg.Decoration.Component = d.component
	}
	if d.attribute != "" {
		cfg.Decoration.Attribute = d.attribute
	}

	switch {
	case flags.assets.noStyle:
		cfg.CSS.Disabled = true
		cfg.CSS.Style = ""
	case flags.assets.style != "":
		cfg.CSS.Style = flags.assets.style
		cfg.CSS.Disabled = false
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	if flags.outputMode.standalone {
		cfg.Render.Standalone = true
	}
	if flags.outputMode.pdf {
		cfg.Render.PDF = true
	}
	return nil
}

// converterOptions translates cfg into converter options.
func converterOptions(cfg *config.Config, reg *mdfeedback.Registry) []mdfeedback.Option {
	var opts []mdfeedback.Option

	if reg != nil {
		opts = append(opts, mdfeedback.WithRegistry(reg))
	}
	if d := cfg.Decoration; d != (config.DecorationConfig{}) {
		opts = append(opts, mdfeedback.WithDecoration(mdfeedback.Decoration{
			Level:        d.Level,
			WrapperClass: d.WrapperClass,
			Component:    d.Component,
			Attribute:    d.Attribute,
		}))
	}
	switch {
	case cfg.CSS.Disabled:
		opts = append(opts, mdfeedback.WithoutStyle())
	case cfg.CSS.Style != "":
		opts = append(opts, mdfeedback.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdfeedback.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Render.Timeout > 0 {
		opts = append(opts, mdfeedback.WithTimeout(cfg.Render.Timeout))
	}
	return opts
}

// resolveInputPath picks the positional input, falling back to input.defaultDir.
func resolveInputPath(positional []string, cfg *config.Config) (string, error) {
	switch {
	case len(positional) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	case len(positional) == 1:
		return positional[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir picks the output flag, falling back to output.defaultDir.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// withHint appends an actionable hint to err when one applies.
func withHint(err error, loader assets.AssetLoader) error {
	var hint string
	switch {
	case errors.Is(err, mdfeedback.ErrBrowserConnect):
		hint = hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, mdfeedback.ErrPageLoad):
		hint = hints.ForTimeout()
	case errors.Is(err, mdfeedback.ErrFrontmatterUnclosed), errors.Is(err, mdfeedback.ErrFrontmatterParse):
		hint = hints.ForFrontmatter()
	case errors.Is(err, mdfeedback.ErrStyleNotFound):
		if l, ok := loader.(interface{ AvailableStyles() []string }); ok {
			hint = hints.ForStyleNotFound(l.AvailableStyles())
		}
	case errors.Is(err, ErrCreateOutputDir):
		hint = hints.ForOutputDirectory()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
