package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdfeedback"
	"github.com/alnah/go-mdfeedback/internal/assets"
	"github.com/alnah/go-mdfeedback/internal/config"
)

// runTitles prints the registered page titles, one per line.
func runTitles(args []string, env *Environment) error {
	flags, err := parseTitlesFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if flags.registry != "" {
		cfg.Registry.Path = flags.registry
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}

	reg, err := registryFor(cfg, env.AssetLoader)
	if err != nil {
		return err
	}

	for _, title := range reg.Titles() {
		fmt.Fprintln(env.Stdout, title)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%d titles from %d entries\n", len(reg.Titles()), reg.Len())
	}
	return nil
}

// registryFor loads the registry the render command would use for cfg:
// the registry file if set, otherwise the one in the asset directory or
// the given loader.
func registryFor(cfg *config.Config, loader assets.AssetLoader) (*mdfeedback.Registry, error) {
	if cfg.Registry.Path != "" {
		return loadRegistry(cfg.Registry.Path)
	}

	if cfg.Assets.BasePath != "" {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", mdfeedback.ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	data, err := loader.LoadRegistry(assets.DefaultRegistryName)
	if err != nil {
		return nil, fmt.Errorf("loading registry asset: %w", err)
	}
	return mdfeedback.ParseRegistry(data)
}
