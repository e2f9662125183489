package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"typedjs/internal/driver"
	"typedjs/internal/project"
)

// loadOptions merges the typedjs.toml governing input (if any) with the
// command line. Flags win over the manifest.
func loadOptions(cmd *cobra.Command, input string) (driver.Options, *project.Manifest, error) {
	manifest, _, err := project.LoadFrom(input)
	if err != nil {
		return driver.Options{}, nil, err
	}
	cfg := project.Default()
	if manifest != nil {
		cfg = manifest.Config
	}
	opts := driver.OptionsFromConfig(cfg)

	pf := cmd.Root().PersistentFlags()
	if pf.Changed("max-diagnostics") || manifest == nil {
		if opts.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return opts, nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if opts.Timings, err = pf.GetBool("timings"); err != nil {
		return opts, nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	flags := cmd.Flags()
	if flags.Lookup("preserve-types") != nil && flags.Changed("preserve-types") {
		if opts.Print.PreserveTypes, err = flags.GetBool("preserve-types"); err != nil {
			return opts, nil, fmt.Errorf("failed to get preserve-types flag: %w", err)
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return opts, nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}

	useCache := cfg.Build.Cache
	if flags.Lookup("cache") != nil && flags.Changed("cache") {
		if useCache, err = flags.GetBool("cache"); err != nil {
			return opts, nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if useCache {
		if opts.Cache, err = driver.OpenDiskCache("typedjs"); err != nil {
			return opts, nil, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	return opts, manifest, nil
}
