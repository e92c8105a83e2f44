package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"collabscan/internal/diag"
	"collabscan/internal/diagfmt"
	"collabscan/internal/driver"
	"collabscan/internal/lang"
	"collabscan/internal/source"
)

const cacheAppName = "collabscan"

func useColor(cmd *cobra.Command, out *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(out))
}

// buildOptions assembles scan options from the root flags, the command's
// own flags, and the collab.toml governing startDir (when one exists).
func buildOptions(cmd *cobra.Command, startDir string) (driver.Options, *lang.Config, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Registry:       lang.NewRegistry(),
	}

	if f := cmd.Flags().Lookup("lang"); f != nil {
		opts.Language = f.Value.String()
	}

	cfg, found, err := lang.LoadConfigFor(startDir)
	if err != nil {
		return driver.Options{}, nil, err
	}
	if found {
		if err := cfg.Apply(opts.Registry); err != nil {
			return driver.Options{}, nil, err
		}
		opts.Ignore = cfg.Scan.Ignore
	}

	noCache := false
	if f := cmd.Flags().Lookup("no-cache"); f != nil {
		noCache = f.Value.String() == "true"
	}
	if !noCache {
		// A cache open failure degrades to uncached scanning.
		if cache, err := driver.OpenDiskCache(cacheAppName); err == nil {
			opts.Cache = cache
		}
	}

	return opts, cfg, nil
}

// reportDiagnostics prints a bag to stderr unless --quiet suppresses
// warnings and infos. Errors are always shown.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet && !bag.HasErrors() {
		return
	}
	atLimit := bag.Len() == int(bag.Cap())
	bag.Sort()
	bag.Dedup()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: 2,
	})
	if atLimit {
		fmt.Fprintf(os.Stderr, "note: diagnostic limit of %d reached; later diagnostics were dropped\n", bag.Cap())
	}
}
