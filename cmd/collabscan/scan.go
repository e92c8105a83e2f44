package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"collabscan/internal/diag"
	"collabscan/internal/diagfmt"
	"collabscan/internal/driver"
	"collabscan/internal/lang"
	"collabscan/internal/source"
	"collabscan/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [path]",
	Short: "Scan a file or directory and print the resolved trust regions",
	Long:  `Scan extracts @collab directives, detects their scopes, and prints the resolved region tree for every recognized source file`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	scanCmd.Flags().String("lang", "", "force a language instead of extension detection")
	scanCmd.Flags().Int("jobs", 0, "parallel scan workers (0 = GOMAXPROCS)")
	scanCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	scanCmd.Flags().Bool("strict", false, "treat warnings as failures")
	scanCmd.Flags().Bool("no-cache", false, "bypass the region cache")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}

	startDir := target
	if !info.IsDir() {
		startDir = "."
	}
	opts, cfg, err := buildOptions(cmd, startDir)
	if err != nil {
		return err
	}

	var fileSet *source.FileSet
	var results []driver.Result

	if info.IsDir() {
		fileSet, results, err = scanDirectory(cmd, target, opts, cfg)
		if err != nil {
			return err
		}
	} else {
		fileSet = source.NewFileSet()
		result, err := driver.ScanFile(fileSet, target, opts)
		if err != nil {
			return err
		}
		results = []driver.Result{result}
	}

	return printResults(cmd, fileSet, results, format)
}

func scanDirectory(cmd *cobra.Command, dir string, opts driver.Options, cfg *lang.Config) (*source.FileSet, []driver.Result, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 && cfg != nil {
		jobs = cfg.Scan.Jobs
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !shouldUseTUI(mode) {
		return driver.ScanDir(ctx, dir, opts, jobs, nil)
	}

	files, err := driver.ListFiles(dir, opts, opts.Ignore)
	if err != nil {
		return nil, nil, err
	}

	type outcome struct {
		fileSet *source.FileSet
		results []driver.Result
		err     error
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		fs, res, err := driver.ScanDir(ctx, dir, opts, jobs, events)
		outcomeCh <- outcome{fileSet: fs, results: res, err: err}
	}()

	model := ui.NewProgressModel("scanning "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.fileSet, out.results, uiErr
	}
	return out.fileSet, out.results, out.err
}

func printResults(cmd *cobra.Command, fileSet *source.FileSet, results []driver.Result, format string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	total := diag.NewBag(0)

	if format == "json" {
		payload := make([]diagfmt.FileJSON, 0, len(results))
		for i := range results {
			r := &results[i]
			fj := diagfmt.FileJSON{
				Path:        r.Path,
				Lang:        r.Lang,
				Regions:     []diagfmt.RegionJSON{},
				Diagnostics: []diagfmt.DiagnosticJSON{},
			}
			if r.File != nil {
				fj.ContentHash = fmt.Sprintf("%x", r.File.Hash)
			}
			if r.Tree != nil {
				fj.Regions = diagfmt.RegionsJSON(r.Tree, fileSet)
			}
			if r.Bag != nil {
				r.Bag.Sort()
				r.Bag.Dedup()
				fj.Diagnostics = diagfmt.DiagnosticsJSON(r.Bag, fileSet)
				total.Merge(r.Bag)
			}
			payload = append(payload, fj)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		for i := range results {
			r := &results[i]
			reportDiagnostics(cmd, r.Bag, fileSet)
			diagfmt.RegionsPretty(os.Stdout, r.Tree, fileSet, useColor(cmd, os.Stdout))
			if r.Bag != nil {
				total.Merge(r.Bag)
			}
		}
	}

	if total.HasErrors() || (strict && total.HasWarnings()) {
		return fmt.Errorf("scan finished with diagnostics")
	}
	return nil
}
