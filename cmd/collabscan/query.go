package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"collabscan/internal/diagfmt"
	"collabscan/internal/driver"
	"collabscan/internal/resolve"
	"collabscan/internal/source"
)

var queryCmd = &cobra.Command{
	Use:   "query [flags] file line [col]",
	Short: "Resolve the effective trust level at a source position",
	Long:  `Query scans one file and reports the innermost trust region containing the given 1-based line and column`,
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	queryCmd.Flags().String("lang", "", "force a language instead of extension detection")
	// Cached trees drop directive provenance, which query reports.
	queryCmd.Flags().Bool("no-cache", true, "bypass the region cache")
	_ = queryCmd.Flags().MarkHidden("no-cache")
}

type queryPayload struct {
	File    string              `json:"file"`
	Line    uint32              `json:"line"`
	Col     uint32              `json:"col"`
	Matched bool                `json:"matched"`
	Trust   string              `json:"trust,omitempty"`
	Region  *diagfmt.RegionJSON `json:"region,omitempty"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	line, err := parsePos(args[1], "line")
	if err != nil {
		return err
	}
	col := uint32(1)
	if len(args) == 3 {
		if col, err = parsePos(args[2], "col"); err != nil {
			return err
		}
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, _, err := buildOptions(cmd, ".")
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	result, err := driver.ScanFile(fileSet, filePath, opts)
	if err != nil {
		return err
	}
	reportDiagnostics(cmd, result.Bag, fileSet)

	region, ok := result.Query(line, col)

	if format == "json" {
		payload := queryPayload{File: result.Path, Line: line, Col: col, Matched: ok}
		if ok {
			if lvl, has := region.Trust(); has {
				payload.Trust = string(lvl)
			}
			all := diagfmt.RegionsJSON(result.Tree, fileSet)
			for i := range result.Tree.Regions {
				if &result.Tree.Regions[i] == region {
					payload.Region = &all[i]
					break
				}
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	printQueryPretty(result, region, ok, line, col, fileSet)
	return nil
}

func printQueryPretty(result driver.Result, region *resolve.Region, ok bool, line, col uint32, fileSet *source.FileSet) {
	if !ok {
		fmt.Printf("%s:%d:%d: no trust region (default applies)\n", result.Path, line, col)
		return
	}
	label := "(no trust)"
	if lvl, has := region.Trust(); has {
		label = string(lvl)
	}
	start, end := fileSet.Resolve(region.Scope)
	fmt.Printf("%s:%d:%d: %s\n", result.Path, line, col, label)
	fmt.Printf("  region: L%d:%d-L%d:%d (depth %d)\n", start.Line, start.Col, end.Line, end.Col, region.Depth)
	for _, k := range region.Attrs.Keys() {
		v, _ := region.Attrs.Get(k)
		fmt.Printf("  %s = %s\n", k, v.String())
	}
	for _, d := range region.Provenance {
		pos := fileSet.PosOf(region.Scope.File, d.Span.Start)
		fmt.Printf("  from: %s directive at %d:%d\n", d.Form, pos.Line, pos.Col)
	}
}

func parsePos(arg, name string) (uint32, error) {
	v, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid %s %q (want a positive integer)", name, arg)
	}
	return uint32(v), nil
}
