package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"collabscan/internal/diagfmt"
	"collabscan/internal/driver"
	"collabscan/internal/source"
)

var directivesCmd = &cobra.Command{
	Use:   "directives [flags] file",
	Short: "Dump the parsed @collab directives of a file",
	Long:  `Directives extracts and parses every @collab directive of one file without resolving scopes, useful for debugging directive syntax`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDirectives,
}

func init() {
	directivesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	directivesCmd.Flags().String("lang", "", "force a language instead of extension detection")
	// The dump always reflects the current file content.
	directivesCmd.Flags().Bool("no-cache", true, "bypass the region cache")
	_ = directivesCmd.Flags().MarkHidden("no-cache")
}

func runDirectives(cmd *cobra.Command, args []string) error {
	filePath := args[0]

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

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(diagfmt.DirectivesJSON(result.Directives, fileSet))
	}

	for _, d := range result.Directives {
		pos := fileSet.PosOf(d.Span.File, d.Span.Start)
		fmt.Printf("%s:%d:%d: %s", result.Path, pos.Line, pos.Col, d.Form)
		if d.Trailing {
			fmt.Print(" (trailing)")
		}
		if d.TrustInvalid {
			fmt.Print(" (invalid trust)")
		}
		fmt.Println()
		for _, k := range d.Attrs.Keys() {
			v, _ := d.Attrs.Get(k)
			fmt.Printf("  %s = %s\n", k, v.String())
		}
	}
	return nil
}
