package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"collabscan/internal/lang"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the recognized languages",
	Long:  `Languages lists every language the scanner recognizes, including definitions added by collab.toml`,
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func runLanguages(_ *cobra.Command, _ []string) error {
	registry := lang.NewRegistry()
	if cfg, found, err := lang.LoadConfigFor("."); err != nil {
		return err
	} else if found {
		if err := cfg.Apply(registry); err != nil {
			return err
		}
	}

	for _, name := range registry.Names() {
		l, _ := registry.ByName(name)
		fmt.Printf("%-12s %-8s %s\n", l.Name, styleName(l.Style), strings.Join(l.Extensions, " "))
	}
	return nil
}

func styleName(s lang.ScopeStyle) string {
	switch s {
	case lang.StyleBrace:
		return "brace"
	case lang.StyleIndent:
		return "indent"
	default:
		return "marker"
	}
}
