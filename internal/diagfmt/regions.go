package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"collabscan/internal/resolve"
	"collabscan/internal/source"
	"collabscan/internal/trust"
)

var trustBadges = map[trust.Level]lipgloss.Style{
	trust.ReadOnly:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	trust.SuggestOnly: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	trust.Supervised:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
	trust.Autonomous:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
}

var dimStyle = lipgloss.NewStyle().Faint(true)

// RegionsPretty lists a file's resolved regions, one line per region,
// indented by nesting depth, with the effective trust level and the
// remaining attributes.
func RegionsPretty(w io.Writer, tree *resolve.Tree, fs *source.FileSet, useColor bool) {
	if tree == nil || len(tree.Regions) == 0 {
		return
	}
	file := fs.Get(tree.File)
	fmt.Fprintf(w, "%s: %d region(s)\n", file.Path, len(tree.Regions))

	for i := range tree.Regions {
		rg := &tree.Regions[i]
		start, end := fs.Resolve(rg.Scope)
		indent := strings.Repeat("  ", rg.Depth)

		badge := "(no trust)"
		if lvl, ok := rg.Trust(); ok {
			badge = string(lvl)
			if useColor {
				badge = trustBadges[lvl].Render(badge)
			}
		}

		span := fmt.Sprintf("L%d:%d-L%d:%d", start.Line, start.Col, end.Line, end.Col)
		if useColor {
			span = dimStyle.Render(span)
		}
		fmt.Fprintf(w, "  %s%s %s%s\n", indent, span, badge, extraAttrs(rg))
	}
}

func extraAttrs(rg *resolve.Region) string {
	var b strings.Builder
	for _, k := range rg.Attrs.Keys() {
		if k == "trust" {
			continue
		}
		v, _ := rg.Attrs.Get(k)
		fmt.Fprintf(&b, " %s=%s", k, v.String())
	}
	return b.String()
}
