package lang

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional collab.toml, discovered by walking upward
// from the scan root. It extends the language table and sets scan
// defaults; it never removes a built-in language.
type Config struct {
	Path string     `toml:"-"`
	Scan ScanConfig `toml:"scan"`
	// Languages are extra or overriding language definitions.
	Languages []LanguageConfig `toml:"language"`
}

type ScanConfig struct {
	Ignore []string `toml:"ignore"`
	Jobs   int      `toml:"jobs"`
}

type LanguageConfig struct {
	Name         string   `toml:"name"`
	Extensions   []string `toml:"extensions"`
	LineComments []string `toml:"line_comments"`
	BlockOpen    string   `toml:"block_open"`
	BlockClose   string   `toml:"block_close"`
	BlockNests   bool     `toml:"block_nests"`
	Style        string   `toml:"style"`
}

// FindConfig walks from startDir toward the filesystem root looking
// for collab.toml. The second return value reports whether one exists.
func FindConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "collab.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig parses a collab.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	cfg.Path = path
	for i := range cfg.Languages {
		if err := cfg.Languages[i].validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return &cfg, nil
}

// LoadConfigFor discovers and parses the config governing startDir.
// A missing config is not an error; the second value reports presence.
func LoadConfigFor(startDir string) (*Config, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Apply registers the config's language definitions into the registry.
func (c *Config) Apply(r *Registry) error {
	for _, lc := range c.Languages {
		style, err := parseStyle(lc.Style)
		if err != nil {
			return fmt.Errorf("language %q: %w", lc.Name, err)
		}
		l := &Language{
			Name:         lc.Name,
			Extensions:   lc.Extensions,
			LineComments: lc.LineComments,
			Style:        style,
			StringQuotes: []byte{'"', '\''},
		}
		if lc.BlockOpen != "" && lc.BlockClose != "" {
			l.BlockComments = []BlockComment{{
				Open:  lc.BlockOpen,
				Close: lc.BlockClose,
				Nests: lc.BlockNests,
			}}
		}
		r.Register(l)
	}
	return nil
}

func (lc *LanguageConfig) validate() error {
	if lc.Name == "" {
		return errors.New("language entry is missing a name")
	}
	if len(lc.LineComments) == 0 && lc.BlockOpen == "" {
		return fmt.Errorf("language %q defines no comment syntax", lc.Name)
	}
	if (lc.BlockOpen == "") != (lc.BlockClose == "") {
		return fmt.Errorf("language %q must set block_open and block_close together", lc.Name)
	}
	if _, err := parseStyle(lc.Style); err != nil {
		return fmt.Errorf("language %q: %w", lc.Name, err)
	}
	return nil
}

func parseStyle(s string) (ScopeStyle, error) {
	switch s {
	case "brace":
		return StyleBrace, nil
	case "indent":
		return StyleIndent, nil
	case "marker", "":
		return StyleMarker, nil
	}
	return StyleMarker, fmt.Errorf("unknown scope style %q (want brace|indent|marker)", s)
}
