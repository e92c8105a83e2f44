// Package driver wires the pipeline together: extract comments, parse
// directives, detect scopes, resolve regions. Each file's scan is
// independent and side-effect-free; diagnostics accompany a best-effort
// result instead of aborting it.
package driver

import (
	"fmt"

	"collabscan/internal/comment"
	"collabscan/internal/diag"
	"collabscan/internal/directive"
	"collabscan/internal/lang"
	"collabscan/internal/resolve"
	"collabscan/internal/scope"
	"collabscan/internal/source"
)

// Options configures a scan.
type Options struct {
	// MaxDiagnostics bounds the diagnostic bag per file.
	MaxDiagnostics int
	// Registry resolves language tags and extensions; nil means the
	// built-in table.
	Registry *lang.Registry
	// Language forces a language tag instead of extension lookup.
	Language string
	// Cache, when set, short-circuits scans of unchanged content.
	Cache *DiskCache
	// Ignore holds glob patterns excluded from directory scans.
	Ignore []string
}

func (o Options) registry() *lang.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return lang.NewRegistry()
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return 100
}

// Result is one file's scan output.
type Result struct {
	Path string
	File *source.File
	Lang string
	Tree *resolve.Tree
	// Directives holds every parsed unit, including block ends, for
	// the directives dump.
	Directives []directive.Directive
	Bag        *diag.Bag
}

// Query resolves the effective region at a 1-based line/column.
// ok is false when the position is outside every resolved region.
func (r *Result) Query(line, col uint32) (*resolve.Region, bool) {
	if r.Tree == nil || r.File == nil {
		return nil, false
	}
	off, inFile := r.File.OffsetOf(source.LineCol{Line: line, Col: col})
	if !inFile {
		return nil, false
	}
	return r.Tree.Query(off)
}

// ScanFile loads a file from disk and scans it.
func ScanFile(fileSet *source.FileSet, path string, opts Options) (Result, error) {
	id, err := fileSet.Load(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return scanLoaded(fileSet, id, path, opts), nil
}

// ScanContent scans in-memory content under the given name.
func ScanContent(fileSet *source.FileSet, name string, content []byte, opts Options) Result {
	id := fileSet.AddVirtual(name, content)
	return scanLoaded(fileSet, id, name, opts)
}

func scanLoaded(fileSet *source.FileSet, id source.FileID, path string, opts Options) Result {
	file := fileSet.Get(id)
	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}

	language, langName, langErr := resolveLanguage(path, opts)

	if opts.Cache != nil {
		var payload CachePayload
		// A hit's cached diagnostics already carry any language warning.
		if hit, err := opts.Cache.Get(file.Hash, &payload); err == nil && hit && payload.Lang == langName {
			return Result{
				Path: path,
				File: file,
				Lang: langName,
				Tree: payload.Tree(id),
				Bag:  payload.Diagnostics(id, bag),
			}
		}
	}

	if langErr != nil {
		reporter.Report(diag.LangUnsupported, diag.SevWarning, source.Span{File: id},
			fmt.Sprintf("%s; falling back to generic comment scanning", langErr), nil)
	}

	tree, directives := runPipeline(file, language, reporter)

	if opts.Cache != nil {
		// Best effort; a failed cache write never fails the scan.
		_ = opts.Cache.Put(file.Hash, NewCachePayload(langName, tree, bag))
	}

	return Result{
		Path:       path,
		File:       file,
		Lang:       langName,
		Tree:       tree,
		Directives: directives,
		Bag:        bag,
	}
}

// resolveLanguage picks the language for a file. A *lang.UnsupportedError
// means the generic fallback had to be used; the caller decides whether
// it still needs reporting.
func resolveLanguage(path string, opts Options) (*lang.Language, string, error) {
	registry := opts.registry()

	if opts.Language != "" {
		if l, ok := registry.ByName(opts.Language); ok {
			return l, l.Name, nil
		}
		return lang.Generic(), "generic", &lang.UnsupportedError{Tag: opts.Language}
	}

	if l, ok := registry.ByExtension(extensionOf(path)); ok {
		return l, l.Name, nil
	}
	return lang.Generic(), "generic", &lang.UnsupportedError{Path: path}
}

func extensionOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i+1:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}

// runPipeline is the whole engine for one file: comments in, resolved
// region tree out.
func runPipeline(file *source.File, language *lang.Language, r diag.Reporter) (*resolve.Tree, []directive.Directive) {
	comments := comment.NewExtractor(file, language, r).All()
	directives := directive.Parse(file, comments, r)

	candidates := make([]resolve.Candidate, 0, len(directives))
	for _, d := range directives {
		res, ok := scope.Detect(file, language, d, r)
		if !ok {
			continue
		}
		candidates = append(candidates, resolve.Candidate{
			Directive: d,
			Scope:     res.Span,
			Fallback:  res.Fallback,
		})
	}

	return resolve.Resolve(file.ID, candidates, r), directives
}
