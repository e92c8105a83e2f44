package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"collabscan/internal/diag"
	"collabscan/internal/source"
)

// Status is the lifecycle of one file inside a directory scan.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports per-file progress to an observer (e.g. the scan UI).
type Event struct {
	Path   string
	Status Status
}

// ListFiles returns the sorted list of scannable files under root:
// every file whose extension is registered, minus ignore matches.
// Ignore patterns are filepath.Match globs tested against the path
// relative to root and against each path segment.
func ListFiles(root string, opts Options, ignore []string) ([]string, error) {
	registry := opts.registry()
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if ignored(rel, ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := registry.ByExtension(extensionOf(path)); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deterministic order for output and result indexing.
	sort.Strings(files)
	return files, nil
}

func ignored(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, _ := filepath.Match(pat, rel); matched {
			return true
		}
		if matched, _ := filepath.Match(pat, filepath.Base(rel)); matched {
			return true
		}
	}
	return false
}

// ScanDir scans every registered file under dir in parallel. Files are
// preloaded into the FileSet up front; the workers share no mutable
// state, each writing only its own result slot. When events is not
// nil, per-file progress is sent on it and the channel is closed
// before ScanDir returns.
func ScanDir(ctx context.Context, dir string, opts Options, jobs int, events chan<- Event) (*source.FileSet, []Result, error) {
	if events != nil {
		defer close(events)
	}

	files, err := ListFiles(dir, opts, opts.Ignore)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(events, Event{Path: path, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Result slots are per-index; no mutex is needed.
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(events, Event{Path: path, Status: StatusWorking})

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{},
				})
				results[i] = Result{Path: path, Bag: bag}
				emit(events, Event{Path: path, Status: StatusError})
				return nil
			}

			results[i] = scanLoaded(fileSet, fileIDs[path], path, opts)
			if results[i].Bag.HasErrors() {
				emit(events, Event{Path: path, Status: StatusError})
			} else {
				emit(events, Event{Path: path, Status: StatusDone})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func emit(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}
