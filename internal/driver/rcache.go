package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"collabscan/internal/diag"
	"collabscan/internal/directive"
	"collabscan/internal/resolve"
	"collabscan/internal/source"
)

// Current schema version - increment when CachePayload format changes.
const cacheSchemaVersion uint16 = 1

// DiskCache stores resolved region trees keyed by content hash, so an
// unchanged file is never rescanned. Entries are replaced atomically;
// concurrent readers see either the previous tree or the new one.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// AttrKV is one flattened attribute for serialization.
type AttrKV struct {
	Key    string
	Str    string
	List   []string
	IsList bool
}

// RegionPayload is one region without provenance (directive chains are
// not cached; they are cheap to rebuild when actually needed).
type RegionPayload struct {
	Start  uint32
	End    uint32
	Parent int
	Depth  int
	Attrs  []AttrKV
}

// DiagPayload is one flattened diagnostic.
type DiagPayload struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// CachePayload is the serialized scan result for one content hash.
type CachePayload struct {
	Schema  uint16
	Lang    string
	Regions []RegionPayload
	Diags   []DiagPayload
}

// NewCachePayload flattens a scan result for serialization.
func NewCachePayload(langName string, tree *resolve.Tree, bag *diag.Bag) *CachePayload {
	p := &CachePayload{Schema: cacheSchemaVersion, Lang: langName}
	for _, rg := range tree.Regions {
		rp := RegionPayload{
			Start:  rg.Scope.Start,
			End:    rg.Scope.End,
			Parent: rg.Parent,
			Depth:  rg.Depth,
		}
		for _, k := range rg.Attrs.Keys() {
			v, _ := rg.Attrs.Get(k)
			rp.Attrs = append(rp.Attrs, AttrKV{Key: k, Str: v.Str, List: v.List, IsList: v.IsList})
		}
		p.Regions = append(p.Regions, rp)
	}
	for _, d := range bag.Items() {
		p.Diags = append(p.Diags, DiagPayload{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return p
}

// Tree rebuilds the resolved region tree for the given file ID.
func (p *CachePayload) Tree(id source.FileID) *resolve.Tree {
	tree := &resolve.Tree{File: id}
	for _, rp := range p.Regions {
		attrs := directive.NewAttrSet()
		for _, kv := range rp.Attrs {
			attrs.Set(kv.Key, directive.Value{Str: kv.Str, List: kv.List, IsList: kv.IsList})
		}
		tree.Regions = append(tree.Regions, resolve.Region{
			Scope:  source.Span{File: id, Start: rp.Start, End: rp.End},
			Attrs:  attrs,
			Parent: rp.Parent,
			Depth:  rp.Depth,
		})
	}
	return tree
}

// Diagnostics refills a bag with the cached diagnostics.
func (p *CachePayload) Diagnostics(id source.FileID, bag *diag.Bag) *diag.Bag {
	for _, dp := range p.Diags {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(dp.Severity),
			Code:     diag.Code(dp.Code),
			Message:  dp.Message,
			Primary:  source.Span{File: id, Start: dp.Start, End: dp.End},
		})
	}
	return bag
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location under XDG_CACHE_HOME.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "regions", fmt.Sprintf("%x.mp", key))
}

// Put serializes and writes a payload, replacing any entry atomically.
func (c *DiskCache) Put(key [32]byte, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replacement
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. A schema mismatch is a miss.
func (c *DiskCache) Get(key [32]byte, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
