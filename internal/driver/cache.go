package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"typedjs/internal/diag"
	"typedjs/internal/project"
	"typedjs/internal/source"
)

// Current schema version - increment when CachePayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache keeps desugared output per source content and options.
// Thread-safe for concurrent access; a nil cache is a valid no-op.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type CachedNote struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Msg   string `msgpack:"m"`
}

type CachedEdit struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Text  string `msgpack:"t"`
}

type CachedFix struct {
	Title string       `msgpack:"title"`
	Edits []CachedEdit `msgpack:"edits"`
}

// CachedDiag is a diagnostic without its file; spans are re-bound on load.
type CachedDiag struct {
	Severity uint8        `msgpack:"sev"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"msg"`
	Start    uint32       `msgpack:"s"`
	End      uint32       `msgpack:"e"`
	Notes    []CachedNote `msgpack:"notes,omitempty"`
	Fixes    []CachedFix  `msgpack:"fixes,omitempty"`
}

type CachePayload struct {
	Schema uint16       `msgpack:"schema"`
	Path   string       `msgpack:"path"`
	Output []byte       `msgpack:"out"`
	Diags  []CachedDiag `msgpack:"diags,omitempty"`
	Stats  Stats        `msgpack:"stats"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольный префикс, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes payload and atomically replaces the entry for key.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) (err error) {
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
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. A missing entry or an older schema is a miss.
func (c *DiskCache) Get(key project.Digest, out *CachePayload) (ok bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

// cacheKey mixes the content hash with every option that changes output.
func cacheKey(file *source.File, opts Options) project.Digest {
	fp := fmt.Sprintf("schema=%d;ctor=%t;types=%t;docs=%t;indent=%d;max=%d;timings=%t",
		diskCacheSchemaVersion, opts.SynthesizeCtor, opts.Print.PreserveTypes, opts.Print.KeepDocs,
		opts.Print.IndentWidth, opts.MaxDiagnostics, opts.Timings)
	return project.Combine(file.Hash, []byte(file.Path), []byte(fp))
}

func (c *DiskCache) lookup(key project.Digest, fs *source.FileSet, id source.FileID, maxDiags int) (*Result, bool) {
	if c == nil {
		return nil, false
	}
	var payload CachePayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		return nil, false
	}
	bag := diag.NewBag(maxDiags)
	for _, d := range payload.Diags {
		restored := diag.New(diag.Severity(d.Severity), diag.Code(d.Code), source.Span{File: id, Start: d.Start, End: d.End}, d.Message)
		for _, n := range d.Notes {
			restored = restored.WithNote(source.Span{File: id, Start: n.Start, End: n.End}, n.Msg)
		}
		for _, f := range d.Fixes {
			edits := make([]diag.FixEdit, len(f.Edits))
			for i, e := range f.Edits {
				edits[i] = diag.FixEdit{Span: source.Span{File: id, Start: e.Start, End: e.End}, NewText: e.Text}
			}
			restored = restored.WithFix(f.Title, edits...)
		}
		bag.Add(restored)
	}
	return &Result{
		Path:    fs.Get(id).Path,
		FileSet: fs,
		FileID:  id,
		Output:  payload.Output,
		Bag:     bag,
		Stats:   payload.Stats,
		Cached:  true,
	}, true
}

// store writes res; a failure becomes a warning on the result.
func (c *DiskCache) store(key project.Digest, res *Result) {
	if c == nil {
		return
	}
	payload := CachePayload{Path: res.Path, Output: res.Output, Stats: res.Stats}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := CachedFix{Title: f.Title}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{Start: e.Span.Start, End: e.Span.End, Text: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diags = append(payload.Diags, cd)
	}
	if err := c.Put(key, &payload); err != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: res.FileID}, "failed to write cache entry: "+err.Error()))
	}
}
