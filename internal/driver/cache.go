package driver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"typings/internal/directive"
	"typings/internal/frontend"
	"typings/internal/project"
	"typings/internal/source"
)

// bump when cachedReport or the meaning of a report changes
const reportCacheSchema uint16 = 1

// Key addresses one cached report.
type Key = project.Digest

// ReportCache stores reports of fully checked files on disk, keyed by the
// content of every analysed file and the options that shape the report.
// Imported packages outside the analysed set are not part of the key.
// Safe for concurrent use.
type ReportCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedReport struct {
	Schema    uint16
	Successes int
	Failures  []directive.Record
}

// OpenReportCache opens the cache under $XDG_CACHE_HOME/<app>/reports
// (falling back to ~/.cache).
func OpenReportCache(app string) (*ReportCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenReportCacheAt(filepath.Join(base, app, "reports"))
}

// OpenReportCacheAt opens a cache rooted at dir, creating it when missing.
func OpenReportCacheAt(dir string) (*ReportCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report cache: %w", err)
	}
	return &ReportCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *ReportCache) Dir() string { return c.dir }

func (c *ReportCache) pathFor(key Key) string {
	return filepath.Join(c.dir, key.Hex()+".mp")
}

// KeyFor computes the key of file under opts. In package mode every sibling
// file is read and hashed as well.
func (c *ReportCache) KeyFor(file *source.File, opts Options) (Key, error) {
	fo := opts.Frontend
	header := fmt.Sprintf("schema=%d;go=%s;path=%s;allow=%t;strict=%t;loader=%s;mode=%s;tags=%s;gover=%s",
		reportCacheSchema, runtime.Version(), file.Path,
		opts.AllowExpectError, opts.StrictTypeLines,
		fo.Loader, fo.PackageMode, strings.Join(fo.Tags, ","), fo.GoVersion)

	inputs, err := frontend.Inputs(file.Path, fo)
	if err != nil {
		return Key{}, err
	}
	parts := make([]project.Digest, 0, 2*len(inputs))
	for _, in := range inputs {
		parts = append(parts, project.HashString(in))
		if in == file.Path {
			parts = append(parts, project.Digest(file.Hash))
			continue
		}
		// #nosec G304 -- sibling of a file named on the command line
		data, err := os.ReadFile(in)
		if err != nil {
			return Key{}, fmt.Errorf("hash %s: %w", in, err)
		}
		parts = append(parts, project.Digest(sha256.Sum256(data)))
	}
	return project.Combine(project.HashString(header), parts...), nil
}

// Put stores rep under key, replacing the entry atomically.
func (c *ReportCache) Put(key Key, rep directive.Report) error {
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
	payload := cachedReport{Schema: reportCacheSchema, Successes: rep.Successes, Failures: rep.Records()}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the report stored under key. Entries written by another schema
// are misses.
func (c *ReportCache) Get(key Key) (directive.Report, bool, error) {
	if c == nil {
		return directive.Report{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return directive.Report{}, false, nil
		}
		return directive.Report{}, false, err
	}
	var payload cachedReport
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return directive.Report{}, false, fmt.Errorf("decode cached report: %w", err)
	}
	if payload.Schema != reportCacheSchema {
		return directive.Report{}, false, nil
	}
	rep, err := directive.ReportFromRecords(payload.Successes, payload.Failures)
	if err != nil {
		return directive.Report{}, false, fmt.Errorf("decode cached report: %w", err)
	}
	return rep, true, nil
}

// DropAll removes every cached report.
func (c *ReportCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, чтобы параллельный запуск не увидел половину
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
