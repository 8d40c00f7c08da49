package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"typings/internal/frontend"
	"typings/internal/source"
	"typings/internal/trace"
)

// DefaultDebounce groups the bursts of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration
	// OnRun receives the initial run and every re-check.
	OnRun func(*Run)
	// Ready, when set, is closed once the watcher is installed.
	Ready chan<- struct{}
}

// Watch checks paths once, then re-checks the affected files whenever a Go
// file in their directories changes. It returns nil when ctx is canceled.
func Watch(ctx context.Context, paths []string, opts Options, wopts WatchOptions) error {
	debounce := wopts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	onRun := wopts.OnRun
	if onRun == nil {
		onRun = func(*Run) {}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	// dir -> targets living there, keyed by normalized absolute path
	byDir := make(map[string]map[string]string)
	for _, p := range paths {
		abs, err := source.AbsolutePath(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		dir := filepath.Dir(filepath.FromSlash(abs))
		if byDir[dir] == nil {
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			byDir[dir] = make(map[string]string)
		}
		byDir[dir][abs] = p
	}
	if wopts.Ready != nil {
		close(wopts.Ready)
	}

	run, err := CheckFiles(ctx, paths, opts)
	if err != nil {
		return nilOnCancel(ctx, err)
	}
	onRun(run)

	// файлы перепроверяются по одному, порядок стабилен
	opts.Jobs = 1
	wholeDir := opts.Frontend.PackageMode == frontend.ModePackage || opts.Frontend.Loader == frontend.LoaderPackages
	pending := make(map[string]struct{})
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) || !strings.HasSuffix(ev.Name, ".go") {
				continue
			}
			abs, err := source.AbsolutePath(ev.Name)
			if err != nil {
				continue
			}
			targets := byDir[filepath.Dir(filepath.FromSlash(abs))]
			if p, ok := targets[abs]; ok {
				pending[p] = struct{}{}
			} else if wholeDir {
				for _, p := range targets {
					pending[p] = struct{}{}
				}
			}
			if len(pending) > 0 {
				fire = time.After(debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "watch_error", 0, err.Error(), nil)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			sort.Strings(changed)

			run, err := CheckFiles(ctx, changed, opts)
			if err != nil {
				return nilOnCancel(ctx, err)
			}
			onRun(run)
		}
	}
}

func nilOnCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}
