// Package watch re-parses the files of a workspace when they change on disk.
package watch

import (
	"context"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/kipaco/workspace"
)

var log = commonlog.GetLogger("kipaco.watch")

// Report describes the outcome of parsing a file after it changed.
// Err holds the syntax error or the error reading the file.
type Report struct {
	Path    string
	Err     error
	Removed bool
}

type Watcher struct {
	workspace    *workspace.Workspace
	report       func(Report)
	pollInterval time.Duration
	modTimes     map[string]time.Time
	stopOnce     sync.Once
	stopCh       chan struct{}
}

// New creates a watcher for the root directory of ws. report is called from
// the goroutine running Run.
func New(ws *workspace.Workspace, report func(Report)) *Watcher {
	return &Watcher{
		workspace:    ws,
		report:       report,
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		stopCh:       make(chan struct{}),
	}
}

// SetPollInterval sets how often the tree is rescanned when file system
// notifications are unavailable.
func (w *Watcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

// Stop ends Run. It may be called more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Run parses every file once and then follows changes until ctx is done or
// Stop is called. It falls back to polling when fsnotify cannot be used.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warningf("file notifications unavailable, polling: %s", err)
		return w.poll(ctx)
	}
	defer fsw.Close()

	if err := w.addDirs(fsw, w.workspace.RootDir()); err != nil {
		log.Warningf("watch %s: %s, polling", w.workspace.RootDir(), err)
		return w.poll(ctx)
	}

	w.scan()
	return w.follow(ctx, fsw)
}

// follow handles file system events.
func (w *Watcher) follow(ctx context.Context, fsw *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (w *Watcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event) {
	path := event.Name
	log.Debugf("event %s", event)

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if _, known := w.modTimes[path]; known {
			w.remove(path)
		}
		// a removed directory takes its files with it
		prefix := path + string(filepath.Separator)
		for _, p := range slices.Sorted(maps.Keys(w.modTimes)) {
			if strings.HasPrefix(p, prefix) {
				w.remove(p)
			}
		}
		return
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		// files created before the directory was added produce no events
		if err := w.addDirs(fsw, path); err != nil {
			log.Errorf("watch %s: %s", path, err)
		}
		w.walk(path, func(p string, fi fs.FileInfo) { w.parse(p, fi) })
		return
	}
	if w.workspace.Wants(path) {
		w.parse(path, info)
	}
}

// addDirs adds dir and the directories below it, skipping hidden ones.
func (w *Watcher) addDirs(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// poll rescans the tree every poll interval.
func (w *Watcher) poll(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.scan()
		}
	}
}

// scan parses new and modified files and drops files that disappeared.
func (w *Watcher) scan() {
	current := make(map[string]bool)

	w.walk(w.workspace.RootDir(), func(path string, info fs.FileInfo) {
		current[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.parse(path, info)
		}
	})

	for path := range w.modTimes {
		if !current[path] {
			w.remove(path)
		}
	}
}

// walk calls fn for every file below root that belongs to a language.
func (w *Watcher) walk(root string, fn func(string, fs.FileInfo)) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.workspace.Wants(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fn(path, info)
		return nil
	})
}

func (w *Watcher) parse(path string, info fs.FileInfo) {
	w.modTimes[path] = info.ModTime()

	f, err := w.workspace.ScanFile(path)
	if err != nil {
		w.report(Report{Path: path, Err: err})
		return
	}
	w.report(Report{Path: path, Err: f.ParseErr})
}

func (w *Watcher) remove(path string) {
	delete(w.modTimes, path)
	w.workspace.RemoveFile(path)
	w.report(Report{Path: path, Removed: true})
}
