package plugin

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	plua "github.com/dshills/addonkit/internal/plugin/lua"
)

// watchDebounce coalesces bursts of writes (editors often write a file in
// several steps) into one reload.
var watchDebounce = 500 * time.Millisecond

// Watch reloads the add-on whenever a source file under its target
// directories changes, until ctx is done. It is only available in debug
// mode.
//
// Watch reloads modules already imported; files added after loading are
// picked up by a new Manager.
func (m *Manager) Watch(ctx context.Context) error {
	if !m.loader.debug {
		return ErrNotDebug
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	logger := m.loader.logger
	disc := NewDiscoverer(m.loader.root, m.loader.manifests, m.loader.debug, logger)
	if err := watchDirs(w, disc, m.dirs); err != nil {
		return err
	}
	logger.Info("watching", "addon", m.loader.Root().Package, "dirs", len(m.dirs))

	var (
		mu       sync.Mutex
		timer    *time.Timer
		stopped  bool
		inflight sync.WaitGroup
	)
	// A reload that already started finishes before Watch returns.
	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		inflight.Wait()
	}()

	reload := func(path string) {
		mu.Lock()
		if stopped || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		inflight.Add(1)
		mu.Unlock()
		defer inflight.Done()

		err := m.Reload()
		if err != nil {
			logger.Error("reload failed", "trigger", path, "err", err)
		} else {
			logger.Info("reloaded", "trigger", path)
		}
		if h := m.loader.onReload; h != nil {
			h(err)
		}
	}

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() { reload(path) })
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				// New packages need watching too, unless a manifest excludes them.
				if err := watchDirs(w, disc, m.dirs); err != nil {
					logger.Warn("watch failed", "err", err)
				}
			}
			if filepath.Ext(ev.Name) != plua.SourceExt {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
			schedule(ev.Name)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// watchDirs watches every directory discovery descends into for targets.
// Adding a directory that is already watched is harmless.
func watchDirs(w *fsnotify.Watcher, disc *Discoverer, targets []string) error {
	dirs, err := disc.Directories(targets)
	if err != nil {
		return err
	}
	watched := make(map[string]bool)
	for _, p := range w.WatchList() {
		watched[p] = true
	}
	for _, dir := range dirs {
		if watched[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	return nil
}
