package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"svw.info/gearworks/internal/difficulty"
)

// TierWatcher reloads a tier file into a difficulty.Store whenever it changes.
// A file that fails to parse or validate is logged and the active table kept,
// which also covers the half-written file seen between truncate and write.
type TierWatcher struct {
	path    string
	store   *difficulty.Store
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	Reloads chan *difficulty.Table
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchTiers watches the directory holding path, since editors often replace
// files rather than write them in place.
func WatchTiers(path string, store *difficulty.Store, logger *slog.Logger) (*TierWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	tw := &TierWatcher{
		path:    filepath.Clean(path),
		store:   store,
		logger:  logger,
		watcher: w,
		Reloads: make(chan *difficulty.Table, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go tw.run()
	return tw, nil
}

func (w *TierWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *TierWatcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("tier watcher error", "err", err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *TierWatcher) reload() {
	tbl, err := difficulty.LoadTable(w.path)
	if err != nil {
		w.logger.Warn("tier reload rejected", "path", w.path, "err", err)
		return
	}
	w.store.Swap(tbl)
	w.logger.Info("tiers reloaded", "path", w.path, "tiers", len(tbl.Tiers))
	select {
	case w.Reloads <- tbl:
	default:
	}
}
