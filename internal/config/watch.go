package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitshade/internal/logger"
)

// Watcher reloads a config file whenever it changes on disk and publishes
// the validated result. It never applies anything itself; the frame loop
// drains Updates between ticks.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan *Config
	done    chan struct{}
	log     *zap.Logger
}

// Watch starts watching path. The parent directory is watched rather than
// the file so editors that save by renaming are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
		log:     logger.Named("config"),
	}
	go w.run()
	return w, nil
}

// Updates delivers reloaded configs. Only the newest pending one is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Updates is closed once the goroutine exits.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.updates)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		// Partial writes show up as parse errors; the next write event retries.
		w.log.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("config reloaded", zap.String("path", w.path))

	// Replace any update the loop has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
