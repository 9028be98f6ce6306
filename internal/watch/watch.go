// Package watch reruns a task whenever one of a set of input files changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Task is rerun after a change. An error is logged and does not stop watching.
type Task func(ctx context.Context) error

// Watcher observes the directories containing its files so that editors
// which save by renaming a temporary file are still noticed. Only events for
// the watched files themselves trigger the task.
type Watcher struct {
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	logger   zerolog.Logger
}

// New creates a watcher for the given files.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("watch: no files given")
	}
	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		logger:   log.With().Str("component", "watch").Logger(),
	}
	seenDir := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if !seenDir[dir] {
			seenDir[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Run blocks until ctx is done, calling task once per burst of changes.
func (w *Watcher) Run(ctx context.Context, task Task) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.Info().Strs("dirs", w.dirs).Dur("debounce", w.debounce).Msg("Watching for changes")

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("Input changed")
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-timer.C:
			if err := task(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error().Err(err).Msg("Rerun failed")
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
