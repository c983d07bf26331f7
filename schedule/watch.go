package schedule

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/knockout"
)

// Classifier maps a changed file to the trigger it stands for. Returning
// false ignores the change.
type Classifier func(path string) (Reason, bool)

// Watch follows paths and feeds their changes into the scheduler until ctx
// is done. Parent directories are watched so that editors which save by
// renaming a temporary file are still seen.
//
// ReasonResize changes go through the debouncer. ReasonMutation changes
// rebuild at once. Other reasons are ignored.
func (s *Scheduler) Watch(ctx context.Context, classify Classifier, paths ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("schedule: watcher: %w", err)
	}
	defer w.Close()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("schedule: watch %q: %w", p, err)
		}
		targets[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("schedule: watch %q: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[name]; !ok {
				continue
			}
			why, ok := classify(name)
			if !ok {
				continue
			}
			knockout.Logger().Debug("schedule: change", "path", name, "reason", why)
			switch why {
			case ReasonResize:
				s.Resize(ctx)
			case ReasonMutation:
				_ = s.Mutate(ctx)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			knockout.Logger().Warn("schedule: watch error", "err", err)
		}
	}
}
