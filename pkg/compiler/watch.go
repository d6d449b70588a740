package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reports template and layout directory changes until ctx is done.
// Events are coalesced for the debounce interval, the changed paths are
// invalidated and onChange receives them relative to the root.
func (c *Compiler) Watch(ctx context.Context, onChange func(paths ...string)) error {
	if c.root == "" {
		return ErrWatchUnsupported
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("compiler: watcher: %w", err)
	}
	defer w.Close()

	dirs, err := c.finder.Dirs()
	if err != nil {
		return err
	}
	dirs = append(dirs, path.Dir(c.layout))
	for _, d := range dirs {
		if err := w.Add(filepath.Join(c.root, filepath.FromSlash(d))); err != nil {
			c.logger.WarnContext(ctx, "watch directory skipped", slog.String("dir", d), slog.String("error", err.Error()))
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(c.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			rel, ok := c.relative(ev.Name)
			if !ok {
				continue
			}
			pending[rel] = struct{}{}
			timer.Reset(c.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.WarnContext(ctx, "template watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := slices.Sorted(maps.Keys(pending))
			clear(pending)
			c.Invalidate(ctx, paths...)
			c.logger.InfoContext(ctx, "templates changed", slog.Any("paths", paths))
			if onChange != nil {
				onChange(paths...)
			}
		}
	}
}

func (c *Compiler) relative(name string) (string, bool) {
	rel, err := filepath.Rel(c.root, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	base := filepath.Base(rel)
	// editor swap and backup files
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
