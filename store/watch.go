package store

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hamidzr/tmplstore/constant"
	"github.com/sirupsen/logrus"
)

const watchedOps = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

// Watch calls onChange with the freshly loaded document every time a
// templates file that Load could read changes. Every candidate directory
// that exists when Watch starts is watched; with none existing it falls back
// to the directory Save would pick, which must then exist on the OS
// filesystem. Directories created later are not picked up. It blocks until
// ctx is done.
//
// A single save can produce more than one event, so onChange may see the
// same document, or a partially written one, more than once.
func (s *ConfigStore) Watch(ctx context.Context, onChange func(doc string)) error {
	dirs, err := s.watchDirs()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ioError(dirs[0], err, "failed to watch %s")
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return ioError(dir, err, "failed to watch %s")
		}
		target := filepath.Join(dir, constant.TemplatesFileName)
		targets[target] = true
		logrus.WithField("path", target).Info("watching templates file")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] || event.Op&watchedOps == 0 {
				continue
			}
			logrus.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Trace("templates file changed")
			doc, err := s.Load()
			if err != nil {
				logrus.WithError(err).Warn("failed to reload templates")
				continue
			}
			onChange(doc)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watcher error")
		}
	}
}

// watchDirs returns the existing candidate directories in search order,
// without duplicates, or the Save target when none exist yet.
func (s *ConfigStore) watchDirs() ([]string, error) {
	candidates, err := ResolveCandidates(s.env)
	if err != nil {
		return nil, err
	}

	var dirs []string
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		dir := filepath.Clean(candidate)
		if seen[dir] || !exists(s.fs, dir) {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	if len(dirs) > 0 {
		return dirs, nil
	}

	dir, err := s.DataDir()
	if err != nil {
		return nil, err
	}
	return []string{dir}, nil
}
