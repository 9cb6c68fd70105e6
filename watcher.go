package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

type Watcher struct {
	watchingDirs, watchingFiles map[string]struct{}

	watcher *fsnotify.Watcher
	log     commonlog.Logger

	recompile func(path string)
}

func NewWatcher(recompile func(path string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]struct{}),
		watcher:       watcher,
		log:           commonlog.GetLogger("akhamoth.watcher"),
		recompile:     recompile,
	}

	return w, nil
}

// Start begins delivering change events. Every WatchFile call must happen
// before it, the event loop reads the watched set without locking.
func (w *Watcher) Start() {
	go w.eventLoop()
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) WatchFile(path string) error {
	fullPath, _ := filepath.Abs(path)
	w.watchingFiles[fullPath] = struct{}{}

	// editors usually replace files instead of writing them in place, so the
	// directory is watched rather than the file itself
	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	err := w.watcher.Add(dir)
	if err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)

			if _, ok := w.watchingFiles[fname]; !ok {
				continue
			}

			w.log.Noticef("file %q modified, recompiling...", filepath.Base(fname))
			w.recompile(fname)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watch error: %s", err)
		}
	}
}

func watchFiles(paths []string) error {
	compileAll(paths)

	// each change gets a fresh session, offsets from older runs are never reused
	watcher, err := NewWatcher(func(path string) {
		compileAll([]string{path})
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, f := range paths {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}
	watcher.Start()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	commonlog.GetLogger("akhamoth").Notice("watching files for changes...")

	<-ch
	return nil
}
