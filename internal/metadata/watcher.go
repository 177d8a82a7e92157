package metadata

import (
	"fmt"
	"path/filepath"

	"github.com/Naninovel/Language/internal/scheduler"
	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("naninovel.metadata")

// Watcher reloads a metadata file whenever it is written. Reloads run on
// the given scheduler so that a burst of writes is processed in order.
type Watcher struct {
	path      string
	fs        *fsnotify.Watcher
	scheduler *scheduler.Scheduler
	onReload  func(Project)
	done      chan struct{}
}

// Watch starts watching path. The parent directory is watched rather than
// the file itself so editors that save by rename are still observed.
func Watch(path string, s *scheduler.Scheduler, onReload func(Project)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating metadata watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w := &Watcher{
		path:      path,
		fs:        fs,
		scheduler: s,
		onReload:  onReload,
		done:      make(chan struct{}),
	}
	go w.loop()
	log.Infof("watching metadata %s", path)
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.scheduler.Schedule(scheduler.Task{Name: "reload metadata", Execute: w.reload})
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Errorf("metadata watcher: %s", err)
		}
	}
}

func (w *Watcher) reload() error {
	project, err := LoadFile(w.path)
	if err != nil {
		return err
	}
	log.Infof("reloaded %d commands from %s", len(project.Commands), w.path)
	w.onReload(project)
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
