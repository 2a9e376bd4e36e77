package editor

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// DefaultQuietPeriod is how long a Watcher ignores changes after the editor
// itself saved the file.
const DefaultQuietPeriod = 500 * time.Millisecond

// A FileChangedEvent is posted to the event loop when the watched file was
// written, replaced or removed by another program.
type FileChangedEvent struct {
	tcell.EventTime
	Path    string
	Removed bool
}

// A Watcher watches the session's file for changes made outside the editor.
//
// The file's directory is watched rather than the file itself, since many
// programs save by writing a new file and renaming it over the old one.
type Watcher struct {
	fs     *fsnotify.Watcher
	poster Poster
	log    *slog.Logger

	mu         sync.Mutex
	path       string
	dir        string
	quietUntil time.Time

	done chan struct{}
}

func NewWatcher(poster Poster, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w := &Watcher{
		fs:     fsw,
		poster: poster,
		log:    logger,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch starts watching path instead of the previous file. An empty path stops
// watching.
func (w *Watcher) Watch(path string) error {
	var dir string
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path, dir = abs, filepath.Dir(abs)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if dir != w.dir {
		if w.dir != "" {
			_ = w.fs.Remove(w.dir) // The directory may be gone already
		}
		if dir != "" {
			if err := w.fs.Add(dir); err != nil {
				w.path, w.dir = "", ""
				return err
			}
		}
	}
	w.path, w.dir = path, dir
	return nil
}

// Quiet ignores every change for d. Call it right after the editor writes the
// file so its own save is not reported.
func (w *Watcher) Quiet(d time.Duration) {
	w.mu.Lock()
	w.quietUntil = time.Now().Add(d)
	w.mu.Unlock()
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", "err", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	path := w.path
	quiet := time.Now().Before(w.quietUntil)
	if filepath.Clean(ev.Name) == path && !quiet {
		// One save often comes as several events; report it once.
		w.quietUntil = time.Now().Add(DefaultQuietPeriod)
	}
	w.mu.Unlock()

	if path == "" || filepath.Clean(ev.Name) != path || quiet {
		return
	}

	w.log.Info("file changed on disk", "path", path, "op", ev.Op.String())
	changed := &FileChangedEvent{
		Path:    path,
		Removed: ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename),
	}
	changed.SetEventNow()
	_ = w.poster.PostEvent(changed)
}
