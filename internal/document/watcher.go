package document

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// WatcherOptions contains runtime options for Watcher.
type WatcherOptions struct {
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher reports front matter changes of the active document.
// Body-only edits are not reported.
type Watcher struct {
	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	options   WatcherOptions
	onChange  func(path string)
	path      string
	dir       string
	last      string
	timer     *time.Timer
	done      chan struct{}
}

// NewWatcher starts an idle watcher. Call Watch to select a document.
func NewWatcher(onChange func(path string), options WatcherOptions) (*Watcher, error) {
	if options.Debounce <= 0 {
		options.Debounce = defaultDebounce
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	watcher := &Watcher{
		fsWatcher: fsWatcher,
		options:   options,
		onChange:  onChange,
		done:      make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Watch switches the watcher to path. The current front matter becomes the baseline.
func (watcher *Watcher) Watch(path string) error {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	dir := filepath.Dir(absolute)

	watcher.mu.Lock()
	defer watcher.mu.Unlock()

	if watcher.dir != dir {
		if watcher.dir != "" {
			_ = watcher.fsWatcher.Remove(watcher.dir)
		}
		// Watch the directory: atomic saves replace the file and drop a file-level watch.
		if err := watcher.fsWatcher.Add(dir); err != nil {
			watcher.dir = ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watcher.dir = dir
	}
	watcher.path = absolute
	watcher.last = frontMatterFingerprint(absolute)
	return nil
}

// Close stops the watcher.
func (watcher *Watcher) Close() error {
	watcher.mu.Lock()
	if watcher.timer != nil {
		watcher.timer.Stop()
	}
	watcher.mu.Unlock()

	err := watcher.fsWatcher.Close()
	<-watcher.done
	return err
}

func (watcher *Watcher) run() {
	defer close(watcher.done)
	for {
		select {
		case event, ok := <-watcher.fsWatcher.Events:
			if !ok {
				return
			}
			watcher.handleEvent(event)
		case err, ok := <-watcher.fsWatcher.Errors:
			if !ok {
				return
			}
			watcher.options.Logger.Warn("file watcher", "error", err)
		}
	}
}

func (watcher *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if filepath.Clean(event.Name) != watcher.path {
		return
	}
	if watcher.timer != nil {
		watcher.timer.Stop()
	}
	path := watcher.path
	watcher.timer = time.AfterFunc(watcher.options.Debounce, func() {
		watcher.settle(path)
	})
}

func (watcher *Watcher) settle(path string) {
	watcher.mu.Lock()
	if path != watcher.path {
		watcher.mu.Unlock()
		return
	}
	current := frontMatterFingerprint(path)
	changed := current != watcher.last
	watcher.last = current
	watcher.mu.Unlock()

	if changed && watcher.onChange != nil {
		watcher.options.Logger.Debug("front matter changed", "document", path)
		watcher.onChange(path)
	}
}

func frontMatterFingerprint(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "\x00unreadable"
		}
		return ""
	}
	header, _, ok := cutFrontMatter(content)
	if !ok {
		return ""
	}
	return string(header)
}
