package motion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Prefs is the on-disk accessibility preferences document.
//
//	reduced_motion: true
type Prefs struct {
	ReducedMotion bool `yaml:"reduced_motion"`
}

// ReadPrefs loads a preferences file. A missing file yields zero Prefs.
func ReadPrefs(path string) (Prefs, error) {
	var p Prefs
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read prefs %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse prefs %q: %w", path, err)
	}
	return p, nil
}

// Watcher follows a preferences file and reports reduced-motion changes.
// It does not touch any Source itself: deliver is expected to hand the value
// to the UI loop (e.g. via tea.Program.Send), which then calls Setting.Set.
type Watcher struct {
	mu      sync.Mutex
	path    string
	deliver func(reduced bool)
	logger  *zap.Logger
	fw      *fsnotify.Watcher
	last    bool
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for path. Call Start to begin watching.
func NewWatcher(path string, deliver func(reduced bool), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("motion watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("motion watcher: %w", err)
	}
	return &Watcher{
		path:    abs,
		deliver: deliver,
		logger:  logger,
		fw:      fw,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start reads the current preference and begins watching in a goroutine.
// The directory is watched rather than the file so editor rename-on-save works.
func (w *Watcher) Start(ctx context.Context) (reduced bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return w.last, nil
	}

	prefs, err := ReadPrefs(w.path)
	if err != nil {
		return false, err
	}
	w.last = prefs.ReducedMotion

	if err := w.fw.Add(filepath.Dir(w.path)); err != nil {
		return false, fmt.Errorf("watch %q: %w", filepath.Dir(w.path), err)
	}
	w.running = true
	go w.run(ctx)
	w.logger.Debug("watching motion prefs", zap.String("path", w.path), zap.Bool("reduced", w.last))
	return w.last, nil
}

// Stop ends the watch goroutine and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.fw.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.fw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("motion prefs watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	prefs, err := ReadPrefs(w.path)
	if err != nil {
		w.logger.Warn("motion prefs reload failed", zap.Error(err))
		return
	}
	w.mu.Lock()
	changed := prefs.ReducedMotion != w.last
	w.last = prefs.ReducedMotion
	w.mu.Unlock()
	if changed && w.deliver != nil {
		w.logger.Debug("motion prefs changed", zap.Bool("reduced", prefs.ReducedMotion))
		w.deliver(prefs.ReducedMotion)
	}
}
