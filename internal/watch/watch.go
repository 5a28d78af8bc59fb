// Package watch wraps fsnotify for the checker's watch mode. Events
// are normalized to a small bitmask so callers never import fsnotify
// directly.
package watch

import (
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Op is a bitmask of file system operations.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether op includes the given operation.
func (op Op) Has(o Op) bool { return op&o != 0 }

func (op Op) String() string {
	var parts []string
	if op.Has(OpCreate) {
		parts = append(parts, "create")
	}
	if op.Has(OpWrite) {
		parts = append(parts, "write")
	}
	if op.Has(OpRemove) {
		parts = append(parts, "remove")
	}
	if op.Has(OpRename) {
		parts = append(parts, "rename")
	}
	if op.Has(OpChmod) {
		parts = append(parts, "chmod")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is one file system notification.
type Event struct {
	Path string
	Op   Op
}

// Watcher delivers file system events over channels using OS-native
// notifications.
type Watcher struct {
	w      *fsnotify.Watcher
	events chan Event
	errs   chan error
}

// New creates a watcher and starts its delivery loop.
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		w:      fw,
		events: make(chan Event, 128),
		errs:   make(chan error, 1),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				close(w.events)
				return
			}
			var op Op
			if ev.Op&fsnotify.Create != 0 {
				op |= OpCreate
			}
			if ev.Op&fsnotify.Write != 0 {
				op |= OpWrite
			}
			if ev.Op&fsnotify.Remove != 0 {
				op |= OpRemove
			}
			if ev.Op&fsnotify.Rename != 0 {
				op |= OpRename
			}
			if ev.Op&fsnotify.Chmod != 0 {
				op |= OpChmod
			}
			w.events <- Event{Path: ev.Name, Op: op}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.errs <- err
		}
	}
}

// Events returns the event delivery channel.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the error delivery channel.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Add starts watching the named file or directory.
func (w *Watcher) Add(name string) error { return w.w.Add(name) }

// Remove stops watching the named file or directory.
func (w *Watcher) Remove(name string) error { return w.w.Remove(name) }

// Close shuts the watcher down.
func (w *Watcher) Close() error { return w.w.Close() }
