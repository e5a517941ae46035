package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SteeringSource = (*Source)(nil)

// Source is a steering source backed by a TOML file.
type Source struct {
	path string

	mu       sync.Mutex
	dirty    bool
	opened   bool
	closed   bool
	stopSent bool
	order    []string
	kinds    map[string]domain.ParameterKind
	last     map[string]float64

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSource creates a steering source for the file at path.
// Nothing touches the filesystem until Open.
func NewSource(path string) *Source {
	return &Source{
		path:  filepath.Clean(path),
		kinds: make(map[string]domain.ParameterKind),
		last:  make(map[string]float64),
	}
}

// Path returns the steer file path.
func (s *Source) Path() string {
	return s.path
}

// Open writes the parameters to the steer file and starts watching it.
func (s *Source) Open(_ context.Context, app string, params []domain.Parameter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.opened {
		return fmt.Errorf("steer file %s: already open", s.path)
	}

	values := make(map[string]any, len(params))
	for _, p := range params {
		s.order = append(s.order, p.Name)
		s.kinds[p.Name] = p.Kind
		s.last[p.Name] = p.Value
		values[p.Name] = encodeValue(p.Kind, p.Value)
	}
	doc := map[string]any{
		"app":        app,
		"stop":       false,
		"parameters": values,
	}
	if err := writeDocument(s.path, doc); err != nil {
		return fmt.Errorf("writing steer file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory: atomic replacement swaps the file's inode.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	s.opened = true
	s.wg.Add(1)
	go s.watch()

	logger.Debug("steer file %s opened with %d parameters", s.path, len(params))
	return nil
}

// watch marks the file dirty on every write, create or rename touching it.
func (s *Source) watch() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.mu.Lock()
				s.dirty = true
				s.mu.Unlock()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("steering: watching %s: %v", s.path, err)
		}
	}
}

// MarkDirty forces the next Poll to reread the file.
func (s *Source) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Poll rereads the file if it changed since the last poll.
// Registered parameters are reported in registration order, followed by
// unregistered names in sorted order.
func (s *Source) Poll(_ context.Context, _ int) (domain.PollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.opened {
		return domain.PollResult{Status: domain.PollFailed}, domain.ErrSessionClosed
	}
	if !s.dirty {
		return domain.PollResult{Status: domain.PollSuccess}, nil
	}
	s.dirty = false

	doc, err := readDocument(s.path)
	if err != nil {
		return domain.PollResult{Status: domain.PollFailed},
			fmt.Errorf("%w: reading %s: %v", domain.ErrPollFailure, s.path, err)
	}

	result := domain.PollResult{Status: domain.PollSuccess}
	if doc.Stop && !s.stopSent {
		result.Commands = append(result.Commands, domain.CommandStop)
	}
	s.stopSent = doc.Stop

	for _, name := range s.order {
		if v, ok := doc.Parameters[name]; ok && v != s.last[name] {
			result.Changes = append(result.Changes, domain.ParameterChange{Name: name, Value: v})
			s.last[name] = v
		}
	}

	var unknown []string
	for name := range doc.Parameters {
		if _, ok := s.kinds[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		v := doc.Parameters[name]
		if prev, seen := s.last[name]; seen && prev == v {
			continue
		}
		result.Changes = append(result.Changes, domain.ParameterChange{Name: name, Value: v})
		s.last[name] = v
	}

	return result, nil
}

// Close stops the watcher. The steer file is left in place.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	opened := s.opened
	s.mu.Unlock()

	if !opened {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.wg.Wait()
	return err
}
