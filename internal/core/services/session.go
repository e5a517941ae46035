package services

import (
	"sync"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
)

// Ensure SteeringSession implements the interface.
var _ driven.FrameSource = (*SteeringSession)(nil)

// SteeringSession is the state shared by the render loop and the steering
// worker. The shutdown flag and the render flag each have their own lock.
type SteeringSession struct {
	id string

	loopMu sync.Mutex
	state  domain.SessionState

	renderMu sync.Mutex
	render   bool
	raised   int

	completion *Completion
}

// NewSteeringSession creates a running session.
func NewSteeringSession(id string) *SteeringSession {
	return &SteeringSession{
		id:         id,
		state:      domain.StateRunning,
		completion: NewCompletion(),
	}
}

// ID returns the session ID.
func (s *SteeringSession) ID() string { return s.id }

// Completion returns the session's one-shot completion signal.
func (s *SteeringSession) Completion() *Completion { return s.completion }

// RequestShutdown moves a running session to ShutdownRequested.
// Later calls do nothing.
func (s *SteeringSession) RequestShutdown() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	if s.state == domain.StateRunning {
		s.state = domain.StateShutdownRequested
	}
}

// ShutdownRequested reports whether the worker should stop.
func (s *SteeringSession) ShutdownRequested() bool {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	return s.state != domain.StateRunning
}

// State returns the handshake state.
func (s *SteeringSession) State() domain.SessionState {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	return s.state
}

func (s *SteeringSession) markWorkerExited() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	s.state = domain.StateWorkerExited
}

// RequestRender raises the render flag. It returns true when the flag was
// clear, i.e. when this call is what the next ConsumeRender will observe.
func (s *SteeringSession) RequestRender() bool {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	if s.render {
		return false
	}
	s.render = true
	s.raised++
	return true
}

// ConsumeRender reads and clears the render flag.
func (s *SteeringSession) ConsumeRender() bool {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	pending := s.render
	s.render = false
	return pending
}

// RenderRequests returns how many times the render flag went from clear to set.
func (s *SteeringSession) RenderRequests() int {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	return s.raised
}
