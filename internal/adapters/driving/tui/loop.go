package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/logger"
)

// Ensure Loop implements the interface.
var _ driven.RenderLoop = (*Loop)(nil)

// Loop runs the viewer as a bubbletea program.
type Loop struct {
	ports  *Ports
	config Config
	opts   []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	exited  bool
	frames  int
}

// NewLoop creates a render loop. Extra program options are appended to
// the defaults, which is how tests swap out the terminal.
func NewLoop(ports *Ports, cfg Config, opts ...tea.ProgramOption) (*Loop, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	return &Loop{ports: ports, config: cfg, opts: opts}, nil
}

// Run blocks until the user quits, Exit is called or ctx is cancelled.
func (l *Loop) Run(ctx context.Context, frames driven.FrameSource) error {
	app, err := NewApp(l.ports, frames, l.config)
	if err != nil {
		return err
	}

	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, l.opts...)
	p := tea.NewProgram(app, opts...)

	restore, err := captureLogs(l.config.LogFile)
	if err != nil {
		return err
	}
	defer restore()

	l.mu.Lock()
	if l.exited {
		l.mu.Unlock()
		return nil
	}
	l.program = p
	l.mu.Unlock()

	_, err = p.Run()

	l.mu.Lock()
	l.program = nil
	l.frames = app.Frames()
	l.mu.Unlock()

	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// captureLogs points logger and the standard log package away from the
// terminal for the life of the program. The returned func undoes it.
func captureLogs(path string) (func(), error) {
	prevOut, prevStd, prevPrefix := logger.Output(), log.Writer(), log.Prefix()
	restore := func() {
		logger.SetOutput(prevOut)
		log.SetOutput(prevStd)
		log.SetPrefix(prevPrefix)
	}

	if path == "" {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return restore, nil
	}
	f, err := tea.LogToFile(path, "pvs")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		restore()
		_ = f.Close()
	}, nil
}

// Exit closes the window. Calls before Run make Run return immediately.
func (l *Loop) Exit() {
	l.mu.Lock()
	l.exited = true
	p := l.program
	l.mu.Unlock()

	if p != nil {
		p.Quit()
	}
}

// Frames returns the redraw count of the last completed Run.
func (l *Loop) Frames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}
