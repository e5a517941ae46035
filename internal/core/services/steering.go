package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/plato/internal/core/domain"
	"github.com/custodia-labs/plato/internal/core/pipeline"
	"github.com/custodia-labs/plato/internal/core/ports/driven"
	"github.com/custodia-labs/plato/internal/core/ports/driving"
	"github.com/custodia-labs/plato/internal/logger"
)

// Ensure SteeringService implements the interface.
var _ driving.SteeringService = (*SteeringService)(nil)

// AppName is announced to steering sources.
const AppName = "pvs"

// pollFailureLogEvery throttles poll failure warnings and journal rows
// once a run of failures is under way.
const pollFailureLogEvery = 5 * time.Second

// SteeringService runs the steering worker alongside a render loop.
type SteeringService struct {
	source   driven.SteeringSource
	journal  driven.SteeringJournal
	interval time.Duration
	limiter  *rate.Limiter
}

// NewSteeringService creates a steering service. journal may be nil.
func NewSteeringService(source driven.SteeringSource, journal driven.SteeringJournal, interval time.Duration) *SteeringService {
	if interval <= 0 {
		interval = domain.DefaultAppSettings().Steering.PollInterval
	}
	return &SteeringService{
		source:   source,
		journal:  journal,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(pollFailureLogEvery), 1),
	}
}

// Run starts the worker, blocks in loop.Run, then shuts the worker down and
// waits for it. The wait has no timeout: a source that hangs inside Poll
// blocks Run until it returns.
func (s *SteeringService) Run(
	ctx context.Context,
	info domain.SteeringSession,
	scene *pipeline.Scene,
	loop driven.RenderLoop,
) error {
	session, err := s.Start(ctx, info, scene, loop)
	if err != nil {
		return err
	}

	loopErr := loop.Run(ctx, session)
	if err := s.Finish(session); err != nil {
		return errors.Join(loopErr, err)
	}
	return loopErr
}

// Start registers the scene's parameters, opens the source and launches
// the worker goroutine. The returned session is the loop's frame source.
func (s *SteeringService) Start(
	ctx context.Context,
	info domain.SteeringSession,
	scene *pipeline.Scene,
	loop driven.RenderLoop,
) (*SteeringSession, error) {
	params := NewParameterSet()
	for _, p := range SceneParameters(scene) {
		if err := params.Register(p); err != nil {
			return nil, fmt.Errorf("register parameter: %w", err)
		}
	}

	if err := s.source.Open(ctx, AppName, params.Snapshot()); err != nil {
		return nil, fmt.Errorf("open steering source: %w", err)
	}
	logger.Info("steering: registered %d parameters", params.Len())

	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}
	s.journalStart(ctx, info)

	session := NewSteeringSession(info.ID)
	w := &worker{
		svc:      s,
		session:  session,
		params:   params,
		dispatch: NewDispatcher(scene, params),
		loop:     loop,
	}
	go w.run(context.WithoutCancel(ctx))
	return session, nil
}

// Finish requests shutdown and waits, once, for the worker to exit.
func (s *SteeringService) Finish(session *SteeringSession) error {
	session.RequestShutdown()
	return session.Completion().Wait(context.Background())
}

func (s *SteeringService) journalStart(ctx context.Context, info domain.SteeringSession) {
	if s.journal == nil {
		return
	}
	if err := s.journal.StartSession(ctx, info); err != nil {
		logger.Warn("steering: journal start: %v", err)
	}
}

func (s *SteeringService) record(ctx context.Context, ev domain.SteeringEvent) {
	if s.journal == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	if err := s.journal.Record(ctx, ev); err != nil {
		logger.Warn("steering: journal record: %v", err)
	}
}

// worker is the polling half of a session. Only its goroutine touches the
// source.
type worker struct {
	svc      *SteeringService
	session  *SteeringSession
	params   *ParameterSet
	dispatch *Dispatcher
	loop     driven.RenderLoop

	// failures counts consecutive failed polls.
	failures int
}

func (w *worker) run(ctx context.Context) {
	defer w.exit(ctx)

	iteration := 0
	for !w.session.ShutdownRequested() {
		time.Sleep(w.svc.interval)

		res, err := w.svc.source.Poll(ctx, iteration)
		if err == nil && res.Status != domain.PollSuccess {
			err = domain.ErrPollFailure
		}
		if err != nil {
			w.pollFailed(ctx, iteration, err)
			continue
		}
		if w.failures > 0 {
			logger.Info("steering: polling recovered after %d failures", w.failures)
			w.failures = 0
		}

		w.params.ClearChanged()
		if w.apply(ctx, iteration, res) {
			w.session.RequestRender()
		}
		iteration++
	}
}

// apply handles commands, then changes in reported order. It reports
// whether any change reached a pipeline.
func (w *worker) apply(ctx context.Context, iteration int, res domain.PollResult) bool {
	for _, cmd := range res.Commands {
		ev := domain.SteeringEvent{
			SessionID: w.session.ID(),
			Iteration: iteration,
			Kind:      domain.EventCommand,
			Name:      string(cmd),
		}
		switch cmd {
		case domain.CommandStop:
			logger.Info("steering: stop requested")
			w.loop.Exit()
		default:
			ev.Kind = domain.EventIgnored
			ev.Detail = "unknown command"
		}
		w.svc.record(ctx, ev)
	}

	refresh := false
	for _, change := range res.Changes {
		ev := domain.SteeringEvent{
			SessionID: w.session.ID(),
			Iteration: iteration,
			Kind:      domain.EventParameterChanged,
			Name:      change.Name,
			Value:     change.Value,
		}
		p, err := w.params.Apply(change)
		if err == nil {
			ev.Value = p.Value
			err = w.dispatch.Dispatch(change.Name)
		}
		if err != nil {
			logger.Debug("steering: ignoring %s=%g: %v", change.Name, change.Value, err)
			ev.Kind = domain.EventIgnored
			ev.Detail = err.Error()
			w.svc.record(ctx, ev)
			continue
		}
		logger.Debug("steering: %s = %g", change.Name, ev.Value)
		w.svc.record(ctx, ev)
		refresh = true
	}
	return refresh
}

// pollFailed journals the first failure of a run, then at most one per
// limiter period while the run lasts.
func (w *worker) pollFailed(ctx context.Context, iteration int, err error) {
	w.failures++
	logger.Debug("steering: poll %d failed: %v", iteration, err)
	allowed := w.svc.limiter.Allow()
	if w.failures > 1 && !allowed {
		return
	}
	detail := err.Error()
	if w.failures > 1 {
		detail = fmt.Sprintf("%s (%d consecutive)", detail, w.failures)
	}
	logger.Warn("steering: poll failed: %s", detail)
	w.svc.record(ctx, domain.SteeringEvent{
		SessionID: w.session.ID(),
		Iteration: iteration,
		Kind:      domain.EventPollFailed,
		Detail:    detail,
	})
}

func (w *worker) exit(ctx context.Context) {
	if err := w.svc.source.Close(); err != nil {
		logger.Warn("steering: close source: %v", err)
	}
	if w.svc.journal != nil {
		if err := w.svc.journal.EndSession(ctx, w.session.ID(), time.Now()); err != nil {
			logger.Warn("steering: journal end: %v", err)
		}
	}
	w.session.markWorkerExited()
	if err := w.session.Completion().Signal(); err != nil {
		logger.Warn("steering: %v", err)
	}
}

