// Package launch runs the game executable in the background, one launch at
// a time, and reports the outcome back to the caller's UI thread.
package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/piwi3910/ToonChess/internal/model"
)

// RuntimeErrorTitle is the title of every error notification raised by a
// launch.
const RuntimeErrorTitle = "Runtime error"

// ErrBusy is returned by RequestPlay while a game is already running.
var ErrBusy = errors.New("game is already running")

// State is the launch state of the supervisor.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "Running"
	}
	return "Idle"
}

// Saver persists a settings snapshot before each launch.
type Saver interface {
	Save(snapshot model.Snapshot) error
}

// Launch records a single run of the game.
type Launch struct {
	ID         uuid.UUID
	Executable string
	Started    time.Time
	Finished   time.Time
	Result     Result
	Err        error // Set when the process could not be started
}

// ErrorText returns the message to show the user for this launch, or ""
// when there is nothing to report.
func (l Launch) ErrorText() string {
	if l.Err != nil {
		return l.Err.Error()
	}
	return strings.TrimSpace(l.Result.Stderr)
}

// Duration is how long the game ran.
func (l Launch) Duration() time.Duration {
	if l.Finished.IsZero() {
		return 0
	}
	return l.Finished.Sub(l.Started)
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Supervisor) { s.logger = logger }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Supervisor) { s.now = now }
}

// Supervisor owns the single background slot used to run the game.
//
// The callbacks are invoked through the dispatcher and must be set before
// the first call to RequestPlay.
type Supervisor struct {
	store      Saver
	runner     Runner
	executable string

	slot     *semaphore.Weighted
	dispatch func(func())
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	state State
	wg    sync.WaitGroup

	OnStateChange func(State)
	OnComplete    func(Launch)
	OnError       func(title, message string)
}

// NewSupervisor creates an idle Supervisor that saves through store and
// starts executable through runner. dispatch must run the function it is
// given on the UI thread (fyne.Do in the launcher); completion handling and
// every callback go through it. It panics if dispatch is nil.
func NewSupervisor(store Saver, runner Runner, executable string, dispatch func(func()), opts ...Option) *Supervisor {
	if dispatch == nil {
		panic("launch: NewSupervisor requires a dispatcher")
	}
	s := &Supervisor{
		store:      store,
		runner:     runner,
		executable: executable,
		slot:       semaphore.NewWeighted(1),
		dispatch:   dispatch,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current launch state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RequestPlay saves snapshot and starts the game on the background slot.
// It returns ErrBusy without saving or spawning anything if a game is
// already running, and a wrapped save error if the settings could not be
// written, in which case nothing is started either.
func (s *Supervisor) RequestPlay(snapshot model.Snapshot) (Launch, error) {
	if !s.slot.TryAcquire(1) {
		s.logger.Debug("play request rejected", "reason", ErrBusy)
		return Launch{}, ErrBusy
	}

	if err := s.store.Save(snapshot); err != nil {
		s.slot.Release(1)
		return Launch{}, fmt.Errorf("failed to save settings before launch: %w", err)
	}

	l := Launch{
		ID:         uuid.New(),
		Executable: s.executable,
		Started:    s.now(),
	}

	s.wg.Add(1)
	s.setState(Running)
	s.logger.Info("launching game", "id", l.ID, "executable", l.Executable)

	go s.work(l)
	return l, nil
}

// Wait blocks until no launch is in flight. Completion handling has been
// handed to the dispatcher by the time it returns.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}

func (s *Supervisor) work(l Launch) {
	defer s.wg.Done()

	l.Result, l.Err = s.runner.Run(l.Executable)
	l.Finished = s.now()

	switch {
	case l.Err != nil:
		s.logger.Error("game failed to start", "id", l.ID, "error", l.Err)
	case l.Result.ExitCode != 0:
		s.logger.Warn("game exited with error", "id", l.ID,
			"exit_code", l.Result.ExitCode, "duration", l.Duration())
	default:
		s.logger.Info("game exited", "id", l.ID, "duration", l.Duration())
	}

	s.dispatch(func() { s.complete(l) })
}

// complete runs on the UI thread once the process has exited.
func (s *Supervisor) complete(l Launch) {
	s.mu.Lock()
	s.state = Idle
	s.slot.Release(1)
	s.mu.Unlock()

	if s.OnStateChange != nil {
		s.OnStateChange(Idle)
	}
	if s.OnComplete != nil {
		s.OnComplete(l)
	}
	if msg := l.ErrorText(); msg != "" && s.OnError != nil {
		s.OnError(RuntimeErrorTitle, msg)
	}
}

func (s *Supervisor) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	if s.OnStateChange != nil {
		s.OnStateChange(state)
	}
}
