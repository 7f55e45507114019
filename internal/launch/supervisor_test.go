package launch

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ToonChess/internal/model"
)

type fakeStore struct {
	mu    sync.Mutex
	saved []model.Snapshot
	err   error
}

func (f *fakeStore) Save(s model.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s.Clone())
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

// fakeRunner counts spawns. When release is non-nil each run blocks until
// it receives a value.
type fakeRunner struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	result  Result
	err     error
}

func (f *fakeRunner) Run(executable string) (Result, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

type notification struct {
	title, message string
}

type recorder struct {
	mu       sync.Mutex
	states   []State
	errors   []notification
	launches []Launch
}

func (r *recorder) attach(s *Supervisor) {
	s.OnStateChange = func(st State) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.states = append(r.states, st)
	}
	s.OnError = func(title, message string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.errors = append(r.errors, notification{title, message})
	}
	s.OnComplete = func(l Launch) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.launches = append(r.launches, l)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runNow completes launches on the worker goroutine. Only tests do this.
func runNow(f func()) { f() }

func newTestSupervisor(store Saver, runner Runner, opts ...Option) (*Supervisor, *recorder) {
	return newDispatchedSupervisor(store, runner, runNow, opts...)
}

func newDispatchedSupervisor(store Saver, runner Runner, dispatch func(func()), opts ...Option) (*Supervisor, *recorder) {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	s := NewSupervisor(store, runner, "toonchess", dispatch, opts...)
	rec := &recorder{}
	rec.attach(s)
	return s, rec
}

func TestRequestPlayReturnsToIdleAfterCleanExit(t *testing.T) {
	store := &fakeStore{}
	runner := &fakeRunner{result: Result{Stdout: "bye\n"}}
	sup, rec := newTestSupervisor(store, runner)

	snap := model.Defaults()
	l, err := sup.RequestPlay(snap)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.Equal(t, "toonchess", l.Executable)

	sup.Wait()

	assert.Equal(t, Idle, sup.State())
	assert.Equal(t, []State{Running, Idle}, rec.states)
	assert.Empty(t, rec.errors, "no error notification on clean exit")
	require.Len(t, rec.launches, 1)
	assert.Equal(t, l.ID, rec.launches[0].ID)
	assert.Equal(t, "bye\n", rec.launches[0].Result.Stdout)
	assert.Equal(t, int32(1), runner.calls.Load())
	require.Equal(t, 1, store.count())
	assert.True(t, snap.Equal(store.saved[0]))
}

func TestRequestPlayWhileRunningIsRejected(t *testing.T) {
	store := &fakeStore{}
	runner := &fakeRunner{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	sup, rec := newTestSupervisor(store, runner)

	_, err := sup.RequestPlay(model.Defaults())
	require.NoError(t, err)
	<-runner.started

	_, err = sup.RequestPlay(model.Defaults())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, Running, sup.State())
	assert.Equal(t, int32(1), runner.calls.Load(), "no second process")
	assert.Equal(t, 1, store.count(), "rejected request does not save")

	runner.release <- struct{}{}
	sup.Wait()
	assert.Equal(t, Idle, sup.State())
	assert.Equal(t, []State{Running, Idle}, rec.states)

	// The slot is free again.
	_, err = sup.RequestPlay(model.Defaults())
	require.NoError(t, err)
	<-runner.started
	runner.release <- struct{}{}
	sup.Wait()
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestConcurrentRequestsSpawnOnce(t *testing.T) {
	runner := &fakeRunner{release: make(chan struct{})}
	sup, _ := newTestSupervisor(&fakeStore{}, runner)

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := sup.RequestPlay(model.Defaults()); err == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	close(runner.release)
	sup.Wait()
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestStderrIsSurfacedAsRuntimeError(t *testing.T) {
	runner := &fakeRunner{result: Result{Stderr: "boom", ExitCode: 1}}
	sup, rec := newTestSupervisor(&fakeStore{}, runner)

	_, err := sup.RequestPlay(model.Defaults())
	require.NoError(t, err)
	sup.Wait()

	assert.Equal(t, Idle, sup.State())
	require.Len(t, rec.errors, 1)
	assert.Equal(t, notification{RuntimeErrorTitle, "boom"}, rec.errors[0])
}

func TestStartFailureIsSurfacedAndReturnsToIdle(t *testing.T) {
	startErr := errors.New("failed to start toonchess: executable file not found in $PATH")
	runner := &fakeRunner{err: startErr}
	sup, rec := newTestSupervisor(&fakeStore{}, runner)

	_, err := sup.RequestPlay(model.Defaults())
	require.NoError(t, err)
	sup.Wait()

	assert.Equal(t, Idle, sup.State())
	require.Len(t, rec.errors, 1)
	assert.Equal(t, RuntimeErrorTitle, rec.errors[0].title)
	assert.Equal(t, startErr.Error(), rec.errors[0].message)
	require.Len(t, rec.launches, 1)
	assert.ErrorIs(t, rec.launches[0].Err, startErr)
}

func TestWhitespaceOnlyStderrIsNotAnError(t *testing.T) {
	runner := &fakeRunner{result: Result{Stderr: "\n  \n"}}
	sup, rec := newTestSupervisor(&fakeStore{}, runner)

	_, err := sup.RequestPlay(model.Defaults())
	require.NoError(t, err)
	sup.Wait()

	assert.Empty(t, rec.errors)
}

func TestSaveFailureAbortsLaunch(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	runner := &fakeRunner{}
	sup, rec := newTestSupervisor(store, runner)

	_, err := sup.RequestPlay(model.Defaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.err)
	assert.Equal(t, Idle, sup.State())
	assert.Empty(t, rec.states)
	assert.Equal(t, int32(0), runner.calls.Load())

	store.err = nil
	_, err = sup.RequestPlay(model.Defaults())
	require.NoError(t, err, "slot must be released after a failed save")
	sup.Wait()
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestCompletionRunsThroughDispatcher(t *testing.T) {
	queue := make(chan func(), 1)
	runner := &fakeRunner{result: Result{Stderr: "boom"}}
	sup, rec := newDispatchedSupervisor(&fakeStore{}, runner,
		func(f func()) { queue <- f })

	_, err := sup.RequestPlay(model.Defaults())
	require.NoError(t, err)
	sup.Wait()

	// The worker is done but the UI thread has not run the completion yet.
	assert.Equal(t, Running, sup.State())
	assert.Empty(t, rec.errors)
	_, err = sup.RequestPlay(model.Defaults())
	assert.ErrorIs(t, err, ErrBusy)

	(<-queue)()

	assert.Equal(t, Idle, sup.State())
	assert.Len(t, rec.errors, 1)
}

func TestNewSupervisorRequiresDispatcher(t *testing.T) {
	assert.Panics(t, func() {
		NewSupervisor(&fakeStore{}, &fakeRunner{}, "toonchess", nil)
	})
}

func TestLaunchTiming(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var ticks atomic.Int32
	clock := func() time.Time {
		n := ticks.Add(1) - 1
		return base.Add(time.Duration(n) * time.Minute)
	}
	sup, rec := newTestSupervisor(&fakeStore{}, &fakeRunner{}, WithClock(clock))

	_, err := sup.RequestPlay(model.Defaults())
	require.NoError(t, err)
	sup.Wait()

	require.Len(t, rec.launches, 1)
	l := rec.launches[0]
	assert.Equal(t, base, l.Started)
	assert.Equal(t, time.Minute, l.Duration())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "Running", Running.String())
}

func TestLaunchErrorText(t *testing.T) {
	assert.Equal(t, "", Launch{}.ErrorText())
	assert.Equal(t, "oops", Launch{Result: Result{Stderr: "oops\n"}}.ErrorText())
	assert.Equal(t, "nope", Launch{Err: errors.New("nope"), Result: Result{Stderr: "x"}}.ErrorText())
	assert.Equal(t, time.Duration(0), Launch{Started: time.Now()}.Duration())
}
