package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/idlab-discover/fraudboard-cli/internal/fallback"
	"github.com/idlab-discover/fraudboard-cli/internal/logging"
	"github.com/idlab-discover/fraudboard-cli/internal/repository"
	"github.com/idlab-discover/fraudboard-cli/internal/results"
)

// Repository is the source of real evaluation results.
type Repository interface {
	FetchResults(ctx context.Context) (repository.Results, error)
}

// TransformFunc turns raw curve arrays into a plottable curve.
type TransformFunc func(results.RawCurveData) (results.Curve, error)

// Report describes a finished load cycle. It is passed to observers.
type Report struct {
	CycleID  string
	Status   Status
	Duration time.Duration
	// Err is the repository or transform error that caused a Degraded or Failed
	// outcome; nil for Ready.
	Err error
	// Superseded is true when a newer cycle started before this one finished;
	// its result was not published.
	Superseded bool
}

// Observer is notified after every cycle, published or not.
type Observer func(Report)

// Option configures a Machine.
type Option func(*Machine)

// WithFallback replaces the fallback provider. A nil provider means no
// fallback is available and failures end in Failed.
func WithFallback(p fallback.Provider) Option {
	return func(m *Machine) { m.fallback = p }
}

// WithPolicy sets the failure policy.
func WithPolicy(p Policy) Option {
	return func(m *Machine) { m.policy = p }
}

// WithTransform replaces results.Assemble.
func WithTransform(f TransformFunc) Option {
	return func(m *Machine) {
		if f != nil {
			m.transform = f
		}
	}
}

// WithClock sets the time source used for UpdatedAt and durations.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithObserver registers a cycle observer.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// Machine runs load cycles and publishes their view models.
// It is safe for concurrent use.
type Machine struct {
	repo      Repository
	fallback  fallback.Provider
	transform TransformFunc
	policy    Policy
	now       func() time.Time
	observers []Observer

	started  atomic.Uint64 // sequence number of the newest cycle
	inFlight atomic.Int64
	current  atomic.Pointer[ViewModel]

	mu      sync.Mutex
	subs    map[int]chan ViewModel
	nextSub int
}

// New returns a Machine in the Loading state.
func New(repo Repository, opts ...Option) *Machine {
	m := &Machine{
		repo:      repo,
		fallback:  fallback.Static{},
		transform: results.Assemble,
		policy:    PolicyDegrade,
		now:       time.Now,
		subs:      make(map[int]chan ViewModel),
	}
	for _, opt := range opts {
		opt(m)
	}
	initial := ViewModel{Status: StatusLoading}
	m.current.Store(&initial)
	return m
}

// Current returns the last published view model. While a newer cycle is in
// flight the previous terminal state stays visible with Refreshing set.
func (m *Machine) Current() ViewModel {
	vm := m.current.Load().Clone()
	vm.Refreshing = vm.Terminal() && m.inFlight.Load() > 0
	return vm
}

// Policy returns the configured failure policy.
func (m *Machine) Policy() Policy { return m.policy }

// Load runs one cycle and returns its view model. The view model is published
// (Current, subscribers) unless a newer cycle was started in the meantime.
func (m *Machine) Load(ctx context.Context) ViewModel {
	seq := m.started.Add(1)
	id := uuid.NewString()
	ctx = logging.WithCycle(ctx, id)

	m.inFlight.Add(1)
	defer m.inFlight.Add(-1)

	begin := m.now()
	logf(ctx, "cycle %d started (policy=%s)", seq, m.policy)

	state, cause := m.resolve(ctx)
	vm := Project(state)
	vm.CycleID = id
	vm.UpdatedAt = m.now()

	published := m.publish(seq, vm)
	if published {
		logf(ctx, "cycle %d published %s", seq, vm.Status)
	} else {
		logf(ctx, "cycle %d superseded, %s result discarded", seq, vm.Status)
	}

	report := Report{
		CycleID:    id,
		Status:     vm.Status,
		Duration:   m.now().Sub(begin),
		Err:        cause,
		Superseded: !published,
	}
	for _, o := range m.observers {
		o(report)
	}
	return vm.Clone()
}

// Refresh starts a cycle in the background. The returned channel receives the
// cycle's view model and is then closed.
func (m *Machine) Refresh(ctx context.Context) <-chan ViewModel {
	done := make(chan ViewModel, 1)
	go func() {
		defer close(done)
		done <- m.Load(ctx)
	}()
	return done
}

// Subscribe returns a channel that receives every published view model.
// A slow subscriber only ever sees the latest one. cancel closes the channel.
func (m *Machine) Subscribe() (<-chan ViewModel, func()) {
	ch := make(chan ViewModel, 1)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (m *Machine) resolve(ctx context.Context) (State, error) {
	if m.repo == nil {
		err := errors.New("no metrics repository configured")
		return m.degrade(ctx, err), err
	}

	res, err := m.repo.FetchResults(ctx)
	if err != nil {
		return m.degrade(ctx, err), err
	}

	curve, err := m.transform(res.Curve)
	if err != nil {
		return m.degrade(ctx, err), err
	}
	return Ready{Metrics: res.Metrics, Curve: curve}, nil
}

func (m *Machine) degrade(ctx context.Context, err error) State {
	if m.policy == PolicyStrict {
		logf(ctx, "strict policy, failing: %v", err)
		return Failed{Error: err.Error()}
	}
	if m.fallback == nil {
		logf(ctx, "no fallback available: %v", err)
		return Failed{Error: "no fallback data available: " + err.Error()}
	}
	logf(ctx, "degrading to fallback data: %v", err)
	fb := m.fallback.SyntheticResult()
	return Degraded{Metrics: fb.Metrics, Curve: fb.Curve, Warning: err.Error()}
}

func (m *Machine) publish(seq uint64, vm ViewModel) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.started.Load() {
		return false
	}
	stored := vm.Clone()
	m.current.Store(&stored)

	for _, ch := range m.subs {
		select {
		case ch <- vm.Clone():
		default:
			// drop the stale value so the subscriber sees the latest one
			select {
			case <-ch:
			default:
			}
			ch <- vm.Clone()
		}
	}
	return true
}
