package viewerstate

import (
	"sync"
	"sync/atomic"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/dataset"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/debug"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/metrics"
)

// maxCascadePasses bounds derived-state propagation. The subscription
// graph is acyclic, so two passes always reach a fixpoint; more indicates
// a reaction re-triggering its own watched fields.
const maxCascadePasses = 8

// Store owns the ViewerState aggregate and is its only mutation surface.
// Every mutator runs to completion, including its derived-state cascade,
// before any reader observes the new state; concurrent mutations never
// interleave.
type Store struct {
	mu    sync.Mutex
	state ViewerState
	subs  []*subscription

	onChange []func()

	// loadGen guards async dataset loads: only the most recently begun
	// load may commit its result.
	loadGen atomic.Uint64

	// slotCursor continues the cyclic color-slot counter once all
	// TrackColorSlots slots are occupied.
	slotCursor int
}

// subscription is one (project, react) registration of the derived-state
// engine. The projection must return a comparable value; the reaction
// runs whenever the projected value differs from the last one seen.
type subscription struct {
	name     string
	priority int
	project  func(*ViewerState) any
	react    func(st *Store, old, new any)
	last     any
}

// NewStore creates a store holding default state with the standard
// derived-state subscriptions registered.
func NewStore() *Store {
	s := &Store{state: defaultState()}
	s.registerSubscriptions()
	// Prime projections so subscriptions fire on change, not on startup.
	for _, sub := range s.subs {
		sub.last = sub.project(&s.state)
	}
	return s
}

// OnChange registers fn to run after every completed mutation cascade.
// Callbacks run outside the store lock and may read the store.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// mutate is the single write harness: it applies fn under the lock, and
// when fn succeeds runs the derived-state cascade and change callbacks.
// When fn fails the state is untouched and no cascade runs.
func (s *Store) mutate(fn func(st *ViewerState) error) error {
	s.mu.Lock()
	if err := fn(&s.state); err != nil {
		s.mu.Unlock()
		return err
	}
	s.runCascade()
	callbacks := make([]func(), len(s.onChange))
	copy(callbacks, s.onChange)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// runCascade re-evaluates every subscription in priority order until no
// projection changes. Called with the lock held.
func (s *Store) runCascade() {
	defer metrics.Timer(metrics.CascadeRun)()

	for pass := 0; pass < maxCascadePasses; pass++ {
		fired := false
		for _, sub := range s.subs {
			cur := sub.project(&s.state)
			if cur == sub.last {
				continue
			}
			old := sub.last
			sub.last = cur
			debug.Log("reaction %s firing (pass %d)", sub.name, pass)
			sub.react(s, old, cur)
			fired = true
		}
		if !fired {
			return
		}
	}
	debug.Log("cascade did not settle after %d passes", maxCascadePasses)
}

// Snapshot returns a copy of the current state. Slices in the snapshot
// are shared with the store but never mutated in place; treat them as
// read-only.
func (s *Store) Snapshot() ViewerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dataset returns the current dataset, or nil when none is loaded.
func (s *Store) Dataset() *dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Dataset
}

// InRange returns the derived per-object threshold pass table. The slice
// is replaced wholesale on recompute; treat it as read-only.
func (s *Store) InRange() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.InRange
}

// SelectedLUT returns the derived per-object track highlight table: the
// owning track's color slot plus one, or 0 when unselected. Read-only.
func (s *Store) SelectedLUT() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SelectedLUT
}

// BeginDatasetLoad marks the start of an async dataset load and returns
// a generation token for CommitDataset. Starting a newer load supersedes
// all earlier tokens.
func (s *Store) BeginDatasetLoad() uint64 {
	return s.loadGen.Add(1)
}

// CommitDataset installs a loaded dataset if gen is still the most recent
// load generation. Superseded results are discarded and false returned;
// there is no cancellation of in-flight loads, only discarding of stale
// results.
func (s *Store) CommitDataset(gen uint64, key string, ds *dataset.Dataset) bool {
	if gen != s.loadGen.Load() {
		debug.Log("discarding stale dataset load %q (gen %d, current %d)", key, gen, s.loadGen.Load())
		return false
	}
	s.setDataset(key, ds)
	return true
}
