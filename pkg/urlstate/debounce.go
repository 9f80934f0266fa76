package urlstate

import (
	"net/url"
	"sync"
	"time"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/debug"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/viewerstate"
)

// DefaultPushInterval is the quiescence window of a Pusher. Slider drags
// and playback mutate the store far faster than this, so a burst
// collapses into a single push once it ends.
const DefaultPushInterval = 200 * time.Millisecond

// Pusher serializes store state to a sink after each mutation burst.
// Serialization is suspended while mutations keep arriving within the
// push interval and runs once the store goes quiet, so the sink sees
// only settled states.
type Pusher struct {
	store    *viewerstate.Store
	sink     func(url.Values)
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewPusher attaches a pusher to the store. The sink runs on a timer
// goroutine; it must not mutate the store. interval <= 0 selects
// DefaultPushInterval.
func NewPusher(store *viewerstate.Store, interval time.Duration, sink func(url.Values)) *Pusher {
	if interval <= 0 {
		interval = DefaultPushInterval
	}
	p := &Pusher{store: store, sink: sink, interval: interval}
	store.OnChange(p.trigger)
	return p
}

// trigger restarts the quiescence timer. Called after every completed
// store mutation.
func (p *Pusher) trigger() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.interval, p.push)
}

func (p *Pusher) push() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.mu.Unlock()

	values := Serialize(p.store.Snapshot())
	debug.Log("pushing %d url params", len(values))
	p.sink(values)
}

// Flush serializes immediately, cancelling any pending push. Used on
// shutdown so the last burst is not lost.
func (p *Pusher) Flush() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	stopped := p.stopped
	p.mu.Unlock()
	if stopped {
		return
	}
	p.sink(Serialize(p.store.Snapshot()))
}

// Stop cancels any pending push and detaches the pusher. The store
// callback stays registered but becomes a no-op.
func (p *Pusher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
