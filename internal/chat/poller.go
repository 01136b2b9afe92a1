package chat

import (
	"context"
	"log"
	"sync"
	"time"
)

// Fetcher retrieves all message lines strictly newer than since for the
// session's conversation
type Fetcher func(ctx context.Context, since time.Time) ([]string, error)

// Poller runs the background fetch cycle for exactly one open chat session.
// All cycles, including out-of-band polls triggered by sending a message,
// execute on a single goroutine, so fetches never overlap and the cursor and
// merger are only touched from that goroutine after Start.
type Poller struct {
	interval time.Duration
	fetch    Fetcher
	merger   *Merger
	deliver  func(lines []string)
	logger   *log.Logger

	mu     sync.Mutex
	cursor time.Time

	ctx       context.Context
	cancel    context.CancelFunc
	pollNow   chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPoller creates a poller for one chat session. The cursor starts at "now":
// history before the session opened is covered by the initial bulk load, not
// by polling. deliver is invoked with the merged lines of each successful
// cycle and must route UI mutation back to the UI thread itself.
func NewPoller(interval time.Duration, fetch Fetcher, merger *Merger, deliver func(lines []string), logger *log.Logger) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		interval: interval,
		fetch:    fetch,
		merger:   merger,
		deliver:  deliver,
		logger:   logger,
		cursor:   time.Now().UTC(),
		ctx:      ctx,
		cancel:   cancel,
		pollNow:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop. Calling Start more than once is a no-op.
func (p *Poller) Start() {
	p.startOnce.Do(func() {
		go p.loop()
	})
}

// PollNow requests one immediate out-of-band cycle, used right after sending
// a message so it shows up without waiting a full interval. The request is
// handled by the regular loop goroutine, never concurrently with a timed
// cycle; if one is already queued the call is a no-op.
func (p *Poller) PollNow() {
	select {
	case p.pollNow <- struct{}{}:
	default:
	}
}

// Stop cancels the poll loop. A fetch already in flight is allowed to finish
// but its result is discarded; nothing is delivered after Stop returns the
// loop to idle. Safe to call more than once. Stop does not block waiting for
// the loop: waiting here from a UI event handler while the loop is blocked
// delivering a batch would deadlock the teardown.
func (p *Poller) Stop() {
	p.stopOnce.Do(p.cancel)
}

// Done is closed once the loop goroutine has exited
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Cursor returns the current poll cursor
func (p *Poller) Cursor() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

func (p *Poller) loop() {
	defer close(p.done)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-timer.C:
			p.cycle()
			timer.Reset(p.interval)
		case <-p.pollNow:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			p.cycle()
			timer.Reset(p.interval)
		}
	}
}

// cycle performs one fetch → merge → deliver pass. The cursor advances to
// "now" after every attempt, win or lose, so a failing window is never
// re-fetched indefinitely (messages sent during an outage window can be
// skipped; that matches the polling contract).
func (p *Poller) cycle() {
	since := p.Cursor()
	lines, err := p.fetch(p.ctx, since)

	p.mu.Lock()
	p.cursor = time.Now().UTC()
	p.mu.Unlock()

	if p.ctx.Err() != nil {
		// Session torn down while the fetch was in flight; discard the result.
		return
	}
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("poll cycle failed (since=%s): %v", since.Format(time.RFC3339), err)
		}
		return
	}

	merged := p.merger.Merge(lines)
	if len(merged) == 0 {
		// Nothing new; don't wake the UI
		return
	}
	p.deliver(merged)
}
