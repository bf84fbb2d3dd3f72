// Package notify delivers timed alerts for the notification dock: a
// min-heap of pending alerts drained by a single timer loop. Alerts
// with a repeat rule re-enter the heap after firing.
package notify

import (
	"container/heap"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	ErrInvalidFireTime = errors.New("notify: invalid fire time")
	ErrEngineStopped   = errors.New("notify: engine stopped")
)

// Alert is one scheduled notification. Repeat, when set, is a
// standard five-field cron expression; the engine reschedules the
// alert at the expression's next activation after each delivery.
type Alert struct {
	ID     string
	Title  string
	Body   string
	At     time.Time
	Repeat string
}

type queueItem struct {
	alert  Alert
	repeat cron.Schedule
}

type alertQueue []queueItem

func (q alertQueue) Len() int { return len(q) }

func (q alertQueue) Less(i, j int) bool {
	return q[i].alert.At.Before(q[j].alert.At)
}

func (q alertQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *alertQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *alertQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   alertQueue
	out     chan Alert
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(alertQueue, 0),
		out:    make(chan Alert, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Alert {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues an alert. A repeat rule is validated here so a bad
// expression surfaces to the caller instead of dying in the loop.
func (e *Engine) Schedule(a Alert) error {
	if a.At.IsZero() {
		return ErrInvalidFireTime
	}
	var repeat cron.Schedule
	if a.Repeat != "" {
		sched, err := cron.ParseStandard(a.Repeat)
		if err != nil {
			return fmt.Errorf("notify: parse repeat rule %q: %w", a.Repeat, err)
		}
		repeat = sched
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	heap.Push(&e.queue, queueItem{alert: a, repeat: repeat})
	e.signalWakeup()
	return nil
}

// Drop removes every pending alert whose ID matches. Used when the
// underlying event is deleted before its alert fires.
func (e *Engine) Drop(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := make(alertQueue, 0, len(e.queue))
	for _, item := range e.queue {
		if item.alert.ID != id {
			kept = append(kept, item)
		}
	}
	e.queue = kept
	heap.Init(&e.queue)
	e.signalWakeup()
}

// DropMatching removes pending alerts whose ID is id or id followed
// by an "@" suffix. Event alerts encode the occurrence time after the
// separator, so one call clears every occurrence of an event.
func (e *Engine) DropMatching(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := make(alertQueue, 0, len(e.queue))
	for _, item := range e.queue {
		if item.alert.ID != id && !strings.HasPrefix(item.alert.ID, id+"@") {
			kept = append(kept, item)
		}
	}
	e.queue = kept
	heap.Init(&e.queue)
	e.signalWakeup()
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.At)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, a := range due {
				select {
				case e.out <- a:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Alert{}, false
	}
	return e.queue[0].alert, true
}

// popDue pops every alert due at or before now and requeues the
// repeating ones at their next activation.
func (e *Engine) popDue(now time.Time) []Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Alert, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].alert
		if next.At.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.alert)
		if item.repeat != nil {
			item.alert.At = item.repeat.Next(now)
			heap.Push(&e.queue, item)
		}
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
