package Worker

import (
	"log"
	"sync"

	"DocTools/Messaging"
	"DocTools/Models"
)

// WindowSet is the window-management capability the router runs against. The
// live hub implements it; tests supply synthetic window sets.
type WindowSet interface {
	Snapshot() []Models.WindowClient
	SendTo(windowID string, event string) bool
	Broadcast(event string)
}

type eventKind int

const (
	pushEvent eventKind = iota
	clickEvent
)

type event struct {
	kind  eventKind
	push  Models.PushMessage
	click Models.ClickEvent
}

// Worker is the background execution context for push handling. Events are
// processed one at a time; asynchronous work started by a handler must go
// through extendLifetime so Terminate can wait for it, otherwise a teardown
// between events may drop it. No state survives across events.
type Worker struct {
	handle  *Messaging.Handle
	windows WindowSet

	events  chan event
	pending sync.WaitGroup
	started chan struct{}
	quit    chan struct{}
	done    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

func New(handle *Messaging.Handle, windows WindowSet) *Worker {
	return &Worker{
		handle:  handle,
		windows: windows,
		events:  make(chan event, 32),
		started: make(chan struct{}),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the event loop.
func (w *Worker) Start() {
	w.startOnce.Do(func() {
		close(w.started)
		go w.loop()
	})
}

func (w *Worker) loop() {
	defer close(w.done)
	for {
		select {
		case ev := <-w.events:
			switch ev.kind {
			case pushEvent:
				w.handlePush(ev.push)
			case clickEvent:
				w.handleClick(ev.click)
			}
		case <-w.quit:
			return
		}
	}
}

// EnqueuePush hands an inbound push to the worker. Delivery is
// fire-and-forget: if the worker is gone or saturated the message is lost,
// which is an accepted failure mode at this layer.
func (w *Worker) EnqueuePush(msg Models.PushMessage) {
	select {
	case w.events <- event{kind: pushEvent, push: msg}:
	default:
		log.Println("Worker saturated, push dropped")
	}
}

// EnqueueClick hands a notification click to the worker.
func (w *Worker) EnqueueClick(ev Models.ClickEvent) {
	select {
	case w.events <- event{kind: clickEvent, click: ev}:
	default:
		log.Println("Worker saturated, click dropped")
	}
}

// extendLifetime runs fn asynchronously while keeping the worker alive until
// it settles, the way a scoped completion signal keeps a background context
// from being torn down mid-display.
func (w *Worker) extendLifetime(fn func()) {
	w.pending.Add(1)
	go func() {
		defer w.pending.Done()
		fn()
	}()
}

// Terminate stops the event loop and waits for every extended lifetime to
// settle. Events still queued and never started are dropped.
func (w *Worker) Terminate() {
	w.stopOnce.Do(func() {
		close(w.quit)
	})
	select {
	case <-w.started:
		<-w.done
	default:
	}
	w.pending.Wait()
}
