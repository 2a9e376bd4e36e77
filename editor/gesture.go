package editor

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DefaultHoldDelay is how long the pointer must stay pressed to select everything.
const DefaultHoldDelay = 3000 * time.Millisecond

// A Timer is a scheduled callback that has not run yet.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already ran or
	// was already stopped.
	Stop() bool
}

// A Scheduler runs f once, after d, on the goroutine of the event loop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// A Poster accepts events into an event loop. tcell.Screen is one.
type Poster interface {
	PostEvent(ev tcell.Event) error
}

// LoopScheduler posts a TimerEvent to the event loop when a timer expires. The
// loop must call Fire on every TimerEvent it polls; the callback then runs on the
// loop's goroutine, like any other event handler.
type LoopScheduler struct {
	Poster Poster
}

func (s LoopScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{f: f}
	t.timer = time.AfterFunc(d, func() {
		ev := &TimerEvent{timer: t}
		ev.SetEventNow()
		_ = s.Poster.PostEvent(ev) // Only fails when the queue is full
	})
	return t
}

type loopTimer struct {
	f     func()
	timer *time.Timer
	done  bool // Ran or stopped; only touched on the loop goroutine
}

func (t *loopTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}

// A TimerEvent carries an expired timer into the event loop.
type TimerEvent struct {
	tcell.EventTime
	timer *loopTimer
}

// Fire runs the timer's callback, unless it was stopped after the event was posted.
func (ev *TimerEvent) Fire() {
	if ev.timer.done {
		return
	}
	ev.timer.done = true
	ev.timer.f()
}

type holdState uint8

const (
	holdIdle holdState = iota
	holdWaiting
)

// A HoldGesture calls OnHold when the pointer stays pressed for Delay.
//
// Press starts a timer and waits. Release before the timer fires cancels it. If
// the timer fires while still waiting, OnHold runs and the gesture is idle again;
// the next Press starts a new, independent cycle.
type HoldGesture struct {
	Delay  time.Duration
	OnHold func()

	scheduler Scheduler
	state     holdState
	timer     Timer
}

func NewHoldGesture(scheduler Scheduler, delay time.Duration, onHold func()) *HoldGesture {
	if delay <= 0 {
		delay = DefaultHoldDelay
	}
	return &HoldGesture{
		Delay:     delay,
		OnHold:    onHold,
		scheduler: scheduler,
	}
}

func (g *HoldGesture) Press() {
	g.cancel() // A second press restarts the wait
	g.state = holdWaiting
	g.timer = g.scheduler.AfterFunc(g.Delay, g.fire)
}

// Release cancels a pending hold. Without one it does nothing.
func (g *HoldGesture) Release() {
	g.cancel()
	g.state = holdIdle
}

// Waiting reports whether a press is waiting for the timer.
func (g *HoldGesture) Waiting() bool {
	return g.state == holdWaiting
}

func (g *HoldGesture) fire() {
	if g.state != holdWaiting {
		return
	}
	g.state = holdIdle
	g.timer = nil
	if g.OnHold != nil {
		g.OnHold()
	}
}

func (g *HoldGesture) cancel() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
