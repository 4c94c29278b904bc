// The tick driver. Owns the clock, the CPU slot, the blocked queue and the
// active policy, and processes exactly one tick at a time in a fixed order:
// drain admissions, age blocked bursts, one policy invocation, advance.

package sched

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Admission is a fully-formed event handed to the engine by the connection
// layer. The engine never reads sockets; this struct is the whole boundary.
type Admission struct {
	PID        uint32
	Notify     Notifier
	DurationMs int64
	Block      bool // true = I/O wait (BLOCK), false = CPU burst (RUN)
}

// Engine drives the simulation. All engine structures are confined to the
// goroutine running Run/Step; other goroutines interact only through Submit
// and Now.
type Engine struct {
	cfg     Config
	clock   atomic.Int64 // simulated time in ms; read concurrently by the server for ACKs
	policy  Policy
	blocked *Queue
	slot    *Slot
	metrics *Metrics

	admissions chan Admission
	dropped    atomic.Int64 // Submit-side drops, folded into metrics at shutdown
}

// NewEngine validates cfg and constructs an engine with the selected policy.
// An invalid policy or timing parameter fails here, before any state exists.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := NewMetrics()
	pol, err := NewPolicy(cfg.Policy, cfg, m)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		policy:     pol,
		blocked:    NewQueue(),
		slot:       NewSlot(),
		metrics:    m,
		admissions: make(chan Admission, cfg.AdmissionBuffer),
	}, nil
}

// Now returns the current simulated time in ms. Safe from any goroutine.
func (e *Engine) Now() int64 {
	return e.clock.Load()
}

// Metrics exposes the run counters. Read it only after Run has returned.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Submit hands an admission event to the engine without blocking. Returns
// false when the buffer is full; the event is dropped and counted, and the
// engine keeps operating on its existing state.
func (e *Engine) Submit(ev Admission) bool {
	select {
	case e.admissions <- ev:
		return true
	default:
		e.dropped.Add(1)
		logrus.Warnf("admission buffer full, dropping event pid=%d", ev.PID)
		return false
	}
}

// Step processes exactly one tick. Exposed so tests can single-step the
// engine without pacing.
func (e *Engine) Step() {
	now := e.clock.Load()
	e.drainAdmissions()
	e.ageBlocked(now)
	if completed := e.policy.Tick(now, e.slot); completed != nil {
		e.complete(completed, now)
	}
	e.metrics.QueueDepths = append(e.metrics.QueueDepths, e.policy.Queued())
	e.clock.Store(now + e.cfg.TickMs)
}

// Run processes ticks until ctx is cancelled or the configured horizon is
// passed. Cancellation is an abrupt shutdown: all queued, blocked and
// running bursts are released without further notifications.
func (e *Engine) Run(ctx context.Context) {
	logrus.Infof("engine started: policy=%s tick=%dms quantum=%dms", e.policy.Name(), e.cfg.TickMs, e.cfg.QuantumMs)
	var lastSecond int64
	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			return
		default:
		}
		if e.cfg.HorizonMs > 0 && e.clock.Load() > e.cfg.HorizonMs {
			break
		}
		e.Step()
		if s := e.clock.Load() / 1000; s != lastSecond {
			lastSecond = s
			logrus.Infof("[tick %07d] simulated %ds", e.clock.Load(), s)
		}
		if e.cfg.Pace {
			// Wall pacing for observability only; the clock above is the
			// sole input to scheduling.
			time.Sleep(time.Duration(e.cfg.TickMs) * time.Millisecond)
		}
	}
	e.shutdown()
}

// drainAdmissions ingests every event currently buffered, then returns.
// Events arriving after the drain wait for the next tick.
func (e *Engine) drainAdmissions() {
	for {
		select {
		case ev := <-e.admissions:
			e.admit(ev)
		default:
			return
		}
	}
}

// admit creates a PCR for the event and inserts it per the active policy's
// admission rule (ready structure) or into the blocked queue. A malformed
// event is discarded with a diagnostic; engine state is unaffected.
func (e *Engine) admit(ev Admission) {
	if ev.DurationMs < 0 {
		e.metrics.DroppedEvents++
		logrus.Warnf("discarding admission pid=%d with negative duration %dms", ev.PID, ev.DurationMs)
		return
	}
	p := &PCR{
		PID:         ev.PID,
		Notify:      ev.Notify,
		RequestedMs: ev.DurationMs,
		AdmittedMs:  e.clock.Load(),
	}
	if ev.Block {
		p.State = StateBlocked
		e.blocked.Enqueue(p)
		logrus.Debugf("[tick %07d] admitted BLOCK pid=%d for %dms", p.AdmittedMs, p.PID, p.RequestedMs)
	} else {
		e.policy.Admit(p)
		logrus.Debugf("[tick %07d] admitted RUN pid=%d for %dms", p.AdmittedMs, p.PID, p.RequestedMs)
	}
	e.metrics.Admitted++
}

// complete attempts the DONE notification and records the burst. Delivery
// failure is logged and the PCR is destroyed regardless; a completed burst
// is never notified twice because this is the only place it leaves the
// engine and its PCR is unreachable afterwards.
func (e *Engine) complete(p *PCR, now int64) {
	if p.Notify != nil {
		if err := p.Notify.Done(p.PID, now); err != nil {
			e.metrics.NotifyFailed++
			logrus.Warnf("[tick %07d] notify pid=%d failed: %v", now, p.PID, err)
		}
	}
	e.metrics.observeCompletion(p, now)
	logrus.Infof("[tick %07d] completed pid=%d after %dms", now, p.PID, p.ElapsedMs)
}

// shutdown releases every held PCR without notifications and folds the
// submit-side drop counter into the metrics.
func (e *Engine) shutdown() {
	released := 0
	if e.slot.Take() != nil {
		released++
	}
	released += len(e.policy.Drain())
	released += e.blocked.Len()
	e.blocked.items = nil
	e.metrics.Released = released
	e.metrics.DroppedEvents += int(e.dropped.Load())
	logrus.Infof("engine stopped at %dms: released %d bursts without notification", e.clock.Load(), released)
}
