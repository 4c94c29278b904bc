package sched

import "github.com/sirupsen/logrus"

// FIFO runs bursts to completion in arrival order. Non-preemptive: once a
// burst holds the CPU it keeps it until its requested duration is consumed.
type FIFO struct {
	ready  *Queue
	tickMs int64
}

// NewFIFO creates a FIFO policy instance.
func NewFIFO(cfg Config, _ *Metrics) *FIFO {
	return &FIFO{
		ready:  NewQueue(),
		tickMs: cfg.TickMs,
	}
}

func (f *FIFO) Name() string { return PolicyFIFO }

// Admit appends the burst to the tail of the ready queue.
func (f *FIFO) Admit(p *PCR) {
	p.State = StateReady
	f.ready.Enqueue(p)
}

// Tick ages the running burst and, once the CPU is free, dispatches the head
// of the ready queue. No slice bookkeeping and no tie-break: insertion order
// is the whole policy.
func (f *FIFO) Tick(now int64, slot *Slot) *PCR {
	completed := ageRunning(slot, f.tickMs)

	if slot.Empty() {
		if next := f.ready.PopHead(); next != nil {
			slot.Put(next)
			logrus.Debugf("[tick %07d] FIFO dispatch pid=%d (%dms)", now, next.PID, next.RequestedMs)
		}
	}
	return completed
}

func (f *FIFO) Queued() int { return f.ready.Len() }

func (f *FIFO) Drain() []*PCR {
	items := f.ready.Items()
	f.ready = NewQueue()
	return items
}
