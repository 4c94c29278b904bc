package sched

import "github.com/sirupsen/logrus"

// RR grants the CPU in fixed quanta. A burst that outlives its quantum goes
// back to the tail of the ready queue so every waiting burst gets regular
// CPU access.
type RR struct {
	ready     *Queue
	tickMs    int64
	quantumMs int64
	metrics   *Metrics
}

// NewRR creates a Round-Robin policy instance.
func NewRR(cfg Config, m *Metrics) *RR {
	return &RR{
		ready:     NewQueue(),
		tickMs:    cfg.TickMs,
		quantumMs: cfg.QuantumMs,
		metrics:   m,
	}
}

func (r *RR) Name() string { return PolicyRR }

// Admit appends the burst to the tail of the ready queue.
func (r *RR) Admit(p *PCR) {
	p.State = StateReady
	r.ready.Enqueue(p)
}

// Tick ages the running burst; on completion it behaves as FIFO. On quantum
// expiry with nobody else ready, the slice is renewed in place — requeueing
// and immediately redispatching the same burst would change nothing
// observable. With other bursts ready, the runner is preempted to the tail.
func (r *RR) Tick(now int64, slot *Slot) *PCR {
	completed := ageRunning(slot, r.tickMs)

	if p := slot.Peek(); p != nil && now-p.SliceStartMs >= r.quantumMs {
		if r.ready.Len() == 0 {
			p.SliceStartMs = now
		} else {
			pre := slot.Take()
			pre.State = StateReady
			r.ready.Enqueue(pre)
			r.metrics.Preemptions++
			logrus.Debugf("[tick %07d] RR preempt pid=%d (elapsed %d/%dms)", now, pre.PID, pre.ElapsedMs, pre.RequestedMs)
		}
	}

	if slot.Empty() {
		if next := r.ready.PopHead(); next != nil {
			next.SliceStartMs = now
			slot.Put(next)
			logrus.Debugf("[tick %07d] RR dispatch pid=%d (%dms left)", now, next.PID, next.Remaining())
		}
	}
	return completed
}

func (r *RR) Queued() int { return r.ready.Len() }

func (r *RR) Drain() []*PCR {
	items := r.ready.Items()
	r.ready = NewQueue()
	return items
}
