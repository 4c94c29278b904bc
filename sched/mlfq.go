package sched

import "github.com/sirupsen/logrus"

// MLFQ maintains a fixed stack of priority tiers, each an independent FIFO
// queue, tier 0 highest. New bursts enter at tier 0; a burst that exhausts
// its quantum without finishing drops one tier. Dispatch always serves the
// highest non-empty tier, so a lower-tier burst never runs while any higher
// tier has work.
type MLFQ struct {
	tiers     []*Queue
	tickMs    int64
	quantumMs int64
	metrics   *Metrics
}

// NewMLFQ creates an MLFQ policy instance with cfg.Tiers priority levels.
func NewMLFQ(cfg Config, m *Metrics) *MLFQ {
	tiers := make([]*Queue, cfg.Tiers)
	for i := range tiers {
		tiers[i] = NewQueue()
	}
	return &MLFQ{
		tiers:     tiers,
		tickMs:    cfg.TickMs,
		quantumMs: cfg.QuantumMs,
		metrics:   m,
	}
}

func (m *MLFQ) Name() string { return PolicyMLFQ }

// Admit inserts the burst at tier 0 with its counters reset. This is a
// feedback reset, not a continuation: a process returning from I/O starts
// over at the top regardless of which tier it last ran in.
func (m *MLFQ) Admit(p *PCR) {
	p.State = StateReady
	p.PriorityLevel = 0
	p.ElapsedMs = 0
	p.SliceStartMs = 0
	m.tiers[0].Enqueue(p)
}

// Tick ages the running burst; on completion it behaves as FIFO. On quantum
// expiry the burst is demoted one tier unless it already sits at the lowest,
// then requeued at its (possibly unchanged) tier. Dispatch scans tiers in
// priority order and pops the head of the first non-empty one.
func (m *MLFQ) Tick(now int64, slot *Slot) *PCR {
	completed := ageRunning(slot, m.tickMs)

	if p := slot.Peek(); p != nil && now-p.SliceStartMs >= m.quantumMs {
		expired := slot.Take()
		if expired.PriorityLevel < len(m.tiers)-1 {
			expired.PriorityLevel++
			m.metrics.Demotions++
			logrus.Debugf("[tick %07d] MLFQ demote pid=%d to tier %d", now, expired.PID, expired.PriorityLevel)
		}
		expired.State = StateReady
		m.tiers[expired.PriorityLevel].Enqueue(expired)
		m.metrics.Preemptions++
	}

	if slot.Empty() {
		for tier, q := range m.tiers {
			next := q.PopHead()
			if next == nil {
				continue
			}
			next.SliceStartMs = now
			slot.Put(next)
			logrus.Debugf("[tick %07d] MLFQ dispatch pid=%d from tier %d", now, next.PID, tier)
			break
		}
	}
	return completed
}

func (m *MLFQ) Queued() int {
	n := 0
	for _, q := range m.tiers {
		n += q.Len()
	}
	return n
}

func (m *MLFQ) Drain() []*PCR {
	var all []*PCR
	for i, q := range m.tiers {
		all = append(all, q.Items()...)
		m.tiers[i] = NewQueue()
	}
	return all
}
