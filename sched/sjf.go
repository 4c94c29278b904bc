package sched

import "github.com/sirupsen/logrus"

// SJF selects the ready burst with the smallest requested duration whenever
// the CPU becomes free. Non-preemptive. Long bursts can starve while short
// ones keep arriving; that is an accepted property of the policy, not a bug.
type SJF struct {
	ready    *Queue
	tickMs   int64
	warmupMs int64

	// dispatched flips when the first burst is actually placed on the CPU.
	// Until then no dispatch happens while the clock is inside the warm-up
	// window, letting competing bursts accumulate before the first greedy
	// choice. Applies once per instance.
	dispatched bool
}

// NewSJF creates an SJF policy instance.
func NewSJF(cfg Config, _ *Metrics) *SJF {
	return &SJF{
		ready:    NewQueue(),
		tickMs:   cfg.TickMs,
		warmupMs: cfg.WarmupMs,
	}
}

func (s *SJF) Name() string { return PolicySJF }

// Admit appends the burst to the ready queue; order only matters for
// breaking duration ties.
func (s *SJF) Admit(p *PCR) {
	p.State = StateReady
	s.ready.Enqueue(p)
}

// Tick ages the running burst exactly as FIFO does, then — outside the
// one-shot warm-up window — scans the entire ready queue for the shortest
// burst and moves it onto the free CPU. Ties go to the earliest insertion:
// the scan walks head to tail and replaces only on strictly smaller
// duration.
func (s *SJF) Tick(now int64, slot *Slot) *PCR {
	completed := ageRunning(slot, s.tickMs)

	if !s.dispatched && now < s.warmupMs {
		return completed
	}

	if slot.Empty() && s.ready.Len() > 0 {
		min := s.ready.Peek()
		for _, p := range s.ready.Items() {
			if p.RequestedMs < min.RequestedMs {
				min = p
			}
		}
		s.ready.Remove(min)
		slot.Put(min)
		s.dispatched = true
		logrus.Debugf("[tick %07d] SJF dispatch pid=%d (%dms, %d waiting)", now, min.PID, min.RequestedMs, s.ready.Len())
	}
	return completed
}

func (s *SJF) Queued() int { return s.ready.Len() }

func (s *SJF) Drain() []*PCR {
	items := s.ready.Items()
	s.ready = NewQueue()
	return items
}
