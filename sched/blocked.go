// Blocked-queue aging: a plain elapsed-time counter over the blocked bursts,
// run once per tick before the policy invocation.

package sched

// ageBlocked advances every blocked burst by one tick and completes those
// whose block duration has elapsed. A zero-duration BLOCK therefore
// completes on the very first aging step after admission.
//
// Removal happens while walking the queue, so surviving bursts are collected
// into a fresh slice rather than spliced out mid-iteration.
func (e *Engine) ageBlocked(now int64) {
	if e.blocked.Len() == 0 {
		return
	}
	var still []*PCR
	for _, p := range e.blocked.Items() {
		p.ElapsedMs += e.cfg.TickMs
		if p.ElapsedMs >= p.RequestedMs {
			p.ElapsedMs = p.RequestedMs
			e.complete(p, now)
			continue
		}
		still = append(still, p)
	}
	e.blocked.items = still
}
