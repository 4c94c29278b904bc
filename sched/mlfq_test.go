package sched

import "testing"

func TestMLFQ_DemotesToLowestTierAndStays(t *testing.T) {
	// GIVEN a 5000ms burst admitted at tier 0, quantum 500ms, 3 tiers
	cfg := testConfig()
	m := NewMetrics()
	q := NewMLFQ(cfg, m)
	a := &PCR{PID: 1, RequestedMs: 5000}
	q.Admit(a)

	if a.PriorityLevel != 0 {
		t.Fatalf("admission tier: got %d, want 0", a.PriorityLevel)
	}

	// WHEN it exceeds the quantum repeatedly without completing
	slot := NewSlot()
	tierAfter := make(map[int64]int)
	for now := int64(0); now <= 2500; now += cfg.TickMs {
		q.Tick(now, slot)
		tierAfter[now] = a.PriorityLevel
	}

	// THEN it drops one tier per expiry until the lowest, then stays there
	if tierAfter[500] != 1 {
		t.Errorf("tier after first expiry: got %d, want 1", tierAfter[500])
	}
	if tierAfter[1000] != 2 {
		t.Errorf("tier after second expiry: got %d, want 2", tierAfter[1000])
	}
	if tierAfter[1500] != 2 || tierAfter[2000] != 2 || tierAfter[2500] != 2 {
		t.Errorf("tier after further expiries: got %d/%d/%d, want 2/2/2",
			tierAfter[1500], tierAfter[2000], tierAfter[2500])
	}
	if m.Demotions != 2 {
		t.Errorf("demotion counter: got %d, want 2", m.Demotions)
	}
}

func TestMLFQ_StrictTierPriority(t *testing.T) {
	// GIVEN a long burst that has been demoted below tier 0
	cfg := testConfig()
	q := NewMLFQ(cfg, NewMetrics())
	long := &PCR{PID: 1, RequestedMs: 5000}
	q.Admit(long)

	slot := NewSlot()
	var now int64
	for ; long.PriorityLevel == 0; now += cfg.TickMs {
		q.Tick(now, slot)
	}

	// WHEN a fresh burst enters at tier 0 and the runner's quantum expires
	fresh := &PCR{PID: 2, RequestedMs: 100}
	q.Admit(fresh)
	for ; slot.Peek() == long; now += cfg.TickMs {
		q.Tick(now, slot)
	}

	// THEN the tier-0 burst takes the CPU; the demoted one waits in its tier
	if slot.Peek() != fresh {
		t.Fatalf("slot holds %v, want the tier-0 burst", slot.Peek())
	}
	if got := q.tiers[long.PriorityLevel].Peek(); got != long {
		t.Errorf("demoted burst not waiting in tier %d", long.PriorityLevel)
	}
}

func TestMLFQ_AdmissionIsAFeedbackReset(t *testing.T) {
	// GIVEN a PCR carrying state from a previous life (returned from I/O)
	cfg := testConfig()
	q := NewMLFQ(cfg, NewMetrics())
	p := &PCR{PID: 1, RequestedMs: 400, ElapsedMs: 300, PriorityLevel: 2, SliceStartMs: 700}

	// WHEN it is admitted
	q.Admit(p)

	// THEN it enters tier 0 with all counters reset, not where it left off
	if p.PriorityLevel != 0 || p.ElapsedMs != 0 || p.SliceStartMs != 0 {
		t.Errorf("admission did not reset: tier=%d elapsed=%d sliceStart=%d",
			p.PriorityLevel, p.ElapsedMs, p.SliceStartMs)
	}
	if q.tiers[0].Len() != 1 {
		t.Errorf("tier 0 length: got %d, want 1", q.tiers[0].Len())
	}
}

func TestMLFQ_CompletionVacatesSlot(t *testing.T) {
	// GIVEN a short burst that fits in one quantum
	cfg := testConfig()
	q := NewMLFQ(cfg, NewMetrics())
	a := &PCR{PID: 1, RequestedMs: 100}
	q.Admit(a)

	// WHEN it runs out its duration
	slot := NewSlot()
	var done *PCR
	for now := int64(0); now <= 200 && done == nil; now += cfg.TickMs {
		done = q.Tick(now, slot)
	}

	// THEN it is returned exactly once, with the slot empty and no queue
	// holding it
	if done != a {
		t.Fatalf("completion: got %v, want pid=1", done)
	}
	if !slot.Empty() {
		t.Error("slot still occupied after completion")
	}
	if q.Queued() != 0 {
		t.Errorf("queued after completion: got %d, want 0", q.Queued())
	}
}
