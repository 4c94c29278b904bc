// Policy selection and the contract shared by the four scheduling policies.

package sched

import "fmt"

// Policy names form a closed set; anything else is a fatal configuration
// error surfaced before any engine state is created.
const (
	PolicyFIFO = "FIFO"
	PolicySJF  = "SJF"
	PolicyRR   = "RR"
	PolicyMLFQ = "MLFQ"
)

// Policy decides, each tick, which admitted burst holds the CPU and for how
// long. Implementations own their ready structure(s) and any policy-local
// state (tiers, warm-up flags); nothing lives in package globals.
//
// Tick performs exactly one scheduling step against the given clock value
// and CPU slot, and returns the PCR whose burst completed during this tick,
// or nil. The engine owns notification and destruction of the returned PCR.
type Policy interface {
	Name() string

	// Admit inserts a newly accepted ready burst per the policy's admission
	// rule (tier-0 insert for MLFQ, tail append otherwise).
	Admit(p *PCR)

	// Tick runs one scheduling step at the given simulated time.
	Tick(now int64, slot *Slot) *PCR

	// Queued returns the number of bursts waiting in the ready structure(s).
	Queued() int

	// Drain removes and returns every queued burst. Used only at shutdown;
	// no notifications follow.
	Drain() []*PCR
}

// IsValidPolicy reports whether name is one of the supported policies.
func IsValidPolicy(name string) bool {
	switch name {
	case PolicyFIFO, PolicySJF, PolicyRR, PolicyMLFQ:
		return true
	}
	return false
}

// NewPolicy creates a Policy by name using the timing parameters in cfg.
// An unrecognized name is a configuration error, not a panic: the caller
// rejects it before the engine exists.
func NewPolicy(name string, cfg Config, m *Metrics) (Policy, error) {
	switch name {
	case PolicyFIFO:
		return NewFIFO(cfg, m), nil
	case PolicySJF:
		return NewSJF(cfg, m), nil
	case PolicyRR:
		return NewRR(cfg, m), nil
	case PolicyMLFQ:
		return NewMLFQ(cfg, m), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want FIFO, SJF, RR or MLFQ)", name)
	}
}

// ageRunning charges one tick of CPU time to the running burst, if any.
// When the burst's requested duration is reached the PCR leaves the slot and
// is returned for completion handling; otherwise nil. ElapsedMs is clamped
// so it never exceeds RequestedMs after a policy invocation.
//
// Every policy starts its Tick with this step; only the preemption rules
// that follow differ.
func ageRunning(slot *Slot, tickMs int64) *PCR {
	p := slot.Peek()
	if p == nil {
		return nil
	}
	p.ElapsedMs += tickMs
	if p.ElapsedMs >= p.RequestedMs {
		p.ElapsedMs = p.RequestedMs
		return slot.Take()
	}
	return nil
}
