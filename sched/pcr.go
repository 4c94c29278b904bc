// Defines the Process Control Record, the unit of schedulable state.
// One PCR represents a single CPU or I/O burst belonging to a logical process.

package sched

import "fmt"

// State represents the lifecycle state of a PCR.
type State string

const (
	StateReady   State = "ready"
	StateRunning State = "running"
	StateBlocked State = "blocked"
)

// PCR is the Process Control Record for one burst. A logical process may
// submit many bursts over its lifetime; each one gets a fresh PCR.
//
// Ownership: at any instant a PCR is held by exactly one structure — a ready
// queue, the blocked queue, or the CPU slot. It is destroyed in the same
// tick its elapsed time reaches the requested duration, after the completion
// notification has been attempted.
type PCR struct {
	PID uint32 // stable identifier across a process's bursts

	// Notify is the back-reference to the client connection used to deliver
	// the completion message. The connection layer owns it; the engine only
	// calls Done on it, best-effort.
	Notify Notifier

	RequestedMs int64 // total simulated time this burst must run
	ElapsedMs   int64 // simulated time already granted; never exceeds RequestedMs
	AdmittedMs  int64 // engine clock when the burst was admitted

	PriorityLevel int   // MLFQ tier index, 0 = highest; unused by other policies
	SliceStartMs  int64 // clock value when the current CPU grant began (RR, MLFQ)

	State State
}

// Remaining returns the simulated time this burst still needs.
func (p *PCR) Remaining() int64 {
	return p.RequestedMs - p.ElapsedMs
}

func (p *PCR) String() string {
	return fmt.Sprintf("PCR(pid=%d state=%s elapsed=%d/%dms tier=%d)",
		p.PID, p.State, p.ElapsedMs, p.RequestedMs, p.PriorityLevel)
}

// Slot is the single CPU slot. At most one PCR occupies it between ticks;
// Put on an occupied slot is an engine defect and fails loudly.
type Slot struct {
	pcr *PCR
}

// NewSlot returns an empty CPU slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Empty reports whether no PCR currently holds the CPU.
func (s *Slot) Empty() bool {
	return s.pcr == nil
}

// Peek returns the running PCR without releasing it, or nil.
func (s *Slot) Peek() *PCR {
	return s.pcr
}

// Put places a PCR on the CPU. The slot must be empty: a double occupancy
// can only come from a policy bug, never from input.
func (s *Slot) Put(p *PCR) {
	if p == nil {
		panic("Slot.Put: pcr must not be nil")
	}
	if s.pcr != nil {
		panic(fmt.Sprintf("Slot.Put: slot already holds pid=%d", s.pcr.PID))
	}
	p.State = StateRunning
	s.pcr = p
}

// Take removes and returns the running PCR, or nil if the slot is empty.
func (s *Slot) Take() *PCR {
	p := s.pcr
	s.pcr = nil
	return p
}
