package sched

// Notifier delivers burst-completion messages back to the client that
// submitted the burst. Implemented by the connection layer; the engine never
// learns what sits behind it.
//
// Delivery is best-effort: a returned error is logged by the caller and the
// PCR is destroyed regardless. The simulation must never stall because a
// client stopped listening.
type Notifier interface {
	Done(pid uint32, completionTick int64) error
}
