// Package sched provides the tick-driven CPU scheduling engine.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - pcr.go: the Process Control Record (ready → running → completion) and its bookkeeping fields
//   - policy.go: the Policy interface, the shared aging step, and the name-based factory
//   - engine.go: the tick loop — drain admissions, age blocked bursts, one policy invocation, advance the clock
//
// # Architecture
//
// The engine is single-actor: every queue, the CPU slot, and the clock are
// mutated only from the tick loop goroutine. The connection layer never
// touches engine structures directly; it submits fully-formed Admission
// events through a buffered channel and receives completion notifications
// through the Notifier carried by each PCR.
//
// Four interchangeable policies share one data model:
//   - fifo.go: run to completion in arrival order
//   - sjf.go: non-preemptive shortest-job scan with a one-shot warm-up window
//   - rr.go: fixed-quantum preemption with tail requeue
//   - mlfq.go: multi-level feedback queues with demotion on quantum expiry
//
// Policy state (MLFQ tiers, the SJF warm-up flag) is owned by the policy
// instance, never by package globals, so multiple engines can coexist and
// unit tests cannot leak state into each other.
package sched
