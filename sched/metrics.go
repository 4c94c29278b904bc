// Tracks simulation-wide counters and per-burst timing samples for the
// end-of-run summary.

package sched

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about a simulation run. Mutated only from
// the engine goroutine.
type Metrics struct {
	Admitted      int // bursts accepted into the engine
	Completed     int // bursts that ran (or blocked) to completion
	Preemptions   int // RR/MLFQ quantum expiries that vacated the slot
	Demotions     int // MLFQ tier drops
	DroppedEvents int // admissions discarded (malformed or buffer full)
	NotifyFailed  int // completion notifications that could not be delivered
	Released      int // PCRs released without notification at shutdown

	QueueDepths []int     // ready-structure depth sampled each tick
	Turnarounds []float64 // per-burst admission→completion times (ms)
	Waits       []float64 // per-burst time not spent on the CPU (ms)
}

// NewMetrics returns a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// observeCompletion records the timing samples for one finished burst.
func (m *Metrics) observeCompletion(p *PCR, now int64) {
	m.Completed++
	turnaround := float64(now - p.AdmittedMs)
	m.Turnarounds = append(m.Turnarounds, turnaround)
	m.Waits = append(m.Waits, turnaround-float64(p.ElapsedMs))
}

// Print displays the aggregated metrics at the end of the simulation.
func (m *Metrics) Print(clock int64) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Simulated time       : %d ms\n", clock)
	fmt.Printf("Admitted Bursts      : %d\n", m.Admitted)
	fmt.Printf("Completed Bursts     : %d\n", m.Completed)
	fmt.Printf("Preemptions          : %d\n", m.Preemptions)
	fmt.Printf("Tier Demotions       : %d\n", m.Demotions)
	fmt.Printf("Dropped Events       : %d\n", m.DroppedEvents)
	fmt.Printf("Failed Notifications : %d\n", m.NotifyFailed)
	fmt.Printf("Released at Shutdown : %d\n", m.Released)
	if len(m.Turnarounds) > 0 {
		fmt.Printf("Turnaround (ms)      : mean=%.1f p50=%.1f p95=%.1f max=%.1f\n",
			stat.Mean(m.Turnarounds, nil),
			quantile(0.50, m.Turnarounds),
			quantile(0.95, m.Turnarounds),
			quantile(1.00, m.Turnarounds))
		fmt.Printf("Wait (ms)            : mean=%.1f p50=%.1f p95=%.1f max=%.1f\n",
			stat.Mean(m.Waits, nil),
			quantile(0.50, m.Waits),
			quantile(0.95, m.Waits),
			quantile(1.00, m.Waits))
	}
	if len(m.QueueDepths) > 0 {
		peak := 0
		for _, d := range m.QueueDepths {
			if d > peak {
				peak = d
			}
		}
		fmt.Printf("Peak Ready Depth     : %d\n", peak)
	}
}

// quantile returns the p-quantile of xs without mutating it.
func quantile(p float64, xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
