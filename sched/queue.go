// Implements the ready/blocked Queue, an ordered collection of PCRs.
// Insertion order is what FIFO and RR fairness rest on; SJF additionally
// needs arbitrary-element removal to pull a non-head minimum.

package sched

import (
	"fmt"
	"strings"
)

// Queue is an ordered FIFO sequence of PCRs.
// All access is confined to the engine's tick goroutine, so no locking.
type Queue struct {
	items []*PCR
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a PCR to the tail of the queue.
func (q *Queue) Enqueue(p *PCR) {
	if p == nil {
		panic("Queue.Enqueue: pcr must not be nil")
	}
	q.items = append(q.items, p)
}

// PopHead removes and returns the head PCR, or nil if the queue is empty.
func (q *Queue) PopHead() *PCR {
	if len(q.items) == 0 {
		return nil
	}
	p := q.items[0]
	q.items = q.items[1:]
	return p
}

// Peek returns the head PCR without removing it, or nil if empty.
func (q *Queue) Peek() *PCR {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Remove takes a specific PCR out of the queue, wherever it sits, and
// returns it. Returns nil if the PCR is not in the queue. O(n) by design:
// queue sizes are bounded by concurrently admitted bursts.
func (q *Queue) Remove(target *PCR) *PCR {
	for i, p := range q.items {
		if p == target {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return p
		}
	}
	return nil
}

// Len returns the number of PCRs in the queue.
func (q *Queue) Len() int {
	return len(q.items)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers within the
// sched package may iterate over it but MUST NOT append to or reslice it.
func (q *Queue) Items() []*PCR {
	return q.items
}

func (q *Queue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range q.items {
		sb.WriteString(fmt.Sprint(p))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
