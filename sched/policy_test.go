package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy_ClosedSet(t *testing.T) {
	cfg := testConfig()
	for _, name := range []string{PolicyFIFO, PolicySJF, PolicyRR, PolicyMLFQ} {
		p, err := NewPolicy(name, cfg, NewMetrics())
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}
}

func TestNewPolicy_UnknownName(t *testing.T) {
	_, err := NewPolicy("LOTTERY", testConfig(), NewMetrics())
	assert.Error(t, err)

	_, err = NewPolicy("fifo", testConfig(), NewMetrics()) // case-sensitive
	assert.Error(t, err)
}

func TestIsValidPolicy(t *testing.T) {
	assert.True(t, IsValidPolicy("FIFO"))
	assert.True(t, IsValidPolicy("SJF"))
	assert.True(t, IsValidPolicy("RR"))
	assert.True(t, IsValidPolicy("MLFQ"))
	assert.False(t, IsValidPolicy(""))
	assert.False(t, IsValidPolicy("rr"))
}

func TestAgeRunning_ClampsAtRequested(t *testing.T) {
	// A burst whose duration is not a tick multiple still never reports more
	// elapsed time than it asked for.
	slot := NewSlot()
	p := &PCR{PID: 1, RequestedMs: 95}
	slot.Put(p)

	var done *PCR
	for i := 0; i < 20 && done == nil; i++ {
		done = ageRunning(slot, 10)
		require.LessOrEqual(t, p.ElapsedMs, p.RequestedMs)
	}
	require.Equal(t, p, done)
	assert.Equal(t, int64(95), p.ElapsedMs)
	assert.True(t, slot.Empty())
}

func TestSlot_DoubleOccupancyFailsLoudly(t *testing.T) {
	slot := NewSlot()
	slot.Put(&PCR{PID: 1, RequestedMs: 10})
	assert.Panics(t, func() {
		slot.Put(&PCR{PID: 2, RequestedMs: 10})
	})
}
