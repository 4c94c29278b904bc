package server

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sched"
	"github.com/schedsim/schedsim/sched/wire"
)

// startSim boots an engine (1ms paced ticks) and a server on a throwaway
// socket, and returns a connected client.
func startSim(t *testing.T, policy string) net.Conn {
	t.Helper()

	cfg := sched.DefaultConfig()
	cfg.Policy = policy
	cfg.TickMs = 1
	cfg.SocketPath = filepath.Join(t.TempDir(), "sim.sock")

	engine, err := sched.NewEngine(cfg)
	require.NoError(t, err)

	srv := New(cfg.SocketPath, engine)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	go srv.Serve(ctx)
	go engine.Run(ctx)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	client, err := net.Dial("unix", cfg.SocketPath)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.SetDeadline(time.Now().Add(5*time.Second)))
	return client
}

func TestServer_RunBurst_AckedThenDone(t *testing.T) {
	// GIVEN a FIFO simulation and a connected client
	client := startSim(t, sched.PolicyFIFO)

	// WHEN the client requests a 30ms CPU burst
	require.NoError(t, wire.Write(client, wire.Message{PID: 9, Kind: wire.KindRun, TimeMs: 30}))

	// THEN the request is ACKed immediately
	ack, err := wire.Read(client)
	require.NoError(t, err)
	assert.Equal(t, wire.KindAck, ack.Kind)
	assert.Equal(t, uint32(9), ack.PID)

	// AND a single DONE arrives once the burst has been scheduled to
	// completion
	done, err := wire.Read(client)
	require.NoError(t, err)
	assert.Equal(t, wire.KindDone, done.Kind)
	assert.Equal(t, uint32(9), done.PID)
	assert.GreaterOrEqual(t, done.TimeMs, uint32(30))
}

func TestServer_ZeroDurationBlock_DoneOnFirstAging(t *testing.T) {
	// GIVEN an RR simulation and a connected client
	client := startSim(t, sched.PolicyRR)

	// WHEN the client requests a 0ms I/O block
	require.NoError(t, wire.Write(client, wire.Message{PID: 4, Kind: wire.KindBlock, TimeMs: 0}))

	// THEN ACK and DONE both arrive; the block completes on the first
	// blocked-queue aging step
	ack, err := wire.Read(client)
	require.NoError(t, err)
	assert.Equal(t, wire.KindAck, ack.Kind)

	done, err := wire.Read(client)
	require.NoError(t, err)
	assert.Equal(t, wire.KindDone, done.Kind)
	assert.Equal(t, uint32(4), done.PID)
}

func TestServer_UnknownKindDiscarded(t *testing.T) {
	// GIVEN a connected client
	client := startSim(t, sched.PolicyFIFO)

	// WHEN it sends an unrecognized request kind
	require.NoError(t, wire.Write(client, wire.Message{PID: 1, Kind: 9, TimeMs: 10}))

	// THEN the connection survives and a subsequent RUN is still served
	require.NoError(t, wire.Write(client, wire.Message{PID: 1, Kind: wire.KindRun, TimeMs: 5}))
	ack, err := wire.Read(client)
	require.NoError(t, err)
	assert.Equal(t, wire.KindAck, ack.Kind)
	assert.Equal(t, uint32(1), ack.PID)
}
