package server

import (
	"errors"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sched"
	"github.com/schedsim/schedsim/sched/wire"
)

// conn is one client connection. It reads RUN/BLOCK frames and submits them
// as admission events, and implements sched.Notifier so the engine can push
// DONE frames for bursts created on this connection.
//
// Writes come from two goroutines (ACKs from the read loop, DONEs from the
// engine), so they are serialized with a mutex. Reads stay unguarded: only
// the read loop touches them.
type conn struct {
	id     string
	raw    net.Conn
	engine *sched.Engine

	writeMu sync.Mutex
}

func newConn(raw net.Conn, engine *sched.Engine) *conn {
	return &conn{
		id:     uuid.NewString(),
		raw:    raw,
		engine: engine,
	}
}

// Done implements sched.Notifier. Failure is the engine's to log; the
// connection may be long gone by the time a burst completes.
func (c *conn) Done(pid uint32, completionTick int64) error {
	return c.write(wire.Message{PID: pid, Kind: wire.KindDone, TimeMs: uint32(completionTick)})
}

func (c *conn) write(m wire.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return wire.Write(c.raw, m)
}

// serve decodes frames until the client disconnects. Every well-formed
// request is ACKed immediately with the current engine clock, matching the
// protocol clients expect; unknown kinds are discarded with a diagnostic.
func (c *conn) serve() {
	defer c.raw.Close()
	for {
		msg, err := wire.Read(c.raw)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				logrus.Debugf("client %s closed connection", c.id)
			case errors.Is(err, io.ErrUnexpectedEOF):
				logrus.Warnf("client %s sent a short frame, dropping connection", c.id)
			default:
				logrus.Warnf("client %s read error: %v", c.id, err)
			}
			return
		}

		switch msg.Kind {
		case wire.KindRun, wire.KindBlock:
			c.engine.Submit(sched.Admission{
				PID:        msg.PID,
				Notify:     c,
				DurationMs: int64(msg.TimeMs),
				Block:      msg.Kind == wire.KindBlock,
			})
			ack := wire.Message{PID: msg.PID, Kind: wire.KindAck, TimeMs: uint32(c.engine.Now())}
			if err := c.write(ack); err != nil {
				logrus.Warnf("client %s: %v", c.id, err)
			}
		default:
			logrus.Warnf("client %s sent unexpected %s, discarding", c.id, msg)
		}
	}
}
