// Package wire implements the fixed-size binary frames exchanged with client
// processes: 12 bytes, little-endian, three uint32 fields.
//
//	offset 0  pid      process identifier
//	offset 4  kind     RUN, BLOCK, ACK or DONE
//	offset 8  time_ms  burst duration (requests) or engine clock (replies)
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Message kinds. RUN and BLOCK flow client → server; ACK and DONE flow back.
const (
	KindRun   uint32 = 1
	KindBlock uint32 = 2
	KindAck   uint32 = 3
	KindDone  uint32 = 4
)

// FrameSize is the exact on-the-wire size of every message.
const FrameSize = 12

// Message is one protocol frame.
type Message struct {
	PID    uint32
	Kind   uint32
	TimeMs uint32
}

// KindName returns a printable name for a message kind.
func KindName(kind uint32) string {
	switch kind {
	case KindRun:
		return "RUN"
	case KindBlock:
		return "BLOCK"
	case KindAck:
		return "ACK"
	case KindDone:
		return "DONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", kind)
	}
}

func (m Message) String() string {
	return fmt.Sprintf("%s{pid=%d time=%dms}", KindName(m.Kind), m.PID, m.TimeMs)
}

// Encode serializes the message into its 12-byte frame.
func (m Message) Encode() [FrameSize]byte {
	var buf [FrameSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], m.PID)
	binary.LittleEndian.PutUint32(buf[4:8], m.Kind)
	binary.LittleEndian.PutUint32(buf[8:12], m.TimeMs)
	return buf
}

// Decode parses a 12-byte frame.
func Decode(buf [FrameSize]byte) Message {
	return Message{
		PID:    binary.LittleEndian.Uint32(buf[0:4]),
		Kind:   binary.LittleEndian.Uint32(buf[4:8]),
		TimeMs: binary.LittleEndian.Uint32(buf[8:12]),
	}
}

// Read blocks until one full frame has been read from r. A clean EOF before
// the first byte is reported as io.EOF; a frame cut short mid-read surfaces
// as io.ErrUnexpectedEOF.
func Read(r io.Reader) (Message, error) {
	var buf [FrameSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Message{}, err
	}
	return Decode(buf), nil
}

// Write sends one frame to w. A partial write surfaces as an error from w.
func Write(w io.Writer, m Message) error {
	buf := m.Encode()
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("writing %s frame: %w", KindName(m.Kind), err)
	}
	return nil
}
