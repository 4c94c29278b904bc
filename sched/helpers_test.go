package sched

// Shared helpers for the package tests.

type doneCall struct {
	pid  uint32
	tick int64
}

// recordingNotifier captures every Done attempt. When err is set the attempt
// is still recorded and the error returned, mimicking a broken client.
type recordingNotifier struct {
	dones []doneCall
	err   error
}

func (n *recordingNotifier) Done(pid uint32, tick int64) error {
	n.dones = append(n.dones, doneCall{pid: pid, tick: tick})
	return n.err
}

// testConfig returns the default config with pacing off so tests can step as
// fast as they like.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Pace = false
	return cfg
}
