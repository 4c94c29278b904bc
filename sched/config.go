package sched

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config groups every tunable of the simulator. Zero values are filled from
// DefaultConfig; a YAML file and CLI flags may override individual fields.
type Config struct {
	// Policy is the active scheduling policy: FIFO, SJF, RR or MLFQ.
	Policy string `yaml:"policy"`

	// SocketPath is the UNIX socket the server listens on.
	SocketPath string `yaml:"socket_path"`

	// TickMs is the simulated duration of one tick.
	TickMs int64 `yaml:"tick_ms"`

	// QuantumMs is the RR/MLFQ time slice.
	QuantumMs int64 `yaml:"quantum_ms"`

	// WarmupMs delays SJF's first dispatch so competing bursts can
	// accumulate before the first greedy choice.
	WarmupMs int64 `yaml:"warmup_ms"`

	// Tiers is the number of MLFQ priority levels.
	Tiers int `yaml:"tiers"`

	// HorizonMs stops the tick loop once the clock passes it; 0 = run until
	// interrupted.
	HorizonMs int64 `yaml:"horizon_ms"`

	// Pace sleeps one real tick duration per simulated tick. Observability
	// only: scheduling decisions never depend on wall time.
	Pace bool `yaml:"pace"`

	// AdmissionBuffer bounds the channel between the connection layer and
	// the engine. A full buffer drops the triggering event, never blocks.
	AdmissionBuffer int `yaml:"admission_buffer"`
}

// DefaultConfig returns the stock configuration: FIFO over a 10ms tick with
// the classic 500ms quantum, 200ms SJF warm-up and 3 MLFQ tiers.
func DefaultConfig() Config {
	return Config{
		Policy:          PolicyFIFO,
		SocketPath:      "/tmp/schedsim.sock",
		TickMs:          10,
		QuantumMs:       500,
		WarmupMs:        200,
		Tiers:           3,
		HorizonMs:       0,
		Pace:            true,
		AdmissionBuffer: 256,
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with. Called before
// any engine state is constructed.
func (c Config) Validate() error {
	if !IsValidPolicy(c.Policy) {
		return fmt.Errorf("invalid policy %q (want FIFO, SJF, RR or MLFQ)", c.Policy)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMs)
	}
	if c.QuantumMs <= 0 {
		return fmt.Errorf("quantum_ms must be positive, got %d", c.QuantumMs)
	}
	if c.WarmupMs < 0 {
		return fmt.Errorf("warmup_ms must not be negative, got %d", c.WarmupMs)
	}
	if c.Tiers < 1 {
		return fmt.Errorf("tiers must be at least 1, got %d", c.Tiers)
	}
	if c.HorizonMs < 0 {
		return fmt.Errorf("horizon_ms must not be negative, got %d", c.HorizonMs)
	}
	if c.AdmissionBuffer < 1 {
		return fmt.Errorf("admission_buffer must be at least 1, got %d", c.AdmissionBuffer)
	}
	if c.SocketPath == "" {
		return fmt.Errorf("socket_path must not be empty")
	}
	return nil
}
