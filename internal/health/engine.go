package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Probe is one known-answer check: Sum(Values, Places) must equal Want.
type Probe struct {
	Values []float64
	Places int
	Want   string
}

// DefaultProbes pin exact accumulation and the half-away-from-zero tie rule.
var DefaultProbes = []Probe{
	{Values: []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}, Places: 2, Want: "1.00"},
	{Values: []float64{2.125}, Places: 2, Want: "2.13"},
	{Values: []float64{-2.125}, Places: 2, Want: "-2.13"},
	{Values: []float64{5.5, -5.5}, Places: 2, Want: "0.00"},
}

// EngineChecker runs known-answer probes against a sum function.
type EngineChecker struct {
	healthy atomic.Int32
	sum     func([]float64, int) string
	probes  []Probe
	log     zerolog.Logger
}

func NewEngineChecker(log zerolog.Logger, sum func([]float64, int) string, probes ...Probe) *EngineChecker {
	if len(probes) == 0 {
		probes = DefaultProbes
	}
	return &EngineChecker{sum: sum, probes: probes, log: log}
}

func (e *EngineChecker) Name() string { return "decimal-engine" }

func (e *EngineChecker) IsHealthy() bool { return e.healthy.Load() == 1 }

// Check runs every probe once and updates the cached flag.
func (e *EngineChecker) Check() bool {
	for _, p := range e.probes {
		if got := e.sum(p.Values, p.Places); got != p.Want {
			e.log.Error().
				Interface("values", p.Values).
				Int("places", p.Places).
				Str("want", p.Want).
				Str("got", got).
				Msg("engine probe mismatch")
			e.healthy.Store(0)
			return false
		}
	}
	e.healthy.Store(1)
	return true
}

func (e *EngineChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.Check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Check()
		}
	}
}
