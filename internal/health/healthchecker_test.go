package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) { /* no-op */ }

func TestServiceHealthChecker_Transitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := zerolog.Nop()

	a := &fakeChecker{name: "a"}
	b := &fakeChecker{name: "b"}
	a.healthy.Store(1)
	b.healthy.Store(1)

	svc := NewServiceHealthChecker(logger, a, b)
	go svc.Start(ctx, 10*time.Millisecond)

	// Initially healthy
	waitTrue(t, func() bool { return svc.IsHealthy() })

	// Flip one to unhealthy
	b.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })

	// Recover
	b.healthy.Store(1)
	waitTrue(t, func() bool { return svc.IsHealthy() })
}

func TestEngineChecker(t *testing.T) {
	calls := atomic.Int32{}
	good := func(values []float64, places int) string {
		calls.Add(1)
		for _, p := range DefaultProbes {
			if len(p.Values) == len(values) && p.Places == places && p.Values[0] == values[0] {
				return p.Want
			}
		}
		return ""
	}
	ec := NewEngineChecker(zerolog.Nop(), good)
	if !ec.Check() || !ec.IsHealthy() {
		t.Fatalf("expected healthy engine")
	}
	if int(calls.Load()) != len(DefaultProbes) {
		t.Fatalf("expected %d probe calls, got %d", len(DefaultProbes), calls.Load())
	}

	bankers := func([]float64, int) string { return "2.12" }
	bad := NewEngineChecker(zerolog.Nop(), bankers, Probe{Values: []float64{2.125}, Places: 2, Want: "2.13"})
	if bad.Check() || bad.IsHealthy() {
		t.Fatalf("expected unhealthy engine")
	}
}

func TestServiceHealthChecker_StartsEngineChecker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ec := NewEngineChecker(zerolog.Nop(), func([]float64, int) string { return "2.13" },
		Probe{Values: []float64{2.125}, Places: 2, Want: "2.13"})
	svc := NewServiceHealthChecker(zerolog.Nop(), ec)
	go svc.Start(ctx, 10*time.Millisecond)

	waitTrue(t, func() bool { return svc.IsHealthy() })
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
