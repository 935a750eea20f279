package mcp

import (
	"bytes"
	"errors"
	"sync"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeSessions accepts live, reports terminated as terminated and rejects
// everything else.
type fakeSessions struct {
	live       string
	terminated string
}

func (f *fakeSessions) Generate() string { return f.live }

func (f *fakeSessions) Validate(sessionID string) (bool, error) {
	switch sessionID {
	case f.live:
		return false, nil
	case f.terminated:
		return true, nil
	default:
		return false, errors.New("invalid session id")
	}
}

func (f *fakeSessions) Terminate(string) (bool, error) { return false, nil }
