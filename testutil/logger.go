package testutil

import (
	"bytes"
	"sync"

	"github.com/rs/zerolog"
)

// LogBuffer collects log output; it is safe for concurrent writers.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// NewLogger returns a JSON logger writing into the returned buffer.
func NewLogger() (zerolog.Logger, *LogBuffer) {
	buf := &LogBuffer{mu: sync.Mutex{}, buf: bytes.Buffer{}}

	return zerolog.New(buf).Level(zerolog.DebugLevel), buf
}
