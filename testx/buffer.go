package testx

import (
	"bytes"
	"sync"
	"testing"
)

// ConcurrentBuffer is an io.Writer that can be written to and read from different goroutines.
type ConcurrentBuffer struct {
	b *bytes.Buffer
	m sync.RWMutex
	t testing.TB
}

func NewConcurrentBuffer(t testing.TB) *ConcurrentBuffer {
	return &ConcurrentBuffer{
		b: new(bytes.Buffer),
		t: t,
	}
}

func (c *ConcurrentBuffer) Write(p []byte) (n int, err error) {
	c.m.Lock()
	defer c.m.Unlock()
	return c.b.Write(p)
}

func (c *ConcurrentBuffer) String() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.b.String()
}

func (c *ConcurrentBuffer) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.b.Reset()
}
