package client

import (
	"testing"

	"github.com/anvilsmith/microsdc/transport"
)

func TestReadChunkSize(t *testing.T) {
	c := &Client{tr: &transport.Transport{}}

	c.tr.SetMaxBufferSize(0)
	if got := c.readChunkSize(); got != 4096-64 {
		t.Errorf("readChunkSize with zero MaxBufferSize = %d, want %d", got, 4096-64)
	}

	c.tr.SetMaxBufferSize(16384)
	if got := c.readChunkSize(); got != 16384-64 {
		t.Errorf("readChunkSize = %d, want %d", got, 16384-64)
	}
}

func TestFileSize(t *testing.T) {
	f := &File{size: 12345}
	if f.Size() != 12345 {
		t.Errorf("Size() = %d, want 12345", f.Size())
	}
}
