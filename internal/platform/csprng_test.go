package platform

import (
	"bytes"
	"testing"
)

// TestRandomFillsBuffer covers §4.5's random(buf, n) contract: the full
// buffer is filled, and two successive calls don't produce the same
// bytes (a CSPRNG that silently returned zeros or a fixed pattern would
// pass a length check but fail this).
func TestRandomFillsBuffer(t *testing.T) {
	buf := make([]byte, 4096)
	if err := Random(buf); err != nil {
		t.Fatalf("Random: %v", err)
	}

	if bytes.Equal(buf, make([]byte, len(buf))) {
		t.Fatal("Random left the buffer all-zero")
	}

	second := make([]byte, 4096)
	if err := Random(second); err != nil {
		t.Fatalf("Random: %v", err)
	}
	if bytes.Equal(buf, second) {
		t.Fatal("two successive Random calls produced identical output")
	}
}

// TestRandomBytesLength covers the convenience wrapper's size contract.
func TestRandomBytesLength(t *testing.T) {
	buf, err := RandomBytes(64)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	if len(buf) != 64 {
		t.Errorf("RandomBytes(64) returned %d bytes, want 64", len(buf))
	}
}
