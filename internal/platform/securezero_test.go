package platform

import "testing"

// TestSecureZero covers I3/P5: every byte of buf is zero after
// SecureZero returns.
func TestSecureZero(t *testing.T) {
	buf := []byte("super secret credential bytes!!")
	SecureZero(buf)

	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0x00 after SecureZero", i, b)
		}
	}
}

// TestSecureZeroEmptyBuffer covers the zero-length edge case: it must
// not panic.
func TestSecureZeroEmptyBuffer(t *testing.T) {
	SecureZero(nil)
	SecureZero([]byte{})
}
