package platform

import "runtime"

// SecureZero writes zero bytes over buf with semantics the compiler is
// not allowed to elide: the explicit runtime.KeepAlive after the write
// loop keeps the store from being optimized away as a dead write to a
// buffer the caller is about to drop, which a plain `for i := range buf
// { buf[i] = 0 }` with no further use of buf would otherwise be
// eligible for under sufficiently aggressive inlining.
func SecureZero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
