package platform

import (
	"io"
	"os"
)

// writeRetry writes buf to f, retrying on EINTR and advancing by
// whatever byte count a short write returns, per §4.4.2: "Interrupted
// system writes retry; short writes advance by the byte count returned."
func writeRetry(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Write(buf[total:])
		total += n
		if err != nil {
			if isEINTR(err) {
				continue
			}
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// readRetry is writeRetry's read-side counterpart, used by the
// verification read-back path.
func readRetry(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			if isEINTR(err) {
				continue
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}
