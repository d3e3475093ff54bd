package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers.
// Used to mirror the rotated log file to stdout.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: writers,
	}
}

// Write reports the longest successful write, and all writer errors combined.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		written int
		errs    error
	)
	for _, w := range cw.Writers {
		n, err := w.Write(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if n > written {
			written = n
		}
	}
	return written, errs
}
