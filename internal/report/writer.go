package report

import (
	"io"

	"github.com/nao1215/redfox/internal/model"
)

// Writer defines the interface for sweep report output.
// Implementations render the report in a specific format.
//
// Design decision: we use an interface rather than format flags on one
// writer so destinations and formats compose freely - writing to files,
// stdout, or network connections all use the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.SweepReport) (int, error)
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter for the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: we implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different from
// io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on the first error encountered.
func (m *MultiWriter) Write(report *model.SweepReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
