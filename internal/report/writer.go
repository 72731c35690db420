package report

import "io"

// Writer writes rendered reports to an output destination.
// Rendered reports are trimmed, so Writer appends a final newline to keep
// files and terminals tidy.
type Writer struct {
	output io.Writer
}

// NewWriter creates a Writer that outputs to the given writer.
func NewWriter(output io.Writer) *Writer {
	return &Writer{output: output}
}

// Write outputs the report followed by a newline.
// Returns the number of bytes written.
func (w *Writer) Write(report string) (int, error) {
	return io.WriteString(w.output, report+"\n")
}

// MultiWriter writes the same report to several Writers.
// This is useful for writing to a file while echoing to the terminal.
type MultiWriter struct {
	writers []*Writer
}

// NewMultiWriter creates a MultiWriter over the given Writers.
func NewMultiWriter(writers ...*Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all Writers.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(report string) (int, error) {
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
