// Package scanlog implements the analyzer's log sink: an append-only
// UTF-8 text file recording every scan decision, one sink per run.
package scanlog

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

const separator = "----------------------------------------"

// Writer records scan decisions to a log file. It is safe for use from
// multiple goroutines, although a run writes from a single one.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	path string
}

// New creates the log file at path, truncating any previous content.
func New(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	return &Writer{
		file: file,
		buf:  bufio.NewWriter(file),
		path: path,
	}, nil
}

// Path returns the location of the log file.
func (w *Writer) Path() string { return w.path }

// WriteMessage appends a labeled status line: == message ==
func (w *Writer) WriteMessage(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf == nil {
		return
	}
	fmt.Fprintf(w.buf, "== %s ==\n", message)
}

// WriteElement appends a verbatim block followed by a separator line.
func (w *Writer) WriteElement(element string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf == nil {
		return
	}
	fmt.Fprintln(w.buf, element)
	fmt.Fprintln(w.buf, separator)
}

// Close flushes and closes the log file. The writer discards further
// writes after Close.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	w.file = nil
	w.buf = nil
	if flushErr != nil {
		return fmt.Errorf("failed to flush log: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close log: %w", closeErr)
	}
	return nil
}
