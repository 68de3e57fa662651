package paper

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"intrabot-go/internal/execution"
)

// JSONLRecorder appends fills as JSON lines for offline analysis. Writes are
// buffered; Close flushes. Encoding failures are counted rather than surfaced
// because the recorder is a debugging aid, never part of the decision path.
type JSONLRecorder struct {
	mu      sync.Mutex
	file    *os.File
	buf     *bufio.Writer
	enc     *json.Encoder
	dropped int
}

// NewJSONLRecorder opens (or creates) the target file for appending, creating
// parent directories as needed.
func NewJSONLRecorder(path string) (*JSONLRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(file)
	return &JSONLRecorder{file: file, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Record writes a single fill as one JSON line. Implements FillRecorder.
func (r *JSONLRecorder) Record(fill execution.Fill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		r.dropped++
		return
	}
	if err := r.enc.Encode(fill); err != nil {
		r.dropped++
	}
}

// Dropped reports how many fills failed to write or arrived after Close.
func (r *JSONLRecorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes buffered lines and closes the file. Safe to call twice.
func (r *JSONLRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	flushErr := r.buf.Flush()
	closeErr := r.file.Close()
	r.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
