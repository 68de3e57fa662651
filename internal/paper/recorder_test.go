package paper

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"intrabot-go/internal/execution"
)

func TestJSONLRecorderWritesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fills", "out.jsonl")
	rec, err := NewJSONLRecorder(path)
	if err != nil {
		t.Fatalf("NewJSONLRecorder returned error: %v", err)
	}

	rec.Record(fill("t1", 0))
	rec.Record(fill("t2", -1.5))
	if err := rec.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer f.Close()

	var fills []execution.Fill
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var got execution.Fill
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("line is not valid json: %v", err)
		}
		fills = append(fills, got)
	}
	if len(fills) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(fills))
	}
	if fills[1].Ticket != "t2" || fills[1].PnL != -1.5 {
		t.Fatalf("unexpected second fill: %+v", fills[1])
	}
}

func TestJSONLRecorderCloseIdempotent(t *testing.T) {
	rec, err := NewJSONLRecorder(filepath.Join(t.TempDir(), "out.jsonl"))
	if err != nil {
		t.Fatalf("NewJSONLRecorder returned error: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("first Close returned error: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}

	rec.Record(fill("late", 0))
	if rec.Dropped() != 1 {
		t.Fatalf("expected post-close record to be counted as dropped, got %d", rec.Dropped())
	}
}
