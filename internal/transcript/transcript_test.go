package transcript

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoggerWritesNDJSONPerSession(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	l, err := New(Config{Enabled: true, Dir: dir, QueueSize: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Record(Event{SessionID: "s1", Kind: KindQuestion, QuestionID: 1, Text: "Tell me about yourself."})
	l.Record(Event{SessionID: "s1", Kind: KindAnswer, QuestionID: 1, Text: "I build Go services."})
	l.Record(Event{SessionID: "s2", Kind: KindFeedback, Overall: 7.5, Text: "Solid interview."})
	l.Close()

	lines := readLines(t, filepath.Join(dir, "s1.ndjson"))
	if len(lines) != 2 {
		t.Fatalf("s1 transcript has %d lines, want 2", len(lines))
	}

	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if first.Kind != KindQuestion || first.QuestionID != 1 || first.Text != "Tell me about yourself." {
		t.Errorf("first event = %+v", first)
	}
	if first.At.IsZero() {
		t.Error("event timestamp was not stamped")
	}

	var second Event
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("unmarshal second line: %v", err)
	}
	if second.Kind != KindAnswer {
		t.Errorf("second event kind = %q", second.Kind)
	}

	other := readLines(t, filepath.Join(dir, "s2.ndjson"))
	if len(other) != 1 {
		t.Fatalf("s2 transcript has %d lines, want 1", len(other))
	}
	var fb Event
	if err := json.Unmarshal([]byte(other[0]), &fb); err != nil {
		t.Fatalf("unmarshal feedback line: %v", err)
	}
	if fb.Overall != 7.5 {
		t.Errorf("feedback overall = %v", fb.Overall)
	}
}

func TestDisabledLoggerIsNoop(t *testing.T) {
	t.Parallel()

	l, err := New(Config{Enabled: false, Dir: "/nonexistent/should/not/matter"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Record(Event{SessionID: "s1", Kind: KindQuestion, Text: "hello"})
	l.Close()
	l.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	l, err := New(Config{Enabled: true, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Record(Event{SessionID: "s1", Kind: KindQuestion, Text: "hello"})
	l.Close()
	l.Close()
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return lines
}
