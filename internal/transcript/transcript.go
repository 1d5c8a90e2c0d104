// Package transcript records interview conversations as per-session NDJSON
// files. Writing happens on a background goroutine behind a bounded queue,
// so a slow disk can drop events but never stalls a request.
package transcript

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event kinds.
const (
	KindQuestion = "question"
	KindAnswer   = "answer"
	KindFeedback = "feedback"
)

// Event is one transcript line.
type Event struct {
	SessionID  string    `json:"session_id"`
	Kind       string    `json:"kind"`
	QuestionID int       `json:"question_id,omitempty"`
	Text       string    `json:"text,omitempty"`
	Overall    float64   `json:"overall,omitempty"`
	At         time.Time `json:"at"`
}

// Config controls transcript logging.
type Config struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Logger writes transcript events. A disabled logger silently discards
// everything, so call sites never branch on configuration.
type Logger struct {
	enabled bool
	dir     string
	queue   chan Event
	wg      sync.WaitGroup
	once    sync.Once
}

// New creates a logger. With Enabled false it returns a no-op logger; the
// transcript directory is created on startup so write failures surface early.
func New(cfg Config) (*Logger, error) {
	if !cfg.Enabled {
		return &Logger{}, nil
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	l := &Logger{
		enabled: true,
		dir:     cfg.Dir,
		queue:   make(chan Event, cfg.QueueSize),
	}
	l.wg.Add(1)
	go l.run()
	return l, nil
}

// Record enqueues one event. A full queue drops the event with a warning;
// recording never blocks.
func (l *Logger) Record(e Event) {
	if !l.enabled {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	select {
	case l.queue <- e:
	default:
		slog.Warn("transcript queue full, dropping event",
			"session_id", e.SessionID,
			"kind", e.Kind)
	}
}

// Close drains queued events and stops the writer. Safe to call more than
// once and on a disabled logger.
func (l *Logger) Close() {
	if !l.enabled {
		return
	}
	l.once.Do(func() {
		close(l.queue)
		l.wg.Wait()
	})
}

func (l *Logger) run() {
	defer l.wg.Done()
	for e := range l.queue {
		l.write(e)
	}
}

func (l *Logger) write(e Event) {
	path := filepath.Join(l.dir, e.SessionID+".ndjson")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("transcript open failed", "error", err, "path", path)
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(e); err != nil {
		slog.Error("transcript write failed", "error", err, "path", path)
	}
}
