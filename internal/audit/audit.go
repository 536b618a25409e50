// Package audit records a history of dnaspec runs.
// Events are stored as JSON Lines (JSONL) in a single history file.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// HistoryFile is the name of the event log inside the state directory.
const HistoryFile = "history.jsonl"

// EventType classifies a run.
type EventType string

const (
	EventInstall   EventType = "install"
	EventQuery     EventType = "query"
	EventDispatch  EventType = "dispatch"
	EventSetup     EventType = "setup"
	EventCleanup   EventType = "cleanup"
	EventUninstall EventType = "uninstall"
)

// Outcome of a run.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// Event represents a single history entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"runId"`
	Type      EventType `json:"type"`
	Command   string    `json:"command"`
	Outcome   Outcome   `json:"outcome"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads history events.
// Events are stored in {stateDir}/history.jsonl.
type Logger struct {
	stateDir string
	runID    string
}

// NewLogger creates a new history logger rooted at stateDir. Every event
// it logs shares one run id.
func NewLogger(stateDir string) *Logger {
	return &Logger{stateDir: stateDir, runID: uuid.NewString()}
}

// RunID returns the id attached to events from this logger.
func (l *Logger) RunID() string {
	return l.runID
}

// Path returns the history file path.
func (l *Logger) Path() string {
	return filepath.Join(l.stateDir, HistoryFile)
}

// Log appends an event to the history.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = l.runID
	}

	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// Record logs a run result, deriving the outcome from runErr.
func (l *Logger) Record(eventType EventType, command, details string, runErr error) error {
	outcome := OutcomeOK
	if runErr != nil {
		outcome = OutcomeFailed
		if details == "" {
			details = runErr.Error()
		} else {
			details = details + ": " + runErr.Error()
		}
	}
	return l.Log(Event{
		Type:    eventType,
		Command: command,
		Outcome: outcome,
		Details: details,
	})
}

// Events reads events in chronological order. A positive limit keeps only
// the most recent events.
func (l *Logger) Events(limit int) ([]Event, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}

	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// Clear deletes the history file.
func (l *Logger) Clear() error {
	if err := os.Remove(l.Path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
