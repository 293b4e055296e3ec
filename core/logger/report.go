package logger

import (
	"encoding/json"
	"io"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries int        `json:"log_entries"`
	Sessions   StrCounter `json:"sessions"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	Builtin        BuiltinReport        `json:"builtin_report"`
	SpawnFailure   SpawnFailureReport   `json:"spawn_failure_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *Builtin:
		r.Builtin.update(event)
	case *SpawnFailure:
		r.SpawnFailure.update(event)
	}
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit statuses of the commands
	Statuses StrCounter `json:"statuses"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.Statuses.Increment(strconv.Itoa(rc.Status))
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *BuiltinReport) update(logEntry *Builtin) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type SpawnFailureReport struct {
	Errors StrCounter `json:"errors"`
}

func (r *SpawnFailureReport) update(logEntry *SpawnFailure) {
	r.Errors.Increment(logEntry.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}
