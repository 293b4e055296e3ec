package logger

// LogEntry is a single record in the event log. Exactly one of the event
// fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	Builtin        *Builtin        `json:"builtin,omitempty"`
	SpawnFailure   *SpawnFailure   `json:"spawn_failure,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.Builtin != nil:
		return le.Builtin
	case le.SpawnFailure != nil:
		return le.SpawnFailure
	default:
		return nil
	}
}

// RunCommand is logged when an external program ran to completion.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	LineNumber          uint64   `json:"line_number"`
	Pid                 int      `json:"pid"`
	Status              int      `json:"status"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is logged when a command name could not be resolved.
type UnknownCommand struct {
	Command    []string `json:"command"`
	LineNumber uint64   `json:"line_number"`
	Status     int      `json:"status"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// Builtin is logged when a builtin handled the command.
type Builtin struct {
	Command    []string `json:"command"`
	LineNumber uint64   `json:"line_number"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// SpawnFailure is logged when a resolved program could not be started or
// waited for.
type SpawnFailure struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	LineNumber          uint64   `json:"line_number"`
	Error               string   `json:"error"`
	Status              int      `json:"status"`
}

func (e *SpawnFailure) setOn(le *LogEntry) { le.SpawnFailure = e }
