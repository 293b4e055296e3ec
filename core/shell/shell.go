// Package shell implements the read, tokenize, dispatch, execute loop.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/hsh/core/config"
	"github.com/josephlewis42/hsh/core/logger"
	"github.com/josephlewis42/hsh/core/vos"
)

type Shell struct {
	VirtualOS vos.VOS

	// Prog prefixes every diagnostic.
	Prog string
	// Prompt is written before each read when Interactive is set.
	Prompt      string
	Interactive bool

	// Events receives a record for every dispatched command.
	Events *logger.SessionLogger

	resolver *Resolver
	diag     *color.Color

	status int
	lineNo uint64
}

// NewShell creates an interpreter over virtualOS. Interactivity and colored
// diagnostics are resolved from cfg against the streams of virtualOS.
func NewShell(prog string, virtualOS vos.VOS, cfg *config.Configuration) *Shell {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Shell{
		VirtualOS:   virtualOS,
		Prog:        prog,
		Prompt:      cfg.Prompt,
		Interactive: cfg.IsInteractive(vos.IsTerminal(virtualOS.Stdin())),
		Events:      logger.NewNopLogRecorder().Sessionless(),
		resolver: &Resolver{
			Env: virtualOS,
			Fs:  virtualOS.FS(),
		},
	}

	s.SetColor(cfg.ShouldColor(vos.IsTerminal(virtualOS.Stderr())))

	return s
}

// SetColor toggles colored diagnostics.
func (s *Shell) SetColor(enabled bool) {
	if !enabled {
		s.diag = nil
		return
	}

	s.diag = color.New(color.FgRed)
	s.diag.EnableColor()
}

// Status returns the status of the last external command, 0 if none ran.
func (s *Shell) Status() int {
	return s.status
}

// Run reads and runs commands until input ends or exit is called, then
// returns the shell status.
func (s *Shell) Run() int {
	in := bufio.NewReader(s.VirtualOS.Stdin())

	for {
		if s.Interactive {
			fmt.Fprint(s.VirtualOS.Stdout(), s.Prompt)
		}

		line, err := readLine(in)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.diagnostic("%v", err)
			}
			if s.Interactive {
				fmt.Fprintln(s.VirtualOS.Stdout())
			}
			return s.status
		}

		s.lineNo++
		if s.runLine(line) {
			return s.status
		}
	}
}

// runLine handles a single input line and returns true if the interpreter
// should stop.
func (s *Shell) runLine(line string) (exit bool) {
	argv, ok := Tokenize(line)
	if !ok {
		return false
	}

	if handled, exit := s.dispatchBuiltin(argv); handled {
		return exit
	}

	s.status = s.execute(argv, s.lineNo)
	return false
}

// dispatchBuiltin runs argv if it names a builtin.
func (s *Shell) dispatchBuiltin(argv Argv) (handled, exit bool) {
	builtin, ok := LookupBuiltin(argv[0])
	if !ok {
		return false, false
	}

	s.record(&logger.Builtin{
		Command:    argv,
		LineNumber: s.lineNo,
	})

	return true, builtin.Main(s, argv)
}

// readLine reads up to and including the next newline, which is stripped. A
// final line without a newline is returned without error; EOF follows on the
// next call.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	switch {
	case err == nil:
		return strings.TrimSuffix(line, "\n"), nil
	case errors.Is(err, io.EOF) && line != "":
		return line, nil
	default:
		return "", err
	}
}

func (s *Shell) diagnostic(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if s.diag != nil {
		msg = s.diag.Sprint(msg)
	}
	fmt.Fprintf(s.VirtualOS.Stderr(), "%s: %s\n", s.Prog, msg)
}

func (s *Shell) record(event logger.LogType) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(event); err != nil {
		s.diagnostic("event log: %v", err)
	}
}
