package shell

import (
	"errors"
	"syscall"

	"github.com/josephlewis42/hsh/core/logger"
	"github.com/josephlewis42/hsh/core/vos"
)

// Shell statuses for commands that did not run to completion.
const (
	StatusFailure    = 1
	StatusExecFailed = 126
	StatusNotFound   = 127
)

// execute resolves, spawns and waits for argv, returning the new shell
// status. line is the input line number used in diagnostics.
func (s *Shell) execute(argv Argv, line uint64) int {
	path, err := s.resolver.Resolve(argv[0])
	if err != nil {
		s.diagnostic("%d: %s: not found", line, argv[0])
		s.record(&logger.UnknownCommand{
			Command:    argv,
			LineNumber: line,
			Status:     StatusNotFound,
		})
		return StatusNotFound
	}

	handle, err := s.VirtualOS.Spawn(path, argv, &vos.ProcAttr{
		Env:   s.VirtualOS.Environ(),
		Files: s.VirtualOS,
	})
	if err != nil {
		status := StatusExecFailed
		if errors.Is(err, vos.ErrForkFailed) {
			status = StatusFailure
		}
		return s.spawnFailure(argv, path, line, err, status)
	}

	exitStatus, err := s.VirtualOS.Await(handle)
	if err != nil {
		return s.spawnFailure(argv, path, line, err, StatusFailure)
	}

	status := exitStatus.ShellStatus()
	s.record(&logger.RunCommand{
		Command:             argv,
		ResolvedCommandPath: path,
		LineNumber:          line,
		Pid:                 handle.Pid(),
		Status:              status,
	})
	return status
}

func (s *Shell) spawnFailure(argv Argv, path string, line uint64, err error, status int) int {
	s.diagnostic("%s", systemError(err))
	s.record(&logger.SpawnFailure{
		Command:             argv,
		ResolvedCommandPath: path,
		LineNumber:          line,
		Error:               err.Error(),
		Status:              status,
	})
	return status
}

// systemError drops the operation and path os/exec wraps around the errno.
func systemError(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno.Error()
	}
	return err.Error()
}
