package vos

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
)

var (
	// ErrForkFailed is reported when the system could not create a process.
	ErrForkFailed = errors.New("fork failed")
	// ErrExecFailed is reported when a process was created but the program
	// could not be loaded into it.
	ErrExecFailed = errors.New("exec failed")
)

// VProc starts programs and waits for them to terminate.
type VProc interface {
	// Spawn starts the program at path with the given argument vector. argv[0]
	// is passed through unchanged so it may differ from path.
	//
	// Errors wrap ErrForkFailed or ErrExecFailed.
	Spawn(path string, argv []string, attr *ProcAttr) (Handle, error)

	// Await blocks until the process behind the handle terminates.
	Await(Handle) (ExitStatus, error)
}

// Handle refers to a spawned process.
type Handle interface {
	Pid() int
}

type ProcAttr struct {
	// Env gives the environment variables for the new process in the form
	// returned by Environ.
	Env []string

	// Files specifies the standard streams inherited by the new process.
	// A nil Files connects all three to the null device.
	Files VIO
}

// ExitStatus describes how a process terminated.
type ExitStatus struct {
	// Exited is true if the process terminated by calling exit.
	Exited bool
	// Code holds the exit code when Exited is set.
	Code int
	// Signal holds the signal that terminated or stopped the process, if any.
	Signal os.Signal
}

// Exit builds the status of a process that exited with code.
func Exit(code int) ExitStatus {
	return ExitStatus{Exited: true, Code: code}
}

// ShellStatus maps the termination to a shell status: the exit code for
// normal termination, 1 otherwise.
func (e ExitStatus) ShellStatus() int {
	if e.Exited {
		return e.Code
	}
	return 1
}

// OSProc runs programs on the host.
type OSProc struct{}

var _ VProc = (*OSProc)(nil)

func NewOSProc() *OSProc {
	return &OSProc{}
}

type osHandle struct {
	cmd *exec.Cmd
}

func (h *osHandle) Pid() int {
	return h.cmd.Process.Pid
}

// Spawn implements VProc.Spawn.
func (*OSProc) Spawn(path string, argv []string, attr *ProcAttr) (Handle, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}

	files := attr.Files
	if files == nil {
		files = NewNullIO()
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    attr.Env,
		Stdin:  childStdin(files.Stdin()),
		Stdout: files.Stdout(),
		Stderr: files.Stderr(),
	}
	if cmd.Env == nil {
		// A nil Env would make os/exec inherit the host environment.
		cmd.Env = []string{}
	}

	if err := cmd.Start(); err != nil {
		return nil, classifySpawnError(err)
	}

	return &osHandle{cmd: cmd}, nil
}

// Await implements VProc.Await.
func (*OSProc) Await(h Handle) (ExitStatus, error) {
	handle, ok := h.(*osHandle)
	if !ok {
		return ExitStatus{}, errors.New("unknown process handle")
	}

	err := handle.cmd.Wait()
	state := handle.cmd.ProcessState
	if state == nil {
		return ExitStatus{}, err
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return statusFromState(state), err
	}

	return statusFromState(state), nil
}

func statusFromState(state *os.ProcessState) ExitStatus {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		if state.Exited() {
			return Exit(state.ExitCode())
		}
		return ExitStatus{}
	}

	switch {
	case ws.Exited():
		return Exit(ws.ExitStatus())
	case ws.Signaled():
		return ExitStatus{Signal: ws.Signal()}
	case ws.Stopped():
		return ExitStatus{Signal: ws.StopSignal()}
	default:
		return ExitStatus{}
	}
}

// childStdin only hands real files to children. Any other reader belongs to
// the caller and would be drained by the copy goroutine os/exec starts.
func childStdin(r io.Reader) io.Reader {
	if f, ok := r.(*os.File); ok {
		return f
	}
	return nil
}

// classifySpawnError separates failures to create a process from failures to
// load the program into it. os/exec reports both from Start.
func classifySpawnError(err error) error {
	for _, errno := range []syscall.Errno{syscall.EAGAIN, syscall.ENOMEM, syscall.ENOSYS} {
		if errors.Is(err, errno) {
			return &SpawnError{Kind: ErrForkFailed, Err: err}
		}
	}
	return &SpawnError{Kind: ErrExecFailed, Err: err}
}

// SpawnError is returned by Spawn.
type SpawnError struct {
	// Kind is ErrForkFailed or ErrExecFailed.
	Kind error
	Err  error
}

func (e *SpawnError) Error() string {
	return e.Err.Error()
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

func (e *SpawnError) Is(target error) bool {
	return target == e.Kind
}
