// Package vostest provides deterministic implementations of the vos
// capabilities for tests.
package vostest

import (
	"bytes"
	"errors"
	"io"

	"github.com/josephlewis42/hsh/core/vos"
	"github.com/spf13/afero"
)

// Program is a fake executable. It receives the argument vector and
// environment it was spawned with and returns how it terminated.
type Program func(argv []string, env []string, files vos.VIO) vos.ExitStatus

// ExitWith returns a Program that exits with code.
func ExitWith(code int) Program {
	return func([]string, []string, vos.VIO) vos.ExitStatus {
		return vos.Exit(code)
	}
}

// Spawn records a single call to FakeProc.Spawn.
type Spawn struct {
	Path string
	Argv []string
	Env  []string
}

// FakeProc implements vos.VProc by looking programs up by path.
type FakeProc struct {
	// Programs maps resolved paths to fake executables.
	Programs map[string]Program

	// SpawnErr, if set, is returned from every Spawn call.
	SpawnErr error

	// AwaitErr, if set, is returned from every Await call.
	AwaitErr error

	// Spawned holds the calls to Spawn in order.
	Spawned []Spawn
}

var _ vos.VProc = (*FakeProc)(nil)
var _ vos.VOS = (*OS)(nil)

type fakeHandle struct {
	pid    int
	status vos.ExitStatus
}

func (h *fakeHandle) Pid() int {
	return h.pid
}

// Spawn implements vos.VProc.Spawn. The fake program runs to completion
// before Spawn returns.
func (f *FakeProc) Spawn(path string, argv []string, attr *vos.ProcAttr) (vos.Handle, error) {
	if attr == nil {
		attr = &vos.ProcAttr{}
	}
	f.Spawned = append(f.Spawned, Spawn{
		Path: path,
		Argv: append([]string(nil), argv...),
		Env:  append([]string(nil), attr.Env...),
	})

	if f.SpawnErr != nil {
		return nil, f.SpawnErr
	}

	program, ok := f.Programs[path]
	if !ok {
		return nil, &vos.SpawnError{Kind: vos.ErrExecFailed, Err: errors.New(path + ": exec format error")}
	}

	files := attr.Files
	if files == nil {
		files = vos.NewNullIO()
	}

	return &fakeHandle{
		pid:    len(f.Spawned),
		status: program(argv, attr.Env, files),
	}, nil
}

// Await implements vos.VProc.Await.
func (f *FakeProc) Await(h vos.Handle) (vos.ExitStatus, error) {
	if f.AwaitErr != nil {
		return vos.ExitStatus{}, f.AwaitErr
	}
	return h.(*fakeHandle).status, nil
}

// OS is a deterministic vos.VOS with buffered output.
type OS struct {
	*vos.Adapter

	Env   *vos.MapEnv
	MemFs afero.Fs
	Proc  *FakeProc

	// StdoutBuf and StderrBuf capture the standard output streams.
	StdoutBuf *bytes.Buffer
	StderrBuf *bytes.Buffer
}

// NewOS creates a fake OS reading input from stdin, with the given environment
// and an empty in-memory filesystem.
func NewOS(stdin io.Reader, environ ...string) *OS {
	out := &OS{
		Env:       vos.NewMapEnvFromEnvList(environ),
		MemFs:     afero.NewMemMapFs(),
		Proc:      &FakeProc{Programs: make(map[string]Program)},
		StdoutBuf: &bytes.Buffer{},
		StderrBuf: &bytes.Buffer{},
	}

	out.Adapter = &vos.Adapter{
		VEnv:  out.Env,
		VIO:   vos.NewVIOAdapter(stdin, out.StdoutBuf, out.StderrBuf),
		VProc: out.Proc,
		Fs:    out.MemFs,
	}

	return out
}

// Install places an executable file at path and registers program to run
// when it is spawned.
func (o *OS) Install(path string, program Program) error {
	if err := afero.WriteFile(o.MemFs, path, []byte("#!fake\n"), 0755); err != nil {
		return err
	}
	o.Proc.Programs[path] = program
	return nil
}
