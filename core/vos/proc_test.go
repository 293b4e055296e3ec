package vos

import (
	"bytes"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()

	const sh = "/bin/sh"
	if _, err := os.Stat(sh); err != nil {
		t.Skipf("%s not available: %v", sh, err)
	}
	return sh
}

func runOS(t *testing.T, argv []string, env []string) (ExitStatus, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	proc := NewOSProc()
	h, err := proc.Spawn(argv[0], argv, &ProcAttr{
		Env:   env,
		Files: NewVIOAdapter(nil, buf, buf),
	})
	require.NoError(t, err)
	assert.NotZero(t, h.Pid())

	status, err := proc.Await(h)
	require.NoError(t, err)
	return status, buf.String()
}

func TestOSProc_exitCode(t *testing.T) {
	sh := requireShell(t)

	status, _ := runOS(t, []string{sh, "-c", "exit 3"}, nil)
	assert.Equal(t, Exit(3), status)
	assert.Equal(t, 3, status.ShellStatus())
}

func TestOSProc_environment(t *testing.T) {
	sh := requireShell(t)

	status, out := runOS(t, []string{sh, "-c", `echo "$FOO"`}, []string{"FOO=bar"})
	assert.Equal(t, 0, status.ShellStatus())
	assert.Equal(t, "bar\n", out)
}

func TestOSProc_signaled(t *testing.T) {
	sh := requireShell(t)

	status, _ := runOS(t, []string{sh, "-c", "kill -TERM $$"}, nil)
	assert.False(t, status.Exited)
	assert.Equal(t, syscall.SIGTERM, status.Signal)
	assert.Equal(t, 1, status.ShellStatus())
}

func TestOSProc_execFailure(t *testing.T) {
	dir := t.TempDir()
	notExecutable := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(notExecutable, []byte("data"), 0644))

	_, err := NewOSProc().Spawn(notExecutable, []string{"plain"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecFailed)
	assert.NotErrorIs(t, err, ErrForkFailed)
}

func TestClassifySpawnError(t *testing.T) {
	cases := map[string]struct {
		err  error
		kind error
	}{
		"eagain": {&os.PathError{Op: "fork/exec", Path: "/x", Err: syscall.EAGAIN}, ErrForkFailed},
		"enomem": {&os.PathError{Op: "fork/exec", Path: "/x", Err: syscall.ENOMEM}, ErrForkFailed},
		"eacces": {&os.PathError{Op: "fork/exec", Path: "/x", Err: syscall.EACCES}, ErrExecFailed},
		"enoent": {&os.PathError{Op: "fork/exec", Path: "/x", Err: syscall.ENOENT}, ErrExecFailed},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			err := classifySpawnError(tc.err)
			assert.ErrorIs(t, err, tc.kind)
			assert.ErrorIs(t, err, tc.err.(*os.PathError).Err)
			assert.Equal(t, tc.err.Error(), err.Error())
		})
	}
}

func TestExitStatus_ShellStatus(t *testing.T) {
	assert.Equal(t, 0, Exit(0).ShellStatus())
	assert.Equal(t, 255, Exit(255).ShellStatus())
	assert.Equal(t, 1, ExitStatus{Signal: syscall.SIGKILL}.ShellStatus())
	assert.Equal(t, 1, ExitStatus{}.ShellStatus())
}
