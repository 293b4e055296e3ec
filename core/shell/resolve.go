package shell

import (
	"os/exec"
	"strings"

	"github.com/josephlewis42/hsh/core/vos"
)

const (
	EnvPath = "PATH"

	pathListSeparator = ":"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// Resolver turns command names into paths of executable regular files.
type Resolver struct {
	Env vos.VEnv
	Fs  vos.VFS
}

// Resolve finds the program named by cmd.
//
// If cmd contains a slash it is tried directly and PATH is not consulted.
// Otherwise each PATH entry is searched in order, an empty entry standing for
// the current directory. A missing PATH finds nothing. The result is a fresh
// lookup every call.
func (r *Resolver) Resolve(cmd string) (string, error) {
	if strings.Contains(cmd, "/") {
		if vos.IsExecutableFile(r.Fs, cmd) {
			return cmd, nil
		}
		return "", ErrNotFound
	}

	path, ok := r.Env.LookupEnv(EnvPath)
	if !ok {
		return "", ErrNotFound
	}

	// strings.Split rather than filepath.SplitList: an empty PATH is one
	// empty entry, not zero entries.
	for _, dir := range strings.Split(path, pathListSeparator) {
		candidate := pathCandidate(dir, cmd)
		if vos.IsExecutableFile(r.Fs, candidate) {
			return candidate, nil
		}
	}

	return "", ErrNotFound
}

func pathCandidate(dir, cmd string) string {
	if dir == "" {
		return "./" + cmd
	}
	return dir + "/" + cmd
}
