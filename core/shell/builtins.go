package shell

import (
	"fmt"
	"sort"
)

// ShellBuiltin is a command run inside the interpreter. Builtins never change
// the shell status.
type ShellBuiltin interface {
	// Main runs the builtin and returns true if the interpreter should stop
	// after the current line.
	Main(s *Shell, argv Argv) (exit bool)
}

type ShellBuiltinFunc func(s *Shell, argv Argv) bool

func (f ShellBuiltinFunc) Main(s *Shell, argv Argv) bool {
	return f(s, argv)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// allBuiltins is fixed at init, names are matched exactly.
var allBuiltins = map[string]ShellBuiltin{}

// Exit stops the interpreter. Arguments are ignored.
func Exit(s *Shell, argv Argv) bool {
	return true
}

// Env prints the environment, one KEY=VALUE per line.
func Env(s *Shell, argv Argv) bool {
	w := s.VirtualOS.Stdout()
	for _, kv := range s.VirtualOS.Environ() {
		fmt.Fprintln(w, kv)
	}
	return false
}

// LookupBuiltin finds the builtin with the given name.
func LookupBuiltin(name string) (ShellBuiltin, bool) {
	builtin, ok := allBuiltins[name]
	return builtin, ok
}

// ListBuiltins returns the sorted names of all builtins.
func ListBuiltins() []string {
	var out []string
	for name := range allBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	allBuiltins["exit"] = ShellBuiltinFunc(Exit)
	allBuiltins["env"] = ShellBuiltinFunc(Env)
}
