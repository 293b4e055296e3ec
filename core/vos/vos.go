package vos

// VOS provides the operating system interface consumed by the interpreter.
//
// The interpreter never talks to the process environment, filesystem or
// process table directly so it can be driven by deterministic fakes.
type VOS interface {
	VEnv
	VIO
	VProc

	// FS returns the filesystem used for command resolution.
	FS() VFS
}

// Adapter composes independent capabilities into a VOS.
type Adapter struct {
	VEnv
	VIO
	VProc

	Fs VFS
}

var _ VOS = (*Adapter)(nil)

// FS implements VOS.FS.
func (a *Adapter) FS() VFS {
	return a.Fs
}

// NewOS creates a VOS backed by the real process environment, filesystem,
// standard I/O streams and process table.
func NewOS() *Adapter {
	return &Adapter{
		VEnv:  NewOSEnv(),
		VIO:   NewStdIO(),
		VProc: NewOSProc(),
		Fs:    NewOsFs(),
	}
}
