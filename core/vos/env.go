package vos

import (
	"os"
	"strings"
	"sync"
)

// VEnv represents a read-only view of an environment.
type VEnv interface {
	// LookupEnv retrieves the value of the environment variable named by the key.
	// If the variable is present in the environment the value (which may be
	// empty) is returned and the boolean is true. Otherwise the returned value
	// will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	EnvironFetcher
}

type EnvironFetcher interface {
	// Environ returns a copy of strings representing the environment, in the
	// form "key=value", in the environment's iteration order.
	Environ() []string
}

// OSEnv reads the environment of the current process.
type OSEnv struct{}

var _ VEnv = (*OSEnv)(nil)

// NewOSEnv returns a VEnv over the process environment.
func NewOSEnv() *OSEnv {
	return &OSEnv{}
}

// LookupEnv implements VEnv.LookupEnv.
func (*OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ implements VEnv.Environ, preserving the order of the process
// environment table.
func (*OSEnv) Environ() []string {
	return os.Environ()
}

// NewMapEnv creates a new, empty in-memory environment.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates an environment from "key=value" entries. Entries
// without a '=' are stored with an empty value.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.Setenv(key, value)
	}

	return out
}

// MapEnv implements an in-memory VEnv that remembers insertion order.
type MapEnv struct {
	rw   sync.RWMutex
	keys []string
	env  map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// Setenv sets the value of the environment variable named by the key. New
// keys are appended to the iteration order, existing keys keep their place.
func (m *MapEnv) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	if _, ok := m.env[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.env[key] = value
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Environ implements VEnv.Environ.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	env := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		env = append(env, k+"="+m.env[k])
	}

	return env
}
