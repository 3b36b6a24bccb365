package store

import "os"

// Environment supplies the two process facts candidate resolution depends on.
type Environment interface {
	Getwd() (string, error)
	Executable() (string, error)
}

// Env queries the running process on every call. A non-empty field pins that
// value instead, which is how the CLI's --work-dir and --executable work.
type Env struct {
	WorkDir  string
	ExecPath string
}

func (e Env) Getwd() (string, error) {
	if e.WorkDir != "" {
		return e.WorkDir, nil
	}
	return os.Getwd()
}

func (e Env) Executable() (string, error) {
	if e.ExecPath != "" {
		return e.ExecPath, nil
	}
	return os.Executable()
}
