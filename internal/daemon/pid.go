// Package daemon guards single-instance execution of the delivery daemon.
// Two daemons sweeping the same database would deliver every due reminder
// twice.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"

	"github.com/learntime/learntime/internal/storage"
)

// pidFileName is the lock file name under the XDG state directory.
const pidFileName = "learntime.pid"

// ErrAlreadyRunning is returned when another daemon holds the lock.
var ErrAlreadyRunning = errors.New("delivery daemon is already running")

// PIDLock is a PID-file based single-instance lock.
type PIDLock struct {
	path string
}

// NewPIDLock creates a lock at the default XDG state path.
func NewPIDLock() *PIDLock {
	return &PIDLock{
		path: filepath.Join(xdg.StateHome, storage.AppName, pidFileName),
	}
}

// Path returns the lock file path.
func (p *PIDLock) Path() string {
	return p.path
}

// Acquire claims the lock for the current process. A stale file left by a
// dead process is reclaimed.
func (p *PIDLock) Acquire() error {
	if pid := p.RunningPID(); pid != 0 {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("writing pid file: %w", err)
	}
	return nil
}

// Release removes the lock file. A missing file is fine.
func (p *PIDLock) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing pid file: %w", err)
	}
	return nil
}

// RunningPID returns the PID recorded in the lock file if that process is
// alive, or 0.
func (p *PIDLock) RunningPID() int {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || pid <= 0 {
		return 0
	}
	if !processAlive(pid) {
		return 0
	}
	return pid
}
