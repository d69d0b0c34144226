//go:build !windows

package daemon

import (
	"os"
	"syscall"
)

// processAlive reports whether a process with the given pid exists. On Unix
// FindProcess always succeeds, so signal 0 does the actual probe.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
