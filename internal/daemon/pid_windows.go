//go:build windows

package daemon

import "os"

// processAlive reports whether a process with the given pid exists. Windows
// has no signal 0; FindProcess opens a real process handle there, so its
// error is the probe.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = process.Release()
	return true
}
