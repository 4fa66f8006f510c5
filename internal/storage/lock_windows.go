//go:build windows

package storage

import (
	"os"
)

// flockAcquire is a no-op on Windows; the open file handle is the lock.
func flockAcquire(file *os.File) error {
	return nil
}

// flockRelease is a no-op on Windows; closing the file releases the lock.
func flockRelease(file *os.File) error {
	return nil
}

// isProcessRunning checks if a process with the given PID is still running.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Release the handle; FindProcess only succeeds for live processes.
	process.Release()
	return true
}
