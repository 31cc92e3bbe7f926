package state

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"
	"time"
)

// Lock is a pid file preventing two bot processes from mutating the
// same state file. A lock left behind by a dead process is taken over.
type Lock struct {
	path string
}

type lockInfo struct {
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// AcquireLock claims the lock file at path. It fails only when another
// live process holds it; stale and unreadable lock files are replaced.
func AcquireLock(path string, now time.Time) (*Lock, error) {
	if data, err := os.ReadFile(path); err == nil {
		var info lockInfo
		if json.Unmarshal(data, &info) == nil && processAlive(info.PID) {
			return nil, fmt.Errorf("state: already running (pid %d since %s)",
				info.PID, info.StartedAt.Format(time.RFC3339))
		}
	}

	data, err := json.Marshal(lockInfo{PID: os.Getpid(), StartedAt: now.UTC()})
	if err != nil {
		return nil, fmt.Errorf("state: encode lock: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("state: write lock %s: %w", path, err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lock file.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("state: remove lock %s: %w", l.path, err)
	}
	return nil
}

// processAlive probes the pid with signal 0.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
