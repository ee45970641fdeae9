// Package runlock enforces single-run execution against a progress file.
// The checkpoint store assumes one writer; the lock turns a second
// concurrent run into a clear error instead of interleaved checkpoints.
package runlock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Lock is a held run lock.
type Lock struct {
	flock *flock.Flock
}

// PathFor returns the lock file guarding a progress file.
func PathFor(progressPath string) string {
	return progressPath + ".lock"
}

// Acquire takes the lock non-blocking. A held lock means another run is
// active against the same progress file.
func Acquire(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another clipscribe run is already using this progress file (lock: %s)", path)
	}
	return &Lock{flock: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() {
	if l == nil || l.flock == nil {
		return
	}
	_ = l.flock.Unlock()
}
