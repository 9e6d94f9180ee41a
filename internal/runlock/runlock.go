package runlock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Acquire takes the single-writer lock for a data directory, failing fast
// when another run already holds it. The corpus rewrite is wholesale, so
// two concurrent runs must never interleave; the caller Unlocks on exit.
func Acquire(dataDir string) (*flock.Flock, error) {
	l := flock.New(filepath.Join(dataDir, "aggregator.lock"))
	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run holds %s", l.Path())
	}
	return l, nil
}
