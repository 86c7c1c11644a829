package s3fs

import fserrors "github.com/mwantia/s3fs/data/errors"

// register tracks an open writer by its temp counter so Close can find it.
func (fsys *FileSystem) register(id uint64, tmpPath string) error {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	// Checked under the lock so Close never misses a writer.
	if fsys.closed.Load() {
		return fserrors.Closed("filesystem")
	}

	fsys.writers.Set(id, tmpPath)
	fsys.options.Observer.ObserveInFlight(fsys.writers.Len())

	return nil
}

func (fsys *FileSystem) unregister(id uint64) {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	if _, deleted := fsys.writers.Delete(id); deleted {
		fsys.options.Observer.ObserveInFlight(fsys.writers.Len())
	}
}

// InFlight returns the temp paths of all open writers, oldest first.
func (fsys *FileSystem) InFlight() []string {
	fsys.mu.Lock()
	defer fsys.mu.Unlock()

	return fsys.writers.Values()
}
