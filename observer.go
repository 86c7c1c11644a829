package s3fs

import "time"

// Operation names reported to an Observer.
const (
	OpLoadMetadata     = "load_metadata"
	OpSaveMetadata     = "save_metadata"
	OpLoadInternalInfo = "load_internal_info"
	OpSaveInternalInfo = "save_internal_info"
	OpDeleteSidecars   = "delete_sidecars"
	OpPruneSidecars    = "prune_sidecars"
	OpChecksum         = "checksum"
	OpPrepareWrite     = "prepare_write"
	OpCommit           = "commit"
	OpCreateUpload     = "create_upload"
	OpVerifyUpload     = "verify_upload"
	OpDeleteUpload     = "delete_upload"
)

// Observer receives instrumentation events from a FileSystem.
// Implementations must be safe for concurrent use.
type Observer interface {
	// Observe records one operation; bytes is the payload size where meaningful.
	Observe(op string, bytes int64, err error, dur time.Duration)
	// ObserveOrphans records temp files removed by the startup reconciler.
	ObserveOrphans(removed int)
	// ObserveInFlight records the current number of open writers.
	ObserveInFlight(writers int)
}

type nopObserver struct{}

func (nopObserver) Observe(string, int64, error, time.Duration) {}
func (nopObserver) ObserveOrphans(int)                          {}
func (nopObserver) ObserveInFlight(int)                         {}

func (fsys *FileSystem) observe(op string, start time.Time, bytes int64, err error) {
	fsys.options.Observer.Observe(op, bytes, err, time.Since(start))
}
