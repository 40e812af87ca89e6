package shortname

import "errors"

// Resolver configuration errors. Both indicate a programming mistake in the
// caller, never a recoverable runtime condition.
var (
	ErrEmptyCandidates = errors.New("shortname: empty candidate list")
	ErrHeadMismatch    = errors.New("shortname: conflicted key is not the candidate head")
	ErrDuplicateEntry  = errors.New("shortname: duplicate entity identity in batch")
)

// Orchestration errors
var (
	ErrNilEntity    = errors.New("shortname: nil entity")
	ErrStoreFailure = errors.New("shortname: store operation failed")
	ErrLockFailed   = errors.New("shortname: failed to acquire lock")
	ErrNotFound     = errors.New("shortname: record not found")
)
