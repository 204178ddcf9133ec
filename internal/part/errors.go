package part

import (
	"errors"
	"fmt"
)

// Split errors.
var (
	ErrSourceNotFound      = errors.New("source file not found")
	ErrSourceUnreadable    = errors.New("source file unreadable")
	ErrInvalidPartitioning = errors.New("invalid partitioning")
	ErrPartWriteFailed     = errors.New("part write failed")
	ErrMetadataWriteFailed = errors.New("metadata write failed")
)

// Combine errors.
var (
	ErrMetadataNotFound          = errors.New("metadata not found")
	ErrMetadataCorrupt           = errors.New("metadata corrupt")
	ErrMetadataName              = errors.New("cannot derive output name from metadata path")
	ErrPartNotFound              = errors.New("part not found")
	ErrPartChecksumMismatch      = errors.New("part checksum mismatch")
	ErrWholeFileChecksumMismatch = errors.New("checksum mismatch on whole file")
	ErrOutputWriteFailed         = errors.New("output write failed")
)

// PartError ties a failure to a single part index.
type PartError struct {
	Index uint64
	Err   error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %d: %v", e.Index, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

func partErr(i uint64, sentinel error, cause error) error {
	if cause == nil {
		return &PartError{Index: i, Err: sentinel}
	}
	return &PartError{Index: i, Err: fmt.Errorf("%w: %v", sentinel, cause)}
}
