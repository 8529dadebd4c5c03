package entity

import "errors"

var (
	// ErrCollectionNotInitialized is returned for index operations before a
	// collection has been created. Distinct from an empty result set.
	ErrCollectionNotInitialized = errors.New("no collection initialized")

	// ErrUnsupportedFileType is returned for extensions outside the
	// supported set.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrDocumentNotFound is returned when reading a file that was never
	// uploaded.
	ErrDocumentNotFound = errors.New("document not found")
)
