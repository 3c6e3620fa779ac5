package types

import "errors"

var (
	// ErrIndexNotInitialized is returned when a query arrives before any
	// document has been ingested. It is always surfaced to the caller and
	// never treated as an empty result set.
	ErrIndexNotInitialized = errors.New("vector index not initialized: upload a document first")

	// ErrUnsupportedFileType is returned for uploads that are not PDF files.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyQuestion is returned when a query request has no question text.
	ErrEmptyQuestion = errors.New("question must not be empty")
)
