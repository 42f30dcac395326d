package scrub

import (
	"errors"
	"fmt"
)

// ErrTempExists is returned when the temp path for a file is already taken,
// usually by another input in the same directory.
var ErrTempExists = errors.New("temp file already exists")

// PageRedactionError means one page could not be redacted. The page is
// dropped and the rest of the file is still processed.
type PageRedactionError struct {
	Page int
	Err  error
}

func (e *PageRedactionError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageRedactionError) Unwrap() error { return e.Err }

// DocumentOpenError means the file could not be read as a PDF.
type DocumentOpenError struct {
	Path string
	Err  error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// DocumentSaveError means the cleaned document could not be written.
type DocumentSaveError struct {
	Path string
	Op   string
	Err  error
}

func (e *DocumentSaveError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentSaveError) Unwrap() error { return e.Err }

// ReplacementError means swapping the cleaned file into place failed. The
// original may be missing and the temp file may still be on disk.
type ReplacementError struct {
	Path string
	Temp string
	Err  error
}

func (e *ReplacementError) Error() string {
	return fmt.Sprintf("replace %s with %s: %v", e.Path, e.Temp, e.Err)
}

func (e *ReplacementError) Unwrap() error { return e.Err }
