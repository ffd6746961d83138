package audit

import (
	"errors"
	"fmt"
)

var (
	ErrFolderProcessing    = errors.New("folder processing error")
	ErrWorkbookRead        = errors.New("could not read workbook")
	ErrMissingUsersSheet   = errors.New("no 'Users' sheet")
	ErrMissingUserIdColumn = errors.New("'UserID' column missing")
	ErrAmbiguousAlgo       = errors.New("invalid algos")
	ErrAmbiguousServer     = errors.New("invalid servers")
)

// WorkbookError identifies the workbook (and optionally the worksheet) an
// error applies to.
type WorkbookError struct {
	File  string
	Sheet string
	Err   error
}

func (e *WorkbookError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%v '%v': %v", e.File, e.Sheet, e.Err)
	}

	return fmt.Sprintf("%v: %v", e.File, e.Err)
}

func (e *WorkbookError) Unwrap() error {
	return e.Err
}
