package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uhppoted/uhppoted-app-usercheck/gdrive"
	"github.com/uhppoted/uhppoted-app-usercheck/reference"
	"github.com/uhppoted/uhppoted-app-usercheck/workbook"
)

const SUMMARY_FOLDER = "summary"

// Drive is the cloud storage used to locate and fetch the workbooks.
type Drive interface {
	Folder(ctx context.Context, id string) (gdrive.Item, error)
	List(ctx context.Context, folder string) ([]gdrive.Item, error)
	Download(ctx context.Context, id string, path string) error
}

// Loader parses a local workbook file.
type Loader func(path string) (*workbook.Workbook, error)

// Auditor checks every workbook in the 'summary' subfolder of a Drive folder
// against the reference table, one workbook at a time.
type Auditor struct {
	Drive     Drive
	Load      Loader
	Reference *reference.Groups
	Sink      Sink
	Workdir   string
}

// Run processes the folder. Errors in individual workbooks are reported as
// findings and the run continues. A failure to read the folder structure ends
// the run, is reported as a single error finding and is returned wrapped in
// ErrFolderProcessing.
func (a *Auditor) Run(ctx context.Context, folder string) error {
	if err := a.run(ctx, folder); err != nil {
		wrapped := fmt.Errorf("%w (%v)", ErrFolderProcessing, err)
		a.Sink.Emit(failure("", "", wrapped, "Folder processing error: %v", err))

		return wrapped
	}

	return nil
}

func (a *Auditor) run(ctx context.Context, folder string) error {
	root, err := a.Drive.Folder(ctx, folder)
	if err != nil {
		return err
	}

	a.Sink.Emit(info("", "", "Processing folder: %v", root.Name))

	items, err := a.Drive.List(ctx, folder)
	if err != nil {
		return err
	}

	summary, ok := find(items)
	if !ok {
		a.Sink.Emit(warning("", "", nil, "No 'summary' subfolder found"))
		return nil
	}

	files, err := a.Drive.List(ctx, summary.ID)
	if err != nil {
		return err
	}

	tmp, err := os.MkdirTemp(a.Workdir, "usercheck-")
	if err != nil {
		return err
	}

	defer os.RemoveAll(tmp)

	for _, f := range files {
		if strings.HasSuffix(f.Name, ".xlsx") || strings.HasSuffix(f.Name, ".xls") {
			a.check(ctx, f, tmp)
		}
	}

	return nil
}

func (a *Auditor) check(ctx context.Context, f gdrive.Item, dir string) {
	path := filepath.Join(dir, f.ID+filepath.Ext(f.Name))

	wb, err := a.fetch(ctx, f, path)
	if err != nil {
		e := &WorkbookError{File: f.Name, Err: fmt.Errorf("%w (%v)", ErrWorkbookRead, err)}
		a.Sink.Emit(failure(f.Name, "", e, "Could not read %v: %v", f.Name, err))
		return
	}

	CheckWorkbook(f.Name, wb, a.Reference, a.Sink)
}

func (a *Auditor) fetch(ctx context.Context, f gdrive.Item, path string) (*workbook.Workbook, error) {
	defer os.Remove(path)

	if err := a.Drive.Download(ctx, f.ID, path); err != nil {
		return nil, err
	}

	return a.Load(path)
}

func find(items []gdrive.Item) (gdrive.Item, bool) {
	for _, item := range items {
		if item.IsFolder() && strings.ToLower(item.Name) == SUMMARY_FOLDER {
			return item, true
		}
	}

	return gdrive.Item{}, false
}
