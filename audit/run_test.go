package audit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/uhppoted/uhppoted-app-usercheck/gdrive"
	"github.com/uhppoted/uhppoted-app-usercheck/reference"
	"github.com/uhppoted/uhppoted-app-usercheck/workbook"
)

type fakeDrive struct {
	root       gdrive.Item
	folders    map[string][]gdrive.Item
	files      map[string][]byte
	downloaded []string
	err        error
}

func (d *fakeDrive) Folder(ctx context.Context, id string) (gdrive.Item, error) {
	if d.err != nil {
		return gdrive.Item{}, d.err
	}

	return d.root, nil
}

func (d *fakeDrive) List(ctx context.Context, folder string) ([]gdrive.Item, error) {
	if items, ok := d.folders[folder]; ok {
		return items, nil
	}

	return nil, fmt.Errorf("folder %v not found", folder)
}

func (d *fakeDrive) Download(ctx context.Context, id string, path string) error {
	bytes, ok := d.files[id]
	if !ok {
		return fmt.Errorf("file %v not found", id)
	}

	d.downloaded = append(d.downloaded, id)

	return os.WriteFile(path, bytes, 0600)
}

func xlsx(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		f.NewSheet(name)
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			f.SetSheetRow(name, cell, &row)
		}
	}

	f.DeleteSheet("Sheet1")

	b, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to create test workbook (%v)", err)
	}

	return b.Bytes()
}

func TestRun(t *testing.T) {
	good := xlsx(t, map[string][][]any{
		"Users":  {{"ALGO", "SERVER", "UserID"}, {"A", "S1", "u1"}, {"A", "S1", "u2"}},
		"Trades": {{"User ID"}, {"u1"}, {"u2"}},
	})

	drive := fakeDrive{
		root: gdrive.Item{ID: "root", Name: "Reports", MimeType: gdrive.FOLDER},
		folders: map[string][]gdrive.Item{
			"root": {
				{ID: "x", Name: "summary.xlsx", MimeType: "application/octet-stream"},
				{ID: "sum", Name: "Summary", MimeType: gdrive.FOLDER},
			},
			"sum": {
				{ID: "f1", Name: "corrupt.xlsx"},
				{ID: "f2", Name: "notes.txt"},
				{ID: "f3", Name: "good.xlsx"},
				{ID: "f4", Name: "upper.XLSX"},
			},
		},
		files: map[string][]byte{
			"f1": []byte("not a workbook"),
			"f2": []byte("text"),
			"f3": good,
			"f4": good,
		},
	}

	ref, _ := reference.Build([]reference.Row{
		{Algo: "A", Server: "S1", UserID: "u1"},
		{Algo: "A", Server: "S1", UserID: "u2"},
	})

	workdir := t.TempDir()
	findings := Findings{}
	auditor := Auditor{
		Drive:     &drive,
		Load:      workbook.Load,
		Reference: ref,
		Sink:      &findings,
		Workdir:   workdir,
	}

	if err := auditor.Run(context.Background(), "root"); err != nil {
		t.Fatalf("Unexpected error returned from Run (%v)", err)
	}

	if !reflect.DeepEqual(drive.downloaded, []string{"f1", "f3"}) {
		t.Errorf("Incorrect downloads - expected:%v, got:%v", []string{"f1", "f3"}, drive.downloaded)
	}

	got := messages(findings)
	expected := []string{
		"info: Processing folder: Reports",
		"error: Could not read corrupt.xlsx: ",
		"info: Found 2 users in 'Users'",
		"success: Users match reference for algo A",
		"success: Users match in 'Trades'",
	}

	if len(got) != len(expected) {
		t.Fatalf("Incorrect findings\n   expected: %q\n   got:      %q\n", expected, got)
	}

	for i := range expected {
		if !strings.HasPrefix(got[i], expected[i]) {
			t.Errorf("Incorrect finding %v - expected:%q, got:%q", i+1, expected[i], got[i])
		}
	}

	if !errors.Is(findings[1].Err, ErrWorkbookRead) || findings[1].File != "corrupt.xlsx" {
		t.Errorf("Expected ErrWorkbookRead for corrupt.xlsx, got %+v", findings[1])
	}

	if entries, _ := os.ReadDir(workdir); len(entries) != 0 {
		t.Errorf("Expected temporary files to be removed, got %v", entries)
	}
}

func TestRunWithoutSummaryFolder(t *testing.T) {
	drive := fakeDrive{
		root: gdrive.Item{ID: "root", Name: "Reports", MimeType: gdrive.FOLDER},
		folders: map[string][]gdrive.Item{
			"root": {
				{ID: "x", Name: "summaries", MimeType: gdrive.FOLDER},
			},
		},
	}

	findings := Findings{}
	auditor := Auditor{Drive: &drive, Load: workbook.Load, Sink: &findings, Workdir: t.TempDir()}

	if err := auditor.Run(context.Background(), "root"); err != nil {
		t.Fatalf("Unexpected error returned from Run (%v)", err)
	}

	expected := []string{
		"info: Processing folder: Reports",
		"warning: No 'summary' subfolder found",
	}

	if got := messages(findings); !reflect.DeepEqual(got, expected) {
		t.Errorf("Incorrect findings\n   expected: %q\n   got:      %q\n", expected, got)
	}
}

func TestRunWithMissingDownload(t *testing.T) {
	drive := fakeDrive{
		root: gdrive.Item{ID: "root", Name: "Reports", MimeType: gdrive.FOLDER},
		folders: map[string][]gdrive.Item{
			"root": {{ID: "sum", Name: "SUMMARY", MimeType: gdrive.FOLDER}},
			"sum":  {{ID: "f1", Name: "a.xls"}, {ID: "f2", Name: "b.xlsx"}},
		},
		files: map[string][]byte{
			"f2": []byte("b"),
		},
	}

	loaded := []string{}
	load := func(path string) (*workbook.Workbook, error) {
		loaded = append(loaded, filepath.Base(path))
		return book(workbook.NewSheet("Users", [][]string{{"UserID"}, {"u1"}})), nil
	}

	ref, _ := reference.Build(nil)
	findings := Findings{}
	auditor := Auditor{Drive: &drive, Load: load, Reference: ref, Sink: &findings, Workdir: t.TempDir()}

	if err := auditor.Run(context.Background(), "root"); err != nil {
		t.Fatalf("Unexpected error returned from Run (%v)", err)
	}

	if !reflect.DeepEqual(loaded, []string{"f2.xlsx"}) {
		t.Errorf("Incorrect workbooks loaded - expected:%v, got:%v", []string{"f2.xlsx"}, loaded)
	}

	if errs := findings.Filter(Error); len(errs) != 1 || errs[0].File != "a.xls" || !errors.Is(errs[0].Err, ErrWorkbookRead) {
		t.Errorf("Expected ErrWorkbookRead for a.xls, got %+v", errs)
	}

	if warnings := findings.Filter(Warning); len(warnings) != 1 || warnings[0].Message != "No ALGO in Users sheet" {
		t.Errorf("Expected 'No ALGO' warning for b.xlsx, got %+v", warnings)
	}
}

func TestRunWithFolderError(t *testing.T) {
	drive := fakeDrive{
		err: fmt.Errorf("403 forbidden"),
	}

	findings := Findings{}
	auditor := Auditor{Drive: &drive, Load: workbook.Load, Sink: &findings, Workdir: t.TempDir()}

	err := auditor.Run(context.Background(), "root")
	if !errors.Is(err, ErrFolderProcessing) {
		t.Fatalf("Expected ErrFolderProcessing, got %v", err)
	}

	if len(findings) != 1 || findings[0].Severity != Error || !errors.Is(findings[0].Err, ErrFolderProcessing) {
		t.Fatalf("Expected single folder processing error finding, got %+v", findings)
	}

	if expected := "Folder processing error: 403 forbidden"; findings[0].Message != expected {
		t.Errorf("Incorrect message - expected:%q, got:%q", expected, findings[0].Message)
	}
}
