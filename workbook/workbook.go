package workbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the list of worksheets in a spreadsheet file, in file order.
type Workbook struct {
	Name   string
	Sheets []*Sheet
}

// Sheet is a worksheet as a table: the first row is the header, the remaining
// rows are the records. Cell values are kept as text.
type Sheet struct {
	Name    string
	Header  []string
	Records [][]string
	index   map[string]int
}

// Load parses an OOXML workbook into a Workbook. Cells are read raw i.e.
// without number formatting.
func Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	wb := Workbook{
		Name:   filepath.Base(path),
		Sheets: []*Sheet{},
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("error reading worksheet '%s' (%w)", name, err)
		}

		wb.Sheets = append(wb.Sheets, NewSheet(name, rows))
	}

	return &wb, nil
}

func NewSheet(name string, rows [][]string) *Sheet {
	sheet := Sheet{
		Name:    name,
		Header:  []string{},
		Records: [][]string{},
		index:   map[string]int{},
	}

	if len(rows) == 0 {
		return &sheet
	}

	// .. build index
	sheet.Header = rows[0]
	for i, v := range rows[0] {
		if _, ok := sheet.index[v]; !ok {
			sheet.index[v] = i
		}
	}

	for _, row := range rows[1:] {
		if !blank(row) {
			sheet.Records = append(sheet.Records, row)
		}
	}

	return &sheet
}

// Find returns the first worksheet whose trimmed, lowercased name matches.
func (w *Workbook) Find(name string) (*Sheet, bool) {
	for _, s := range w.Sheets {
		if strings.ToLower(strings.TrimSpace(s.Name)) == strings.ToLower(strings.TrimSpace(name)) {
			return s, true
		}
	}

	return nil, false
}

// Column returns the normalised value of the column for every record. Header
// matching is exact. Cells missing from short rows are returned as "".
func (s *Sheet) Column(column string) ([]string, bool) {
	ix, ok := s.index[column]
	if !ok {
		return nil, false
	}

	values := make([]string, 0, len(s.Records))
	for _, record := range s.Records {
		if ix < len(record) {
			values = append(values, Normalise(record[ix]))
		} else {
			values = append(values, "")
		}
	}

	return values, true
}

// Normalise returns the canonical text of a cell value. Normalising an
// already normalised value returns it unchanged.
func Normalise(v string) string {
	return strings.TrimSpace(v)
}

func blank(row []string) bool {
	for _, v := range row {
		if Normalise(v) != "" {
			return false
		}
	}

	return true
}
