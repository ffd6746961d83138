package reference

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
)

const (
	ALGO   = "algo"
	SERVER = "server"
	USERID = "userId"
)

// ReadCSV reads a reference table with (at least) the 'algo', 'server' and
// 'userId' columns. Header names are case sensitive. A leading UTF-8 byte-order
// mark (as written by Excel 'CSV UTF-8' exports) is skipped.
func ReadCSV(f io.Reader) ([]Row, error) {
	b := bufio.NewReader(f)
	if ch, _, err := b.ReadRune(); err != nil && err != io.EOF {
		return nil, err
	} else if err == nil && ch != '\ufeff' {
		b.UnreadRune()
	}

	r := csv.NewReader(b)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	return makeRows(records)
}

// FromValues converts the cells of a worksheet range (e.g. a Google Sheets
// ValueRange) to reference rows. The first row is the header.
func FromValues(values [][]any) ([]Row, error) {
	records := make([][]string, 0, len(values))
	for _, row := range values {
		record := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				record[i] = fmt.Sprintf("%v", v)
			}
		}

		records = append(records, record)
	}

	return makeRows(records)
}

func makeRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("Empty reference table")
	}

	// .. build index
	index := map[string]int{}
	for i, v := range records[0] {
		if _, ok := index[v]; !ok {
			index[v] = i
		}
	}

	for _, column := range []string{ALGO, SERVER, USERID} {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("Missing '%s' column", column)
		}
	}

	// ... records
	rows := []Row{}
	for _, record := range records[1:] {
		if blank(record) {
			continue
		}

		rows = append(rows, Row{
			Algo:   cell(record, index[ALGO]),
			Server: cell(record, index[SERVER]),
			UserID: cell(record, index[USERID]),
		})
	}

	return rows, nil
}

func cell(record []string, ix int) string {
	if ix < len(record) {
		return clean(record[ix])
	}

	return ""
}

func blank(record []string) bool {
	for _, v := range record {
		if clean(v) != "" {
			return false
		}
	}

	return true
}
