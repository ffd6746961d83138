package gdrive

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GetValues retrieves the cell values for a range in a Google Sheets
// spreadsheet.
func GetValues(ctx context.Context, spreadsheet string, area string, options ...option.ClientOption) ([][]any, error) {
	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	response, err := google.Spreadsheets.Values.Get(spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	if len(response.Values) == 0 {
		return nil, fmt.Errorf("no data in spreadsheet/range")
	}

	return response.Values, nil
}
