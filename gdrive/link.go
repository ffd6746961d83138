package gdrive

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidLink = errors.New("invalid Google Drive folder link")

var folderID = regexp.MustCompile(`(?:folders/|id=)([a-zA-Z0-9_-]+)`)

// ResolveFolderID extracts the folder ID from a Google Drive folder link, e.g.
// https://drive.google.com/drive/folders/<id> or ...?id=<id>. The first match
// wins.
func ResolveFolderID(link string) (string, error) {
	match := folderID.FindStringSubmatch(strings.TrimSpace(link))
	if len(match) < 2 {
		return "", ErrInvalidLink
	}

	return match[1], nil
}

var spreadsheetID = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// ResolveSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
func ResolveSpreadsheetID(url string) (string, error) {
	match := spreadsheetID.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", errors.New("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}
