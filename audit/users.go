package audit

import (
	"github.com/uhppoted/uhppoted-app-usercheck/workbook"
)

const (
	USERS_SHEET = "users"
	ALGO        = "ALGO"
	SERVER      = "SERVER"
	USERID      = "UserID"
)

// Users is the canonical user roster of a workbook, taken from the 'Users'
// sheet. A blank UserID is a member of IDs. Algos and Servers are the distinct
// non-blank ALGO and SERVER values in row order.
type Users struct {
	Sheet   string
	IDs     IDSet
	Algos   []string
	Servers []string
}

// ExtractUsers locates the 'Users' sheet (case and whitespace insensitive) and
// builds the workbook user set. More than one ALGO or SERVER value is reported
// as an error finding but is not fatal. A missing sheet or 'UserID' column is
// returned as an error and ends the checks for the workbook.
func ExtractUsers(file string, wb *workbook.Workbook) (*Users, []Finding, error) {
	sheet, ok := wb.Find(USERS_SHEET)
	if !ok {
		return nil, nil, &WorkbookError{File: file, Err: ErrMissingUsersSheet}
	}

	findings := []Finding{}
	users := Users{
		Sheet:   sheet.Name,
		IDs:     IDSet{},
		Algos:   distinct(sheet, ALGO),
		Servers: distinct(sheet, SERVER),
	}

	if len(users.Algos) > 1 {
		findings = append(findings, failure(file, sheet.Name, ErrAmbiguousAlgo, "%v invalid algos", len(users.Algos)))
	}

	if len(users.Servers) > 1 {
		findings = append(findings, failure(file, sheet.Name, ErrAmbiguousServer, "%v invalid servers", len(users.Servers)))
	}

	ids, ok := sheet.Column(USERID)
	if !ok {
		return &users, findings, &WorkbookError{File: file, Sheet: sheet.Name, Err: ErrMissingUserIdColumn}
	}

	users.IDs = newUserSet(ids...)

	findings = append(findings, info(file, sheet.Name, "Found %v users in '%v'", len(users.IDs), sheet.Name))

	return &users, findings, nil
}

func distinct(sheet *workbook.Sheet, column string) []string {
	list := []string{}
	values, ok := sheet.Column(column)
	if !ok {
		return list
	}

	seen := map[string]bool{}
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			list = append(list, v)
		}
	}

	return list
}
