package audit

import (
	"github.com/uhppoted/uhppoted-app-usercheck/workbook"
)

const USER_ID = "User ID"

// CrossCheck compares the 'User ID' column of every worksheet other than the
// 'Users' sheet against the workbook user set. Worksheets are checked in
// workbook order.
func CrossCheck(file string, wb *workbook.Workbook, users *Users) []Finding {
	findings := []Finding{}

	for _, sheet := range wb.Sheets {
		if sheet.Name == users.Sheet {
			continue
		}

		findings = append(findings, checkSheet(file, sheet, users.IDs)...)
	}

	return findings
}

func checkSheet(file string, sheet *workbook.Sheet, users IDSet) []Finding {
	values, ok := sheet.Column(USER_ID)
	if !ok {
		return []Finding{
			info(file, sheet.Name, "Skipping '%v' (no User ID)", sheet.Name),
		}
	}

	findings := []Finding{}
	present := NewIDSet(values...)
	missing := users.Minus(present)
	extra := present.Minus(users)

	for _, id := range missing {
		f := warning(file, sheet.Name, nil, "User %v missing in '%v'", id, sheet.Name)
		f.Users = []string{id}
		findings = append(findings, f)
	}

	for _, id := range extra {
		f := warning(file, sheet.Name, nil, "User %v extra in '%v'", id, sheet.Name)
		f.Users = []string{id}
		findings = append(findings, f)
	}

	if len(missing) == 0 && len(extra) == 0 {
		findings = append(findings, success(file, sheet.Name, "Users match in '%v'", sheet.Name))
	}

	return findings
}
