package audit

import (
	"errors"

	"github.com/uhppoted/uhppoted-app-usercheck/reference"
	"github.com/uhppoted/uhppoted-app-usercheck/workbook"
)

// CheckWorkbook runs the user checks for a single workbook and emits the
// findings to the sink. Problems with the workbook are reported as findings
// and never returned.
func CheckWorkbook(file string, wb *workbook.Workbook, ref *reference.Groups, sink Sink) {
	users, findings, err := ExtractUsers(file, wb)

	for _, f := range findings {
		sink.Emit(f)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrMissingUsersSheet):
			sink.Emit(warning(file, "", err, "No 'Users' sheet in %v", file))

		case errors.Is(err, ErrMissingUserIdColumn):
			sink.Emit(warning(file, users.Sheet, err, "'UserID' column missing in %v", file))

		default:
			sink.Emit(failure(file, "", err, "%v", err))
		}

		return
	}

	for _, f := range Compare(file, users, ref) {
		sink.Emit(f)
	}

	for _, f := range CrossCheck(file, wb, users) {
		sink.Emit(f)
	}
}
