package audit

import (
	"fmt"
)

type Severity int

const (
	Success Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Finding is a single reported result. Err is set for findings that
// correspond to an error in the taxonomy.
type Finding struct {
	Severity Severity
	File     string
	Sheet    string
	Message  string
	Users    []string
	Lists    []List
	Err      error
}

// List is a labelled list of user IDs attached to a finding e.g. the users
// missing from the reference table.
type List struct {
	Label string
	Users []string
}

// Sink receives findings in the order they are produced. Implementations may
// not retain or reorder them.
type Sink interface {
	Emit(f Finding)
}

// Findings is a Sink that collects findings in memory.
type Findings []Finding

func (ff *Findings) Emit(f Finding) {
	*ff = append(*ff, f)
}

func (ff Findings) Filter(severity Severity) Findings {
	list := Findings{}
	for _, f := range ff {
		if f.Severity == severity {
			list = append(list, f)
		}
	}

	return list
}

func success(file, sheet, format string, args ...any) Finding {
	return Finding{Severity: Success, File: file, Sheet: sheet, Message: fmt.Sprintf(format, args...)}
}

func info(file, sheet, format string, args ...any) Finding {
	return Finding{Severity: Info, File: file, Sheet: sheet, Message: fmt.Sprintf(format, args...)}
}

func warning(file, sheet string, err error, format string, args ...any) Finding {
	return Finding{Severity: Warning, File: file, Sheet: sheet, Message: fmt.Sprintf(format, args...), Err: err}
}

func failure(file, sheet string, err error, format string, args ...any) Finding {
	return Finding{Severity: Error, File: file, Sheet: sheet, Message: fmt.Sprintf(format, args...), Err: err}
}
