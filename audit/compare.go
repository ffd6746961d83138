package audit

import (
	"github.com/uhppoted/uhppoted-app-usercheck/reference"
)

// Compare checks the workbook user set against the reference users for the
// first ALGO value on the 'Users' sheet. The reference lookup is by algo only
// i.e. the users for every server running the algo are included.
func Compare(file string, users *Users, ref *reference.Groups) []Finding {
	if len(users.Algos) == 0 {
		return []Finding{
			warning(file, users.Sheet, nil, "No ALGO in Users sheet"),
		}
	}

	algo := users.Algos[0]
	expected := NewIDSet(ref.ByAlgo(algo)...)

	if expected.Equal(users.IDs) {
		return []Finding{
			success(file, "", "Users match reference for algo %v", algo),
		}
	}

	f := warning(file, "", nil, "Users do not match reference for algo %v", algo)

	if missing := users.IDs.Minus(expected); len(missing) > 0 {
		f.Lists = append(f.Lists, List{Label: "Missing from reference", Users: missing})
	}

	if extra := expected.Minus(users.IDs); len(extra) > 0 {
		f.Lists = append(f.Lists, List{Label: "Extra in reference", Users: extra})
	}

	return []Finding{f}
}
