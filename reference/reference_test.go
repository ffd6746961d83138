package reference

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	rows := []Row{
		{"B", "S1", "u4"},
		{"A", "S2", "u3"},
		{"A", "S1", "u1"},
		{"A", "S1", "u2"},
		{"A", "S1", "u1"},
	}

	expected := []Group{
		{Key{"A", "S1"}, []string{"u1", "u2", "u1"}},
		{Key{"A", "S2"}, []string{"u3"}},
		{Key{"B", "S1"}, []string{"u4"}},
	}

	groups, err := Build(rows)
	if err != nil {
		t.Fatalf("Unexpected error returned from Build (%v)", err)
	}

	if !reflect.DeepEqual(groups.List(), expected) {
		t.Errorf("Incorrect groups\n   expected: %v\n   got:      %v\n", expected, groups.List())
	}
}

func TestBuildPartitionsEveryRowOnce(t *testing.T) {
	rows := []Row{
		{"A", "S1", "u1"},
		{"B", "S2", "u2"},
		{"A", "S2", "u3"},
		{"A", "S1", "u1"},
		{"C", "S1", "u5"},
		{"B", "S2", "u6"},
	}

	groups, err := Build(rows)
	if err != nil {
		t.Fatalf("Unexpected error returned from Build (%v)", err)
	}

	count := map[string]int{}
	for _, row := range rows {
		count[row.UserID]++
	}

	for _, g := range groups.List() {
		for _, id := range g.UserIDs {
			count[id]--
		}
	}

	for id, n := range count {
		if n != 0 {
			t.Errorf("User %v: multiset mismatch (%v)", id, n)
		}
	}
}

func TestBuildTrimsValues(t *testing.T) {
	groups, err := Build([]Row{{" A ", "S1 ", " u1"}})
	if err != nil {
		t.Fatalf("Unexpected error returned from Build (%v)", err)
	}

	expected := []Group{
		{Key{"A", "S1"}, []string{"u1"}},
	}

	if !reflect.DeepEqual(groups.List(), expected) {
		t.Errorf("Incorrect groups\n   expected: %v\n   got:      %v\n", expected, groups.List())
	}
}

func TestBuildWithMissingAlgo(t *testing.T) {
	rows := []Row{
		{"A", "S1", "u1"},
		{"  ", "S1", "u2"},
	}

	if _, err := Build(rows); err == nil {
		t.Fatalf("Expected error for missing algo, got %v", err)
	} else if !errors.Is(err, ErrMissingKey) {
		t.Errorf("Incorrect error - expected:%v, got:%v", ErrMissingKey, err)
	}
}

func TestBuildWithMissingServer(t *testing.T) {
	if _, err := Build([]Row{{"A", "", "u1"}}); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Incorrect error - expected:%v, got:%v", ErrMissingKey, err)
	}
}

func TestByAlgoIgnoresServer(t *testing.T) {
	rows := []Row{
		{"A", "S1", "u1"},
		{"A", "S1", "u2"},
		{"A", "S2", "u3"},
		{"B", "S1", "u4"},
	}

	groups, err := Build(rows)
	if err != nil {
		t.Fatalf("Unexpected error returned from Build (%v)", err)
	}

	expected := []string{"u1", "u2", "u3"}
	if ids := groups.ByAlgo("A"); !reflect.DeepEqual(ids, expected) {
		t.Errorf("Incorrect user IDs for algo 'A'\n   expected: %v\n   got:      %v\n", expected, ids)
	}

	if ids := groups.ByAlgo("X"); len(ids) != 0 {
		t.Errorf("Expected no user IDs for algo 'X', got %v", ids)
	}
}
