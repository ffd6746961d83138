package reference

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrMissingKey = errors.New("missing algo/server")

// Row is a single line of the uploaded reference table.
type Row struct {
	Algo   string
	Server string
	UserID string
}

type Key struct {
	Algo   string
	Server string
}

// Group is the ordered list of user IDs for one (algo, server) pair. Duplicates
// are preserved as given.
type Group struct {
	Key
	UserIDs []string
}

// Groups is the reference table grouped by (algo, server). It is built once
// per run and never modified afterwards.
type Groups struct {
	groups []Group
}

// Build partitions the reference rows by (algo, server), preserving row order
// within each group. Rows with a blank algo or server are rejected.
func Build(rows []Row) (*Groups, error) {
	g := Groups{
		groups: []Group{},
	}

	index := map[Key]int{}

	for i, row := range rows {
		if clean(row.Algo) == "" || clean(row.Server) == "" {
			return nil, fmt.Errorf("row %v: %w", i+1, ErrMissingKey)
		}

		k := Key{Algo: clean(row.Algo), Server: clean(row.Server)}
		ix, ok := index[k]
		if !ok {
			ix = len(g.groups)
			index[k] = ix
			g.groups = append(g.groups, Group{Key: k, UserIDs: []string{}})
		}

		g.groups[ix].UserIDs = append(g.groups[ix].UserIDs, clean(row.UserID))
	}

	sort.SliceStable(g.groups, func(i, j int) bool {
		p, q := g.groups[i].Key, g.groups[j].Key
		if p.Algo != q.Algo {
			return p.Algo < q.Algo
		}
		return p.Server < q.Server
	})

	return &g, nil
}

// List returns the groups ordered by (algo, server).
func (g *Groups) List() []Group {
	return g.groups
}

// ByAlgo returns the user IDs of every group for the algo, across all servers,
// in (server, row) order. The server is ignored.
func (g *Groups) ByAlgo(algo string) []string {
	list := []string{}
	for _, group := range g.groups {
		if group.Algo == algo {
			list = append(list, group.UserIDs...)
		}
	}

	return list
}

func (g *Groups) Len() int {
	return len(g.groups)
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
