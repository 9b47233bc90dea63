package commands

import (
	"context"
	"strings"

	"ripasso/internal/ports"
)

// fakeStore records statements and answers queries with canned rows.
type fakeStore struct {
	queries     []string
	queryParams [][]any
	mutations   []string
	mutParams   [][]any
	rows        []ports.Row
	mutateErr   error
}

func (s *fakeStore) Query(_ context.Context, query string, params ...any) []ports.Row {
	s.queries = append(s.queries, query)
	s.queryParams = append(s.queryParams, params)
	return s.rows
}

func (s *fakeStore) Mutate(_ context.Context, query string, params ...any) ([]ports.Row, error) {
	s.mutations = append(s.mutations, query)
	s.mutParams = append(s.mutParams, params)
	if s.mutateErr != nil {
		return nil, s.mutateErr
	}
	return []ports.Row{}, nil
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func snippetRow(id, reference string) ports.Row {
	return ports.Row{
		"id":        id,
		"reference": reference,
		"content":   "some content",
		"due":       int64(100),
		"interval":  1.0,
		"ease":      2.5,
		"dismissed": int64(0),
	}
}
