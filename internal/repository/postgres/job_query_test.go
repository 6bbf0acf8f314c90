package postgres

import (
	"math"
	"testing"

	"job-catalog-api/internal/domain"
	"job-catalog-api/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const textMatch = `(titulo LIKE $1 ESCAPE '\' OR empresa LIKE $1 ESCAPE '\')`

func TestBuildListQuery(t *testing.T) {
	cases := []struct {
		name       string
		filter     domain.JobFilter
		wantSelect string
		wantCount  string
		wantArgs   []any
		wantOffset int
	}{
		{
			name:       "no predicates",
			filter:     domain.JobFilter{Page: 1, PageSize: 10},
			wantSelect: "SELECT " + jobColumns + " FROM jobs ORDER BY id DESC LIMIT $1 OFFSET $2",
			wantCount:  "SELECT COUNT(*) FROM jobs",
			wantArgs:   nil,
			wantOffset: 0,
		},
		{
			name:       "text filter spans titulo and empresa",
			filter:     domain.JobFilter{Query: "Acme", Page: 2, PageSize: 5},
			wantSelect: "SELECT " + jobColumns + " FROM jobs WHERE " + textMatch + " ORDER BY id DESC LIMIT $2 OFFSET $3",
			wantCount:  "SELECT COUNT(*) FROM jobs WHERE " + textMatch,
			wantArgs:   []any{"%Acme%"},
			wantOffset: 5,
		},
		{
			name: "all predicates are ANDed",
			filter: domain.JobFilter{
				Query:        "Acme",
				WorkMode:     domain.WorkModeRemote,
				ContractType: domain.ContractFreelance,
				Page:         3,
				PageSize:     20,
			},
			wantSelect: "SELECT " + jobColumns + " FROM jobs WHERE " + textMatch + " AND modalidad = $2 AND tipo = $3 ORDER BY id DESC LIMIT $4 OFFSET $5",
			wantCount:  "SELECT COUNT(*) FROM jobs WHERE " + textMatch + " AND modalidad = $2 AND tipo = $3",
			wantArgs:   []any{"%Acme%", "Remote", "Freelance"},
			wantOffset: 40,
		},
		{
			name:       "enum filters without text",
			filter:     domain.JobFilter{ContractType: domain.ContractPartTime, Page: 1, PageSize: 100},
			wantSelect: "SELECT " + jobColumns + " FROM jobs WHERE tipo = $1 ORDER BY id DESC LIMIT $2 OFFSET $3",
			wantCount:  "SELECT COUNT(*) FROM jobs WHERE tipo = $1",
			wantArgs:   []any{"Part-Time"},
			wantOffset: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := buildListQuery(tc.filter)
			assert.False(t, q.PastEnd)
			assert.Equal(t, tc.wantSelect, q.Select)
			assert.Equal(t, tc.wantCount, q.Count)
			assert.Equal(t, tc.wantArgs, q.CountArgs)

			wantSelectArgs := append(append([]any{}, tc.wantArgs...), tc.filter.PageSize, tc.wantOffset)
			assert.Equal(t, wantSelectArgs, q.SelectArgs)
		})
	}
}

func TestBuildListQueryEscapesPatternCharacters(t *testing.T) {
	cases := map[string]string{
		"a_b":      `%a\_b%`,
		"50%":      `%50\%%`,
		`50\`:      `%50\\%`,
		`C:\_x%`:   `%C:\\\_x\%%`,
		"plain":    "%plain%",
		"ñandú 10": "%ñandú 10%",
	}
	for in, want := range cases {
		q := buildListQuery(domain.JobFilter{Query: in, Page: 1, PageSize: 10})
		assert.Equal(t, []any{want}, q.CountArgs, in)
		assert.Equal(t, want, q.SelectArgs[0], in)
	}
}

func TestBuildListQueryPageBeyondAddressableRows(t *testing.T) {
	f := domain.JobFilter{Query: "Acme", Page: math.MaxInt/100 + 2, PageSize: 100}

	require.NoError(t, validation.New().Struct(f))

	q := buildListQuery(f)
	assert.True(t, q.PastEnd)
	assert.Empty(t, q.Select)
	assert.Nil(t, q.SelectArgs)
	assert.Equal(t, "SELECT COUNT(*) FROM jobs WHERE "+textMatch, q.Count)
	assert.Equal(t, []any{"%Acme%"}, q.CountArgs)
}
