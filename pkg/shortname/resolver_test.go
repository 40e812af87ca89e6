package shortname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shortname/pkg/shortname"
)

func entries(names map[string]string) []shortname.Entry {
	out := make([]shortname.Entry, 0, len(names))
	for id, name := range names {
		out = append(out, shortname.Entry{ID: id, Candidates: shortname.Candidates(name)})
	}
	return out
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]string
		expected map[string]string
	}{
		{
			name:     "single entry gets its shortest form",
			input:    map[string]string{"1": "Mike Owens"},
			expected: map[string]string{"1": "Mike"},
		},
		{
			name:     "different first names",
			input:    map[string]string{"1": "Mike Owens", "2": "Jane Doe"},
			expected: map[string]string{"1": "Mike", "2": "Jane"},
		},
		{
			name:     "initials separate the pair",
			input:    map[string]string{"1": "Mike Owens", "2": "Mike Mikerson"},
			expected: map[string]string{"1": "Mike O.", "2": "Mike M."},
		},
		{
			name:     "shared initial falls through to full names",
			input:    map[string]string{"1": "Mike Owens", "2": "Mike Otherface"},
			expected: map[string]string{"1": "Mike Owens", "2": "Mike Otherface"},
		},
		{
			name:     "identical names are accepted duplicates",
			input:    map[string]string{"1": "Mike Owens", "2": "Mike Owens"},
			expected: map[string]string{"1": "Mike Owens", "2": "Mike Owens"},
		},
		{
			name: "special last name forms",
			input: map[string]string{
				"1": "Bobby McDonald",
				"2": "Bobby MacTrollface",
				"3": "Bobby Smith",
			},
			expected: map[string]string{
				"1": "Bobby McD.",
				"2": "Bobby MacT.",
				"3": "Bobby S.",
			},
		},
		{
			name: "middle initials break a tie on last initial",
			input: map[string]string{
				"1": "John Paul Jones",
				"2": "John Quincy Jones",
			},
			expected: map[string]string{
				"1": "John P. Jones",
				"2": "John Q. Jones",
			},
		},
		{
			name: "uncontested entries stay short",
			input: map[string]string{
				"1": "Mike Owens",
				"2": "Mike Mikerson",
				"3": "Jane Doe",
			},
			expected: map[string]string{
				"1": "Mike O.",
				"2": "Mike M.",
				"3": "Jane",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shortname.Resolve(entries(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolve_OrderIndependent(t *testing.T) {
	a := []shortname.Entry{
		{ID: "1", Candidates: shortname.Candidates("Mike Owens")},
		{ID: "2", Candidates: shortname.Candidates("Mike Mikerson")},
		{ID: "3", Candidates: shortname.Candidates("Mike Otherface")},
	}
	b := []shortname.Entry{a[2], a[0], a[1]}

	ra, err := shortname.Resolve(a)
	require.NoError(t, err)
	rb, err := shortname.Resolve(b)
	require.NoError(t, err)
	assert.Equal(t, ra, rb)
	assert.Equal(t, map[string]string{
		"1": "Mike Owens",
		"2": "Mike M.",
		"3": "Mike Otherface",
	}, ra)
}

func TestResolve_SingleCandidateBailsOut(t *testing.T) {
	got, err := shortname.Resolve([]shortname.Entry{
		{ID: "a", Candidates: []string{"Mike"}},
		{ID: "b", Candidates: shortname.Candidates("Mike Owens")},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "Mike", "b": "Mike O."}, got)
}

func TestResolve_AdvancingIntoAnotherHead(t *testing.T) {
	got, err := shortname.Resolve([]shortname.Entry{
		{ID: "a", Candidates: []string{"Mike", "Mike O.", "Mike Owens"}},
		{ID: "b", Candidates: []string{"Mike", "Mike O.", "Mike Otherface"}},
		{ID: "c", Candidates: []string{"Mike O.", "Mike Ozzy"}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"a": "Mike Owens",
		"b": "Mike Otherface",
		"c": "Mike Ozzy",
	}, got)
}

func TestResolve_Uniqueness(t *testing.T) {
	names := []string{
		"Mike Owens", "Mike Otherface", "Mike Mikerson", "Mike Owens",
		"Bobby McDonald", "Bobby MacTrollface", "Bobby Smith", "Bobby",
		"Ann Marie Smith-Jones", "Ann Smith-Jones", "Ann Marie Smith",
		"John Paul Jones", "John Peter Jones", "John Jones", "John",
	}

	in := make([]shortname.Entry, len(names))
	for i, n := range names {
		in[i] = shortname.Entry{ID: string(rune('a' + i)), Candidates: shortname.Candidates(n)}
	}

	got, err := shortname.Resolve(in)
	require.NoError(t, err)
	require.Len(t, got, len(names))

	for i := range in {
		for j := i + 1; j < len(in); j++ {
			vi, vj := got[in[i].ID], got[in[j].ID]
			if vi != vj {
				continue
			}
			// a shared value is only allowed once both are exhausted
			assert.Equal(t, in[i].Candidates[len(in[i].Candidates)-1], vi)
			assert.Equal(t, in[j].Candidates[len(in[j].Candidates)-1], vj)
		}
		assert.Contains(t, in[i].Candidates, got[in[i].ID])
	}
}

func TestResolveRounds(t *testing.T) {
	_, rounds, err := shortname.ResolveRounds(entries(map[string]string{"1": "Mike Owens"}))
	require.NoError(t, err)
	assert.Equal(t, 1, rounds)

	_, rounds, err = shortname.ResolveRounds(entries(map[string]string{"1": "Mike Owens", "2": "Mike Otherface"}))
	require.NoError(t, err)
	assert.Equal(t, 3, rounds)
}

func TestResolve_Errors(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		got, err := shortname.Resolve(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		_, err := shortname.Resolve([]shortname.Entry{{ID: "1"}})
		assert.ErrorIs(t, err, shortname.ErrEmptyCandidates)
	})

	t.Run("duplicate identity", func(t *testing.T) {
		_, err := shortname.Resolve([]shortname.Entry{
			{ID: "1", Candidates: []string{"Mike"}},
			{ID: "1", Candidates: []string{"Jane"}},
		})
		assert.ErrorIs(t, err, shortname.ErrDuplicateEntry)
	})
}
