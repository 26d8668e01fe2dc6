package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"Go", "sql"}, SplitWords("  Go sql\tGO  "))
	assert.Empty(t, SplitWords("   "))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"Minsk", "New York", "brest"}, SplitLines("Minsk\r\nNew York, brest\n\nminsk,"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Minsk", capitalize("mINSK"))
	assert.Equal(t, "New york", capitalize(" new YORK "))
	assert.Equal(t, "Łódź", capitalize("łódź"))
	assert.Equal(t, "", capitalize("  "))
}

func TestReferenceServiceAll(t *testing.T) {
	f := newFixture(t)
	refs, err := NewReferenceService(f.db).All(context.Background())
	require.NoError(t, err)

	require.Len(t, refs.Levels, 4)
	assert.Equal(t, "Intern", refs.Levels[0].Name)
	assert.Equal(t, "Armenia", refs.Countries[0].Name)
	assert.Len(t, refs.EmploymentFormats, 3)
	assert.Len(t, refs.WorkFormats, 6)
	assert.Len(t, refs.ResponseStatuses, 4)
	require.Len(t, refs.Roles, 2)
	assert.Equal(t, "candidate", refs.Roles[0].Name)
}
