package compare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csv(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

func TestExportsEqual(t *testing.T) {
	a := csv(`"ID","Cost"`, `"1","10"`)
	res := Exports(a, strings.ReplaceAll(a, "\n", "\r\n"), 3)
	assert.True(t, res.Equal())
	assert.Empty(t, res.Hunks)
	assert.False(t, res.HeaderChanged)
}

func TestExportsChangedRow(t *testing.T) {
	old := csv(`"ID","Cost"`, `"1","10"`, `"2","20"`, `"3","30"`)
	cur := csv(`"ID","Cost"`, `"1","10"`, `"2","25"`, `"3","30"`)

	res := Exports(old, cur, 1)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	require.Len(t, res.Hunks, 1)

	h := res.Hunks[0]
	assert.Equal(t, 2, h.OldStart)
	assert.Equal(t, 2, h.NewStart)
	assert.Equal(t, 3, h.OldCount)
	assert.Equal(t, 3, h.NewCount)
	assert.Equal(t, []Line{
		{LineContext, `"1","10"`},
		{LineDelete, `"2","20"`},
		{LineAdd, `"2","25"`},
		{LineContext, `"3","30"`},
	}, h.Lines)
}

func TestExportsSeparateHunks(t *testing.T) {
	old := csv("h", "a", "b", "c", "d", "e", "f", "g")
	cur := csv("h", "A", "b", "c", "d", "e", "f", "G")

	res := Exports(old, cur, 1)
	require.Len(t, res.Hunks, 2)
	assert.Equal(t, 1, res.Hunks[0].OldStart)
	assert.Equal(t, "h", res.Hunks[0].Lines[0].Content)
	assert.Equal(t, "b", res.Hunks[0].Lines[len(res.Hunks[0].Lines)-1].Content)
	assert.Equal(t, 7, res.Hunks[1].OldStart)
	assert.Equal(t, "f", res.Hunks[1].Lines[0].Content)
}

func TestExportsHeaderChanged(t *testing.T) {
	res := Exports(csv("a,b", "1,2"), csv("a,c", "1,2"), 0)
	assert.True(t, res.HeaderChanged)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
}

func TestExportsAppend(t *testing.T) {
	res := Exports(csv("h", "1"), "h\n1\n2", 0)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 0, res.Removed)
	require.Len(t, res.Hunks, 1)
	assert.Equal(t, []Line{{LineAdd, "2"}}, res.Hunks[0].Lines)
	assert.Equal(t, 3, res.Hunks[0].NewStart)
}
