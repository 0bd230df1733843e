package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_SurvivesFilter(t *testing.T) {
	tbl := itemTable(t, tenItems(), Options[item]{})

	on, err := tbl.ToggleRow("3")
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, tbl.SetFilter("id", "7"))
	assert.NotContains(t, tbl.RowKeys(), "3")
	assert.True(t, tbl.IsSelected("3"))
	assert.Equal(t, []int{3}, ids(tbl.SelectedRows()))

	tbl.ClearFilter("id")
	assert.True(t, tbl.IsSelected("3"))
}

func TestSelection_PageScopedSelectAll(t *testing.T) {
	tbl := itemTable(t, tenItems(), Options[item]{Pagination: &Pagination{PageSize: 5, CurrentPage: 1}})

	require.NoError(t, tbl.ToggleSelectAllVisible())
	assert.Equal(t, 5, tbl.SelectedCount())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, tbl.SelectedKeys())
	assert.True(t, tbl.AllVisibleSelected())

	// page 2 is untouched
	require.NoError(t, tbl.SetPagination(&Pagination{PageSize: 5, CurrentPage: 2}))
	assert.False(t, tbl.AllVisibleSelected())

	// toggling again on page 1 deselects only page 1
	require.NoError(t, tbl.SetPagination(&Pagination{PageSize: 5, CurrentPage: 1}))
	_, _ = tbl.ToggleRow("9")
	require.NoError(t, tbl.ToggleSelectAllVisible())
	assert.Equal(t, []string{"9"}, tbl.SelectedKeys())
}

func TestSelection_SelectAllUsesSortedPage(t *testing.T) {
	tbl := itemTable(t, tenItems(), Options[item]{Pagination: &Pagination{PageSize: 3, CurrentPage: 1}})
	require.NoError(t, tbl.SetSort(SortState{Key: "id", Direction: SortDescending}))
	require.NoError(t, tbl.ToggleSelectAllVisible())
	assert.Equal(t, []string{"8", "9", "10"}, tbl.SelectedKeys())
}

func TestSelection_PartialPageSelectsRemaining(t *testing.T) {
	tbl := itemTable(t, tenItems(), Options[item]{Pagination: &Pagination{PageSize: 5, CurrentPage: 1}})
	_, _ = tbl.ToggleRow("2")
	require.NoError(t, tbl.ToggleSelectAllVisible())
	assert.Equal(t, 5, tbl.SelectedCount())
}

func TestSelection_CallbackReceivesFullRows(t *testing.T) {
	var calls [][]item
	tbl := itemTable(t, tenItems(), Options[item]{
		OnSelectionChange: func(rows []item) { calls = append(calls, rows) },
	})

	require.NoError(t, tbl.SelectRows("4", "2"))
	require.Len(t, calls, 1)
	assert.Equal(t, []item{{ID: 2, V: 3}, {ID: 4, V: 1}}, calls[0])

	// no change, no callback
	require.NoError(t, tbl.SelectRows("2"))
	assert.Len(t, calls, 1)

	require.NoError(t, tbl.DeselectRows("2"))
	assert.Equal(t, []item{{ID: 4, V: 1}}, calls[1])
}

func TestSelection_PrunedOnSetData(t *testing.T) {
	var last []item
	tbl := itemTable(t, tenItems(), Options[item]{OnSelectionChange: func(rows []item) { last = rows }})
	require.NoError(t, tbl.SelectRows("1", "10"))

	require.NoError(t, tbl.SetData(tenItems()[:5]))
	assert.Equal(t, []string{"1"}, tbl.SelectedKeys())
	assert.Equal(t, []int{1}, ids(last))
}

func TestSelection_Errors(t *testing.T) {
	tbl := itemTable(t, tenItems(), Options[item]{})
	_, err := tbl.ToggleRow("99")
	assert.ErrorIs(t, err, ErrUnknownRow)
	assert.ErrorIs(t, tbl.SelectRows("1", "99"), ErrUnknownRow)
	assert.Zero(t, tbl.SelectedCount())

	off := itemTable(t, tenItems(), Options[item]{Features: &Features{}})
	_, err = off.ToggleRow("1")
	assert.ErrorIs(t, err, ErrFeatureDisabled)
	assert.ErrorIs(t, off.ToggleSelectAllVisible(), ErrFeatureDisabled)
}

func TestSelection_EmptyPageIsNotAllSelected(t *testing.T) {
	tbl := itemTable(t, nil, Options[item]{})
	assert.False(t, tbl.AllVisibleSelected())
	require.NoError(t, tbl.ToggleSelectAllVisible())
	assert.Zero(t, tbl.SelectedCount())
}

func TestBulkActions(t *testing.T) {
	var archived []int
	tbl := itemTable(t, tenItems(), Options[item]{
		BulkActions: []BulkAction[item]{
			{Label: "Archive", Variant: VariantDanger, OnClick: func(rows []item) { archived = ids(rows) }},
		},
	})
	require.NoError(t, tbl.SelectRows("5", "6"))
	require.NoError(t, tbl.RunBulkAction("Archive"))
	assert.Equal(t, []int{5, 6}, archived)
	assert.ErrorIs(t, tbl.RunBulkAction("Delete"), ErrUnknownAction)
	assert.Len(t, tbl.BulkActions(), 1)
}
