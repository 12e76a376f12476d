package warehouse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *Repo) {
	t.Helper()
	repo := newTestRepo(t)
	return NewService(repo), repo
}

func TestAddress(t *testing.T) {
	tests := []struct {
		format   AddressFormat
		group    string
		row, col int
		want     string
	}{
		{AddressRowCol, "A", 0, 0, "A-1-1"},
		{AddressRowCol, "A", 1, 2, "A-2-3"},
		{AddressLetterNumber, "B", 0, 0, "B-A-1"},
		{AddressLetterNumber, "B", 1, 0, "B-B-1"},
		{AddressLetterNumber, "Z9", 25, 9, "Z9-Z-10"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Address(tc.format, tc.group, tc.row, tc.col))
		})
	}
}

func TestCreateLayoutRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.CreateLayout("  hall 7  ", 6, 9)
	require.NoError(t, err)
	require.NotZero(t, l.ID)

	got, err := svc.Layout(l.ID)
	require.NoError(t, err)
	assert.Equal(t, "hall 7", got.Name)
	assert.Equal(t, 6, got.Rows)
	assert.Equal(t, 9, got.Columns)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateLayoutValidation(t *testing.T) {
	svc, repo := newTestService(t)

	tests := []struct {
		name    string
		rows    int
		columns int
	}{
		{"", 3, 3},
		{"   ", 3, 3},
		{"hall", 0, 3},
		{"hall", 3, 0},
		{"hall", -1, -1},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%q_%dx%d", tc.name, tc.rows, tc.columns), func(t *testing.T) {
			_, err := svc.CreateLayout(tc.name, tc.rows, tc.columns)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	// rejected input never reaches the store
	ls, err := repo.ListLayouts()
	require.NoError(t, err)
	assert.Empty(t, ls)
}

func TestCreateGroupGeneratesFullGrid(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.CreateLayout("hall", 8, 8)
	require.NoError(t, err)

	g, err := svc.CreateGroup(l.ID, GroupSpec{Name: "A", Column: 2, Rows: 3, Columns: 4})
	require.NoError(t, err)
	require.NotZero(t, g.ID)
	assert.Equal(t, l.ID, g.LayoutID)

	locs, err := svc.LocationsByGroup(g.ID)
	require.NoError(t, err)
	require.Len(t, locs, 12)

	seen := map[[2]int]bool{}
	for _, loc := range locs {
		assert.Equal(t, g.ID, loc.GroupID)
		assert.Equal(t, l.ID, loc.LayoutID)
		assert.GreaterOrEqual(t, loc.Row, 0)
		assert.Less(t, loc.Row, 3)
		assert.GreaterOrEqual(t, loc.Column, 0)
		assert.Less(t, loc.Column, 4)
		assert.False(t, loc.IsOccupied)
		assert.Equal(t, fmt.Sprintf("A-%d-%d", loc.Row+1, loc.Column+1), loc.Address)
		cell := [2]int{loc.Row, loc.Column}
		assert.False(t, seen[cell], "duplicate cell %v", cell)
		seen[cell] = true
	}
	assert.Len(t, seen, 12)
}

func TestCreateGroupLetterNumberAddresses(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.CreateLayout("hall", 4, 4)
	require.NoError(t, err)
	g, err := svc.CreateGroup(l.ID, GroupSpec{
		Name: "B", Column: 1, Rows: 2, Columns: 1,
		AddressFormat: AddressLetterNumber,
	})
	require.NoError(t, err)

	locs, err := svc.LocationsByGroup(g.ID)
	require.NoError(t, err)
	require.Len(t, locs, 2)

	addrs := map[string]bool{}
	for _, loc := range locs {
		addrs[loc.Address] = true
	}
	assert.True(t, addrs["B-A-1"])
	assert.True(t, addrs["B-B-1"])
}

func TestCreateGroupValidation(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.CreateLayout("hall", 4, 5)
	require.NoError(t, err)

	tests := []struct {
		name string
		spec GroupSpec
	}{
		{"empty name", GroupSpec{Name: " ", Column: 1, Rows: 1, Columns: 1}},
		{"zero rows", GroupSpec{Name: "A", Column: 1, Rows: 0, Columns: 1}},
		{"zero columns", GroupSpec{Name: "A", Column: 1, Rows: 1, Columns: 0}},
		{"column below range", GroupSpec{Name: "A", Column: 0, Rows: 1, Columns: 1}},
		{"column above range", GroupSpec{Name: "A", Column: 6, Rows: 1, Columns: 1}},
		{"letter rows overflow", GroupSpec{Name: "A", Column: 1, Rows: 27, Columns: 1, AddressFormat: AddressLetterNumber}},
		{"unknown format", GroupSpec{Name: "A", Column: 1, Rows: 1, Columns: 1, AddressFormat: "HEX"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateGroup(l.ID, tc.spec)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	// 26 letter rows is the boundary and still fine
	_, err = svc.CreateGroup(l.ID, GroupSpec{
		Name: "Z", Column: 1, Rows: 26, Columns: 1,
		AddressFormat: AddressLetterNumber,
	})
	assert.NoError(t, err)

	_, err = svc.CreateGroup(9999, GroupSpec{Name: "A", Column: 1, Rows: 1, Columns: 1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSetOccupiedFlipsOnlyThatFlag(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.CreateLayout("hall", 4, 4)
	require.NoError(t, err)
	g, err := svc.CreateGroup(l.ID, GroupSpec{Name: "A", Column: 1, Rows: 1, Columns: 2})
	require.NoError(t, err)
	locs, err := svc.LocationsByGroup(g.ID)
	require.NoError(t, err)
	target := locs[0]

	got, err := svc.SetOccupied(target.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsOccupied)
	assert.Equal(t, target.Address, got.Address)
	assert.Equal(t, target.Row, got.Row)
	assert.Equal(t, target.Column, got.Column)
	assert.Equal(t, target.GroupID, got.GroupID)

	got, err = svc.SetOccupied(target.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsOccupied)

	// the sibling slot is untouched
	other, err := svc.SetOccupied(locs[1].ID, true)
	require.NoError(t, err)
	assert.True(t, other.IsOccupied)
	refetched, err := svc.LocationsByGroup(g.ID)
	require.NoError(t, err)
	for _, loc := range refetched {
		if loc.ID == target.ID {
			assert.False(t, loc.IsOccupied)
		}
	}

	_, err = svc.SetOccupied(9999, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteGroupLeavesSiblingGroupsAlone(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.CreateLayout("hall", 4, 4)
	require.NoError(t, err)
	a, err := svc.CreateGroup(l.ID, GroupSpec{Name: "A", Column: 1, Rows: 2, Columns: 2})
	require.NoError(t, err)
	b, err := svc.CreateGroup(l.ID, GroupSpec{Name: "B", Column: 2, Rows: 3, Columns: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(a.ID))

	aLocs, err := svc.LocationsByGroup(a.ID)
	require.NoError(t, err)
	assert.Empty(t, aLocs)

	bLocs, err := svc.LocationsByGroup(b.ID)
	require.NoError(t, err)
	assert.Len(t, bLocs, 3)

	gs, err := svc.Groups(l.ID)
	require.NoError(t, err)
	require.Len(t, gs, 1)
	assert.Equal(t, "B", gs[0].Name)

	assert.ErrorIs(t, svc.DeleteGroup(a.ID), gorm.ErrRecordNotFound)
}

func TestDeleteLayoutCascades(t *testing.T) {
	svc, repo := newTestService(t)

	l, err := svc.CreateLayout("hall", 4, 4)
	require.NoError(t, err)
	g1, err := svc.CreateGroup(l.ID, GroupSpec{Name: "A", Column: 1, Rows: 2, Columns: 2})
	require.NoError(t, err)
	g2, err := svc.CreateGroup(l.ID, GroupSpec{Name: "B", Column: 3, Rows: 1, Columns: 1})
	require.NoError(t, err)

	keep, err := svc.CreateLayout("other", 2, 2)
	require.NoError(t, err)
	kg, err := svc.CreateGroup(keep.ID, GroupSpec{Name: "K", Column: 1, Rows: 1, Columns: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLayout(l.ID))

	_, err = svc.Layout(l.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	gs, err := svc.Groups(l.ID)
	require.NoError(t, err)
	assert.Empty(t, gs)
	for _, gid := range []uint{g1.ID, g2.ID} {
		locs, err := svc.LocationsByGroup(gid)
		require.NoError(t, err)
		assert.Empty(t, locs)
	}
	locs, err := svc.LocationsByLayout(l.ID)
	require.NoError(t, err)
	assert.Empty(t, locs)

	// the sibling layout survives intact
	kLocs, err := svc.LocationsByGroup(kg.ID)
	require.NoError(t, err)
	assert.Len(t, kLocs, 1)

	rep, err := repo.Orphans()
	require.NoError(t, err)
	assert.True(t, rep.Empty())
}

func TestDeleteLocationRemovesOneRow(t *testing.T) {
	svc, _ := newTestService(t)

	l, err := svc.CreateLayout("hall", 4, 4)
	require.NoError(t, err)
	g, err := svc.CreateGroup(l.ID, GroupSpec{Name: "A", Column: 1, Rows: 1, Columns: 3})
	require.NoError(t, err)
	locs, err := svc.LocationsByGroup(g.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLocation(locs[1].ID))

	left, err := svc.LocationsByGroup(g.ID)
	require.NoError(t, err)
	assert.Len(t, left, 2)
	for _, loc := range left {
		assert.NotEqual(t, locs[1].ID, loc.ID)
	}

	assert.ErrorIs(t, svc.DeleteLocation(locs[1].ID), gorm.ErrRecordNotFound)
}
