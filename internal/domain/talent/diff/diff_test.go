package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Flamage82/WowTalentComparer/internal/domain/talent"
	"github.com/Flamage82/WowTalentComparer/internal/domain/talent/codec"
	talenterrors "github.com/Flamage82/WowTalentComparer/internal/errors"
)

const marksmanshipBuild = "C4PAAAAAAAAAAAAAAAAAAAAAAwCMwwohBwMYDAAAAAAAAYGzMzYbGzYMDGTzYMzYZbzMzMMzMMzsMGzywMDAAgxYAwoNwAsN"

func record(specID int, sel ...talent.NodeSelection) *talent.SelectionRecord {
	return &talent.SelectionRecord{SpecID: specID, SpecName: talent.SpecName(specID), Selections: sel}
}

func TestDiff_SpecMismatch(t *testing.T) {
	_, err := Diff(record(254), record(253))
	require.ErrorIs(t, err, talenterrors.ErrSpecMismatch)
	assert.Contains(t, err.Error(), "Marksmanship Hunter")
	assert.Contains(t, err.Error(), "Beast Mastery Hunter")

	_, err = Diff(record(9001), record(9002))
	require.ErrorIs(t, err, talenterrors.ErrSpecMismatch)
	assert.Contains(t, err.Error(), "9001")
	assert.Contains(t, err.Error(), "9002")
}

func TestDiff_Classification(t *testing.T) {
	a := record(254,
		talent.Unselected(0),
		talent.PurchasedFull(1, talent.NoChoice),
		talent.Granted(2),
		talent.PurchasedFull(3, talent.ChoiceEntry(0)),
		talent.PurchasedPartial(4, 1, talent.NoChoice),
		talent.PurchasedFull(5, talent.NoChoice),
	)
	b := record(254,
		talent.PurchasedFull(0, talent.NoChoice),
		talent.Unselected(1),
		talent.Granted(2),
		talent.PurchasedFull(3, talent.ChoiceEntry(2)),
		talent.PurchasedPartial(4, 2, talent.NoChoice),
		talent.PurchasedFull(5, talent.NoChoice),
		talent.Unselected(6),
		talent.Granted(7),
	)

	res, err := Diff(a, b)
	require.NoError(t, err)

	assert.Equal(t, 254, res.SpecID)
	assert.Equal(t, "Marksmanship Hunter", res.SpecName)
	assert.Equal(t, []int{0, 7}, res.Summary.Added)
	assert.Equal(t, []int{1}, res.Summary.Removed)
	assert.Equal(t, []int{3, 4}, res.Summary.Changed)

	kinds := map[int]talent.DiffKind{}
	for _, e := range res.Entries {
		kinds[e.Index] = e.Kind
	}
	assert.Equal(t, map[int]talent.DiffKind{
		0: talent.DiffAdded,
		1: talent.DiffRemoved,
		2: talent.DiffUnchanged,
		3: talent.DiffChanged,
		4: talent.DiffChanged,
		5: talent.DiffUnchanged,
		7: talent.DiffAdded,
	}, kinds, "index 6 is unselected on both sides and must be omitted")

	byIndex := map[int]talent.DiffEntry{}
	for _, e := range res.Entries {
		byIndex[e.Index] = e
	}
	require.NotNil(t, byIndex[0].After)
	assert.Nil(t, byIndex[0].Before)
	require.NotNil(t, byIndex[1].Before)
	assert.Nil(t, byIndex[1].After)

	require.NotNil(t, byIndex[3].Changes)
	assert.Nil(t, byIndex[3].Changes.RankChange)
	assert.Equal(t, &talent.ValueChange{From: 0, To: 2}, byIndex[3].Changes.ChoiceChange)

	require.NotNil(t, byIndex[4].Changes)
	assert.Equal(t, &talent.ValueChange{From: 1, To: 2}, byIndex[4].Changes.RankChange)
	assert.Nil(t, byIndex[4].Changes.ChoiceChange)
}

func TestDiff_EffectiveValues(t *testing.T) {
	tests := []struct {
		name       string
		a, b       talent.NodeSelection
		wantRank   *talent.ValueChange
		wantChoice *talent.ValueChange
	}{
		{
			name:     "partial to full compares against rank 0",
			a:        talent.PurchasedPartial(0, 1, talent.NoChoice),
			b:        talent.PurchasedFull(0, talent.NoChoice),
			wantRank: &talent.ValueChange{From: 1, To: 0},
		},
		{
			name: "granted vs full has no comparable fields",
			a:    talent.Granted(0),
			b:    talent.PurchasedFull(0, talent.NoChoice),
		},
		{
			name:       "choice node vs plain purchase compares against entry 0",
			a:          talent.PurchasedFull(0, talent.ChoiceEntry(1)),
			b:          talent.PurchasedFull(0, talent.NoChoice),
			wantChoice: &talent.ValueChange{From: 1, To: 0},
		},
		{
			name: "choice entry 0 vs plain purchase is unchanged",
			a:    talent.PurchasedFull(0, talent.ChoiceEntry(0)),
			b:    talent.PurchasedFull(0, talent.NoChoice),
		},
		{
			name:       "rank and choice both change",
			a:          talent.PurchasedPartial(0, 1, talent.ChoiceEntry(0)),
			b:          talent.PurchasedPartial(0, 3, talent.ChoiceEntry(1)),
			wantRank:   &talent.ValueChange{From: 1, To: 3},
			wantChoice: &talent.ValueChange{From: 0, To: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Diff(record(254, tt.a), record(254, tt.b))
			require.NoError(t, err)
			require.Len(t, res.Entries, 1)

			e := res.Entries[0]
			if tt.wantRank == nil && tt.wantChoice == nil {
				assert.Equal(t, talent.DiffUnchanged, e.Kind)
				assert.Nil(t, e.Changes)
				assert.Empty(t, res.Summary.Changed)
				return
			}
			assert.Equal(t, talent.DiffChanged, e.Kind)
			require.NotNil(t, e.Changes)
			assert.Equal(t, tt.wantRank, e.Changes.RankChange)
			assert.Equal(t, tt.wantChoice, e.Changes.ChoiceChange)
			assert.Equal(t, []int{0}, res.Summary.Changed)
		})
	}
}

func TestDiff_Self(t *testing.T) {
	rec, err := codec.Parse(marksmanshipBuild)
	require.NoError(t, err)

	res, err := Diff(rec, rec)
	require.NoError(t, err)
	assert.Empty(t, res.Summary.Added)
	assert.Empty(t, res.Summary.Removed)
	assert.Empty(t, res.Summary.Changed)
	assert.Len(t, res.Entries, rec.SelectedCount())
	for _, e := range res.Entries {
		assert.Equal(t, talent.DiffUnchanged, e.Kind)
	}
}

func TestDiff_Antisymmetric(t *testing.T) {
	a, err := codec.Parse(marksmanshipBuild)
	require.NoError(t, err)

	// Drop a few selections and move a choice to build a second variant.
	sel := append([]talent.NodeSelection(nil), a.Selections...)
	sel[2] = talent.Unselected(2)
	sel[7] = talent.Unselected(7)
	sel[3] = talent.PurchasedFull(3, talent.NoChoice)
	b := &talent.SelectionRecord{Version: a.Version, SpecID: a.SpecID, SpecName: a.SpecName, TreeHash: a.TreeHash, Selections: sel}

	ab, err := Diff(a, b)
	require.NoError(t, err)
	ba, err := Diff(b, a)
	require.NoError(t, err)

	assert.ElementsMatch(t, ab.Summary.Added, ba.Summary.Removed)
	assert.ElementsMatch(t, ab.Summary.Removed, ba.Summary.Added)
	assert.ElementsMatch(t, ab.Summary.Changed, ba.Summary.Changed)
	assert.Equal(t, []int{3}, ab.Summary.Added)
	assert.Equal(t, []int{2, 7}, ab.Summary.Removed)
}

func TestDiff_DifferentLengths(t *testing.T) {
	a := record(254, talent.Granted(0))
	b := record(254, talent.Granted(0), talent.Unselected(1), talent.PurchasedFull(2, talent.NoChoice))

	res, err := Diff(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.Summary.Added)

	res, err = Diff(b, a)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.Summary.Removed)
}
