package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeafUnit_ClampsNegativeStage(t *testing.T) {
	u := NewLeafUnit("p1", -3)
	stage, ok := u.StageIndex()
	require.True(t, ok)
	assert.Equal(t, 0, stage)
	assert.True(t, u.IsLeaf())
	assert.False(t, u.IsBranch())
	assert.Nil(t, u.Children())
}

func TestNewBranchUnit_RenumbersAndNeverNil(t *testing.T) {
	b := NewBranchUnit("ch1", NewLeafUnit("a", 0), NewLeafUnit("b", 1))
	require.True(t, b.IsBranch())
	_, ok := b.StageIndex()
	assert.False(t, ok)
	require.Len(t, b.Children(), 2)
	assert.Equal(t, 1, b.Children()[0].Index)
	assert.Equal(t, 2, b.Children()[1].Index)

	empty := NewBranchUnit("ch2")
	assert.NotNil(t, empty.Children())
	assert.Empty(t, empty.Children())
}

func TestZeroUnit_IsMalformed(t *testing.T) {
	var u Unit
	assert.False(t, u.IsLeaf())
	assert.False(t, u.IsBranch())
}

func TestUnitJSON_RoundTripKeepsShape(t *testing.T) {
	tree := []Unit{
		NewBranchUnit("vol1",
			NewBranchUnit("ch1", NewLeafUnit("p1", 2), NewLeafUnit("p2", 0)),
			NewBranchUnit("ch2"),
		),
	}
	tree[0].Index = 1

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"vol1","index":1,"children":[
		{"id":"ch1","index":1,"children":[
			{"id":"p1","index":1,"stageIndex":2},
			{"id":"p2","index":2,"stageIndex":0}]},
		{"id":"ch2","index":2,"children":[]}]}]`, string(data))

	var decoded []Unit
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tree, decoded)
}

func TestUnitJSON_RejectsBothChildrenAndStage(t *testing.T) {
	var u Unit
	err := json.Unmarshal([]byte(`{"id":"x","index":1,"children":[],"stageIndex":0}`), &u)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestUnitJSON_NeitherDecodesAsMalformed(t *testing.T) {
	var u Unit
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","index":4}`), &u))
	assert.Equal(t, "x", u.ID)
	assert.Equal(t, 4, u.Index)
	assert.False(t, u.IsLeaf())
	assert.False(t, u.IsBranch())
}
