package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreListWireShape(t *testing.T) {
	list := ScoreList{
		{"Algebra": 5.0},
		{"Geometry": 7.5},
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Algebra":5.0},{"Geometry":7.5}]`, string(data))
}

func TestScoreListValidate(t *testing.T) {
	assert.NoError(t, ScoreList{{"A": 0}, {"B": 10}}.Validate())
	assert.Error(t, ScoreList{{"A": -0.5}}.Validate())
	assert.Error(t, ScoreList{{"A": 10.5}}.Validate())
	assert.Error(t, ScoreList{{"": 5}}.Validate())
	assert.Error(t, ScoreList{{"A": 1, "B": 2}}.Validate())
	assert.NoError(t, ScoreList(nil).Validate())
}

func TestScoreListMergePreservesOrder(t *testing.T) {
	list := ScoreList{{"A": 1}, {"B": 2}, {"C": 3}}

	merged := list.Merge(map[string]float64{"B": 5, "E": 9, "D": 8})

	assert.Equal(t, ScoreList{
		{"A": 1}, {"B": 5}, {"C": 3},
		{"D": 8}, {"E": 9}, // new topics appended in sorted order
	}, merged)
	// Original untouched.
	assert.Equal(t, 2.0, list[1]["B"])
}

func TestScoreListMapHelpers(t *testing.T) {
	list := ScoreList{{"A": 1}, {"B": 2}}
	assert.Equal(t, map[string]float64{"A": 1, "B": 2}, list.ToMap())
	assert.Equal(t, []string{"A", "B"}, list.Topics())

	fromMap := ScoreListFromMap(map[string]float64{"Z": 1, "A": 2})
	assert.Equal(t, ScoreList{{"A": 2}, {"Z": 1}}, fromMap)
}
