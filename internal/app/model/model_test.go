package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/ds"
)

func healthyRecord() ds.HealthRecord {
	return ds.HealthRecord{
		FamilyHistory:        false,
		SaltConsumption:      ds.ConsumptionLow,
		SugarConsumption:     ds.ConsumptionLow,
		ExerciseFrequency:    ds.ExerciseHigh,
		SmokingStatus:        ds.SmokingNever,
		BellyCircumferenceCM: 80,
		WeightKG:             65,
		HeightCM:             175,
	}
}

func riskyRecord() ds.HealthRecord {
	return ds.HealthRecord{
		FamilyHistory:        true,
		SaltConsumption:      ds.ConsumptionHigh,
		SugarConsumption:     ds.ConsumptionHigh,
		ExerciseFrequency:    ds.ExerciseLow,
		SmokingStatus:        ds.SmokingSmoker,
		BellyCircumferenceCM: 115,
		WeightKG:             110,
		HeightCM:             170,
	}
}

func TestFeatureEncoding(t *testing.T) {
	x := Features(riskyRecord())
	require.Len(t, x, len(featureNames))

	assert.Equal(t, 1.0, x[0]) // family history
	assert.Equal(t, 1.0, x[1]) // high salt
	assert.Equal(t, 1.0, x[2]) // high sugar
	assert.Equal(t, 0.0, x[3]) // low exercise
	assert.Equal(t, 2.0, x[4]) // smoker
	assert.Equal(t, 115.0, x[5])
	assert.InDelta(t, 110/(1.7*1.7), x[8], 0.001)

	x = Features(healthyRecord())
	assert.Equal(t, 0.0, x[0])
	assert.Equal(t, 1.0, x[3]) // high exercise
	assert.Equal(t, 0.0, x[4]) // never smoked
}

func TestTreeTraversal(t *testing.T) {
	tree := Tree{Nodes: []Node{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
		{Leaf: true, Value: -1},
		{Leaf: true, Value: 1},
	}}
	assert.Equal(t, -1.0, tree.output([]float64{0}))
	assert.Equal(t, -1.0, tree.output([]float64{0.5})) // <= goes left
	assert.Equal(t, 1.0, tree.output([]float64{1}))
}

func TestDemoPredict(t *testing.T) {
	e := Demo()

	low, err := e.Predict(healthyRecord())
	require.NoError(t, err)
	high, err := e.Predict(riskyRecord())
	require.NoError(t, err)

	assert.Greater(t, low, 0.0)
	assert.Less(t, high, 1.0)
	assert.Greater(t, high, low)
	assert.Less(t, low, 0.3, "healthy profile should be low risk")
	assert.Greater(t, high, 0.7, "risky profile should be high risk")
}

func TestPredictDeterministic(t *testing.T) {
	e := Demo()
	first, err := e.Predict(riskyRecord())
	require.NoError(t, err)
	again, err := e.Predict(riskyRecord())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	raw, err := json.Marshal(Demo())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	e, err := Load(path)
	require.NoError(t, err)

	want, err := Demo().Predict(riskyRecord())
	require.NoError(t, err)
	got, err := e.Predict(riskyRecord())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsBadArtifacts(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, v interface{}) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, raw, 0o644))
		return path
	}

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = Load(write("empty.json", &Ensemble{Features: FeatureNames()}))
	assert.ErrorIs(t, err, ErrNoTrees)

	bad := Demo()
	bad.Features = []string{"age", "gender"}
	_, err = Load(write("features.json", bad))
	assert.ErrorIs(t, err, ErrFeatureMismatch)

	broken := Demo()
	broken.Trees = []Tree{{Nodes: []Node{{Feature: 99, Threshold: 1, Left: 1, Right: 1}, {Leaf: true}}}}
	_, err = Load(write("broken.json", broken))
	assert.Error(t, err)
}

func TestLoadRejectsNonAdvancingTrees(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, v interface{}) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, raw, 0o644))
		return path
	}

	// split node pointing at itself would loop forever in traversal
	cyclic := Demo()
	cyclic.Trees = []Tree{{Nodes: []Node{
		{Feature: 0, Threshold: 0.5, Left: 0, Right: 1},
		{Leaf: true, Value: 1},
	}}}
	_, err := Load(write("cyclic.json", cyclic))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must follow its parent")

	// a backward edge between two split nodes is just as unbounded
	backward := Demo()
	backward.Trees = []Tree{{Nodes: []Node{
		{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
		{Feature: 1, Threshold: 0.5, Left: 0, Right: 2},
		{Leaf: true, Value: 1},
	}}}
	_, err = Load(write("backward.json", backward))
	assert.Error(t, err)
}
