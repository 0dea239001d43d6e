package projection

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Projection {
	return New(Groups{
		{Name: "Zeta", Products: map[string]Stock{"Z1": {"Main": 1}}, SubGroups: Groups{}},
		{Name: "Alpha", Products: map[string]Stock{}, SubGroups: Groups{
			{Name: "Zeta", Products: map[string]Stock{"Z2": {"Annex": 2}}, SubGroups: Groups{}},
		}},
	}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestGroups_MarshalKeepsOrder(t *testing.T) {
	got, err := json.Marshal(sample().Groups)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Zeta":{"products":{"Z1":{"Main":1}},"subGroups":{}},"Alpha":{"products":{},"subGroups":{"Zeta":{"products":{"Z2":{"Annex":2}},"subGroups":{}}}}}`,
		string(got))
}

func TestProjection_SnapshotRoundTrip(t *testing.T) {
	body, err := json.Marshal(sample())
	require.NoError(t, err)

	var p Projection
	require.NoError(t, json.Unmarshal(body, &p))

	assert.True(t, p.BuiltAt.Equal(sample().BuiltAt))
	require.Len(t, p.Groups, 2)
	assert.Equal(t, "Zeta", p.Groups[0].Name)
	assert.Equal(t, "Alpha", p.Groups[1].Name)
	assert.Len(t, p.Find("Zeta"), 2)
	assert.Equal(t, 3, p.Size())
}

func TestGroups_UnmarshalRejectsNonObject(t *testing.T) {
	var g Groups
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &g))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &g))
	assert.Nil(t, g)
}

func TestProjection_Find(t *testing.T) {
	p := sample()
	nodes := p.Find("Zeta")
	require.Len(t, nodes, 2)
	assert.Contains(t, nodes[0].Products, "Z1")
	assert.Contains(t, nodes[1].Products, "Z2")
	assert.Nil(t, p.Find("missing"))
}

func TestEmpty(t *testing.T) {
	p := Empty()
	assert.True(t, p.IsEmpty())
	assert.Zero(t, p.Size())

	got, err := json.Marshal(p.Groups)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}
