package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/vida-loka-life/internal/types"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	assert.NotEmpty(t, catalog.Actions)
	assert.Len(t, catalog.Disasters, 5)
	assert.Equal(t, "first_words", catalog.Events[0].ID)
	assert.NotEmpty(t, catalog.Names.First)
	assert.NotEmpty(t, catalog.Names.Last)

	ev, ok := catalog.Event("scholarship_offer")
	require.True(t, ok)
	assert.True(t, ev.OneShot)
	assert.InDelta(t, 3.5, ev.Conditions.MinGPA, 1e-9)

	_, ok = catalog.Event("missing")
	assert.False(t, ok)

	a, ok := catalog.Action(ActionPropose)
	require.True(t, ok)
	assert.Equal(t, ActionPropose, a.ID)
}

func TestCatalogValidation(t *testing.T) {
	names := MustDefaultCatalog().Names

	tests := []struct {
		name      string
		events    []*types.LifeEvent
		disasters []*types.Disaster
		names     Names
		wantErr   string
	}{
		{
			name:    "unknown stage",
			events:  []*types.LifeEvent{{ID: "a", Stage: "toddler", Choices: []types.Choice{{ID: "ok"}}}},
			names:   names,
			wantErr: "unknown stage",
		},
		{
			name: "duplicate id",
			events: []*types.LifeEvent{
				simpleEvent("a", 0.1),
				simpleEvent("a", 0.1),
			},
			names:   names,
			wantErr: "duplicate id",
		},
		{
			name:    "probability out of range",
			events:  []*types.LifeEvent{simpleEvent("a", 1.5)},
			names:   names,
			wantErr: "outside [0,1]",
		},
		{
			name:    "no choices",
			events:  []*types.LifeEvent{{ID: "a", Stage: types.StageAll}},
			names:   names,
			wantErr: "no choices",
		},
		{
			name: "unknown stat",
			disasters: []*types.Disaster{{
				ID: "meteor", Probability: 0.1,
				Effects: []types.Effect{{Stat: "karma", Delta: -1}},
			}},
			names:   names,
			wantErr: `unknown stat "karma"`,
		},
		{
			name:    "empty names",
			wantErr: "names",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(DefaultActions(), tt.events, tt.disasters, tt.names)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDataLoaderDefaults(t *testing.T) {
	loader := NewDataLoader(filepath.Join(t.TempDir(), "missing"), nil)

	catalog, err := loader.LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, catalog.Events, len(MustDefaultCatalog().Events))
}

func TestDataLoaderOverrides(t *testing.T) {
	dir := t.TempDir()
	events := `
events:
  - id: rain
    title: Rain
    stage: all
    probability: 0.5
    choices:
      - id: dance
        text: Dance in it
        outcome: You got soaked.
        effects:
          - {stat: happiness, delta: 3}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.yaml"), []byte(events), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.yaml"), []byte("first: [Zoe]\nlast: [Lima]\n"), 0644))

	catalog, err := NewDataLoader(dir, nil).LoadCatalog()
	require.NoError(t, err)

	require.Len(t, catalog.Events, 1)
	ev, ok := catalog.Event("rain")
	require.True(t, ok)
	assert.Equal(t, types.StageAll, ev.Stage)
	assert.Equal(t, []types.Effect{{Stat: types.StatHappiness, Delta: 3}}, ev.Choices[0].Effects)
	assert.Equal(t, []string{"Zoe"}, catalog.Names.First)

	// Disasters had no override
	assert.Len(t, catalog.Disasters, len(MustDefaultCatalog().Disasters))
}

func TestDataLoaderInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "disasters.yaml"), []byte("disasters: [oops"), 0644))

	_, err := NewDataLoader(dir, nil).LoadCatalog()
	assert.ErrorContains(t, err, "failed to parse disasters data")

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.yaml"), []byte("first: []\nlast: [Lima]\n"), 0644))

	_, err = NewDataLoader(dir, nil).LoadCatalog()
	assert.ErrorContains(t, err, "invalid catalog")
}
