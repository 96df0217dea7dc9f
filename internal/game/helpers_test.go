package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/vida-loka-life/internal/types"
)

// scriptedSource replays queued draws. Once a queue runs dry Float64 returns
// 0.99, which fails every chance roll, and Intn returns 0.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return epoch
}

func newTestEngine(src Source) *Engine {
	return NewEngine(MustDefaultCatalog(), src, WithClock(fixedClock))
}

func newCharacter(age int, rels ...*types.Relationship) *types.Character {
	c := &types.Character{
		ID:    "char-1",
		Name:  "Ana Souza",
		Age:   age,
		Alive: true,
		Stats: types.Stats{
			Health: 80, Happiness: 50, Smarts: 50, Looks: 50, Wealth: 0, SocialStanding: 50,
		},
		Relationships:      types.Graph{},
		Flags:              []string{},
		RelationshipStatus: types.StatusSingle,
		Education:          types.EducationNone,
	}
	if age >= 18 {
		c.Education = types.EducationHighSchoolGraduate
	}
	for _, r := range rels {
		c.AddRelationship(r)
	}
	return c
}

func newPerson(name string, t types.RelationshipType, stats types.RelationshipStats) *types.Relationship {
	return &types.Relationship{
		Name:            name,
		Type:            t,
		Age:             30,
		Alive:           true,
		Health:          80,
		Mood:            types.MoodNeutral,
		Stats:           stats,
		History:         types.History{},
		LastInteraction: epoch,
	}
}

func fullHistory() types.History {
	h := make(types.History, 0, types.MaxHistory)
	for i := range types.MaxHistory {
		h = append(h, types.Interaction{
			Type:        ActionConversation,
			Outcome:     types.OutcomeNeutral,
			Timestamp:   epoch.Add(-time.Duration(types.MaxHistory-i) * time.Hour),
			Description: fmt.Sprintf("old-%d", i),
		})
	}
	return h
}

// constSource always returns the same draws.
type constSource struct {
	f float64
	n int
}

func (s constSource) Float64() float64 { return s.f }

func (s constSource) Intn(n int) int { return s.n % n }

func testCatalog(t *testing.T, events []*types.LifeEvent, disasters []*types.Disaster) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(DefaultActions(), events, disasters, MustDefaultCatalog().Names)
	require.NoError(t, err)
	return catalog
}

func simpleEvent(id string, p float64) *types.LifeEvent {
	return &types.LifeEvent{
		ID:          id,
		Title:       id,
		Stage:       types.StageAll,
		Probability: p,
		Choices: []types.Choice{
			{ID: "ok", Text: "OK", Outcome: "Fine.", Effects: []types.Effect{{Stat: types.StatHappiness, Delta: 1}}},
		},
	}
}
