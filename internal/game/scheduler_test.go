package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/vida-loka-life/internal/types"
)

func TestScheduleEventFirstHitWins(t *testing.T) {
	catalog := testCatalog(t, []*types.LifeEvent{
		simpleEvent("first", 0.5),
		simpleEvent("second", 0.5),
		simpleEvent("third", 0.5),
	}, nil)
	engine := NewEngine(catalog, &scriptedSource{floats: []float64{0.9, 0.1, 0.0}})
	c := newCharacter(20)
	tracker := types.NewEventTracker()

	ev := engine.ScheduleEvent(c, tracker)
	require.NotNil(t, ev)
	assert.Equal(t, "second", ev.ID)
	assert.Equal(t, 20, tracker.LastEventAge)
}

func TestScheduleEventNoneFires(t *testing.T) {
	catalog := testCatalog(t, []*types.LifeEvent{simpleEvent("rare", 0.01)}, nil)
	engine := NewEngine(catalog, &scriptedSource{})
	tracker := types.NewEventTracker()

	assert.Nil(t, engine.ScheduleEvent(newCharacter(20), tracker))
	assert.Equal(t, -1, tracker.LastEventAge)
}

func TestMinGPAEventNeverSelected(t *testing.T) {
	scholarship := simpleEvent("scholarship", 1)
	scholarship.Conditions.MinGPA = 3.5
	catalog := testCatalog(t, []*types.LifeEvent{scholarship}, nil)
	engine := NewEngine(catalog, constSource{f: 0})

	c := newCharacter(17)
	c.Education = types.EducationHighSchool
	c.GPA = 3.49
	tracker := types.NewEventTracker()

	for range 100 {
		assert.Nil(t, engine.ScheduleEvent(c, tracker))
	}

	c.GPA = 3.5
	assert.NotNil(t, engine.ScheduleEvent(c, tracker))
}

func TestOneShotEventFiresOnce(t *testing.T) {
	once := simpleEvent("once", 1)
	once.OneShot = true
	catalog := testCatalog(t, []*types.LifeEvent{once}, nil)
	engine := NewEngine(catalog, constSource{f: 0})
	c := newCharacter(20)
	tracker := types.NewEventTracker()

	require.NotNil(t, engine.ScheduleEvent(c, tracker))
	assert.True(t, tracker.Consumed("once"))
	assert.Nil(t, engine.ScheduleEvent(c, tracker))
}

func TestCooldownAcrossYears(t *testing.T) {
	ev := simpleEvent("repeat", 1)
	ev.Cooldown = 3
	catalog := testCatalog(t, []*types.LifeEvent{ev}, nil)
	engine := NewEngine(catalog, constSource{f: 0.5}, WithClock(fixedClock))
	c := newCharacter(20)
	var tracker *types.EventTracker

	var fired []int
	for range 8 {
		res := engine.AdvanceYear(c, tracker)
		require.NoError(t, res.Err)
		c, tracker = res.Character, res.Tracker
		if res.FiredEvent != nil {
			fired = append(fired, c.Age)
		}
	}
	assert.Equal(t, []int{21, 24, 27}, fired)
}

func TestEligibleStage(t *testing.T) {
	ev := simpleEvent("teen_only", 1)
	ev.Stage = types.StageTeen
	tracker := types.NewEventTracker()

	assert.True(t, Eligible(newCharacter(15), tracker, ev))
	assert.False(t, Eligible(newCharacter(12), tracker, ev))
	assert.False(t, Eligible(newCharacter(18), tracker, ev))
}

func TestMeetsConditions(t *testing.T) {
	c := newCharacter(30)
	c.Stats.Smarts = 60
	c.Education = types.EducationUniversityGraduate
	c.SetFlag("married")

	tests := []struct {
		name string
		cond types.Conditions
		want bool
	}{
		{"empty", types.Conditions{}, true},
		{"min age met", types.Conditions{MinAge: 30}, true},
		{"min age unmet", types.Conditions{MinAge: 31}, false},
		{"max age unmet", types.Conditions{MaxAge: 29}, false},
		{"min stat met", types.Conditions{MinStats: map[types.Stat]int{types.StatSmarts: 60}}, true},
		{"min stat unmet", types.Conditions{MinStats: map[types.Stat]int{types.StatSmarts: 61}}, false},
		{"education listed", types.Conditions{Education: []types.Education{types.EducationUniversityGraduate}}, true},
		{"education missing", types.Conditions{Education: []types.Education{types.EducationHighSchool}}, false},
		{"required flag", types.Conditions{RequiredFlag: "married"}, true},
		{"required flag missing", types.Conditions{RequiredFlag: "scholarship"}, false},
		{"forbidden flag", types.Conditions{ForbiddenFlag: "married"}, false},
		{"gpa unmet", types.Conditions{MinGPA: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeetsConditions(c, tt.cond))
		})
	}
}
