package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageForAge(t *testing.T) {
	tests := []struct {
		age  int
		want Stage
	}{
		{0, StageInfant},
		{4, StageInfant},
		{5, StageChild},
		{12, StageChild},
		{13, StageTeen},
		{17, StageTeen},
		{18, StageYoungAdult},
		{24, StageYoungAdult},
		{25, StageAdult},
		{64, StageAdult},
		{65, StageSenior},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageForAge(tt.age), "age %d", tt.age)
	}

	assert.True(t, StageAll.Matches(90))
	assert.True(t, StageTeen.Matches(15))
	assert.False(t, StageTeen.Matches(18))
	assert.False(t, Stage("toddler").Valid())
}

func TestEventTrackerCooldowns(t *testing.T) {
	tracker := NewEventTracker()
	ev := &LifeEvent{ID: "crush", Cooldown: 2}

	tracker.Record(ev, 14)
	assert.True(t, tracker.CoolingDown("crush"))
	assert.False(t, tracker.Consumed("crush"))
	assert.Equal(t, 14, tracker.LastEventAge)

	tracker.Tick()
	assert.True(t, tracker.CoolingDown("crush"))
	tracker.Tick()
	assert.False(t, tracker.CoolingDown("crush"))
	assert.Empty(t, tracker.Cooldowns)
}

func TestEventTrackerOneShot(t *testing.T) {
	tracker := NewEventTracker()
	tracker.Record(&LifeEvent{ID: "first_words", OneShot: true}, 1)

	assert.True(t, tracker.Consumed("first_words"))
	assert.False(t, tracker.CoolingDown("first_words"))
}

func TestEventTrackerJSON(t *testing.T) {
	tracker := NewEventTracker()
	tracker.Record(&LifeEvent{ID: "scholarship_offer", OneShot: true}, 17)
	tracker.Record(&LifeEvent{ID: "lottery_ticket", Cooldown: 5}, 20)
	tracker.Record(&LifeEvent{ID: "crush", Cooldown: 2}, 20)

	data, err := json.Marshal(tracker)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"triggered": ["scholarship_offer"],
		"last_event_age": 20,
		"cooldowns": [["crush", 2], ["lottery_ticket", 5]]
	}`, string(data))

	var decoded EventTracker
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tracker, &decoded)

	err = json.Unmarshal([]byte(`{"cooldowns": [["crush"]]}`), &decoded)
	assert.ErrorContains(t, err, "want [key, value]")
}

func TestEventTrackerCloneIsIndependent(t *testing.T) {
	tracker := NewEventTracker()
	tracker.Record(&LifeEvent{ID: "crush", Cooldown: 2}, 14)

	cp := tracker.Clone()
	cp.Tick()
	cp.Tick()
	cp.Record(&LifeEvent{ID: "once", OneShot: true}, 16)

	assert.True(t, tracker.CoolingDown("crush"))
	assert.False(t, tracker.Consumed("once"))
	assert.Equal(t, 14, tracker.LastEventAge)
}

func TestLifeEventChoice(t *testing.T) {
	ev := &LifeEvent{ID: "crush", Choices: []Choice{{ID: "approach"}, {ID: "ignore"}}}

	c, ok := ev.Choice("ignore")
	require.True(t, ok)
	assert.Equal(t, "ignore", c.ID)

	_, ok = ev.Choice("flee")
	assert.False(t, ok)
}
