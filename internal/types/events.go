package types

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Stage is a coarse age bucket used to filter events.
type Stage string

const (
	StageAll        Stage = "all"
	StageInfant     Stage = "infant"
	StageChild      Stage = "child"
	StageTeen       Stage = "teen"
	StageYoungAdult Stage = "young_adult"
	StageAdult      Stage = "adult"
	StageSenior     Stage = "senior"
)

// StageForAge maps an age onto its life stage.
func StageForAge(age int) Stage {
	switch {
	case age < 5:
		return StageInfant
	case age < 13:
		return StageChild
	case age < 18:
		return StageTeen
	case age < 25:
		return StageYoungAdult
	case age < 65:
		return StageAdult
	default:
		return StageSenior
	}
}

// Valid reports whether s is a recognized stage.
func (s Stage) Valid() bool {
	switch s {
	case StageAll, StageInfant, StageChild, StageTeen, StageYoungAdult, StageAdult, StageSenior:
		return true
	}
	return false
}

// Matches reports whether an event declared for s applies at age.
func (s Stage) Matches(age int) bool {
	return s == StageAll || s == StageForAge(age)
}

// Conditions gate an event on the protagonist's current state.
// Zero values mean "no constraint".
type Conditions struct {
	MinAge        int          `json:"min_age,omitempty" yaml:"min_age"`
	MaxAge        int          `json:"max_age,omitempty" yaml:"max_age"`
	MinGPA        float64      `json:"min_gpa,omitempty" yaml:"min_gpa"`
	MinStats      map[Stat]int `json:"min_stats,omitempty" yaml:"min_stats"`
	Education     []Education  `json:"education,omitempty" yaml:"education"`
	RequiredFlag  string       `json:"required_flag,omitempty" yaml:"required_flag"`
	ForbiddenFlag string       `json:"forbidden_flag,omitempty" yaml:"forbidden_flag"`
}

// RelationshipSeed describes a person an event choice brings into the graph.
type RelationshipSeed struct {
	Type RelationshipType `json:"type" yaml:"type"`
	// Age is absolute unless Relative is set, in which case it is added to
	// the protagonist's age.
	Age      int  `json:"age" yaml:"age"`
	Relative bool `json:"relative,omitempty" yaml:"relative"`
}

// Choice is one option offered by a life event. SetFlags entries of the form
// "name:n" raise the skill called name by n.
type Choice struct {
	ID           string             `json:"id" yaml:"id"`
	Text         string             `json:"text" yaml:"text"`
	Outcome      string             `json:"outcome" yaml:"outcome"`
	Effects      []Effect           `json:"effects,omitempty" yaml:"effects"`
	SetFlags     []string           `json:"set_flags,omitempty" yaml:"set_flags"`
	Education    Education          `json:"education,omitempty" yaml:"education"`
	Status       RelationshipStatus `json:"status,omitempty" yaml:"status"`
	Relationship *RelationshipSeed  `json:"relationship,omitempty" yaml:"relationship"`
}

// LifeEvent is a scripted occurrence offered to the player.
type LifeEvent struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Stage       Stage      `json:"stage" yaml:"stage"`
	Probability float64    `json:"probability" yaml:"probability"`
	Conditions  Conditions `json:"conditions" yaml:"conditions"`
	// OneShot events fire at most once per life.
	OneShot bool `json:"one_shot,omitempty" yaml:"one_shot"`
	// Cooldown spaces out a repeatable event. The ledger ticks before each
	// yearly draw, so after firing the event sits out Cooldown-1 years and a
	// cooldown of 1 blocks nothing.
	Cooldown int      `json:"cooldown,omitempty" yaml:"cooldown"`
	Choices  []Choice `json:"choices" yaml:"choices"`
}

// Choice looks up one of the event's options.
func (e *LifeEvent) Choice(id string) (*Choice, bool) {
	for i := range e.Choices {
		if e.Choices[i].ID == id {
			return &e.Choices[i], true
		}
	}
	return nil, false
}

// Disaster is an environmental hazard rolled once per year.
type Disaster struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Message     string   `json:"message" yaml:"message"`
	Probability float64  `json:"probability" yaml:"probability"`
	MinAge      int      `json:"min_age,omitempty" yaml:"min_age"`
	Effects     []Effect `json:"effects" yaml:"effects"`
}

// EventTracker remembers which events fired and which are cooling down.
type EventTracker struct {
	Triggered    map[string]struct{}
	LastEventAge int
	Cooldowns    map[string]int
}

// NewEventTracker returns an empty tracker.
func NewEventTracker() *EventTracker {
	return &EventTracker{
		Triggered:    make(map[string]struct{}),
		LastEventAge: -1,
		Cooldowns:    make(map[string]int),
	}
}

// Clone returns an independent copy of t.
func (t *EventTracker) Clone() *EventTracker {
	cp := &EventTracker{
		Triggered:    maps.Clone(t.Triggered),
		LastEventAge: t.LastEventAge,
		Cooldowns:    maps.Clone(t.Cooldowns),
	}
	if cp.Triggered == nil {
		cp.Triggered = make(map[string]struct{})
	}
	if cp.Cooldowns == nil {
		cp.Cooldowns = make(map[string]int)
	}
	return cp
}

// Consumed reports whether a one-shot event already fired.
func (t *EventTracker) Consumed(id string) bool {
	_, ok := t.Triggered[id]
	return ok
}

// CoolingDown reports whether id still has years left on its cooldown.
func (t *EventTracker) CoolingDown(id string) bool {
	return t.Cooldowns[id] > 0
}

// Record notes that e fired at age.
func (t *EventTracker) Record(e *LifeEvent, age int) {
	if e.OneShot {
		t.Triggered[e.ID] = struct{}{}
	}
	if e.Cooldown > 0 {
		t.Cooldowns[e.ID] = e.Cooldown
	} else {
		delete(t.Cooldowns, e.ID)
	}
	t.LastEventAge = age
}

// Tick advances every cooldown by one year, dropping expired entries.
func (t *EventTracker) Tick() {
	for id, left := range t.Cooldowns {
		if left <= 1 {
			delete(t.Cooldowns, id)
			continue
		}
		t.Cooldowns[id] = left - 1
	}
}

type trackerJSON struct {
	Triggered    []string        `json:"triggered"`
	LastEventAge int             `json:"last_event_age"`
	Cooldowns    []cooldownEntry `json:"cooldowns"`
}

// cooldownEntry serializes as a [key, value] pair.
type cooldownEntry struct {
	ID    string
	Years int
}

func (c cooldownEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.ID, c.Years})
}

func (c *cooldownEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("cooldown entry: want [key, value], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.ID); err != nil {
		return fmt.Errorf("cooldown key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Years); err != nil {
		return fmt.Errorf("cooldown value: %w", err)
	}
	return nil
}

// MarshalJSON flattens the set to a sorted array and the map to sorted
// [key, value] pairs.
func (t *EventTracker) MarshalJSON() ([]byte, error) {
	out := trackerJSON{
		Triggered:    slices.Sorted(maps.Keys(t.Triggered)),
		LastEventAge: t.LastEventAge,
		Cooldowns:    make([]cooldownEntry, 0, len(t.Cooldowns)),
	}
	if out.Triggered == nil {
		out.Triggered = []string{}
	}
	for _, id := range slices.Sorted(maps.Keys(t.Cooldowns)) {
		out.Cooldowns = append(out.Cooldowns, cooldownEntry{ID: id, Years: t.Cooldowns[id]})
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the set and map from their flattened forms.
func (t *EventTracker) UnmarshalJSON(data []byte) error {
	var in trackerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t.Triggered = make(map[string]struct{}, len(in.Triggered))
	for _, id := range in.Triggered {
		t.Triggered[id] = struct{}{}
	}
	t.LastEventAge = in.LastEventAge
	t.Cooldowns = make(map[string]int, len(in.Cooldowns))
	for _, c := range in.Cooldowns {
		t.Cooldowns[c.ID] = c.Years
	}
	return nil
}
