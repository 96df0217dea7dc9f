package game

import (
	"embed"
	"errors"
	"fmt"

	"github.com/user/vida-loka-life/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml data/*.json
var builtin embed.FS

// Names supplies the pools new people are named from.
type Names struct {
	First []string `yaml:"first"`
	Last  []string `yaml:"last"`
}

// Catalog holds the static tables the engine reads from.
type Catalog struct {
	Actions   []*types.Action
	Events    []*types.LifeEvent
	Disasters []*types.Disaster
	Names     Names

	actionIndex map[string]*types.Action
	eventIndex  map[string]*types.LifeEvent
}

// NewCatalog indexes the given tables and validates them.
func NewCatalog(actions []*types.Action, events []*types.LifeEvent, disasters []*types.Disaster, names Names) (*Catalog, error) {
	c := &Catalog{
		Actions:     actions,
		Events:      events,
		Disasters:   disasters,
		Names:       names,
		actionIndex: make(map[string]*types.Action, len(actions)),
		eventIndex:  make(map[string]*types.LifeEvent, len(events)),
	}
	for _, a := range actions {
		c.actionIndex[a.ID] = a
	}
	for _, e := range events {
		c.eventIndex[e.ID] = e
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DefaultCatalog builds the catalog shipped with the binary.
func DefaultCatalog() (*Catalog, error) {
	events, err := decodeEvents(mustRead("data/events.yaml"))
	if err != nil {
		return nil, fmt.Errorf("builtin events: %w", err)
	}
	disasters, err := decodeDisasters(mustRead("data/disasters.yaml"))
	if err != nil {
		return nil, fmt.Errorf("builtin disasters: %w", err)
	}
	names, err := decodeNames(mustRead("data/names.yaml"))
	if err != nil {
		return nil, fmt.Errorf("builtin names: %w", err)
	}
	return NewCatalog(DefaultActions(), events, disasters, names)
}

// MustDefaultCatalog is DefaultCatalog for callers that cannot recover.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func mustRead(name string) []byte {
	data, err := builtin.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return data
}

// Action looks up an action by id.
func (c *Catalog) Action(id string) (*types.Action, bool) {
	a, ok := c.actionIndex[id]
	return a, ok
}

// Event looks up a life event by id.
func (c *Catalog) Event(id string) (*types.LifeEvent, bool) {
	e, ok := c.eventIndex[id]
	return e, ok
}

// Validate rejects tables that reference stats, types or stages outside the
// closed vocabularies.
func (c *Catalog) Validate() error {
	var errs []error
	for _, a := range c.Actions {
		for _, t := range a.ValidFor {
			if !t.Valid() {
				errs = append(errs, fmt.Errorf("action %s: unknown relationship type %q", a.ID, t))
			}
		}
		for _, out := range []types.ActionOutcome{a.Success, a.Failure} {
			errs = append(errs, checkEffects("action "+a.ID, out.Character)...)
			for _, fx := range out.Relationship {
				if !fx.Stat.Valid() {
					errs = append(errs, fmt.Errorf("action %s: unknown relationship stat %q", a.ID, fx.Stat))
				}
			}
		}
	}

	seen := make(map[string]bool, len(c.Events))
	for _, e := range c.Events {
		where := "event " + e.ID
		if e.ID == "" {
			errs = append(errs, errors.New("event without id"))
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id", where))
		}
		seen[e.ID] = true
		if !e.Stage.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown stage %q", where, e.Stage))
		}
		if e.Probability < 0 || e.Probability > 1 {
			errs = append(errs, fmt.Errorf("%s: probability %v outside [0,1]", where, e.Probability))
		}
		if len(e.Choices) == 0 {
			errs = append(errs, fmt.Errorf("%s: no choices", where))
		}
		for s := range e.Conditions.MinStats {
			if !s.Valid() {
				errs = append(errs, fmt.Errorf("%s: unknown stat %q in conditions", where, s))
			}
		}
		for _, ch := range e.Choices {
			errs = append(errs, checkEffects(where+" choice "+ch.ID, ch.Effects)...)
			if ch.Relationship != nil && !ch.Relationship.Type.Valid() {
				errs = append(errs, fmt.Errorf("%s choice %s: unknown relationship type %q", where, ch.ID, ch.Relationship.Type))
			}
		}
	}

	for _, d := range c.Disasters {
		if d.Probability < 0 || d.Probability > 1 {
			errs = append(errs, fmt.Errorf("disaster %s: probability %v outside [0,1]", d.ID, d.Probability))
		}
		errs = append(errs, checkEffects("disaster "+d.ID, d.Effects)...)
	}

	if len(c.Names.First) == 0 || len(c.Names.Last) == 0 {
		errs = append(errs, errors.New("names: first and last pools must not be empty"))
	}
	return errors.Join(errs...)
}

func checkEffects(where string, effects []types.Effect) []error {
	var errs []error
	for _, fx := range effects {
		if !fx.Stat.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown stat %q", where, fx.Stat))
		}
	}
	return errs
}

func decodeEvents(data []byte) ([]*types.LifeEvent, error) {
	var doc struct {
		Events []*types.LifeEvent `yaml:"events"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Events, nil
}

func decodeDisasters(data []byte) ([]*types.Disaster, error) {
	var doc struct {
		Disasters []*types.Disaster `yaml:"disasters"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Disasters, nil
}

func decodeNames(data []byte) (Names, error) {
	var names Names
	if err := yaml.Unmarshal(data, &names); err != nil {
		return names, err
	}
	return names, nil
}
