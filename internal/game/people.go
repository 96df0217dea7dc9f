package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// Minimum ages for meeting people outside the family.
const (
	MinAgeFriend   = 3
	MinAgeCoworker = 18
	MinAgeDate     = 16
)

// NewLife creates a newborn protagonist with two parents and, sometimes, an
// older sibling. An empty name is replaced by a random one.
func (e *Engine) NewLife(name string) *types.Character {
	last := Pick(e.rng, e.catalog.Names.Last)
	name = strings.TrimSpace(name)
	if name == "" {
		name = Pick(e.rng, e.catalog.Names.First) + " " + last
	} else {
		last = familyName(name, last)
	}

	c := &types.Character{
		ID:    uuid.New().String(),
		Name:  name,
		Alive: true,
		Stats: types.Stats{
			Health:         Between(e.rng, 70, 100),
			Happiness:      Between(e.rng, 50, 100),
			Smarts:         Between(e.rng, 10, 100),
			Looks:          Between(e.rng, 10, 100),
			SocialStanding: Between(e.rng, 20, 60),
		},
		Relationships:      types.Graph{},
		Flags:              []string{},
		RelationshipStatus: types.StatusSingle,
		Education:          types.EducationNone,
	}

	for range 2 {
		c.AddRelationship(e.newPerson(types.Parent, Between(e.rng, 20, 40), last))
	}
	if Chance(e.rng, 0.5) {
		c.AddRelationship(e.newPerson(types.Sibling, Between(e.rng, 1, 8), last))
	}

	e.logger.Info("new life started",
		zap.String("character", c.ID),
		zap.String("name", c.Name),
		zap.Int("relationships", len(c.Relationships)),
	)
	return c
}

// Discover introduces someone new of the given kind.
func (e *Engine) Discover(c *types.Character, kind types.DiscoverKind) types.DiscoverResult {
	if !c.Alive {
		return rejectDiscover(c, types.ErrDeceased)
	}

	var (
		relType types.RelationshipType
		age     int
		msg     string
	)
	switch kind {
	case types.DiscoverFriend:
		if c.Age < MinAgeFriend {
			return rejectDiscover(c, fmt.Errorf("%w: you're too young to make friends", types.ErrRequirementNotMet))
		}
		relType, age, msg = types.Friend, peerAge(e.rng, c.Age, 3), "You made a new friend, %s."
	case types.DiscoverClassmate:
		if !c.Education.InSchool() {
			return rejectDiscover(c, fmt.Errorf("%w: you aren't in school", types.ErrRequirementNotMet))
		}
		relType, age, msg = types.Classmate, peerAge(e.rng, c.Age, 1), "You got to know your classmate %s."
	case types.DiscoverCoworker:
		if c.Age < MinAgeCoworker {
			return rejectDiscover(c, fmt.Errorf("%w: you must be at least %d to have coworkers", types.ErrRequirementNotMet, MinAgeCoworker))
		}
		relType, age, msg = types.Coworker, peerAge(e.rng, c.Age, 10), "You hit it off with %s from work."
	case types.DiscoverDate:
		if c.Age < MinAgeDate {
			return rejectDiscover(c, fmt.Errorf("%w: you must be at least %d to date", types.ErrRequirementNotMet, MinAgeDate))
		}
		relType, age, msg = types.Lover, peerAge(e.rng, c.Age, 4), "You started seeing %s."
	default:
		return rejectDiscover(c, fmt.Errorf("%w: can't meet a %q", types.ErrRequirementNotMet, kind))
	}

	next := c.Clone()
	r := next.AddRelationship(e.newPerson(relType, max(age, 1), Pick(e.rng, e.catalog.Names.Last)))
	if relType == types.Lover && next.RelationshipStatus == types.StatusSingle {
		next.RelationshipStatus = types.StatusDating
	}

	e.logger.Debug("relationship discovered",
		zap.String("character", next.ID),
		zap.String("relationship", r.ID),
		zap.String("type", string(r.Type)),
	)
	return types.DiscoverResult{
		Success:      true,
		Message:      fmt.Sprintf(msg, r.Name),
		Relationship: r,
		Character:    next,
	}
}

func rejectDiscover(c *types.Character, err error) types.DiscoverResult {
	return types.DiscoverResult{
		Message:   err.Error(),
		Err:       err,
		Character: c,
	}
}

func peerAge(src Source, age, spread int) int {
	return Between(src, age-spread, age+spread)
}

// newPerson rolls a fresh relationship entity. The caller assigns its id.
func (e *Engine) newPerson(t types.RelationshipType, age int, lastName string) *types.Relationship {
	r := &types.Relationship{
		Name:   Pick(e.rng, e.catalog.Names.First) + " " + lastName,
		Type:   t,
		Age:    age,
		Alive:  true,
		Health: Between(e.rng, 60, 100),
		Personality: types.Personality{
			Kindness:     e.rng.Intn(101),
			Loyalty:      e.rng.Intn(101),
			Humor:        e.rng.Intn(101),
			Intelligence: e.rng.Intn(101),
			Temper:       e.rng.Intn(101),
			Jealousy:     e.rng.Intn(101),
			Ambition:     e.rng.Intn(101),
		},
		Mood:            types.MoodNeutral,
		History:         types.History{},
		LastInteraction: e.clock(),
	}

	switch t.Category() {
	case types.CategoryFamily:
		r.Stats = types.RelationshipStats{
			Level:   Between(e.rng, 60, 90),
			Trust:   Between(e.rng, 60, 90),
			Respect: Between(e.rng, 50, 80),
		}
	case types.CategoryRomantic:
		r.Stats = types.RelationshipStats{
			Level:         Between(e.rng, 40, 70),
			Trust:         Between(e.rng, 40, 70),
			Respect:       Between(e.rng, 40, 70),
			Love:          Between(e.rng, 30, 60),
			Compatibility: Between(e.rng, 20, 90),
		}
	case types.CategoryFriends, types.CategoryWork:
		r.Stats = types.RelationshipStats{
			Level:   Between(e.rng, 20, 50),
			Trust:   Between(e.rng, 20, 50),
			Respect: Between(e.rng, 20, 60),
		}
	}
	return r
}
