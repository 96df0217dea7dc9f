package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// ApplyEventChoice applies the consequences of picking choiceID on event.
func (e *Engine) ApplyEventChoice(c *types.Character, event *types.LifeEvent, choiceID string) types.ChoiceResult {
	if !c.Alive {
		return rejectChoice(c, types.ErrDeceased)
	}
	if event == nil {
		return rejectChoice(c, types.ErrUnknownEvent)
	}
	choice, ok := event.Choice(choiceID)
	if !ok {
		return rejectChoice(c, fmt.Errorf("%w: %q is not an option for %s", types.ErrUnknownChoice, choiceID, event.ID))
	}

	next := c.Clone()
	fx := types.Effects{Character: ApplyStats(&next.Stats, choice.Effects)}
	for _, f := range choice.SetFlags {
		setFlag(next, f)
	}
	if choice.Education != "" {
		next.Education = choice.Education
		if next.Education.InSchool() {
			next.GPA = GPA(next.Stats.Smarts)
		}
	}
	if choice.Status != "" {
		next.RelationshipStatus = choice.Status
	}

	msg := choice.Outcome
	if seed := choice.Relationship; seed != nil {
		age := seed.Age
		if seed.Relative {
			age += next.Age
		}
		last := Pick(e.rng, e.catalog.Names.Last)
		if seed.Type.Category() == types.CategoryFamily {
			last = familyName(next.Name, last)
		}
		r := next.AddRelationship(e.newPerson(seed.Type, max(age, 0), last))
		msg = fmt.Sprintf("%s %s is now in your life.", msg, r.Name)
	}

	if e.settleDeath(next) {
		msg += " " + deathNotice(next)
	}

	e.logger.Debug("event choice applied",
		zap.String("character", next.ID),
		zap.String("event", event.ID),
		zap.String("choice", choice.ID),
	)
	return types.ChoiceResult{
		Success:   true,
		Message:   msg,
		Effects:   fx,
		Character: next,
	}
}

// ApplyEventChoiceByID looks eventID up in the catalog before applying.
func (e *Engine) ApplyEventChoiceByID(c *types.Character, eventID, choiceID string) types.ChoiceResult {
	ev, ok := e.catalog.Event(eventID)
	if !ok {
		return rejectChoice(c, fmt.Errorf("%w: %q", types.ErrUnknownEvent, eventID))
	}
	return e.ApplyEventChoice(c, ev, choiceID)
}

func rejectChoice(c *types.Character, err error) types.ChoiceResult {
	return types.ChoiceResult{
		Message:   err.Error(),
		Err:       err,
		Character: c,
	}
}

// familyName returns the last word of full, or fallback for single names.
func familyName(full, fallback string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return fallback
	}
	return parts[len(parts)-1]
}

// setFlag records flag on c. A "name:n" flag raises skill name by n instead of
// being stored verbatim.
func setFlag(c *types.Character, flag string) {
	if name, v, ok := strings.Cut(flag, ":"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.SetSkill(name, c.Skill(name)+n)
			return
		}
	}
	c.SetFlag(flag)
}
