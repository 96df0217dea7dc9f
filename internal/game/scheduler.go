package game

import (
	"slices"

	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// ScheduleEvent picks at most one life event for c this year. Candidates are
// walked in catalog order; each eligible one gets its own draw against its
// probability and the first hit wins. The hit is recorded on tracker.
func (e *Engine) ScheduleEvent(c *types.Character, tracker *types.EventTracker) *types.LifeEvent {
	for _, ev := range e.catalog.Events {
		if !Eligible(c, tracker, ev) {
			continue
		}
		if !Chance(e.rng, ev.Probability) {
			continue
		}
		tracker.Record(ev, c.Age)
		e.logger.Debug("life event fired",
			zap.String("character", c.ID),
			zap.String("event", ev.ID),
			zap.Int("age", c.Age),
		)
		return ev
	}
	return nil
}

// Eligible reports whether ev may be drawn for c given what tracker remembers.
func Eligible(c *types.Character, tracker *types.EventTracker, ev *types.LifeEvent) bool {
	if !ev.Stage.Matches(c.Age) {
		return false
	}
	if ev.OneShot && tracker.Consumed(ev.ID) {
		return false
	}
	if tracker.CoolingDown(ev.ID) {
		return false
	}
	return MeetsConditions(c, ev.Conditions)
}

// MeetsConditions checks the declared numeric and flag gates against c.
func MeetsConditions(c *types.Character, cond types.Conditions) bool {
	if cond.MinAge > 0 && c.Age < cond.MinAge {
		return false
	}
	if cond.MaxAge > 0 && c.Age > cond.MaxAge {
		return false
	}
	if cond.MinGPA > 0 && c.GPA < cond.MinGPA {
		return false
	}
	for s, floor := range cond.MinStats {
		if c.Stats.Get(s) < floor {
			return false
		}
	}
	if len(cond.Education) > 0 && !slices.Contains(cond.Education, c.Education) {
		return false
	}
	if cond.RequiredFlag != "" && !c.HasFlag(cond.RequiredFlag) {
		return false
	}
	if cond.ForbiddenFlag != "" && c.HasFlag(cond.ForbiddenFlag) {
		return false
	}
	return true
}
