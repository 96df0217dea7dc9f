package game

import (
	"fmt"
	"time"

	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// Yearly tick tuning.
const (
	DecayAfter          = 30 * 24 * time.Hour
	MoodDriftChance     = 0.10
	EntityAgingChance   = 0.10
	ElderAge            = 60
	ProtagonistFrailAge = 50
)

// AdvanceYear runs one yearly tick and returns the merged result. Neither
// input is modified.
func (e *Engine) AdvanceYear(c *types.Character, tracker *types.EventTracker) types.YearResult {
	if tracker == nil {
		tracker = types.NewEventTracker()
	}
	if !c.Alive {
		return types.YearResult{Character: c, Tracker: tracker, Err: types.ErrDeceased}
	}

	next := c.Clone()
	nextTracker := tracker.Clone()
	res := types.YearResult{Character: next, Tracker: nextTracker}

	next.Age++
	now := e.clock()

	partnerLost := false
	for _, r := range next.Relationships {
		if !r.Alive {
			continue
		}
		if now.Sub(r.LastInteraction) > DecayAfter {
			r.Stats.Level = ApplyEffect(r.Stats.Level, -1)
		}
		if Chance(e.rng, MoodDriftChance) {
			r.Mood = Pick(e.rng, types.AllMoods)
		}
		if Chance(e.rng, EntityAgingChance) {
			r.Age++
			if r.Age > ElderAge {
				r.Health = ApplyEffect(r.Health, -e.rng.Intn(4))
			}
			if r.Health == 0 {
				r.MarkDeceased()
				partnerLost = partnerLost || r.Type == types.Spouse || r.Type == types.Lover
				res.News = append(res.News, fmt.Sprintf("Your %s %s passed away at %d.", label(r.Type), r.Name, r.Age))
			}
		}
	}
	if partnerLost {
		refreshStatus(next)
	}

	if next.Age > ProtagonistFrailAge {
		ApplyStat(&next.Stats, types.Effect{Stat: types.StatHealth, Delta: -e.rng.Intn(3)})
	}

	for _, d := range e.catalog.Disasters {
		if next.Age < d.MinAge {
			continue
		}
		if !Chance(e.rng, d.Probability) {
			continue
		}
		hit := types.DisasterHit{
			ID:      d.ID,
			Message: d.Message,
			Effects: ApplyStats(&next.Stats, d.Effects),
		}
		res.Disasters = append(res.Disasters, hit)
		res.News = append(res.News, d.Message)
	}

	if e.settleDeath(next) {
		res.News = append(res.News, deathNotice(next))
		return res
	}

	nextTracker.Tick()
	if ev := e.ScheduleEvent(next, nextTracker); ev != nil {
		res.FiredEvent = ev
	}

	if news, changed := e.education.Progress(next); changed {
		res.News = append(res.News, news)
	}

	e.logger.Debug("year advanced",
		zap.String("character", next.ID),
		zap.Int("age", next.Age),
		zap.Int("disasters", len(res.Disasters)),
		zap.Bool("event", res.FiredEvent != nil),
	)
	return res
}

// settleDeath marks c dead once its health has run out. It reports whether
// the death happened now.
func (e *Engine) settleDeath(c *types.Character) bool {
	if !c.Alive || c.Stats.Health > 0 {
		return false
	}
	c.Alive = false
	e.logger.Info("character died",
		zap.String("character", c.ID),
		zap.Int("age", c.Age),
	)
	return true
}

func deathNotice(c *types.Character) string {
	return fmt.Sprintf("You died at age %d.", c.Age)
}

func label(t types.RelationshipType) string {
	if t == types.BestFriend {
		return "best friend"
	}
	return string(t)
}
