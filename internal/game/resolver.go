package game

import (
	"fmt"

	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// Success chance tuning.
const (
	baseChance    = 0.70
	levelWeight   = 0.30
	trustWeight   = 0.20
	looksWeight   = 0.20
	minChance     = 0.10
	maxChance     = 0.95
	askOutLoveMin = 30
	askOutLoveMax = 50
)

// ResolveAction resolves actionID performed by c on the relationship
// targetID. Precondition failures come back with Success false, an empty
// effect set and the untouched input; a bad roll is a normal result with
// negative effects.
func (e *Engine) ResolveAction(c *types.Character, targetID, actionID string) types.ActionResult {
	action, ok := e.catalog.Action(actionID)
	if !ok {
		return rejectAction(c, fmt.Errorf("%w: %q", types.ErrUnknownAction, actionID))
	}
	if !c.Alive {
		return rejectAction(c, types.ErrDeceased)
	}
	target, ok := c.Relationships.Find(targetID)
	if !ok {
		return rejectAction(c, fmt.Errorf("%w: %q", types.ErrTargetNotFound, targetID))
	}
	if err := checkRequirements(c, target, action); err != nil {
		return rejectAction(c, err)
	}
	if action.Cost > c.Stats.Wealth {
		return rejectAction(c, fmt.Errorf("%w: %s costs $%d", types.ErrInsufficientFunds, action.Name, action.Cost))
	}

	next := c.Clone()
	target, _ = next.Relationships.Find(targetID)

	var chance float64
	switch action.ID {
	case ActionBreakUp, ActionPlanWedding:
		chance = 1
	case ActionPropose:
		chance = ProposalChance(target)
	default:
		chance = SuccessChance(next, target, action)
	}
	success := chance >= 1 || Chance(e.rng, chance)

	var fx types.Effects
	if action.Cost > 0 {
		if d := ApplyStat(&next.Stats, types.Effect{Stat: types.StatWealth, Delta: -action.Cost}); d != 0 {
			fx.Character = append(fx.Character, types.Effect{Stat: types.StatWealth, Delta: d})
		}
	}

	out := action.Failure
	if success {
		out = action.Success
	}
	fx.Relationship = append(fx.Relationship, applyRelEffects(target, out.Relationship)...)
	fx.Character = append(fx.Character, ApplyStats(&next.Stats, out.Character)...)
	if out.Mood != "" {
		target.Mood = out.Mood
	}
	if success {
		fx.Relationship = append(fx.Relationship, e.transition(next, target, action)...)
	}

	msg := fmt.Sprintf(out.Message, target.Name)
	if e.settleDeath(next) {
		msg += " " + deathNotice(next)
	}
	now := e.clock()
	target.History.Append(types.Interaction{
		Type:        action.ID,
		Outcome:     classify(fx.Relationship),
		Impact:      impact(fx.Relationship),
		Timestamp:   now,
		Description: msg,
	})
	target.LastInteraction = now

	e.logger.Debug("action resolved",
		zap.String("character", next.ID),
		zap.String("action", action.ID),
		zap.String("target", target.ID),
		zap.Float64("chance", chance),
		zap.Bool("success", success),
	)

	return types.ActionResult{
		Success:   success,
		Message:   msg,
		Effects:   fx,
		Character: next,
	}
}

// SuccessChance is the probability that action succeeds against target.
func SuccessChance(c *types.Character, target *types.Relationship, action *types.Action) float64 {
	chance := baseChance
	chance += float64(target.Stats.Level-50) / 100 * levelWeight
	chance += float64(target.Stats.Trust-50) / 100 * trustWeight
	if action.Charm {
		chance += float64(c.Stats.Looks-50) / 100 * looksWeight
	}
	chance += moodModifier(target.Mood)
	return clampChance(chance, minChance, maxChance)
}

// ProposalChance is the probability that a lover accepts a proposal.
func ProposalChance(target *types.Relationship) float64 {
	return clampChance(float64(target.Stats.Love+target.Stats.Level)/200, 0, 1)
}

func moodModifier(m types.Mood) float64 {
	switch m {
	case types.MoodHappy:
		return 0.10
	case types.MoodExcited:
		return 0.15
	case types.MoodAngry:
		return -0.20
	case types.MoodSad:
		return -0.10
	case types.MoodStressed:
		return -0.15
	case types.MoodNeutral:
		return 0
	}
	return 0
}

func clampChance(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

func checkRequirements(c *types.Character, target *types.Relationship, action *types.Action) error {
	if !action.Allows(target.Type) {
		return fmt.Errorf("%w: you can't %s with your %s", types.ErrRequirementNotMet, action.ID, target.Type)
	}
	if action.ForDeceased && target.Alive {
		return fmt.Errorf("%w: %s is still alive", types.ErrRequirementNotMet, target.Name)
	}
	if !action.ForDeceased && !target.Alive {
		return fmt.Errorf("%w: %s is no longer with us", types.ErrRequirementNotMet, target.Name)
	}
	if c.Age < action.MinAge {
		return fmt.Errorf("%w: you must be at least %d", types.ErrRequirementNotMet, action.MinAge)
	}

	switch action.ID {
	case ActionPropose:
		if target.Stats.Love <= ProposalMinLove {
			return fmt.Errorf("%w: %s isn't in love enough yet", types.ErrRequirementNotMet, target.Name)
		}
		if c.RelationshipStatus == types.StatusEngaged || c.RelationshipStatus == types.StatusMarried {
			return fmt.Errorf("%w: you are already %s", types.ErrRequirementNotMet, c.RelationshipStatus)
		}
	case ActionPlanWedding:
		if c.RelationshipStatus != types.StatusEngaged {
			return fmt.Errorf("%w: you need to be engaged first", types.ErrRequirementNotMet)
		}
	}
	return nil
}

func rejectAction(c *types.Character, err error) types.ActionResult {
	return types.ActionResult{
		Message:   err.Error(),
		Err:       err,
		Character: c,
	}
}

// transition applies the relationship-type side effects of a successful
// action and returns any stat changes it made along the way.
func (e *Engine) transition(c *types.Character, target *types.Relationship, action *types.Action) []types.RelEffect {
	var fx []types.RelEffect
	switch action.ID {
	case ActionPropose:
		target.Type = types.Spouse
		c.RelationshipStatus = types.StatusEngaged
	case ActionPlanWedding:
		c.RelationshipStatus = types.StatusMarried
		c.SetFlag("married")
	case ActionBreakUp:
		target.Type = types.Ex
		if target.Stats.Level > BreakUpLevelCap {
			fx = append(fx, types.RelEffect{Stat: types.RelLevel, Delta: BreakUpLevelCap - target.Stats.Level})
			target.Stats.Level = BreakUpLevelCap
		}
		refreshStatus(c)
	case ActionAskOut:
		target.Type = types.Lover
		love := Between(e.rng, askOutLoveMin, askOutLoveMax)
		compat := Between(e.rng, 20, 90)
		fx = append(fx,
			types.RelEffect{Stat: types.RelLove, Delta: love - target.Stats.Love},
			types.RelEffect{Stat: types.RelCompatibility, Delta: compat - target.Stats.Compatibility},
		)
		target.Stats.Love = love
		target.Stats.Compatibility = compat
		if c.RelationshipStatus == types.StatusSingle {
			c.RelationshipStatus = types.StatusDating
		}
	case ActionBestFriends:
		target.Type = types.BestFriend
	}
	return fx
}

// refreshStatus derives the romantic status from the living partners left in
// the graph.
func refreshStatus(c *types.Character) {
	switch {
	case len(c.Relationships.ByType(types.Spouse).Living()) > 0:
		if c.RelationshipStatus != types.StatusMarried {
			c.RelationshipStatus = types.StatusEngaged
		}
	case len(c.Relationships.ByType(types.Lover).Living()) > 0:
		c.RelationshipStatus = types.StatusDating
	default:
		c.RelationshipStatus = types.StatusSingle
	}
	if c.RelationshipStatus != types.StatusMarried {
		c.ClearFlag("married")
	}
}

func applyRelEffects(target *types.Relationship, effects []types.RelEffect) []types.RelEffect {
	var applied []types.RelEffect
	romantic := target.Type.Romantic()
	for _, fx := range effects {
		if d := ApplyRelStat(&target.Stats, romantic, fx); d != 0 {
			applied = append(applied, types.RelEffect{Stat: fx.Stat, Delta: d})
		}
	}
	return applied
}

func impact(effects []types.RelEffect) int {
	total := 0
	for _, fx := range effects {
		total += fx.Delta
	}
	return total
}

func classify(effects []types.RelEffect) types.OutcomeKind {
	switch n := impact(effects); {
	case n > 0:
		return types.OutcomePositive
	case n < 0:
		return types.OutcomeNegative
	default:
		return types.OutcomeNeutral
	}
}
