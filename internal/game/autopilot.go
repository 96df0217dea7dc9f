package game

import "github.com/user/vida-loka-life/internal/types"

// wealthScale converts money into the same rough units as bounded stats when
// scoring choices.
const wealthScale = 100

// DecisionEngine picks event options on behalf of a player who aged up
// without answering the pending event.
type DecisionEngine struct {
	rng Source
}

// NewDecisionEngine creates a new decision engine
func NewDecisionEngine(rng Source) *DecisionEngine {
	return &DecisionEngine{
		rng: rng,
	}
}

// ChooseEventOption selects the option whose effects look best for c
func (de *DecisionEngine) ChooseEventOption(c *types.Character, event *types.LifeEvent) *types.Choice {
	if len(event.Choices) == 0 {
		return nil
	}

	var (
		best      *types.Choice
		bestScore = -1 << 31
	)
	for i := range event.Choices {
		choice := &event.Choices[i]
		score := 0

		for _, fx := range choice.Effects {
			switch fx.Stat {
			case types.StatWealth:
				// Never spend money the character doesn't have
				if fx.Delta < 0 && -fx.Delta > c.Stats.Wealth {
					score -= 50
				}
				score += fx.Delta / wealthScale
			case types.StatHealth:
				// Weigh health twice once it is running low
				if c.Stats.Health < 30 {
					score += fx.Delta * 2
				} else {
					score += fx.Delta
				}
			case types.StatHappiness, types.StatSmarts, types.StatLooks, types.StatSocial:
				score += fx.Delta
			}
		}

		// New people are worth something
		if choice.Relationship != nil {
			score += 3
		}

		// Add some randomness
		score += de.rng.Intn(5)

		if score > bestScore {
			best, bestScore = choice, score
		}
	}

	return best
}
