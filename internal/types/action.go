package types

import "slices"

// ActionCategory classifies how an action is meant.
type ActionCategory string

const (
	ActionPositive   ActionCategory = "positive"
	ActionNegative   ActionCategory = "negative"
	ActionNeutral    ActionCategory = "neutral"
	ActionRomantic   ActionCategory = "romantic"
	ActionAggressive ActionCategory = "aggressive"
)

// Risk is the advertised danger tier of an action.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// ActionOutcome is the declared result of one branch of an action.
// Message is a format string receiving the target's name.
type ActionOutcome struct {
	Message      string      `json:"message"`
	Relationship []RelEffect `json:"relationship,omitempty"`
	Character    []Effect    `json:"character,omitempty"`
	Mood         Mood        `json:"mood,omitempty"`
}

// Action is a player-initiated interaction directed at a relationship entity.
type Action struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    ActionCategory     `json:"category"`
	Cost        int                `json:"cost,omitempty"`
	Risk        Risk               `json:"risk"`
	ValidFor    []RelationshipType `json:"valid_for"`
	MinAge      int                `json:"min_age,omitempty"`
	// Charm actions add the protagonist's looks to the success chance.
	Charm bool `json:"charm,omitempty"`
	// ForDeceased actions may only target entities that are no longer alive.
	ForDeceased bool          `json:"for_deceased,omitempty"`
	Success     ActionOutcome `json:"success"`
	Failure     ActionOutcome `json:"failure"`
}

// Allows reports whether the action may target a relationship of type t.
func (a *Action) Allows(t RelationshipType) bool {
	return slices.Contains(a.ValidFor, t)
}
