package game

import "github.com/user/vida-loka-life/internal/types"

// Action ids with dedicated resolution rules.
const (
	ActionPropose      = "propose"
	ActionBreakUp      = "break_up"
	ActionAskOut       = "ask_out"
	ActionPlanWedding  = "plan_wedding"
	ActionBestFriends  = "become_best_friends"
	ActionVisitGrave   = "visit_grave"
	ActionAskForMoney  = "ask_for_money"
	ActionSpendTime    = "spend_time"
	ActionConversation = "conversation"
	ActionCompliment   = "compliment"
	ActionFlirt        = "flirt"
)

// ProposalCost is the price of the ring, paid whatever the answer.
const ProposalCost = 500

// ProposalMinLove is the love a lover must exceed before a proposal is allowed.
const ProposalMinLove = 70

// BreakUpLevelCap is the most a relationship level may be after a break-up.
const BreakUpLevelCap = 30

var (
	everyone = types.AllRelationshipTypes
	elders   = []types.RelationshipType{types.Parent, types.Grandparent}
	partners = []types.RelationshipType{types.Lover, types.Spouse}
	datable  = []types.RelationshipType{types.Friend, types.BestFriend, types.Acquaintance, types.Classmate, types.Coworker}
	flirtees = []types.RelationshipType{
		types.Lover, types.Spouse, types.Ex,
		types.Friend, types.BestFriend, types.Acquaintance, types.Classmate, types.Coworker,
	}
)

func rel(stat types.RelStat, delta int) types.RelEffect {
	return types.RelEffect{Stat: stat, Delta: delta}
}

func stat(s types.Stat, delta int) types.Effect {
	return types.Effect{Stat: s, Delta: delta}
}

// DefaultActions returns the built-in action catalog in menu order.
func DefaultActions() []*types.Action {
	return []*types.Action{
		{
			ID: ActionSpendTime, Name: "Spend time", Category: types.ActionPositive, Risk: types.RiskLow,
			Description: "Hang out together.",
			ValidFor:    everyone,
			Success: types.ActionOutcome{
				Message:      "You had a great time with %s.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 8), rel(types.RelTrust, 3)},
				Character:    []types.Effect{stat(types.StatHappiness, 4)},
				Mood:         types.MoodHappy,
			},
			Failure: types.ActionOutcome{
				Message:      "Hanging out with %s was awkward.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -2)},
				Character:    []types.Effect{stat(types.StatHappiness, -2)},
			},
		},
		{
			ID: ActionConversation, Name: "Have a conversation", Category: types.ActionNeutral, Risk: types.RiskLow,
			Description: "Talk about life.",
			ValidFor:    everyone,
			Success: types.ActionOutcome{
				Message:      "You and %s had a nice chat.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 4), rel(types.RelRespect, 2)},
			},
			Failure: types.ActionOutcome{
				Message:      "%s didn't feel like talking.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -1)},
			},
		},
		{
			ID: ActionCompliment, Name: "Compliment", Category: types.ActionPositive, Risk: types.RiskLow,
			Description: "Say something nice.",
			ValidFor:    everyone,
			Charm:       true,
			Success: types.ActionOutcome{
				Message:      "%s loved the compliment.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 6), rel(types.RelRespect, 2)},
				Mood:         types.MoodHappy,
			},
			Failure: types.ActionOutcome{
				Message:      "%s thought the compliment was creepy.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -3), rel(types.RelRespect, -2)},
			},
		},
		{
			ID: "gift", Name: "Give a gift", Category: types.ActionPositive, Risk: types.RiskLow, Cost: 50,
			Description: "Buy them something.",
			ValidFor:    everyone,
			Success: types.ActionOutcome{
				Message:      "%s was thrilled with your gift.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 10), rel(types.RelTrust, 4)},
				Character:    []types.Effect{stat(types.StatHappiness, 3)},
				Mood:         types.MoodExcited,
			},
			Failure: types.ActionOutcome{
				Message:      "%s politely accepted a gift they clearly didn't like.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 1)},
			},
		},
		{
			ID: ActionAskForMoney, Name: "Ask for money", Category: types.ActionNeutral, Risk: types.RiskLow,
			Description: "Ask for a little cash.",
			ValidFor:    elders,
			MinAge:      5,
			Success: types.ActionOutcome{
				Message:      "%s slipped you some money.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -1)},
				Character:    []types.Effect{stat(types.StatWealth, 100), stat(types.StatHappiness, 3)},
			},
			Failure: types.ActionOutcome{
				Message:      "%s told you to get a job.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -3), rel(types.RelRespect, -3)},
				Character:    []types.Effect{stat(types.StatHappiness, -2)},
			},
		},
		{
			ID: "apologize", Name: "Apologize", Category: types.ActionPositive, Risk: types.RiskLow,
			Description: "Make amends.",
			ValidFor:    everyone,
			Success: types.ActionOutcome{
				Message:      "%s accepted your apology.",
				Relationship: []types.RelEffect{rel(types.RelTrust, 8), rel(types.RelLevel, 5)},
				Mood:         types.MoodNeutral,
			},
			Failure: types.ActionOutcome{
				Message:      "%s isn't ready to forgive you.",
				Relationship: []types.RelEffect{rel(types.RelTrust, -2)},
			},
		},
		{
			ID: "argue", Name: "Argue", Category: types.ActionNegative, Risk: types.RiskMedium,
			Description: "Pick a fight.",
			ValidFor:    everyone,
			Success: types.ActionOutcome{
				Message:      "You won the argument with %s.",
				Relationship: []types.RelEffect{rel(types.RelRespect, 3), rel(types.RelLevel, -5), rel(types.RelTrust, -3)},
				Character:    []types.Effect{stat(types.StatHappiness, 2)},
			},
			Failure: types.ActionOutcome{
				Message:      "The argument with %s got ugly.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -10), rel(types.RelTrust, -5)},
				Character:    []types.Effect{stat(types.StatHappiness, -5)},
				Mood:         types.MoodAngry,
			},
		},
		{
			ID: "insult", Name: "Insult", Category: types.ActionNegative, Risk: types.RiskMedium,
			Description: "Say something cruel.",
			ValidFor:    everyone,
			Success: types.ActionOutcome{
				Message:      "Your insult cut %s deep.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -8), rel(types.RelRespect, -5)},
				Character:    []types.Effect{stat(types.StatHappiness, 1)},
				Mood:         types.MoodSad,
			},
			Failure: types.ActionOutcome{
				Message:      "%s fired back and humiliated you.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -15), rel(types.RelTrust, -10)},
				Character:    []types.Effect{stat(types.StatHappiness, -3), stat(types.StatSocial, -2)},
				Mood:         types.MoodAngry,
			},
		},
		{
			ID: "assault", Name: "Assault", Category: types.ActionAggressive, Risk: types.RiskHigh,
			Description: "Attack them.",
			ValidFor:    everyone,
			MinAge:      8,
			Success: types.ActionOutcome{
				Message:      "You beat up %s.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -25), rel(types.RelTrust, -30), rel(types.RelRespect, -10)},
				Character:    []types.Effect{stat(types.StatHealth, -5), stat(types.StatSocial, -5)},
				Mood:         types.MoodAngry,
			},
			Failure: types.ActionOutcome{
				Message:      "%s fought back and put you in the hospital.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -30), rel(types.RelTrust, -35)},
				Character:    []types.Effect{stat(types.StatHealth, -15), stat(types.StatSocial, -8)},
				Mood:         types.MoodAngry,
			},
		},
		{
			ID: ActionFlirt, Name: "Flirt", Category: types.ActionRomantic, Risk: types.RiskLow,
			Description: "Turn on the charm.",
			ValidFor:    flirtees,
			MinAge:      14,
			Charm:       true,
			Success: types.ActionOutcome{
				Message:      "%s blushed and flirted back.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 5), rel(types.RelLove, 8)},
				Character:    []types.Effect{stat(types.StatHappiness, 3)},
				Mood:         types.MoodExcited,
			},
			Failure: types.ActionOutcome{
				Message:      "%s was not amused by your flirting.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -5), rel(types.RelRespect, -3)},
				Character:    []types.Effect{stat(types.StatHappiness, -3)},
			},
		},
		{
			ID: "date_night", Name: "Date night", Category: types.ActionRomantic, Risk: types.RiskLow, Cost: 100,
			Description: "Go out somewhere nice.",
			ValidFor:    partners,
			MinAge:      16,
			Success: types.ActionOutcome{
				Message:      "Date night with %s was magical.",
				Relationship: []types.RelEffect{rel(types.RelLove, 10), rel(types.RelLevel, 8)},
				Character:    []types.Effect{stat(types.StatHappiness, 8)},
				Mood:         types.MoodHappy,
			},
			Failure: types.ActionOutcome{
				Message:      "Date night with %s fell flat.",
				Relationship: []types.RelEffect{rel(types.RelLove, -5), rel(types.RelLevel, -3)},
				Character:    []types.Effect{stat(types.StatHappiness, -4)},
			},
		},
		{
			ID: ActionAskOut, Name: "Ask out", Category: types.ActionRomantic, Risk: types.RiskMedium,
			Description: "Ask them on a date.",
			ValidFor:    datable,
			MinAge:      13,
			Charm:       true,
			Success: types.ActionOutcome{
				Message:   "%s said yes! You're dating now.",
				Character: []types.Effect{stat(types.StatHappiness, 10)},
				Mood:      types.MoodExcited,
			},
			Failure: types.ActionOutcome{
				Message:      "%s turned you down.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -10)},
				Character:    []types.Effect{stat(types.StatHappiness, -10)},
			},
		},
		{
			ID: ActionBestFriends, Name: "Become best friends", Category: types.ActionPositive, Risk: types.RiskLow,
			Description: "Make it official.",
			ValidFor:    []types.RelationshipType{types.Friend},
			MinAge:      5,
			Success: types.ActionOutcome{
				Message:      "%s is now your best friend.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 10), rel(types.RelTrust, 5)},
				Character:    []types.Effect{stat(types.StatHappiness, 5)},
				Mood:         types.MoodHappy,
			},
			Failure: types.ActionOutcome{
				Message:      "%s doesn't see you that way.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -5)},
				Character:    []types.Effect{stat(types.StatHappiness, -3)},
			},
		},
		{
			ID: ActionPropose, Name: "Propose", Category: types.ActionRomantic, Risk: types.RiskHigh, Cost: ProposalCost,
			Description: "Pop the question.",
			ValidFor:    []types.RelationshipType{types.Lover},
			MinAge:      18,
			Success: types.ActionOutcome{
				Message:      "%s said yes! You're engaged.",
				Relationship: []types.RelEffect{rel(types.RelLevel, 15), rel(types.RelLove, 15)},
				Character:    []types.Effect{stat(types.StatHappiness, 30)},
				Mood:         types.MoodExcited,
			},
			Failure: types.ActionOutcome{
				Message:      "%s turned down your proposal.",
				Relationship: []types.RelEffect{rel(types.RelLevel, -20), rel(types.RelLove, -25)},
				Character:    []types.Effect{stat(types.StatHappiness, -25)},
				Mood:         types.MoodSad,
			},
		},
		{
			ID: ActionPlanWedding, Name: "Get married", Category: types.ActionRomantic, Risk: types.RiskLow, Cost: 2000,
			Description: "Throw the wedding.",
			ValidFor:    []types.RelationshipType{types.Spouse},
			MinAge:      18,
			Success: types.ActionOutcome{
				Message:      "You married %s.",
				Relationship: []types.RelEffect{rel(types.RelLove, 10), rel(types.RelTrust, 10)},
				Character:    []types.Effect{stat(types.StatHappiness, 20), stat(types.StatSocial, 5)},
				Mood:         types.MoodHappy,
			},
		},
		{
			ID: ActionBreakUp, Name: "Break up", Category: types.ActionRomantic, Risk: types.RiskMedium,
			Description: "End the relationship.",
			ValidFor:    []types.RelationshipType{types.Lover},
			Success: types.ActionOutcome{
				Message:      "You broke up with %s.",
				Relationship: []types.RelEffect{rel(types.RelTrust, -20), rel(types.RelLove, -30)},
				Character:    []types.Effect{stat(types.StatHappiness, -10)},
				Mood:         types.MoodSad,
			},
		},
		{
			ID: ActionVisitGrave, Name: "Visit grave", Category: types.ActionNeutral, Risk: types.RiskLow,
			Description: "Pay your respects.",
			ValidFor:    everyone,
			ForDeceased: true,
			Success: types.ActionOutcome{
				Message:   "You laid flowers on %s's grave and felt at peace.",
				Character: []types.Effect{stat(types.StatHappiness, 5)},
			},
			Failure: types.ActionOutcome{
				Message:   "You broke down in tears at %s's grave.",
				Character: []types.Effect{stat(types.StatHappiness, -5)},
			},
		},
	}
}
