package game

import "github.com/user/vida-loka-life/internal/types"

// Bounds for every clamped stat.
const (
	StatMin = 0
	StatMax = 100
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApplyEffect is the single primitive for bounded stat mutation.
func ApplyEffect(current, delta int) int {
	return Clamp(current+delta, StatMin, StatMax)
}

// ApplyWealth adds delta to wealth. Wealth has no cap and never goes below 0.
func ApplyWealth(current, delta int) int {
	if next := current + delta; next > 0 {
		return next
	}
	return 0
}

// ApplyStat routes one effect onto s and returns the change actually made.
func ApplyStat(s *types.Stats, fx types.Effect) int {
	var field *int
	switch fx.Stat {
	case types.StatHealth:
		field = &s.Health
	case types.StatHappiness:
		field = &s.Happiness
	case types.StatSmarts:
		field = &s.Smarts
	case types.StatLooks:
		field = &s.Looks
	case types.StatSocial:
		field = &s.SocialStanding
	case types.StatWealth:
		before := s.Wealth
		s.Wealth = ApplyWealth(s.Wealth, fx.Delta)
		return s.Wealth - before
	default:
		return 0
	}
	before := *field
	*field = ApplyEffect(before, fx.Delta)
	return *field - before
}

// ApplyStats applies every effect and returns the non-zero changes.
func ApplyStats(s *types.Stats, effects []types.Effect) []types.Effect {
	var applied []types.Effect
	for _, fx := range effects {
		if d := ApplyStat(s, fx); d != 0 {
			applied = append(applied, types.Effect{Stat: fx.Stat, Delta: d})
		}
	}
	return applied
}

// ApplyRelStat routes one effect onto a relationship's stats and returns the
// change actually made. Love and compatibility are ignored for non-romantic
// ties.
func ApplyRelStat(rs *types.RelationshipStats, romantic bool, fx types.RelEffect) int {
	var field *int
	switch fx.Stat {
	case types.RelLevel:
		field = &rs.Level
	case types.RelTrust:
		field = &rs.Trust
	case types.RelRespect:
		field = &rs.Respect
	case types.RelLove:
		if !romantic {
			return 0
		}
		field = &rs.Love
	case types.RelCompatibility:
		if !romantic {
			return 0
		}
		field = &rs.Compatibility
	default:
		return 0
	}
	before := *field
	*field = ApplyEffect(before, fx.Delta)
	return *field - before
}
