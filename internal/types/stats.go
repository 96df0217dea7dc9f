package types

// Stat names one attribute of the protagonist.
type Stat string

const (
	StatHealth    Stat = "health"
	StatHappiness Stat = "happiness"
	StatSmarts    Stat = "smarts"
	StatLooks     Stat = "looks"
	StatWealth    Stat = "wealth"
	StatSocial    Stat = "social_standing"
)

// AllStats lists every recognized protagonist stat in display order.
var AllStats = []Stat{StatHealth, StatHappiness, StatSmarts, StatLooks, StatWealth, StatSocial}

// Valid reports whether s is one of the recognized stats.
func (s Stat) Valid() bool {
	switch s {
	case StatHealth, StatHappiness, StatSmarts, StatLooks, StatWealth, StatSocial:
		return true
	}
	return false
}

// Stats holds the protagonist's attributes. Every field except Wealth is
// bounded to [0,100]; Wealth has a floor of 0 and no cap.
type Stats struct {
	Health         int `json:"health"`
	Happiness      int `json:"happiness"`
	Smarts         int `json:"smarts"`
	Looks          int `json:"looks"`
	Wealth         int `json:"wealth"`
	SocialStanding int `json:"social_standing"`
}

// Get returns the value of a single stat.
func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHealth:
		return s.Health
	case StatHappiness:
		return s.Happiness
	case StatSmarts:
		return s.Smarts
	case StatLooks:
		return s.Looks
	case StatWealth:
		return s.Wealth
	case StatSocial:
		return s.SocialStanding
	}
	return 0
}

// Effect is a declared delta against one protagonist stat.
type Effect struct {
	Stat  Stat `json:"stat" yaml:"stat"`
	Delta int  `json:"delta" yaml:"delta"`
}

// RelStat names one stat of a relationship entity.
type RelStat string

const (
	RelLevel         RelStat = "level"
	RelTrust         RelStat = "trust"
	RelRespect       RelStat = "respect"
	RelLove          RelStat = "love"
	RelCompatibility RelStat = "compatibility"
)

// Valid reports whether s is one of the recognized relationship stats.
func (s RelStat) Valid() bool {
	switch s {
	case RelLevel, RelTrust, RelRespect, RelLove, RelCompatibility:
		return true
	}
	return false
}

// RelEffect is a declared delta against one relationship stat.
type RelEffect struct {
	Stat  RelStat `json:"stat" yaml:"stat"`
	Delta int     `json:"delta" yaml:"delta"`
}

// Effects is the set of changes an action or choice actually produced.
type Effects struct {
	Character    []Effect    `json:"character,omitempty"`
	Relationship []RelEffect `json:"relationship,omitempty"`
}

// Empty reports whether no change was recorded.
func (e Effects) Empty() bool {
	return len(e.Character) == 0 && len(e.Relationship) == 0
}

// CharacterDelta sums every recorded change against stat.
func (e Effects) CharacterDelta(stat Stat) int {
	total := 0
	for _, fx := range e.Character {
		if fx.Stat == stat {
			total += fx.Delta
		}
	}
	return total
}

// RelationshipDelta sums every recorded change against stat.
func (e Effects) RelationshipDelta(stat RelStat) int {
	total := 0
	for _, fx := range e.Relationship {
		if fx.Stat == stat {
			total += fx.Delta
		}
	}
	return total
}
