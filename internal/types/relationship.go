package types

import (
	"slices"
	"time"
)

// RelationshipType is the closed vocabulary of ties between the protagonist
// and another person.
type RelationshipType string

const (
	Parent       RelationshipType = "parent"
	Grandparent  RelationshipType = "grandparent"
	Sibling      RelationshipType = "sibling"
	Child        RelationshipType = "child"
	Spouse       RelationshipType = "spouse"
	Lover        RelationshipType = "lover"
	Ex           RelationshipType = "ex"
	Friend       RelationshipType = "friend"
	BestFriend   RelationshipType = "best_friend"
	Acquaintance RelationshipType = "acquaintance"
	Classmate    RelationshipType = "classmate"
	Coworker     RelationshipType = "coworker"
	Boss         RelationshipType = "boss"
)

// AllRelationshipTypes lists the vocabulary in display order.
var AllRelationshipTypes = []RelationshipType{
	Parent, Grandparent, Sibling, Child,
	Spouse, Lover, Ex,
	Friend, BestFriend, Acquaintance, Classmate,
	Coworker, Boss,
}

// Category groups relationship types for filtering.
type Category string

const (
	CategoryFamily   Category = "family"
	CategoryRomantic Category = "romantic"
	CategoryFriends  Category = "friends"
	CategoryWork     Category = "work"
)

// Category returns the group t belongs to.
func (t RelationshipType) Category() Category {
	switch t {
	case Parent, Grandparent, Sibling, Child:
		return CategoryFamily
	case Spouse, Lover, Ex:
		return CategoryRomantic
	case Friend, BestFriend, Acquaintance, Classmate:
		return CategoryFriends
	case Coworker, Boss:
		return CategoryWork
	}
	return ""
}

// Romantic reports whether love and compatibility are tracked for t.
func (t RelationshipType) Romantic() bool {
	return t.Category() == CategoryRomantic
}

// Valid reports whether t belongs to the vocabulary.
func (t RelationshipType) Valid() bool {
	return t.Category() != ""
}

// Mood is a relationship entity's current emotional state.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodExcited  Mood = "excited"
	MoodNeutral  Mood = "neutral"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodStressed Mood = "stressed"
)

// AllMoods lists every mood; yearly drift draws uniformly from it.
var AllMoods = []Mood{MoodHappy, MoodExcited, MoodNeutral, MoodSad, MoodAngry, MoodStressed}

// Personality holds seven independent traits, each 0-100.
type Personality struct {
	Kindness     int `json:"kindness"`
	Loyalty      int `json:"loyalty"`
	Humor        int `json:"humor"`
	Intelligence int `json:"intelligence"`
	Temper       int `json:"temper"`
	Jealousy     int `json:"jealousy"`
	Ambition     int `json:"ambition"`
}

// RelationshipStats are the bounded stats describing the tie itself.
// Love and Compatibility are only meaningful for romantic types.
type RelationshipStats struct {
	Level         int `json:"level"`
	Trust         int `json:"trust"`
	Respect       int `json:"respect"`
	Love          int `json:"love,omitempty"`
	Compatibility int `json:"compatibility,omitempty"`
}

// OutcomeKind classifies a recorded interaction.
type OutcomeKind string

const (
	OutcomePositive OutcomeKind = "positive"
	OutcomeNegative OutcomeKind = "negative"
	OutcomeNeutral  OutcomeKind = "neutral"
)

// Interaction is one entry of a relationship's history.
type Interaction struct {
	Type        string      `json:"type"`
	Outcome     OutcomeKind `json:"outcome"`
	Impact      int         `json:"impact"`
	Timestamp   time.Time   `json:"timestamp"`
	Description string      `json:"description"`
}

// MaxHistory caps how many interactions a relationship remembers.
const MaxHistory = 50

// History is an append-only interaction log. Once full, the oldest entry is
// evicted for every new one.
type History []Interaction

// Append records an interaction, evicting from the front when at capacity.
func (h *History) Append(i Interaction) {
	entries := append(*h, i)
	if over := len(entries) - MaxHistory; over > 0 {
		entries = slices.Clone(entries[over:])
	}
	*h = entries
}

// Recent returns up to n of the newest entries, newest first.
func (h History) Recent(n int) []Interaction {
	if n > len(h) {
		n = len(h)
	}
	out := make([]Interaction, 0, n)
	for i := len(h) - 1; i >= len(h)-n; i-- {
		out = append(out, h[i])
	}
	return out
}

// Relationship is a non-player person linked to the protagonist.
type Relationship struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Type            RelationshipType  `json:"type"`
	Age             int               `json:"age"`
	Alive           bool              `json:"alive"`
	Health          int               `json:"health"`
	Personality     Personality       `json:"personality"`
	Mood            Mood              `json:"mood"`
	Stats           RelationshipStats `json:"stats"`
	History         History           `json:"history"`
	LastInteraction time.Time         `json:"last_interaction"`
}

// MarkDeceased flips Alive to false. It never flips it back.
func (r *Relationship) MarkDeceased() {
	r.Alive = false
}

// Clone returns a deep copy of r.
func (r *Relationship) Clone() *Relationship {
	cp := *r
	cp.History = slices.Clone(r.History)
	return &cp
}

// Graph is the protagonist's ordered collection of relationship entities.
// Entities are appended and never removed.
type Graph []*Relationship

// Find looks up an entity by id.
func (g Graph) Find(id string) (*Relationship, bool) {
	for _, r := range g {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// ByType returns the entities whose type is one of types.
func (g Graph) ByType(types ...RelationshipType) Graph {
	var out Graph
	for _, r := range g {
		if slices.Contains(types, r.Type) {
			out = append(out, r)
		}
	}
	return out
}

// ByCategory returns the entities whose type falls in c.
func (g Graph) ByCategory(c Category) Graph {
	var out Graph
	for _, r := range g {
		if r.Type.Category() == c {
			out = append(out, r)
		}
	}
	return out
}

// Living returns the entities that are still alive.
func (g Graph) Living() Graph {
	var out Graph
	for _, r := range g {
		if r.Alive {
			out = append(out, r)
		}
	}
	return out
}

// Clone deep-copies every entity.
func (g Graph) Clone() Graph {
	if g == nil {
		return nil
	}
	out := make(Graph, len(g))
	for i, r := range g {
		out[i] = r.Clone()
	}
	return out
}
