package types

// ActionResult is the outcome of resolving an action. On failure Character is
// the untouched input; on success it is a new snapshot.
type ActionResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Effects   Effects    `json:"effects"`
	Err       error      `json:"-"`
	Character *Character `json:"character,omitempty"`
}

// ChoiceResult is the outcome of applying a life-event choice.
type ChoiceResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Effects   Effects    `json:"effects"`
	Err       error      `json:"-"`
	Character *Character `json:"character,omitempty"`
}

// DisasterHit records a disaster that struck during a yearly advance.
type DisasterHit struct {
	ID      string   `json:"id"`
	Message string   `json:"message"`
	Effects []Effect `json:"effects"`
}

// YearResult is the merged outcome of one yearly advance.
type YearResult struct {
	Character  *Character    `json:"character"`
	Tracker    *EventTracker `json:"tracker"`
	FiredEvent *LifeEvent    `json:"fired_event,omitempty"`
	Disasters  []DisasterHit `json:"disasters,omitempty"`
	News       []string      `json:"news,omitempty"`
	Err        error         `json:"-"`
}

// DiscoverKind selects what sort of person Discover introduces.
type DiscoverKind string

const (
	DiscoverFriend    DiscoverKind = "friend"
	DiscoverClassmate DiscoverKind = "classmate"
	DiscoverCoworker  DiscoverKind = "coworker"
	DiscoverDate      DiscoverKind = "date"
)

// DiscoverResult is the outcome of meeting someone new.
type DiscoverResult struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	Relationship *Relationship `json:"relationship,omitempty"`
	Err          error         `json:"-"`
	Character    *Character    `json:"character,omitempty"`
}

// SnapshotVersion is bumped whenever the persisted layout changes.
const SnapshotVersion = 1

// Snapshot is the flat, JSON-serializable state of one life.
type Snapshot struct {
	Version      int           `json:"version"`
	Character    *Character    `json:"character"`
	Tracker      *EventTracker `json:"tracker"`
	PendingEvent *LifeEvent    `json:"pending_event,omitempty"`
}
