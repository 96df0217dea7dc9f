package game

import (
	"errors"
	"fmt"

	"github.com/user/vida-loka-life/internal/types"
)

// Session is the service object for one running life. It is not safe for
// concurrent use; GameManager serializes access per player.
type Session struct {
	engine    *Engine
	decider   *DecisionEngine
	character *types.Character
	tracker   *types.EventTracker
	pending   *types.LifeEvent
}

// NewSession starts a fresh life called name.
func NewSession(engine *Engine, name string) *Session {
	return &Session{
		engine:    engine,
		decider:   NewDecisionEngine(engine.rng),
		character: engine.NewLife(name),
		tracker:   types.NewEventTracker(),
	}
}

// RestoreSession resumes a life from a persisted snapshot.
func RestoreSession(engine *Engine, snap *types.Snapshot) (*Session, error) {
	if snap == nil || snap.Character == nil {
		return nil, errors.New("restore session: snapshot has no character")
	}
	if snap.Version > types.SnapshotVersion {
		return nil, fmt.Errorf("restore session: snapshot version %d is newer than %d", snap.Version, types.SnapshotVersion)
	}
	tracker := snap.Tracker
	if tracker == nil {
		tracker = types.NewEventTracker()
	}
	s := &Session{
		engine:    engine,
		decider:   NewDecisionEngine(engine.rng),
		character: snap.Character,
		tracker:   tracker,
	}
	// Pending events are re-resolved against the current catalog so a
	// removed event cannot be answered.
	if snap.PendingEvent != nil {
		if ev, ok := engine.catalog.Event(snap.PendingEvent.ID); ok {
			s.pending = ev
		}
	}
	return s, nil
}

// Character returns the current snapshot.
func (s *Session) Character() *types.Character {
	return s.character
}

// Tracker returns the current event ledger.
func (s *Session) Tracker() *types.EventTracker {
	return s.tracker
}

// Pending returns the event waiting for an answer, if any.
func (s *Session) Pending() *types.LifeEvent {
	return s.pending
}

// ResolveAction performs an action and keeps the new snapshot on success.
func (s *Session) ResolveAction(targetID, actionID string) types.ActionResult {
	res := s.engine.ResolveAction(s.character, targetID, actionID)
	if res.Err == nil {
		s.character = res.Character
	}
	return res
}

// AdvanceYear ages the life by one year. An unanswered event is settled by
// the decision engine first.
func (s *Session) AdvanceYear() types.YearResult {
	var news []string
	if s.pending != nil && s.character.Alive {
		if choice := s.decider.ChooseEventOption(s.character, s.pending); choice != nil {
			if res := s.engine.ApplyEventChoice(s.character, s.pending, choice.ID); res.Err == nil {
				s.character = res.Character
				news = append(news, fmt.Sprintf("%s: %s", s.pending.Title, res.Message))
			}
		}
		s.pending = nil
	}

	res := s.engine.AdvanceYear(s.character, s.tracker)
	res.News = append(news, res.News...)
	if res.Err != nil {
		return res
	}
	s.character = res.Character
	s.tracker = res.Tracker
	s.pending = res.FiredEvent
	return res
}

// ChooseOption answers the pending event.
func (s *Session) ChooseOption(choiceID string) types.ChoiceResult {
	if s.pending == nil {
		return rejectChoice(s.character, fmt.Errorf("%w: nothing is waiting for an answer", types.ErrUnknownEvent))
	}
	res := s.engine.ApplyEventChoice(s.character, s.pending, choiceID)
	if res.Err == nil {
		s.character = res.Character
		s.pending = nil
	}
	return res
}

// Discover meets someone new.
func (s *Session) Discover(kind types.DiscoverKind) types.DiscoverResult {
	res := s.engine.Discover(s.character, kind)
	if res.Err == nil {
		s.character = res.Character
	}
	return res
}

// Snapshot returns the flat persisted form of the session.
func (s *Session) Snapshot() *types.Snapshot {
	return &types.Snapshot{
		Version:      types.SnapshotVersion,
		Character:    s.character,
		Tracker:      s.tracker,
		PendingEvent: s.pending,
	}
}
