package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/user/vida-loka-life/config"
	"github.com/user/vida-loka-life/internal/interfaces"
	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// GameManager keeps one Session per player and persists every change
type GameManager struct {
	sessions      map[string]*Session
	stateLock     sync.RWMutex
	storage       SnapshotStore
	engine        *Engine
	config        config.Config
	Logger        *zap.Logger
	messageSender interfaces.MessageSender
}

// Ensure GameManager satifies the interfaces.GameManager interface
var _ interfaces.GameManager = (*GameManager)(nil)

// NewGameManager creates a new game manager
func NewGameManager(cfg config.Config, catalog *Catalog, storage SnapshotStore, opts ...Option) *GameManager {
	return &GameManager{
		sessions: make(map[string]*Session),
		storage:  storage,
		engine:   NewEngine(catalog, NewDiceRoller(cfg.Game.Seed), opts...),
		config:   cfg,
		Logger:   zap.NewNop(), // Will be set by the server
	}
}

// SetLogger sets the logger used by the manager and its engine
func (gm *GameManager) SetLogger(logger *zap.Logger) {
	gm.Logger = logger
	gm.engine.logger = logger
}

// SetMessageSender sets the message sender
func (gm *GameManager) SetMessageSender(sender interfaces.MessageSender) {
	gm.messageSender = sender
}

// StartLife begins a new life for playerID, replacing any previous one
func (gm *GameManager) StartLife(playerID, name string) (*types.Snapshot, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session := NewSession(gm.engine, name)
	gm.sessions[playerID] = session

	// Save state
	if err := gm.save(playerID, session); err != nil {
		return nil, err
	}

	gm.Logger.Info("Life started",
		zap.String("player_id", playerID),
		zap.String("character_id", session.Character().ID),
		zap.String("name", session.Character().Name))

	return session.Snapshot(), nil
}

// GetLife returns the current snapshot for playerID
func (gm *GameManager) GetLife(playerID string) (*types.Snapshot, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session, err := gm.session(playerID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot(), nil
}

// ResolveAction performs an action against one of the player's relationships
func (gm *GameManager) ResolveAction(playerID, targetID, actionID string) (types.ActionResult, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session, err := gm.session(playerID)
	if err != nil {
		return types.ActionResult{}, err
	}

	res := session.ResolveAction(targetID, actionID)
	if res.Err != nil {
		gm.Logger.Debug("Action rejected",
			zap.String("player_id", playerID),
			zap.String("action", actionID),
			zap.Error(res.Err))
		return res, nil
	}

	return res, gm.save(playerID, session)
}

// AdvanceYear ages the player's character by one year
func (gm *GameManager) AdvanceYear(playerID string) (types.YearResult, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session, err := gm.session(playerID)
	if err != nil {
		return types.YearResult{}, err
	}

	res := session.AdvanceYear()
	if res.Err != nil {
		return res, nil
	}

	if !res.Character.Alive {
		gm.Logger.Info("Character died",
			zap.String("player_id", playerID),
			zap.Int("age", res.Character.Age))
	}

	return res, gm.save(playerID, session)
}

// ChooseEventOption answers the player's pending life event
func (gm *GameManager) ChooseEventOption(playerID, choiceID string) (types.ChoiceResult, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session, err := gm.session(playerID)
	if err != nil {
		return types.ChoiceResult{}, err
	}

	res := session.ChooseOption(choiceID)
	if res.Err != nil {
		return res, nil
	}

	return res, gm.save(playerID, session)
}

// Discover introduces the player's character to someone new
func (gm *GameManager) Discover(playerID string, kind types.DiscoverKind) (types.DiscoverResult, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session, err := gm.session(playerID)
	if err != nil {
		return types.DiscoverResult{}, err
	}

	res := session.Discover(kind)
	if res.Err != nil {
		return res, nil
	}

	return res, gm.save(playerID, session)
}

// ListRelationships returns the player's relationships, optionally filtered
// by type or category. Empty filters match everything.
func (gm *GameManager) ListRelationships(playerID string, relType types.RelationshipType, category types.Category) (types.Graph, error) {
	gm.stateLock.Lock()
	defer gm.stateLock.Unlock()

	session, err := gm.session(playerID)
	if err != nil {
		return nil, err
	}

	graph := session.Character().Relationships
	if relType != "" {
		graph = graph.ByType(relType)
	}
	if category != "" {
		graph = graph.ByCategory(category)
	}
	return graph, nil
}

// Actions returns the action menu
func (gm *GameManager) Actions() []*types.Action {
	return gm.engine.catalog.Actions
}

// SendMessage sends a message to a player
func (gm *GameManager) SendMessage(playerID string, message string) error {
	if gm.messageSender == nil {
		return errors.New("message sender not set")
	}

	// Send message through message sender
	if _, err := gm.messageSender.SendMessage(playerID, playerID, message); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// session returns the in-memory session, loading it from storage on first
// use. Callers must hold stateLock for writing.
func (gm *GameManager) session(playerID string) (*Session, error) {
	if s, ok := gm.sessions[playerID]; ok {
		return s, nil
	}
	if gm.storage == nil {
		return nil, types.ErrPlayerNotFound
	}

	snap, err := gm.storage.LoadSnapshot(playerID)
	if errors.Is(err, types.ErrSnapshotNotFound) {
		return nil, types.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}

	s, err := RestoreSession(gm.engine, snap)
	if err != nil {
		return nil, err
	}
	gm.sessions[playerID] = s

	gm.Logger.Info("Session restored",
		zap.String("player_id", playerID),
		zap.Int("age", s.Character().Age))
	return s, nil
}

// save persists the session's snapshot
func (gm *GameManager) save(playerID string, s *Session) error {
	if gm.storage == nil {
		return nil
	}
	if err := gm.storage.SaveSnapshot(playerID, s.Snapshot()); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return nil
}
