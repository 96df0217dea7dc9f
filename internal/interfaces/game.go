package interfaces

import "github.com/user/vida-loka-life/internal/types"

// MessageSender defines the interface for sending messages
type MessageSender interface {
	SendMessage(phoneNumber, recipient, message string) (string, error)
}

// GameManager defines the interface for game operations. The returned error
// covers unknown players and storage failures; rule violations are reported
// inside the result structs.
type GameManager interface {
	StartLife(playerID, name string) (*types.Snapshot, error)
	GetLife(playerID string) (*types.Snapshot, error)
	ResolveAction(playerID, targetID, actionID string) (types.ActionResult, error)
	AdvanceYear(playerID string) (types.YearResult, error)
	ChooseEventOption(playerID, choiceID string) (types.ChoiceResult, error)
	Discover(playerID string, kind types.DiscoverKind) (types.DiscoverResult, error)
	ListRelationships(playerID string, relType types.RelationshipType, category types.Category) (types.Graph, error)
	Actions() []*types.Action
	SendMessage(playerID string, message string) error
}
