package whatsapp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/user/vida-loka-life/config"
	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// Mock GameManager for testing
type MockGameManager struct {
	mock.Mock
}

func (m *MockGameManager) StartLife(playerID, name string) (*types.Snapshot, error) {
	args := m.Called(playerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Snapshot), args.Error(1)
}

func (m *MockGameManager) GetLife(playerID string) (*types.Snapshot, error) {
	args := m.Called(playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Snapshot), args.Error(1)
}

func (m *MockGameManager) ResolveAction(playerID, targetID, actionID string) (types.ActionResult, error) {
	args := m.Called(playerID, targetID, actionID)
	return args.Get(0).(types.ActionResult), args.Error(1)
}

func (m *MockGameManager) AdvanceYear(playerID string) (types.YearResult, error) {
	args := m.Called(playerID)
	return args.Get(0).(types.YearResult), args.Error(1)
}

func (m *MockGameManager) ChooseEventOption(playerID, choiceID string) (types.ChoiceResult, error) {
	args := m.Called(playerID, choiceID)
	return args.Get(0).(types.ChoiceResult), args.Error(1)
}

func (m *MockGameManager) Discover(playerID string, kind types.DiscoverKind) (types.DiscoverResult, error) {
	args := m.Called(playerID, kind)
	return args.Get(0).(types.DiscoverResult), args.Error(1)
}

func (m *MockGameManager) ListRelationships(playerID string, relType types.RelationshipType, category types.Category) (types.Graph, error) {
	args := m.Called(playerID, relType, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.Graph), args.Error(1)
}

func (m *MockGameManager) Actions() []*types.Action {
	args := m.Called()
	return args.Get(0).([]*types.Action)
}

func (m *MockGameManager) SendMessage(playerID string, message string) error {
	args := m.Called(playerID, message)
	return args.Error(0)
}

const sender = "5521999999999"

func newTestClientManager(gm *MockGameManager) *ClientManager {
	logger, _ := zap.NewDevelopment()
	return newClientManager(gm, config.DefaultConfig(), logger)
}

func testCharacter() *types.Character {
	return &types.Character{
		ID:    "char-1",
		Name:  "Ana Souza",
		Age:   17,
		Alive: true,
		Stats: types.Stats{
			Health: 90, Happiness: 70, Smarts: 80, Looks: 60, Wealth: 12500, SocialStanding: 40,
		},
		Relationships: types.Graph{
			{ID: "rel-1", Name: "Maria Souza", Type: types.Parent, Age: 45, Alive: true, Mood: types.MoodHappy,
				Stats: types.RelationshipStats{Level: 80, Trust: 70, Respect: 60}},
			{ID: "rel-2", Name: "João Souza", Type: types.Parent, Age: 47, Alive: false},
			{ID: "rel-3", Name: "Bia Lima", Type: types.Lover, Age: 17, Alive: true, Mood: types.MoodExcited,
				Stats: types.RelationshipStats{Level: 60, Trust: 50, Respect: 50, Love: 75}},
		},
		RelationshipStatus: types.StatusDating,
		Education:          types.EducationHighSchool,
		GPA:                3.2,
	}
}

func testEvent() *types.LifeEvent {
	return &types.LifeEvent{
		ID:          "scholarship_offer",
		Title:       "Scholarship Offer",
		Description: "A university offers you a scholarship.",
		Choices: []types.Choice{
			{ID: "accept", Text: "Accept it"},
			{ID: "decline", Text: "Turn it down"},
		},
	}
}

func TestProcessGameCommandRouting(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)

	response := cm.processGameCommand(sender, "status")
	assert.Contains(t, response, "must start with '/'")

	response = cm.processGameCommand(sender, "/dance")
	assert.Contains(t, response, "Unknown command")

	response = cm.processGameCommand(sender, "/HELP")
	assert.Contains(t, response, "VIDA LOKA LIFE COMMANDS")
	assert.Contains(t, response, "/start [name]")
	assert.Contains(t, response, "/choose [letter]")

	gm.AssertExpectations(t)
}

func TestHandleStartCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)

	response := cm.processGameCommand(sender, "/start")
	assert.Contains(t, response, "/start [name]")

	c := testCharacter()
	gm.On("StartLife", sender, "Ana Souza").Return(&types.Snapshot{Character: c}, nil)

	response = cm.processGameCommand(sender, "/start Ana Souza")
	assert.Contains(t, response, "*Ana Souza* is born!")
	assert.Contains(t, response, "1. Maria Souza, parent, 45")

	gm.AssertExpectations(t)
}

func TestHandleStatusCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)

	gm.On("GetLife", sender).Return(&types.Snapshot{
		Character:    testCharacter(),
		PendingEvent: testEvent(),
	}, nil).Once()

	response := cm.processGameCommand(sender, "/status")
	assert.Contains(t, response, "*Ana Souza*, 17 years old (alive)")
	assert.Contains(t, response, "Wealth: $12,500")
	assert.Contains(t, response, "Education: high school (GPA 3.20)")
	assert.Contains(t, response, "People: 3 (2 living)")
	assert.Contains(t, response, "A. Accept it")
	assert.Contains(t, response, "B. Turn it down")

	gm.On("GetLife", "other").Return(nil, types.ErrPlayerNotFound).Once()
	response = cm.processGameCommand("other", "/status")
	assert.Contains(t, response, "You have no life yet")

	gm.AssertExpectations(t)
}

func TestHandlePeopleCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)
	c := testCharacter()

	gm.On("ListRelationships", sender, types.RelationshipType(""), types.Category("")).Return(c.Relationships, nil)
	gm.On("ListRelationships", sender, types.RelationshipType(""), types.CategoryRomantic).
		Return(c.Relationships.ByCategory(types.CategoryRomantic), nil)

	response := cm.processGameCommand(sender, "/people")
	assert.Contains(t, response, "1. Maria Souza, parent, 45 | level 80, trust 70 | happy")
	assert.Contains(t, response, "2. João Souza, parent, 47 ✝️")
	assert.Contains(t, response, "3. Bia Lima, lover, 17 | level 60, trust 50, love 75 | excited")

	// Filtered listings keep the full-list numbering
	response = cm.processGameCommand(sender, "/people Romantic")
	assert.Contains(t, response, "ROMANTIC")
	assert.Contains(t, response, "3. Bia Lima, lover, 17")
	assert.NotContains(t, response, "Maria")

	response = cm.processGameCommand(sender, "/people pets")
	assert.Contains(t, response, "Pick one of")

	gm.AssertExpectations(t)
}

func TestHandleActCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)
	c := testCharacter()

	response := cm.processGameCommand(sender, "/act 1")
	assert.Contains(t, response, "Usage: /act")

	response = cm.processGameCommand(sender, "/act x compliment")
	assert.Contains(t, response, "Invalid person number")

	gm.On("ListRelationships", sender, types.RelationshipType(""), types.Category("")).Return(c.Relationships, nil)

	response = cm.processGameCommand(sender, "/act 9 compliment")
	assert.Contains(t, response, "no person number 9")

	gm.On("ResolveAction", sender, "rel-3", "compliment").Return(types.ActionResult{
		Success: true,
		Message: "Bia Lima loved the compliment.",
		Effects: types.Effects{
			Character:    []types.Effect{{Stat: types.StatHappiness, Delta: 5}},
			Relationship: []types.RelEffect{{Stat: types.RelLevel, Delta: 4}},
		},
	}, nil).Once()

	response = cm.processGameCommand(sender, "/act 3 Compliment")
	assert.Contains(t, response, "✅ Bia Lima loved the compliment.")
	assert.Contains(t, response, "(happiness +5, level +4)")

	gm.On("ResolveAction", sender, "rel-1", "propose").Return(types.ActionResult{
		Message: "requirement not met",
		Err:     types.ErrRequirementNotMet,
	}, nil).Once()

	response = cm.processGameCommand(sender, "/act 1 propose")
	assert.Contains(t, response, "🚫 requirement not met")

	gm.AssertExpectations(t)
}

func TestHandleAgeCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)

	c := testCharacter()
	c.Age = 18
	gm.On("AdvanceYear", sender).Return(types.YearResult{
		Character:  c,
		News:       []string{"You graduated from high school."},
		FiredEvent: testEvent(),
	}, nil).Once()

	response := cm.processGameCommand(sender, "/age")
	assert.Contains(t, response, "Happy 18th birthday, Ana Souza!")
	assert.Contains(t, response, "• You graduated from high school.")
	assert.Contains(t, response, "*Scholarship Offer*")
	assert.Contains(t, response, "A. Accept it")

	gm.On("AdvanceYear", sender).Return(types.YearResult{Err: types.ErrDeceased}, nil).Once()
	response = cm.processGameCommand(sender, "/age")
	assert.Contains(t, response, "This life is over")

	gm.On("AdvanceYear", sender).Return(types.YearResult{}, errors.New("disk full")).Once()
	response = cm.processGameCommand(sender, "/age")
	assert.Contains(t, response, "Something went wrong")

	gm.AssertExpectations(t)
}

func TestHandleChooseCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)

	gm.On("GetLife", sender).Return(&types.Snapshot{Character: testCharacter()}, nil).Once()
	response := cm.processGameCommand(sender, "/choose a")
	assert.Contains(t, response, "Nothing is waiting for an answer")

	gm.On("GetLife", sender).Return(&types.Snapshot{
		Character:    testCharacter(),
		PendingEvent: testEvent(),
	}, nil)

	response = cm.processGameCommand(sender, "/choose z")
	assert.Contains(t, response, "Invalid choice")

	gm.On("ChooseEventOption", sender, "decline").Return(types.ChoiceResult{
		Success: true,
		Message: "You turned the scholarship down.",
	}, nil).Once()
	response = cm.processGameCommand(sender, "/choose B")
	assert.Contains(t, response, "📝 You turned the scholarship down.")

	gm.On("ChooseEventOption", sender, "accept").Return(types.ChoiceResult{
		Success: true,
		Message: "You accepted the scholarship.",
		Effects: types.Effects{Character: []types.Effect{{Stat: types.StatWealth, Delta: 1000}}},
	}, nil).Once()
	response = cm.processGameCommand(sender, "/choose 1")
	assert.Contains(t, response, "(wealth +1000)")

	gm.AssertExpectations(t)
}

func TestHandleMeetCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)

	gm.On("Discover", sender, types.DiscoverFriend).Return(types.DiscoverResult{
		Success: true,
		Message: "You met Caio Reis.",
	}, nil).Once()
	response := cm.processGameCommand(sender, "/meet")
	assert.Contains(t, response, "🤝 You met Caio Reis.")

	gm.On("Discover", sender, types.DiscoverCoworker).Return(types.DiscoverResult{
		Message: "requirement not met: too young to have coworkers",
		Err:     types.ErrRequirementNotMet,
	}, nil).Once()
	response = cm.processGameCommand(sender, "/meet coworker")
	assert.Contains(t, response, "🚫 requirement not met")

	gm.AssertExpectations(t)
}

func TestHandleActionsCommand(t *testing.T) {
	gm := new(MockGameManager)
	cm := newTestClientManager(gm)

	gm.On("Actions").Return([]*types.Action{
		{ID: "compliment", Description: "Say something nice"},
		{ID: "gift", Description: "Give a gift", Cost: 1500},
	})

	response := cm.processGameCommand(sender, "/actions")
	assert.Contains(t, response, "*compliment*: Say something nice")
	assert.Contains(t, response, "*gift*: Give a gift ($1,500)")

	gm.AssertExpectations(t)
}

func TestResolveChoice(t *testing.T) {
	event := testEvent()

	id, ok := resolveChoice(event, "accept")
	require.True(t, ok)
	assert.Equal(t, "accept", id)

	id, ok = resolveChoice(event, "b")
	require.True(t, ok)
	assert.Equal(t, "decline", id)

	id, ok = resolveChoice(event, "2")
	require.True(t, ok)
	assert.Equal(t, "decline", id)

	_, ok = resolveChoice(event, "c")
	assert.False(t, ok)
	_, ok = resolveChoice(event, "0")
	assert.False(t, ok)
}

func TestCleanCommand(t *testing.T) {
	verb, args := cleanCommand("  /START  Ana   Souza ")
	assert.Equal(t, "/start", verb)
	assert.Equal(t, []string{"Ana", "Souza"}, args)

	verb, args = cleanCommand("   ")
	assert.Empty(t, verb)
	assert.Empty(t, args)
}

func TestParseJID(t *testing.T) {
	jid, err := parseJID(sender)
	require.NoError(t, err)
	assert.Equal(t, sender, jid.User)
	assert.Equal(t, "s.whatsapp.net", jid.Server)

	jid, err = parseJID("120363000000000000@g.us")
	require.NoError(t, err)
	assert.Equal(t, "g.us", jid.Server)
}

func TestParseStoreFileName(t *testing.T) {
	phone, session, ok := parseStoreFileName("store_5521999999999_0b1c2d.db")
	require.True(t, ok)
	assert.Equal(t, "5521999999999", phone)
	assert.Equal(t, "0b1c2d", session)

	_, _, ok = parseStoreFileName("other.db")
	assert.False(t, ok)
	_, _, ok = parseStoreFileName("store_5521999999999.db")
	assert.False(t, ok)
}
