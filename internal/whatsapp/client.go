package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/vida-loka-life/config"
	"github.com/user/vida-loka-life/internal/interfaces"
	"github.com/user/vida-loka-life/internal/types"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waTypes "go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

// ClientManager handles WhatsApp client connections
type ClientManager struct {
	clients     map[string]*ClientInfo
	gameManager interfaces.GameManager
	formatter   *MessageFormatter
	config      config.Config
	logger      *zap.Logger
	mutex       sync.RWMutex
}

// Ensure ClientManager can deliver game messages
var _ interfaces.MessageSender = (*ClientManager)(nil)

// ClientInfo holds information about a WhatsApp client connection
type ClientInfo struct {
	UUID        string
	PhoneNumber string
	Client      *whatsmeow.Client
	Store       *store.Device
}

// NewClientManager creates a new WhatsApp client manager
func NewClientManager(gameManager interfaces.GameManager, cfg config.Config, logger *zap.Logger) *ClientManager {
	cm := newClientManager(gameManager, cfg, logger)

	// Restore existing sessions
	cm.restoreExistingSessions()

	return cm
}

func newClientManager(gameManager interfaces.GameManager, cfg config.Config, logger *zap.Logger) *ClientManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientManager{
		clients:     make(map[string]*ClientInfo),
		gameManager: gameManager,
		formatter:   NewMessageFormatter(),
		config:      cfg,
		logger:      logger,
	}
}

// restoreExistingSessions attempts to restore all existing WhatsApp sessions
func (cm *ClientManager) restoreExistingSessions() {
	// Create store directory if it doesn't exist
	if err := os.MkdirAll(cm.config.WhatsApp.StoreDir, 0755); err != nil {
		cm.logger.Error("Failed to create store directory", zap.Error(err))
		return
	}

	// Look for all database files in the store directory
	pattern := filepath.Join(cm.config.WhatsApp.StoreDir, "store_*.db")
	files, err := filepath.Glob(pattern)
	if err != nil {
		cm.logger.Error("Failed to scan for existing sessions", zap.Error(err))
		return
	}

	type sessionFile struct {
		file      string
		sessionID string
		modTime   time.Time
	}

	// Keep the most recent session file for each phone number
	latestSessions := make(map[string]sessionFile)
	for _, file := range files {
		phoneNumber, sessionID, ok := parseStoreFileName(filepath.Base(file))
		if !ok {
			continue
		}

		fileInfo, err := os.Stat(file)
		if err != nil {
			cm.logger.Error("Failed to get file info",
				zap.String("file", file),
				zap.Error(err))
			continue
		}

		if current, exists := latestSessions[phoneNumber]; !exists || fileInfo.ModTime().After(current.modTime) {
			latestSessions[phoneNumber] = sessionFile{
				file:      file,
				sessionID: sessionID,
				modTime:   fileInfo.ModTime(),
			}
		}
	}

	for phoneNumber, latest := range latestSessions {
		// Remove old session files for this phone number
		for _, file := range files {
			if strings.Contains(file, "store_"+phoneNumber+"_") && file != latest.file {
				if err := os.Remove(file); err != nil {
					cm.logger.Error("Failed to remove old session file",
						zap.String("file", file),
						zap.Error(err))
				} else {
					cm.logger.Info("Removed old session file",
						zap.String("file", file))
				}
			}
		}

		// Initialize database and store
		dbPath := fmt.Sprintf("file:%s/%s?_foreign_keys=on", cm.config.WhatsApp.StoreDir, filepath.Base(latest.file))
		dbLog := waLog.Stdout("Database", "INFO", true)
		container, err := sqlstore.New("sqlite3", dbPath, dbLog)
		if err != nil {
			cm.logger.Error("Failed to initialize database",
				zap.String("phoneNumber", phoneNumber),
				zap.Error(err))
			continue
		}

		deviceStore, err := container.GetFirstDevice()
		if err != nil {
			cm.logger.Info("No valid session found in database",
				zap.String("phoneNumber", phoneNumber))
			continue
		}

		clientLog := waLog.Stdout("Client", "INFO", true)
		client := whatsmeow.NewClient(deviceStore, clientLog)
		client.AddEventHandler(cm.handleWhatsAppEvent)

		cm.mutex.Lock()
		cm.clients[phoneNumber] = &ClientInfo{
			UUID:        latest.sessionID,
			PhoneNumber: phoneNumber,
			Client:      client,
			Store:       deviceStore,
		}
		cm.mutex.Unlock()

		// Connect if we have a valid session
		if client.Store.ID != nil {
			go func(phone string, cli *whatsmeow.Client) {
				if err := cli.Connect(); err != nil {
					cm.logger.Error("Failed to connect restored client",
						zap.String("phoneNumber", phone),
						zap.Error(err))
					return
				}
				cm.logger.Info("Successfully connected restored client",
					zap.String("phoneNumber", phone))
			}(phoneNumber, client)
		} else {
			cm.logger.Info("Session requires QR code login",
				zap.String("phoneNumber", phoneNumber))
		}
	}
}

// newClient opens the device store for a session and builds a client on it.
// fresh skips any device already in the store.
func (cm *ClientManager) newClient(sessionID, phoneNumber string, fresh bool) (*whatsmeow.Client, *store.Device, error) {
	dbPath := fmt.Sprintf("file:%s/store_%s_%s.db?_foreign_keys=on", cm.config.WhatsApp.StoreDir, phoneNumber, sessionID)

	dbLog := waLog.Stdout("Database", "INFO", true)
	container, err := sqlstore.New("sqlite3", dbPath, dbLog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var deviceStore *store.Device
	if !fresh {
		deviceStore, err = container.GetFirstDevice()
	}
	if fresh || err != nil {
		deviceStore = container.NewDevice()
	}

	// Set device properties
	store.DeviceProps.RequireFullSync = proto.Bool(true)
	store.DeviceProps.Os = proto.String(cm.config.WhatsApp.ClientName)

	clientLog := waLog.Stdout("Client", "INFO", true)
	client := whatsmeow.NewClient(deviceStore, clientLog)
	client.AddEventHandler(cm.handleWhatsAppEvent)

	return client, deviceStore, nil
}

// GetClient retrieves a WhatsApp client by phone number
func (cm *ClientManager) GetClient(phoneNumber string) (*whatsmeow.Client, bool) {
	cm.mutex.RLock()
	clientInfo, exists := cm.clients[phoneNumber]
	cm.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	// If client exists but not connected, try to connect
	if !clientInfo.Client.IsConnected() && clientInfo.Store.ID != nil {
		if err := clientInfo.Client.Connect(); err != nil {
			cm.logger.Error("Failed to connect client",
				zap.String("phoneNumber", phoneNumber),
				zap.Error(err))
			return nil, false
		}
		cm.logger.Info("Successfully reconnected client",
			zap.String("phoneNumber", phoneNumber))
	}

	return clientInfo.Client, true
}

// GetQRChannel starts a fresh device store for sessionID and returns the
// channel its pairing codes arrive on
func (cm *ClientManager) GetQRChannel(sessionID, phoneNumber string) (<-chan whatsmeow.QRChannelItem, error) {
	if err := os.MkdirAll(cm.config.WhatsApp.StoreDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	// If client exists, disconnect and remove it
	if clientInfo, exists := cm.clients[phoneNumber]; exists {
		clientInfo.Client.Disconnect()
		delete(cm.clients, phoneNumber)
	}

	client, deviceStore, err := cm.newClient(sessionID, phoneNumber, true)
	if err != nil {
		return nil, err
	}

	// Get QR channel before storing or connecting
	qrChan, err := client.GetQRChannel(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get QR channel: %w", err)
	}

	cm.clients[phoneNumber] = &ClientInfo{
		UUID:        sessionID,
		PhoneNumber: phoneNumber,
		Client:      client,
		Store:       deviceStore,
	}

	go func() {
		if err := client.Connect(); err != nil {
			cm.logger.Error("Failed to connect client",
				zap.String("phoneNumber", phoneNumber),
				zap.Error(err))
			return
		}

		cm.logger.Info("Client connected successfully",
			zap.String("phoneNumber", phoneNumber))
	}()

	return qrChan, nil
}

// Disconnect closes a specific WhatsApp connection
func (cm *ClientManager) Disconnect(phoneNumber string) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	clientInfo, exists := cm.clients[phoneNumber]
	if !exists {
		return fmt.Errorf("client not found for phone number: %s", phoneNumber)
	}

	clientInfo.Client.Disconnect()
	delete(cm.clients, phoneNumber)
	return nil
}

// DisconnectAll closes all WhatsApp connections
func (cm *ClientManager) DisconnectAll() {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	for phoneNumber, clientInfo := range cm.clients {
		if clientInfo.Client != nil {
			clientInfo.Client.Disconnect()
			cm.logger.Info("Disconnected client", zap.String("phoneNumber", phoneNumber))
		}
	}

	cm.clients = make(map[string]*ClientInfo)
}

// IsLoggedIn checks if a client is logged in
func (cm *ClientManager) IsLoggedIn(phoneNumber string) (bool, error) {
	client, exists := cm.GetClient(phoneNumber)
	if !exists {
		return false, fmt.Errorf("client not found for phone number: %s", phoneNumber)
	}

	return client.IsLoggedIn(), nil
}

// SendTextMessage sends a text message to a WhatsApp user. phoneNumber picks
// the bot account; any connected account is used when it has no client.
func (cm *ClientManager) SendTextMessage(phoneNumber, recipient, message string) (string, error) {
	client, exists := cm.GetClient(phoneNumber)
	if !exists {
		client = cm.firstClient()
	}
	if client == nil {
		return "", fmt.Errorf("client not found for phone number: %s", phoneNumber)
	}

	recipientJID, err := parseJID(recipient)
	if err != nil {
		return "", err
	}

	msg := &waProto.Message{
		Conversation: proto.String(message),
	}

	response, err := client.SendMessage(context.Background(), recipientJID, msg)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return response.ID, nil
}

// SendMessage implements the interfaces.MessageSender interface
func (cm *ClientManager) SendMessage(phoneNumber, recipient, message string) (string, error) {
	return cm.SendTextMessage(phoneNumber, recipient, message)
}

// firstClient returns the bot's client when only one account is linked
func (cm *ClientManager) firstClient() *whatsmeow.Client {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for _, clientInfo := range cm.clients {
		return clientInfo.Client
	}
	return nil
}

// handleWhatsAppEvent processes incoming WhatsApp events
func (cm *ClientManager) handleWhatsAppEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		cm.handleIncomingMessage(v)
	case *events.Connected:
		cm.logger.Info("WhatsApp client connected")
	case *events.Disconnected:
		cm.logger.Info("WhatsApp client disconnected")
	case *events.LoggedOut:
		cm.logger.Info("WhatsApp client logged out")
	}
}

// handleIncomingMessage processes incoming WhatsApp messages
func (cm *ClientManager) handleIncomingMessage(message *events.Message) {
	// Skip messages sent by this bot
	if message.Info.MessageSource.IsFromMe {
		return
	}

	content := message.Message.GetConversation()
	if content == "" && message.Message.ExtendedTextMessage != nil {
		content = message.Message.ExtendedTextMessage.GetText()
	}
	if content == "" {
		return
	}

	// Group messages must start with '/ ', private ones with '/'
	if message.Info.Chat.Server == waTypes.GroupServer {
		if !strings.HasPrefix(content, "/ ") {
			return
		}
		content = "/" + strings.TrimPrefix(content, "/ ")
	} else if !strings.HasPrefix(content, "/") {
		return
	}

	cm.logger.Debug("Received message",
		zap.String("content", content),
		zap.String("sender", message.Info.Sender.User),
		zap.String("chat", message.Info.Chat.User))

	response := cm.processGameCommand(message.Info.Sender.User, content)
	if response == "" {
		return
	}

	client := cm.firstClient()
	if client == nil {
		cm.logger.Error("No client available to send response")
		return
	}

	msg := &waProto.Message{
		Conversation: proto.String(response),
	}
	if _, err := client.SendMessage(context.Background(), message.Info.Chat, msg); err != nil {
		cm.logger.Error("Failed to send response",
			zap.String("sender", message.Info.Sender.User),
			zap.Error(err))
	}
}

// processGameCommand handles game commands from players
func (cm *ClientManager) processGameCommand(sender, command string) string {
	verb, args := cleanCommand(command)
	if !strings.HasPrefix(verb, "/") {
		return "Commands must start with '/'. Send /help to see what you can do."
	}

	switch strings.TrimPrefix(verb, "/") {
	case "start", "new":
		return cm.handleStartCommand(sender, args)
	case "status", "me":
		return cm.handleStatusCommand(sender)
	case "people":
		return cm.handlePeopleCommand(sender, args)
	case "act":
		return cm.handleActCommand(sender, args)
	case "age":
		return cm.handleAgeCommand(sender)
	case "choose":
		return cm.handleChooseCommand(sender, args)
	case "meet":
		return cm.handleMeetCommand(sender, args)
	case "actions":
		return cm.formatter.FormatActions(cm.gameManager.Actions())
	case "help":
		return cm.handleHelpCommand()
	}

	return "Unknown command. Send /help to see what you can do."
}

// handleStartCommand begins a new life
func (cm *ClientManager) handleStartCommand(sender string, args []string) string {
	if len(args) == 0 {
		return "Tell me your name: /start [name]"
	}
	name := strings.Join(args, " ")

	snap, err := cm.gameManager.StartLife(sender, name)
	if err != nil {
		return cm.failure(sender, "start", err)
	}

	c := snap.Character
	return fmt.Sprintf("👶 *%s* is born!\n\n", c.Name) +
		cm.formatter.FormatPeople(c.Relationships) +
		"\n\nSend /age to live another year or /help for everything else."
}

// handleStatusCommand shows the character's stats
func (cm *ClientManager) handleStatusCommand(sender string) string {
	snap, err := cm.gameManager.GetLife(sender)
	if err != nil {
		return cm.failure(sender, "status", err)
	}

	out := cm.formatter.FormatStatus(snap.Character)
	if snap.PendingEvent != nil {
		out += "\n\n" + cm.formatter.FormatEvent(snap.PendingEvent)
	}
	return out
}

// handlePeopleCommand lists relationships, optionally by category
func (cm *ClientManager) handlePeopleCommand(sender string, args []string) string {
	var category types.Category
	if len(args) > 0 {
		category = types.Category(strings.ToLower(args[0]))
		switch category {
		case types.CategoryFamily, types.CategoryRomantic, types.CategoryFriends, types.CategoryWork:
		default:
			return "Pick one of: family, romantic, friends, work"
		}
	}

	graph, err := cm.gameManager.ListRelationships(sender, "", category)
	if err != nil {
		return cm.failure(sender, "people", err)
	}
	if category == "" {
		return cm.formatter.FormatPeople(graph)
	}

	// Keep numbering aligned with the full list used by /act
	all, err := cm.gameManager.ListRelationships(sender, "", "")
	if err != nil {
		return cm.failure(sender, "people", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "👥 *%s*\n", strings.ToUpper(string(category)))
	for _, r := range graph {
		fmt.Fprintf(&b, "\n%d. %s, %s, %d", indexOf(all, r.ID)+1, r.Name, label(string(r.Type)), r.Age)
	}
	return b.String()
}

// handleActCommand performs an action on a numbered relationship
func (cm *ClientManager) handleActCommand(sender string, args []string) string {
	if len(args) < 2 {
		return "Usage: /act [person number] [action]. See /people and /actions."
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return "Invalid person number. See /people."
	}

	graph, err := cm.gameManager.ListRelationships(sender, "", "")
	if err != nil {
		return cm.failure(sender, "act", err)
	}
	if n > len(graph) {
		return fmt.Sprintf("There is no person number %d. See /people.", n)
	}

	res, err := cm.gameManager.ResolveAction(sender, graph[n-1].ID, strings.ToLower(args[1]))
	if err != nil {
		return cm.failure(sender, "act", err)
	}
	return cm.formatter.FormatAction(res)
}

// handleAgeCommand advances one year
func (cm *ClientManager) handleAgeCommand(sender string) string {
	res, err := cm.gameManager.AdvanceYear(sender)
	if err != nil {
		return cm.failure(sender, "age", err)
	}
	if res.Err != nil {
		if errors.Is(res.Err, types.ErrDeceased) {
			return "🕯️ This life is over. Send /start [name] to begin a new one."
		}
		return fmt.Sprintf("🚫 %v", res.Err)
	}
	return cm.formatter.FormatYear(res)
}

// handleChooseCommand answers the pending event by letter, number or choice id
func (cm *ClientManager) handleChooseCommand(sender string, args []string) string {
	if len(args) == 0 {
		return "Usage: /choose [letter]"
	}

	snap, err := cm.gameManager.GetLife(sender)
	if err != nil {
		return cm.failure(sender, "choose", err)
	}
	if snap.PendingEvent == nil {
		return "Nothing is waiting for an answer. Send /age to live another year."
	}

	choiceID, ok := resolveChoice(snap.PendingEvent, strings.ToLower(args[0]))
	if !ok {
		return "Invalid choice.\n\n" + cm.formatter.FormatEvent(snap.PendingEvent)
	}

	res, err := cm.gameManager.ChooseEventOption(sender, choiceID)
	if err != nil {
		return cm.failure(sender, "choose", err)
	}
	return cm.formatter.FormatChoice(res)
}

// handleMeetCommand introduces someone new
func (cm *ClientManager) handleMeetCommand(sender string, args []string) string {
	kind := types.DiscoverFriend
	if len(args) > 0 {
		kind = types.DiscoverKind(strings.ToLower(args[0]))
	}

	res, err := cm.gameManager.Discover(sender, kind)
	if err != nil {
		return cm.failure(sender, "meet", err)
	}
	return cm.formatter.FormatDiscover(res)
}

// handleHelpCommand lists the commands
func (cm *ClientManager) handleHelpCommand() string {
	return "📖 *VIDA LOKA LIFE COMMANDS*\n\n" +
		"/start [name]: begin a new life\n" +
		"/status: your stats\n" +
		"/people [family|romantic|friends|work]: the people in your life\n" +
		"/actions: what you can do with them\n" +
		"/act [number] [action]: interact with someone\n" +
		"/meet [friend|classmate|coworker|date]: meet someone new\n" +
		"/age: live another year\n" +
		"/choose [letter]: answer a life event\n" +
		"/help: this message\n\n" +
		"In groups, start commands with '/ '."
}

// failure turns a manager error into a reply
func (cm *ClientManager) failure(sender, command string, err error) string {
	if errors.Is(err, types.ErrPlayerNotFound) {
		return "You have no life yet. Send /start [name] to be born."
	}

	cm.logger.Error("Command failed",
		zap.String("sender", sender),
		zap.String("command", command),
		zap.Error(err))
	return "Something went wrong, try again in a moment."
}

// resolveChoice maps "a", "1" or a literal choice id onto the event's choice ids
func resolveChoice(event *types.LifeEvent, answer string) (string, bool) {
	if _, ok := event.Choice(answer); ok {
		return answer, true
	}

	idx := -1
	if len(answer) == 1 && answer[0] >= 'a' && answer[0] <= 'z' {
		idx = int(answer[0] - 'a')
	} else if n, err := strconv.Atoi(answer); err == nil {
		idx = n - 1
	}
	if idx < 0 || idx >= len(event.Choices) {
		return "", false
	}
	return event.Choices[idx].ID, true
}

func indexOf(graph types.Graph, id string) int {
	for i, r := range graph {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// cleanCommand splits a message into a lowercased verb and its arguments.
// Arguments keep their case so names survive.
func cleanCommand(command string) (string, []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// parseJID converts a string to a WhatsApp JID
func parseJID(jidString string) (waTypes.JID, error) {
	if !strings.ContainsRune(jidString, '@') {
		// Assume this is a phone number, add WhatsApp suffix
		jidString = jidString + "@" + waTypes.DefaultUserServer
	}

	return waTypes.ParseJID(jidString)
}
