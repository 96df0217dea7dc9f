package whatsapp

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"
	"go.uber.org/zap"
)

// pairingTimeout bounds the wait for WhatsApp to hand out a pairing code
const pairingTimeout = 60 * time.Second

var (
	// ErrAlreadyPaired is returned when the bot number is already logged in
	ErrAlreadyPaired = errors.New("bot number already paired")
	// ErrPairingNotFound is returned when removing an unknown pairing
	ErrPairingNotFound = errors.New("pairing not found")
)

// Pairing is a bot number linked, or waiting to be linked, to WhatsApp.
// Players message the bot number and their lives are keyed by their own
// number, so one pairing hosts any number of lives.
type Pairing struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Linked      bool      `json:"linked"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// key is the "<phone>_<id>" stem shared by the device store and QR image
func (p Pairing) key() string {
	return p.PhoneNumber + "_" + p.ID
}

// PairingRegistry keeps an index of pairings next to the device stores
type PairingRegistry struct {
	storeDir string
	logger   *zap.Logger
	linked   func(storePath string) bool

	mu sync.Mutex
}

// NewPairingRegistry creates a registry rooted at the WhatsApp store dir
func NewPairingRegistry(storeDir string, logger *zap.Logger) *PairingRegistry {
	pr := &PairingRegistry{storeDir: storeDir, logger: logger}
	pr.linked = pr.deviceLinked
	return pr
}

// QRDir is where pairing images are written
func (pr *PairingRegistry) QRDir() string {
	return filepath.Join(pr.storeDir, "qrcodes")
}

func (pr *PairingRegistry) indexPath() string {
	return filepath.Join(pr.storeDir, "pairings.json")
}

func (pr *PairingRegistry) storePath(p Pairing) string {
	return filepath.Join(pr.storeDir, "store_"+p.key()+".db")
}

func (pr *PairingRegistry) imagePath(p Pairing) string {
	return filepath.Join(pr.QRDir(), p.key()+".png")
}

// Register adds a pairing to the index, replacing one with the same id
func (pr *PairingRegistry) Register(p Pairing) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	index, err := pr.readIndex()
	if err != nil {
		return err
	}
	index[p.key()] = p
	return pr.writeIndex(index)
}

// List returns every pairing, newest first. Device stores missing from the
// index, such as those left by an earlier run, are listed as well.
func (pr *PairingRegistry) List() ([]Pairing, error) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	index, err := pr.readIndex()
	if err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(pr.storeDir, "store_*.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to list device stores: %w", err)
	}
	for _, match := range matches {
		phoneNumber, id, ok := parseStoreFileName(filepath.Base(match))
		if !ok {
			pr.logger.Warn("Skipping unrecognised device store", zap.String("path", match))
			continue
		}
		p := Pairing{ID: id, PhoneNumber: phoneNumber}
		if known, ok := index[p.key()]; ok {
			p = known
		} else if info, err := os.Stat(match); err == nil {
			p.CreatedAt = info.ModTime().UTC()
		}
		p.Linked = pr.linked(match)
		index[p.key()] = p
	}

	pairings := slices.Collect(maps.Values(index))
	slices.SortFunc(pairings, func(a, b Pairing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.key(), b.key())
	})
	return pairings, nil
}

// Remove drops a pairing along with its device store and QR image
func (pr *PairingRegistry) Remove(phoneNumber, id string) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	index, err := pr.readIndex()
	if err != nil {
		return err
	}
	p := Pairing{ID: id, PhoneNumber: phoneNumber}
	_, found := index[p.key()]
	if found {
		delete(index, p.key())
		if err := pr.writeIndex(index); err != nil {
			return err
		}
	}

	store := pr.storePath(p)
	for _, path := range []string{store, store + "-wal", store + "-shm", pr.imagePath(p)} {
		err := os.Remove(path)
		switch {
		case err == nil:
			found = true
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
		}
	}
	if !found {
		return ErrPairingNotFound
	}

	pr.logger.Info("Pairing removed",
		zap.String("phone_number", phoneNumber),
		zap.String("session_id", id))
	return nil
}

func (pr *PairingRegistry) readIndex() (map[string]Pairing, error) {
	data, err := os.ReadFile(pr.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]Pairing), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pairing index: %w", err)
	}

	var list []Pairing
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse pairing index: %w", err)
	}
	index := make(map[string]Pairing, len(list))
	for _, p := range list {
		// Link state lives in the device store, never in the index
		p.Linked = false
		index[p.key()] = p
	}
	return index, nil
}

func (pr *PairingRegistry) writeIndex(index map[string]Pairing) error {
	if err := os.MkdirAll(pr.storeDir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	list := make([]Pairing, 0, len(index))
	for _, k := range slices.Sorted(maps.Keys(index)) {
		p := index[k]
		p.Linked = false
		list = append(list, p)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pairing index: %w", err)
	}

	tmp := pr.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write pairing index: %w", err)
	}
	if err := os.Rename(tmp, pr.indexPath()); err != nil {
		return fmt.Errorf("failed to replace pairing index: %w", err)
	}
	return nil
}

// deviceLinked reports whether the device store holds a logged-in device
func (pr *PairingRegistry) deviceLinked(storePath string) bool {
	dbLog := waLog.Stdout("Database", "ERROR", true)
	container, err := sqlstore.New("sqlite3", "file:"+storePath+"?_foreign_keys=on", dbLog)
	if err != nil {
		pr.logger.Warn("Failed to open device store", zap.String("path", storePath), zap.Error(err))
		return false
	}
	device, err := container.GetFirstDevice()
	return err == nil && device.ID != nil
}

// parseStoreFileName splits "store_<phone>_<session>.db" into its parts
func parseStoreFileName(name string) (phoneNumber, sessionID string, ok bool) {
	rest, found := strings.CutPrefix(name, "store_")
	if !found {
		return "", "", false
	}
	rest, found = strings.CutSuffix(rest, ".db")
	if !found {
		return "", "", false
	}
	phoneNumber, sessionID, found = strings.Cut(rest, "_")
	if !found || phoneNumber == "" || sessionID == "" {
		return "", "", false
	}
	return phoneNumber, sessionID, true
}

// QRCodeManager links new bot numbers by QR code
type QRCodeManager struct {
	clientManager *ClientManager
	registry      *PairingRegistry
	logger        *zap.Logger
}

// NewQRCodeManager creates a new QR code manager
func NewQRCodeManager(clientManager *ClientManager, registry *PairingRegistry, logger *zap.Logger) *QRCodeManager {
	return &QRCodeManager{
		clientManager: clientManager,
		registry:      registry,
		logger:        logger,
	}
}

// Pair starts linking phoneNumber as a bot number. It returns the registered
// pairing and the code to scan from the phone.
func (qm *QRCodeManager) Pair(ctx context.Context, phoneNumber string) (Pairing, string, error) {
	if loggedIn, err := qm.clientManager.IsLoggedIn(phoneNumber); err == nil && loggedIn {
		return Pairing{}, "", ErrAlreadyPaired
	}

	p := Pairing{ID: uuid.New().String(), PhoneNumber: phoneNumber, CreatedAt: time.Now().UTC()}
	qrChan, err := qm.clientManager.GetQRChannel(p.ID, phoneNumber)
	if err != nil {
		return Pairing{}, "", fmt.Errorf("failed to get QR channel: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, pairingTimeout)
	defer cancel()

	var code string
	select {
	case evt, ok := <-qrChan:
		if !ok || evt.Event != "code" {
			return Pairing{}, "", fmt.Errorf("unexpected QR event: %q", evt.Event)
		}
		code = evt.Code
	case <-ctx.Done():
		return Pairing{}, "", fmt.Errorf("timeout waiting for QR code: %w", ctx.Err())
	}

	png, err := qm.PNG(code)
	if err != nil {
		return Pairing{}, "", err
	}
	if err := os.MkdirAll(qm.registry.QRDir(), 0755); err != nil {
		return Pairing{}, "", fmt.Errorf("failed to create QR code directory: %w", err)
	}
	if err := os.WriteFile(qm.registry.imagePath(p), png, 0644); err != nil {
		return Pairing{}, "", fmt.Errorf("failed to write QR code image: %w", err)
	}
	p.Image = "/qrcodes/" + filepath.Base(qm.registry.imagePath(p))

	if err := qm.registry.Register(p); err != nil {
		qm.logger.Warn("Failed to register pairing", zap.Error(err))
	}

	qm.logger.Info("QR code generated",
		zap.String("phone_number", phoneNumber),
		zap.String("session_id", p.ID))
	return p, code, nil
}

// PNG renders a pairing code as a QR image
func (qm *QRCodeManager) PNG(code string) ([]byte, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
