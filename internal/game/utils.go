package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// DataLoader handles loading catalog overrides from a data directory.
// Every file is optional; a missing one falls back to the built-in table.
type DataLoader struct {
	basePath string
	logger   *zap.Logger
}

// NewDataLoader creates a new data loader
func NewDataLoader(basePath string, logger *zap.Logger) *DataLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataLoader{
		basePath: basePath,
		logger:   logger,
	}
}

// LoadEvents loads life event definitions from events.yaml
func (dl *DataLoader) LoadEvents() ([]*types.LifeEvent, error) {
	data, err := dl.read("events.yaml")
	if err != nil {
		return nil, err
	}
	events, err := decodeEvents(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse events data: %w", err)
	}
	return events, nil
}

// LoadDisasters loads disaster definitions from disasters.yaml
func (dl *DataLoader) LoadDisasters() ([]*types.Disaster, error) {
	data, err := dl.read("disasters.yaml")
	if err != nil {
		return nil, err
	}
	disasters, err := decodeDisasters(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse disasters data: %w", err)
	}
	return disasters, nil
}

// LoadNames loads the name pools from names.yaml
func (dl *DataLoader) LoadNames() (Names, error) {
	data, err := dl.read("names.yaml")
	if err != nil {
		return Names{}, err
	}
	names, err := decodeNames(data)
	if err != nil {
		return Names{}, fmt.Errorf("failed to parse names data: %w", err)
	}
	return names, nil
}

// LoadCatalog builds a catalog from the built-in tables, replacing each one
// that has an override file in the data directory.
func (dl *DataLoader) LoadCatalog() (*Catalog, error) {
	base, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	events, disasters, names := base.Events, base.Disasters, base.Names

	if loaded, err := dl.LoadEvents(); err == nil {
		events = loaded
		dl.logger.Info("Loaded events", zap.Int("count", len(events)))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if loaded, err := dl.LoadDisasters(); err == nil {
		disasters = loaded
		dl.logger.Info("Loaded disasters", zap.Int("count", len(disasters)))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if loaded, err := dl.LoadNames(); err == nil {
		names = loaded
		dl.logger.Info("Loaded names",
			zap.Int("first", len(names.First)),
			zap.Int("last", len(names.Last)))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	catalog, err := NewCatalog(base.Actions, events, disasters, names)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", dl.basePath, err)
	}
	return catalog, nil
}

func (dl *DataLoader) read(name string) ([]byte, error) {
	path := filepath.Join(dl.basePath, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
