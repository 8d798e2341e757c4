package career

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/user/crooked-ladder/internal/types"
)

// StateStorage handles persistence of the career state
type StateStorage struct {
	savePath  string
	stateLock sync.RWMutex
}

// NewStateStorage creates a new career state storage
func NewStateStorage(savePath string) *StateStorage {
	// Create data directory if it doesn't exist
	dir := filepath.Dir(savePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		// If we can't create the directory, fall back to the default path
		savePath = "./data/career_state.json"
	}

	return &StateStorage{
		savePath: savePath,
	}
}

// SaveState saves the career state to disk
func (ss *StateStorage) SaveState(state *types.CareerState) error {
	ss.stateLock.Lock()
	defer ss.stateLock.Unlock()

	dir := filepath.Dir(ss.savePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal career state: %w", err)
	}

	if err := os.WriteFile(ss.savePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write career state: %w", err)
	}

	return nil
}

// LoadState loads the career state from disk
func (ss *StateStorage) LoadState() (*types.CareerState, error) {
	ss.stateLock.Lock()
	defer ss.stateLock.Unlock()

	// Return empty state if no file has been written yet
	if _, err := os.Stat(ss.savePath); os.IsNotExist(err) {
		return &types.CareerState{
			Characters:  make(map[string]*types.Character),
			Employments: make(map[string]*types.EmploymentState),
		}, nil
	}

	data, err := os.ReadFile(ss.savePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read career state file: %w", err)
	}

	var state types.CareerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse career state: %w", err)
	}

	// Ensure all maps are initialized
	if state.Characters == nil {
		state.Characters = make(map[string]*types.Character)
	}
	if state.Employments == nil {
		state.Employments = make(map[string]*types.EmploymentState)
	}

	// Ensure all characters have initialized skill maps
	for _, character := range state.Characters {
		if character.Attributes.Skills == nil {
			character.Attributes.Skills = make(map[types.Skill]int)
		}
		if character.History == nil {
			character.History = make([]types.CareerDecision, 0)
		}
	}

	return &state, nil
}
