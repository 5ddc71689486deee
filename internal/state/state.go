package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileState records the last successful conversion of a source file
type FileState struct {
	MTime    int64  `json:"mtime"`
	Hash     string `json:"hash"`
	Output   string `json:"output"`
	Settings string `json:"settings"` // fingerprint of format and render options
}

// State is the incremental batch state. It is safe for concurrent use by
// conversion workers.
type State struct {
	mu    sync.Mutex
	Files map[string]*FileState `json:"files"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged reports whether path needs converting again. A file is
// unchanged only when it was converted to the same output with the same
// settings, that output still exists and the source content is the same.
// Uses hybrid mtime + hash approach.
func (s *State) HasChanged(path, output, settings string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	fileState, exists := s.Files[path]
	s.mu.Unlock()

	if !exists || fileState.Output != output || fileState.Settings != settings {
		return true, nil
	}
	if _, err := os.Stat(output); err != nil {
		return true, nil
	}

	// Fast path: check mtime first
	if info.ModTime().Unix() == fileState.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}

	return hash != fileState.Hash, nil
}

// Update records a successful conversion of path into output
func (s *State) Update(path, output, settings string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[path] = &FileState{
		MTime:    info.ModTime().Unix(),
		Hash:     hash,
		Output:   output,
		Settings: settings,
	}

	return nil
}

// Forget drops the records of sources that are not in keep and returns
// their paths sorted
func (s *State) Forget(keep []string) []string {
	wanted := make(map[string]bool, len(keep))
	for _, path := range keep {
		wanted[path] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for path := range s.Files {
		if !wanted[path] {
			delete(s.Files, path)
			removed = append(removed, path)
		}
	}
	sort.Strings(removed)
	return removed
}

// Get returns the record for path
func (s *State) Get(path string) (FileState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fileState, ok := s.Files[path]
	if !ok {
		return FileState{}, false
	}
	return *fileState, true
}

// GetMTime returns the modification time recorded for a file
func (s *State) GetMTime(path string) time.Time {
	if fileState, ok := s.Get(path); ok {
		return time.Unix(fileState.MTime, 0)
	}
	return time.Time{}
}

// Len returns the number of tracked files
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Files)
}
