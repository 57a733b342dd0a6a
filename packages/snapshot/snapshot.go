// Package snapshot stores expected values for toMatchSnapshot.
//
// Snapshots live in JSON files under a __snapshots__ directory, one file per
// top-level test, keyed by the full subtest name and an optional label.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
)

const (
	// Dir is the directory name for storing snapshots.
	Dir = "__snapshots__"
	// Ext is the file extension for snapshot files.
	Ext = ".snap.json"
)

// ErrMissing is reported when a snapshot does not exist outside update mode.
var ErrMissing = errors.New("snapshot does not exist (run with update mode to create)")

// Manager handles snapshot storage and comparison.
type Manager struct {
	mu     sync.Mutex
	dir    string
	update bool
	files  map[string]map[string]any // path -> key -> value
}

// NewManager creates a manager rooted at dir. In update mode missing or
// mismatching snapshots are written instead of failing.
func NewManager(dir string, update bool) *Manager {
	return &Manager{
		dir:    dir,
		update: update,
		files:  make(map[string]map[string]any),
	}
}

// Result is the outcome of a snapshot comparison.
type Result struct {
	Passed     bool
	Message    string
	Expected   any
	Actual     any
	IsNew      bool
	WasUpdated bool
}

// Compare checks actual against the snapshot stored for testName and label.
func (m *Manager) Compare(testName, label string, actual any) *Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &Result{Actual: actual}

	normalized, err := normalize(actual)
	if err != nil {
		result.Message = fmt.Sprintf("snapshot value is not serializable: %v", err)
		return result
	}

	path := m.path(testName)
	key := Key(testName, label)

	snapshots, err := m.load(path)
	if err != nil {
		result.Message = fmt.Sprintf("failed to load snapshots: %v", err)
		return result
	}

	expected, exists := snapshots[key]
	if !exists {
		if !m.update {
			result.Message = ErrMissing.Error()
			return result
		}
		snapshots[key] = normalized
		if err := m.save(path, snapshots); err != nil {
			result.Message = fmt.Sprintf("failed to save snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.IsNew = true
		result.Expected = normalized
		result.Message = "new snapshot created"
		return result
	}

	result.Expected = expected
	if reflect.DeepEqual(expected, normalized) {
		result.Passed = true
		return result
	}

	if m.update {
		snapshots[key] = normalized
		if err := m.save(path, snapshots); err != nil {
			result.Message = fmt.Sprintf("failed to update snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.WasUpdated = true
		result.Message = "snapshot updated"
		return result
	}

	result.Message = "snapshot mismatch"
	return result
}

// Key builds the snapshot key for a test name and optional label.
func Key(testName, label string) string {
	if label != "" {
		return testName + "::" + label
	}
	return testName
}

// path returns the snapshot file for the top-level test of testName.
func (m *Manager) path(testName string) string {
	top := testName
	if i := strings.Index(top, "/"); i >= 0 {
		top = top[:i]
	}
	if top == "" {
		top = "default"
	}
	return filepath.Join(m.dir, Dir, top+Ext)
}

func (m *Manager) load(path string) (map[string]any, error) {
	if cached, ok := m.files[path]; ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			snapshots := make(map[string]any)
			m.files[path] = snapshots
			return snapshots, nil
		}
		return nil, err
	}

	var snapshots map[string]any
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if snapshots == nil {
		snapshots = make(map[string]any)
	}

	m.files[path] = snapshots
	return snapshots, nil
}

func (m *Manager) save(path string, snapshots map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return err
	}

	m.files[path] = snapshots
	return os.WriteFile(path, data, 0644)
}

// normalize round-trips v through JSON so stored and fresh values compare
// with the same number and container types.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
