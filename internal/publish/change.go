// Package publish stages admin content edits locally and replays them
// against the site API in order.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EntityType names the content collection a change targets.
type EntityType string

const (
	EntitySlider  EntityType = "slider"
	EntitySection EntityType = "section"
	EntityPost    EntityType = "post"
)

// Action is the kind of edit staged for an entity.
type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionVisibility Action = "visibility"
)

var (
	ErrUnknownType   = errors.New("unknown change type")
	ErrUnknownAction = errors.New("unknown change action")
	ErrMissingID     = errors.New("change id is required")
)

// Change is one staged edit. For creates the id is a client-side placeholder.
type Change struct {
	ID        string                 `json:"id"`
	Type      EntityType             `json:"type"`
	Action    Action                 `json:"action"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

type changeKey struct {
	id  string
	typ EntityType
}

func (c Change) key() changeKey {
	return changeKey{id: c.ID, typ: c.Type}
}

// Validate checks that the change can be mapped to an API call.
func (c Change) Validate() error {
	switch c.Type {
	case EntitySlider, EntitySection, EntityPost:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
	}
	switch c.Action {
	case ActionCreate:
	case ActionUpdate, ActionDelete, ActionVisibility:
		if c.ID == "" {
			return ErrMissingID
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, c.Action)
	}
	return nil
}

// LoadChanges reads a JSON array of changes; a missing file is an empty list.
func LoadChanges(path string) ([]Change, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Change{}, nil
		}
		return nil, err
	}

	var changes []Change
	if err := json.Unmarshal(raw, &changes); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, change := range changes {
		if err := change.Validate(); err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
	}
	if changes == nil {
		changes = []Change{}
	}
	return changes, nil
}

// SaveChanges writes changes atomically through a temp file in the same directory.
func SaveChanges(path string, changes []Change) error {
	if changes == nil {
		changes = []Change{}
	}
	raw, err := json.MarshalIndent(changes, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".changes-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
