package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidResourceMap возвращается при некорректном содержимом карты ресурсов
	ErrInvalidResourceMap = errors.New("types: invalid resource map")
)

// ResourceMap maps a resource identifier (staff slot, equipment unit,
// space unit, stock item) to a quantity. Stored in PostgreSQL as JSONB.
type ResourceMap map[string]int64

// Validate checks that all resource identifiers are non-empty and all
// quantities are positive.
func (m ResourceMap) Validate() error {
	for id, qty := range m {
		if id == "" {
			return fmt.Errorf("%w: empty resource id", ErrInvalidResourceMap)
		}
		if qty <= 0 {
			return fmt.Errorf("%w: resource %q has non-positive quantity %d", ErrInvalidResourceMap, id, qty)
		}
	}
	return nil
}

// IsEmpty returns true if the map has no entries.
func (m ResourceMap) IsEmpty() bool {
	return len(m) == 0
}

// Clone returns a deep copy of the map.
func (m ResourceMap) Clone() ResourceMap {
	if m == nil {
		return nil
	}
	out := make(ResourceMap, len(m))
	for id, qty := range m {
		out[id] = qty
	}
	return out
}

// MergedWith returns a copy of the map with entries from overrides applied
// on top: an override replaces the declared quantity for the same resource
// and adds resources the base map does not mention.
func (m ResourceMap) MergedWith(overrides ResourceMap) ResourceMap {
	out := m.Clone()
	if out == nil {
		out = make(ResourceMap, len(overrides))
	}
	for id, qty := range overrides {
		out[id] = qty
	}
	return out
}

// UnknownKeys returns the resource ids present in the map but absent from
// the schema, sorted for deterministic reporting.
func (m ResourceMap) UnknownKeys(schema ResourceMap) []string {
	unknown := make([]string, 0)
	for id := range m {
		if _, ok := schema[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Keys returns the sorted resource ids of the map.
func (m ResourceMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// Value implements driver.Valuer, serializing the map to JSONB.
func (m ResourceMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner, deserializing the map from JSONB.
func (m *ResourceMap) Scan(src interface{}) error {
	if src == nil {
		*m = ResourceMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidResourceMap, src)
	}
	if len(data) == 0 {
		*m = ResourceMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}
