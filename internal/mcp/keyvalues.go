package mcp

import (
	"bytes"
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Sentinel errors for key/value editing.
var (
	// ErrKeyNotFound indicates the key being edited does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrDuplicateKey indicates the target key already exists.
	ErrDuplicateKey = errors.New("key already exists")

	// ErrEmptyKey indicates a blank key.
	ErrEmptyKey = errors.New("key is empty")
)

// KeyValues is an insertion-ordered string mapping with unique keys.
// It backs environment variables and HTTP headers. The zero value and a
// nil pointer are both valid empty mappings for reading.
type KeyValues struct {
	m *orderedmap.OrderedMap[string, string]
}

// Pair is one entry of a KeyValues.
type Pair struct {
	Key   string
	Value string
}

// NewKeyValues returns an empty mapping.
func NewKeyValues() *KeyValues {
	return &KeyValues{m: orderedmap.New[string, string]()}
}

// KeyValuesFromMap builds a mapping from m with keys in sorted order.
// It returns nil for an empty map.
func KeyValuesFromMap(m map[string]string) *KeyValues {
	if len(m) == 0 {
		return nil
	}
	kv := NewKeyValues()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		kv.m.Set(k, m[k])
	}
	return kv
}

// KeyValuesFromPairs builds a mapping from pairs. A repeated key keeps its
// first position and its last value.
func KeyValuesFromPairs(pairs ...Pair) *KeyValues {
	kv := NewKeyValues()
	for _, p := range pairs {
		kv.m.Set(p.Key, p.Value)
	}
	return kv
}

func (kv *KeyValues) ensure() {
	if kv.m == nil {
		kv.m = orderedmap.New[string, string]()
	}
}

// Len returns the number of entries.
func (kv *KeyValues) Len() int {
	if kv == nil || kv.m == nil {
		return 0
	}
	return kv.m.Len()
}

// Get returns the value for key.
func (kv *KeyValues) Get(key string) (string, bool) {
	if kv == nil || kv.m == nil {
		return "", false
	}
	return kv.m.Get(key)
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (kv *KeyValues) Set(key, value string) {
	kv.ensure()
	kv.m.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (kv *KeyValues) Delete(key string) bool {
	if kv == nil || kv.m == nil {
		return false
	}
	_, ok := kv.m.Delete(key)
	return ok
}

// Rename moves the value stored under oldKey to newKey in place.
//
// The entry keeps its position and value and oldKey is gone afterwards.
// Renaming onto an existing different key fails with ErrDuplicateKey and
// leaves the mapping unchanged.
func (kv *KeyValues) Rename(oldKey, newKey string) error {
	if strings.TrimSpace(newKey) == "" {
		return ErrEmptyKey
	}
	value, ok := kv.Get(oldKey)
	if !ok {
		return errors.Wrapf(ErrKeyNotFound, "renaming %q", oldKey)
	}
	if oldKey == newKey {
		return nil
	}
	if _, exists := kv.m.Get(newKey); exists {
		return errors.Wrapf(ErrDuplicateKey, "renaming %q to %q", oldKey, newKey)
	}

	kv.m.Set(newKey, value)
	if err := kv.m.MoveAfter(newKey, oldKey); err != nil {
		kv.m.Delete(newKey)
		return errors.Wrapf(err, "renaming %q to %q", oldKey, newKey)
	}
	kv.m.Delete(oldKey)
	return nil
}

// Keys returns the keys in order.
func (kv *KeyValues) Keys() []string {
	keys := make([]string, 0, kv.Len())
	for _, p := range kv.Pairs() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Pairs returns the entries in order.
func (kv *KeyValues) Pairs() []Pair {
	if kv.Len() == 0 {
		return nil
	}
	pairs := make([]Pair, 0, kv.m.Len())
	for p := kv.m.Oldest(); p != nil; p = p.Next() {
		pairs = append(pairs, Pair{Key: p.Key, Value: p.Value})
	}
	return pairs
}

// Map returns the entries as a plain map, or nil when empty.
func (kv *KeyValues) Map() map[string]string {
	if kv.Len() == 0 {
		return nil
	}
	out := make(map[string]string, kv.m.Len())
	for p := kv.m.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = p.Value
	}
	return out
}

// Clone returns an independent copy. Cloning nil or an empty mapping
// yields nil.
func (kv *KeyValues) Clone() *KeyValues {
	if kv.Len() == 0 {
		return nil
	}
	return KeyValuesFromPairs(kv.Pairs()...)
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (kv *KeyValues) MarshalJSON() ([]byte, error) {
	if kv.Len() == 0 {
		return []byte("{}"), nil
	}
	return kv.m.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object of strings, keeping document order.
// The receiver is only replaced when decoding succeeds.
func (kv *KeyValues) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		kv.m = orderedmap.New[string, string]()
		return nil
	}
	m := orderedmap.New[string, string]()
	if err := m.UnmarshalJSON(data); err != nil {
		return errors.Wrap(err, "decoding string map")
	}
	kv.m = m
	return nil
}
