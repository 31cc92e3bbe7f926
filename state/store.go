// Package state persists the trading document as JSON and guards it
// with a pid lock. Saves are atomic: write to a temp file in the same
// directory, then rename over the old one. A crash mid-save leaves the
// previous file intact.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dryrunbot/dryrun/ledger"
)

// Reserved top-level keys in the state file. Strategy names must not
// start with an underscore.
const (
	keySchema      = "_schema"
	keyLastUpdated = "_last_updated"
)

// Document is the full persisted state: one ledger entry per strategy
// plus schema and freshness bookkeeping.
type Document struct {
	Schema      string
	LastUpdated time.Time
	Strategies  map[string]*ledger.Entry
}

// NewDocument returns an empty document at the current schema.
func NewDocument() *Document {
	return &Document{
		Schema:     SchemaVersion,
		Strategies: make(map[string]*ledger.Entry),
	}
}

// MarshalJSON flattens the document into a single object: reserved keys
// alongside the per-strategy entries. Nil slices are written as empty
// arrays; external readers iterate positions and closed_trades.
func (d *Document) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Strategies)+2)
	for name, entry := range d.Strategies {
		e := *entry
		if e.Positions == nil {
			e.Positions = []ledger.Position{}
		}
		if e.ClosedTrades == nil {
			e.ClosedTrades = []ledger.ClosedTrade{}
		}
		flat[name] = e
	}
	if d.Schema != "" {
		flat[keySchema] = d.Schema
	}
	if !d.LastUpdated.IsZero() {
		flat[keyLastUpdated] = d.LastUpdated.UTC().Format(time.RFC3339)
	}
	return json.Marshal(flat)
}

// UnmarshalJSON splits reserved keys from strategy entries. Unknown
// underscore-prefixed keys are ignored rather than treated as strategies.
func (d *Document) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	d.Strategies = make(map[string]*ledger.Entry, len(flat))
	for key, raw := range flat {
		switch {
		case key == keySchema:
			if err := json.Unmarshal(raw, &d.Schema); err != nil {
				return fmt.Errorf("state: bad %s: %w", keySchema, err)
			}
		case key == keyLastUpdated:
			var ts string
			if err := json.Unmarshal(raw, &ts); err != nil {
				return fmt.Errorf("state: bad %s: %w", keyLastUpdated, err)
			}
			t, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return fmt.Errorf("state: bad %s: %w", keyLastUpdated, err)
			}
			d.LastUpdated = t
		case strings.HasPrefix(key, "_"):
			// Reserved for future schema fields.
		default:
			entry := &ledger.Entry{}
			if err := json.Unmarshal(raw, entry); err != nil {
				return fmt.Errorf("state: strategy %q: %w", key, err)
			}
			d.Strategies[key] = entry
		}
	}
	return nil
}

// Store reads and writes the state file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the state file. A missing file yields a fresh empty
// document; a corrupt file is an error so the operator decides, rather
// than silently trading on a blank book.
func (s *Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("state: read %s: %w", s.path, err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("state: parse %s: %w", s.path, err)
	}
	if doc.Strategies == nil {
		doc.Strategies = make(map[string]*ledger.Entry)
	}
	return doc, nil
}

// Save writes the document atomically and stamps LastUpdated.
func (s *Store) Save(doc *Document, now time.Time) error {
	doc.LastUpdated = now.UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("state: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: rename %s: %w", s.path, err)
	}
	return nil
}
