package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ckpecfg/internal/core"
	"ckpecfg/internal/parser"
	"ckpecfg/internal/rewrite"
	"ckpecfg/pkg/ini"
)

// Session owns one open configuration file: the parsed document, the
// raw lines it was parsed from, and the edits not yet written back.
// The parsed values are never mutated; edits live in their own map
// until Save renders them into the file. All methods are safe for
// concurrent use.
type Session struct {
	mu        sync.Mutex
	path      string
	doc       *ini.Document
	raw       ini.RawDocument
	edits     ini.Edits
	lastSaved time.Time
}

// Open reads and parses the file at path into a new session.
func Open(ctx context.Context, path string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, raw, err := core.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return &Session{
		path:  path,
		doc:   doc,
		raw:   raw,
		edits: ini.Edits{},
	}, nil
}

// Path returns the file this session edits.
func (s *Session) Path() string {
	return s.path
}

// Document returns the parsed document. Callers treat it as read-only.
func (s *Session) Document() *ini.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Set records a pending edit for the given entry. Setting an entry back
// to its parsed value clears the pending edit instead. Pairs the
// document does not contain are rejected: the writer never invents
// lines.
func (s *Session) Set(section, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.doc.Get(section, name)
	if !ok {
		return fmt.Errorf("no entry %s in %s", ini.Key{Section: section, Name: name}, s.path)
	}
	key := ini.Key{Section: section, Name: name}
	if entry.Value == value {
		delete(s.edits, key)
		return nil
	}
	s.edits[key] = value
	return nil
}

// Value returns the effective value of an entry: the pending edit when
// one exists, the parsed value otherwise.
func (s *Session) Value(section, name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.edits[ini.Key{Section: section, Name: name}]; ok {
		return v, true
	}
	entry, ok := s.doc.Get(section, name)
	if !ok {
		return "", false
	}
	return entry.Value, true
}

// Dirty reports whether any edits are pending.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edits) > 0
}

// Edits returns a copy of the pending edits.
func (s *Session) Edits() ini.Edits {
	s.mu.Lock()
	defer s.mu.Unlock()

	cpy := make(ini.Edits, len(s.edits))
	for k, v := range s.edits {
		cpy[k] = v
	}
	return cpy
}

// Render produces the raw document with all pending edits applied,
// without touching the file.
func (s *Session) Render() (ini.RawDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rewrite.Render(s.raw, s.edits, s.doc)
}

// Save renders the pending edits and atomically replaces the file. On
// success the session re-parses the rendered content and the pending
// edits are cleared.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := rewrite.Render(s.raw, s.edits, s.doc)
	if err != nil {
		return err
	}
	if err := core.WriteDocument(ctx, s.path, out); err != nil {
		return err
	}
	s.doc, s.raw = parser.Parse(out.Text())
	s.edits = ini.Edits{}
	s.lastSaved = time.Now()
	return nil
}

// LastSaved returns when this session last wrote the file. The editor
// uses it to tell its own saves apart from external changes.
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// Reload re-reads the file from disk and re-applies the pending edits
// that still resolve. Edits are keyed by section and entry name, so
// they survive lines moving around. Edits whose entry vanished, or
// whose value the file now already has, are dropped; the vanished ones
// are returned so the caller can report them.
func (s *Session) Reload(ctx context.Context) ([]ini.Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, raw, err := core.ReadDocument(s.path)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	s.raw = raw

	var dropped []ini.Key
	for key, value := range s.edits {
		entry, ok := doc.Get(key.Section, key.Name)
		switch {
		case !ok:
			dropped = append(dropped, key)
			delete(s.edits, key)
		case entry.Value == value:
			delete(s.edits, key)
		}
	}
	sort.Slice(dropped, func(i, j int) bool {
		if dropped[i].Section != dropped[j].Section {
			return dropped[i].Section < dropped[j].Section
		}
		return dropped[i].Name < dropped[j].Name
	})
	return dropped, nil
}

// Restore applies previously journaled edits, skipping pairs the
// document no longer contains. It returns how many edits were applied
// and the keys that were skipped.
func (s *Session) Restore(edits ini.Edits) (int, []ini.Key) {
	applied := 0
	var skipped []ini.Key
	for key, value := range edits {
		if err := s.Set(key.Section, key.Name, value); err != nil {
			skipped = append(skipped, key)
			continue
		}
		applied++
	}
	sort.Slice(skipped, func(i, j int) bool {
		if skipped[i].Section != skipped[j].Section {
			return skipped[i].Section < skipped[j].Section
		}
		return skipped[i].Name < skipped[j].Name
	})
	return applied, skipped
}
