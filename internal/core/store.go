package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"ckpecfg/internal/state"
)

// DraftsFileName is the draft journal kept next to the edited file.
const DraftsFileName = ".ckpecfg_drafts.json"

// DraftsFileFor returns the draft journal path used for the given ini
// file.
func DraftsFileFor(path string) string {
	return filepath.Join(filepath.Dir(path), DraftsFileName)
}

// DraftStore abstracts draft persistence for testability.
type DraftStore interface {
	Load() ([]state.Draft, error)
	Save([]state.Draft) error
	RemoveDraft([]state.Draft, string) []state.Draft
}

// FileDraftStore implements DraftStore using a JSON file.
type FileDraftStore struct {
	File string
}

func NewFileDraftStore(file string) *FileDraftStore {
	return &FileDraftStore{File: file}
}

func (fs *FileDraftStore) Load() ([]state.Draft, error) {
	var drafts []state.Draft
	f, err := os.Open(fs.File)
	if err == nil {
		defer f.Close()
		dec := json.NewDecoder(f)
		if err := dec.Decode(&drafts); err != nil && err.Error() != "EOF" {
			return nil, err
		}
	}
	return drafts, nil
}

func (fs *FileDraftStore) Save(drafts []state.Draft) error {
	f, err := os.Create(fs.File)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(drafts)
}

func (fs *FileDraftStore) RemoveDraft(drafts []state.Draft, file string) []state.Draft {
	var out []state.Draft
	for _, d := range drafts {
		if d.File != file {
			out = append(out, d)
		}
	}
	return out
}

// InMemoryDraftStore implements DraftStore for testing (no disk I/O).
type InMemoryDraftStore struct {
	mu     sync.Mutex
	drafts []state.Draft
}

func NewInMemoryDraftStore() *InMemoryDraftStore {
	return &InMemoryDraftStore{}
}

func (ms *InMemoryDraftStore) Load() ([]state.Draft, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	// Return a copy to avoid mutation
	cpy := make([]state.Draft, len(ms.drafts))
	copy(cpy, ms.drafts)
	return cpy, nil
}

func (ms *InMemoryDraftStore) Save(drafts []state.Draft) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	// Store a copy to avoid mutation
	cpy := make([]state.Draft, len(drafts))
	copy(cpy, drafts)
	ms.drafts = cpy
	return nil
}

func (ms *InMemoryDraftStore) RemoveDraft(drafts []state.Draft, file string) []state.Draft {
	var out []state.Draft
	for _, d := range drafts {
		if d.File != file {
			out = append(out, d)
		}
	}
	return out
}

// FindDraft returns the draft recorded for file, if any.
func FindDraft(drafts []state.Draft, file string) (state.Draft, bool) {
	for _, d := range drafts {
		if d.File == file {
			return d, true
		}
	}
	return state.Draft{}, false
}

// PutDraft replaces the draft recorded for d's file, or appends it.
func PutDraft(drafts []state.Draft, d state.Draft) []state.Draft {
	for i := range drafts {
		if drafts[i].File == d.File {
			drafts[i] = d
			return drafts
		}
	}
	return append(drafts, d)
}
