package state

import (
	"sort"
	"time"

	"ckpecfg/pkg/ini"
)

// Draft captures the unsaved edits of one configuration file so an
// interrupted editing session can be resumed later.
// This struct is designed to be serializable for persistence between sessions.
type Draft struct {
	File    string      `json:"file"`     // Path of the edited file
	Edits   []DraftEdit `json:"edits"`    // Pending edits, sorted by section and key
	SavedAt time.Time   `json:"saved_at"` // When the draft was journaled
}

// DraftEdit is one pending value change. It is keyed by section and key
// name rather than line number, so it survives the file changing on
// disk underneath it.
type DraftEdit struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// NewDraft records the pending edits of file as a draft. The edits are
// sorted so the journal is stable across runs.
func NewDraft(file string, edits ini.Edits, at time.Time) Draft {
	d := Draft{File: file, SavedAt: at}
	for k, v := range edits {
		d.Edits = append(d.Edits, DraftEdit{Section: k.Section, Key: k.Name, Value: v})
	}
	sort.Slice(d.Edits, func(i, j int) bool {
		if d.Edits[i].Section != d.Edits[j].Section {
			return d.Edits[i].Section < d.Edits[j].Section
		}
		return d.Edits[i].Key < d.Edits[j].Key
	})
	return d
}

// EditMap returns the draft's changes as an edit map.
func (d *Draft) EditMap() ini.Edits {
	edits := make(ini.Edits, len(d.Edits))
	for _, e := range d.Edits {
		edits[ini.Key{Section: e.Section, Name: e.Key}] = e.Value
	}
	return edits
}

// Empty reports whether the draft carries no edits.
func (d *Draft) Empty() bool {
	return len(d.Edits) == 0
}
