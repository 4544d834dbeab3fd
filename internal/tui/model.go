package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"

	"ckpecfg/internal/classify"
	"ckpecfg/internal/core"
	"ckpecfg/internal/session"
	"ckpecfg/internal/state"
	"ckpecfg/internal/watcher"
	"ckpecfg/pkg/ini"
)

// ViewState identifies which screen the editor is showing.
type ViewState int

const (
	ViewSections ViewState = iota
	ViewEntries
	ViewEdit
	ViewConfirmQuit
)

// SectionItem represents one section for the section list.
type SectionItem struct {
	line    string // single-line display: [Name] and entry count
	section *ini.Section
}

func (s SectionItem) Title() string       { return s.line }
func (s SectionItem) Description() string { return "" }
func (s SectionItem) FilterValue() string { return s.section.Name }

// model is the Bubbletea model for the editor.
type model struct {
	sess     *session.Session
	rules    classify.Rules
	stateMgr core.DraftStore
	drafts   []state.Draft
	watch    *watcher.FileWatcher // nil when watching is off

	ActiveView  ViewState
	sectionList list.Model
	entryTable  table.Model
	section     *ini.Section // section shown in ViewEntries
	entries     []*ini.Entry // rows of entryTable, in row order

	editEntry *ini.Entry
	editClass classify.Classification
	editBuf   string // candidate value for Boolean, Integer and FreeText editors
	editIdx   int    // selected option for the Enum editor

	pendingDraft *state.Draft // draft found on open, offered for restore
	returnView   ViewState    // view ViewConfirmQuit goes back to

	status      string
	statusSeq   int
	fileChanged bool // the file changed on disk and a reload is offered
	quitting    bool
	height      int
	width       int
}

// InitialModel creates the initial editor model. When the draft journal
// holds unsaved edits for the session's file, restoring them is offered
// before anything else.
func InitialModel(sess *session.Session, rules classify.Rules, stateMgr core.DraftStore, drafts []state.Draft, fw *watcher.FileWatcher, height int) model {
	defaultWidth := 80
	m := model{
		sess:       sess,
		rules:      rules,
		stateMgr:   stateMgr,
		drafts:     drafts,
		watch:      fw,
		ActiveView: ViewSections,
		width:      defaultWidth,
		height:     height,
	}
	m.sectionList = newSectionList(sess, defaultWidth, height)
	if d, ok := core.FindDraft(drafts, sess.Path()); ok && !d.Empty() {
		m.pendingDraft = &d
		m.status = fmt.Sprintf("unsaved draft from %s found: y restores it, n discards it", d.SavedAt.Format("Jan 2 15:04"))
	}
	return m
}

func newSectionList(sess *session.Session, width, height int) list.Model {
	doc := sess.Document()
	items := make([]list.Item, len(doc.Sections))
	for i, s := range doc.Sections {
		items[i] = SectionItem{
			line:    fmt.Sprintf("[%s]  %d entries", s.Name, len(s.Entries)),
			section: s,
		}
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(items, delegate, width, max(height-12, 5))
	l.Title = filepath.Base(sess.Path())
	// q and esc belong to the editor's own key handling.
	l.DisableQuitKeybindings()
	return l
}

func newEntryTable(sess *session.Session, sec *ini.Section, width, height int) (table.Model, []*ini.Entry) {
	keyWidth := 28
	markWidth := 2
	columns := []table.Column{
		{Title: "Key", Width: keyWidth},
		{Title: "Value", Width: max(width-keyWidth-markWidth-10, 16)},
		{Title: " ", Width: markWidth},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(entryRows(sess, sec)),
		table.WithFocused(true),
		table.WithHeight(max(height-14, 5)),
	)
	return t, sec.Entries
}

// entryRows renders the section's entries with their effective values.
// Entries with a pending edit carry a marker in the last column.
func entryRows(sess *session.Session, sec *ini.Section) []table.Row {
	edits := sess.Edits()
	rows := make([]table.Row, len(sec.Entries))
	for i, e := range sec.Entries {
		value, _ := sess.Value(sec.Name, e.Name)
		mark := ""
		if _, ok := edits[ini.Key{Section: sec.Name, Name: e.Name}]; ok {
			mark = "*"
		}
		rows[i] = table.Row{e.Name, value, mark}
	}
	return rows
}
