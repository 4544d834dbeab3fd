package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ckpecfg/internal/classify"
	"ckpecfg/internal/core"
	"ckpecfg/internal/session"
	"ckpecfg/internal/state"
	"ckpecfg/internal/watcher"
	"ckpecfg/pkg/ini"
)

// Message types for the Bubbletea update loop
type fileChangedMsg struct{}
type watchErrMsg struct{ err error }
type savedMsg struct{ err error }
type statusExpiredMsg struct{ seq int }

const (
	// statusTTL is how long a transient status line stays visible.
	statusTTL = 4 * time.Second
	// selfSaveWindow is how long after our own save a watcher
	// notification is treated as the echo of that save.
	selfSaveWindow = 2 * time.Second
)

// watchFileCmd returns a command that waits for the next watcher
// notification or error.
func watchFileCmd(fw *watcher.FileWatcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-fw.Events():
			return fileChangedMsg{}
		case err := <-fw.Errors():
			return watchErrMsg{err: err}
		}
	}
}

// saveCmd writes the session to disk off the update loop.
func saveCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: sess.Save(context.Background())}
	}
}

// setStatus replaces the transient status line and schedules its expiry.
func setStatus(m model, text string) (model, tea.Cmd) {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// Update handles all Bubbletea update logic for the editor model.
func Update(m model, msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(m, msg)
	case fileChangedMsg:
		return handleFileChangedMsg(m)
	case watchErrMsg:
		return handleWatchErrMsg(m, msg)
	case savedMsg:
		return handleSavedMsg(m, msg)
	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	case tea.WindowSizeMsg:
		return handleWindowResize(m, msg)
	default:
		switch m.ActiveView {
		case ViewSections:
			var cmd tea.Cmd
			m.sectionList, cmd = m.sectionList.Update(msg)
			return m, cmd
		case ViewEntries:
			var cmd tea.Cmd
			m.entryTable, cmd = m.entryTable.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func HandleKeyMsg(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()

	switch m.ActiveView {
	case ViewConfirmQuit:
		switch k {
		case "y", "q":
			m.quitting = true
			return m, tea.Quit
		case "n", "esc":
			m.ActiveView = m.returnView
		}
		return m, nil

	case ViewSections:
		// While the filter prompt is open the list owns the keyboard.
		if m.sectionList.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.sectionList, cmd = m.sectionList.Update(msg)
			return m, cmd
		}
		if m.pendingDraft != nil {
			switch k {
			case "y":
				return restoreDraft(m)
			case "n":
				return discardDraft(m)
			}
		}
		switch k {
		case "ctrl+c", "q":
			return confirmQuit(m)
		case "s":
			return m, saveCmd(m.sess)
		case "r":
			return reloadSession(m)
		case "enter":
			if item, ok := m.sectionList.SelectedItem().(SectionItem); ok {
				m.section = item.section
				m.entryTable, m.entries = newEntryTable(m.sess, item.section, m.width, m.height)
				m.ActiveView = ViewEntries
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.sectionList, cmd = m.sectionList.Update(msg)
			return m, cmd
		}

	case ViewEntries:
		switch k {
		case "ctrl+c", "q":
			return confirmQuit(m)
		case "esc":
			m.ActiveView = ViewSections
			return m, nil
		case "s":
			return m, saveCmd(m.sess)
		case "r":
			return reloadSession(m)
		case "enter":
			if idx := m.entryTable.Cursor(); idx >= 0 && idx < len(m.entries) {
				m = openEditor(m, m.entries[idx])
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.entryTable, cmd = m.entryTable.Update(msg)
			return m, cmd
		}

	case ViewEdit:
		return handleEditKey(m, msg)
	}
	return m, nil
}

// openEditor prepares ViewEdit for the given entry. Classification runs
// on the parsed value, so an entry keeps its editor while being edited.
func openEditor(m model, e *ini.Entry) model {
	value, _ := m.sess.Value(m.section.Name, e.Name)
	m.editEntry = e
	m.editClass = classify.Classify(m.rules, m.section.Name, e.Name, e.Value)
	if m.editClass.Kind == classify.Enum && len(m.editClass.Options) == 0 {
		m.editClass = classify.Classification{Kind: classify.FreeText}
	}
	m.editBuf = value
	m.editIdx = 0
	if m.editClass.Kind == classify.Enum {
		if i := m.editClass.OptionIndex(value); i >= 0 {
			m.editIdx = i
		}
	}
	m.ActiveView = ViewEdit
	return m
}

func handleEditKey(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	k := msg.String()

	switch k {
	case "ctrl+c":
		return confirmQuit(m)
	case "esc":
		m.ActiveView = ViewEntries
		m.editEntry = nil
		return m, nil
	case "enter":
		return acceptEdit(m)
	}

	switch m.editClass.Kind {
	case classify.Boolean:
		switch k {
		case " ", "left", "right", "h", "l":
			if strings.EqualFold(m.editBuf, "true") {
				m.editBuf = "false"
			} else {
				m.editBuf = "true"
			}
		}
	case classify.Enum:
		n := len(m.editClass.Options)
		switch k {
		case "left", "h":
			m.editIdx = (m.editIdx - 1 + n) % n
		case "right", "l":
			m.editIdx = (m.editIdx + 1) % n
		}
	case classify.Integer:
		switch {
		case msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete:
			m.editBuf = trimLastRune(m.editBuf)
		case msg.Type == tea.KeyRunes:
			for _, r := range msg.Runes {
				if r >= '0' && r <= '9' {
					m.editBuf += string(r)
				}
			}
		}
	default: // FreeText
		switch {
		case msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete:
			m.editBuf = trimLastRune(m.editBuf)
		case k == " ":
			m.editBuf += " "
		case msg.Type == tea.KeyRunes:
			m.editBuf += string(msg.Runes)
		}
	}
	return m, nil
}

// acceptEdit validates the editor state, records the edit, and returns
// to the entry list.
func acceptEdit(m model) (model, tea.Cmd) {
	value := m.editBuf
	switch m.editClass.Kind {
	case classify.Enum:
		value = strconv.Itoa(m.editClass.Options[m.editIdx].Value)
	case classify.Integer:
		n, err := strconv.Atoi(m.editBuf)
		if err != nil {
			return setStatus(m, "value must be a number")
		}
		if n < m.editClass.Min || n > m.editClass.Max {
			return setStatus(m, fmt.Sprintf("value must be between %d and %d", m.editClass.Min, m.editClass.Max))
		}
		value = strconv.Itoa(n)
	}
	if err := m.sess.Set(m.section.Name, m.editEntry.Name, value); err != nil {
		return setStatus(m, err.Error())
	}
	m = journalDraft(m)
	m.entryTable.SetRows(entryRows(m.sess, m.section))
	m.ActiveView = ViewEntries
	m.editEntry = nil
	return m, nil
}

// journalDraft mirrors the pending edits into the draft journal so an
// interrupted session can be resumed. Journal failures are not fatal.
func journalDraft(m model) model {
	d := state.NewDraft(m.sess.Path(), m.sess.Edits(), time.Now())
	if d.Empty() {
		m.drafts = m.stateMgr.RemoveDraft(m.drafts, m.sess.Path())
	} else {
		m.drafts = core.PutDraft(m.drafts, d)
	}
	_ = m.stateMgr.Save(m.drafts)
	return m
}

func restoreDraft(m model) (model, tea.Cmd) {
	applied, skipped := m.sess.Restore(m.pendingDraft.EditMap())
	m.pendingDraft = nil
	m = journalDraft(m)
	if m.section != nil {
		m.entryTable.SetRows(entryRows(m.sess, m.section))
	}
	if len(skipped) > 0 {
		return setStatus(m, fmt.Sprintf("restored %d edits, %d no longer apply", applied, len(skipped)))
	}
	return setStatus(m, fmt.Sprintf("restored %d unsaved edits", applied))
}

func discardDraft(m model) (model, tea.Cmd) {
	m.pendingDraft = nil
	m.drafts = m.stateMgr.RemoveDraft(m.drafts, m.sess.Path())
	_ = m.stateMgr.Save(m.drafts)
	return setStatus(m, "draft discarded")
}

func confirmQuit(m model) (model, tea.Cmd) {
	if !m.sess.Dirty() {
		m.quitting = true
		return m, tea.Quit
	}
	m.returnView = m.ActiveView
	m.ActiveView = ViewConfirmQuit
	return m, nil
}

func reloadSession(m model) (model, tea.Cmd) {
	dropped, err := m.sess.Reload(context.Background())
	if err != nil {
		return setStatus(m, fmt.Sprintf("reload failed: %v", err))
	}
	m.fileChanged = false
	m = rebuildViews(m)
	if len(dropped) > 0 {
		return setStatus(m, fmt.Sprintf("reloaded, dropped %d edits for vanished entries", len(dropped)))
	}
	return setStatus(m, "reloaded from disk")
}

// rebuildViews recreates the list and table from the session's current
// document. Sessions swap their document on reload and save, so the
// section and entry pointers held by the model go stale.
func rebuildViews(m model) model {
	idx := m.sectionList.Index()
	m.sectionList = newSectionList(m.sess, m.width, m.height)
	if idx < len(m.sectionList.Items()) {
		m.sectionList.Select(idx)
	}
	if m.section == nil {
		return m
	}
	sec := m.sess.Document().Section(m.section.Name)
	if sec == nil {
		m.section = nil
		m.editEntry = nil
		m.ActiveView = ViewSections
		return m
	}
	cursor := m.entryTable.Cursor()
	m.section = sec
	m.entryTable, m.entries = newEntryTable(m.sess, sec, m.width, m.height)
	if cursor < len(m.entries) {
		m.entryTable.SetCursor(cursor)
	}
	if m.ActiveView == ViewEdit {
		// The entry being edited may be gone or renumbered.
		m.ActiveView = ViewEntries
		m.editEntry = nil
	}
	return m
}

func handleSavedMsg(m model, msg savedMsg) (model, tea.Cmd) {
	if msg.err != nil {
		return setStatus(m, fmt.Sprintf("save failed: %v", msg.err))
	}
	m.drafts = m.stateMgr.RemoveDraft(m.drafts, m.sess.Path())
	_ = m.stateMgr.Save(m.drafts)
	m = rebuildViews(m)
	return setStatus(m, "saved "+m.sess.LastSaved().Format("15:04:05"))
}

func handleFileChangedMsg(m model) (model, tea.Cmd) {
	var rearm tea.Cmd
	if m.watch != nil {
		rearm = watchFileCmd(m.watch)
	}
	if time.Since(m.sess.LastSaved()) < selfSaveWindow {
		// The echo of our own atomic save; nothing external happened.
		return m, rearm
	}
	m.fileChanged = true
	return m, rearm
}

func handleWatchErrMsg(m model, msg watchErrMsg) (model, tea.Cmd) {
	var rearm tea.Cmd
	if m.watch != nil {
		rearm = watchFileCmd(m.watch)
	}
	m2, cmd := setStatus(m, fmt.Sprintf("watch error: %v", msg.err))
	return m2, tea.Batch(cmd, rearm)
}

func handleWindowResize(m model, msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.height = msg.Height
	m.width = msg.Width
	m.sectionList.SetHeight(max(msg.Height-12, 5))
	m.sectionList.SetWidth(msg.Width - 4)
	if m.section != nil {
		cursor := m.entryTable.Cursor()
		m.entryTable, m.entries = newEntryTable(m.sess, m.section, msg.Width, msg.Height)
		if cursor < len(m.entries) {
			m.entryTable.SetCursor(cursor)
		}
	}
	return m, nil
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(r[:len(r)-1])
}
