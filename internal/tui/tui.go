package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"ckpecfg/internal/classify"
	"ckpecfg/internal/clock"
	"ckpecfg/internal/core"
	"ckpecfg/internal/session"
	"ckpecfg/internal/watcher"
)

// watchDebounce coalesces a burst of filesystem events into one notice.
const watchDebounce = 500 * time.Millisecond

// Options configures an editor run.
type Options struct {
	Path  string
	Rules classify.Rules
	Watch bool
}

// wrapText wraps input text to lines no longer than maxWidth display
// cells, breaking on word boundaries. Width is measured in terminal
// cells, so wide runes count double. A single word longer than the
// limit stays on its own line.
func wrapText(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := words[0]
		width := runewidth.StringWidth(words[0])
		for _, word := range words[1:] {
			w := runewidth.StringWidth(word)
			if width+1+w > maxWidth {
				lines = append(lines, line)
				line = word
				width = w
				continue
			}
			line += " " + word
			width += 1 + w
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Init implements tea.Model. The initial command arms the file watcher.
func (m model) Init() tea.Cmd {
	if m.watch != nil {
		return watchFileCmd(m.watch)
	}
	return nil
}

// Run opens the configuration file and drives the editor until the user
// quits.
func Run(ctx context.Context, opts Options) error {
	sess, err := session.Open(ctx, opts.Path)
	if err != nil {
		return err
	}

	stateMgr := core.NewFileDraftStore(core.DraftsFileFor(opts.Path))
	drafts, _ := stateMgr.Load()

	var fw *watcher.FileWatcher
	if opts.Watch {
		fw, err = watcher.NewFileWatcher(opts.Path, watchDebounce, clock.RealClock{})
		if err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		fw.Start()
		defer fw.Stop()
	}

	m := InitialModel(sess, opts.Rules, stateMgr, drafts, fw, 24)
	p := tea.NewProgram(&teaModelAdapter{m})

	_, err = p.Run()
	return err
}

// teaModelAdapter adapts the editor model to the tea.Model interface
// using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
