// Package tui is the interactive list. The Model is the presenter's View and
// publishes one event per user action.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tickbox/internal/app"
	"github.com/idilsaglam/tickbox/internal/event"
	"github.com/idilsaglam/tickbox/internal/model"
	"github.com/idilsaglam/tickbox/internal/ui"
)

// Publisher delivers UI events.
type Publisher interface {
	Publish(e event.Event) error
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeSearch
)

var (
	addKey      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	searchKey   = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	toggleKey   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select"))
	completeKey = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete selected"))
	removeKey   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove selected"))
	quitKey     = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the bubbletea model. It is used by pointer so the presenter's
// redraw calls and bubbletea's Update share one state.
type Model struct {
	bus    Publisher
	list   list.Model
	add    textinput.Model
	search textinput.Model
	mode   mode

	status    string
	statusErr bool
	width     int
	height    int
}

// New returns a Model publishing to bus. Attach it to an app before running
// so the presenter can draw the initial list.
func New(bus Publisher) *Model {
	l := list.New(nil, itemDelegate{}, 76, 16)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{addKey, searchKey, toggleKey, completeKey, removeKey}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	add := textinput.New()
	add.Prompt = "> "
	add.Placeholder = "New item..."
	add.CharLimit = 200

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search..."

	return &Model{bus: bus, list: l, add: add, search: search, width: 80, height: 24}
}

// Run shows the TUI for a until the user quits.
func Run(a *app.App) error {
	m := New(a.Bus())
	if _, err := a.Attach(m); err != nil {
		return err
	}
	// Log lines would corrupt the alt screen.
	a.Logger().SetOutput(io.Discard)

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// ---- presenter.View ----

func (m *Model) InputText() string { return m.add.Value() }

func (m *Model) RenderList(items []model.Item) {
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it})
	}
	m.list.SetItems(li)
}

func (m *Model) AppendItem(it model.Item) {
	m.list.InsertItem(len(m.list.Items()), listItem{it})
	m.setStatus(fmt.Sprintf("added #%d", it.ID), false)
}

func (m *Model) MarkCompleted(ids []int) {
	m.eachListed(ids, func(i int, it listItem) {
		it.IsComplete = true
		m.list.SetItem(i, it)
	})
	m.setStatus(fmt.Sprintf("completed %d", len(ids)), false)
}

func (m *Model) RemoveItems(ids []int) {
	drop := idSet(ids)
	items := m.list.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if it, ok := items[i].(listItem); ok && drop[it.ID] {
			m.list.RemoveItem(i)
		}
	}
	m.setStatus(fmt.Sprintf("removed %d", len(ids)), false)
}

func (m *Model) eachListed(ids []int, fn func(i int, it listItem)) {
	want := idSet(ids)
	for i, li := range m.list.Items() {
		if it, ok := li.(listItem); ok && want[it.ID] {
			fn(i, it)
		}
	}
}

func idSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Items returns the items currently displayed.
func (m *Model) Items() []model.Item {
	out := make([]model.Item, 0, len(m.list.Items()))
	for _, li := range m.list.Items() {
		if it, ok := li.(listItem); ok {
			out = append(out, it.Item)
		}
	}
	return out
}

// Status returns the status line text and whether it reports an error.
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *Model) publish(e event.Event) {
	if err := m.bus.Publish(e); err != nil {
		m.setStatus(err.Error(), true)
	}
}

// ---- tea.Model ----

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}
	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeSearch:
		return m.updateSearch(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, quitKey):
			return m, tea.Quit
		case key.Matches(k, addKey):
			m.mode = modeAdd
			m.add.SetValue("")
			return m, m.add.Focus()
		case key.Matches(k, searchKey):
			m.mode = modeSearch
			m.search.CursorEnd()
			return m, m.search.Focus()
		case key.Matches(k, toggleKey):
			m.toggleCurrent()
			return m, nil
		case key.Matches(k, completeKey):
			m.publish(event.Event{Name: event.CompleteSelectedRequested})
			return m, nil
		case key.Matches(k, removeKey):
			m.publish(event.Event{Name: event.RemoveSelectedRequested})
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleCurrent flips the checkbox under the cursor and reports it.
func (m *Model) toggleCurrent() {
	i := m.list.Index()
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return
	}
	flag := !it.IsSelected
	if err := m.bus.Publish(event.Toggle(it.ID, flag)); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	it.IsSelected = flag
	m.list.SetItem(i, it)
}

func (m *Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.publish(event.Event{Name: event.AddRequested})
			m.add.SetValue("")
			m.add.Blur()
			m.mode = modeBrowse
			return m, nil
		case "esc":
			m.add.SetValue("")
			m.add.Blur()
			m.mode = modeBrowse
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m *Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.search.Blur()
			m.mode = modeBrowse
			return m, nil
		case "esc":
			m.search.Blur()
			m.mode = modeBrowse
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.publish(event.Search(""))
			}
			return m, nil
		}
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.publish(event.Search(m.search.Value()))
	}
	return m, cmd
}

func (m *Model) View() string {
	t := ui.Current()
	items := m.Items()
	d, p := model.Stats(items)

	var b strings.Builder
	b.WriteString(ui.Header(items))
	b.WriteString("\n")
	b.WriteString(t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	if q := m.search.Value(); q != "" && m.mode != modeSearch {
		b.WriteString("  " + t.Accent.Render("filter: "+q))
	}
	b.WriteString("\n\n")

	listHeight := m.height - 8
	if m.mode != modeBrowse {
		listHeight -= 3
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)
	if len(m.list.Items()) == 0 {
		b.WriteString(t.Muted.Render("no items, press a to add one"))
	} else {
		b.WriteString(m.list.View())
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\n" + inputBox("Add new item", m.add.View()))
	case modeSearch:
		b.WriteString("\n" + inputBox("Search", m.search.View()))
	}

	if m.status != "" {
		style := t.Muted
		if m.statusErr {
			style = t.Error
		}
		b.WriteString("\n" + style.Render(m.status))
	}
	return panelString(b.String())
}

func inputBox(title, input string) string {
	bar := lipgloss.NewStyle().
		Border(ui.Current().Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return bar.Render(title + "\n" + input)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(ui.Current().Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
