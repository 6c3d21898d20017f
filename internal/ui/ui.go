package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskm/internal/config"
	"taskm/internal/dateutil"
	"taskm/internal/task"
	"taskm/internal/transfer"
)

type mode int

const (
	modeList mode = iota
	modeAddText
	modeAddDue
	modeEditText
	modeEditDue
	modeSearch
)

type Model struct {
	store       *task.Store
	cfg         config.Config
	input       textinput.Model
	mode        mode
	cursor      int
	filter      task.Filter
	search      string
	status      string
	pendingText string
	editID      string
	confirmDel  bool
	pendingDel  *task.Task
}

func Run(store *task.Store, cfg config.Config) error {
	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = task.MaxTextLen
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    cfg,
		input:  ti,
		mode:   modeList,
		filter: parseFilter(cfg.DefaultFilter),
		status: "Press 'a' to add, space to toggle, 'd' to delete.",
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func parseFilter(s string) task.Filter {
	switch task.Filter(strings.ToLower(s)) {
	case task.FilterActive:
		return task.FilterActive
	case task.FilterCompleted:
		return task.FilterCompleted
	default:
		return task.FilterAll
	}
}

// visible derives the on-screen sequence: filter-then-sort over a store
// snapshot.
func (m Model) visible() []task.Task {
	return task.SortTasks(
		task.FilterTasks(m.store.Tasks(), m.filter, m.search),
		m.store.Prefs().Sort)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode != modeList {
			return m.updateInputMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	vis := m.visible()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(vis) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(vis))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(vis))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAddText
		m.input.Placeholder = "Task text"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add mode: type the task and press Enter"
	case m.cfg.Keys.Toggle:
		if len(vis) == 0 {
			return m, nil
		}
		m.store.Toggle(vis[m.cursor].ID)
		m.status = "Toggled task"
		m.cursor = clampCursor(m.cursor, len(m.visible()))
	case m.cfg.Keys.Delete:
		if len(vis) == 0 {
			return m, nil
		}
		t := vis[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
	case m.cfg.Keys.Edit:
		if len(vis) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		t := vis[m.cursor]
		m.mode = modeEditText
		m.editID = t.ID
		m.input.Placeholder = "Task text"
		m.input.SetValue(t.Text)
		m.input.Focus()
		m.status = "Edit text: Enter to save (empty deletes), Esc to cancel"
	case m.cfg.Keys.Due:
		if len(vis) == 0 {
			m.status = "No tasks"
			return m, nil
		}
		t := vis[m.cursor]
		m.mode = modeEditDue
		m.editID = t.ID
		m.input.Placeholder = "Due date (YYYY-MM-DD, empty clears)"
		m.input.SetValue(t.DueKey())
		m.input.Focus()
		m.status = "Edit due date: Enter to save, Esc to cancel"
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.Placeholder = "Search"
		m.input.SetValue(m.search)
		m.input.Focus()
		m.status = "Search: Enter to apply, empty to clear"
	case m.cfg.Keys.Filter:
		m.filter = nextFilter(m.filter)
		m.cursor = 0
		m.status = "Filter: " + string(m.filter)
	case m.cfg.Keys.ClearDone:
		m.store.ClearCompleted()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Cleared completed tasks"
	case m.cfg.Keys.MoveUp:
		if m.cursor > 0 && m.cursor < len(vis) {
			m.store.Reorder(vis[m.cursor].ID, vis[m.cursor-1].ID)
			m.cursor--
			m.status = "Moved up (manual sort)"
		}
	case m.cfg.Keys.MoveDown:
		if len(vis) > 1 && m.cursor < len(vis)-1 {
			m.store.Reorder(vis[m.cursor+1].ID, vis[m.cursor].ID)
			m.cursor++
			m.status = "Moved down (manual sort)"
		}
	case m.cfg.Keys.SortManual:
		m.store.SetSort(task.SortManual)
		m.status = "Sort: manual"
	case m.cfg.Keys.SortDue:
		m.store.SetSort(task.SortDue)
		m.status = "Sort: due date"
	case m.cfg.Keys.SortCreated:
		m.store.SetSort(task.SortCreated)
		m.status = "Sort: newest first"
	case m.cfg.Keys.SortCompleted:
		m.store.SetSort(task.SortCompleted)
		m.status = "Sort: incomplete first"
	case m.cfg.Keys.Theme:
		if m.store.Prefs().Theme == task.ThemeDark {
			m.store.SetTheme(task.ThemeLight)
			m.status = "Theme: light"
		} else {
			m.store.SetTheme(task.ThemeDark)
			m.status = "Theme: dark"
		}
	case m.cfg.Keys.Export:
		if err := transfer.ExportFile(m.cfg.ExportPath, m.store.Tasks()); err != nil {
			m.status = fmt.Sprintf("export failed: %v", err)
		} else {
			m.status = "Exported to " + m.cfg.ExportPath
		}
	case m.cfg.Keys.Import:
		added, err := transfer.ImportFile(m.cfg.ExportPath, m.store.Tasks())
		if err != nil {
			m.status = fmt.Sprintf("import failed: %v", err)
			return m, nil
		}
		m.store.Append(added)
		m.status = fmt.Sprintf("Imported %d task(s) from %s", len(added), m.cfg.ExportPath)
	}
	return m, nil
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		return m.confirmInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) confirmInput() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAddText:
		if strings.TrimSpace(m.input.Value()) == "" {
			m.status = "Please enter a task."
			return m, nil
		}
		m.pendingText = m.input.Value()
		m.mode = modeAddDue
		m.input.SetValue("")
		m.input.Placeholder = "Due date (YYYY-MM-DD, optional)"
		m.status = "Due date, or Enter to skip"
		return m, nil
	case modeAddDue:
		due := strings.TrimSpace(m.input.Value())
		t, err := m.store.Add(m.pendingText, due)
		if err != nil {
			m.mode = modeAddText
			m.input.SetValue(m.pendingText)
			m.input.Placeholder = "Task text"
			m.status = err.Error()
			return m, nil
		}
		m.status = "Added task"
		m.cursor = cursorFor(m.visible(), t.ID)
	case modeEditText:
		if strings.TrimSpace(m.input.Value()) == "" {
			m.store.EditText(m.editID, m.input.Value())
			m.status = "Removed task (text was empty)"
		} else {
			m.store.EditText(m.editID, m.input.Value())
			m.status = "Saved"
		}
		m.cursor = clampCursor(m.cursor, len(m.visible()))
	case modeEditDue:
		due := strings.TrimSpace(m.input.Value())
		m.store.EditDue(m.editID, due)
		if due != "" && !dateutil.IsValidKey(due) {
			m.status = "Not a valid date, due cleared"
		} else {
			m.status = "Due date saved"
		}
	case modeSearch:
		m.search = m.input.Value()
		m.cursor = 0
		if m.search == "" {
			m.status = "Search cleared"
		} else {
			m.status = "Searching: " + m.search
		}
	}
	m.mode = modeList
	m.pendingText = ""
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		m.store.Remove(m.pendingDel.ID)
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Deleted task"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	prefs := m.store.Prefs()
	pal := newPalette(prefs.Theme)
	todayKey := dateutil.TodayKey()
	vis := m.visible()

	var b strings.Builder
	b.WriteString(pal.title.Render("taskm"))
	b.WriteString(pal.dim.Render(fmt.Sprintf("  filter:%s sort:%s", m.filter, prefs.Sort)))
	if m.search != "" {
		b.WriteString(pal.dim.Render(" search:" + m.search))
	}
	b.WriteString("\n\n")

	if len(vis) == 0 {
		b.WriteString(pal.dim.Render("Nothing here. Press 'a' to add a task."))
		b.WriteString("\n")
	} else {
		for i, t := range vis {
			b.WriteString(m.renderTask(t, i, pal, todayKey))
		}
	}

	if m.mode != modeList {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(pal, todayKey))
	return b.String()
}

func (m Model) renderTask(t task.Task, i int, pal palette, todayKey string) string {
	cursor := " "
	if m.cursor == i && m.mode == modeList {
		cursor = ">"
	}
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	text := t.Text
	if t.Completed {
		text = pal.done.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", cursor, checkbox, text)
	if t.Due != nil {
		due := "due " + dateutil.Humanize(*t.Due)
		if !t.Completed && *t.Due < todayKey {
			line += "  " + pal.overdue.Render(due+" (overdue)")
		} else {
			line += "  " + pal.due.Render(due)
		}
	}
	return line + "\n"
}

func (m Model) renderFooter(pal palette, todayKey string) string {
	all := m.store.Tasks()
	stats := task.Stats(all, todayKey)
	streak := task.ComputeStreak(all, todayKey, dateutil.PrevKey)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d task%s (%d completed)\n", stats.Total, plural(stats.Total), stats.Completed))
	b.WriteString(pal.dim.Render(fmt.Sprintf(
		"Total: %d  Active: %d  Completed: %d  %d%% done  Overdue: %d",
		stats.Total, stats.Active, stats.Completed, stats.Percent, stats.Overdue)))
	b.WriteString("\n")
	if streak > 0 {
		b.WriteString(pal.streak.Render(fmt.Sprintf("Streak: %d day%s", streak, plural(streak))))
		b.WriteString("\n")
	}
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(pal.dim.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s delete • %s edit • %s due • %s search • %s filter • %s/%s reorder • %s-%s sort • %s theme • %s/%s export/import • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Delete, k.Edit, k.Due, k.Search, k.Filter,
		k.MoveUp, k.MoveDown, k.SortManual, k.SortCompleted, k.Theme, k.Export, k.Import, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func nextFilter(f task.Filter) task.Filter {
	switch f {
	case task.FilterAll:
		return task.FilterActive
	case task.FilterActive:
		return task.FilterCompleted
	default:
		return task.FilterAll
	}
}

func cursorFor(vis []task.Task, id string) int {
	for i, t := range vis {
		if t.ID == id {
			return i
		}
	}
	return clampCursor(0, len(vis))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
