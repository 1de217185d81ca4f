package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xavierca1/playbook-leads/internal/console"
	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/export"
)

type tab int

const (
	tabBoard tab = iota
	tabTable
	tabHidden
)

var tabNames = []string{"Tablero", "Tabla", "No interesados"}

type (
	leadsLoadedMsg   struct{ err error }
	dropDoneMsg      struct{ res console.DropResult }
	notesSavedMsg    struct{ err error }
	statusChangedMsg struct{ err error }
	exportedMsg      struct {
		path string
		err  error
	}
)

// Model is the bubbletea model for the admin console.
type Model struct {
	ctx     context.Context
	console *console.Console
	notices *console.Notices
	styles  Styles

	width  int
	height int
	tab    tab

	// board
	colOffset int
	selCol    int
	selRow    int
	keyDrag   bool
	hoverCol  int

	// detail overlay
	detail string
	notes  textarea.Model

	tableRow     int
	hiddenRow    int
	hiddenTarget int

	alerts  []string
	info    string
	loading bool

	exportDir string
	now       func() time.Time
}

// Option tweaks a Model.
type Option func(*Model)

// WithExportDir sets where exported workbooks are written.
func WithExportDir(dir string) Option {
	return func(m *Model) { m.exportDir = dir }
}

func New(ctx context.Context, c *console.Console, notices *console.Notices, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "Añade notas sobre este lead…"
	ta.ShowLineNumbers = false
	ta.SetHeight(4)

	m := Model{
		ctx:       ctx,
		console:   c,
		notices:   notices,
		styles:    DefaultStyles(),
		notes:     ta,
		exportDir: ".",
		now:       time.Now,
		loading:   true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	c, ctx := m.console, m.ctx
	return func() tea.Msg {
		return leadsLoadedMsg{err: c.Refresh(ctx)}
	}
}

func (m Model) commitDrop(res console.DropResult) tea.Cmd {
	if !res.Pending() {
		return nil
	}
	board, ctx := m.console.Board, m.ctx
	return func() tea.Msg {
		return dropDoneMsg{res: board.Commit(ctx, res)}
	}
}

func (m Model) saveNotes() tea.Cmd {
	editor, ctx := m.console.Notes, m.ctx
	return func() tea.Msg {
		return notesSavedMsg{err: editor.Blur(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.notes.SetWidth(max(20, min(60, msg.Width-8)))
		return m, nil

	case leadsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.alerts = append(m.alerts, "Error al cargar leads: "+console.Reason(msg.err))
		} else {
			m.info = ""
		}
		m.clampSelection()
		return m, nil

	case dropDoneMsg:
		if msg.res.Outcome == console.DropMoved {
			m.info = msg.res.To
		}
		m.drainNotices()
		return m, nil

	case notesSavedMsg, statusChangedMsg:
		m.drainNotices()
		m.clampSelection()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.alerts = append(m.alerts, msg.err.Error())
		} else {
			m.info = "Exportado: " + msg.path
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) drainNotices() {
	if m.notices == nil {
		return
	}
	m.alerts = append(m.alerts, m.notices.Drain()...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// a focused notes field takes every key
	if m.console.Notes.Focused() {
		if msg.Type == tea.KeyEsc {
			m.notes.Blur()
			return m, m.saveNotes()
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		_ = m.console.Notes.Change(m.notes.Value())
		return m, cmd
	}

	if m.detail != "" {
		return m.handleDetailKey(msg)
	}

	m.alerts = nil

	switch msg.String() {
	case "q":
		if !m.keyDrag {
			return m, tea.Quit
		}
	case "tab":
		if !m.keyDrag {
			m.tab = (m.tab + 1) % tab(len(tabNames))
		}
		return m, nil
	case "1", "2", "3":
		if !m.keyDrag {
			m.tab = tab(msg.String()[0] - '1')
		}
		return m, nil
	case "r":
		if !m.keyDrag {
			m.loading = true
			return m, m.refresh()
		}
	}

	switch m.tab {
	case tabBoard:
		return m.handleBoardKey(msg)
	case tabTable:
		return m.handleTableKey(msg)
	case tabHidden:
		return m.handleHiddenKey(msg)
	}
	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.console.Board.Columns()
	board := m.console.Board

	if m.keyDrag {
		switch msg.String() {
		case "left", "h":
			m.hoverCol = max(0, m.hoverCol-1)
		case "right", "l":
			m.hoverCol = min(len(cols)-1, m.hoverCol+1)
		case " ", "enter":
			m.keyDrag = false
			res := board.DropOn(cols[m.hoverCol].Status)
			if res.Outcome == console.DropMoved {
				m.selCol = m.hoverCol
				m.selRow = 0
			}
			return m, m.commitDrop(res)
		case "esc":
			m.keyDrag = false
			board.Cancel()
		}
		m.scrollTo(m.hoverCol)
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.selCol = max(0, m.selCol-1)
	case "right", "l":
		m.selCol = min(len(cols)-1, m.selCol+1)
	case "up", "k":
		m.selRow = max(0, m.selRow-1)
	case "down", "j":
		m.selRow++
	case " ":
		if id := m.selectedCard(cols); id != "" && board.PickUp(id) {
			m.keyDrag = true
			m.hoverCol = m.selCol
		}
	case "enter":
		if id := m.selectedCard(cols); id != "" {
			if _, ok := board.Click(id); ok {
				m.openDetail(id)
			}
		}
	}
	m.clampSelection()
	m.scrollTo(m.selCol)
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.detail = ""
	case "e", "n":
		if m.console.Notes.Focus(m.detail) {
			m.notes.SetValue(m.console.Notes.Text())
			return m, m.notes.Focus()
		}
	}
	return m, nil
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	table := m.console.Table
	rows := table.Current()

	switch msg.String() {
	case "up", "k":
		m.tableRow = max(0, m.tableRow-1)
	case "down", "j":
		m.tableRow = min(len(rows)-1, m.tableRow+1)
	case "left", "h":
		table.GoTo(table.CurrentPage() - 1)
		m.tableRow = 0
	case "right", "l":
		table.GoTo(table.CurrentPage() + 1)
		m.tableRow = 0
	case "f":
		table.SetFilter(nextFilter(table.Filter()))
		m.tableRow = 0
	case "p":
		table.SetPageSize(nextPageSize(table.PageSize()))
		m.tableRow = 0
	case "s":
		table.SortBy((table.SortField() + 1) % 3)
	case "c":
		if lead, ok := m.tableLead(); ok {
			next := nextStatus(lead.EffectiveStatus())
			return m, m.changeStatus(func(ctx context.Context) error {
				return table.ChangeStatus(ctx, lead.ID, next)
			})
		}
	case "x":
		return m, m.export()
	case "enter":
		if lead, ok := m.tableLead(); ok {
			m.openDetail(lead.ID)
		}
	}
	return m, nil
}

func (m Model) handleHiddenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hidden := m.console.Hidden
	leads := hidden.Leads()
	statuses := entity.Statuses()

	switch msg.String() {
	case "up", "k":
		m.hiddenRow = max(0, m.hiddenRow-1)
	case "down", "j":
		m.hiddenRow = min(len(leads)-1, m.hiddenRow+1)
	case "c":
		m.hiddenTarget = (m.hiddenTarget + 1) % len(statuses)
	case "enter":
		if m.hiddenRow >= 0 && m.hiddenRow < len(leads) {
			id, to := leads[m.hiddenRow].ID, statuses[m.hiddenTarget]
			return m, m.changeStatus(func(ctx context.Context) error {
				return hidden.ChangeStatus(ctx, id, to)
			})
		}
	}
	return m, nil
}

func (m Model) changeStatus(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return statusChangedMsg{err: fn(ctx)}
	}
}

func (m Model) export() tea.Cmd {
	table, dir, now := m.console.Table, m.exportDir, m.now()
	return func() tea.Msg {
		data, name, err := table.Export(now)
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.tab != tabBoard || m.detail != "" || m.keyDrag {
		return m, nil
	}
	board := m.console.Board
	p := console.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if id, ok := board.Layout().ElementAt(p); ok {
			if r, _ := board.Layout().Region(id); r.Kind == console.RegionCard {
				board.PointerDown(id, p)
			}
		}
	case tea.MouseActionMotion:
		board.PointerMove(p)
	case tea.MouseActionRelease:
		res := board.PointerUp(p)
		switch res.Outcome {
		case console.DropNotStarted:
			if _, ok := board.Click(res.LeadID); ok {
				m.openDetail(res.LeadID)
			}
		case console.DropMoved:
			return m, m.commitDrop(res)
		}
	}
	return m, nil
}

func (m *Model) openDetail(id string) {
	m.detail = id
}

func (m Model) selectedCard(cols []console.Column) string {
	if m.selCol < 0 || m.selCol >= len(cols) {
		return ""
	}
	leads := cols[m.selCol].Leads
	if m.selRow < 0 || m.selRow >= len(leads) {
		return ""
	}
	return leads[m.selRow].ID
}

func (m Model) tableLead() (entity.Lead, bool) {
	rows := m.console.Table.Current()
	if m.tableRow < 0 || m.tableRow >= len(rows) {
		return entity.Lead{}, false
	}
	return rows[m.tableRow], true
}

func (m *Model) clampSelection() {
	cols := m.console.Board.Columns()
	m.selCol = max(0, min(m.selCol, len(cols)-1))
	if n := len(cols[m.selCol].Leads); m.selRow >= n {
		m.selRow = max(0, n-1)
	}
	if n := len(m.console.Table.Current()); m.tableRow >= n {
		m.tableRow = max(0, n-1)
	}
	if n := len(m.console.Hidden.Leads()); m.hiddenRow >= n {
		m.hiddenRow = max(0, n-1)
	}
}

func (m *Model) scrollTo(col int) {
	visible := m.visibleColumns()
	if col < m.colOffset {
		m.colOffset = col
	}
	if col >= m.colOffset+visible {
		m.colOffset = col - visible + 1
	}
}

func nextFilter(current string) string {
	options := append([]string{export.FilterAll}, entity.Statuses()...)
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return export.FilterAll
}

func nextPageSize(current int) int {
	for i, s := range console.PageSizes {
		if s == current {
			return console.PageSizes[(i+1)%len(console.PageSizes)]
		}
	}
	return console.DefaultPageSize
}

func nextStatus(current string) string {
	statuses := entity.Statuses()
	for i, s := range statuses {
		if s == current {
			return statuses[(i+1)%len(statuses)]
		}
	}
	return entity.DefaultStatus
}

// Run starts the program on the terminal with mouse support.
func Run(ctx context.Context, c *console.Console, notices *console.Notices, opts ...Option) error {
	p := tea.NewProgram(New(ctx, c, notices, opts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) helpLine() string {
	switch {
	case m.console.Notes.Focused():
		return "esc guardar notas"
	case m.detail != "":
		return "e editar notas · esc cerrar"
	case m.keyDrag:
		return "←/→ columna · espacio soltar · esc cancelar"
	}
	parts := []string{"tab/1-3 vista", "r recargar", "q salir"}
	switch m.tab {
	case tabBoard:
		parts = append([]string{"flechas mover", "espacio arrastrar", "enter detalle"}, parts...)
	case tabTable:
		parts = append([]string{"←/→ página", "f filtro", "p tamaño", "s orden", "c estado", "x exportar"}, parts...)
	case tabHidden:
		parts = append([]string{"c elegir estado", "enter aplicar"}, parts...)
	}
	return strings.Join(parts, " · ")
}
