package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xavierca1/playbook-leads/internal/console"
	"github.com/xavierca1/playbook-leads/internal/entity"
	"github.com/xavierca1/playbook-leads/internal/export"
)

const (
	// boardTop is the first screen row of the board: tabs and status line
	// come before it.
	boardTop   = 2
	colWidth   = 24
	cardHeight = 4
)

func (m Model) visibleColumns() int {
	if m.width <= 0 {
		return len(entity.BoardStatuses())
	}
	return max(1, m.width/colWidth)
}

func (m Model) View() string {
	var body string
	switch {
	case m.detail != "":
		body = m.renderDetail()
	case m.loading:
		body = m.styles.Help.Render("Cargando leads…")
	case m.tab == tabBoard:
		body = m.renderBoard()
	case m.tab == tabTable:
		body = m.renderTable()
	case m.tab == tabHidden:
		body = m.renderHidden()
	}

	return strings.Join([]string{
		m.renderTabs(),
		m.renderStatusLine(),
		body,
		m.styles.Help.Render(m.helpLine()),
	}, "\n")
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			tabs[i] = m.styles.ActiveTab.Render(name)
		} else {
			tabs[i] = m.styles.Tab.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatusLine() string {
	if len(m.alerts) > 0 {
		return m.styles.Notice.Render(m.alerts[len(m.alerts)-1])
	}
	if id := m.console.Board.ActiveID(); id != "" {
		if lead, ok := m.console.Book.Get(id); ok {
			return m.styles.Info.Render("Moviendo " + lead.Name)
		}
	}
	return m.styles.Info.Render(m.info)
}

// renderBoard draws the columns and records their geometry so pointer
// events can be resolved against what is on screen.
func (m Model) renderBoard() string {
	board := m.console.Board
	layout := board.Layout()
	layout.Reset()

	cols := board.Columns()
	active := board.ActiveID()

	bodyH := m.height - boardTop - 1
	if m.height <= 0 {
		longest := 0
		for _, c := range cols {
			longest = max(longest, len(c.Leads))
		}
		bodyH = 1 + longest*cardHeight
	}
	bodyH = max(bodyH, 1+cardHeight)
	capacity := (bodyH - 1) / cardHeight
	w := colWidth - 1

	end := min(len(cols), m.colOffset+m.visibleColumns())
	var blocks []string
	for i := m.colOffset; i < end; i++ {
		col := cols[i]
		x := (i - m.colOffset) * colWidth

		layout.Add(console.Region{
			ID:     col.Status,
			Kind:   console.RegionColumn,
			Rect:   console.Rect{X: x, Y: boardTop, W: w, H: bodyH},
			Status: col.Status,
		})
		layout.Add(console.Region{
			ID:     "title:" + col.Status,
			Rect:   console.Rect{X: x, Y: boardTop, W: w, H: 1},
			Parent: col.Status,
		})

		hovered := m.keyDrag && i == m.hoverCol
		lines := []string{ColumnTitle(col.Status, fmt.Sprintf("%s (%d)", col.Status, len(col.Leads)), w, hovered)}
		for j, lead := range col.Leads {
			if j == capacity {
				lines = append(lines, m.styles.Help.Render(fmt.Sprintf("+%d más", len(col.Leads)-j)))
				break
			}
			layout.Add(console.Region{
				ID:     lead.ID,
				Kind:   console.RegionCard,
				Rect:   console.Rect{X: x, Y: boardTop + 1 + j*cardHeight, W: w, H: cardHeight - 1},
				Parent: col.Status,
			})

			style := m.styles.Card
			switch {
			case lead.ID == active:
				style = m.styles.Dragged
			case !m.keyDrag && i == m.selCol && j == m.selRow:
				style = m.styles.Selected
			}
			lines = append(lines, renderCard(style, lead, w), "")
		}

		blocks = append(blocks, lipgloss.NewStyle().
			Width(w).
			Height(bodyH).
			MaxHeight(bodyH).
			Render(strings.Join(lines, "\n")))
		blocks = append(blocks, strings.TrimSuffix(strings.Repeat(" \n", bodyH), "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func renderCard(style lipgloss.Style, lead entity.Lead, width int) string {
	style = style.Width(width)
	notes := console.NotesPreview(lead.Notes, width)
	return strings.Join([]string{
		style.Bold(true).Render(clip(lead.Name, width)),
		style.Render(clip(lead.Phone, width)),
		style.Faint(true).Render(notes),
	}, "\n")
}

type tableColumn struct {
	title string
	width int
	value func(entity.Lead) string
}

var tableColumns = []tableColumn{
	{"Fecha", 17, func(l entity.Lead) string { return l.CreatedAt.Local().Format(export.DateLayout) }},
	{"Nombre", 20, func(l entity.Lead) string { return l.Name }},
	{"Email", 26, func(l entity.Lead) string { return l.Email }},
	{"Teléfono", 13, func(l entity.Lead) string { return l.Phone }},
	{"Estado", 23, func(l entity.Lead) string { return l.EffectiveStatus() }},
	{"Notas", 30, func(l entity.Lead) string { return console.NotesPreview(l.Notes, 29) }},
}

func (m Model) renderTable() string {
	table := m.console.Table
	var sb strings.Builder

	header := make([]string, len(tableColumns))
	for i, c := range tableColumns {
		header[i] = m.styles.Header.Width(c.width).Render(c.title)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	sb.WriteString("\n")

	rows := table.Current()
	if len(rows) == 0 {
		sb.WriteString(m.styles.Help.Render("No hay leads con este filtro"))
		sb.WriteString("\n")
	}
	for r, lead := range rows {
		cells := make([]string, len(tableColumns))
		for i, c := range tableColumns {
			text := clip(c.value(lead), c.width-1)
			if c.title == "Estado" {
				cells[i] = m.styles.Cell.Width(c.width).Render(StatusBadge(text))
				continue
			}
			cells[i] = m.styles.Cell.Width(c.width).Render(text)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if r == m.tableRow {
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	filter := table.Filter()
	if filter == export.FilterAll {
		filter = "Todos"
	}
	sb.WriteString(m.styles.Label.Render(fmt.Sprintf(
		"Página %d de %d · %d leads · Filtro: %s · %d por página",
		table.CurrentPage(), table.PageCount(), len(table.Rows()), filter, table.PageSize(),
	)))
	return sb.String()
}

func (m Model) renderHidden() string {
	leads := m.console.Hidden.Leads()
	if len(leads) == 0 {
		return m.styles.Help.Render("No hay leads ocultos")
	}

	var sb strings.Builder
	for i, lead := range leads {
		line := fmt.Sprintf("%-24s %-28s %s",
			clip(lead.Name, 24), clip(lead.Email, 28), StatusBadge(lead.EffectiveStatus()))
		if i == m.hiddenRow {
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	target := entity.Statuses()[m.hiddenTarget]
	sb.WriteString(m.styles.Label.Render("Nuevo estado: ") + StatusBadge(target))
	return sb.String()
}

func (m Model) renderDetail() string {
	lead, ok := m.console.Book.Get(m.detail)
	if !ok {
		return m.styles.Help.Render("Lead no encontrado")
	}

	field := func(label, value string) string {
		return m.styles.Label.Render(label+": ") + value
	}
	optional := func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	}

	notes := lead.NotesText()
	if m.console.Notes.FocusedID() == lead.ID {
		notes = m.notes.View()
	} else if notes == "" {
		notes = m.styles.Help.Render("Sin notas")
	}

	return m.styles.Overlay.Render(strings.Join([]string{
		m.styles.Header.Render(lead.Name),
		field("Email", lead.Email),
		field("Teléfono", lead.Phone),
		field("Clínica", optional(lead.Clinic)),
		field("Facturación", optional(lead.Revenue)),
		field("Reto", optional(lead.Challenge)),
		field("Estado", StatusBadge(lead.EffectiveStatus())),
		field("Fecha", lead.CreatedAt.Local().Format(export.DateLayout)),
		"",
		m.styles.Label.Render("Notas"),
		notes,
	}, "\n"))
}
