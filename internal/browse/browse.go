// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package browse is a terminal shell over a site context. The left pane lists
// the header's sections, the right pane shows the main region's text.
package browse

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/fragnav/internal/site"
)

type sectionItem string

func (i sectionItem) Title() string       { return string(i) }
func (i sectionItem) Description() string { return "#" + string(i) }
func (i sectionItem) FilterValue() string { return string(i) }

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// Model is the bubbletea model for the browse command.
type Model struct {
	ctx      context.Context
	site     *site.Context
	list     list.Model
	viewport viewport.Model
	width    int
	height   int
}

// New builds a model over an initialized site context.
func New(ctx context.Context, s *site.Context) (Model, error) {
	sections, err := s.Sections()
	if err != nil {
		return Model{}, fmt.Errorf("failed to list sections: %w", err)
	}

	items := make([]list.Item, 0, len(sections))
	for _, id := range sections {
		items = append(items, sectionItem(id))
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Sections"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	m := Model{
		ctx:      ctx,
		site:     s,
		list:     l,
		viewport: viewport.New(0, 0),
	}
	m.refresh()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if sel, ok := m.list.SelectedItem().(sectionItem); ok {
				m.site.Navigate(m.ctx, string(sel))
				m.refresh()
				m.viewport.GotoTop()
			}
			return m, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(m.list.View()),
		paneStyle.Render(m.viewport.View()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, statusStyle.Render(m.Status()))
}

// Current returns the section the router is displaying.
func (m Model) Current() string {
	return m.site.Router.Current()
}

// Status is the one-line footer: current section and router phase.
func (m Model) Status() string {
	st := m.site.Router.State()
	current := st.Section
	if current == "" {
		current = "-"
	}
	return fmt.Sprintf(" #%s  %s  •  enter: open  pgup/pgdn: scroll  q: quit", current, st.Phase)
}

func (m *Model) refresh() {
	text := m.site.MainText()
	if text == "" && m.site.Router.Page().Nested {
		if body := m.site.Document.QueryTag("body"); body != nil {
			text = body.Text()
		}
	}
	m.viewport.SetContent(text)
}

func (m *Model) setSize(w, h int) {
	m.width = w
	m.height = h

	// Border and padding take 4 columns and 2 rows per pane; the status line
	// takes one row.
	paneH := max(h-3, 1)
	listW := max(w/3-4, 1)
	viewW := max(w-w/3-4, 1)

	m.list.SetSize(listW, paneH)
	m.viewport.Width = viewW
	m.viewport.Height = paneH
}
