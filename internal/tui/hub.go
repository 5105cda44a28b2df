package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekinsu/dersplan/internal/store"
)

// hubModel is the landing view: the next few planned lessons at a glance.
type hubModel struct {
	store  *store.Store
	width  int
	height int

	upcoming []store.Lesson
	loaded   bool
}

func newHubModel(s *store.Store) hubModel {
	return hubModel{store: s}
}

func (h *hubModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type hubDataMsg struct {
	upcoming []store.Lesson
}

func (h hubModel) refresh() tea.Cmd {
	return func() tea.Msg {
		limit := h.store.GetSettingInt(store.SettingUpcomingLimit, 5)
		upcoming, _ := h.store.ListUpcomingLessons(time.Now(), limit)
		return hubDataMsg{upcoming: upcoming}
	}
}

func (h hubModel) update(msg tea.Msg) (hubModel, tea.Cmd) {
	switch msg := msg.(type) {
	case hubDataMsg:
		h.upcoming = msg.upcoming
		h.loaded = true
		return h, nil
	}
	return h, nil
}

func (h hubModel) view() string {
	w := h.width - 4

	title := titleStyle.Render("Upcoming Lessons")

	if len(h.upcoming) == 0 {
		empty := mutedStyle.Render("No upcoming lessons.")
		if !h.loaded {
			empty = mutedStyle.Render("Loading...")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", empty,
				"",
				mutedStyle.Render("Press 2 to plan a lesson, 3 to start studying."),
			),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for _, l := range h.upcoming {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("●")
		when := l.Time
		if at, err := l.StartsAt(); err == nil {
			when = at.Format("Mon Jan 2 15:04")
		}
		row := fmt.Sprintf("  %s %-20s %-10s %s  (%d min)", dot, l.Name, l.Type, when, l.DurationMinutes)
		rows = append(rows, normalItemStyle.Render(row))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
