package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekinsu/dersplan/internal/exam"
	"github.com/ekinsu/dersplan/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	defaultDuration *string
	upcomingLimit   *string
	completionDelay *string
	aytTrack        *string
}

func newSettingsModel(s *store.Store) settingsModel {
	dd, ul, cd, at := "", "", "", ""
	return settingsModel{
		store:           s,
		defaultDuration: &dd,
		upcomingLimit:   &ul,
		completionDelay: &cd,
		aytTrack:        &at,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.defaultDuration = s.getVal(store.SettingDefaultDuration, "50")
	*s.upcomingLimit = s.getVal(store.SettingUpcomingLimit, "5")
	*s.completionDelay = s.getVal(store.SettingCompletionDelay, "3")
	*s.aytTrack = s.getVal(store.SettingAYTTrack, string(exam.TrackQuant))

	trackOpts := make([]huh.Option[string], 0, len(exam.Tracks))
	for _, tr := range exam.Tracks {
		trackOpts = append(trackOpts, huh.NewOption(string(tr), string(tr)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default lesson duration (min)").Value(s.defaultDuration),
			huh.NewInput().Title("Upcoming lessons shown").Value(s.upcomingLimit),
			huh.NewInput().Title("Timer return delay (sec)").Value(s.completionDelay),
			huh.NewSelect[string]().Title("AYT track").
				Options(trackOpts...).
				Value(s.aytTrack),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	s.store.SetSetting(store.SettingDefaultDuration, *s.defaultDuration)
	s.store.SetSetting(store.SettingUpcomingLimit, *s.upcomingLimit)
	s.store.SetSetting(store.SettingCompletionDelay, *s.completionDelay)
	s.store.SetSetting(store.SettingAYTTrack, *s.aytTrack)
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingDefaultDuration:
		return v + " min"
	case store.SettingCompletionDelay:
		return v + " sec"
	}
	return v
}
