package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekinsu/dersplan/internal/store"
	"github.com/ekinsu/dersplan/internal/timer"
)

type timerMode int

const (
	modeSelect timerMode = iota
	modeFree
	modePlan
)

// timerViewModel hosts both timer engines behind a mode-selection screen.
// The engines live in internal/timer; this model only routes keys and ticks
// and renders their state.
type timerViewModel struct {
	store  *store.Store
	width  int
	height int

	mode timerMode
	free *timer.FreeTimer
	plan *timer.PlanTimer

	// Plan mode picker
	pickerLessons []store.Lesson
	pickerCursor  int

	// Seconds until the completed plan view returns to the picker.
	returnIn int

	// Free finish form
	formActive bool
	form       *huh.Form
	formTopic  *string
	formDate   *string
}

func newTimerViewModel(s *store.Store) timerViewModel {
	topic, date := "", ""
	return timerViewModel{
		store:     s,
		free:      timer.NewFreeTimer(s),
		plan:      timer.NewPlanTimer(s),
		formTopic: &topic,
		formDate:  &date,
	}
}

func (t *timerViewModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type pickerDataMsg struct {
	lessons []store.Lesson
}

func (t timerViewModel) refreshPicker() tea.Cmd {
	return func() tea.Msg {
		lessons, _ := t.store.ListIncompleteLessons()
		return pickerDataMsg{lessons: lessons}
	}
}

// leave stops whatever is ticking before the app switches views, so no
// session keeps counting in the background.
func (t timerViewModel) leave() timerViewModel {
	t.free.Stop()
	if t.plan.State() == timer.PlanRunning {
		t.plan.Toggle()
	}
	return t
}

func (t timerViewModel) update(msg tea.Msg) (timerViewModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateFinishForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		return t.tick()

	case pickerDataMsg:
		t.pickerLessons = msg.lessons
		if t.pickerCursor >= len(t.pickerLessons) {
			t.pickerCursor = max(0, len(t.pickerLessons)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch t.mode {
		case modeSelect:
			return t.updateModeSelect(msg)
		case modeFree:
			return t.updateFree(msg)
		case modePlan:
			return t.updatePlan(msg)
		}
	}
	return t, nil
}

func (t timerViewModel) tick() (timerViewModel, tea.Cmd) {
	t.free.Tick()

	done, err := t.plan.Tick()
	if err != nil {
		return t, errStatus(err)
	}
	if done {
		lesson := t.plan.Lesson()
		t.returnIn = t.store.GetSettingInt(store.SettingCompletionDelay, 3)
		return t, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Time's up — %s completed!", lesson.Name)}
		}
	}

	// After a completion, wait out the delay and go back to the picker.
	if t.plan.State() == timer.PlanCompleted && t.returnIn > 0 {
		t.returnIn--
		if t.returnIn == 0 {
			t.plan.Clear()
			return t, t.refreshPicker()
		}
	}
	return t, nil
}

func (t timerViewModel) updateModeSelect(msg tea.KeyMsg) (timerViewModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		// Two entries; any vertical movement flips the cursor.
		if t.pickerCursor == 0 {
			t.pickerCursor = 1
		} else {
			t.pickerCursor = 0
		}
	case key.Matches(msg, keys.Enter):
		if t.pickerCursor == 0 {
			t.mode = modeFree
			t.free.Reset()
			return t, nil
		}
		t.mode = modePlan
		t.plan.Clear()
		t.pickerCursor = 0
		return t, t.refreshPicker()
	}
	return t, nil
}

// --- Free study mode ---

func (t timerViewModel) updateFree(msg tea.KeyMsg) (timerViewModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		t.free.Reset()
		t.mode = modeSelect
		t.pickerCursor = 0
		return t, nil
	case key.Matches(msg, keys.Start), key.Matches(msg, keys.Pause):
		t.free.Toggle()
		return t, nil
	case key.Matches(msg, keys.Reset):
		t.free.Reset()
		return t, nil
	case key.Matches(msg, keys.Finish):
		t.free.Stop()
		return t.showFinishForm()
	}
	return t, nil
}

func (t timerViewModel) showFinishForm() (timerViewModel, tea.Cmd) {
	*t.formTopic = ""
	*t.formDate = ""

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Topic").Placeholder(timer.DefaultTopic).Value(t.formTopic),
			huh.NewInput().Title("Study date (YYYY-MM-DD)").Value(t.formDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t timerViewModel) updateFinishForm(msg tea.Msg) (timerViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		_, err := t.free.Finish(*t.formTopic, *t.formDate)
		if errors.Is(err, timer.ErrDateRequired) {
			// Recoverable: keep the elapsed count, ask again.
			return t, func() tea.Msg {
				return statusMsg{text: "Please pick a study date.", isError: true}
			}
		}
		if err != nil {
			return t, errStatus(err)
		}
		t.mode = modeSelect
		t.pickerCursor = 0
		return t, func() tea.Msg {
			return statusMsg{text: "Free session logged. It will appear on the planner."}
		}
	}

	return t, cmd
}

// --- Plan study mode ---

func (t timerViewModel) updatePlan(msg tea.KeyMsg) (timerViewModel, tea.Cmd) {
	// No lesson armed yet: keys drive the picker.
	if t.plan.State() == timer.PlanNoLesson {
		switch {
		case key.Matches(msg, keys.Back):
			t.mode = modeSelect
			t.pickerCursor = 0
			return t, nil
		case key.Matches(msg, keys.Up):
			if t.pickerCursor > 0 {
				t.pickerCursor--
			}
		case key.Matches(msg, keys.Down):
			if t.pickerCursor < len(t.pickerLessons)-1 {
				t.pickerCursor++
			}
		case key.Matches(msg, keys.Enter):
			if t.pickerCursor < len(t.pickerLessons) {
				lesson := t.pickerLessons[t.pickerCursor]
				t.plan.Select(&lesson)
			}
		case key.Matches(msg, keys.Start), key.Matches(msg, keys.Pause), key.Matches(msg, keys.Finish):
			return t, func() tea.Msg {
				return statusMsg{text: "Please select a lesson first.", isError: true}
			}
		}
		return t, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		if t.plan.State() == timer.PlanRunning {
			t.plan.Toggle()
		}
		t.plan.Clear()
		return t, t.refreshPicker()
	// Two affordances, one transition: both controls share Toggle, so the
	// displayed states can never diverge.
	case key.Matches(msg, keys.Start), key.Matches(msg, keys.Pause):
		if err := t.plan.Toggle(); err != nil {
			return t, noLessonStatus(err)
		}
		return t, nil
	case key.Matches(msg, keys.Finish):
		if err := t.plan.Finish(); err != nil {
			return t, noLessonStatus(err)
		}
		lesson := t.plan.Lesson()
		t.returnIn = t.store.GetSettingInt(store.SettingCompletionDelay, 3)
		return t, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Study for %s completed!", lesson.Name)}
		}
	}
	return t, nil
}

func noLessonStatus(err error) tea.Cmd {
	if errors.Is(err, timer.ErrNoLesson) {
		return func() tea.Msg {
			return statusMsg{text: "Please select a lesson first.", isError: true}
		}
	}
	return errStatus(err)
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

// --- Views ---

func (t timerViewModel) view() string {
	if t.formActive && t.form != nil {
		title := titleStyle.Render("Finish Free Session")
		logged := mutedStyle.Render("Logged time: " + formatClock(t.free.Elapsed()))
		return panelStyle.Width(t.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, logged, "", t.form.View()),
		)
	}

	switch t.mode {
	case modeFree:
		return t.viewFree()
	case modePlan:
		return t.viewPlan()
	}
	return t.viewModeSelect()
}

func (t timerViewModel) viewModeSelect() string {
	w := t.width - 4
	title := titleStyle.Render("Study Timer")

	entries := []string{"Free study", "Plan study"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, e := range entries {
		cursor := "  "
		style := normalItemStyle
		if i == t.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+e))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t timerViewModel) viewFree() string {
	w := t.width - 4
	title := titleStyle.Render("Free Study")

	display := formatClock(t.free.Elapsed())
	var timeDisplay, indicator string
	switch t.free.State() {
	case timer.FreeRunning:
		timeDisplay = timerRunningStyle.Width(w - 6).Render(display)
		indicator = successStyle.Render("●  RUNNING")
	case timer.FreeStopped:
		timeDisplay = timerPausedStyle.Width(w - 6).Render(display)
		indicator = warningStyle.Render("⏸  STOPPED")
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(display)
		indicator = mutedStyle.Render("■  IDLE")
	}

	controls := mutedStyle.Render("s: start/stop  r: reset  f: finish  esc: back")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, title, "", timeDisplay, indicator, "", controls),
	)
}

func (t timerViewModel) viewPlan() string {
	if t.plan.State() == timer.PlanNoLesson {
		return t.viewLessonPicker()
	}

	w := t.width - 4
	lesson := t.plan.Lesson()
	title := titleStyle.Render("Plan Study — " + lesson.Name)

	display := formatClock(t.plan.Remaining())
	var timeDisplay, indicator string
	switch t.plan.State() {
	case timer.PlanRunning:
		timeDisplay = timerRunningStyle.Width(w - 6).Render(display)
		indicator = successStyle.Render("●  RUNNING")
	case timer.PlanPaused:
		timeDisplay = timerPausedStyle.Width(w - 6).Render(display)
		indicator = warningStyle.Render("⏸  PAUSED")
	case timer.PlanCompleted:
		timeDisplay = timerRunningStyle.Width(w - 6).Render("Done!")
		indicator = successStyle.Render("✓  COMPLETED")
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(display)
		indicator = mutedStyle.Render("■  READY")
	}

	info := mutedStyle.Render(fmt.Sprintf("%s · %d min planned", lesson.Time, lesson.DurationMinutes))
	controls := mutedStyle.Render("s/space: start-pause  f: finish  esc: back")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, title, info, "", timeDisplay, indicator, "", controls),
	)
}

func (t timerViewModel) viewLessonPicker() string {
	w := t.width - 4
	title := titleStyle.Render("Select a Lesson")

	if len(t.pickerLessons) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "",
				mutedStyle.Render("No uncompleted lessons. Plan one on the Planner tab."),
			),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, l := range t.pickerLessons {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == t.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%s %s (%s · %d min)", cursor, dot, l.Name, l.Time, l.DurationMinutes)
		rows = append(rows, style.Render(row))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
