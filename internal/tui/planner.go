package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekinsu/dersplan/internal/store"
	"github.com/ekinsu/dersplan/internal/week"
)

var (
	errOutsideWeek = errors.New("lesson must fall inside the displayed week")
	errBadDateTime = errors.New("invalid date or time")
	errBadDuration = errors.New("duration must be a positive number of minutes")
)

// plannerModel is the weekly board: seven day columns, week navigation, and
// the add-lesson form. Loading the view reconciles lesson completion flags
// against the ledger and consumes the free-session handoff slot.
type plannerModel struct {
	store  *store.Store
	width  int
	height int

	win     week.Window
	lessons []store.Lesson

	// Free session taken from the one-shot slot. Held for display until the
	// next refresh; the slot itself is already cleared.
	freeSession *store.FreeSession

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName     *string
	formType     *string
	formDuration *string
	formDate     *string
	formTime     *string
}

func newPlannerModel(s *store.Store) plannerModel {
	name, typ, dur, date, clock := "", store.TypeOther, "", "", ""
	return plannerModel{
		store:        s,
		win:          week.WindowFor(time.Now()),
		formName:     &name,
		formType:     &typ,
		formDuration: &dur,
		formDate:     &date,
		formTime:     &clock,
	}
}

func (p *plannerModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type plannerDataMsg struct {
	lessons     []store.Lesson
	freeSession *store.FreeSession
}

func (p plannerModel) refresh() tea.Cmd {
	win := p.win
	return func() tea.Msg {
		// Reconcile before reading so completion ticks are current.
		p.store.ReconcileLessons()
		lessons, _ := p.store.ListLessonsForWeek(win)
		fs, _ := p.store.TakeFreeSession()
		return plannerDataMsg{lessons: lessons, freeSession: fs}
	}
}

func (p plannerModel) update(msg tea.Msg) (plannerModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case plannerDataMsg:
		p.lessons = msg.lessons
		if msg.freeSession != nil {
			p.freeSession = msg.freeSession
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			p.win = p.win.Prev()
			return p, p.refresh()
		case key.Matches(msg, keys.Right):
			p.win = p.win.Next()
			return p, p.refresh()
		case key.Matches(msg, keys.New):
			return p.showLessonForm()
		}
	}
	return p, nil
}

func (p plannerModel) showLessonForm() (plannerModel, tea.Cmd) {
	*p.formName = ""
	*p.formType = store.TypeOther
	*p.formDuration = strconv.Itoa(p.store.GetSettingInt(store.SettingDefaultDuration, 50))
	*p.formDate = p.win.Start.Format(store.DateLayout)
	*p.formTime = "09:00"

	typeOptions := make([]huh.Option[string], len(store.LessonTypes))
	for i, t := range store.LessonTypes {
		typeOptions[i] = huh.NewOption(t, t)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Lesson Name").Value(p.formName),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(p.formType),
			huh.NewInput().Title("Duration (min)").Value(p.formDuration),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(p.formDate),
			huh.NewInput().Title("Start (HH:MM)").Value(p.formTime),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p plannerModel) updateForm(msg tea.Msg) (plannerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		if err := p.submitLesson(*p.formName, *p.formType, *p.formDuration, *p.formDate, *p.formTime); err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: err.Error(), isError: true}
			}
		}
		return p, p.refresh()
	}

	return p, cmd
}

// submitLesson validates the form input and appends the lesson. The date
// must fall inside the week currently on display; anything else is rejected
// without touching the store.
func (p plannerModel) submitLesson(name, typ, durationStr, date, clock string) error {
	if name == "" {
		return errors.New("lesson name required")
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration < 0 {
		return errBadDuration
	}

	at, err := time.ParseInLocation(store.TimeLayout, date+"T"+clock+":00", time.Local)
	if err != nil {
		return errBadDateTime
	}
	if !p.win.ContainsDate(at) {
		return errOutsideWeek
	}

	_, err = p.store.AddLesson(store.Lesson{
		Name:            name,
		Type:            typ,
		DurationMinutes: duration,
		Time:            at.Format(store.TimeLayout),
		Day:             strings.ToLower(at.Weekday().String()),
	})
	return err
}

func (p plannerModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Lesson")
		return panelStyle.Width(p.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View()),
		)
	}

	w := p.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Week Planner"), "  ",
		highlightStyle.Render(fmt.Sprintf("%s — %s",
			p.win.Start.Format("Jan 02"), p.win.End.Format("Jan 02, 2006"))),
	)

	board := p.renderBoard(w)
	nav := mutedStyle.Render("  ←/→: change week  n: add lesson")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", board, "", nav),
	)
}

func (p plannerModel) renderBoard(w int) string {
	days := p.win.Days()
	var rows []string

	for _, day := range days {
		date := day.Format(store.DateLayout)
		dayHeader := mutedStyle.Render(day.Format("Mon 02"))

		var items []string
		items = append(items, dayHeader)

		if p.freeSession != nil && p.freeSession.Date == date {
			label := fmt.Sprintf("Free (%d min) %s",
				p.freeSession.DurationSeconds/60, p.freeSession.Topic)
			items = append(items, "  "+highlightStyle.Render(label))
		}

		for _, l := range p.lessons {
			if l.Date() != date {
				continue
			}
			clock := ""
			if len(l.Time) >= 16 {
				clock = l.Time[11:16]
			}
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("●")
			label := fmt.Sprintf("  %s %s (%d min) %s", dot, l.Name, l.DurationMinutes, clock)
			if l.Completed {
				label += successStyle.Render(" ✓")
			}
			items = append(items, label)
		}

		if len(items) == 1 {
			items = append(items, mutedStyle.Render("  —"))
		}
		rows = append(rows, strings.Join(items, "\n"))
	}

	return strings.Join(rows, "\n")
}
