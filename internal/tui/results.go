package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekinsu/dersplan/internal/exam"
	"github.com/ekinsu/dersplan/internal/store"
)

const resultHistory = 5

// resultsModel shows the last few TYT and AYT results with a total-net chart
// and drives the two-step entry form: exam metadata first, then one
// correct/incorrect pair per subject.
type resultsModel struct {
	store  *store.Store
	width  int
	height int

	chartExam string // exam type currently charted
	tyt       []store.ExamResult
	ayt       []store.ExamResult
	chart     barchart.Model

	formStage  int // 0 none, 1 metadata, 2 scores
	form       *huh.Form
	formExam   *string
	formTrack  *string
	formSubs   []exam.Subject
	formScores []*string // correct, incorrect interleaved per subject
}

func newResultsModel(s *store.Store) resultsModel {
	examType, track := exam.TYT, ""
	return resultsModel{
		store:     s,
		chartExam: exam.TYT,
		chart:     barchart.New(60, 10),
		formExam:  &examType,
		formTrack: &track,
	}
}

func (r *resultsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type resultsDataMsg struct {
	tyt []store.ExamResult
	ayt []store.ExamResult
}

func (r resultsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tyt, _ := r.store.LastResults(exam.TYT, resultHistory)
		ayt, _ := r.store.LastResults(exam.AYT, resultHistory)
		return resultsDataMsg{tyt: tyt, ayt: ayt}
	}
}

func (r resultsModel) update(msg tea.Msg) (resultsModel, tea.Cmd) {
	if r.formStage > 0 && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case resultsDataMsg:
		r.tyt = msg.tyt
		r.ayt = msg.ayt
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New):
			return r.showMetaForm()
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
			if r.chartExam == exam.TYT {
				r.chartExam = exam.AYT
			} else {
				r.chartExam = exam.TYT
			}
			r.buildChart()
			return r, nil
		}
	}
	return r, nil
}

// --- Entry form ---

func (r resultsModel) showMetaForm() (resultsModel, tea.Cmd) {
	*r.formExam = exam.TYT
	if track, err := r.store.GetSetting(store.SettingAYTTrack); err == nil && exam.Track(track).Valid() {
		*r.formTrack = track
	} else {
		*r.formTrack = string(exam.TrackQuant)
	}

	trackOpts := make([]huh.Option[string], 0, len(exam.Tracks))
	for _, tr := range exam.Tracks {
		trackOpts = append(trackOpts, huh.NewOption(string(tr), string(tr)))
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Exam").
				Options(
					huh.NewOption("TYT", exam.TYT),
					huh.NewOption("AYT", exam.AYT),
				).
				Value(r.formExam),
			huh.NewSelect[string]().
				Title("AYT track (ignored for TYT)").
				Options(trackOpts...).
				Value(r.formTrack),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formStage = 1
	return r, r.form.Init()
}

func (r resultsModel) showScoreForm() (resultsModel, tea.Cmd) {
	if *r.formExam == exam.AYT {
		r.formSubs = exam.Track(*r.formTrack).Subjects()
	} else {
		r.formSubs = exam.TYTSubjects
	}

	r.formScores = make([]*string, 2*len(r.formSubs))
	fields := make([]huh.Field, 0, 2*len(r.formSubs))
	for i, sub := range r.formSubs {
		c, in := "0", "0"
		r.formScores[2*i] = &c
		r.formScores[2*i+1] = &in
		fields = append(fields,
			huh.NewInput().
				Title(fmt.Sprintf("%s correct (0-%d)", sub.Name, sub.Questions)).
				Value(r.formScores[2*i]),
			huh.NewInput().
				Title(fmt.Sprintf("%s incorrect (0-%d)", sub.Name, sub.Questions)).
				Value(r.formScores[2*i+1]),
		)
	}

	r.form = huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(true).WithShowErrors(true)

	r.formStage = 2
	return r, r.form.Init()
}

func (r resultsModel) updateForm(msg tea.Msg) (resultsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formStage = 0
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		if r.formStage == 1 {
			return r.showScoreForm()
		}

		corrects := make([]string, len(r.formSubs))
		incorrects := make([]string, len(r.formSubs))
		for i := range r.formSubs {
			corrects[i] = *r.formScores[2*i]
			incorrects[i] = *r.formScores[2*i+1]
		}
		r.formStage = 0
		r.form = nil

		res, err := r.saveResult(*r.formExam, *r.formTrack, r.formSubs, corrects, incorrects)
		if err != nil {
			return r, errStatus(err)
		}
		text := fmt.Sprintf("Saved: %s total net %.2f", strings.ToUpper(res.ExamType), res.TotalNet)
		return r, tea.Batch(r.refresh(), func() tea.Msg {
			return statusMsg{text: text}
		})
	}

	return r, cmd
}

// saveResult turns raw form strings into a stored result. Unparseable counts
// fall back to zero, out-of-range counts are clamped against the subject's
// question budget with correct taking precedence.
func (r resultsModel) saveResult(examType, track string, subjects []exam.Subject, corrects, incorrects []string) (*store.ExamResult, error) {
	scores := make(map[string]exam.Score, len(subjects))
	for i, sub := range subjects {
		c, _ := strconv.Atoi(strings.TrimSpace(corrects[i]))
		in, _ := strconv.Atoi(strings.TrimSpace(incorrects[i]))
		c, in = exam.ClampScore(c, in, sub.Questions, true)
		scores[sub.Key] = exam.Score{Correct: c, Incorrect: in}
	}

	var (
		nets  map[string]float64
		total float64
	)
	if examType == exam.AYT {
		nets, total = exam.AYTNets(exam.Track(track), scores)
	} else {
		track = ""
		nets, total = exam.TYTNets(scores)
	}

	return r.store.AddExamResult(store.ExamResult{
		ExamType: examType,
		Date:     time.Now().Format(store.DateLayout),
		Track:    track,
		Nets:     nets,
		TotalNet: total,
	})
}

// --- Chart ---

func (r *resultsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 32 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	results := r.tyt
	barColor := colorPrimary
	if r.chartExam == exam.AYT {
		results = r.ayt
		barColor = colorHighlight
	}

	var bars []barchart.BarData
	for _, res := range results {
		value := res.TotalNet
		style := lipgloss.NewStyle().Foreground(barColor)
		if value <= 0 {
			value = 0
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: shortDate(res.Date),
			Values: []barchart.BarValue{
				{Name: "net", Value: value, Style: style},
			},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "-",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

// shortDate trims a YYYY-MM-DD date down to MM-DD for chart labels.
func shortDate(date string) string {
	if len(date) == len(store.DateLayout) {
		return date[5:]
	}
	return date
}

// --- View ---

func (r resultsModel) view() string {
	if r.formStage > 0 && r.form != nil {
		title := "New Result — Exam"
		if r.formStage == 2 {
			title = fmt.Sprintf("New Result — %s Scores", strings.ToUpper(*r.formExam))
		}
		return panelStyle.Width(r.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", r.form.View()),
		)
	}

	w := r.width - 4

	chartTitle := fmt.Sprintf("Total Net — %s (last %d)", strings.ToUpper(r.chartExam), resultHistory)
	chartPanel := panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(chartTitle),
			mutedStyle.Render("←/→ switch exam"),
			"",
			r.chart.View(),
		),
	)

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		r.viewList("TYT", r.tyt, w/2-1),
		" ",
		r.viewList("AYT", r.ayt, w-w/2-2),
	)

	footer := mutedStyle.Render("n: new result")
	return lipgloss.JoinVertical(lipgloss.Left, chartPanel, lists, footer)
}

func (r resultsModel) viewList(name string, results []store.ExamResult, w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render(name))
	if len(results) == 0 {
		rows = append(rows, mutedStyle.Render("No results yet."))
	}
	for _, res := range results {
		label := res.Date
		if res.Track != "" {
			label += " · " + res.Track
		}
		rows = append(rows,
			normalItemStyle.Render(label)+
				"  "+highlightStyle.Render(fmt.Sprintf("%.2f", res.TotalNet)))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
