package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsu/dersplan/internal/chatbot"
)

type chatLine struct {
	fromUser bool
	text     string
}

// chatModel is a small question/answer log over the keyword advisor.
// While the input is focused it swallows every key except esc, so the
// global shortcuts don't fire mid-sentence.
type chatModel struct {
	width  int
	height int

	input textinput.Model
	log   []chatLine
}

func newChatModel() chatModel {
	ti := textinput.New()
	ti.Placeholder = "Soru yaz... (enter gönderir)"
	ti.CharLimit = 200
	return chatModel{input: ti}
}

func (c *chatModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.input.Width = max(20, w-12)
}

func (c chatModel) focused() bool { return c.input.Focused() }

func (c chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	if !c.input.Focused() {
		if key.Matches(keyMsg, keys.Enter) {
			return c, c.input.Focus()
		}
		return c, nil
	}

	switch keyMsg.String() {
	case "esc":
		c.input.Blur()
		return c, nil
	case "enter":
		text := strings.TrimSpace(c.input.Value())
		if text == "" {
			return c, nil
		}
		c.log = append(c.log,
			chatLine{fromUser: true, text: text},
			chatLine{fromUser: false, text: chatbot.Respond(text)},
		)
		c.input.SetValue("")
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c chatModel) view() string {
	w := c.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Study Advisor"))
	rows = append(rows, "")

	if len(c.log) == 0 {
		rows = append(rows, mutedStyle.Render("Ask about TYT, AYT, nets or planning."))
	}

	// Show only as many lines as fit above the input.
	visible := c.log
	maxLines := c.height - 10
	if maxLines > 0 && len(visible) > maxLines {
		visible = visible[len(visible)-maxLines:]
	}
	for _, line := range visible {
		if line.fromUser {
			rows = append(rows, accentStyle.Render("siz: ")+line.text)
		} else {
			rows = append(rows, highlightStyle.Render("bot: ")+line.text)
		}
	}

	rows = append(rows, "")
	rows = append(rows, c.input.View())
	hint := "enter: focus input"
	if c.input.Focused() {
		hint = "enter: send  esc: leave input"
	}
	rows = append(rows, mutedStyle.Render(hint))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
