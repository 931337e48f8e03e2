package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationDialog represents a yes/no confirmation dialog
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
	OnConfirm   tea.Cmd
}

// NewConfirmationDialog starts with "no" selected
func NewConfirmationDialog(title, message string, onConfirm tea.Cmd) *ConfirmationDialog {
	return &ConfirmationDialog{Title: title, Message: message, OnConfirm: onConfirm}
}

// Update returns done once the user picked an answer, and the command to run
func (d *ConfirmationDialog) Update(msg tea.KeyMsg) (done bool, cmd tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		d.YesSelected = true
	case "right", "l":
		d.YesSelected = false
	case "tab":
		d.YesSelected = !d.YesSelected
	case "y":
		return true, d.OnConfirm
	case "n", "esc", "q":
		return true, nil
	case "enter":
		if d.YesSelected {
			return true, d.OnConfirm
		}
		return true, nil
	}
	return false, nil
}

// View renders the confirmation dialog
func (d ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(warningTitleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Да")
	noButton := inactiveButtonStyle.Render("Нет")
	if d.YesSelected {
		yesButton = activeButtonStyle.Render("Да")
	} else {
		noButton = activeButtonStyle.Render("Нет")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString("\n")
	b.WriteString(helpLine("←/→", "выбор", "enter", "подтвердить", "esc", "отмена"))

	return boxStyle.Render(b.String())
}

// Notice a blocking message closed with enter or esc
type Notice struct {
	Title   string
	Message string
	IsError bool
}

func (n Notice) View() string {
	title := titleStyle.Render(n.Title)
	if n.IsError {
		title = errorTitleStyle.Render(n.Title)
	}
	return boxStyle.Render(title + "\n\n" + n.Message + "\n" + helpLine("enter", "закрыть"))
}

// field one labelled form row: a text input, or a selector when options is set
type field struct {
	label   string
	input   textinput.Model
	options []string
	choice  int
	locked  bool
}

// form a vertical list of fields with a single focused one
type form struct {
	fields []*field
	focus  int
}

func newForm(labels ...string) *form {
	f := &form{}
	for _, label := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.Width = 48
		in.CharLimit = 512
		f.fields = append(f.fields, &field{label: label, input: in})
	}
	f.fields[0].input.Focus()
	return f
}

func (f *form) set(i int, v string) {
	f.fields[i].input.SetValue(v)
}

func (f *form) value(i int) string {
	return f.fields[i].input.Value()
}

func (f *form) lock(i int) {
	f.fields[i].locked = true
	if f.focus == i {
		f.move(1)
	}
}

// selector turns field i into an option list
func (f *form) selector(i int, options []string, choice int) {
	f.fields[i].options = options
	if choice < 0 || choice >= len(options) {
		choice = 0
	}
	f.fields[i].choice = choice
}

func (f *form) choice(i int) int {
	return f.fields[i].choice
}

func (f *form) focused() int {
	return f.focus
}

// move shifts focus by delta, skipping locked fields
func (f *form) move(delta int) {
	n := len(f.fields)
	f.fields[f.focus].input.Blur()
	for step := 0; step < n; step++ {
		f.focus = (f.focus + delta + n) % n
		if !f.fields[f.focus].locked {
			break
		}
	}
	f.fields[f.focus].input.Focus()
}

func (f *form) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.move(1)
		return nil
	case "shift+tab", "up":
		f.move(-1)
		return nil
	}

	cur := f.fields[f.focus]
	if cur.options != nil {
		if len(cur.options) == 0 {
			return nil
		}
		switch msg.String() {
		case "left":
			cur.choice = (cur.choice - 1 + len(cur.options)) % len(cur.options)
		case "right", " ":
			cur.choice = (cur.choice + 1) % len(cur.options)
		}
		return nil
	}
	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return cmd
}

// Tick forwards non-key messages such as cursor blinks to the focused input
func (f *form) Tick(msg tea.Msg) tea.Cmd {
	cur := f.fields[f.focus]
	var cmd tea.Cmd
	cur.input, cmd = cur.input.Update(msg)
	return cmd
}

func (f *form) View() string {
	var b strings.Builder
	for i, fl := range f.fields {
		label := labelStyle.Render(fl.label)
		if i == f.focus {
			label = focusedLabelStyle.Render(fl.label)
		}
		var val string
		switch {
		case fl.options != nil:
			opt := ""
			if len(fl.options) > 0 {
				opt = fl.options[fl.choice]
			}
			val = "‹ " + opt + " ›"
		case fl.locked:
			val = mutedStyle.Render(fl.input.Value())
		default:
			val = fl.input.View()
		}
		b.WriteString(label + " " + val + "\n")
	}
	return b.String()
}
