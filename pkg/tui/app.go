package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusTTL is how long a status bar message stays up
const statusTTL = 3 * time.Second

// StatusMsg shows a transient message in the status bar
type StatusMsg string

type clearStatusMsg struct {
	seq int
}

// App is the root model. It owns the form and the status bar.
type App struct {
	form      *FormModel
	width     int
	height    int
	statusMsg string
	statusSeq int
}

// NewApp creates the root model around a form
func NewApp(form *FormModel) *App {
	return &App{form: form}
}

func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Leave a row for the status bar
		_, cmd := a.form.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 1})
		return a, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			a.form.Close()
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusSeq++
		seq := a.statusSeq
		return a, tea.Tick(statusTTL, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})

	case clearStatusMsg:
		// A newer status replaced the one this tick was for
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil
	}

	_, cmd := a.form.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	content := a.form.View()

	if a.statusMsg != "" {
		statusBar := StatusBarStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBar)
	}

	return content
}

// Form returns the recipe form
func (a *App) Form() *FormModel {
	return a.form
}
