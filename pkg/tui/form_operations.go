package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finalwork/recipe-terminal/pkg/draft"
	"github.com/finalwork/recipe-terminal/pkg/feedback"
	"github.com/finalwork/recipe-terminal/pkg/files"
	"github.com/finalwork/recipe-terminal/pkg/submit"
)

func (m *FormModel) fieldCount() int {
	return len(m.ingredients) + 3
}

func (m *FormModel) descriptionFocus() int {
	return len(m.ingredients) + 1
}

func (m *FormModel) directionsFocus() int {
	return len(m.ingredients) + 2
}

// focusedIngredient returns the ingredient index under focus
func (m *FormModel) focusedIngredient() (int, bool) {
	if m.focus >= 1 && m.focus <= len(m.ingredients) {
		return m.focus - 1, true
	}
	return 0, false
}

func (m *FormModel) ingredientFocused() bool {
	_, ok := m.focusedIngredient()
	return ok
}

func (m *FormModel) applyFocus() tea.Cmd {
	m.title.Blur()
	for i := range m.ingredients {
		m.ingredients[i].Blur()
	}
	m.description.Blur()
	m.directions.Blur()

	switch {
	case m.focus == 0:
		return m.title.Focus()
	case m.focus == m.descriptionFocus():
		return m.description.Focus()
	case m.focus == m.directionsFocus():
		return m.directions.Focus()
	default:
		if i, ok := m.focusedIngredient(); ok {
			return m.ingredients[i].Focus()
		}
	}
	return nil
}

func (m *FormModel) moveFocus(delta int) tea.Cmd {
	n := m.fieldCount()
	m.focus = ((m.focus+delta)%n + n) % n
	return m.applyFocus()
}

// Update implements tea.Model
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.picking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case submitResultMsg:
		return m, m.finishSubmit(msg)

	case feedback.ClearSuccessMsg:
		m.feedback.ClearSuccess()
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.inflight == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewport()
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.picking {
			return m, m.handlePickerKey(msg)
		}
		cmd := m.handleKey(msg)
		m.refreshViewport()
		return m, cmd
	}

	// Directory listings and other picker internals
	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		m.refreshViewport()
		return m, cmd
	}

	return m, m.updateFocused(msg)
}

func (m *FormModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, keys.AddIngredient):
		return m.addIngredient()
	case key.Matches(msg, keys.RemoveIngredient) && m.ingredientFocused():
		return m.removeIngredient()
	case key.Matches(msg, keys.PickImage):
		return m.openPicker()
	case key.Matches(msg, keys.ClearImage):
		return m.clearImage()
	case key.Matches(msg, keys.CopyCurl):
		return m.copyCurl()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return nil
	case key.Matches(msg, keys.ScrollUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
		return nil
	case key.Matches(msg, keys.ScrollDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
		return nil
	}
	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused control and records the
// resulting value as a field change
func (m *FormModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case m.focus == 0:
		m.title, cmd = m.title.Update(msg)
		m.setField(draft.FieldTitle, m.title.Value())
	case m.focus == m.descriptionFocus():
		m.description, cmd = m.description.Update(msg)
		m.setField(draft.FieldDescription, m.description.Value())
	case m.focus == m.directionsFocus():
		m.directions, cmd = m.directions.Update(msg)
		m.setField(draft.FieldDirections, m.directions.Value())
	default:
		if i, ok := m.focusedIngredient(); ok {
			m.ingredients[i], cmd = m.ingredients[i].Update(msg)
			if m.store.Draft().Ingredients[i] != m.ingredients[i].Value() {
				m.store.SetIngredient(i, m.ingredients[i].Value())
			}
		}
	}
	return cmd
}

func (m *FormModel) setField(name, value string) {
	d := m.store.Draft()
	var current string
	switch name {
	case draft.FieldTitle:
		current = d.Title
	case draft.FieldDescription:
		current = d.Description
	case draft.FieldDirections:
		current = d.Directions
	}
	if current == value {
		return
	}
	if err := m.store.SetField(name, value); err != nil {
		m.log.Error("field change rejected", "field", name, "error", err)
	}
}

func (m *FormModel) addIngredient() tea.Cmd {
	i := m.store.AddIngredient()
	m.ingredients = append(m.ingredients, newIngredientInput())
	m.resize()
	m.focus = i + 1
	return m.applyFocus()
}

func (m *FormModel) removeIngredient() tea.Cmd {
	i, ok := m.focusedIngredient()
	if !ok {
		return nil
	}
	if !m.store.RemoveIngredient(i) {
		return nil
	}
	m.ingredients = append(m.ingredients[:i], m.ingredients[i+1:]...)
	m.focus = i
	return m.applyFocus()
}

func (m *FormModel) openPicker() tea.Cmd {
	m.resetPicker()
	m.picking = true
	var cmds []tea.Cmd
	cmds = append(cmds, m.picker.Init())
	if m.width > 0 && m.height > 0 {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		cmds = append(cmds, cmd)
	}
	m.refreshViewport()
	return tea.Batch(cmds...)
}

func (m *FormModel) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Cancel) {
		m.picking = false
		m.refreshViewport()
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		m.refreshViewport()
		return tea.Batch(cmd, m.selectImage(path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.refreshViewport()
		return tea.Batch(cmd, statusCmd(fmt.Sprintf("Not an image: %s", path)))
	}

	m.refreshViewport()
	return cmd
}

// selectImage loads path and attaches it to the draft
func (m *FormModel) selectImage(path string) tea.Cmd {
	a, err := files.LoadAsset(path, m.settings.Image.AllowedExtensions)
	if err != nil {
		m.log.Warn("failed to load image", "path", path, "error", err)
		return statusCmd(fmt.Sprintf("Could not load image: %v", err))
	}
	if err := m.assets.Set(a); err != nil {
		m.log.Warn("failed to preview image", "path", path, "error", err)
		return statusCmd(fmt.Sprintf("Could not preview image: %v", err))
	}
	m.refreshViewport()
	return nil
}

func (m *FormModel) clearImage() tea.Cmd {
	if !m.store.Draft().HasAsset() {
		return nil
	}
	m.assets.Clear()
	return nil
}

func (m *FormModel) copyCurl() tea.Cmd {
	cmd := submit.CurlCommand(m.settings.Endpoint, m.store.Draft())
	if err := m.copyToClipboard(cmd); err != nil {
		m.log.Warn("clipboard unavailable", "error", err)
		return statusCmd("Clipboard unavailable")
	}
	return statusCmd("curl command → clipboard")
}

// submit starts a submission unless one is already in flight
func (m *FormModel) submit() tea.Cmd {
	d := m.store.Draft()

	attempt, err := m.pipeline.Begin(d)
	if errors.Is(err, submit.ErrBusy) {
		return nil
	}
	if err != nil {
		return m.applyOutcome(submit.OutcomeForError(d.Title, err))
	}

	m.inflight = attempt
	return tea.Batch(m.spinner.Tick, sendCmd(attempt))
}

func sendCmd(a *submit.Attempt) tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg{attempt: a, result: a.Send(context.Background())}
	}
}

func (m *FormModel) finishSubmit(msg submitResultMsg) tea.Cmd {
	if msg.attempt != m.inflight {
		m.log.Warn("ignoring result for unknown submission")
		return nil
	}
	out := m.pipeline.Finish(context.Background(), msg.attempt, msg.result)
	m.inflight = nil
	return m.applyOutcome(out)
}

// applyOutcome shows the result. Success starts a fresh draft; failure
// keeps the draft and scrolls back to the top where the error shows.
func (m *FormModel) applyOutcome(out submit.Outcome) tea.Cmd {
	var cmd tea.Cmd
	if out.OK() {
		cmd = m.feedback.ShowSuccess(out.Message)
		m.assets.Clear()
		m.store.Reset()
		m.resetInputs()
		cmd = tea.Batch(cmd, m.applyFocus(), textinput.Blink)
	} else {
		m.feedback.SetError(out.Message)
	}
	m.refreshViewport()
	m.viewport.GotoTop()
	return cmd
}

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(msg)
	}
}
