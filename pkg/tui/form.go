package tui

import (
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finalwork/recipe-terminal/pkg/asset"
	"github.com/finalwork/recipe-terminal/pkg/draft"
	"github.com/finalwork/recipe-terminal/pkg/feedback"
	"github.com/finalwork/recipe-terminal/pkg/models"
	"github.com/finalwork/recipe-terminal/pkg/submit"
)

// submitResultMsg carries the answer for an in-flight attempt back into
// the event loop
type submitResultMsg struct {
	attempt *submit.Attempt
	result  submit.Result
}

// FormModel is the recipe form. It renders the draft and turns key
// presses into draft, asset and submission intents.
type FormModel struct {
	store    *draft.Store
	assets   *asset.Manager
	pipeline *submit.Pipeline
	feedback feedback.State
	settings *models.Settings
	log      *slog.Logger

	title       textinput.Model
	ingredients []textinput.Model
	description textarea.Model
	directions  textarea.Model
	focus       int

	picker  filepicker.Model
	picking bool

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	inflight *submit.Attempt

	copyToClipboard func(string) error

	width  int
	height int
}

// FormDeps are the collaborators the form drives
type FormDeps struct {
	Store    *draft.Store
	Previews asset.PreviewProvider
	Pipeline *submit.Pipeline
	Settings *models.Settings
	Log      *slog.Logger
}

// NewFormModel creates a form over an empty draft
func NewFormModel(deps FormDeps) *FormModel {
	if deps.Settings == nil {
		deps.Settings = models.DefaultSettings()
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Store == nil {
		deps.Store = draft.NewStore()
	}
	if deps.Previews == nil {
		deps.Previews = asset.NewTempFileProvider(os.TempDir())
	}

	m := &FormModel{
		store:           deps.Store,
		pipeline:        deps.Pipeline,
		settings:        deps.Settings,
		log:             deps.Log,
		viewport:        viewport.New(80, 20),
		help:            help.New(),
		copyToClipboard: clipboard.WriteAll,
	}
	m.assets = asset.NewManager(m.store, deps.Previews, m.log, asset.WithInputReset(m.resetPicker))

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = SpinnerStyle

	m.help.ShowAll = false
	m.resetInputs()
	m.resetPicker()
	return m
}

func newTitleInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Recipe name"
	ti.CharLimit = 200
	ti.Prompt = ""
	return ti
}

func newIngredientInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Ingredient"
	ti.CharLimit = 200
	ti.Prompt = "• "
	return ti
}

func newTextArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(4)
	return ta
}

// resetInputs rebuilds the controls from the store's draft
func (m *FormModel) resetInputs() {
	d := m.store.Draft()

	m.title = newTitleInput()
	m.title.SetValue(d.Title)

	m.ingredients = make([]textinput.Model, len(d.Ingredients))
	for i, ingredient := range d.Ingredients {
		m.ingredients[i] = newIngredientInput()
		m.ingredients[i].SetValue(ingredient)
	}

	m.description = newTextArea("What makes this dish special?")
	m.description.SetValue(d.Description)
	m.directions = newTextArea("Step by step directions")
	m.directions.SetValue(d.Directions)

	m.focus = 0
	m.applyFocus()
	m.resize()
}

// resetPicker returns the image picker to its initial state
func (m *FormModel) resetPicker() {
	fp := filepicker.New()
	fp.AllowedTypes = m.settings.Image.AllowedExtensions
	fp.CurrentDirectory = m.settings.Image.StartDir
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	m.picker = fp
	m.picking = false
}

// Init implements tea.Model
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the layout for a new terminal size
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.resize()
}

func (m *FormModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	inner := m.width - 8
	if inner < 20 {
		inner = 20
	}
	m.title.Width = inner
	for i := range m.ingredients {
		m.ingredients[i].Width = inner - 2
	}
	m.description.SetWidth(inner)
	m.directions.SetWidth(inner)

	m.viewport.Width = m.width
	m.viewport.Height = m.height - m.chromeHeight()
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.help.Width = m.width
	m.refreshViewport()
}

// Close releases the preview of the attached image, if any
func (m *FormModel) Close() {
	m.assets.Close()
}

// Draft returns the current draft
func (m *FormModel) Draft() models.Draft {
	return m.store.Draft()
}

// Feedback returns the current feedback banners
func (m *FormModel) Feedback() feedback.State {
	return m.feedback
}

// Submitting reports whether a submission is in flight
func (m *FormModel) Submitting() bool {
	return m.inflight != nil
}
