package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/finalwork/recipe-terminal/pkg/asset"
)

const headerHeight = 1

// chromeHeight is the space taken by everything outside the viewport
func (m *FormModel) chromeHeight() int {
	h := headerHeight + 1 // header + spinner/status line
	if m.settings.UI.ShowHelp {
		h += lipgloss.Height(m.help.View(keys))
	}
	return h
}

// View implements tea.Model
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.inflight != nil {
		b.WriteString(ContentPaddingStyle.Render(m.spinner.View() + " Creating recipe..."))
	}
	if m.settings.UI.ShowHelp {
		b.WriteString("\n")
		b.WriteString(ContentPaddingStyle.Render(m.help.View(keys)))
	}
	return b.String()
}

func (m *FormModel) renderHeader() string {
	title := HeaderStyle.Render("New recipe")
	endpoint := DescriptionStyle.Render(m.settings.Endpoint)
	return ContentPaddingStyle.Render(title + "  " + endpoint)
}

// refreshViewport re-renders the form into the viewport and keeps the
// focused control on screen
func (m *FormModel) refreshViewport() {
	if m.picking {
		m.viewport.SetContent(m.renderPicker())
		return
	}
	content, focusTop, focusHeight := m.renderForm()
	m.viewport.SetContent(content)

	switch {
	case focusTop < m.viewport.YOffset:
		m.viewport.SetYOffset(focusTop)
	case focusTop+focusHeight > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(focusTop + focusHeight - m.viewport.Height)
	}
}

func (m *FormModel) wrapWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *FormModel) renderBanners() string {
	var parts []string
	if m.feedback.HasError() {
		parts = append(parts, ErrorBannerStyle.Render(wordwrap.String(m.feedback.Error, m.wrapWidth())))
	}
	if m.feedback.HasSuccess() {
		parts = append(parts, SuccessBannerStyle.Render(wordwrap.String(m.feedback.Success, m.wrapWidth())))
	}
	return strings.Join(parts, "\n")
}

func (m *FormModel) label(text string, focused bool) string {
	if focused {
		return ActiveLabelStyle.Render(text)
	}
	return LabelStyle.Render(text)
}

func (m *FormModel) box(content string, focused bool) string {
	style := InactiveBorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	return style.Padding(0, 1).Render(content)
}

// renderForm returns the form and the line span of the focused control
func (m *FormModel) renderForm() (string, int, int) {
	var sections []string
	lines := 0
	focusTop, focusHeight := 0, 1

	add := func(s string, focused bool) {
		if focused {
			focusTop = lines
			focusHeight = lipgloss.Height(s)
		}
		sections = append(sections, s)
		lines += lipgloss.Height(s)
	}

	if banners := m.renderBanners(); banners != "" {
		add(banners, false)
	}

	add(m.label("Recipe name", m.focus == 0), false)
	add(m.box(m.title.View(), m.focus == 0), m.focus == 0)

	add(m.label(fmt.Sprintf("Ingredients (%d)", len(m.ingredients)), m.focusIngredientSection()), false)
	for i := range m.ingredients {
		focused := m.focus == i+1
		add(m.box(m.ingredients[i].View(), focused), focused)
	}
	add(DescriptionStyle.Render("ctrl+n add • ctrl+d remove"), false)

	descFocused := m.focus == m.descriptionFocus()
	add(m.label("Description", descFocused), false)
	add(m.box(m.description.View(), descFocused), descFocused)

	dirFocused := m.focus == m.directionsFocus()
	add(m.label("Directions", dirFocused), false)
	add(m.box(m.directions.View(), dirFocused), dirFocused)

	add(m.label("Image", false), false)
	add(m.renderImage(), false)

	return ContentPaddingStyle.Render(strings.Join(sections, "\n")), focusTop, focusHeight
}

func (m *FormModel) focusIngredientSection() bool {
	_, ok := m.focusedIngredient()
	return ok
}

func (m *FormModel) renderImage() string {
	a := m.assets.Asset()
	if a == nil {
		return PlaceholderStyle.Render("No image attached (ctrl+o to choose)")
	}
	h, _ := m.assets.Preview()
	info := asset.Describe(a, h)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s", info.Name, humanize.IBytes(uint64(info.Size)), info.ContentType)
	if info.HasDimensions() {
		fmt.Fprintf(&b, "  %dx%d", info.Width, info.Height)
	}
	if info.PreviewPath != "" {
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render("preview: " + info.PreviewPath))
	}
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render("ctrl+x remove"))
	return b.String()
}

func (m *FormModel) renderPicker() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Choose an image"))
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render("enter select • esc cancel"))
	return ContentPaddingStyle.Render(b.String())
}
