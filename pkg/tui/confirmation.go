package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string // Main confirmation message
	Destructive bool   // If true, Yes is red, No is green
}

// ConfirmationModel handles y/n prompts shown in the status bar
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	viewWidth int
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Any other key is ignored
// while the prompt is shown.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

// View renders the prompt, centered when a width is known
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	message := fmt.Sprintf("%s %s", m.config.Message, formatConfirmOptions(m.config.Destructive))
	if m.viewWidth > 0 && lipgloss.Width(message) < m.viewWidth {
		return lipgloss.NewStyle().
			Width(m.viewWidth).
			Align(lipgloss.Center).
			Render(message)
	}
	return message
}

// ViewWithWidth renders the confirmation with a specific width for centering
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	m.viewWidth = width
	return m.View()
}

// ShowInline is a shorthand for a plain message prompt
func (m *ConfirmationModel) ShowInline(message string, destructive bool, onConfirm, onCancel func() tea.Cmd) {
	m.Show(ConfirmationConfig{
		Message:     message,
		Destructive: destructive,
	}, onConfirm, onCancel)
}

// formatConfirmOptions renders the [y/n] hint. For destructive prompts yes is
// drawn in the danger colour.
func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Bold(true)
	no := lipgloss.NewStyle().Bold(true)
	if destructive {
		yes = yes.Foreground(lipgloss.Color(ColorDanger))
		no = no.Foreground(lipgloss.Color(ColorSuccess))
	} else {
		yes = yes.Foreground(lipgloss.Color(ColorSuccess))
		no = no.Foreground(lipgloss.Color(ColorInactive))
	}
	return "[" + yes.Render("y") + "/" + no.Render("n") + "]"
}
