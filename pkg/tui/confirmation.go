package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Message     string // Main confirmation message
	Warning     string // Optional warning text (shown in orange)
	Destructive bool   // If true, Yes is red, No is green
}

// ConfirmationModel handles y/N prompts shown in place of the status line
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Anything other than an
// explicit yes counts as no.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	m.active = false
	switch msg.String() {
	case "y", "Y":
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	default:
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// ViewWithWidth renders the confirmation centered in width
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	if !m.active {
		return ""
	}

	message := fmt.Sprintf("%s %s", m.config.Message, formatConfirmOptions(m.config.Destructive))
	if m.config.Warning != "" {
		message += " " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(m.config.Warning)
	}

	if width > 0 && lipgloss.Width(message) < width {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(message)
	}
	return message
}

func formatConfirmOptions(destructive bool) string {
	yesColor, noColor := ColorSuccess, ColorNormal
	if destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true).Render("[y]es")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true).Render("[N]o")
	return yes + " / " + no
}
