package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan — time column
	colorAccent     = lipgloss.Color("#FFD700") // Gold — selection
	colorMuted      = lipgloss.Color("#636363") // Gray — de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray — normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white — primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface — header bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

var (
	styleHeader = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleTime = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleCell = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	styleSelection = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted)
)
