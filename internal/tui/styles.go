package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan — primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold — transient notices
	colorSuccess    = lipgloss.Color("#00E676") // Green — passing checks
	colorDanger     = lipgloss.Color("#FF5252") // Red — failures
	colorMuted      = lipgloss.Color("#636363") // Gray — de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray — normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white — primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface — status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface — footer bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Check state icons.
const (
	iconPass = "✓"
	iconFail = "✗"
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleStatusDim = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Row styles.
var (
	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowFlagged = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)
)

// Verify panel styles.
var (
	styleVerifyPass = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleVerifyFail = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)

// styleStatusLine styles the transient message under the rows.
var styleStatusLine = lipgloss.NewStyle().
	Foreground(colorAccent)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
