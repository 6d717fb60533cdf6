package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Category  lipgloss.Style
	Count     lipgloss.Style
	Codepoint lipgloss.Style
	Rule      lipgloss.Style
	Separator lipgloss.Style
	Selected  lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError   string
	IconWarning string
	IconInfo    string
	IconSuccess string

	// Tree connectors (degraded to ASCII when not interactive)
	TreeBranch string
	TreeLast   string
	TreePipe   string
	TreeSpace  string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled, TreeSpace: "   "}

	if enabled {
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))    // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Category = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))          // Cyan
		s.Count = lipgloss.NewStyle().Bold(true)
		s.Codepoint = lipgloss.NewStyle().Foreground(lipgloss.Color("13")) // Magenta
		s.Rule = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Selected = lipgloss.NewStyle().Reverse(true)

		s.IconError = "\u2717"   // ✗
		s.IconWarning = "\u26a0" // ⚠
		s.IconInfo = "\u2139"    // ℹ
		s.IconSuccess = "\u2713" // ✓

		s.TreeBranch = "\u251c\u2500 " // ├─
		s.TreeLast = "\u2514\u2500 "   // └─
		s.TreePipe = "\u2502  "        // │
	} else {
		// No-op styles for non-TTY (plain text output)
		s.Error = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Category = lipgloss.NewStyle()
		s.Count = lipgloss.NewStyle()
		s.Codepoint = lipgloss.NewStyle()
		s.Rule = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()
		s.Selected = lipgloss.NewStyle()

		// ASCII fallback icons
		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"

		s.TreeBranch = "|- "
		s.TreeLast = "`- "
		s.TreePipe = "|  "
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Connector returns the tree connector for an entry and the prefix its
// children continue with
func (s *Styles) Connector(last bool) (connector, indent string) {
	if last {
		return s.TreeLast, s.TreeSpace
	}
	return s.TreeBranch, s.TreePipe
}
