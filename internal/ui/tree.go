package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/gtlint/internal/stats"
	"github.com/pthm/gtlint/internal/unidata"
)

// TreeNode represents a displayable row of the category browser
type TreeNode struct {
	Name  string
	Total int
	// Share is the percentage of the parent total
	Share    float64
	Rune     rune
	IsChar   bool
	Depth    int
	Expanded bool
	Last     bool
	Children []*TreeNode
	Parent   *TreeNode
}

// Path returns the category names from the root down to n
func (n *TreeNode) Path() []string {
	var path []string
	for cur := n; cur != nil; cur = cur.Parent {
		path = append([]string{cur.Name}, path...)
	}
	return path
}

// TreeModel is the bubbletea model for browsing category trees
type TreeModel struct {
	roots     []*TreeNode
	nodes     []*TreeNode // Flattened list of visible nodes
	cursor    int
	viewport  viewport.Model
	ready     bool
	width     int
	height    int
	showChars bool
	showShare bool
	keys      treeKeyMap
	styles    *Styles
	muted     lipgloss.Style
	statusBar lipgloss.Style
	helpBar   lipgloss.Style
}

type treeKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	ToggleChars key.Binding
	ToggleShare key.Binding
	Quit        key.Binding
}

func defaultTreeKeyMap() treeKeyMap {
	return treeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand all"),
		),
		ToggleChars: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle characters"),
		),
		ToggleShare: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle percentages"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewTreeModel creates a browser over the given summaries. Roots start
// expanded, everything below collapsed.
func NewTreeModel(trees []*stats.Sums, styles *Styles) TreeModel {
	if styles == nil {
		styles = NewStyles(false)
	}
	m := TreeModel{
		showChars: true,
		showShare: true,
		keys:      defaultTreeKeyMap(),
		styles:    styles,
		muted:     styles.Subheader,
		statusBar: lipgloss.NewStyle(),
		helpBar:   lipgloss.NewStyle(),
	}
	if styles.Enabled() {
		m.statusBar = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
		m.helpBar = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235"))
	}

	for i, s := range trees {
		root := buildTreeNode(s, nil, 0, 100)
		root.Last = i == len(trees)-1
		root.Expanded = true
		m.roots = append(m.roots, root)
	}
	m.updateVisibleNodes()
	return m
}

func buildTreeNode(s *stats.Sums, parent *TreeNode, depth int, share float64) *TreeNode {
	n := &TreeNode{
		Name:   s.Name,
		Total:  s.Total,
		Share:  share,
		Depth:  depth,
		Parent: parent,
	}
	for i, child := range s.Children {
		c := buildTreeNode(child, n, depth+1, s.Share(child.Total))
		c.Last = i == len(s.Children)-1
		n.Children = append(n.Children, c)
	}
	for i, cc := range s.Counts {
		n.Children = append(n.Children, &TreeNode{
			Name:   fmt.Sprintf("U+%04X", cc.Rune),
			Total:  cc.Count,
			Share:  s.Share(cc.Count),
			Rune:   cc.Rune,
			IsChar: true,
			Depth:  depth + 1,
			Last:   i == len(s.Counts)-1,
			Parent: n,
		})
	}
	return n
}

func (m *TreeModel) updateVisibleNodes() {
	m.nodes = nil
	for _, root := range m.roots {
		m.collectVisible(root)
	}

	// Clamp cursor
	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TreeModel) collectVisible(n *TreeNode) {
	if n.IsChar && !m.showChars {
		return
	}
	m.nodes = append(m.nodes, n)
	if n.Expanded {
		for _, child := range n.Children {
			m.collectVisible(child)
		}
	}
}

func (m *TreeModel) hasVisibleChildren(n *TreeNode) bool {
	for _, child := range n.Children {
		if !child.IsChar || m.showChars {
			return true
		}
	}
	return false
}

// ExpandAll expands every node
func (m *TreeModel) ExpandAll() {
	var expand func(n *TreeNode)
	expand = func(n *TreeNode) {
		n.Expanded = true
		for _, child := range n.Children {
			expand(child)
		}
	}
	for _, root := range m.roots {
		expand(root)
	}
	m.updateVisibleNodes()
}

// Visible returns the number of visible rows
func (m TreeModel) Visible() int {
	return len(m.nodes)
}

// Selected returns the node under the cursor, nil for an empty tree
func (m TreeModel) Selected() *TreeNode {
	if len(m.nodes) == 0 {
		return nil
	}
	return m.nodes[m.cursor]
}

// Init initializes the model
func (m TreeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Left):
			if n := m.Selected(); n != nil {
				if !n.Expanded && n.Parent != nil {
					// Jump to the parent of a collapsed node
					for i, v := range m.nodes {
						if v == n.Parent {
							m.cursor = i
							break
						}
					}
				}
				m.nodes[m.cursor].Expanded = false
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Right):
			if n := m.Selected(); n != nil {
				n.Expanded = true
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Toggle):
			if n := m.Selected(); n != nil {
				n.Expanded = !n.Expanded
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.ExpandAll):
			m.ExpandAll()

		case key.Matches(msg, m.keys.ToggleChars):
			m.showChars = !m.showChars
			m.updateVisibleNodes()

		case key.Matches(msg, m.keys.ToggleShare):
			m.showShare = !m.showShare
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
	}

	if m.ready {
		m.viewport.SetContent(m.Render())
		// Scroll to keep cursor visible
		switch {
		case m.cursor < m.viewport.YOffset:
			m.viewport.SetYOffset(m.cursor)
		case m.cursor >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
		}
	}

	return m, nil
}

// View renders the browser
func (m TreeModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var sb strings.Builder
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	detail := ""
	if n := m.Selected(); n != nil {
		detail = m.renderDetailLine(n)
	}
	sb.WriteString(m.statusBar.Width(m.width).Render(detail))
	sb.WriteString("\n")

	help := fmt.Sprintf(" ↑↓ navigate  ←→ collapse/expand  e expand all  c chars(%s)  p percent(%s)  q quit",
		boolToOnOff(m.showChars),
		boolToOnOff(m.showShare),
	)
	sb.WriteString(m.helpBar.Width(m.width).Render(help))

	return sb.String()
}

// Render returns the visible rows without the status and help bars
func (m TreeModel) Render() string {
	var sb strings.Builder
	for i, n := range m.nodes {
		sb.WriteString(m.renderNode(n, m.ready && i == m.cursor))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m TreeModel) renderNode(n *TreeNode, selected bool) string {
	var sb strings.Builder

	// Ancestor guides, roots carry no connector
	if n.Parent != nil {
		var guides []string
		for a := n.Parent; a.Parent != nil; a = a.Parent {
			_, indent := m.styles.Connector(a.Last)
			guides = append([]string{indent}, guides...)
		}
		conn, _ := m.styles.Connector(n.Last)
		sb.WriteString(m.muted.Render(strings.Join(guides, "") + conn))
	}

	// Expand/collapse indicator
	switch {
	case !m.hasVisibleChildren(n):
	case n.Expanded:
		sb.WriteString(m.muted.Render("▼ "))
	default:
		sb.WriteString(m.muted.Render("▶ "))
	}

	var content string
	if n.IsChar {
		content = fmt.Sprintf("%s %s %s  %s",
			strconv.QuoteRune(n.Rune),
			m.styles.Codepoint.Render(n.Name),
			m.muted.Render(charName(n.Rune)),
			m.styles.Count.Render(strconv.Itoa(n.Total)))
	} else {
		content = fmt.Sprintf("%s  %s", m.styles.Category.Render(n.Name), m.styles.Count.Render(strconv.Itoa(n.Total)))
	}
	if m.showShare && n.Parent != nil {
		content += "  " + m.muted.Render(fmt.Sprintf("%.1f%%", n.Share))
	}

	if selected {
		content = m.styles.Selected.Render(content)
	}
	sb.WriteString(content)
	return sb.String()
}

func (m TreeModel) renderDetailLine(n *TreeNode) string {
	if n.IsChar {
		return fmt.Sprintf(" %s  %s  Count: %d", strings.Join(n.Parent.Path(), " / "), charName(n.Rune), n.Total)
	}
	return fmt.Sprintf(" %s  Total: %d  Children: %d", strings.Join(n.Path(), " / "), n.Total, len(n.Children))
}

// RunBrowser shows the interactive browser until the user quits
func RunBrowser(trees []*stats.Sums, styles *Styles) error {
	p := tea.NewProgram(NewTreeModel(trees, styles), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func charName(r rune) string {
	if name := unidata.Lookup(r).Name; name != "" {
		return name
	}
	return unidata.Unnamed
}

func boolToOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
