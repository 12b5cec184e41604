package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/monight/internal/keybinds"
	"github.com/studiowebux/monight/internal/viewer"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// View renders the full screen: tab strip, page preview and status bar,
// or one of the modal screens
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeRecents:
		return m.renderRecents()
	}

	preview := m.renderPreview()

	if m.fullscreen {
		return preview
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabBar(),
		preview,
		m.renderStatusBar(),
	)
}

// renderTabBar renders the tab strip, one segment per open document
func (m *Model) renderTabBar() string {
	open := m.coordinator.Tabs()
	if len(open) == 0 {
		return styleSubtle.Render(" monight - no document open")
	}

	activeIdx := m.coordinator.ActiveIndex()

	var parts []string
	for i, tab := range open {
		title := tab.Title
		maxLen := max(8, m.width/len(open)-6)
		if len(title) > maxLen {
			title = title[:maxLen-3] + "..."
		}

		seg := fmt.Sprintf(" %d:%s ", i+1, title)
		if i == activeIdx {
			seg = styleSelected.Render(seg)
		} else {
			seg = styleSubtle.Render(seg)
		}
		parts = append(parts, seg)
	}

	return strings.Join(parts, "")
}

// renderStatusBar renders the bottom line: document position on the
// left, input prompts and transient messages on the right
func (m *Model) renderStatusBar() string {
	left := ""
	if sess := m.coordinator.ActiveSession(); sess != nil {
		left = fmt.Sprintf("Page %d/%d | %d%%", sess.CurrentPage(), sess.PageCount(),
			int(sess.Zoom()*100))
		if sess.Rotation() != 0 {
			left += fmt.Sprintf(" | %d°", sess.Rotation())
		}
		if sess.ViewMode() == viewer.ModeContinuous {
			left += " | continuous"
		}
		if sess.State() == viewer.StateRendering {
			left += " | " + styleWarning.Render("rendering")
		}
	}

	right := ""
	switch m.mode {
	case ModeGotoPage:
		right = "Go to page: " + m.input.View()
	case ModeOpenPath:
		right = "Open: " + m.input.View()
	default:
		if m.errorMsg != "" {
			right = styleError.Render(m.errorMsg)
		} else if m.statusMsg != "" {
			right = styleSuccess.Render(m.statusMsg)
		} else if m.updateAvailable {
			right = styleWarning.Render("Update available: " + m.latestVersion)
		} else {
			right = styleSubtle.Render("Press ? for help | ctrl+q to quit")
		}
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// renderRecents renders the recent-files picker as a full modal
func (m *Model) renderRecents() string {
	var lines []string
	lines = append(lines, styleTitle.Render("Recent Files"))
	lines = append(lines, "Filter: "+m.input.View())
	lines = append(lines, "")

	pageSize := max(1, m.height-10)
	start := 0
	if m.recentsIndex >= pageSize {
		start = m.recentsIndex - pageSize + 1
	}
	end := start + pageSize
	if end > len(m.recentsFiltered) {
		end = len(m.recentsFiltered)
	}

	for i := start; i < end; i++ {
		entry := m.recentsFiltered[i]
		line := fmt.Sprintf(" %s  %s (page %d/%d)", entry.LastOpened.Format("2006-01-02"),
			entry.Title, entry.LastPage, entry.Pages)
		if i == m.recentsIndex {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	if len(m.recentsFiltered) == 0 {
		lines = append(lines, styleSubtle.Render(" No matches"))
	}

	lines = append(lines, "")
	lines = append(lines, styleSubtle.Render(fmt.Sprintf("[%d/%d] enter: open | esc: cancel",
		m.recentsIndex+1, len(m.recentsFiltered))))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(max(20, m.width-6)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderHelp renders the keybind help screen
func (m *Model) renderHelp() string {
	title := styleTitle.Render("Keybindings")
	version := ""
	if m.version != "" {
		version = styleSubtle.Render("monight " + m.version)
	}

	body := m.helpView.View()
	footer := styleSubtle.Render("esc/q: close | up/down: scroll")

	content := lipgloss.JoinVertical(lipgloss.Left, title, version, "", body, "", footer)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(max(20, m.width-6)).
		Padding(0, 1).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderHelpContent builds the help text from the installed bindings,
// grouped by action category
func (m *Model) renderHelpContent() string {
	var lines []string
	lastCategory := ""

	for _, b := range m.registry.ListBindings() {
		info := keybinds.GetActionInfo(b.Action)
		if info.Category != lastCategory {
			if lastCategory != "" {
				lines = append(lines, "")
			}
			lines = append(lines, styleTitle.Render(info.Category))
			lastCategory = info.Category
		}

		display := b.Display
		if display == "" {
			display = info.Description
		}
		chords := m.registry.GetBindingString(b.ID)
		lines = append(lines, fmt.Sprintf("  %-34s %s", display, styleSubtle.Render(chords)))
	}

	return strings.Join(lines, "\n")
}
