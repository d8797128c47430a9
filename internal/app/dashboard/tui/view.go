package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"logindash/internal/app/dashboard"
	"logindash/internal/app/dashboard/render"
)

const (
	title       = "User Logins"
	loadingText = "Loading data..."
	sliderWidth = 20
	helpText    = "tab/shift+tab: focus • ←/→ pgup/pgdown: limit • ↑/↓ 0-9: page • enter/space: press • f: fetch • q: quit"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#3B82F6"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	successColor = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	borderColor  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	okStyle    = lipgloss.NewStyle().Foreground(successColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Width(26)
	focusedPanelStyle = panelStyle.BorderForeground(primaryColor)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}).
			Background(mutedColor)
	focusedButtonStyle = buttonStyle.Background(primaryColor).Bold(true)
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.session.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Source: " + m.loader.Endpoint()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(controlLimit, "Select records limit", slider(state.Limit), fmt.Sprintf("Records limit: %d", state.Limit)),
		m.panel(controlPage, "Select the page", m.pageField(state.Page), fmt.Sprintf("Page %d", state.Page)),
		m.panel(controlEncrypted, m.button(controlEncrypted, "Show Encrypted"), "", fmt.Sprintf("Data Encrypted: %t", state.IsEncrypted)),
		m.panel(controlGroup, m.button(controlGroup, "Group Duplicates"), "", fmt.Sprintf("Group Duplicates: %t", state.GroupDuplicates)),
	))
	b.WriteString("\n\n")
	b.WriteString(m.button(controlFetch, "Fetch Data"))
	b.WriteString("\n\n")

	if status := m.status(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	if m.last != nil && !m.loading {
		b.WriteString(render.Table(m.records, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(helpText))
	return b.String()
}

func (m *Model) panel(c control, head, body, foot string) string {
	style := panelStyle
	if m.focus == c {
		style = focusedPanelStyle
	}

	lines := []string{head}
	if body != "" {
		lines = append(lines, body)
	}
	lines = append(lines, mutedStyle.Render(foot))
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) button(c control, label string) string {
	if m.focus == c {
		return focusedButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m *Model) pageField(page int) string {
	value := strconv.Itoa(page)
	if m.editingPage {
		value = m.pageBuf + "▏"
	}
	return "[ " + value + " ]"
}

func (m *Model) status() string {
	switch {
	case m.loading:
		return okStyle.Render(loadingText)
	case m.last == nil:
		return ""
	case m.last.Failed():
		return errorStyle.Render(m.last.Message())
	default:
		return mutedStyle.Render(fmt.Sprintf("%d records in %s", m.last.Records.Len(), m.last.Duration.Round(time.Millisecond)))
	}
}

func slider(limit int) string {
	filled := limit * sliderWidth / dashboard.MaxLimit
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", sliderWidth-filled) + "] " + strconv.Itoa(limit)
}
