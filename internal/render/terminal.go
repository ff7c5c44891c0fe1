package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth   = 20
	labelWidth = 22
	indent     = "  "
)

var (
	colorPrimary = lipgloss.Color("#2196F3")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles are the lipgloss styles used by the terminal writer.
type Styles struct {
	Title       lipgloss.Style
	Heading     lipgloss.Style
	Label       lipgloss.Style
	BarFilled   lipgloss.Style
	BarEmpty    lipgloss.Style
	Placeholder lipgloss.Style
}

// NewStyles builds styles for the color capabilities of w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)

	return Styles{
		Title:       r.NewStyle().Bold(true).Underline(true).Foreground(colorPrimary),
		Heading:     r.NewStyle().Bold(true).Foreground(colorAccent),
		Label:       r.NewStyle().Foreground(colorMuted),
		BarFilled:   r.NewStyle().Foreground(colorAccent),
		BarEmpty:    r.NewStyle().Foreground(colorMuted),
		Placeholder: r.NewStyle().Italic(true).Foreground(colorWarning),
	}
}

// Terminal draws view trees as styled text.
type Terminal struct {
	styles Styles
}

func NewTerminal(styles Styles) *Terminal {
	return &Terminal{styles: styles}
}

func (t *Terminal) Draw(node *Node) string {
	if node == nil {
		return ""
	}

	switch node.Kind {
	case KindDocument:
		parts := make([]string, 0, len(node.Children))
		for _, child := range node.Children {
			parts = append(parts, t.Draw(child))
		}
		return strings.Join(parts, "\n\n")
	case KindSection:
		lines := []string{t.styles.Title.Render(node.Text)}
		for _, child := range node.Children {
			lines = append(lines, indentLines(t.Draw(child)))
		}
		return strings.Join(lines, "\n")
	case KindHeading:
		return t.styles.Heading.Render(node.Text)
	case KindBadge:
		return t.styles.Label.Render(node.Label+":") + " " + node.Text
	case KindBar:
		return fmt.Sprintf("%-*s %s %s", labelWidth, node.Label, t.bar(node.Value), node.Text)
	case KindItem:
		lines := []string{fmt.Sprintf("- %s  %s", t.styles.Heading.Render(node.Label), node.Text)}
		for _, child := range node.Children {
			lines = append(lines, indentLines(t.Draw(child)))
		}
		return strings.Join(lines, "\n")
	case KindPlaceholder:
		return t.styles.Placeholder.Render(node.Text)
	default:
		return node.Text
	}
}

// bar draws a percentage. Values outside [0,100] are drawn clamped.
func (t *Terminal) bar(percent float64) string {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = max(0, min(100, percent))

	filled := int(math.Round(percent / 100 * barWidth))

	return t.styles.BarFilled.Render(strings.Repeat("█", filled)) +
		t.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
