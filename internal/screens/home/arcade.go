package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/ui/components"
	"github.com/saaquiz/saaquiz/internal/ui/theme"
)

const arcadeTitleFull = ` ███████╗ █████╗  █████╗      ██████╗ ██╗   ██╗██╗███████╗
 ██╔════╝██╔══██╗██╔══██╗    ██╔═══██╗██║   ██║██║╚══███╔╝
 ███████╗███████║███████║    ██║   ██║██║   ██║██║  ███╔╝
 ╚════██║██╔══██║██╔══██║    ██║▄▄ ██║██║   ██║██║ ███╔╝
 ███████║██║  ██║██║  ██║    ╚██████╔╝╚██████╔╝██║███████╗
 ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝     ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "S · A · A   Q · U · I · Z"

// renderTitle returns the styled title block or compact fallback. The
// block art needs more room than the shared content width.
func renderTitle(width, cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if compact || width < lipgloss.Width(arcadeTitleFull)+6 {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return style.Render(arcadeTitleFull)
}

// renderStatsBar renders overall progress in a bordered box matching
// content width.
func renderStatsBar(sum *session.Summary, cw int, compact bool) string {
	answeredStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	correctStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	accuracyStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			answeredStyle.Render(fmt.Sprintf("✎%d/%d", sum.Answered, sum.TotalQuestions)),
			correctStyle.Render(fmt.Sprintf("✓%d", sum.TotalCorrect)),
			accuracyText(sum, true, accuracyStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			answeredStyle.Render(fmt.Sprintf("✎ %d/%d ANSWERED", sum.Answered, sum.TotalQuestions)),
			correctStyle.Render(fmt.Sprintf("✓ %d CORRECT", sum.TotalCorrect)),
			accuracyText(sum, false, accuracyStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func accuracyText(sum *session.Summary, compact bool, active, dim lipgloss.Style) string {
	if sum.TotalCorrect+sum.TotalIncorrect == 0 {
		if compact {
			return dim.Render("%–")
		}
		return dim.Render("NO GRADED ANSWERS")
	}
	pct := int(sum.Accuracy*100 + 0.5)
	if compact {
		return active.Render(fmt.Sprintf("%d%%", pct))
	}
	return active.Render(fmt.Sprintf("%d%% ACCURACY", pct))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []components.MenuItem, selected int, cw int) string {
	disabled := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, item := range items {
		if item.Disabled {
			buttons = append(buttons, disabled.Render(item.Label))
			continue
		}
		buttons = append(buttons, components.ArcadeButton(item.Label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as plain lines for short
// terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []components.MenuItem, selected int, cw int) string {
	var lines []string
	for i, item := range items {
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + item.Label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + item.Label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderWarnings renders data file warnings as a dim note.
func renderWarnings(n int, cw int) string {
	text := fmt.Sprintf("⚠ %d question record(s) failed validation (see log)", n)
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
