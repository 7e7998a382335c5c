package home

import (
	"charm.land/lipgloss/v2"

	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // no graded answers yet, or in between
	MascotCelebrating                      // accuracy at or above the pass mark
	MascotAlert                            // accuracy below half
)

// passMark is the SAA-C03 passing score, 720 of 1000.
const passMark = 0.72

// minGradedForMood is how many graded answers are needed before the
// mascot reacts to accuracy.
const minGradedForMood = 10

const mascotIdle = `   .--.
 .(    ).
(___.__)__)
  │ ◉ ◉ │
  │  ▽  │
  └─────┘`

const mascotCelebrating = `   .--.
 .(    ).
(___.__)__)
  │ ★ ★ │
  │  ▿  │
  └╥═══╥┘`

const mascotAlert = `   .--.
 .(    ).
(___.__)__)
  │ ◉ ◉ │ !
  │  ▽  │
  └─────┘`

// MoodFor picks the mascot variant from overall progress.
func MoodFor(sum *session.Summary) MascotVariant {
	graded := sum.TotalCorrect + sum.TotalIncorrect
	if graded < minGradedForMood {
		return MascotIdle
	}
	switch {
	case sum.Accuracy >= passMark:
		return MascotCelebrating
	case sum.Accuracy < 0.5:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant MascotVariant) string {
	var art string
	var fg = theme.Secondary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
