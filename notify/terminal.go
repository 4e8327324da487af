package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"studentadmin/types"
)

// Terminal prints one styled line per notification.
type Terminal struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[types.Severity]lipgloss.Style
	icons  map[types.Severity]string
}

func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w: w,
		styles: map[types.Severity]lipgloss.Style{
			types.SeveritySuccess: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")),
			types.SeverityError:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
			types.SeverityWarning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EAB308")),
		},
		icons: map[types.Severity]string{
			types.SeveritySuccess: "✓",
			types.SeverityError:   "✗",
			types.SeverityWarning: "!",
		},
	}
}

func (t *Terminal) Success(text string) { t.print(types.SeveritySuccess, text) }
func (t *Terminal) Error(text string)   { t.print(types.SeverityError, text) }
func (t *Terminal) Warning(text string) { t.print(types.SeverityWarning, text) }

func (t *Terminal) print(sev types.Severity, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", t.styles[sev].Render(t.icons[sev]), text)
}
