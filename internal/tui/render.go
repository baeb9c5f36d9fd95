package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openwebdesk/deskwm/internal/config"
	"github.com/openwebdesk/deskwm/internal/taskbar"
	"github.com/openwebdesk/deskwm/internal/wm"
)

// cellClass picks the lipgloss style a cell is flushed with. Runs of equal
// classes are styled together per row, so styling cost stays proportional to
// the number of transitions, not the number of cells.
type cellClass uint8

const (
	classDesktop cellClass = iota
	classBorder
	classBorderFocused
	classTitle
	classTitleFocused
	classContent
	classButton
)

var (
	desktopStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	focusBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	focusTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	contentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	buttonStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	taskbarStyle      = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	taskbarFocusStyle = lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231")).Bold(true)
	taskbarMinStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("244")).Italic(true)
)

func styleFor(c cellClass) lipgloss.Style {
	switch c {
	case classBorder:
		return borderStyle
	case classBorderFocused:
		return focusBorderStyle
	case classTitle:
		return titleStyle
	case classTitleFocused:
		return focusTitleStyle
	case classContent:
		return contentStyle
	case classButton:
		return buttonStyle
	}
	return desktopStyle
}

// grid is the cell compositor the desktop is painted into. Windows are
// painted back to front so overlap resolves by stack order.
type grid struct {
	width  int
	height int
	runes  []rune
	class  []cellClass
}

func newGrid(width, height int) *grid {
	g := &grid{
		width:  width,
		height: height,
		runes:  make([]rune, width*height),
		class:  make([]cellClass, width*height),
	}
	for i := range g.runes {
		g.runes[i] = '·'
	}
	return g
}

func (g *grid) set(x, y int, r rune, c cellClass) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	i := y*g.width + x
	g.runes[i] = r
	g.class[i] = c
}

func (g *grid) text(x, y int, s string, c cellClass) {
	for _, r := range s {
		g.set(x, y, r, c)
		x++
	}
}

// paintWindow draws one window's frame, title bar and content placeholder.
func (g *grid) paintWindow(w wm.WindowInfo) {
	r := w.Rect
	border := classBorder
	title := classTitle
	if w.Focused {
		border = classBorderFocused
		title = classTitleFocused
	}

	// Frame.
	for x := r.X + 1; x < r.Right()-1; x++ {
		g.set(x, r.Y, '─', border)
		g.set(x, r.Bottom()-1, '─', border)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		g.set(r.X, y, '│', border)
		g.set(r.Right()-1, y, '│', border)
	}
	g.set(r.X, r.Y, '╭', border)
	g.set(r.Right()-1, r.Y, '╮', border)
	g.set(r.X, r.Bottom()-1, '╰', border)
	g.set(r.Right()-1, r.Bottom()-1, '╯', border)

	// Interior.
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		for x := r.X + 1; x < r.Right()-1; x++ {
			g.set(x, y, ' ', classContent)
		}
	}

	// Title, truncated to fit between the corner and the buttons.
	label := w.Title
	if label == "" {
		label = w.ID
	}
	maxTitle := r.Width - 8
	if maxTitle > 0 {
		if len(label) > maxTitle {
			label = label[:maxTitle]
		}
		g.text(r.X+2, r.Y, label, title)
	}

	// Title-bar buttons: minimize, maximize, close.
	if r.Width >= 8 {
		g.set(r.Right()-4, r.Y, '_', classButton)
		g.set(r.Right()-3, r.Y, '□', classButton)
		g.set(r.Right()-2, r.Y, '×', classButton)
	}

	g.paintContent(w)
}

// paintContent draws a placeholder hinting at the app kind. Real content
// renderers own the interior; the shell only sketches it.
func (g *grid) paintContent(w wm.WindowInfo) {
	r := w.Rect
	if r.Width < 6 || r.Height < 3 {
		return
	}
	x, y := r.X+2, r.Y+2
	switch w.Content {
	case config.ContentTerminal:
		g.text(x, y, "$ █", classContent)
	case config.ContentExplorer:
		g.text(x, y, "▸ home/", classContent)
	case config.ContentBrowser:
		g.text(x, y, "◎ about:blank", classContent)
	case config.ContentMusic:
		g.text(x, y, "♪ ── ▶ ──", classContent)
	case config.ContentSpreadsheet:
		g.text(x, y, "A1 │ B1 │ C1", classContent)
	case config.ContentSettings:
		g.text(x, y, "⚙ preferences", classContent)
	default:
		g.text(x, y, "…", classContent)
	}
}

func (g *grid) renderRows() []string {
	rows := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var b strings.Builder
		x := 0
		for x < g.width {
			start := x
			c := g.class[y*g.width+x]
			for x < g.width && g.class[y*g.width+x] == c {
				x++
			}
			b.WriteString(styleFor(c).Render(string(g.runes[y*g.width+start : y*g.width+x])))
		}
		rows[y] = b.String()
	}
	return rows
}

// buttonSpan records where a taskbar button landed so clicks can be mapped
// back to the window it represents.
type buttonSpan struct {
	id     string
	x0, x1 int // half-open [x0, x1)
}

// layoutTaskbar renders the taskbar row and returns the clickable spans.
// Render and hit-testing share this single layout pass.
func layoutTaskbar(buttons []taskbar.Button, width int) (string, []buttonSpan) {
	var b strings.Builder
	var spans []buttonSpan
	x := 0
	for _, btn := range buttons {
		label := " " + btn.Label + " "
		if x+len(label) > width {
			break
		}
		switch {
		case btn.Minimized:
			b.WriteString(taskbarMinStyle.Render(label))
		case btn.Focused:
			b.WriteString(taskbarFocusStyle.Render(label))
		default:
			b.WriteString(taskbarStyle.Render(label))
		}
		spans = append(spans, buttonSpan{id: btn.ID, x0: x, x1: x + len(label)})
		x += len(label)
	}
	if x < width {
		b.WriteString(taskbarStyle.Render(strings.Repeat(" ", width-x)))
	}
	return b.String(), spans
}
