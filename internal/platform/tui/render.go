package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cardpath/internal/core"
	"github.com/vovakirdan/cardpath/internal/deck"
	"github.com/vovakirdan/cardpath/internal/engine"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hudStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	toastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	clearedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	pausedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	boardFrame     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cellEmpty      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	cellVisited    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellImpassable = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	cellMulti      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cellToggle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	cellWarp       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	cellShuffle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	cellPiece      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	cellTarget     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	cellCursor     = lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	cardSelected   = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1).
			BorderForeground(lipgloss.Color("11"))
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// boardView holds everything the board renderer needs beyond the game itself.
type boardView struct {
	cursor  core.Point
	targets map[core.Point]bool
	animAt  *core.Point // piece position override during animation
}

// renderBoard draws the grid top row first (y grows upward in game space).
func renderBoard(g *engine.Game, v boardView) string {
	b := g.Board()
	reg := g.Regulation()
	toggles := reg.ToggleSet()
	shuffles := reg.ShuffleSet()
	warps := reg.WarpMap()

	piece, hasPiece := g.Position()
	if v.animAt != nil {
		piece, hasPiece = *v.animAt, true
	}

	var sb strings.Builder
	size := b.Size()
	for y := size - 1; y >= 0; y-- {
		if y < size-1 {
			sb.WriteByte('\n')
		}
		for x := 0; x < size; x++ {
			p := core.Point{X: x, Y: y}
			glyph, style := cellGlyph(g, p, toggles, shuffles, warps)
			switch {
			case hasPiece && p == piece:
				glyph, style = " @ ", cellPiece
			case v.targets[p]:
				style = cellTarget
			}
			if p == v.cursor {
				style = cellCursor
			}
			sb.WriteString(style.Render(glyph))
		}
	}
	return boardFrame.Render(sb.String())
}

func cellGlyph(g *engine.Game, p core.Point, toggles, shuffles map[core.Point]bool, warps map[core.Point]core.Point) (string, lipgloss.Style) {
	b := g.Board()
	if b.Impassable(p) {
		return "▓▓▓", cellImpassable
	}
	tile, _ := b.StateAt(p)

	switch {
	case toggles[p]:
		if tile.Visited() {
			return " ~ ", cellVisited
		}
		return " ~ ", cellToggle
	case shuffles[p]:
		if tile.Visited() {
			return " § ", cellVisited
		}
		return " § ", cellShuffle
	default:
		if _, ok := warps[p]; ok {
			if tile.Visited() {
				return " ◊ ", cellVisited
			}
			return " ◊ ", cellWarp
		}
	}

	if tile.Visited() {
		return " · ", cellVisited
	}
	if tile.Remaining > 1 {
		return fmt.Sprintf(" %d ", tile.Remaining), cellMulti
	}
	return " □ ", cellEmpty
}

// cardLabel renders a compact label for a pattern, with stack depth.
func cardLabel(patternID string, size int) string {
	label := patternID
	if p, ok := deck.Lookup(patternID); ok {
		label = patternGlyph(p) + " " + patternID
	}
	if size > 1 {
		label += fmt.Sprintf(" ×%d", size)
	}
	return label
}

func patternGlyph(p *deck.Pattern) string {
	switch p.Kind {
	case deck.KindChoice:
		return "✦"
	case deck.KindRay:
		return "⇶"
	case deck.KindWarp:
		return "◎"
	}
	return vectorArrow(p.Vector)
}

func vectorArrow(v core.Vector) string {
	switch {
	case v.DX == 0 && v.DY > 0:
		return "↑"
	case v.DX == 0 && v.DY < 0:
		return "↓"
	case v.DX < 0 && v.DY == 0:
		return "←"
	case v.DX > 0 && v.DY == 0:
		return "→"
	}
	return "✦"
}

// renderHand draws the hand slots side by side, selected slot emphasized.
func renderHand(g *engine.Game, selected int) string {
	stacks := g.HandStacks()
	if len(stacks) == 0 {
		return hudStyle.Render("hand empty")
	}

	cards := make([]string, 0, len(stacks))
	for i, st := range stacks {
		label := fmt.Sprintf("%d %s", i+1, cardLabel(st.Pattern().ID, st.Size()))
		style := cardStyle
		if i == selected {
			style = cardSelected
		}
		cards = append(cards, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderPreview shows the upcoming draws in order.
func renderPreview(g *engine.Game) string {
	preview := g.PreviewCards()
	if len(preview) == 0 {
		return ""
	}
	ids := make([]string, 0, len(preview))
	for _, c := range preview {
		ids = append(ids, c.Pattern.ID)
	}
	return previewStyle.Render("next: " + strings.Join(ids, " → "))
}

// renderHUD summarizes the session counters in one line.
func renderHUD(snap engine.Snapshot, best int, hasBest bool) string {
	line := fmt.Sprintf("moves %d  penalties %d  left %d  %s  score %d",
		snap.MoveCount, snap.PenaltyCount, snap.Remaining,
		formatClock(snap.ElapsedSeconds), snap.Score)
	if hasBest {
		line += fmt.Sprintf("  best %d", best)
	}
	return hudStyle.Render(line)
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
