// Package report renders a headless summary of a session: the visible window
// as text, run statistics and a population chart.
package report

import (
	"fmt"
	"strings"

	"lifeboard/internal/session"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	aliveGlyph = '█'
	deadGlyph  = '·'
)

var (
	gridStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Padding(0, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// History records the population after each generation, starting with the
// board as it was before the first step.
type History struct {
	Population []float64
	Peak       int
	PeakAt     uint64
}

func (h *History) record(board *session.Session) {
	pop := board.Population()
	h.Population = append(h.Population, float64(pop))
	if len(h.Population) == 1 || pop > h.Peak {
		h.Peak = pop
		h.PeakAt = board.Generation()
	}
}

// Simulate steps board n times and returns the population history.
func Simulate(board *session.Session, n int) History {
	var h History
	h.record(board)
	for i := 0; i < n; i++ {
		board.Step()
		h.record(board)
	}
	return h
}

// Grid renders the visible window as plain text, one line per row.
func Grid(board *session.Session) string {
	size := board.Size()
	alive := board.Engine().Snapshot()
	var b strings.Builder
	for i, c := range board.Visible() {
		if i > 0 && i%size.W == 0 {
			b.WriteByte('\n')
		}
		if alive.Has(c) {
			b.WriteRune(aliveGlyph)
		} else {
			b.WriteRune(deadGlyph)
		}
	}
	return b.String()
}

// Options controls Render.
type Options struct {
	Chart       bool
	ChartHeight int
	ChartWidth  int
}

// Render lays out the window, statistics and, optionally, the chart.
func Render(board *session.Session, h History, opts Options) string {
	off := board.Offset()
	rows := [][2]string{
		{"generation", fmt.Sprint(board.Generation())},
		{"population", fmt.Sprint(board.Population())},
		{"visible", fmt.Sprint(len(board.VisibleAlive()))},
		{"peak", fmt.Sprintf("%d @ gen %d", h.Peak, h.PeakAt)},
		{"offset", fmt.Sprintf("%d,%d", off.Top, off.Left)},
		{"speed", fmt.Sprintf("%d (%v)", board.Speed(), board.Delay())},
	}
	stats := []string{headerStyle.Render("Game of Life")}
	for _, r := range rows {
		stats = append(stats, labelStyle.Render(r[0])+valueStyle.Render(r[1]))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		gridStyle.Render(Grid(board)),
		statsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, stats...)),
	)
	if !opts.Chart || len(h.Population) < 2 {
		return view
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, chartStyle.Render(Chart(h, opts)))
}

// Chart plots the population history.
func Chart(h History, opts Options) string {
	height, width := opts.ChartHeight, opts.ChartWidth
	if height <= 0 {
		height = 6
	}
	if width <= 0 {
		width = 60
	}
	data := h.Population
	if len(data) == 0 {
		data = []float64{0}
	}
	return asciigraph.Plot(data, asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("population"))
}
