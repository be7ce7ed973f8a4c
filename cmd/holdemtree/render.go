package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdemtree/internal/equity"
	"github.com/lox/holdemtree/internal/game"
	"github.com/lox/holdemtree/internal/statistics"
	"github.com/lox/holdemtree/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Width(10)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoSetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	streetStyle = lipgloss.NewStyle().Bold(true)
)

func renderCard(c poker.Card) string {
	if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

func renderCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func renderEquity(hole [2]poker.Card, board []poker.Card, r equity.Result) string {
	lines := []string{
		headerStyle.Render("Equity"),
		row("Hole", renderCards(hole[:])),
		row("Board", renderCards(board)),
		row("Trials", fmt.Sprintf("%d", r.Trials)),
		row("W/T/L", fmt.Sprintf("%d / %d / %d", r.Wins, r.Ties, r.Losses)),
		row("Equity", winStyle.Render(fmt.Sprintf("%.2f%%", 100*r.Equity()))),
		row("EHS", fmt.Sprintf("%.4f", r.EHS())),
	}
	if r.Truncated {
		lines = append(lines, row("", lossStyle.Render("time budget reached")))
	}
	return strings.Join(lines, "\n")
}

func renderBucket(kind string, hole [2]poker.Card, board []poker.Card, bucket int, form string) string {
	lines := []string{
		headerStyle.Render("Bucket"),
		row("Hole", renderCards(hole[:])),
		row("Board", renderCards(board)),
	}
	if class, err := poker.HoleNotation(hole[0], hole[1]); err == nil {
		lines = append(lines, row("Class", class))
	}
	if form != "" {
		lines = append(lines, row("Form", form))
	}
	lines = append(lines, row(kind, winStyle.Render(fmt.Sprintf("%d", bucket))))
	return strings.Join(lines, "\n")
}

func renderPayout(chips int) string {
	switch {
	case chips > 0:
		return winStyle.Render(fmt.Sprintf("+%d", chips))
	case chips < 0:
		return lossStyle.Render(fmt.Sprintf("%d", chips))
	default:
		return "0"
	}
}

func renderWalk(seed int64, final *game.State, steps []step) string {
	players := final.Players()
	lines := []string{
		headerStyle.Render(fmt.Sprintf("Hand %d", seed)),
	}
	for i, p := range players {
		lines = append(lines, row(fmt.Sprintf("Seat %d", i), renderCards(p.Hole)))
	}
	lines = append(lines, "")

	var stage game.Stage = -1
	for _, st := range steps {
		if st.Stage != stage {
			stage = st.Stage
			lines = append(lines, streetStyle.Render(stage.String()))
		}
		lines = append(lines, fmt.Sprintf("  seat %d %s  %s",
			st.Seat, actionStyle.Render(fmt.Sprintf("%-9s", st.Action)), infoSetStyle.Render(st.InfoSet)))
	}
	lines = append(lines, "")

	lines = append(lines, row("Board", renderCards(final.Community())))
	payout := final.Payout()
	for i := range payout {
		lines = append(lines, row(fmt.Sprintf("Seat %d", i), renderPayout(payout[i])))
	}
	return strings.Join(lines, "\n")
}

func renderSession(seed int64, s *statistics.Statistics) string {
	lo, hi := s.ConfidenceInterval95()
	lines := []string{
		headerStyle.Render(fmt.Sprintf("Session %d", seed)),
		row("Hands", fmt.Sprintf("%d", s.Hands)),
		row("Seat 0", fmt.Sprintf("%s bb/hand (95%% CI %.3f to %.3f)", renderBB(s.Mean()), lo, hi)),
		row("Median", fmt.Sprintf("%.2f bb", s.Median())),
		row("Showdown", fmt.Sprintf("%d hands, %.1f bb", s.ShowdownHands, s.ShowdownBB)),
		row("Fold", fmt.Sprintf("%d hands, %.1f bb", s.Hands-s.ShowdownHands, s.FoldBB)),
		row("Max swing", fmt.Sprintf("%d", s.MaxSwing)),
	}
	for r, n := range s.Rounds {
		lines = append(lines, row(game.Stage(r).String(), fmt.Sprintf("%d", n)))
	}
	return strings.Join(lines, "\n")
}

func renderBB(bb float64) string {
	switch {
	case bb > 0:
		return winStyle.Render(fmt.Sprintf("%+.3f", bb))
	case bb < 0:
		return lossStyle.Render(fmt.Sprintf("%+.3f", bb))
	default:
		return "0.000"
	}
}
