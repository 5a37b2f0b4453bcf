package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tiffin/internal/controller"
	"github.com/mmcdole/tiffin/internal/domain"
	"github.com/mmcdole/tiffin/internal/filter"
	"github.com/mmcdole/tiffin/internal/styles"
)

// View renders the current screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	v := m.ctrl.Render()

	var body string
	switch v.State {
	case controller.StateOffline:
		body = m.renderOffline()
	case controller.StateFailed:
		body = m.renderFailed(v.Err)
	case controller.StateLoading:
		body = m.renderLoading()
	default:
		body = m.renderGrid(v)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(v),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader(v controller.View) string {
	title := styles.AccentStyle.Bold(true).Render("tiffin")

	button := styles.FilterButtonStyle.Render("Top Rated Restaurants")
	if v.TopRated {
		button = styles.FilterButtonActiveStyle.Render("Top Rated Restaurants")
	}

	search := m.Search.View()
	if !m.Searching && m.Search.Value() == "" {
		search = styles.DimStyle.Render("/ search")
	}

	count := ""
	if v.State == controller.StatePopulated {
		count = styles.DimStyle.Render(fmt.Sprintf("showing %d of %d", len(v.Restaurants), v.Total))
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Center, button, "  ", search, "  ", count)
	return lipgloss.JoinVertical(lipgloss.Left, title, controls)
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}
	if m.Searching {
		return renderHelp([][2]string{{"enter/esc", "done"}})
	}

	var pairs [][2]string
	for _, b := range m.keys.ShortHelp() {
		pairs = append(pairs, [2]string{b.Help().Key, b.Help().Desc})
	}
	if m.ShowHelp {
		pairs = append(pairs,
			[2]string{m.keys.Up.Help().Key + " " + m.keys.Down.Help().Key, "move"},
			[2]string{m.keys.Home.Help().Key + "/" + m.keys.End.Help().Key, "first/last"},
		)
	}
	return renderHelp(pairs)
}

func renderHelp(pairs [][2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, styles.HelpKeyStyle.Render(p[0])+" "+styles.HelpDescStyle.Render(p[1]))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderOffline() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(
		styles.ErrorStyle.Bold(true).Render("Looks like you are offline!") + "\n" +
			styles.DimStyle.Render("Please check your internet connection."),
	)
}

func (m Model) renderFailed(err error) string {
	msg := "Could not load restaurants."
	if err != nil {
		msg = err.Error()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		styles.ErrorStyle.Bold(true).Render("Something went wrong") + "\n" +
			styles.DimStyle.Render(styles.Truncate(msg, max(m.Width-4, 10))),
	)
}

// renderLoading draws the spinner over a grid of shimmer placeholders
func (m Model) renderLoading() string {
	frame := styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]
	spinner := styles.SpinnerStyle.Render(frame) + " " + styles.DimStyle.Render("Fetching restaurants...")

	shimmer := strings.Repeat("░", m.CardWidth)
	placeholder := styles.CardStyle.Render(strings.Join([]string{shimmer, strings.Repeat("░", m.CardWidth/2), shimmer}, "\n"))

	var rows []string
	for i := 0; i < shimmerPlaceholds; i += m.Columns {
		var row []string
		for j := i; j < i+m.Columns && j < shimmerPlaceholds; j++ {
			row = append(row, placeholder)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{spinner}, rows...)...)
}

func (m Model) renderGrid(v controller.View) string {
	if len(v.Restaurants) == 0 {
		hint := "No restaurants match your search."
		if v.TopRated {
			hint = fmt.Sprintf("No restaurants rated above %.1f.", m.ctrl.Threshold())
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(
			styles.DimStyle.Render(hint) + "\n" +
				styles.DimStyle.Render("Press ") + styles.HelpKeyStyle.Render("a") + styles.DimStyle.Render(" to show all."),
		)
	}

	rows := m.visibleRows(m.cardHeight())
	start := m.RowOffset * m.Columns
	end := min(start+rows*m.Columns, len(v.Restaurants))

	var lines []string
	for i := start; i < end; i += m.Columns {
		var row []string
		for j := i; j < i+m.Columns && j < end; j++ {
			row = append(row, m.renderCard(v.Restaurants[j], j == m.Cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderCard(r domain.Restaurant, selected bool) string {
	content := m.ctrl.UnitFor(r)(r)
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(m.CardWidth + 2).Render(content)
}

// HighlightTitle renders a restaurant name with the characters matched by
// query emphasised.
func HighlightTitle(name, query string) string {
	idx := filter.MatchedIndexes(name, query)
	if len(idx) == 0 {
		return styles.TitleStyle.Render(name)
	}

	matched := make(map[int]bool, len(idx))
	for _, i := range idx {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range name {
		if matched[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}
