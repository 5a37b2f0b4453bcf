package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tiffin/internal/domain"
	"github.com/mmcdole/tiffin/internal/styles"
)

// RenderProfile draws the user card. width of 0 leaves it unconstrained.
func RenderProfile(p domain.Profile, width int) string {
	inner := 0
	if width > 0 {
		// Border and padding take 6 columns
		inner = max(width-6, 10)
	}
	clip := func(s string) string {
		if inner == 0 {
			return s
		}
		return styles.Truncate(s, inner)
	}

	lines := []string{
		styles.TitleStyle.Render(clip(p.DisplayName())),
		styles.DimStyle.Render(clip("@" + p.Login)),
	}
	if p.Bio != "" {
		lines = append(lines, "", styles.SubtitleStyle.Render(clip(p.Bio)))
	}
	lines = append(lines, "",
		fmt.Sprintf("%s %s  %s %s  %s %s",
			styles.AccentStyle.Render(fmt.Sprint(p.PublicRepos)), styles.DimStyle.Render("repos"),
			styles.AccentStyle.Render(fmt.Sprint(p.Followers)), styles.DimStyle.Render("followers"),
			styles.AccentStyle.Render(fmt.Sprint(p.Following)), styles.DimStyle.Render("following"),
		),
	)
	if p.AvatarURL != "" {
		lines = append(lines, styles.DimStyle.Render(clip(p.AvatarURL)))
	}
	lines = append(lines, "", styles.FollowButtonStyle.Render("Follow"))

	style := styles.ProfileStyle
	if inner > 0 {
		style = style.Width(inner + 4)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
