package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/tiffin/internal/card"
	"github.com/mmcdole/tiffin/internal/controller"
	"github.com/mmcdole/tiffin/internal/domain"
)

// WritePlain prints one render pass without any terminal styling, for
// piped output.
func WritePlain(w io.Writer, ctrl *controller.Controller) error {
	ctrl.SetBaseUnit(card.Plain)
	v := ctrl.Render()

	switch v.State {
	case controller.StateOffline:
		_, err := fmt.Fprintln(w, "Looks like you are offline!")
		return err
	case controller.StateFailed:
		_, err := fmt.Fprintf(w, "error: %v\n", v.Err)
		return err
	case controller.StateLoading:
		_, err := fmt.Fprintln(w, "no restaurants yet")
		return err
	}

	if _, err := fmt.Fprintf(w, "showing %d of %d\n", len(v.Restaurants), v.Total); err != nil {
		return err
	}
	for _, r := range v.Restaurants {
		text := ctrl.UnitFor(r)(r)
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", text, controller.NavPath(r.ID)); err != nil {
			return err
		}
	}
	return nil
}

// WritePlainProfile prints a profile as key/value lines
func WritePlainProfile(w io.Writer, p domain.Profile) error {
	lines := []string{
		"name: " + p.DisplayName(),
		"login: " + p.Login,
	}
	if p.Bio != "" {
		lines = append(lines, "bio: "+p.Bio)
	}
	lines = append(lines,
		fmt.Sprintf("repos: %d", p.PublicRepos),
		fmt.Sprintf("followers: %d", p.Followers),
		fmt.Sprintf("following: %d", p.Following),
	)
	if p.AvatarURL != "" {
		lines = append(lines, "avatar: "+p.AvatarURL)
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
