// Package card renders restaurants as display units and decorates them.
//
// A Unit is a plain function from a restaurant to its rendered text. Base
// units know nothing about decoration; WithLabel wraps any unit with a label
// line above its output.
package card

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tiffin/internal/domain"
	"github.com/mmcdole/tiffin/internal/styles"
)

// DefaultLabel is the marker added above vegetarian restaurants
const DefaultLabel = "Veg"

// Unit renders one restaurant
type Unit func(r domain.Restaurant) string

// WithLabel returns a unit that renders the default label, then the base
// unit's output. Decorating twice stacks two labels.
func WithLabel(base Unit) Unit {
	return WithNamedLabel(DefaultLabel, base)
}

// WithNamedLabel is WithLabel with a custom label text
func WithNamedLabel(label string, base Unit) Unit {
	return func(r domain.Restaurant) string {
		return styles.VegLabelStyle.Render(label) + "\n" + base(r)
	}
}

// Plain renders a restaurant without any styling, one fact per line.
// Lines for absent optional fields are omitted.
func Plain(r domain.Restaurant) string {
	var lines []string
	if d := r.Discount(); d != "" {
		lines = append(lines, d)
	}
	lines = append(lines, r.Name)
	lines = append(lines, ratingLine(r))
	if c := r.CuisineLine(); c != "" {
		lines = append(lines, c)
	}
	if r.AreaName != "" {
		lines = append(lines, r.AreaName)
	}
	return strings.Join(lines, "\n")
}

// Options configure the styled base unit
type Options struct {
	Width        int                     // Inner card width; 0 leaves it unconstrained
	ImageBaseURL string                  // When set, the image URL line is shown
	Title        func(name string) string // Optional title renderer, e.g. for match highlighting
}

// Base returns the styled card unit used by the terminal UI
func Base(opts Options) Unit {
	return func(r domain.Restaurant) string {
		var lines []string

		if d := r.Discount(); d != "" {
			lines = append(lines, styles.DiscountStyle.Render(d))
		}

		title := fit(r.Name, opts.Width)
		if opts.Title != nil && lipgloss.Width(title) == lipgloss.Width(r.Name) {
			title = opts.Title(r.Name)
		} else {
			title = styles.TitleStyle.Render(title)
		}
		lines = append(lines, title)

		lines = append(lines, styles.RatingStyle.Render("★ "+r.RatingLabel())+
			styles.SubtitleStyle.Render(etaSuffix(r)))

		if c := r.CuisineLine(); c != "" {
			lines = append(lines, styles.SubtitleStyle.Render(fit(c, opts.Width)))
		}
		if r.AreaName != "" {
			lines = append(lines, styles.DimStyle.Render(fit(r.AreaName, opts.Width)))
		}
		if opts.ImageBaseURL != "" {
			if u := r.ImageURL(opts.ImageBaseURL); u != "" {
				lines = append(lines, styles.DimStyle.Render(fit(u, opts.Width)))
			}
		}

		body := strings.Join(lines, "\n")
		if opts.Width > 0 {
			return lipgloss.NewStyle().Width(opts.Width).Render(body)
		}
		return body
	}
}

func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return styles.Truncate(s, width)
}

func ratingLine(r domain.Restaurant) string {
	return fmt.Sprintf("★ %s%s", r.RatingLabel(), etaSuffix(r))
}

func etaSuffix(r domain.Restaurant) string {
	if r.ETASummary == "" {
		return ""
	}
	return " - " + r.ETASummary
}
