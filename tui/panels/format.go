package panels

import (
	"fmt"
	"strings"

	"github.com/zappabad/poketrade/internal/api"
	"github.com/zappabad/poketrade/internal/creature"
	"github.com/zappabad/poketrade/tui/styles"
)

func creatureLine(id creature.ID, name, species string, level int, g creature.Gender, shiny bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%-4d %s", id, name)
	if name != species && species != "" {
		fmt.Fprintf(&b, " (%s)", species)
	}
	fmt.Fprintf(&b, " Lv.%d %s", level, g.Symbol())
	if shiny {
		b.WriteString(" " + styles.ShinyStyle.Render("★"))
	}
	return b.String()
}

// FormatCreature renders a full creature on one line.
func FormatCreature(c creature.Creature) string {
	return creatureLine(c.ID, c.DisplayName(), c.Species, c.Level, c.Gender, c.Shiny)
}

// FormatListItem renders a pool entry on one line.
func FormatListItem(c creature.ListItem) string {
	return creatureLine(c.ID, c.DisplayName(), c.Species, c.Level, c.Gender, c.Shiny)
}

// FormatResolved renders a hydrated creature, or an inline note when it failed.
func FormatResolved(r creature.Resolved) string {
	if r.OK() {
		return FormatCreature(*r.Creature)
	}
	return fmt.Sprintf("#%-4d %s", r.ID, styles.ErrorStyle.Render("unavailable: "+api.Message(r.Err)))
}

func renderError(msg string) string {
	if msg == "" {
		return ""
	}
	return styles.ErrorStyle.Render("✗ " + msg)
}
