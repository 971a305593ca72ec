package symfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var prettyHeader = []string{"ID", "NAME", "TYPE", "VALUE", "SCOPE", "FLAGS"}

func painter(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Pretty writes an aligned table, one row per entry.
// Widths are measured in terminal cells so wide runes line up.
func Pretty(w io.Writer, l Listing, opts Opts) error {
	header := painter(opts.Color, color.Bold)
	constName := painter(opts.Color, color.FgYellow)
	uninit := painter(opts.Color, color.Faint)

	rows := make([][]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		value := e.Value
		if !e.IsInitialized && value == "" {
			value = "-"
		}
		rows = append(rows, []string{
			e.ID.String(),
			e.Name,
			e.Type,
			truncate(value, opts.Width),
			strconv.Itoa(e.ScopeLevel),
			strings.Join(e.Flags(), ","),
		})
	}

	widths := make([]int, len(prettyHeader))
	for i, h := range prettyHeader {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	if l.Label != "" {
		sb.WriteString(header.Sprint(l.Label))
		sb.WriteString("\n")
	}
	for i, h := range prettyHeader {
		sb.WriteString(header.Sprint(pad(h, widths[i], i == len(prettyHeader)-1)))
	}
	sb.WriteString("\n")
	for r, row := range rows {
		e := l.Entries[r]
		for i, cell := range row {
			cell = pad(cell, widths[i], i == len(row)-1)
			switch {
			case i == 1 && e.IsConst:
				cell = constName.Sprint(cell)
			case i == 3 && !e.IsInitialized:
				cell = uninit.Sprint(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	if len(rows) == 0 {
		sb.WriteString("(empty)\n")
	}
	if opts.Stats {
		st := l.Stats
		fmt.Fprintf(&sb, "%d entries in %d/%d buckets, longest chain %d\n", st.Entries, st.Used, st.Buckets, st.Longest)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// pad fills s to width cells plus a column gap; the last column is not padded.
func pad(s string, width int, last bool) string {
	if last {
		return strings.TrimRight(s, " ")
	}
	return runewidth.FillRight(s, width) + "  "
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
