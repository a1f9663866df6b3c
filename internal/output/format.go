// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"tasky/internal/service"
)

const (
	// Separator frames the header of a detail view.
	Separator = "------------"

	// Swatch is the glyph colored with a category's color.
	Swatch = "●"

	// MaxTitleWidth is the widest title a task line shows, in terminal cells.
	MaxTitleWidth = 60

	placeholder = "-"
)

// FormatTask formats a task line.
// Format: "{ID:>4}  {STATUS:<8}  {TITLE}[  #tag ...][  (due DATE TIME)]\n"
func FormatTask(w io.Writer, t service.Task) {
	var b strings.Builder
	title := xansi.Truncate(normalizeTitle(t.Title), MaxTitleWidth, "…")
	fmt.Fprintf(&b, "%4d  %-8s  %s", t.ID, orPlaceholder(t.Status), title)
	if len(t.Tags) > 0 {
		b.WriteString("  ")
		b.WriteString(formatTags(t.Tags))
	}
	if due := formatDue(t); due != "" {
		fmt.Fprintf(&b, "  (due %s)", due)
	}
	fmt.Fprintln(w, b.String())
}

// FormatTaskDetail formats every field of a task.
func FormatTaskDetail(w io.Writer, t service.Task) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "#%d %s\n", t.ID, normalizeTitle(t.Title))
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "status:   %s\n", orPlaceholder(t.Status))
	fmt.Fprintf(w, "priority: %s\n", orPlaceholder(t.Priority))
	fmt.Fprintf(w, "due:      %s\n", orPlaceholder(formatDue(t)))
	fmt.Fprintf(w, "tags:     %s\n", orPlaceholder(formatTags(t.Tags)))
	fmt.Fprintf(w, "summary:  %s\n", orPlaceholder(singleLine(t.ShortDesc)))
	if strings.TrimSpace(t.LongDesc) != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimRight(t.LongDesc, "\n"))
	}
}

// FormatCategory formats a category line with a color swatch.
// The swatch is only colored when w is a terminal.
// Format: "{ID:>4}  ● {NAME}  {COLOR}[  ({N} tasks)]\n"
func FormatCategory(w io.Writer, c service.Category) {
	r := lipgloss.NewRenderer(w)
	swatch := r.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(Swatch)

	line := fmt.Sprintf("%4d  %s %s  %s", c.ID, swatch, normalizeTitle(c.Name), orPlaceholder(c.Color))
	if c.Count != nil {
		noun := "tasks"
		if *c.Count == 1 {
			noun = "task"
		}
		line += fmt.Sprintf("  (%d %s)", *c.Count, noun)
	}
	fmt.Fprintln(w, line)
}

// FormatProfile formats a profile as "NAME <EMAIL>".
func FormatProfile(w io.Writer, p service.UserProfile) {
	name := normalizeTitle(p.Name)
	if p.Email == "" {
		fmt.Fprintln(w, name)
		return
	}
	fmt.Fprintf(w, "%s <%s>\n", name, p.Email)
}

func formatTags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

func formatDue(t service.Task) string {
	return strings.TrimSpace(t.DueDate + " " + t.DueTime)
}

// normalizeTitle normalizes a title for one-line display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeTitle(title string) string {
	title = singleLine(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
